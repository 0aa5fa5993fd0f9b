// Package templates holds the template trees compiled into the binary.
package templates

import "embed"

// FS contains the embedded template trees, one top-level directory per
// language template. The all: prefix keeps dotfiles like .gitignore in the
// bundle.
//
//go:embed all:c all:cpp
var FS embed.FS
