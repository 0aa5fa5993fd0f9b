// Package provider abstracts template source locations. Templates come from
// the embedded bundle compiled into the binary, a local filesystem
// directory, or a GitHub repository archive; all three produce the same
// read-only model.Template for the generator to consume.
package provider

import (
	"context"

	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// Provider loads template trees from one kind of source.
type Provider interface {
	// Fetch loads a template: its configuration document (if any) and all
	// template files in lexical path order.
	Fetch(ctx context.Context, src model.Source) (*model.Template, error)

	// Resolve converts a source string to a model.Source. The accepted
	// format depends on the provider.
	Resolve(source string) (model.Source, error)

	// Name returns the provider name (e.g. "embedded", "local", "github").
	Name() string
}
