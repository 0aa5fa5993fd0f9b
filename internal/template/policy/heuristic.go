package policy

import (
	"path"
	"strings"
)

// textExtensions is the built-in allowlist of extensions treated as
// renderable text when no convention list decides. Covers common source,
// markup, and config formats.
var textExtensions = map[string]bool{
	".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cc": true, ".cxx": true,
	".rs": true, ".go": true, ".py": true, ".rb": true, ".java": true,
	".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".ps1": true, ".bat": true, ".cmd": true,
	".md": true, ".rst": true, ".txt": true, ".adoc": true,
	".toml": true, ".yaml": true, ".yml": true, ".json": true, ".ini": true,
	".cfg": true, ".conf": true, ".env": true, ".properties": true,
	".xml": true, ".html": true, ".css": true, ".svg": true,
	".mk": true, ".cmake": true, ".gradle": true, ".sql": true,
	".proto": true, ".options": true, ".dict": true,
}

// textFilenames is the built-in allowlist of extension-less file names
// treated as renderable text, mostly build files.
var textFilenames = map[string]bool{
	"makefile":       true,
	"gnumakefile":    true,
	"cmakelists.txt": true,
	"dockerfile":     true,
	"containerfile":  true,
	"justfile":       true,
	"rakefile":       true,
	"readme":         true,
	"license":        true,
	"notice":         true,
	"authors":        true,
	"changelog":      true,
	"configure":      true,
	"build":          true,
	"workspace":      true,
	".gitignore":     true,
	".gitattributes": true,
	".dockerignore":  true,
	".clang-format":  true,
	".clang-tidy":    true,
	".editorconfig":  true,
	".env":           true,
}

// windowsExecutableExtensions is the fallback used on platforms without a
// permission-bit model.
var windowsExecutableExtensions = []string{".exe", ".bat", ".cmd", ".ps1", ".com"}

// isTextFile is the built-in "is this a text file" heuristic driven by
// extension and filename allowlists.
func isTextFile(relPath string) bool {
	base := strings.ToLower(path.Base(relPath))
	if textFilenames[base] {
		return true
	}
	ext := strings.ToLower(path.Ext(relPath))
	if ext == "" {
		return false
	}
	if textExtensions[ext] {
		return true
	}
	// "CMakeLists.txt" style names carry .txt; other dotted names whose
	// extension is unknown are treated as opaque.
	return false
}
