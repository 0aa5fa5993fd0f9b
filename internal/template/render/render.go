// Package render wraps the handlebars engine used for all variable
// substitution: file content, filenames, directory names, and the lowered
// form of inclusion conditions.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/raymond"

	"github.com/fuzzinit/fuzz-init/internal/debug"
)

// Context is the flat variable bag for one materialization run. Values are
// strings or booleans. It is assembled once by the caller and never mutated
// during a run.
type Context map[string]interface{}

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Bool returns the named value as a boolean. Missing or non-boolean values
// return false.
func (c Context) Bool(key string) bool {
	v, ok := c[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// String returns the named value rendered as a string, and whether it exists.
func (c Context) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	return ValueString(v), true
}

// ValueString stringifies a context value the same way the template engine
// does, so condition evaluation and {{var}} substitution agree.
func ValueString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

var helpersOnce sync.Once

// registerHelpers installs the comparison and logical helpers the template
// language requires: eq, ne, and, or, not. Registration is global in
// raymond, so it happens exactly once per process.
func registerHelpers() {
	raymond.RegisterHelper("eq", func(a, b interface{}) bool {
		return raymond.Str(a) == raymond.Str(b)
	})
	raymond.RegisterHelper("ne", func(a, b interface{}) bool {
		return raymond.Str(a) != raymond.Str(b)
	})
	raymond.RegisterHelper("not", func(a interface{}) bool {
		return !raymond.IsTrue(a)
	})
	// Binary, like the connectives in file conditions. Longer chains nest:
	// (and a (and b c)).
	raymond.RegisterHelper("and", func(a, b interface{}) bool {
		return raymond.IsTrue(a) && raymond.IsTrue(b)
	})
	raymond.RegisterHelper("or", func(a, b interface{}) bool {
		return raymond.IsTrue(a) || raymond.IsTrue(b)
	})
}

// Render substitutes variables in src against the context. A syntax or
// evaluation failure is a hard error for the caller to propagate.
func Render(src string, ctx Context) (string, error) {
	helpersOnce.Do(registerHelpers)

	out, err := raymond.Render(src, map[string]interface{}(ctx))
	if err != nil {
		return "", &Error{Cause: err}
	}
	return out, nil
}

// RenderPath substitutes variables in a slash-separated relative path,
// segment by segment, and drops segments that render empty.
func RenderPath(relPath string, ctx Context) (string, error) {
	segments := strings.Split(relPath, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		rendered, err := Render(seg, ctx)
		if err != nil {
			return "", fmt.Errorf("failed to render path segment %q: %w", seg, err)
		}
		if rendered == "" {
			debug.Debug("[render] Path segment %q rendered empty, dropping", seg)
			continue
		}
		out = append(out, rendered)
	}
	return strings.Join(out, "/"), nil
}

// Error wraps a template engine failure.
type Error struct {
	// Path is the template file the failure occurred in, when known.
	Path string
	// Cause is the underlying engine error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template rendering failed (file: %s): %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("template rendering failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}
