package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// ApplyDefaults merges declared variable defaults into the context for every
// variable the caller left unset. The input context is not mutated.
func (m *Metadata) ApplyDefaults(ctx render.Context) render.Context {
	out := ctx.Clone()
	if m == nil {
		return out
	}
	for name, def := range m.Variables {
		if _, ok := out[name]; ok {
			continue
		}
		if def.Default == nil {
			continue
		}
		debug.Debug("[model] Applying default for variable %q: %v", name, def.Default)
		out[name] = def.Default
	}
	return out
}

// ValidateRequired fails fast when a declared required variable is missing
// from the context. Run after ApplyDefaults, before any file is written.
func (m *Metadata) ValidateRequired(ctx render.Context) error {
	if m == nil {
		return nil
	}
	var missing []string
	for name, def := range m.Variables {
		if !def.Required {
			continue
		}
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required template variables: %s", strings.Join(missing, ", "))
}
