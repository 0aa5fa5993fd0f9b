package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

func TestParseVarFlags(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
		{
			name:  "single pair",
			input: []string{"author=alice"},
			want:  map[string]string{"author": "alice"},
		},
		{
			name:  "value containing equals",
			input: []string{"flags=-O2 -g=1"},
			want:  map[string]string{"flags": "-O2 -g=1"},
		},
		{
			name:  "multiple pairs",
			input: []string{"a=1", "b=2"},
			want:  map[string]string{"a": "1", "b": "2"},
		},
		{
			name:  "empty value allowed",
			input: []string{"a="},
			want:  map[string]string{"a": ""},
		},
		{
			name:    "missing equals",
			input:   []string{"author"},
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   []string{"=x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVarFlags(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDefault(t *testing.T) {
	tests := []struct {
		name      string
		def       string
		supported []string
		want      string
	}{
		{"empty default", "", []string{"afl"}, ""},
		{"no catalog accepts anything", "libfuzzer", nil, "libfuzzer"},
		{"default in catalog", "libfuzzer", []string{"libfuzzer", "afl"}, "libfuzzer"},
		{"default not in catalog is dropped", "libfuzzer", []string{"afl", "honggfuzz"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configDefault(tt.def, tt.supported))
		})
	}
}

func TestSupportedFuzzers(t *testing.T) {
	assert.Nil(t, supportedFuzzers(nil))
	assert.Nil(t, supportedFuzzers(&model.Metadata{}))

	meta := &model.Metadata{
		Fuzzers: &model.FuzzerCatalog{Supported: []string{"libfuzzer", "afl"}},
	}
	assert.Equal(t, []string{"libfuzzer", "afl"}, supportedFuzzers(meta))
}

func TestPromptIntegrationWithoutCatalog(t *testing.T) {
	// No catalog means nothing to ask: the template decides per-file.
	got, err := promptIntegration(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPromptIntegrationSingleOption(t *testing.T) {
	meta := &model.Metadata{
		Integrations: &model.IntegrationCatalog{
			Supported: []string{"make"},
			Default:   "make",
		},
	}
	got, err := promptIntegration(meta)
	require.NoError(t, err)
	assert.Equal(t, "make", got)
}

func TestPromptFuzzerSingleOption(t *testing.T) {
	meta := &model.Metadata{
		Fuzzers: &model.FuzzerCatalog{Supported: []string{"libfuzzer"}},
	}
	got, err := promptFuzzer(meta)
	require.NoError(t, err)
	assert.Equal(t, "libfuzzer", got)
}

func TestIntegrationOptionLabels(t *testing.T) {
	catalog := &model.IntegrationCatalog{
		Options: []model.IntegrationOption{
			{Name: "make", DisplayName: "Makefile", Description: "GNU make build"},
			{Name: "standalone"},
		},
	}
	opts := integrationOptions(catalog)
	require.Len(t, opts, 2)
	assert.Equal(t, "Makefile - GNU make build", opts[0].Label)
	assert.Equal(t, "standalone", opts[1].Label)
}
