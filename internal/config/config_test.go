// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgen/pkg/types"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
citation_style: APA
max_entries: 20
per_source: 10
timeout: 5s
sources:
  crossref:
    mailto: me@example.com
    endpoint: http://localhost:9999/works
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, types.StyleAPA, cfg.CitationStyle)
	assert.Equal(t, 20, cfg.MaxEntries)
	assert.Equal(t, 10, cfg.PerSource)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "me@example.com", cfg.Sources.Crossref.Mailto)
	assert.Equal(t, "http://localhost:9999/works", cfg.Sources.Crossref.Endpoint)
	assert.Equal(t, types.DefaultUserAgent, cfg.UserAgent)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BIBGEN_CITATION_STYLE", "apa")
	t.Setenv("BIBGEN_TIMEOUT", "3s")
	t.Setenv("BIBGEN_SOURCES_SERPER_ENDPOINT", "http://localhost:1234/search")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, types.StyleAPA, cfg.CitationStyle)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:1234/search", cfg.Sources.Serper.Endpoint)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"unknown style", "citation_style", "mla", "CitationStyle"},
		{"cap above 50", "max_entries", 80, "MaxEntries"},
		{"zero per source", "per_source", 0, "PerSource"},
		{"bad environment", "environment", "staging", "Environment"},
		{"bad mailto", "sources.crossref.mailto", "not-an-email", "Mailto"},
		{"bad endpoint", "sources.together.endpoint", "::nope", "Endpoint"},
		{"zero timeout", "timeout", "0s", "Timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibgen.yaml")
	require.NoError(t, WriteSample(path))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)

	err = WriteSample(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
}
