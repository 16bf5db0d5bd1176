// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the bibgen configuration from viper (config file,
// BIBGEN_* environment variables, bound flags) and validates it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibgen/pkg/types"
)

// EnvPrefix is the environment variable prefix (BIBGEN_CITATION_STYLE, ...).
const EnvPrefix = "BIBGEN"

// sourceKeys default to empty so AutomaticEnv can resolve them during
// Unmarshal even when no config file sets them.
var sourceKeys = []string{
	"sources.together.endpoint",
	"sources.serper.endpoint",
	"sources.crossref.endpoint",
	"sources.crossref.mailto",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("citation_style", string(d.CitationStyle))
	v.SetDefault("max_entries", d.MaxEntries)
	v.SetDefault("per_source", d.PerSource)
	v.SetDefault("secrets_dir", d.SecretsDir)
	v.SetDefault("environment", d.Environment)
	for _, k := range sourceKeys {
		v.SetDefault(k, "")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.CitationStyle = types.CitationStyle(strings.ToLower(strings.TrimSpace(string(cfg.CitationStyle))))
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags and reports every failing
// field by its config key.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fieldKey(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldKey turns "Config.Sources.Crossref.Mailto" into "Sources.Crossref.Mailto".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// WriteSample writes a config file holding the defaults to path. It refuses
// to overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("writing %s: %w", path, fs.ErrExist)
	}
	d := types.DefaultConfig()
	sample := map[string]any{
		"citation_style": string(d.CitationStyle),
		"max_entries":    d.MaxEntries,
		"per_source":     d.PerSource,
		"timeout":        d.Timeout.String(),
		"user_agent":     d.UserAgent,
		"secrets_dir":    d.SecretsDir,
		"environment":    d.Environment,
		"sources": map[string]any{
			"crossref": map[string]any{"mailto": ""},
		},
	}
	data, err := yaml.Marshal(sample)
	if err != nil {
		return fmt.Errorf("marshaling sample config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
