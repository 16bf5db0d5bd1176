// Package logging builds the zap logger used across bibgen.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultFile is the log file name used when the terminal is taken by the form.
const DefaultFile = "bibgen.log"

// New returns a production logger (JSON, info level) when environment is
// "production" and a development logger otherwise. A non-empty path sends
// output there instead of stderr.
func New(environment, path string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}

// DefaultPath returns <user cache dir>/bibgen/bibgen.log, creating the
// directory if needed.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache dir: %w", err)
	}
	dir := filepath.Join(base, "bibgen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return filepath.Join(dir, DefaultFile), nil
}
