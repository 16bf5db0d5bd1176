// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials by name. Credentials come from a
// directory of plain-text files (filename is the key, trimmed contents are the
// value) with the process environment as a fallback, so a .env file loaded at
// startup works the same as a .secrets/ directory.
//
// Known keys: TOGETHER_API_KEY, SERPER_API_KEY.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed key names used by the search adapters.
const (
	TogetherAPIKey = "TOGETHER_API_KEY"
	SerperAPIKey   = "SERPER_API_KEY"
)

// ErrNotFound is returned when a required secret has no value.
var ErrNotFound = errors.New("secret not found")

// Provider looks up a secret by name.
type Provider interface {
	Get(name string) (string, error)
}

// Store is a Provider backed by values loaded from disk, falling back to
// the environment lookup in Env.
type Store struct {
	values map[string]string

	// Env is consulted when a key is absent from values. Defaults to os.LookupEnv.
	Env func(string) (string, bool)
}

// NewStore wraps an already loaded map (see Load).
func NewStore(values map[string]string) *Store {
	if values == nil {
		values = map[string]string{}
	}
	return &Store{values: values, Env: os.LookupEnv}
}

// Get returns the value for name. Missing and blank values produce an
// error wrapping ErrNotFound.
func (s *Store) Get(name string) (string, error) {
	if v, ok := s.values[name]; ok {
		return v, nil
	}
	if s.Env != nil {
		if v, ok := s.Env(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Keys returns the names loaded from disk.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Map is a fixed Provider, mostly useful in tests.
type Map map[string]string

// Get returns the value for name or an error wrapping ErrNotFound.
func (m Map) Get(name string) (string, error) {
	if v, ok := m[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
