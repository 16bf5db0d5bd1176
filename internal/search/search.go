// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search wraps the external search and metadata services. Each
// Source translates a topic into one service's request format and maps the
// response into normalized types.SourceRecord values.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/pkg/types"
)

// Source searches a single external service. The three implementations
// (Together, Serper, Crossref) are interchangeable strategies.
type Source interface {
	Name() string
	Fetch(ctx context.Context, topic string, count int) ([]types.SourceRecord, error)
}

// Source identifiers, also stamped on every record.
const (
	NameTogether = "together"
	NameSerper   = "serper"
	NameCrossref = "crossref"
)

// Configurable is implemented by sources that need credentials. Preflight
// reports a missing credential without contacting the service.
type Configurable interface {
	Preflight() error
}

// NewSources builds the adapters in their fixed invocation order:
// Together, Serper, Crossref. All three share client. The API keys are
// resolved here, so a missing credential fails before any request is made.
func NewSources(cfg types.Config, client *http.Client, sp secrets.Provider, logger *zap.Logger) ([]Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	togetherKey, err := credential(sp, secrets.TogetherAPIKey)
	if err != nil {
		return nil, fmt.Errorf("configuring source %s: %w", NameTogether, err)
	}
	serperKey, err := credential(sp, secrets.SerperAPIKey)
	if err != nil {
		return nil, fmt.Errorf("configuring source %s: %w", NameSerper, err)
	}

	return []Source{
		&TogetherSource{
			Client:    client,
			APIKey:    togetherKey,
			Endpoint:  cfg.Sources.Together.Endpoint,
			UserAgent: cfg.UserAgent,
			Logger:    logger.Named(NameTogether),
		},
		&SerperSource{
			Client:    client,
			APIKey:    serperKey,
			Endpoint:  cfg.Sources.Serper.Endpoint,
			UserAgent: cfg.UserAgent,
			Logger:    logger.Named(NameSerper),
		},
		&CrossrefSource{
			Client:    client,
			Endpoint:  cfg.Sources.Crossref.Endpoint,
			Mailto:    cfg.Sources.Crossref.Mailto,
			UserAgent: cfg.UserAgent,
			Logger:    logger.Named(NameCrossref),
		},
	}, nil
}

// resultCount applies the default per-source count.
func resultCount(n int) int {
	if n <= 0 {
		return types.DefaultPerSource
	}
	return n
}

// endpointOr returns endpoint, or fallback when endpoint is empty.
func endpointOr(endpoint, fallback string) string {
	if endpoint != "" {
		return endpoint
	}
	return fallback
}

// orNop returns logger, or a no-op logger when it is nil.
func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// bearerHeaders sets the headers shared by the authenticated web-search APIs.
func bearerHeaders(req *http.Request, apiKey, userAgent string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
}

// webResponse is the {results: [...]} envelope both web-search APIs return.
// Items are kept raw so one malformed entry cannot fail the whole list.
type webResponse struct {
	Results []json.RawMessage `json:"results"`
}

// records maps web results to SourceRecords. Each field is decoded on its
// own: a field of the wrong type counts as missing and gets its default.
// Items that are not JSON objects are skipped.
func (w webResponse) records(source string, logger *zap.Logger) []types.SourceRecord {
	logger = orNop(logger)
	out := make([]types.SourceRecord, 0, len(w.Results))
	for i, raw := range w.Results {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			logger.Debug("skipping malformed result", zap.Int("index", i), zap.Error(err))
			continue
		}
		rec := types.SourceRecord{
			Title:       stringField(fields, "title"),
			Link:        stringField(fields, "link"),
			Description: stringField(fields, "description"),
			Source:      source,
		}
		if rec.Link == "" {
			rec.Link = types.DefaultLink
		}
		out = append(out, rec)
	}
	return out
}

// stringField returns fields[key] as a trimmed string, or "" when the key
// is absent or not a JSON string.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// credential resolves a required API key.
func credential(sp secrets.Provider, key string) (string, error) {
	if sp == nil {
		return "", fmt.Errorf("%s: %w", key, secrets.ErrNotFound)
	}
	return sp.Get(key)
}

// missingKey reports an adapter built without its API key.
func missingKey(key string) error {
	return fmt.Errorf("%s: %w", key, secrets.ErrNotFound)
}
