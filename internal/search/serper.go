// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/pkg/types"
)

// serperAPIBase is the Serper search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serperAPIBase = "https://serper-api.com/search"

// SerperSource queries the Serper search API with a JSON POST.
type SerperSource struct {
	Client    httputil.Doer
	// APIKey is the Bearer token, resolved when the source is built.
	APIKey    string
	Endpoint  string
	UserAgent string
	Logger    *zap.Logger
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

// Name returns the source identifier.
func (s *SerperSource) Name() string { return NameSerper }

// Preflight fails when no API key is set.
func (s *SerperSource) Preflight() error {
	if s.APIKey == "" {
		return missingKey(secrets.SerperAPIKey)
	}
	return nil
}

// Fetch posts {"q": topic, "num": count} with a Bearer token and maps the
// results list.
func (s *SerperSource) Fetch(ctx context.Context, topic string, count int) ([]types.SourceRecord, error) {
	if err := s.Preflight(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(serperRequest{Q: topic, Num: resultCount(count)})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointOr(s.Endpoint, serperAPIBase), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	bearerHeaders(req, s.APIKey, s.UserAgent)

	var wr webResponse
	if err := httputil.GetJSON(ctx, s.Client, req, &wr); err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	return wr.records(NameSerper, s.Logger), nil
}
