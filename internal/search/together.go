// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/pkg/types"
)

// togetherAPIBase is the Together search endpoint. Declared as a var so
// tests can substitute an httptest server.
var togetherAPIBase = "https://api.together.com/v1/search"

// TogetherSource queries the Together search API with a GET request.
type TogetherSource struct {
	Client    httputil.Doer
	// APIKey is the Bearer token, resolved when the source is built.
	APIKey    string
	Endpoint  string
	UserAgent string
	Logger    *zap.Logger
}

// Name returns the source identifier.
func (s *TogetherSource) Name() string { return NameTogether }

// Preflight fails when no API key is set.
func (s *TogetherSource) Preflight() error {
	if s.APIKey == "" {
		return missingKey(secrets.TogetherAPIKey)
	}
	return nil
}

// Fetch sends GET ?query=<topic>&num=<count> with a Bearer token and maps
// the results list.
func (s *TogetherSource) Fetch(ctx context.Context, topic string, count int) ([]types.SourceRecord, error) {
	if err := s.Preflight(); err != nil {
		return nil, err
	}

	params := url.Values{
		"query": {topic},
		"num":   {strconv.Itoa(resultCount(count))},
	}
	reqURL := endpointOr(s.Endpoint, togetherAPIBase) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	bearerHeaders(req, s.APIKey, s.UserAgent)

	var wr webResponse
	if err := httputil.GetJSON(ctx, s.Client, req, &wr); err != nil {
		return nil, fmt.Errorf("Together API request: %w", err)
	}
	return wr.records(NameTogether, s.Logger), nil
}
