// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefSource queries the public Crossref metadata API. No key is needed.
type CrossrefSource struct {
	Client httputil.Doer
	// Mailto is sent as a query parameter for polite pool access.
	Mailto    string
	Endpoint  string
	UserAgent string
	Logger    *zap.Logger
}

// Name returns the source identifier.
func (s *CrossrefSource) Name() string { return NameCrossref }

// Fetch sends GET ?query=<topic>&rows=<count> and maps message.items into
// records carrying full Work metadata.
func (s *CrossrefSource) Fetch(ctx context.Context, topic string, count int) ([]types.SourceRecord, error) {
	params := url.Values{
		"query": {topic},
		"rows":  {strconv.Itoa(resultCount(count))},
	}
	if s.Mailto != "" {
		params.Set("mailto", s.Mailto)
	}
	reqURL := endpointOr(s.Endpoint, crossrefAPIBase) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	var cr crossrefResponse
	if err := httputil.GetJSON(ctx, s.Client, req, &cr); err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}

	logger := orNop(s.Logger)
	results := make([]types.SourceRecord, 0, len(cr.Message.Items))
	for i, raw := range cr.Message.Items {
		var item crossrefItem
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.Debug("skipping malformed work", zap.Int("index", i), zap.Error(err))
			continue
		}
		results = append(results, item.record())
	}
	return results, nil
}

func (it crossrefItem) record() types.SourceRecord {
	w := &types.Work{
		Titles:          trimAll(it.Title),
		PublishedPrint:  it.PublishedPrint.first(),
		PublishedOnline: it.PublishedOnline.first(),
		ContainerTitles: trimAll(it.ContainerTitle),
		DOI:             strings.TrimSpace(it.DOI),
		URL:             strings.TrimSpace(it.URL),
		Type:            it.Type,
	}
	for _, a := range it.Author {
		author := types.Author{
			Given:  strings.TrimSpace(a.Given),
			Family: strings.TrimSpace(a.Family),
		}
		if author.Family == "" && author.Given == "" {
			author.Literal = strings.TrimSpace(a.Name)
		}
		w.Authors = append(w.Authors, author)
	}

	r := types.SourceRecord{
		Link:        w.URL,
		Description: stripMarkup(it.Abstract),
		Source:      NameCrossref,
		Work:        w,
	}
	if len(w.Titles) > 0 {
		r.Title = w.Titles[0]
	}
	if r.Link == "" {
		r.Link = types.DefaultLink
	}
	return r
}

var markupRe = regexp.MustCompile(`<[^>]+>`)

// stripMarkup removes the JATS tags Crossref wraps abstracts in.
func stripMarkup(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(markupRe.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

// Items are decoded one by one so a malformed work does not fail the list.
type crossrefMessage struct {
	TotalResults int               `json:"total-results"`
	Items        []json.RawMessage `json:"items"`
}

type crossrefItem struct {
	Title           stringList       `json:"title"`
	URL             string           `json:"URL"`
	Author          []crossrefAuthor `json:"author"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
	ContainerTitle  stringList       `json:"container-title"`
	DOI             string           `json:"DOI"`
	Abstract        string           `json:"abstract"`
	Type            string           `json:"type"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// first returns the leading date-parts entry, or nil when the year is absent.
func (d crossrefDate) first() []int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 || d.DateParts[0][0] == 0 {
		return nil
	}
	return d.DateParts[0]
}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}
