// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography runs the aggregation pipeline for one topic: query
// every source in a fixed order, merge the results, deduplicate by title,
// and cap the list. Source failures are reported and absorbed; only a
// missing credential stops a run.
package bibliography

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/bibgen/internal/citation"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/internal/secrets"
	"github.com/pdiddy/bibgen/pkg/types"
)

// ErrEmptyTopic is returned for an empty or whitespace-only topic.
var ErrEmptyTopic = errors.New("topic is empty")

// NormalizeTopic trims topic and rejects it when nothing is left.
func NormalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}
	return topic, nil
}

// Options controls a run.
type Options struct {
	Style types.CitationStyle

	// PerSource is the count requested from each source.
	PerSource int

	// MaxEntries caps the bibliography length.
	MaxEntries int

	// Timeout bounds each source call. Zero leaves only the client timeout.
	Timeout time.Duration
}

// OptionsFromConfig extracts run options from cfg.
func OptionsFromConfig(cfg types.Config) Options {
	return Options{
		Style:      cfg.CitationStyle,
		PerSource:  cfg.PerSource,
		MaxEntries: cfg.MaxEntries,
		Timeout:    cfg.Timeout,
	}
}

// Aggregator invokes its sources sequentially and assembles a Bibliography.
type Aggregator struct {
	sources []search.Source
	opts    Options
	logger  *zap.Logger
}

// New returns an Aggregator over sources, called in slice order.
func New(sources []search.Source, opts Options, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = types.DefaultMaxEntries
	}
	if opts.PerSource <= 0 {
		opts.PerSource = types.DefaultPerSource
	}
	if opts.Style == "" {
		opts.Style = types.StyleNone
	}
	return &Aggregator{sources: sources, opts: opts, logger: logger}
}

// Generate builds the bibliography for topic. Each source failure is sent to
// n and logged, and the run continues with the remaining sources. The only
// errors returned are ErrEmptyTopic and a missing credential, which is a
// configuration fault; both are detected before any source is called.
func (a *Aggregator) Generate(ctx context.Context, topic string, n Notifier) (types.Bibliography, error) {
	topic, err := NormalizeTopic(topic)
	if err != nil {
		return types.Bibliography{}, err
	}
	if n == nil {
		n = nopNotifier{}
	}

	log := a.logger.With(zap.String("run_id", uuid.NewString()), zap.String("topic", topic))
	start := time.Now()

	if err := a.preflight(); err != nil {
		log.Error("missing credential", zap.Error(err))
		return types.Bibliography{}, err
	}

	var all []types.SourceRecord
	for _, s := range a.sources {
		name := s.Name()
		n.Info(fmt.Sprintf("Searching sources with %s...", name))

		records, err := a.fetch(ctx, s, topic)
		if err != nil {
			if errors.Is(err, secrets.ErrNotFound) {
				log.Error("missing credential", zap.String("source", name), zap.Error(err))
				return types.Bibliography{}, fmt.Errorf("configuring source %s: %w", name, err)
			}
			n.Warn(name, err)
			log.Error("source failed", zap.String("source", name), zap.Error(err))
			continue
		}
		log.Debug("source returned", zap.String("source", name), zap.Int("records", len(records)))
		all = append(all, records...)
	}

	b := types.Bibliography{Topic: topic, Style: a.opts.Style}
	switch a.opts.Style {
	case types.StyleAPA:
		b.References = FormatAPA(all, a.opts.MaxEntries)
	default:
		b.Records, b.DuplicatesRemoved, b.Untitled = Merge(all, a.opts.MaxEntries)
	}

	log.Info("bibliography generated",
		zap.String("style", string(b.Style)),
		zap.Int("fetched", len(all)),
		zap.Int("entries", b.Len()),
		zap.Int("duplicates_removed", b.DuplicatesRemoved),
		zap.Duration("elapsed", time.Since(start)),
	)
	return b, nil
}

// preflight checks every credentialed source before any request is sent.
func (a *Aggregator) preflight() error {
	for _, s := range a.sources {
		c, ok := s.(search.Configurable)
		if !ok {
			continue
		}
		if err := c.Preflight(); err != nil {
			return fmt.Errorf("configuring source %s: %w", s.Name(), err)
		}
	}
	return nil
}

func (a *Aggregator) fetch(ctx context.Context, s search.Source, topic string) ([]types.SourceRecord, error) {
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}
	return s.Fetch(ctx, topic, a.opts.PerSource)
}

// Merge drops untitled records and deduplicates the rest by exact title.
// A repeated title keeps the position of its first occurrence and the field
// values of its last. The result is truncated to max entries (max <= 0
// means no cap).
func Merge(records []types.SourceRecord, max int) (merged []types.SourceRecord, duplicates, untitled int) {
	seen := make(map[string]int) // title → index in merged
	for _, r := range records {
		if r.Title == "" {
			untitled++
			continue
		}
		if idx, ok := seen[r.Title]; ok {
			merged[idx] = r
			duplicates++
			continue
		}
		seen[r.Title] = len(merged)
		merged = append(merged, r)
	}
	if max > 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged, duplicates, untitled
}

// FormatAPA renders the scholarly records (those with Work metadata) as APA
// references, in order, capped at max. Web results are not formatted and
// no deduplication is applied.
func FormatAPA(records []types.SourceRecord, max int) []types.Reference {
	var refs []types.Reference
	for _, r := range records {
		if r.Work == nil {
			continue
		}
		if max > 0 && len(refs) >= max {
			break
		}
		refs = append(refs, types.Reference{Citation: citation.APA(*r.Work), Source: r.Source})
	}
	return refs
}
