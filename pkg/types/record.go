// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibgen pipeline:
// the normalized record every source adapter produces, the pre-rendered
// citation used in APA mode, and the final bibliography handed to the
// presenter.
package types

// Placeholder values substituted for fields a source did not return.
const (
	DefaultLink  = "#"
	UntitledText = "Untitled"
	NoDateText   = "n.d."
)

// SourceRecord is a normalized search result. Every adapter maps its own
// response shape into this record.
type SourceRecord struct {
	// Title is the dedupe key. Empty when the source returned no title.
	Title string `json:"title" yaml:"title"`

	// Link is the result URL, or DefaultLink when the source had none.
	Link string `json:"link" yaml:"link"`

	// Description is a snippet or abstract. May be empty.
	Description string `json:"description" yaml:"description"`

	// Source names the adapter that produced the record (e.g. "together").
	Source string `json:"source" yaml:"source"`

	// Work carries structured bibliographic metadata. Only the
	// scholarly-metadata source populates it.
	Work *Work `json:"work,omitempty" yaml:"work,omitempty"`
}

// DisplayTitle returns the title, or UntitledText when it is empty.
func (r SourceRecord) DisplayTitle() string {
	if r.Title == "" {
		return UntitledText
	}
	return r.Title
}

// Work is the structured metadata of a scholarly work as returned by a
// metadata registry.
type Work struct {
	Titles          []string `json:"titles,omitempty" yaml:"titles,omitempty"`
	Authors         []Author `json:"authors,omitempty" yaml:"authors,omitempty"`
	PublishedPrint  []int    `json:"published_print,omitempty" yaml:"published_print,omitempty"`
	PublishedOnline []int    `json:"published_online,omitempty" yaml:"published_online,omitempty"`
	ContainerTitles []string `json:"container_titles,omitempty" yaml:"container_titles,omitempty"`
	DOI             string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL             string   `json:"url,omitempty" yaml:"url,omitempty"`
	Type            string   `json:"type,omitempty" yaml:"type,omitempty"`
}

// Author is one contributor of a Work. Literal holds a single-field name
// (organizations, consortia) when no given/family split exists.
type Author struct {
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// Reference is a single pre-rendered citation string.
type Reference struct {
	Citation string `json:"citation" yaml:"citation"`
	Source   string `json:"source" yaml:"source"`
}

// Bibliography is the ordered, deduplicated and truncated output of one run.
// Exactly one of Records or References is populated, depending on Style.
type Bibliography struct {
	Topic      string         `json:"topic" yaml:"topic"`
	Style      CitationStyle  `json:"style" yaml:"style"`
	Records    []SourceRecord `json:"records,omitempty" yaml:"records,omitempty"`
	References []Reference    `json:"references,omitempty" yaml:"references,omitempty"`

	// DuplicatesRemoved counts records folded into an earlier title.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// Untitled counts records dropped because they had no title.
	Untitled int `json:"untitled" yaml:"untitled"`
}

// Len returns the number of entries in the populated list.
func (b Bibliography) Len() int {
	if b.Style == StyleAPA {
		return len(b.References)
	}
	return len(b.Records)
}

// IsEmpty reports whether the bibliography has no entries.
func (b Bibliography) IsEmpty() bool { return b.Len() == 0 }
