// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibgen/pkg/types"
)

func TestToCSLItemWebResult(t *testing.T) {
	r := types.SourceRecord{
		Title:       "Climate Models Explained",
		Link:        "https://example.com/a",
		Description: "An overview.",
		Source:      "together",
	}

	item := ToCSLItem(r)

	if item.Type != "webpage" {
		t.Errorf("Type = %q, want webpage", item.Type)
	}
	if item.ID != "https://example.com/a" || item.URL != "https://example.com/a" {
		t.Errorf("ID/URL = %q/%q", item.ID, item.URL)
	}
	if item.Abstract != "An overview." {
		t.Errorf("Abstract = %q", item.Abstract)
	}
	if item.Issued != nil || len(item.Author) != 0 {
		t.Errorf("web result should have no issued date or authors")
	}
}

func TestToCSLItemPlaceholderLink(t *testing.T) {
	item := ToCSLItem(types.SourceRecord{Link: types.DefaultLink})
	if item.URL != "" {
		t.Errorf("URL = %q, want empty for placeholder link", item.URL)
	}
	if item.Title != types.UntitledText {
		t.Errorf("Title = %q", item.Title)
	}
}

func TestToCSLItemWork(t *testing.T) {
	r := types.SourceRecord{
		Title:  "A Study",
		Link:   "https://doi.org/10.1/xyz",
		Source: "crossref",
		Work: &types.Work{
			Titles:          []string{"A Study"},
			Authors:         []types.Author{{Given: "Jane", Family: "Doe"}, {}, {Literal: "WHO"}},
			PublishedOnline: []int{2020, 5},
			ContainerTitles: []string{"Journal X"},
			DOI:             "10.1/xyz",
			Type:            "journal-article",
		},
	}

	item := ToCSLItem(r)

	if item.Type != "article-journal" {
		t.Errorf("Type = %q", item.Type)
	}
	if item.ID != "10.1/xyz" || item.DOI != "10.1/xyz" {
		t.Errorf("ID/DOI = %q/%q", item.ID, item.DOI)
	}
	if item.ContainerTitle != "Journal X" {
		t.Errorf("ContainerTitle = %q", item.ContainerTitle)
	}
	if len(item.Author) != 2 {
		t.Fatalf("len(Author) = %d, want 2 (blank skipped)", len(item.Author))
	}
	if item.Author[1].Literal != "WHO" {
		t.Errorf("Author[1] = %+v", item.Author[1])
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2020 || item.Issued.DateParts[0][1] != 5 {
		t.Errorf("Issued = %+v", item.Issued)
	}
}

func TestCSLType(t *testing.T) {
	tests := map[string]string{
		"":                    "article",
		"journal-article":     "article-journal",
		"proceedings-article": "paper-conference",
		"book-chapter":        "chapter",
		"posted-content":      "article",
		"book":                "book",
	}
	for in, want := range tests {
		if got := cslType(in); got != want {
			t.Errorf("cslType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteCSL(t *testing.T) {
	records := []types.SourceRecord{
		{Title: "Web Page", Link: "https://example.com", Source: "serper"},
		{
			Title:  "A Study",
			Link:   "https://doi.org/10.1/xyz",
			Source: "crossref",
			Work: &types.Work{
				Authors:        []types.Author{{Given: "Jane", Family: "Doe"}},
				PublishedPrint: []int{2020},
				DOI:            "10.1/xyz",
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSL(&buf, records); err != nil {
		t.Fatalf("WriteCSL: %v", err)
	}

	s := buf.String()
	for _, want := range []string{"type: webpage", "type: article", "DOI: 10.1/xyz", "family: Doe", "date-parts:"} {
		if !strings.Contains(s, want) {
			t.Errorf("CSL output missing %q:\n%s", want, s)
		}
	}

	var back []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(back) != 2 {
		t.Errorf("len = %d, want 2", len(back))
	}
}
