package citation

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibgen/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Source         string    `yaml:"source,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes records as a CSL-YAML list to w.
func WriteCSL(w io.Writer, records []types.SourceRecord) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = ToCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ToCSLItem converts a SourceRecord to a CSLItem. Records without Work
// metadata are web results and map to the "webpage" type.
func ToCSLItem(r types.SourceRecord) CSLItem {
	item := CSLItem{
		ID:       r.Link,
		Type:     "webpage",
		Title:    r.DisplayTitle(),
		Abstract: r.Description,
		Source:   r.Source,
	}
	if r.Link != types.DefaultLink {
		item.URL = r.Link
	}

	w := r.Work
	if w == nil {
		return item
	}

	item.Type = cslType(w.Type)
	item.ContainerTitle = first(w.ContainerTitles)
	item.DOI = strings.TrimSpace(w.DOI)
	if item.DOI != "" {
		item.ID = item.DOI
	}
	for _, a := range w.Authors {
		n := CSLName{Family: a.Family, Given: a.Given, Literal: a.Literal}
		if n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	date := w.PublishedPrint
	if len(date) == 0 {
		date = w.PublishedOnline
	}
	if len(date) > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{date}}
	}
	return item
}

// cslType maps Crossref work types onto CSL item types. Crossref mostly
// uses CSL names already, except for the journal-article family.
func cslType(crossrefType string) string {
	switch crossrefType {
	case "":
		return "article"
	case "journal-article":
		return "article-journal"
	case "proceedings-article":
		return "paper-conference"
	case "book-chapter":
		return "chapter"
	case "posted-content":
		return "article"
	default:
		return crossrefType
	}
}
