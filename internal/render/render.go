// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render presents a bibliography: a numbered markdown list, JSON, or
// CSL-YAML, plus the notices shown around it.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibgen/internal/citation"
	"github.com/pdiddy/bibgen/pkg/types"
)

// User-facing messages.
const (
	MsgInvalidTopic = "Please enter a valid topic."
	MsgNoResults    = "No sources were found for the given topic."
	MsgGenerating   = "Generating bibliography..."
)

// Format selects an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSL      Format = "csl"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatJSON, FormatCSL:
		return f, nil
	case "":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q: use markdown, json or csl", s)
	}
}

// Write renders b to w in format f.
func Write(w io.Writer, b types.Bibliography, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, b)
	case FormatCSL:
		if b.Style == types.StyleAPA {
			return fmt.Errorf("csl output needs structured records; use citation style none")
		}
		return citation.WriteCSL(w, b.Records)
	default:
		Markdown(w, b)
		return nil
	}
}

// Markdown writes b as a numbered list. Records render as
// "**N. [title](link)**" followed by a quoted description; references
// render as "**N.** citation".
func Markdown(w io.Writer, b types.Bibliography) {
	fmt.Fprint(w, MarkdownString(b))
}

// MarkdownString returns the Markdown rendering of b.
func MarkdownString(b types.Bibliography) string {
	if b.IsEmpty() {
		return MsgNoResults + "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d sources:\n\n", b.Len())
	if b.Style == types.StyleAPA {
		for i, r := range b.References {
			fmt.Fprintf(&sb, "**%d.** %s\n\n", i+1, r.Citation)
		}
		return sb.String()
	}
	for i, r := range b.Records {
		fmt.Fprintf(&sb, "**%d. [%s](%s)**\n> %s\n\n", i+1, r.DisplayTitle(), r.Link, r.Description)
	}
	return sb.String()
}

// JSON writes b as indented JSON.
func JSON(w io.Writer, b types.Bibliography) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
