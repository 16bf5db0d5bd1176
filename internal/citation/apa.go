// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders scholarly metadata as reference strings and
// exports records as CSL-YAML.
package citation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgen/pkg/types"
)

// APA formats w as "{authors} ({year}). {title}. {container}. {locator}".
//
// Authors are "Family, I." joined with ", ". The year comes from the print
// date, then the online date, then types.NoDateText. The locator is the DOI
// when present, otherwise the URL.
func APA(w types.Work) string {
	title := first(w.Titles)
	if title == "" {
		title = types.UntitledText
	}
	s := fmt.Sprintf("%s (%s). %s. %s. %s",
		Authors(w.Authors), Year(w), title, first(w.ContainerTitles), Locator(w))
	return strings.TrimSpace(s)
}

// Authors joins the APA form of each author. Authors with no usable name
// are skipped.
func Authors(authors []types.Author) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		if s := authorName(a); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func authorName(a types.Author) string {
	family := strings.TrimSpace(a.Family)
	if family == "" {
		if given := strings.TrimSpace(a.Given); given != "" {
			return given
		}
		return strings.TrimSpace(a.Literal)
	}
	if in := Initials(a.Given); in != "" {
		return family + ", " + in
	}
	return family
}

// Year resolves the publication year: print, then online, then "n.d.".
func Year(w types.Work) string {
	for _, parts := range [][]int{w.PublishedPrint, w.PublishedOnline} {
		if len(parts) > 0 && parts[0] > 0 {
			return strconv.Itoa(parts[0])
		}
	}
	return types.NoDateText
}

// Locator prefers the DOI over the URL.
func Locator(w types.Work) string {
	if doi := strings.TrimSpace(w.DOI); doi != "" {
		return doi
	}
	return strings.TrimSpace(w.URL)
}

// Initials converts given names into spaced initials: "Jane Q" -> "J. Q.".
// Hyphenated names keep the hyphen: "Jean-Paul" -> "J.-P.".
func Initials(given string) string {
	var out []string
	for _, word := range strings.Fields(given) {
		var segs []string
		for _, seg := range strings.Split(word, "-") {
			r := []rune(strings.TrimRight(seg, "."))
			if len(r) == 0 {
				continue
			}
			segs = append(segs, strings.ToUpper(string(r[0]))+".")
		}
		if len(segs) > 0 {
			out = append(out, strings.Join(segs, "-"))
		}
	}
	return strings.Join(out, " ")
}

func first(ss []string) string {
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
