// file: internal/store/classify.go
// version: 1.1.0
// guid: 7c5e3a9d-2b4f-4c6e-8a0b-1d9f8e7c6b5a

package store

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// managementRule maps a raw administrative-category label to its
// canonical form when every listed word appears in the label.
type managementRule struct {
	words []string
	label string
}

// managementRules are evaluated top to bottom, first match wins. The
// ordering is load-bearing: a "private aided" label must resolve before
// the generic "aided" rule can claim it for Government Aided.
var managementRules = []managementRule{
	{words: []string{"private", "aided"}, label: "Private Aided"},
	{words: []string{"pvt", "aided"}, label: "Private Aided"},
	{words: []string{"private", "unaided"}, label: "Private Unaided"},
	{words: []string{"pvt", "unaided"}, label: "Private Unaided"},
	{words: []string{"unaided"}, label: "Private Unaided"},
	{words: []string{"central"}, label: "Central Government"},
	{words: []string{"local", "body"}, label: "Local Body"},
	{words: []string{"aided"}, label: "Government Aided"},
	{words: []string{"government"}, label: "Government"},
	{words: []string{"govt"}, label: "Government"},
	{words: []string{"dept"}, label: "Government"},
	{words: []string{"department"}, label: "Government"},
}

var titleCaser = cases.Title(language.English)

// ClassifyManagement normalizes a free-text management label to the
// closed label set (Government, Private Aided, Private Unaided,
// Government Aided, Central Government, Local Body). Unmatched labels
// are echoed title-cased; blank labels map to "Not available".
func ClassifyManagement(raw string) string {
	folded := Fold(raw)
	if folded == "" || folded == "nan" || folded == "na" || folded == "-" || folded == "none" {
		return "Not available"
	}

	words := tokenSet(folded)
	for _, rule := range managementRules {
		if containsAll(words, rule.words) {
			return rule.label
		}
	}
	return titleCaser.String(folded)
}

// tokenSet splits a folded label into its word tokens, stripping
// punctuation so "Pvt. Aided (recognized)" tokenizes cleanly.
func tokenSet(folded string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(folded, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		words[w] = true
	}
	return words
}

func containsAll(words map[string]bool, required []string) bool {
	for _, w := range required {
		if !words[w] {
			return false
		}
	}
	return true
}
