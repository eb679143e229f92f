// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"namescreen/internal/decision"
)

// ErrEmptyName indicates a name string that normalizes to no usable tokens.
// Callers must treat the affected candidate as unusable; it is fatal only
// when the target name itself is affected.
var ErrEmptyName = errors.New("name contains no usable tokens")

// DefaultHonorifics covers the honorific and title forms of the supported
// article languages (EN/ES/FR/DE) plus generational and professional
// suffixes. All entries are folded forms.
var DefaultHonorifics = []string{
	// English
	"mr", "mrs", "ms", "miss", "dr", "prof", "professor", "sir", "dame",
	"lord", "lady", "rev", "hon",
	// Spanish
	"don", "dona", "sr", "sra", "srta", "dra",
	// French
	"mme", "mlle",
	// German
	"herr", "frau",
	// Suffixes
	"jr", "ii", "iii", "iv", "phd", "md", "esq",
}

// Normalizer canonicalizes raw name strings into comparable form. It is a
// pure component: no side effects, safe for concurrent use once constructed.
type Normalizer struct {
	honorifics map[string]bool
}

// New creates a Normalizer with the given recognized honorific set. A nil or
// empty set falls back to DefaultHonorifics.
func New(honorifics []string) *Normalizer {
	if len(honorifics) == 0 {
		honorifics = DefaultHonorifics
	}
	set := make(map[string]bool, len(honorifics))
	for _, h := range honorifics {
		set[fold(h)] = true
	}
	return &Normalizer{honorifics: set}
}

// Normalize converts a raw UTF-8 name string into its normalized view:
// tokens split on whitespace and hyphens, each with a case- and
// diacritic-folded comparison form, honorifics and suffixes flagged.
// Returns ErrEmptyName when no usable token survives.
func (n *Normalizer) Normalize(raw string) (decision.NormalizedName, error) {
	name := decision.NormalizedName{Raw: raw}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	for _, field := range fields {
		display := trimPunct(field)
		if display == "" {
			continue
		}
		folded := fold(display)
		if folded == "" {
			continue
		}
		name.Tokens = append(name.Tokens, decision.Token{
			Display: display,
			Folded:  folded,
		})
	}

	n.flagHonorifics(name.Tokens)

	if name.IsEmpty() {
		return decision.NormalizedName{Raw: raw}, ErrEmptyName
	}
	return name, nil
}

// flagHonorifics marks leading titles and trailing suffixes. Honorifics are
// only recognized at the edges of the token sequence so that a middle
// initial like "M." in "Jean M. Dupont" is never mistaken for "M." (Monsieur).
func (n *Normalizer) flagHonorifics(tokens []decision.Token) {
	for i := range tokens {
		if !n.honorifics[tokens[i].Folded] {
			break
		}
		tokens[i].Honorific = true
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Honorific || !n.honorifics[tokens[i].Folded] {
			break
		}
		tokens[i].Honorific = true
	}
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold produces the comparison form of a token: lowercase, diacritics
// removed, apostrophes and periods dropped, German/Nordic ligatures expanded.
func fold(s string) string {
	s = strings.ToLower(s)
	// Ligatures and letters NFD decomposition does not cover.
	replacer := strings.NewReplacer(
		"ß", "ss",
		"æ", "ae",
		"œ", "oe",
		"ø", "o",
		"đ", "d",
		"ł", "l",
	)
	s = replacer.Replace(s)

	if folded, _, err := transform.String(foldTransform, s); err == nil {
		s = folded
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// trimPunct removes leading and trailing punctuation while keeping interior
// characters (O'Connor, St.John) intact.
func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
