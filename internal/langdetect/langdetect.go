// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package langdetect identifies which of the supported article languages
// (EN/ES/FR/DE) a text is written in, using stopword frequency and
// language-specific characters. Unknown or ambiguous text falls back to
// English: the upstream contract is that screening proceeds on the original
// text rather than aborting.
package langdetect

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Supported article languages.
var (
	English = language.English
	Spanish = language.Spanish
	French  = language.French
	German  = language.German
)

var stopwords = map[language.Tag][]string{
	English: {"the", "and", "of", "to", "in", "is", "that", "for", "with", "was", "has", "have", "this", "from", "are"},
	Spanish: {"el", "la", "los", "las", "de", "del", "que", "en", "un", "una", "por", "con", "para", "según", "también"},
	French:  {"le", "la", "les", "des", "du", "de", "et", "que", "dans", "un", "une", "pour", "avec", "selon", "été"},
	German:  {"der", "die", "das", "und", "den", "von", "mit", "für", "auf", "ein", "eine", "nicht", "sich", "nach", "wurde"},
}

// Characters that strongly indicate one language over the others.
var markerRunes = map[language.Tag]string{
	Spanish: "ñ¿¡",
	French:  "àâçèêëîïôûù",
	German:  "äöüß",
}

const markerWeight = 3.0

// Detect returns the most likely language of the text. Texts shorter than a
// handful of words, or texts matching no language profile, are reported as
// English.
func Detect(text string) language.Tag {
	words := tokenize(text)
	if len(words) == 0 {
		return English
	}

	scores := make(map[language.Tag]float64, len(stopwords))
	for tag, list := range stopwords {
		set := make(map[string]bool, len(list))
		for _, w := range list {
			set[w] = true
		}
		for _, w := range words {
			if set[w] {
				scores[tag]++
			}
		}
	}

	lower := strings.ToLower(text)
	for tag, markers := range markerRunes {
		for _, r := range markers {
			scores[tag] += markerWeight * float64(strings.Count(lower, string(r)))
		}
	}

	best := English
	bestScore := 0.0
	// Deterministic iteration order so ties resolve identically across runs.
	for _, tag := range []language.Tag{English, Spanish, French, German} {
		if scores[tag] > bestScore {
			best = tag
			bestScore = scores[tag]
		}
	}
	if bestScore == 0 {
		return English
	}
	return best
}

// Code returns the two-letter code recorded in screening reports.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
