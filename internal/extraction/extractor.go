// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extraction finds person-name candidates in article text using
// language-specific patterns and confidence heuristics. The candidate list it
// produces is deliberately noisy-tolerant: the decision engine downstream is
// responsible for rejecting organizations and non-matches.
package extraction

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"namescreen/internal/decision"
	"namescreen/internal/langdetect"
	"namescreen/internal/observability"
)

// contextRadius is how many bytes of surrounding text are captured per match.
const contextRadius = 75

var digitRe = regexp.MustCompile(`\d`)

// Extractor extracts person-name candidates from text. Pattern tables are
// compiled once at package init and shared read-only.
type Extractor struct {
	observer *observability.Observer
}

// NewExtractor creates an Extractor.
func NewExtractor(observer *observability.Observer) *Extractor {
	return &Extractor{observer: observer}
}

// Extract returns deduplicated person-name candidates found in the text,
// ordered by first occurrence. Patterns for the detected language run first;
// the English patterns always run as well, since adverse-media articles
// commonly mix quoted English material into other languages.
func (x *Extractor) Extract(text string, lang language.Tag) []decision.Candidate {
	done := x.observer.StartTiming("extraction", "extract")

	patterns := patternSets[lang]
	if lang != langdetect.English {
		patterns = append(append([]NamePattern{}, patterns...), patternSets[langdetect.English]...)
	}

	byName := make(map[string]*occurrence)

	for _, p := range patterns {
		for _, loc := range p.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2*p.Group], loc[2*p.Group+1]
			if start < 0 {
				continue
			}
			name := strings.TrimSpace(text[start:end])
			if !usableName(name, lang) {
				continue
			}

			key := strings.ToLower(name)
			context := snippet(text, start, end)
			conf := scoreCandidate(name, context, lang)

			existing, seen := byName[key]
			if !seen {
				byName[key] = &occurrence{
					candidate: decision.Candidate{
						Text:        name,
						Position:    start,
						Occurrences: 1,
						Context:     context,
						Source:      p.Name,
						Confidence:  conf,
					},
					priority:  p.Priority,
					positions: map[int]bool{start: true},
				}
				continue
			}

			// The same span often matches several patterns; count each
			// article position once.
			if !existing.positions[start] {
				existing.positions[start] = true
				existing.candidate.Occurrences++
			}
			if start < existing.candidate.Position {
				existing.candidate.Position = start
				existing.candidate.Context = context
			}
			// Prefer the strongest evidence seen for this name.
			if p.Priority > existing.priority || conf > existing.candidate.Confidence {
				existing.candidate.Confidence = maxFloat(conf, existing.candidate.Confidence)
				existing.candidate.Source = p.Name
				existing.priority = p.Priority
			}
		}
	}

	candidates := dedupeSubsumed(byName)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Position < candidates[j].Position
	})

	done(true, map[string]any{"candidates": len(candidates), "language": langdetect.Code(lang)})
	return candidates
}

// occurrence tracks the best evidence seen so far for one extracted name.
type occurrence struct {
	candidate decision.Candidate
	priority  int
	positions map[int]bool
}

// dedupeSubsumed drops single-token candidates that also occur as part of a
// longer extracted name ("Anne" when "Anne Brorhilker" was found), keeping
// the longer, more specific form.
func dedupeSubsumed(byName map[string]*occurrence) []decision.Candidate {
	var out []decision.Candidate
	for key, occ := range byName {
		if !strings.Contains(key, " ") {
			subsumed := false
			for other := range byName {
				if other != key && containsToken(other, key) {
					subsumed = true
					break
				}
			}
			if subsumed {
				continue
			}
		}
		out = append(out, occ.candidate)
	}
	return out
}

func containsToken(name, token string) bool {
	for _, t := range strings.Fields(name) {
		if t == token {
			return true
		}
	}
	return false
}

// usableName filters obvious non-person strings before they reach the engine.
func usableName(name string, lang language.Tag) bool {
	if name == "" || digitRe.MatchString(name) {
		return false
	}
	if len(strings.Fields(name)) > 4 {
		return false
	}
	lower := strings.ToLower(name)
	for _, tag := range []language.Tag{lang, langdetect.English} {
		for _, stop := range stoplists[tag] {
			if lower == stop || strings.HasPrefix(lower, stop+" ") {
				return false
			}
		}
	}
	return true
}

// scoreCandidate estimates extraction confidence from surface features and
// context, mirroring how the article language signals person references.
func scoreCandidate(name, context string, lang language.Tag) float64 {
	conf := 0.7

	if len(strings.Fields(name)) >= 2 {
		conf += 0.1
	}
	if hasLanguageMarkers(name, lang) {
		conf += 0.1
	}

	lowerCtx := strings.ToLower(context)
	for _, tag := range []language.Tag{lang, langdetect.English} {
		found := false
		for _, indicator := range personIndicators[tag] {
			if strings.Contains(lowerCtx, indicator) {
				conf += 0.15
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func hasLanguageMarkers(name string, lang language.Tag) bool {
	var markers string
	switch lang {
	case langdetect.Spanish:
		markers = "áéíóúñ"
	case langdetect.French:
		markers = "àâçèéêëîïôûù"
	case langdetect.German:
		markers = "äöüß"
	default:
		return false
	}
	return strings.ContainsAny(strings.ToLower(name), markers)
}

func snippet(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	// Keep the slice on rune boundaries.
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	return strings.TrimSpace(text[from:to])
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
