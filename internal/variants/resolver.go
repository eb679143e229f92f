// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package variants

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"namescreen/internal/decision"
)

// Similarity scores per match class. The constants are calibrated against the
// labeled examples in the test suite rather than derived from a formal model.
const (
	ScoreExact           = 1.0
	ScoreNickname        = 0.9
	ScoreCulturalVariant = 0.85
	ScoreSpellingVariant = 0.8
	ScorePartial         = 0.5
)

// Resolver decides, for a pair of normalized names, whether they plausibly
// denote the same person despite surface differences. It consults read-only
// Tables and is safe for concurrent use.
type Resolver struct {
	tables *Tables
}

// NewResolver creates a Resolver over the given tables. Nil tables fall back
// to the embedded defaults.
func NewResolver(tables *Tables) *Resolver {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Resolver{tables: tables}
}

// Assess compares a candidate against the target and returns the match class
// and similarity score. Rules are evaluated in precedence order, with one
// exception: organization confusion is a disqualifying gate checked first, so
// that high lexical similarity to an organization name can never be
// reinterpreted as a person match.
func (r *Resolver) Assess(target, candidate decision.NormalizedName) decision.VariantAssessment {
	a := decision.VariantAssessment{Name: candidate}

	if detail, ok := r.organizationConfusion(candidate); ok {
		a.Class = decision.ClassOrgConfusion
		a.Score = 0.0
		a.Detail = detail
		return a
	}

	tt := target.FoldedTokens()
	ct := candidate.FoldedTokens()

	if equalTokens(tt, ct) {
		a.Class = decision.ClassExact
		a.Score = ScoreExact
		return a
	}

	if len(tt) == len(ct) {
		if detail, ok := r.nicknameMatch(target, candidate); ok {
			a.Class = decision.ClassNickname
			a.Score = ScoreNickname
			a.Detail = detail
			return a
		}
		if detail, ok := r.culturalMatch(target, candidate); ok {
			a.Class = decision.ClassCulturalVariant
			a.Score = ScoreCulturalVariant
			a.Detail = detail
			return a
		}
		if detail, ok := spellingMatch(tt, ct); ok {
			a.Class = decision.ClassSpellingVariant
			a.Score = ScoreSpellingVariant
			a.Detail = detail
			return a
		}
	}

	if strictSubset(tt, ct) || strictSubset(ct, tt) {
		a.Class = decision.ClassPartial
		a.Score = ScorePartial
		a.Detail = "token subset without distinguishing evidence"
		return a
	}

	a.Class = decision.ClassDistinct
	a.Score = 0.0
	return a
}

// organizationConfusion reports whether the candidate denotes an organization
// rather than a person.
func (r *Resolver) organizationConfusion(candidate decision.NormalizedName) (string, bool) {
	tokens := candidate.FoldedTokens()
	for _, token := range tokens {
		if r.tables.OrganizationSuffix(token) {
			return fmt.Sprintf("%q is a business suffix", token), true
		}
	}
	joined := strings.Join(tokens, " ")
	if r.tables.KnownOrganization(joined) {
		return fmt.Sprintf("%q is a known organization name", candidate.Display()), true
	}
	return "", false
}

// nicknameMatch applies rule 2: every given-name token matches literally or
// via the bidirectional nickname table, surname tokens match literally, and
// at least one nickname equivalence actually fired.
func (r *Resolver) nicknameMatch(target, candidate decision.NormalizedName) (string, bool) {
	return r.givenNameMatch(target, candidate, r.tables.NicknameEquivalent, exactSurname, "short form")
}

// culturalMatch applies rule 3: given-name tokens match via the cross-language
// equivalence table and surnames match literally or within the transliteration
// edit-distance threshold.
func (r *Resolver) culturalMatch(target, candidate decision.NormalizedName) (string, bool) {
	return r.givenNameMatch(target, candidate, r.tables.CulturalEquivalent, transliteratedSurname, "cultural form")
}

func (r *Resolver) givenNameMatch(target, candidate decision.NormalizedName,
	equivalent func(a, b string) bool, surnameOK func(a, b string) bool, label string) (string, bool) {

	tc := target.CoreTokens()
	cc := candidate.CoreTokens()
	if len(tc) != len(cc) || len(tc) == 0 {
		return "", false
	}

	// A single-token name is treated as a given name; the surname requirement
	// is vacuous.
	last := len(tc) - 1
	if len(tc) > 1 && !surnameOK(tc[last].Folded, cc[last].Folded) {
		return "", false
	}

	given := tc
	if len(tc) > 1 {
		given = tc[:last]
		cc = cc[:last]
	}

	detail := ""
	for i := range given {
		t, c := given[i].Folded, cc[i].Folded
		if t == c {
			continue
		}
		if !equivalent(t, c) {
			return "", false
		}
		if detail == "" {
			detail = fmt.Sprintf("%q is a recognized %s of %q", cc[i].Display, label, given[i].Display)
		}
	}
	if detail == "" {
		// All given names matched literally; only the surname differed, which
		// is not evidence of a nickname or cultural form.
		return "", false
	}
	return detail, true
}

func exactSurname(a, b string) bool {
	return a == b
}

func transliteratedSurname(a, b string) bool {
	return withinEditThreshold(a, b)
}

// spellingMatch applies rule 4: a bounded per-token edit distance with the
// threshold scaled by token length and no token reinterpretation.
func spellingMatch(target, candidate []string) (string, bool) {
	if len(target) == 0 {
		return "", false
	}
	detail := ""
	for i := range target {
		t, c := target[i], candidate[i]
		if t == c {
			continue
		}
		if !withinEditThreshold(t, c) {
			return "", false
		}
		if detail == "" {
			detail = fmt.Sprintf("%q is an established spelling of %q", c, t)
		}
	}
	return detail, detail != ""
}

// withinEditThreshold reports whether two folded tokens are close enough to
// count as spellings of the same name. Short tokens get no slack: a
// single-character divergence in a short core token (Anne vs Annie) is a
// different identity, not a spelling variant.
func withinEditThreshold(a, b string) bool {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	allowed := 0
	switch {
	case minLen >= 10:
		allowed = 2
	case minLen >= 6:
		allowed = 1
	}
	if allowed == 0 {
		return a == b
	}
	return levenshtein.ComputeDistance(a, b) <= allowed
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// strictSubset reports whether every token of a appears in b and b has more
// tokens than a.
func strictSubset(a, b []string) bool {
	if len(a) == 0 || len(a) >= len(b) {
		return false
	}
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}
	for _, t := range a {
		if !set[t] {
			return false
		}
	}
	return true
}
