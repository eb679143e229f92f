// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package decision

import "strings"

// Verdict is the final screening outcome for one target/article pair.
type Verdict string

const (
	VerdictMatch   Verdict = "MATCH"
	VerdictNoMatch Verdict = "NO_MATCH"
)

// MatchClass classifies how a candidate name relates to the target name.
// Lower values have higher precedence when selecting the governing assessment.
type MatchClass int

const (
	ClassExact MatchClass = iota
	ClassNickname
	ClassCulturalVariant
	ClassSpellingVariant
	ClassPartial
	ClassOrgConfusion
	ClassDistinct
)

// String returns the audit label for the match class.
func (c MatchClass) String() string {
	switch c {
	case ClassExact:
		return "EXACT"
	case ClassNickname:
		return "NICKNAME"
	case ClassCulturalVariant:
		return "CULTURAL_VARIANT"
	case ClassSpellingVariant:
		return "SPELLING_VARIANT"
	case ClassPartial:
		return "PARTIAL"
	case ClassOrgConfusion:
		return "ORG_CONFUSION"
	case ClassDistinct:
		return "DISTINCT"
	default:
		return "UNKNOWN"
	}
}

// Qualifies reports whether the class is identity-preserving, i.e. strong
// enough to support a MATCH verdict on its own. PARTIAL never qualifies:
// partial identity is ambiguous and only lowers NO_MATCH confidence.
func (c MatchClass) Qualifies() bool {
	return c <= ClassSpellingVariant
}

// Candidate is a person-name string extracted from an article, together with
// where and how often it occurred. Immutable once extracted.
type Candidate struct {
	Text        string
	Position    int    // byte offset of first occurrence in the article
	Occurrences int    // number of occurrences after deduplication
	Context     string // surrounding text of the first occurrence
	Source      string // extraction pattern or source that produced it
	Confidence  float64
}

// Token is one element of a normalized name: the original display form, the
// case- and diacritic-folded comparison form, and whether the token was
// recognized as an honorific or generational suffix (excluded from matching).
type Token struct {
	Display   string
	Folded    string
	Honorific bool
}

// NormalizedName is the derived, read-only comparison view of a raw name
// string. Created by the normalizer, never mutated afterwards.
type NormalizedName struct {
	Raw    string
	Tokens []Token
}

// CoreTokens returns the tokens that participate in matching, i.e. everything
// that is not an honorific or suffix.
func (n NormalizedName) CoreTokens() []Token {
	core := make([]Token, 0, len(n.Tokens))
	for _, t := range n.Tokens {
		if !t.Honorific {
			core = append(core, t)
		}
	}
	return core
}

// FoldedTokens returns the folded forms of the core tokens.
func (n NormalizedName) FoldedTokens() []string {
	core := n.CoreTokens()
	folded := make([]string, len(core))
	for i, t := range core {
		folded[i] = t.Folded
	}
	return folded
}

// Display returns the display form of the core tokens joined by spaces.
func (n NormalizedName) Display() string {
	core := n.CoreTokens()
	parts := make([]string, len(core))
	for i, t := range core {
		parts[i] = t.Display
	}
	return strings.Join(parts, " ")
}

// Folded returns the folded comparison form joined by spaces.
func (n NormalizedName) Folded() string {
	return strings.Join(n.FoldedTokens(), " ")
}

// IsEmpty reports whether no usable tokens survived normalization.
func (n NormalizedName) IsEmpty() bool {
	return len(n.CoreTokens()) == 0
}

// NormalizedCandidate pairs an extracted candidate with its normalized view.
type NormalizedCandidate struct {
	Candidate Candidate
	Name      NormalizedName
}

// VariantAssessment is the outcome of comparing one candidate against the
// target: a match class and a similarity score in [0,1]. Detail carries a
// short note on which rule fired, for explanations.
type VariantAssessment struct {
	Class     MatchClass
	Score     float64
	Candidate Candidate
	Name      NormalizedName
	Detail    string
}

// Reason tags recorded on a MatchDecision.
const (
	ReasonNoCandidates = "NO_CANDIDATES"
)

// MatchDecision is the final artifact of one screening decision. Created once
// per invocation, immutable, serialized by the caller.
type MatchDecision struct {
	Verdict     Verdict
	Confidence  float64
	Explanation string
	Target      NormalizedName
	// Assessments holds one entry per usable candidate, in input order.
	Assessments []VariantAssessment
	// GoverningIndex points into Assessments at the assessment that decided
	// the verdict, or -1 when no candidates were available.
	GoverningIndex int
	Reason         string // match class label, or ReasonNoCandidates
	Method         string // matching method label, e.g. "rule-based"
	// Dropped lists raw candidate strings discarded because they normalized
	// to no usable tokens.
	Dropped []string
}

// Governing returns the governing assessment, or nil when there is none.
func (d MatchDecision) Governing() *VariantAssessment {
	if d.GoverningIndex < 0 || d.GoverningIndex >= len(d.Assessments) {
		return nil
	}
	return &d.Assessments[d.GoverningIndex]
}

// CandidatesConsidered returns the display names of all assessed candidates
// in input order.
func (d MatchDecision) CandidatesConsidered() []string {
	names := make([]string, len(d.Assessments))
	for i, a := range d.Assessments {
		names[i] = a.Candidate.Text
	}
	return names
}
