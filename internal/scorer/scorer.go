// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scorer aggregates variant assessments into a calibrated verdict
// under the conservative decision policy: a weak match must never terminate
// evaluation early while a stronger match exists later in the candidate list.
package scorer

import (
	"errors"

	"namescreen/internal/decision"
	"namescreen/internal/variants"
)

// ErrInvalidTargetName indicates a target name that normalizes to no usable
// tokens. Fatal to the decision: there is nothing to match against.
var ErrInvalidTargetName = errors.New("target name contains no usable tokens")

// Confidence constants for the no-evidence cases. A clean DISTINCT or empty
// candidate list yields 0.90; a near-miss PARTIAL lowers the NO_MATCH
// confidence to signal residual ambiguity for human review.
const (
	noCandidatesConfidence = 0.90
	distinctResidual       = 0.10
)

// Scorer turns a target and its candidate set into a MatchDecision. Safe for
// concurrent use: every call is a pure computation over its inputs.
type Scorer struct {
	resolver *variants.Resolver
}

// New creates a Scorer over the given resolver.
func New(resolver *variants.Resolver) *Scorer {
	return &Scorer{resolver: resolver}
}

// Decide produces one VariantAssessment per candidate and derives the verdict
// from the full set. The governing assessment is the one with the highest
// class precedence, ties broken by highest score, then by first occurrence
// order. Total over well-formed input: the only error is an unusable target.
func (s *Scorer) Decide(target decision.NormalizedName, candidates []decision.NormalizedCandidate) (decision.MatchDecision, error) {
	if target.IsEmpty() {
		return decision.MatchDecision{}, ErrInvalidTargetName
	}

	d := decision.MatchDecision{
		Target:         target,
		GoverningIndex: -1,
	}

	if len(candidates) == 0 {
		d.Verdict = decision.VerdictNoMatch
		d.Confidence = noCandidatesConfidence
		d.Reason = decision.ReasonNoCandidates
		return d, nil
	}

	d.Assessments = make([]decision.VariantAssessment, len(candidates))
	for i, c := range candidates {
		a := s.resolver.Assess(target, c.Name)
		a.Candidate = c.Candidate
		d.Assessments[i] = a
	}

	d.GoverningIndex = governingIndex(d.Assessments)
	governing := d.Assessments[d.GoverningIndex]
	d.Reason = governing.Class.String()

	if governing.Class.Qualifies() {
		d.Verdict = decision.VerdictMatch
		d.Confidence = governing.Score
		return d, nil
	}

	// No qualifying class present. Confidence reflects how close the best
	// qualifying-adjacent (PARTIAL) candidate came: residual ambiguity lowers
	// it below the 0.90 floor of the clean case.
	residual := distinctResidual
	for _, a := range d.Assessments {
		if a.Class == decision.ClassPartial && a.Score > residual {
			residual = a.Score
		}
	}
	d.Verdict = decision.VerdictNoMatch
	d.Confidence = 1.0 - residual
	return d, nil
}

// governingIndex selects the assessment that determines the verdict. Input
// order is preserved for tie-breaking, so reordering the candidate list can
// change which equally ranked candidate is named in the explanation but never
// the verdict or confidence.
func governingIndex(assessments []decision.VariantAssessment) int {
	best := 0
	for i := 1; i < len(assessments); i++ {
		a, b := assessments[i], assessments[best]
		if a.Class < b.Class || (a.Class == b.Class && a.Score > b.Score) {
			best = i
		}
	}
	return best
}
