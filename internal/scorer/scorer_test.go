// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scorer

import (
	"errors"
	"math"
	"testing"

	"namescreen/internal/decision"
	"namescreen/internal/normalizer"
	"namescreen/internal/variants"
)

func newScorer() *Scorer {
	return New(variants.NewResolver(nil))
}

func normalize(t *testing.T, raw string) decision.NormalizedName {
	t.Helper()
	name, err := normalizer.New(nil).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize(%q): %v", raw, err)
	}
	return name
}

func candidates(t *testing.T, names ...string) []decision.NormalizedCandidate {
	t.Helper()
	out := make([]decision.NormalizedCandidate, len(names))
	for i, raw := range names {
		out[i] = decision.NormalizedCandidate{
			Candidate: decision.Candidate{Text: raw, Position: i, Occurrences: 1},
			Name:      normalize(t, raw),
		}
	}
	return out
}

func TestDecide_EmptyCandidateList(t *testing.T) {
	d, err := newScorer().Decide(normalize(t, "John Smith"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Verdict != decision.VerdictNoMatch {
		t.Errorf("verdict = %v, want NO_MATCH", d.Verdict)
	}
	if d.Confidence != 0.90 {
		t.Errorf("confidence = %v, want 0.90", d.Confidence)
	}
	if d.Reason != decision.ReasonNoCandidates {
		t.Errorf("reason = %q, want %q", d.Reason, decision.ReasonNoCandidates)
	}
	if d.GoverningIndex != -1 {
		t.Errorf("governing index = %d, want -1", d.GoverningIndex)
	}
}

func TestDecide_EmptyTarget(t *testing.T) {
	_, err := newScorer().Decide(decision.NormalizedName{Raw: "..."}, candidates(t, "John Smith"))
	if !errors.Is(err, ErrInvalidTargetName) {
		t.Errorf("error = %v, want ErrInvalidTargetName", err)
	}
}

func TestDecide_Verdicts(t *testing.T) {
	cases := []struct {
		name       string
		target     string
		candidates []string
		verdict    decision.Verdict
		confidence float64
		reason     string
	}{
		{"exact", "John Smith", []string{"John Smith"}, decision.VerdictMatch, 1.0, "EXACT"},
		{"nickname", "James Wilson", []string{"Jim Wilson"}, decision.VerdictMatch, 0.9, "NICKNAME"},
		{"cultural", "Christopher Lehmann", []string{"Christoph Lehmann"}, decision.VerdictMatch, 0.85, "CULTURAL_VARIANT"},
		{"spelling", "Ahmed Mohammed", []string{"Ahmed Mohammad"}, decision.VerdictMatch, 0.8, "SPELLING_VARIANT"},
		{"partial never matches", "Alejandro", []string{"Alejandro Hamlyn"}, decision.VerdictNoMatch, 0.5, "PARTIAL"},
		{"distinct", "John Smith", []string{"Maria Gonzalez"}, decision.VerdictNoMatch, 0.9, "DISTINCT"},
		{"org confusion", "Lockbit", []string{"Lockbits"}, decision.VerdictNoMatch, 0.9, "ORG_CONFUSION"},
		{"best class governs", "James Wilson", []string{"Maria Gonzalez", "Jim Wilson", "James Wilson"}, decision.VerdictMatch, 1.0, "EXACT"},
		{"partial lowers distinct confidence", "Alejandro", []string{"Maria Gonzalez", "Alejandro Hamlyn"}, decision.VerdictNoMatch, 0.5, "PARTIAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := newScorer().Decide(normalize(t, tc.target), candidates(t, tc.candidates...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Verdict != tc.verdict {
				t.Errorf("verdict = %v, want %v", d.Verdict, tc.verdict)
			}
			if math.Abs(d.Confidence-tc.confidence) > 1e-9 {
				t.Errorf("confidence = %v, want %v", d.Confidence, tc.confidence)
			}
			if d.Reason != tc.reason {
				t.Errorf("reason = %q, want %q", d.Reason, tc.reason)
			}
		})
	}
}

func TestDecide_ReorderInvariance(t *testing.T) {
	s := newScorer()
	target := normalize(t, "James Wilson")
	names := []string{"Maria Gonzalez", "Jim Wilson", "Wagner Group", "Alejandro Hamlyn"}
	perms := [][]string{
		{names[0], names[1], names[2], names[3]},
		{names[3], names[2], names[1], names[0]},
		{names[1], names[0], names[3], names[2]},
	}

	first, err := s.Decide(target, candidates(t, perms[0]...))
	if err != nil {
		t.Fatal(err)
	}
	for _, perm := range perms[1:] {
		d, err := s.Decide(target, candidates(t, perm...))
		if err != nil {
			t.Fatal(err)
		}
		if d.Verdict != first.Verdict || d.Confidence != first.Confidence {
			t.Errorf("reordering changed outcome: got %v/%v, want %v/%v",
				d.Verdict, d.Confidence, first.Verdict, first.Confidence)
		}
	}
}

func TestDecide_IrrelevantCandidatesInert(t *testing.T) {
	s := newScorer()
	target := normalize(t, "James Wilson")

	base, err := s.Decide(target, candidates(t, "Jim Wilson"))
	if err != nil {
		t.Fatal(err)
	}
	padded, err := s.Decide(target, candidates(t, "Maria Gonzalez", "Jim Wilson", "Wagner Group"))
	if err != nil {
		t.Fatal(err)
	}
	if padded.Verdict != base.Verdict || padded.Confidence != base.Confidence || padded.Reason != base.Reason {
		t.Errorf("adding DISTINCT/ORG candidates changed outcome: got %v/%v/%s, want %v/%v/%s",
			padded.Verdict, padded.Confidence, padded.Reason, base.Verdict, base.Confidence, base.Reason)
	}
}

func TestDecide_Deterministic(t *testing.T) {
	s := newScorer()
	target := normalize(t, "Anne Brorhilker")
	cs := candidates(t, "Annie Brorhilker", "Hans Meyer")

	first, err := s.Decide(target, cs)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		d, err := s.Decide(target, cs)
		if err != nil {
			t.Fatal(err)
		}
		if d.Verdict != first.Verdict || d.Confidence != first.Confidence || d.GoverningIndex != first.GoverningIndex {
			t.Fatalf("run %d diverged from first run", i)
		}
	}
}
