// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"namescreen/internal/decision"
	"namescreen/internal/engine"
)

type fakeCaller struct {
	response string
	err      error
	calls    int
}

func (f *fakeCaller) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.response, f.err
}

func newTestEngine() *engine.Engine {
	return engine.New(engine.Options{})
}

func candidateSet(names ...string) []decision.Candidate {
	out := make([]decision.Candidate, len(names))
	for i, name := range names {
		out[i] = decision.Candidate{Text: name, Position: i, Occurrences: 1}
	}
	return out
}

const modelResponse = `**RESULT:** MATCH
**CONFIDENCE:** 0.92
**EXPLANATION:** "Jim Wilson" is a common nickname form of "James Wilson" with the same surname.`

func TestParseResponse(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		result     string
		confidence float64
		wantErr    bool
	}{
		{"bold markers", modelResponse, "MATCH", 0.92, false},
		{"plain markers", "RESULT: NO_MATCH\nCONFIDENCE: 0.85\nEXPLANATION: Different individuals.", "NO_MATCH", 0.85, false},
		{"confidence clamped high", "RESULT: MATCH\nCONFIDENCE: 1.7\nEXPLANATION: x", "MATCH", 1.0, false},
		{"missing confidence defaults", "RESULT: MATCH\nEXPLANATION: x", "MATCH", 0.5, false},
		{"no result field", "The names are similar but inconclusive.", "", 0, true},
		{"lowercase tolerated", "result: no_match\nconfidence: 0.8", "NO_MATCH", 0.8, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := parseResponse(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.result, v.Result)
			require.InDelta(t, tc.confidence, v.Confidence, 1e-9)
			require.NotEmpty(t, v.Explanation)
		})
	}
}

func TestMatch_ModelVerdictApplied(t *testing.T) {
	caller := &fakeCaller{response: modelResponse}
	m := NewMatcher(caller, newTestEngine(), nil, "")

	d, err := m.Match(context.Background(), "James Wilson", "Jim Wilson appeared in court.", "en", candidateSet("Jim Wilson"))
	require.NoError(t, err)
	require.Equal(t, decision.VerdictMatch, d.Verdict)
	require.InDelta(t, 0.92, d.Confidence, 1e-9)
	require.Equal(t, MethodLLM, d.Method)
	// Rule-engine assessments survive for the audit record.
	require.Len(t, d.Assessments, 1)
	require.Equal(t, decision.ClassNickname, d.Assessments[0].Class)
}

func TestMatch_TransportFailureFallsBack(t *testing.T) {
	caller := &fakeCaller{err: errors.New("connection refused")}
	m := NewMatcher(caller, newTestEngine(), nil, "")

	d, err := m.Match(context.Background(), "James Wilson", "Jim Wilson appeared.", "en", candidateSet("Jim Wilson"))
	require.NoError(t, err)
	require.Equal(t, decision.VerdictMatch, d.Verdict)
	require.InDelta(t, 0.9, d.Confidence, 1e-9)
	require.Equal(t, MethodFallback, d.Method)
}

func TestMatch_UnparsableResponseFallsBack(t *testing.T) {
	caller := &fakeCaller{response: "I cannot determine this."}
	m := NewMatcher(caller, newTestEngine(), nil, "")

	d, err := m.Match(context.Background(), "John Smith", "Maria Gonzalez spoke.", "en", candidateSet("Maria Gonzalez"))
	require.NoError(t, err)
	require.Equal(t, decision.VerdictNoMatch, d.Verdict)
	require.Equal(t, MethodFallback, d.Method)
}

func TestMatch_InvalidTargetStillFatal(t *testing.T) {
	caller := &fakeCaller{response: modelResponse}
	m := NewMatcher(caller, newTestEngine(), nil, "")

	_, err := m.Match(context.Background(), "   ", "text", "en", candidateSet("John Smith"))
	require.Error(t, err)
	require.Zero(t, caller.calls, "model must not be called for an invalid target")
}

func TestMatch_CacheReplaysVerdict(t *testing.T) {
	cacheDir := t.TempDir()
	caller := &fakeCaller{response: modelResponse}
	m := NewMatcher(caller, newTestEngine(), nil, cacheDir)

	first, err := m.Match(context.Background(), "James Wilson", "Jim Wilson appeared.", "en", candidateSet("Jim Wilson"))
	require.NoError(t, err)
	require.Equal(t, 1, caller.calls)

	// A second matcher with a failing caller replays the cached verdict.
	failing := &fakeCaller{err: errors.New("unreachable")}
	m2 := NewMatcher(failing, newTestEngine(), nil, cacheDir)
	second, err := m2.Match(context.Background(), "James Wilson", "Jim Wilson appeared.", "en", candidateSet("Jim Wilson"))
	require.NoError(t, err)
	require.Zero(t, failing.calls)
	require.Equal(t, first.Verdict, second.Verdict)
	require.Equal(t, first.Confidence, second.Confidence)
	require.Equal(t, MethodLLM, second.Method)
}

func TestCacheKey_OrderIndependent(t *testing.T) {
	a := cacheKey("James Wilson", candidateSet("Jim Wilson", "Maria Gonzalez"))
	b := cacheKey("James Wilson", candidateSet("Maria Gonzalez", "Jim Wilson"))
	require.Equal(t, a, b)

	c := cacheKey("John Smith", candidateSet("Jim Wilson", "Maria Gonzalez"))
	require.NotEqual(t, a, c)
}

func TestStripPromptMentionsCandidates(t *testing.T) {
	prompt := buildPrompt("James Wilson", "Jim Wilson appeared in court.", "en", candidateSet("Jim Wilson"))
	for _, want := range []string{`"James Wilson"`, `"Jim Wilson"`, "RESULT:", "CONFIDENCE:", "EXPLANATION:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
