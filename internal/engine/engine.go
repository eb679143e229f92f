// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine is the public entry point of the name matching decision
// engine: it normalizes the target and candidates, drives the variant
// resolver and evidence scorer, and returns the final structured decision.
package engine

import (
	"errors"
	"fmt"

	"namescreen/internal/decision"
	"namescreen/internal/explain"
	"namescreen/internal/normalizer"
	"namescreen/internal/observability"
	"namescreen/internal/scorer"
	"namescreen/internal/variants"
)

// MethodRuleBased is the matching method label stamped on decisions produced
// by the deterministic rule engine.
const MethodRuleBased = "rule-based"

// Engine runs one screening decision per call. Every call is pure with
// respect to its inputs; the lookup tables are loaded once and shared
// read-only, so callers may run many invocations concurrently.
type Engine struct {
	normalizer *normalizer.Normalizer
	scorer     *scorer.Scorer
	observer   *observability.Observer
}

// Options configures engine construction. Zero values select the embedded
// default tables, the default honorific set, and no observability.
type Options struct {
	Tables *variants.Tables
	// Honorifics are stripped during name normalization in addition to the
	// built-in set.
	Honorifics []string
	Observer   *observability.Observer
}

// New constructs an Engine.
func New(opts Options) *Engine {
	honorifics := opts.Honorifics
	if len(honorifics) > 0 {
		honorifics = append(append([]string{}, normalizer.DefaultHonorifics...), honorifics...)
	}
	return &Engine{
		normalizer: normalizer.New(honorifics),
		scorer:     scorer.New(variants.NewResolver(opts.Tables)),
		observer:   opts.Observer,
	}
}

// Match decides whether the target person is referenced by any of the raw
// candidate strings. Candidates that normalize to nothing are dropped and
// recorded on the decision; an unusable target aborts the decision with
// scorer.ErrInvalidTargetName.
func (e *Engine) Match(targetName string, candidates []string) (decision.MatchDecision, error) {
	wrapped := make([]decision.Candidate, len(candidates))
	for i, text := range candidates {
		wrapped[i] = decision.Candidate{Text: text, Position: i, Occurrences: 1}
	}
	return e.MatchCandidates(targetName, wrapped)
}

// MatchCandidates is Match for candidates that carry extraction metadata
// (position, occurrence count, context).
func (e *Engine) MatchCandidates(targetName string, candidates []decision.Candidate) (decision.MatchDecision, error) {
	done := e.observer.StartTiming("engine", "match")

	target, err := e.normalizer.Normalize(targetName)
	if err != nil {
		done(false, map[string]any{"error": "invalid target name"})
		if errors.Is(err, normalizer.ErrEmptyName) {
			return decision.MatchDecision{}, fmt.Errorf("target %q: %w", targetName, scorer.ErrInvalidTargetName)
		}
		return decision.MatchDecision{}, err
	}

	var usable []decision.NormalizedCandidate
	var dropped []string
	for _, c := range candidates {
		name, err := e.normalizer.Normalize(c.Text)
		if err != nil {
			// Recoverable: the candidate is unusable, the decision proceeds
			// over the remainder.
			dropped = append(dropped, c.Text)
			e.observer.Log(observability.OperationData{
				Component: "engine",
				Operation: "drop_candidate",
				Target:    targetName,
				Success:   true,
				Metadata:  map[string]any{"candidate": c.Text},
			})
			continue
		}
		usable = append(usable, decision.NormalizedCandidate{Candidate: c, Name: name})
	}

	d, err := e.scorer.Decide(target, usable)
	if err != nil {
		done(false, nil)
		return decision.MatchDecision{}, err
	}

	d.Dropped = dropped
	d.Method = MethodRuleBased
	d.Explanation = explain.Build(d)

	done(true, map[string]any{
		"verdict":    string(d.Verdict),
		"confidence": d.Confidence,
		"reason":     d.Reason,
		"candidates": len(usable),
		"dropped":    len(dropped),
	})
	return d, nil
}
