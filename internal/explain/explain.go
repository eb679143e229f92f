// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package explain renders the audit-ready justification for a match decision.
// Output is fully deterministic: template selection is keyed by the governing
// assessment's class and the verdict, and every explanation names the exact
// target and candidate strings so it can be verified against the decision's
// candidate list.
package explain

import (
	"fmt"
	"strings"

	"namescreen/internal/decision"
)

// maxListedCandidates bounds how many candidate names an explanation
// enumerates. The full list is always available on the decision itself.
const maxListedCandidates = 5

// Build renders the explanation for a decision. Calling it twice with the
// same decision yields byte-identical output.
func Build(d decision.MatchDecision) string {
	target := d.Target.Display()

	if d.Reason == decision.ReasonNoCandidates {
		return fmt.Sprintf("No person names were found in the article to compare against target %q.", target)
	}

	governing := d.Governing()
	if governing == nil {
		return fmt.Sprintf("No candidates were considered for target %q.", target)
	}
	candidate := governing.Candidate.Text

	switch governing.Class {
	case decision.ClassExact:
		return fmt.Sprintf("Exact name match: target %q matches %q in the article.", target, candidate)
	case decision.ClassNickname:
		return fmt.Sprintf("Nickname match: %q in the article denotes target %q (%s).",
			candidate, target, governing.Detail)
	case decision.ClassCulturalVariant:
		return fmt.Sprintf("Cultural name variant: %q in the article denotes target %q (%s).",
			candidate, target, governing.Detail)
	case decision.ClassSpellingVariant:
		return fmt.Sprintf("Spelling variant: %q in the article denotes target %q (%s).",
			candidate, target, governing.Detail)
	case decision.ClassPartial:
		return fmt.Sprintf("No reliable match for target %q: %q shares only part of the name, "+
			"and partial identity is not sufficient evidence on its own. Candidates considered: %s.",
			target, candidate, candidateList(d))
	case decision.ClassOrgConfusion:
		return fmt.Sprintf("No match for target %q: %q denotes an organization rather than an individual "+
			"(%s) and is excluded from person matching regardless of lexical similarity.",
			target, candidate, governing.Detail)
	default:
		return fmt.Sprintf("No match: none of the person names in the article denote target %q. "+
			"Candidates considered: %s.", target, candidateList(d))
	}
}

// candidateList formats the considered candidates in first-occurrence order.
func candidateList(d decision.MatchDecision) string {
	names := d.CandidatesConsidered()
	if len(names) == 0 {
		return "none"
	}
	quoted := make([]string, 0, maxListedCandidates)
	for i, name := range names {
		if i == maxListedCandidates {
			quoted = append(quoted, fmt.Sprintf("and %d more", len(names)-maxListedCandidates))
			break
		}
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	return strings.Join(quoted, ", ")
}
