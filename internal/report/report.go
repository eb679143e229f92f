// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report assembles the audit-ready screening record from a match
// decision and the article it was made over.
package report

import (
	"time"

	"namescreen/internal/decision"
	"namescreen/internal/version"
)

// Entity is one extracted person as recorded in the report.
type Entity struct {
	Name        string  `json:"name" yaml:"name"`
	Occurrences int     `json:"occurrences" yaml:"occurrences"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	MatchClass  string  `json:"match_class" yaml:"match_class"`
	Context     string  `json:"context,omitempty" yaml:"context,omitempty"`
}

// Report is the full screening record for one target/article pair. Field
// names follow the established compliance report layout so downstream
// tooling keeps working.
type Report struct {
	FilePath         string   `json:"file_path" yaml:"file_path"`
	TargetName       string   `json:"target_name" yaml:"target_name"`
	DetectedLanguage string   `json:"detected_language" yaml:"detected_language"`
	MatchResult      string   `json:"match_result" yaml:"match_result"`
	MatchConfidence  float64  `json:"match_confidence" yaml:"match_confidence"`
	MatchExplanation string   `json:"match_explanation" yaml:"match_explanation"`
	MatchMethod      string   `json:"match_method" yaml:"match_method"`
	EntitiesAnalyzed []Entity `json:"entities_analyzed" yaml:"entities_analyzed"`
	DroppedInputs    []string `json:"dropped_inputs,omitempty" yaml:"dropped_inputs,omitempty"`
	PageCount        int      `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	Timestamp        string   `json:"timestamp" yaml:"timestamp"`
	PipelineVersion  string   `json:"pipeline_version" yaml:"pipeline_version"`
}

// Build creates the report for one decision.
func Build(filePath, langCode string, pageCount int, d decision.MatchDecision) *Report {
	entities := make([]Entity, len(d.Assessments))
	for i, a := range d.Assessments {
		entities[i] = Entity{
			Name:        a.Candidate.Text,
			Occurrences: a.Candidate.Occurrences,
			Confidence:  a.Candidate.Confidence,
			MatchClass:  a.Class.String(),
			Context:     a.Candidate.Context,
		}
	}

	return &Report{
		FilePath:         filePath,
		TargetName:       d.Target.Raw,
		DetectedLanguage: langCode,
		MatchResult:      string(d.Verdict),
		MatchConfidence:  d.Confidence,
		MatchExplanation: d.Explanation,
		MatchMethod:      d.Method,
		EntitiesAnalyzed: entities,
		DroppedInputs:    d.Dropped,
		PageCount:        pageCount,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		PipelineVersion:  version.Pipeline(),
	}
}
