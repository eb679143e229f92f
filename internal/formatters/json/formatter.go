// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"namescreen/internal/formatters"
	"namescreen/internal/report"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(r *report.Report, options formatters.FormatterOptions) (string, error) {
	out := r
	if !options.Verbose {
		// Context snippets are analyst detail, not record of decision.
		trimmed := *r
		trimmed.EntitiesAnalyzed = make([]report.Entity, len(r.EntitiesAnalyzed))
		for i, e := range r.EntitiesAnalyzed {
			e.Context = ""
			trimmed.EntitiesAnalyzed[i] = e
		}
		out = &trimmed
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(data), nil
}

func init() {
	formatters.Register(NewFormatter())
}
