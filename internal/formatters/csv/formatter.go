// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"namescreen/internal/formatters"
	"namescreen/internal/report"
)

// Formatter implements CSV output formatting, one row per analyzed person so
// the file imports cleanly into review spreadsheets.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(r *report.Report, options formatters.FormatterOptions) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{"File", "Target", "Language", "Verdict", "Confidence", "Method", "Person", "Match Class", "Occurrences"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV: %w", err)
	}

	base := []string{
		r.FilePath,
		r.TargetName,
		r.DetectedLanguage,
		r.MatchResult,
		fmt.Sprintf("%.2f", r.MatchConfidence),
		r.MatchMethod,
	}

	if len(r.EntitiesAnalyzed) == 0 {
		if err := w.Write(append(append([]string{}, base...), "", "", "")); err != nil {
			return "", fmt.Errorf("error writing CSV: %w", err)
		}
	}
	for _, e := range r.EntitiesAnalyzed {
		row := append(append([]string{}, base...), e.Name, e.MatchClass, fmt.Sprintf("%d", e.Occurrences))
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV: %w", err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func init() {
	formatters.Register(NewFormatter())
}
