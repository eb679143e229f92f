// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"namescreen/internal/formatters"
	"namescreen/internal/report"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable screening summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(r *report.Report, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	b.WriteString(f.colors["white"].Sprint("Screening Result"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Target:    %s\n", r.TargetName)
	fmt.Fprintf(&b, "Article:   %s (%s)\n", r.FilePath, strings.ToUpper(r.DetectedLanguage))

	verdict := f.colorVerdict(r.MatchResult)
	fmt.Fprintf(&b, "Verdict:   %s\n", verdict)
	fmt.Fprintf(&b, "Confidence: %s\n", f.colorConfidence(r.MatchConfidence))
	fmt.Fprintf(&b, "Method:    %s\n\n", r.MatchMethod)

	b.WriteString(f.colors["white"].Sprint("Explanation"))
	b.WriteString("\n")
	b.WriteString(r.MatchExplanation)
	b.WriteString("\n")

	if len(r.EntitiesAnalyzed) > 0 {
		b.WriteString("\n")
		b.WriteString(f.colors["white"].Sprintf("Persons Analyzed (%d)", len(r.EntitiesAnalyzed)))
		b.WriteString("\n")
		for _, e := range r.EntitiesAnalyzed {
			fmt.Fprintf(&b, "  %-30s %-17s x%d\n", e.Name, e.MatchClass, e.Occurrences)
			if options.Verbose && e.Context != "" {
				fmt.Fprintf(&b, "      ...%s...\n", e.Context)
			}
		}
	}

	if len(r.DroppedInputs) > 0 && options.Verbose {
		fmt.Fprintf(&b, "\nDropped inputs: %s\n", strings.Join(r.DroppedInputs, ", "))
	}

	fmt.Fprintf(&b, "\n%s | %s\n", r.PipelineVersion, r.Timestamp)

	return b.String(), nil
}

func (f *Formatter) colorVerdict(verdict string) string {
	if verdict == "MATCH" {
		return f.colors["red"].Sprint(verdict)
	}
	return f.colors["green"].Sprint(verdict)
}

func (f *Formatter) colorConfidence(conf float64) string {
	pct := fmt.Sprintf("%.0f%%", conf*100)
	switch {
	case conf >= 0.9:
		return f.colors["green"].Sprint(pct)
	case conf >= 0.6:
		return f.colors["yellow"].Sprint(pct)
	default:
		return f.colors["red"].Sprint(pct)
	}
}

func init() {
	formatters.Register(NewFormatter())
}
