// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"namescreen/internal/config"
	"namescreen/internal/report"
)

func TestExitCode(t *testing.T) {
	match := &report.Report{MatchResult: "MATCH"}
	noMatch := &report.Report{MatchResult: "NO_MATCH"}

	cases := []struct {
		name    string
		reports []*report.Report
		failed  int
		want    int
	}{
		{"clean no match", []*report.Report{noMatch}, 0, exitNoMatch},
		{"match", []*report.Report{noMatch, match}, 0, exitMatch},
		{"failures and no match", []*report.Report{noMatch}, 1, exitError},
		{"all files failed", nil, 3, exitError},
		{"match wins over failures", []*report.Report{match}, 2, exitMatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.reports, tc.failed); got != tc.want {
				t.Errorf("exitCode = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRun_DirectoryReportsFailedFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("Maria Gonzalez spoke to reporters in Madrid."), 0o600); err != nil {
		t.Fatal(err)
	}
	// An .rtf without the RTF signature fails to read.
	bad := filepath.Join(dir, "bad.rtf")
	if err := os.WriteFile(bad, []byte("not an rtf document"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.LoadConfig("")
	final := &finalConfiguration{format: "text"}

	reports, failed, err := run(final, cfg, nil, dir, "John Smith")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].MatchResult != "NO_MATCH" {
		t.Errorf("match_result = %q", reports[0].MatchResult)
	}
	if got := exitCode(reports, failed); got != exitError {
		t.Errorf("exitCode = %d, want %d", got, exitError)
	}
}

func TestRun_SingleFileFailureIsFatal(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.rtf")
	if err := os.WriteFile(bad, []byte("not an rtf document"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.LoadConfig("")
	if _, _, err := run(&finalConfiguration{format: "text"}, cfg, nil, bad, "John Smith"); err == nil {
		t.Error("expected error for an unreadable single article")
	}
}
