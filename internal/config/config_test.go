// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("default format = %q, want text", cfg.Defaults.Format)
	}
	if cfg.LLM.Model == "" {
		t.Error("default LLM model should be set")
	}
	if cfg.LLM.Enabled {
		t.Error("LLM should be disabled by default")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namescreen.yaml")
	content := `
defaults:
  format: json
  verbose: true
engine:
  honorifics: [capt, gen]
llm:
  enabled: true
  model: test-model
profiles:
  strict:
    format: csv
    llm: true
    description: Batch review profile
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Defaults.Format)
	}
	if !cfg.Defaults.Verbose {
		t.Error("verbose should be true")
	}
	if len(cfg.Engine.Honorifics) != 2 {
		t.Errorf("honorifics = %v, want 2 entries", cfg.Engine.Honorifics)
	}
	if !cfg.LLM.Enabled || cfg.LLM.Model != "test-model" {
		t.Errorf("llm config = %+v", cfg.LLM)
	}

	profile := cfg.GetProfile("strict")
	if profile == nil {
		t.Fatal("strict profile should exist")
	}
	if profile.Format != "csv" || !profile.LLM {
		t.Errorf("profile = %+v", profile)
	}
	if cfg.GetProfile("absent") != nil {
		t.Error("unknown profile should return nil")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	// Defaults still come back so callers can fall back.
	if cfg == nil || cfg.Defaults.Format != "text" {
		t.Error("defaults should be returned alongside the error")
	}
}

func TestLoadConfigOrDefault_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("defaults: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := LoadConfigOrDefault(path)
	if cfg.Defaults.Format != "text" {
		t.Errorf("bad config should fall back to defaults, got %+v", cfg.Defaults)
	}
}

func TestListProfiles(t *testing.T) {
	cfg, _ := LoadConfig("")
	cfg.Profiles["a"] = Profile{}
	cfg.Profiles["b"] = Profile{}
	if got := len(cfg.ListProfiles()); got != 2 {
		t.Errorf("ListProfiles() returned %d names, want 2", got)
	}
}
