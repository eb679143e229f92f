// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package variants

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Embedded default equivalence tables. Custom tables can be loaded from a
// YAML file with the same layout via LoadTablesFile.
//
//go:embed data/tables.yaml
var defaultTablesYAML []byte

// tableFile is the on-disk/embedded YAML layout of the equivalence tables.
type tableFile struct {
	Nicknames     [][]string `yaml:"nicknames"`
	Cultural      [][]string `yaml:"cultural"`
	Organizations []string   `yaml:"organizations"`
	OrgSuffixes   []string   `yaml:"org_suffixes"`
}

// Tables holds the read-only lookup data the resolver consults: nickname
// groups, cross-language given-name equivalence groups, and the organization
// gazetteer. Built once, shared by reference, never mutated afterwards.
type Tables struct {
	nicknameGroups map[string]int
	culturalGroups map[string]int
	organizations  map[string]bool
	orgSuffixes    map[string]bool
}

// DefaultTables parses the embedded equivalence tables. The embedded data is
// validated at build time, so a parse failure here is a programming error.
func DefaultTables() *Tables {
	t, err := parseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded variant tables are invalid: %v", err))
	}
	return t
}

// LoadTablesFile loads equivalence tables from a YAML file, replacing the
// embedded defaults entirely.
func LoadTablesFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading tables file: %w", err)
	}
	t, err := parseTables(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing tables file %s: %w", path, err)
	}
	return t, nil
}

func parseTables(data []byte) (*Tables, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	t := &Tables{
		nicknameGroups: make(map[string]int),
		culturalGroups: make(map[string]int),
		organizations:  make(map[string]bool),
		orgSuffixes:    make(map[string]bool),
	}
	indexGroups(t.nicknameGroups, file.Nicknames)
	indexGroups(t.culturalGroups, file.Cultural)
	for _, org := range file.Organizations {
		t.organizations[normalizeEntry(org)] = true
	}
	for _, suffix := range file.OrgSuffixes {
		t.orgSuffixes[normalizeEntry(suffix)] = true
	}
	return t, nil
}

// indexGroups assigns each name to its group index. A name appearing in more
// than one group keeps its first assignment; equivalence is within-group only.
func indexGroups(index map[string]int, groups [][]string) {
	for i, group := range groups {
		for _, name := range group {
			key := normalizeEntry(name)
			if key == "" {
				continue
			}
			if _, exists := index[key]; !exists {
				index[key] = i
			}
		}
	}
}

func normalizeEntry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NicknameEquivalent reports whether two folded given-name tokens are
// recognized short/long forms of the same name (bidirectional).
func (t *Tables) NicknameEquivalent(a, b string) bool {
	return sameGroup(t.nicknameGroups, a, b)
}

// CulturalEquivalent reports whether two folded given-name tokens are
// recognized cross-language forms of the same name.
func (t *Tables) CulturalEquivalent(a, b string) bool {
	return sameGroup(t.culturalGroups, a, b)
}

// KnownOrganization reports whether a folded name is in the organization
// gazetteer, directly or as a plural/possessive of a gazetteer entry.
func (t *Tables) KnownOrganization(folded string) bool {
	if t.organizations[folded] {
		return true
	}
	if singular, ok := strings.CutSuffix(folded, "s"); ok && t.organizations[singular] {
		return true
	}
	return false
}

// OrganizationSuffix reports whether a folded token is a business suffix
// (inc, llc, gmbh, ...).
func (t *Tables) OrganizationSuffix(token string) bool {
	return t.orgSuffixes[token]
}

func sameGroup(index map[string]int, a, b string) bool {
	if a == b {
		return true
	}
	ga, ok := index[a]
	if !ok {
		return false
	}
	gb, ok := index[b]
	return ok && ga == gb
}
