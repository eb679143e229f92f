// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"
	"strings"

	goyaml "gopkg.in/yaml.v3"

	"namescreen/internal/formatters"
	"namescreen/internal/report"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML output for configuration-style consumption"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(r *report.Report, options formatters.FormatterOptions) (string, error) {
	data, err := goyaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func init() {
	formatters.Register(NewFormatter())
}
