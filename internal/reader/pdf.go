// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// maxPDFPages bounds extraction work on very large documents. Adverse-media
// articles run a handful of pages; anything past the cap is ignored.
const maxPDFPages = 50

// readPDF validates the PDF and extracts its text page by page.
func readPDF(path string) (*Document, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	pages := pageCount
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := extractPageText(p)
		if err != nil || text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	return &Document{
		Path:      path,
		Text:      strings.TrimSpace(buf.String()),
		Format:    "pdf",
		PageCount: pageCount,
	}, nil
}

// extractPageText prefers row-based extraction for correct word spacing and
// falls back to the plain-text stream when row data is unavailable.
func extractPageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF Y coordinates grow upward; read top of page first.
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var out strings.Builder
	for _, row := range sorted {
		content := append([]pdf.Text{}, row.Content...)
		sort.Slice(content, func(i, j int) bool {
			return content[i].X < content[j].X
		})
		var line strings.Builder
		var lastEnd float64
		for _, t := range content {
			if line.Len() > 0 && t.X-lastEnd > t.FontSize*0.3 {
				line.WriteByte(' ')
			}
			line.WriteString(t.S)
			lastEnd = t.X + t.W
		}
		if line.Len() > 0 {
			out.WriteString(strings.TrimSpace(line.String()))
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

func averageY(content []pdf.Text) float64 {
	if len(content) == 0 {
		return 0
	}
	var sum float64
	for _, t := range content {
		sum += t.Y
	}
	return sum / float64(len(content))
}
