// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reader ingests article files and produces plain UTF-8 text for the
// screening pipeline. Plain text, RTF, and PDF articles are supported; the
// format is routed by file extension.
package reader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"namescreen/internal/observability"
)

// Document is the ingested article: its path, extracted plain text, and the
// format it was read from.
type Document struct {
	Path      string
	Text      string
	Format    string // "text", "rtf", or "pdf"
	PageCount int    // PDF only
}

// Reader reads article files. Safe for concurrent use.
type Reader struct {
	observer *observability.Observer
}

// New creates a Reader.
func New(observer *observability.Observer) *Reader {
	return &Reader{observer: observer}
}

// Read loads the article at path and extracts its plain text.
func (r *Reader) Read(path string) (*Document, error) {
	done := r.observer.StartTiming("reader", "read")

	doc, err := r.read(path)
	if err != nil {
		done(false, map[string]any{"path": path, "error": err.Error()})
		return nil, err
	}
	done(true, map[string]any{"path": path, "format": doc.Format, "chars": len(doc.Text)})
	return doc, nil
}

func (r *Reader) read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing article file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("article path is a directory: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".rtf":
		return readRTF(path)
	case ".pdf":
		return readPDF(path)
	case ".txt", ".text", ".md", "":
		return readPlainText(path)
	default:
		return nil, fmt.Errorf("unsupported article format %q: use .txt, .rtf, or .pdf", filepath.Ext(path))
	}
}

// readPlainText reads a UTF-8 text file, tolerating a byte-order mark and
// normalizing line endings.
func readPlainText(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading article file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return &Document{
		Path:   path,
		Text:   strings.TrimSpace(text),
		Format: "text",
	}, nil
}
