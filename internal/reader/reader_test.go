// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeArticle(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead_PlainText(t *testing.T) {
	path := writeArticle(t, "article.txt", []byte("John Smith was charged.\r\nThe trial begins Monday.\n"))
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Format != "text" {
		t.Errorf("format = %q, want text", doc.Format)
	}
	want := "John Smith was charged.\nThe trial begins Monday."
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestRead_PlainTextBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("El fiscal habló.")...)
	path := writeArticle(t, "article.txt", data)
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Text != "El fiscal habló." {
		t.Errorf("BOM should be stripped, got %q", doc.Text)
	}
}

func TestRead_RTF(t *testing.T) {
	rtf := `{\rtf1\ansi{\fonttbl{\f0 Arial;}}\f0 John Smith was \b charged\b0 .\par The trial begins Monday.}`
	path := writeArticle(t, "article.rtf", []byte(rtf))
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Format != "rtf" {
		t.Errorf("format = %q, want rtf", doc.Format)
	}
	if !strings.Contains(doc.Text, "John Smith was charged") {
		t.Errorf("text = %q, want article body without control words", doc.Text)
	}
	if strings.Contains(doc.Text, "Arial") {
		t.Errorf("font table should be stripped, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "\nThe trial begins Monday.") {
		t.Errorf("\\par should become a newline, got %q", doc.Text)
	}
}

func TestRead_RTFHexEscape(t *testing.T) {
	rtf := `{\rtf1\ansi Jos\'e9 Garc\'eda appeared in court.}`
	path := writeArticle(t, "article.rtf", []byte(rtf))
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(doc.Text, "José García") {
		t.Errorf("hex escapes should decode to accented characters, got %q", doc.Text)
	}
}

func TestRead_RTFUnicodeEscape(t *testing.T) {
	rtf := `{\rtf1\ansi M\u252?ller was investigated.}`
	path := writeArticle(t, "article.rtf", []byte(rtf))
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(doc.Text, "Müller") {
		t.Errorf("unicode escape should decode with fallback dropped, got %q", doc.Text)
	}
}

func TestRead_RTFUnicodeEscapeHexFallback(t *testing.T) {
	rtf := `{\rtf1\ansi \u915\'3f Petridis was named.}`
	path := writeArticle(t, "article.rtf", []byte(rtf))
	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(doc.Text, "Γ Petridis") {
		t.Errorf("unicode escape should decode, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "?") {
		t.Errorf("hex-escape fallback should be dropped, got %q", doc.Text)
	}
}

func TestRead_RTFNotRTF(t *testing.T) {
	path := writeArticle(t, "article.rtf", []byte("plain text masquerading"))
	if _, err := New(nil).Read(path); err == nil {
		t.Error("expected error for non-RTF content in .rtf file")
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	path := writeArticle(t, "article.docx", []byte("irrelevant"))
	if _, err := New(nil).Read(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := New(nil).Read(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRead_Directory(t *testing.T) {
	if _, err := New(nil).Read(t.TempDir()); err == nil {
		t.Error("expected error when path is a directory")
	}
}
