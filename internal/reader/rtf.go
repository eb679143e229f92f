// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"
)

// readRTF extracts plain text from an RTF article. The parser handles the
// subset of RTF that word processors emit for article text: control words,
// group nesting, \uN unicode escapes, and \'hh hex escapes (interpreted as
// Windows-1252, the RTF default).
func readRTF(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading RTF file: %w", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, `{\rtf`) {
		return nil, fmt.Errorf("not an RTF file: %s", path)
	}
	return &Document{
		Path:   path,
		Text:   strings.TrimSpace(stripRTF(content)),
		Format: "rtf",
	}, nil
}

// Destination groups whose content is metadata, not article text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
	"field":      false, // field results contain visible text
}

func stripRTF(content string) string {
	var out strings.Builder
	skipDepth := 0
	depth := 0
	i := 0

	for i < len(content) {
		c := content[i]
		switch c {
		case '{':
			depth++
			i++
		case '}':
			if skipDepth > 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
			i++
		case '\\':
			word, param, consumed := parseControl(content[i:])
			i += consumed
			if skipDepth > 0 {
				continue
			}
			switch word {
			case "*":
				// \* introduces a destination we do not understand; skip the
				// enclosing group.
				skipDepth = depth
			case "par", "line", "sect", "page":
				out.WriteByte('\n')
			case "tab", "cell":
				out.WriteByte(' ')
			case "emdash", "endash":
				out.WriteByte('-')
			case "lquote", "rquote":
				out.WriteByte('\'')
			case "ldblquote", "rdblquote":
				out.WriteByte('"')
			case "u":
				// \uN: signed 16-bit code point, followed by a fallback
				// character that must be dropped. The fallback is either a
				// plain byte or a \'hh hex escape.
				out.WriteRune(decodeRTFUnicode(param))
				if i < len(content) {
					switch {
					case strings.HasPrefix(content[i:], `\'`):
						_, _, skip := parseControl(content[i:])
						i += skip
					case content[i] != '\\' && content[i] != '{' && content[i] != '}':
						i++
					}
				}
			case "'":
				if r, ok := cp1252[byte(param)]; ok {
					out.WriteRune(r)
				} else {
					// Remaining Windows-1252 bytes coincide with Latin-1.
					out.WriteRune(rune(param))
				}
			case "":
				// Escaped literal: \\, \{, \}
				if consumed == 2 {
					out.WriteByte(content[i-1])
				}
			default:
				if rtfSkipGroups[word] {
					skipDepth = depth
				}
			}
		case '\r', '\n':
			i++
		default:
			if skipDepth == 0 {
				out.WriteByte(c)
			}
			i++
		}
	}
	return collapseBlankLines(out.String())
}

// parseControl parses one control word or symbol starting at the backslash.
// Returns the word, its numeric parameter, and the bytes consumed.
func parseControl(s string) (word string, param int, consumed int) {
	if len(s) < 2 {
		return "", 0, len(s)
	}
	c := s[1]

	// Control symbols
	if c == '\\' || c == '{' || c == '}' {
		return "", 0, 2
	}
	if c == '*' {
		return "*", 0, 2
	}
	if c == '\'' {
		if len(s) >= 4 {
			if v, err := strconv.ParseInt(s[2:4], 16, 32); err == nil {
				return "'", int(v), 4
			}
		}
		return "'", 0, 2
	}
	if !isAlpha(c) {
		return "", 0, 2
	}

	j := 1
	for j < len(s) && isAlpha(s[j]) {
		j++
	}
	word = s[1:j]

	numStart := j
	if j < len(s) && (s[j] == '-' || isDigit(s[j])) {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		param, _ = strconv.Atoi(s[numStart:j])
	}

	// A single space after a control word is part of the control word.
	if j < len(s) && s[j] == ' ' {
		j++
	}
	return word, param, j
}

func decodeRTFUnicode(param int) rune {
	if param < 0 {
		param += 65536
	}
	r := utf16.Decode([]uint16{uint16(param)})
	if len(r) == 1 {
		return r[0]
	}
	return '?'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// cp1252 maps the Windows-1252 bytes that differ from Latin-1. All other
// bytes map directly to the same code point.
var cp1252 = map[byte]rune{
	0x80: '€', 0x82: '‚', 0x84: '„', 0x85: '…', 0x91: '\'', 0x92: '\'',
	0x93: '"', 0x94: '"', 0x96: '–', 0x97: '—', 0x99: '™', 0xA0: ' ',
}
