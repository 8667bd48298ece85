// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the owlet application.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeInput prepares user-submitted text (questions, thread titles) for
// the portal API. It NFC-normalizes the text so composed and decomposed
// forms compare equal server-side, strips control characters except newlines
// and tabs, and trims surrounding whitespace.
func SanitizeInput(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// CollapseWhitespace replaces runs of whitespace (including newlines) with a
// single space. Used for single-line displays such as thread titles and
// transcript previews.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
