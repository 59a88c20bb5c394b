// header.go: Header presence inference from the first two logical rows
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"io"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// inferHeader decides whether the first logical row is a header. It reads
// through whatever the buffer already holds, pulling more runes from the
// source (and extending the buffer) only until two rows are materialized.
//
// Heuristic, in order:
//  1. differing field counts between row one and row two -> header
//  2. row one uniformly non-numeric while at least half of row two's
//     columns (and at least one) parse as numbers -> header
//  3. otherwise -> no header
//
// Fewer than two rows is ErrInsufficientData; the fallback policy belongs
// to the resolver, not here.
func inferHeader(src ScalarSource, buf *LookaheadBuffer, field, row []rune, maxRunes int) (bool, error) {
	rows, err := materializeRows(src, buf, row, maxRunes)
	if err != nil {
		return false, err
	}
	if len(rows) < 2 {
		return false, ErrInsufficientData
	}

	first := splitFields(rows[0], field)
	second := splitFields(rows[1], field)

	if len(first) != len(second) {
		return true, nil
	}

	for _, f := range first {
		if isNumericField(f) {
			return false, nil
		}
	}

	numeric := 0
	for _, f := range second {
		if isNumericField(f) {
			numeric++
		}
	}
	return numeric > 0 && numeric*2 >= len(second), nil
}

// materializeRows walks the buffered prefix and extends it from the source
// until two complete rows are visible, the rune bound is hit, or the source
// ends. Every freshly pulled rune lands in the buffer, so nothing read here
// is lost to the tokenizer.
func materializeRows(src ScalarSource, buf *LookaheadBuffer, rowDelim []rune, maxRunes int) ([][]rune, error) {
	window := append([]rune(nil), buf.peek()...)
	inQuotes := false
	complete := 0
	exhausted := false
	i := 0

	for complete < 2 {
		// Ensure position i can be examined for a full delimiter match.
		for !exhausted && i+len(rowDelim) > len(window) && len(window) < maxRunes {
			r, _, err := src.ReadRune()
			if err == io.EOF {
				exhausted = true
				break
			}
			if err != nil {
				return nil, errors.Wrap(err, ErrCodeInsufficientData, "reading from scalar source")
			}
			buf.Append(r)
			window = append(window, r)
		}
		if i >= len(window) {
			break
		}

		r := window[i]
		if r == QuoteScalar {
			inQuotes = !inQuotes
			i++
			continue
		}
		if !inQuotes && runesMatchAt(window, i, rowDelim) {
			complete++
			i += len(rowDelim)
			continue
		}
		i++
	}

	return splitRows(window, rowDelim, exhausted), nil
}

// isNumericField reports whether a raw field parses as a number once
// surrounding whitespace and quoting are stripped.
func isNumericField(field []rune) bool {
	s := strings.TrimSpace(string(field))
	if len(s) >= 2 && s[0] == QuoteScalar && s[len(s)-1] == QuoteScalar {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
