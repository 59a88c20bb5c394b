// sniff.go: Delimiter inference over a bounded stream prefix
//
// The sniffer pulls runes from the single-pass source one at a time,
// mirroring every rune into the lookahead buffer, so a failed or successful
// scan never loses input. Analysis then runs over the in-memory window.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"io"

	"github.com/agilira/go-errors"
)

// fieldCandidates is the candidate set for field-delimiter inference, in
// tie-break preference order.
var fieldCandidates = []rune{',', ';', '\t', '|'}

// sniffer accumulates a bounded prefix of the source while mirroring every
// consumed rune into the session's lookahead buffer.
type sniffer struct {
	src      ScalarSource
	buf      *LookaheadBuffer
	maxRunes int
	maxLines int

	window    []rune
	exhausted bool // source returned io.EOF during the scan
}

func newSniffer(src ScalarSource, buf *LookaheadBuffer, maxRunes, maxLines int) *sniffer {
	return &sniffer{
		src:      src,
		buf:      buf,
		maxRunes: maxRunes,
		maxLines: maxLines,
	}
}

// pull consumes one rune from the source and mirrors it into the buffer and
// the analysis window. Returns false at end of stream.
func (s *sniffer) pull() (rune, bool, error) {
	r, _, err := s.src.ReadRune()
	if err == io.EOF {
		s.exhausted = true
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, ErrCodeInsufficientData, "reading from scalar source")
	}
	s.buf.Append(r)
	s.window = append(s.window, r)
	return r, true, nil
}

// scan fills the window until the rune bound, the line bound, or the end of
// the source. Line counting respects quoted regions; when rowDelim is known
// it counts occurrences of that sequence, otherwise any of LF, CRLF, CR.
//
// A lone CR pairs with a following LF before the line counter fires, so a
// CRLF terminator is never split by the line bound (this may overshoot the
// rune bound by a single rune).
func (s *sniffer) scan(rowDelim []rune) error {
	inQuotes := false
	lines := 0

	for len(s.window) < s.maxRunes && lines < s.maxLines {
		r, ok, err := s.pull()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		// Adjacent quotes ("") toggle twice and land back inside the
		// region, so a plain toggle tracks escaped quotes correctly.
		if r == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}

		if rowDelim != nil {
			if runesHaveSuffix(s.window, rowDelim) {
				lines++
			}
			continue
		}

		switch r {
		case '\r':
			// Pair CRLF before counting the line.
			next, ok, err := s.pull()
			if err != nil {
				return err
			}
			if ok && next == QuoteScalar {
				inQuotes = !inQuotes
			}
			lines++
		case '\n':
			lines++
		}
	}
	return nil
}

// inferDelimiters resolves whichever delimiter settings left unspecified,
// scanning the source through buf. The known delimiter, if any, is returned
// unchanged. On error the buffer still holds everything consumed.
func inferDelimiters(src ScalarSource, buf *LookaheadBuffer, settings *Settings) (field, row []rune, err error) {
	field = settings.FieldDelimiter
	row = settings.RowDelimiter

	s := newSniffer(src, buf, settings.MaxScanRunes, settings.MaxScanLines)
	if err := s.scan(row); err != nil {
		return nil, nil, err
	}

	if row == nil {
		row, err = s.inferRow(field)
		if err != nil {
			return nil, nil, err
		}
	}
	if field == nil {
		field, err = s.inferField(row)
		if err != nil {
			return nil, nil, err
		}
	}
	return field, row, nil
}

// inferRow picks the first standard line terminator (LF, CRLF, CR) observed
// outside quoted regions. With a known field delimiter the pick is
// corroborated against per-line field counts.
func (s *sniffer) inferRow(knownField []rune) ([]rune, error) {
	inQuotes := false
	var candidate []rune

	for i := 0; i < len(s.window) && candidate == nil; i++ {
		r := s.window[i]
		if r == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch r {
		case '\n':
			candidate = []rune{'\n'}
		case '\r':
			if i+1 < len(s.window) && s.window[i+1] == '\n' {
				candidate = []rune{'\r', '\n'}
			} else {
				candidate = []rune{'\r'}
			}
		}
	}

	if candidate == nil {
		return nil, ErrAmbiguousRowDelimiter
	}

	if knownField != nil {
		rows := splitRows(s.window, candidate, s.exhausted)
		if len(rows) >= 2 && !consistentFieldCount(rows, knownField) {
			return nil, ErrAmbiguousRowDelimiter
		}
	}
	return candidate, nil
}

// inferField scores the standard candidates (comma, semicolon, tab, pipe)
// against the scanned rows. A candidate qualifies when its outside-quotes
// occurrence count is identical and non-zero across every row; ties fall to
// the preference order of fieldCandidates.
func (s *sniffer) inferField(rowDelim []rune) ([]rune, error) {
	rows := splitRows(s.window, rowDelim, s.exhausted)
	if len(rows) == 0 {
		return nil, ErrInsufficientData
	}

	for _, c := range fieldCandidates {
		if count, ok := uniformCount(rows, c); ok && count > 0 {
			return []rune{c}, nil
		}
	}
	return nil, ErrAmbiguousFieldDelimiter
}

// uniformCount reports the per-row outside-quotes occurrence count of r,
// and whether that count is the same for every row.
func uniformCount(rows [][]rune, r rune) (int, bool) {
	count := countOutsideQuotes(rows[0], r)
	for _, row := range rows[1:] {
		if countOutsideQuotes(row, r) != count {
			return 0, false
		}
	}
	return count, true
}

// consistentFieldCount reports whether splitting every row by the field
// delimiter yields a uniform field count.
func consistentFieldCount(rows [][]rune, field []rune) bool {
	if len(rows) == 0 {
		return true
	}
	want := countDelimiter(rows[0], field)
	for _, row := range rows[1:] {
		if countDelimiter(row, field) != want {
			return false
		}
	}
	return true
}

// splitRows segments the window into complete logical rows, honouring quoted
// regions so delimiters inside quotes stay literal. The trailing unterminated
// remainder counts as a row only when the source is exhausted: a row cut off
// by the scan bound is evidence of nothing.
func splitRows(window, rowDelim []rune, exhausted bool) [][]rune {
	var rows [][]rune
	inQuotes := false
	start := 0

	for i := 0; i < len(window); i++ {
		r := window[i]
		if r == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if runesMatchAt(window, i, rowDelim) {
			rows = append(rows, window[start:i])
			i += len(rowDelim) - 1
			start = i + 1
		}
	}

	if exhausted && start < len(window) {
		rows = append(rows, window[start:])
	}
	return rows
}

// splitFields splits a single row into fields by the field delimiter,
// honouring quoted regions.
func splitFields(row, fieldDelim []rune) [][]rune {
	var fields [][]rune
	inQuotes := false
	start := 0

	for i := 0; i < len(row); i++ {
		r := row[i]
		if r == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if runesMatchAt(row, i, fieldDelim) {
			fields = append(fields, row[start:i])
			i += len(fieldDelim) - 1
			start = i + 1
		}
	}
	fields = append(fields, row[start:])
	return fields
}

// countOutsideQuotes counts occurrences of r outside quoted regions.
func countOutsideQuotes(row []rune, r rune) int {
	inQuotes := false
	count := 0
	for _, c := range row {
		if c == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && c == r {
			count++
		}
	}
	return count
}

// countDelimiter counts outside-quotes occurrences of a delimiter sequence.
func countDelimiter(row, delim []rune) int {
	inQuotes := false
	count := 0
	for i := 0; i < len(row); i++ {
		if row[i] == QuoteScalar {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if runesMatchAt(row, i, delim) {
			count++
			i += len(delim) - 1
		}
	}
	return count
}

// runesMatchAt reports whether seq occurs in window starting at index i.
func runesMatchAt(window []rune, i int, seq []rune) bool {
	if i+len(seq) > len(window) {
		return false
	}
	for j, r := range seq {
		if window[i+j] != r {
			return false
		}
	}
	return true
}

// runesHaveSuffix reports whether window ends with seq.
func runesHaveSuffix(window, seq []rune) bool {
	return len(window) >= len(seq) && runesMatchAt(window, len(window)-len(seq), seq)
}
