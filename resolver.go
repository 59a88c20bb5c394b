// resolver.go: Orchestration of dialect resolution
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import "fmt"

// Resolve turns partial settings plus a single-pass scalar source into a
// fully-resolved Dialect and the lookahead buffer holding every rune
// consumed along the way. The tokenizer must drain the buffer completely
// before pulling anything further from the source.
//
// Resolution order is fixed: trim policy, then delimiters, then header.
// Header inference segments rows, so it cannot run before the row delimiter
// is known.
//
// Errors are fatal; no partial dialect is ever returned. The buffer is
// returned even on failure, still holding everything consumed up to that
// point, so a caller can abandon inference and replay the stream against
// explicitly supplied settings.
func Resolve(settings Settings, source ScalarSource) (*Dialect, *LookaheadBuffer, error) {
	s := settings.WithDefaults()
	buf := NewLookaheadBuffer(bufferHint(s.MaxScanRunes))

	if err := s.Validate(); err != nil {
		return nil, buf, err
	}

	// 1. Trim policy: a direct mapping, nothing to infer.
	var trimSet []rune
	switch s.Trim {
	case TrimWhitespace:
		trimSet = append([]rune(nil), whitespaceTrimSet...)
	case TrimSet:
		trimSet = append([]rune(nil), s.TrimCharacters...)
	}
	s.Trace.record("trim", s.Trim.String(), "")

	// 2. Delimiters: validate explicit values, infer missing ones.
	field := s.FieldDelimiter
	row := s.RowDelimiter
	if field != nil {
		if err := validateDelimiter(field); err != nil {
			return nil, buf, err
		}
	}
	if row != nil {
		if err := validateDelimiter(row); err != nil {
			return nil, buf, err
		}
	}
	if field == nil || row == nil {
		var err error
		field, row, err = inferDelimiters(source, buf, s)
		if err != nil {
			s.Trace.record("delimiter", "failed", err.Error())
			return nil, buf, err
		}
	}
	s.Trace.record("delimiter", "resolved",
		fmt.Sprintf("field=%q row=%q", string(field), string(row)))

	// 3. Header: direct strategies map; unknown runs inference against the
	// delimiters resolved above.
	var hasHeader bool
	switch s.Header {
	case HeaderFirstLine:
		hasHeader = true
		s.Trace.record("header", "declared", "firstLine")
	case HeaderAbsent:
		hasHeader = false
		s.Trace.record("header", "declared", "absent")
	case HeaderUnknown:
		inferred, err := inferHeader(source, buf, field, row, s.MaxScanRunes)
		if err != nil {
			if err == ErrInsufficientData && s.HeaderFallback == HeaderFallbackAssumeAbsent {
				hasHeader = false
				s.Trace.record("header", "fallback", "assuming no header on insufficient data")
				break
			}
			s.Trace.record("header", "failed", err.Error())
			return nil, buf, err
		}
		hasHeader = inferred
		s.Trace.record("header", "inferred", fmt.Sprintf("hasHeader=%t", hasHeader))
	}

	dialect := &Dialect{
		field:     append([]rune(nil), field...),
		row:       append([]rune(nil), row...),
		hasHeader: hasHeader,
		trimSet:   trimSet,
	}
	return dialect, buf, nil
}

// bufferHint sizes the lookahead buffer for the configured scan bound
// without pre-allocating the whole bound for small streams.
func bufferHint(maxScanRunes int) int {
	const hint = 1024
	if maxScanRunes < hint {
		return maxScanRunes
	}
	return hint
}
