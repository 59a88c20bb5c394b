// delphi: Dialect resolution for delimiter-separated text streams
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem only: go-errors, go-timecache)
// - Strictly single-pass sources: every rune consumed during inference is
//   preserved in a lookahead buffer and replayed to the downstream tokenizer
// - Bounded inspection: inference never reads past a configurable scan limit
// - Zero allocations in the pull hot path
//
// Example Usage:
//   settings := delphi.Settings{
//       RowDelimiter: []rune{'\n'},  // known
//       // FieldDelimiter nil: infer from the stream
//   }
//
//   dialect, buffer, err := delphi.Resolve(settings, strings.NewReader(data))
//   if err != nil {
//       // supply explicit settings instead; the buffer still holds
//       // everything consumed, in order
//   }
//
//   // Tokenizer must drain buffer before pulling fresh runes from the source.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import "io"

// Error codes for Delphi operations
const (
	ErrCodeInvalidDelimiter        = "DELPHI_INVALID_DELIMITER"
	ErrCodeAmbiguousFieldDelimiter = "DELPHI_AMBIGUOUS_FIELD_DELIMITER"
	ErrCodeAmbiguousRowDelimiter   = "DELPHI_AMBIGUOUS_ROW_DELIMITER"
	ErrCodeInsufficientData        = "DELPHI_INSUFFICIENT_DATA"
	ErrCodeInvalidSettings         = "DELPHI_INVALID_SETTINGS"
	ErrCodePresetNotFound          = "DELPHI_PRESET_NOT_FOUND"
	ErrCodeInvalidPreset           = "DELPHI_INVALID_PRESET"
)

// QuoteScalar is the escaping scalar for quoted regions. It is fixed by the
// format family this resolver targets and intentionally not configurable:
// a mutable quote would leak state between sessions sharing candidate tables.
const QuoteScalar = '"'

// TrimStrategy selects which characters, if any, the downstream tokenizer
// should strip from the edges of each field. Only the policy is resolved
// here; trimming itself belongs to the tokenizer.
type TrimStrategy int

const (
	// TrimNone leaves fields untouched (the default).
	TrimNone TrimStrategy = iota
	// TrimWhitespace strips the Unicode whitespace set.
	TrimWhitespace
	// TrimSet strips exactly the runes listed in Settings.TrimCharacters.
	TrimSet
)

func (t TrimStrategy) String() string {
	switch t {
	case TrimNone:
		return "none"
	case TrimWhitespace:
		return "whitespace"
	case TrimSet:
		return "set"
	default:
		return "unknown"
	}
}

// HeaderStrategy declares what the caller knows about the first logical row.
type HeaderStrategy int

const (
	// HeaderUnknown asks the resolver to infer header presence from the stream.
	HeaderUnknown HeaderStrategy = iota
	// HeaderAbsent declares the first row to be data.
	HeaderAbsent
	// HeaderFirstLine declares the first row to be a header.
	HeaderFirstLine
)

func (h HeaderStrategy) String() string {
	switch h {
	case HeaderUnknown:
		return "unknown"
	case HeaderAbsent:
		return "absent"
	case HeaderFirstLine:
		return "firstLine"
	default:
		return "invalid"
	}
}

// HeaderFallback decides what Resolve does when header inference runs out of
// rows before reaching a verdict. The original contract is deliberately
// silent here, so the policy is the caller's choice, not a hardcoded default.
type HeaderFallback int

const (
	// HeaderFallbackError propagates ErrInsufficientData (the default).
	HeaderFallbackError HeaderFallback = iota
	// HeaderFallbackAssumeAbsent resolves to "no header" instead of failing.
	HeaderFallbackAssumeAbsent
)

// Settings is the caller-supplied, possibly partial configuration.
// Nil delimiter slices request inference; everything else maps directly.
// Settings values are read-only to the resolver.
type Settings struct {
	// FieldDelimiter separates fields within a row. Nil requests inference.
	FieldDelimiter []rune
	// RowDelimiter separates rows. Nil requests inference.
	RowDelimiter []rune

	// Trim selects the trim policy handed to the tokenizer.
	Trim TrimStrategy
	// TrimCharacters is the explicit trim set when Trim == TrimSet.
	TrimCharacters []rune

	// Header declares or defers header detection.
	Header HeaderStrategy
	// HeaderFallback applies when Header == HeaderUnknown and the stream
	// ends before two rows are available.
	HeaderFallback HeaderFallback

	// MaxScanRunes bounds how many runes inference may pull from the source.
	// Zero means the default.
	MaxScanRunes int
	// MaxScanLines bounds how many logical lines inference examines.
	// Zero means the default.
	MaxScanLines int

	// Trace, when non-nil, records every resolution decision.
	Trace *Trace
}

// WithDefaults applies sensible defaults to the settings
func (s *Settings) WithDefaults() *Settings {
	settings := *s

	if settings.MaxScanRunes <= 0 {
		settings.MaxScanRunes = DefaultMaxScanRunes
	}

	if settings.MaxScanLines <= 0 {
		settings.MaxScanLines = DefaultMaxScanLines
	}

	// GUARD RAIL: a line bound below 2 cannot support header inference
	if settings.Header == HeaderUnknown && settings.MaxScanLines < 2 {
		settings.MaxScanLines = 2
	}

	return &settings
}

// Scan bound defaults. Generous enough for real-world prefixes, small enough
// that a live, never-ending source cannot pin the resolver.
const (
	DefaultMaxScanRunes = 8192
	DefaultMaxScanLines = 32
)

// Dialect is the fully-resolved parsing configuration handed to the
// tokenizer. It is immutable: accessors copy the backing slices.
type Dialect struct {
	field     []rune
	row       []rune
	hasHeader bool
	trimSet   []rune
}

// Field returns the resolved field delimiter.
func (d *Dialect) Field() []rune {
	return append([]rune(nil), d.field...)
}

// Row returns the resolved row delimiter.
func (d *Dialect) Row() []rune {
	return append([]rune(nil), d.row...)
}

// HasHeader reports whether the first logical row is a header.
func (d *Dialect) HasHeader() bool {
	return d.hasHeader
}

// TrimSet returns the runes the tokenizer should trim from field edges,
// or nil when no trimming was requested.
func (d *Dialect) TrimSet() []rune {
	if d.trimSet == nil {
		return nil
	}
	return append([]rune(nil), d.trimSet...)
}

// Quote returns the escaping scalar. Fixed for every dialect.
func (d *Dialect) Quote() rune {
	return QuoteScalar
}

// ScalarSource is the single-pass pull source inference reads from. The
// standard io.RuneReader contract fits exactly: one rune per pull, io.EOF at
// end of stream, no rewind. LookaheadBuffer implements it too, so downstream
// code is indifferent to whether a rune comes from the buffer or the source.
type ScalarSource = io.RuneReader

// unicode whitespace set used when Trim == TrimWhitespace. Kept as an
// explicit slice so the resolved Dialect is self-contained.
var whitespaceTrimSet = []rune{' ', '\t', '\v', '\f', 0x85, 0xA0}
