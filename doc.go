// Package delphi resolves the effective parsing configuration (the dialect)
// for delimiter-separated text readers, inferring whatever the caller left
// unspecified by inspecting a bounded prefix of the actual input stream —
// without losing a single scalar of that stream.
//
// # Philosophy: Inference Without Loss
//
// Real-world delimiter-separated files rarely announce their dialect. Delphi
// treats the stream itself as the source of truth: field delimiter, row
// delimiter, and header presence are read off a small prefix of the data.
// The stream is strictly single-pass, so every rune consumed during
// inspection is preserved in a rewindable lookahead buffer and replayed to
// the downstream tokenizer in original order. Draining the buffer and then
// the source observes exactly the sequence the source alone would have
// produced, with nothing duplicated, dropped, or reordered.
//
// # Architecture Overview
//
// Delphi consists of five integrated pieces:
//  1. **LookaheadBuffer**: FIFO of consumed-but-undelivered runes, itself an
//     io.RuneReader so buffer and source are interchangeable downstream
//  2. **Delimiter validation**: detailed validation with coded errors and
//     non-fatal warnings
//  3. **Delimiter inference**: bounded, quote-aware candidate scoring for
//     field (comma, semicolon, tab, pipe) and row (LF, CRLF, CR) delimiters
//  4. **Header inference**: field-count and numeric-shape comparison of the
//     first two logical rows
//  5. **Dialect presets**: built-in families plus YAML/JSON preset files and
//     DELPHI_* environment variables
//
// # Quick Start
//
// Resolve everything from the stream:
//
//	dialect, buffer, err := delphi.Resolve(delphi.Settings{}, strings.NewReader(data))
//	if err != nil {
//		log.Fatal(err)
//	}
//	// feed `buffer` (first) and the source (after) to the tokenizer
//
// Resolve with a known row delimiter and header fallback:
//
//	settings := delphi.Settings{
//		RowDelimiter:   []rune{'\n'},
//		HeaderFallback: delphi.HeaderFallbackAssumeAbsent,
//	}
//	dialect, buffer, err := delphi.Resolve(settings, source)
//
// Fully explicit settings never touch the source; the returned buffer is
// empty and tokenization starts at the first rune of the stream.
//
// # Error Handling
//
// All failures carry DELPHI_* error codes via github.com/agilira/go-errors:
// invalid delimiters, ambiguous field or row candidates, and insufficient
// data. Resolution is fail-fast — the source cannot be re-read, so there is
// no retry. Whatever was consumed before a failure remains in the returned
// buffer, letting a caller fall back to explicit settings without data loss.
//
// # Scope
//
// Delphi resolves configuration only. Tokenization into rows and fields,
// byte-to-rune decoding, writing, and the application of the trim policy all
// belong to the surrounding reader, which consumes the resolved Dialect and
// the buffer this package hands back.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package delphi
