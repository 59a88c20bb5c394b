// sniff_test.go - Unit tests for delimiter inference
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"strings"
	"testing"
)

// inferFrom runs delimiter inference over input with the given partial
// settings, returning the inferred pair and the session buffer.
func inferFrom(t *testing.T, input string, settings Settings) (field, row []rune, buf *LookaheadBuffer, err error) {
	t.Helper()
	buf = NewLookaheadBuffer(0)
	s := settings.WithDefaults()
	field, row, err = inferDelimiters(strings.NewReader(input), buf, s)
	return field, row, buf, err
}

func TestInferFieldDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"comma", "a,b,c\n1,2,3\n4,5,6\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"comma wins ties", "a,b;c\n1,2;3\n", ','},
		{"single row", "alpha,beta,gamma", ','},
		{"quoted delimiters ignored", "\"a;b;c\",x\n\"1;2\",y\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, row, _, err := inferFrom(t, tt.input, Settings{RowDelimiter: []rune{'\n'}})
			if err != nil {
				t.Fatalf("inferDelimiters() failed: %v", err)
			}
			if string(field) != string(tt.want) {
				t.Errorf("field = %q, want %q", string(field), string(tt.want))
			}
			if string(row) != "\n" {
				t.Errorf("row = %q, want known %q", string(row), "\n")
			}
		})
	}
}

func TestInferFieldDelimiterInconsistentCounts(t *testing.T) {
	// Semicolon varies across rows (1 then 2); comma is uniform.
	input := "a,b;c\n1,2;3;4\n"
	field, _, _, err := inferFrom(t, input, Settings{RowDelimiter: []rune{'\n'}})
	if err != nil {
		t.Fatalf("inferDelimiters() failed: %v", err)
	}
	if string(field) != "," {
		t.Errorf("field = %q, want %q", string(field), ",")
	}
}

func TestInferFieldDelimiterAmbiguous(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no structure", "abc\n"},
		{"varying counts", "a,b\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := inferFrom(t, tt.input, Settings{RowDelimiter: []rune{'\n'}})
			if err != ErrAmbiguousFieldDelimiter {
				t.Errorf("inferDelimiters() = %v, want ErrAmbiguousFieldDelimiter", err)
			}
		})
	}
}

func TestInferFieldDelimiterEmptyStream(t *testing.T) {
	_, _, buf, err := inferFrom(t, "", Settings{RowDelimiter: []rune{'\n'}})
	if err != ErrInsufficientData {
		t.Errorf("inferDelimiters() = %v, want ErrInsufficientData", err)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer holds %d runes for an empty stream", buf.Len())
	}
}

func TestInferRowDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lf", "a,b\n1,2\n", "\n"},
		{"crlf", "a,b\r\n1,2\r\n", "\r\n"},
		{"cr", "a,b\r1,2\r", "\r"},
		{"quoted newline ignored", "\"a\n\",b\r\n\"1\n\",2\r\n", "\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, row, _, err := inferFrom(t, tt.input, Settings{FieldDelimiter: []rune{','}})
			if err != nil {
				t.Fatalf("inferDelimiters() failed: %v", err)
			}
			if string(row) != tt.want {
				t.Errorf("row = %q, want %q", string(row), tt.want)
			}
		})
	}
}

func TestInferRowDelimiterNoTerminator(t *testing.T) {
	_, _, _, err := inferFrom(t, "a,b,c", Settings{FieldDelimiter: []rune{','}})
	if err != ErrAmbiguousRowDelimiter {
		t.Errorf("inferDelimiters() = %v, want ErrAmbiguousRowDelimiter", err)
	}
}

func TestInferRowDelimiterCorroboration(t *testing.T) {
	// Splitting on LF gives wildly inconsistent comma counts, so the
	// candidate is rejected rather than silently accepted.
	input := "a,b\n1\n2,3,4,5\n"
	_, _, _, err := inferFrom(t, input, Settings{FieldDelimiter: []rune{','}})
	if err != ErrAmbiguousRowDelimiter {
		t.Errorf("inferDelimiters() = %v, want ErrAmbiguousRowDelimiter", err)
	}
}

func TestInferBothDelimiters(t *testing.T) {
	field, row, _, err := inferFrom(t, "a;b;c\r\n1;2;3\r\n", Settings{})
	if err != nil {
		t.Fatalf("inferDelimiters() failed: %v", err)
	}
	if string(field) != ";" {
		t.Errorf("field = %q, want %q", string(field), ";")
	}
	if string(row) != "\r\n" {
		t.Errorf("row = %q, want %q", string(row), "\r\n")
	}
}

// TestInferencePreservesStream verifies the core side-effect contract:
// everything consumed during the scan sits in the buffer, in order, on both
// success and failure.
func TestInferencePreservesStream(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		input := "a,b,c\n1,2,3\n4,5,6\n"
		source := strings.NewReader(input)
		buf := NewLookaheadBuffer(0)
		s := (&Settings{RowDelimiter: []rune{'\n'}}).WithDefaults()

		if _, _, err := inferDelimiters(source, buf, s); err != nil {
			t.Fatalf("inferDelimiters() failed: %v", err)
		}

		replay := string(buf.Drain())
		rest := make([]byte, len(input))
		n, _ := source.Read(rest)
		if replay+string(rest[:n]) != input {
			t.Errorf("buffer+source = %q, want %q", replay+string(rest[:n]), input)
		}
	})

	t.Run("failure", func(t *testing.T) {
		input := "abc\n"
		buf := NewLookaheadBuffer(0)
		s := (&Settings{RowDelimiter: []rune{'\n'}}).WithDefaults()

		if _, _, err := inferDelimiters(strings.NewReader(input), buf, s); err == nil {
			t.Fatal("inferDelimiters() unexpectedly succeeded")
		}
		if got := string(buf.Drain()); got != input {
			t.Errorf("buffer after failure = %q, want %q", got, input)
		}
	})
}

// TestScanBounds verifies inference never reads past the configured limits.
func TestScanBounds(t *testing.T) {
	t.Run("rune bound", func(t *testing.T) {
		// A very long single line with no structure: the scan must stop at
		// the bound instead of draining the source.
		input := strings.Repeat("x", 10000)
		source := strings.NewReader(input)
		buf := NewLookaheadBuffer(0)
		s := (&Settings{RowDelimiter: []rune{'\n'}, MaxScanRunes: 64}).WithDefaults()

		_, _, err := inferDelimiters(source, buf, s)
		if err == nil {
			t.Fatal("inferDelimiters() unexpectedly succeeded")
		}
		if buf.Len() > 65 {
			t.Errorf("scan consumed %d runes, bound was 64", buf.Len())
		}
		if source.Len() == 0 {
			t.Error("scan drained the whole source despite the bound")
		}
	})

	t.Run("line bound", func(t *testing.T) {
		input := strings.Repeat("a,b\n", 100)
		source := strings.NewReader(input)
		buf := NewLookaheadBuffer(0)
		s := (&Settings{MaxScanLines: 3}).WithDefaults()

		if _, _, err := inferDelimiters(source, buf, s); err != nil {
			t.Fatalf("inferDelimiters() failed: %v", err)
		}
		if buf.Len() > 16 {
			t.Errorf("scan consumed %d runes, expected at most 4 lines", buf.Len())
		}
	})
}

func TestSplitRowsQuoteAware(t *testing.T) {
	window := []rune("a,\"x\ny\"\nb\npartial")
	rows := splitRows(window, []rune{'\n'}, false)
	if len(rows) != 2 {
		t.Fatalf("splitRows() = %d rows, want 2", len(rows))
	}
	if string(rows[0]) != "a,\"x\ny\"" {
		t.Errorf("rows[0] = %q", string(rows[0]))
	}

	// With the source exhausted the trailing remainder is a row.
	rows = splitRows(window, []rune{'\n'}, true)
	if len(rows) != 3 || string(rows[2]) != "partial" {
		t.Fatalf("splitRows(exhausted) = %d rows", len(rows))
	}
}
