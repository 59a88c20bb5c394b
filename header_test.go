// header_test.go - Unit tests for header inference
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"strings"
	"testing"
)

func headerFrom(t *testing.T, input string) (bool, error) {
	t.Helper()
	buf := NewLookaheadBuffer(0)
	return inferHeader(strings.NewReader(input), buf, []rune{','}, []rune{'\n'}, DefaultMaxScanRunes)
}

func TestInferHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"numeric shape", "name,age\nAlice,30\nBob,40\n", true},
		{"field count mismatch", "title\na,1\nb,2\n", true},
		{"all text rows", "alpha,beta\ngamma,delta\n", false},
		{"numeric first row", "1,2\n3,4\n", false},
		{"quoted numerics", "name,age\n\"Alice\",\"30\"\n", true},
		{"fully numeric second row", "x,y\n1.5,2.5\n", true},
		{"minority numeric", "a,b,c\nfoo,bar,3\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := headerFrom(t, tt.input)
			if err != nil {
				t.Fatalf("inferHeader() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("inferHeader() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestInferHeaderInsufficientData(t *testing.T) {
	for _, input := range []string{"", "only,one,row\n", "only,one,row"} {
		if _, err := headerFrom(t, input); err != ErrInsufficientData {
			t.Errorf("inferHeader(%q) = %v, want ErrInsufficientData", input, err)
		}
	}
}

// TestInferHeaderReadsThroughBuffer verifies header inference consumes the
// buffered prefix first and only extends the buffer with what it pulls.
func TestInferHeaderReadsThroughBuffer(t *testing.T) {
	const input = "name,age\nAlice,30\nBob,40\n"
	source := strings.NewReader(input)
	buf := NewLookaheadBuffer(0)

	// A prior inference pass already buffered the first 11 runes.
	for i := 0; i < 11; i++ {
		r, _, err := source.ReadRune()
		if err != nil {
			t.Fatalf("ReadRune() failed: %v", err)
		}
		buf.Append(r)
	}

	got, err := inferHeader(source, buf, []rune{','}, []rune{'\n'}, DefaultMaxScanRunes)
	if err != nil {
		t.Fatalf("inferHeader() failed: %v", err)
	}
	if !got {
		t.Error("inferHeader() = false, want true")
	}

	// Buffer plus remaining source must still reproduce the stream.
	replay := string(buf.Drain())
	rest := make([]byte, len(input))
	n, _ := source.Read(rest)
	if replay+string(rest[:n]) != input {
		t.Errorf("buffer+source = %q, want %q", replay+string(rest[:n]), input)
	}
}

func TestInferHeaderCRLF(t *testing.T) {
	buf := NewLookaheadBuffer(0)
	got, err := inferHeader(strings.NewReader("name,age\r\nAlice,30\r\n"), buf,
		[]rune{','}, []rune{'\r', '\n'}, DefaultMaxScanRunes)
	if err != nil {
		t.Fatalf("inferHeader() failed: %v", err)
	}
	if !got {
		t.Error("inferHeader() = false, want true")
	}
}
