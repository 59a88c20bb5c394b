// lookahead.go: Rewindable lookahead buffer over a single-pass scalar source
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"io"
	"unicode/utf8"
)

// LookaheadBuffer holds runes already consumed from the source but not yet
// delivered downstream. Inference appends every rune it pulls; the tokenizer
// later drains the buffer before touching the source again, so the stream is
// observed exactly once even though inference read ahead.
//
// The buffer is owned by a single reader session and is not safe for
// concurrent use; nothing in a resolution session is concurrent.
//
// Internally a slice with a moving head index: pop-front is O(1) amortized,
// bulk Append is O(k), and Prepend of k runes is O(k + len) with the dead
// prefix compacted lazily. Same deque contract as the reversed-store trick,
// without paying a reversal on every insert.
type LookaheadBuffer struct {
	store []rune
	head  int

	// Counters for Stats(). Plain ints: single-owner, no atomics needed.
	appended  int64
	prepended int64
	replayed  int64
}

// NewLookaheadBuffer creates an empty buffer. The capacity hint avoids
// regrowth during a default-bounded scan; zero or negative falls back to a
// small default.
func NewLookaheadBuffer(capacityHint int) *LookaheadBuffer {
	if capacityHint <= 0 {
		capacityHint = 64
	}
	return &LookaheadBuffer{
		store: make([]rune, 0, capacityHint),
	}
}

// Len returns how many runes are waiting to be replayed.
func (b *LookaheadBuffer) Len() int {
	return len(b.store) - b.head
}

// Append adds runes to the back of the queue, in the order given. This is
// the path inference uses for every rune it consumes from the source.
func (b *LookaheadBuffer) Append(rs ...rune) {
	b.store = append(b.store, rs...)
	b.appended += int64(len(rs))
}

// Prepend adds runes to the front of the queue, in the order given, so they
// are replayed first. Used when a caller over-reads (a CR that turned out
// not to start a CRLF, for instance) and must hand runes back.
func (b *LookaheadBuffer) Prepend(rs ...rune) {
	if len(rs) == 0 {
		return
	}
	b.prepended += int64(len(rs))

	if b.head >= len(rs) {
		// Reuse the dead prefix in place.
		b.head -= len(rs)
		copy(b.store[b.head:], rs)
		return
	}

	live := b.store[b.head:]
	next := make([]rune, 0, len(rs)+len(live))
	next = append(next, rs...)
	next = append(next, live...)
	b.store = next
	b.head = 0
}

// Next removes and returns the front-most rune. The second result is false
// when the buffer is empty.
func (b *LookaheadBuffer) Next() (rune, bool) {
	if b.head >= len(b.store) {
		// Reset so the backing array is reusable instead of growing forever.
		b.store = b.store[:0]
		b.head = 0
		return 0, false
	}
	r := b.store[b.head]
	b.head++
	b.replayed++

	if b.head == len(b.store) {
		b.store = b.store[:0]
		b.head = 0
	}
	return r, true
}

// ReadRune implements io.RuneReader, making the buffer interchangeable with
// the original scalar source for any downstream consumer. Size is the UTF-8
// encoded length of the rune, matching the io.RuneReader contract.
func (b *LookaheadBuffer) ReadRune() (rune, int, error) {
	r, ok := b.Next()
	if !ok {
		return 0, 0, io.EOF
	}
	size := utf8.RuneLen(r)
	if size < 0 {
		size = 1
	}
	return r, size, nil
}

// peek exposes the live buffered content in replay order without consuming
// it. Inference reads through the buffer this way; the returned slice is
// only valid until the next mutation.
func (b *LookaheadBuffer) peek() []rune {
	return b.store[b.head:]
}

// Drain removes and returns every buffered rune in replay order.
func (b *LookaheadBuffer) Drain() []rune {
	out := append([]rune(nil), b.store[b.head:]...)
	b.replayed += int64(len(out))
	b.store = b.store[:0]
	b.head = 0
	return out
}

// Stats returns minimal counters for monitoring buffer behavior.
func (b *LookaheadBuffer) Stats() map[string]int64 {
	return map[string]int64{
		"buffered":  int64(b.Len()),
		"appended":  b.appended,
		"prepended": b.prepended,
		"replayed":  b.replayed,
	}
}
