// trace.go: Resolution trace for accountability of inference decisions
//
// Adapted from the audit-trail approach used across AGILira components:
// every decision the resolver takes is recorded with a cached timestamp so
// callers can explain, after the fact, why a dialect came out the way it
// did. The trace is in-memory and per-session; there is no backend.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"time"

	"github.com/agilira/go-timecache"
)

// TraceEvent records a single resolution decision.
type TraceEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Component string    `json:"component"` // "trim", "delimiter", "header"
	Decision  string    `json:"decision"`
	Detail    string    `json:"detail,omitempty"`
}

// Trace collects resolution decisions for one session. Attach one via
// Settings.Trace; a nil Trace disables collection at zero cost.
type Trace struct {
	events []TraceEvent
}

// NewTrace creates an empty trace collector.
func NewTrace() *Trace {
	return &Trace{}
}

// record appends a decision using timecache for zero-allocation timestamps.
// Safe on a nil receiver so call sites need no guards.
func (t *Trace) record(component, decision, detail string) {
	if t == nil {
		return
	}
	t.events = append(t.events, TraceEvent{
		Timestamp: timecache.CachedTime(),
		Component: component,
		Decision:  decision,
		Detail:    detail,
	})
}

// Events returns a copy of the recorded decisions in order.
func (t *Trace) Events() []TraceEvent {
	if t == nil {
		return nil
	}
	return append([]TraceEvent(nil), t.events...)
}

// Len returns the number of recorded decisions.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}
