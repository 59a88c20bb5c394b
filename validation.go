// validation.go - settings and delimiter validation for Delphi
//
// Validation is fail-fast: a resolution attempt never proceeds on invalid
// settings and never returns a partial dialect.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"fmt"

	"github.com/agilira/go-errors"
)

// Validation errors - implementing error codes pattern from Iris
var (
	ErrInvalidDelimiter        = errors.New(ErrCodeInvalidDelimiter, "delimiter must not be empty")
	ErrAmbiguousFieldDelimiter = errors.New(ErrCodeAmbiguousFieldDelimiter, "no field delimiter candidate is consistent across the scanned rows")
	ErrAmbiguousRowDelimiter   = errors.New(ErrCodeAmbiguousRowDelimiter, "no row delimiter candidate appears in the scanned prefix")
	ErrInsufficientData        = errors.New(ErrCodeInsufficientData, "stream ended before enough structural evidence was gathered")
	ErrInvalidTrimStrategy     = errors.New(ErrCodeInvalidSettings, "unknown trim strategy")
	ErrEmptyTrimSet            = errors.New(ErrCodeInvalidSettings, "trim strategy 'set' requires at least one trim character")
	ErrInvalidHeaderStrategy   = errors.New(ErrCodeInvalidSettings, "unknown header strategy")
	ErrInvalidScanBound        = errors.New(ErrCodeInvalidSettings, "scan bounds must be positive")
)

// validateDelimiter rejects degenerate explicit delimiters. Only emptiness is
// degenerate: arbitrary runes and multi-rune sequences (CRLF and friends)
// are legal delimiters.
func validateDelimiter(delimiter []rune) error {
	if len(delimiter) == 0 {
		return ErrInvalidDelimiter
	}
	return nil
}

// ValidationResult contains the result of settings validation with detailed feedback.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// String returns a human-readable representation of validation results
func (vr ValidationResult) String() string {
	if vr.Valid {
		if len(vr.Warnings) == 0 {
			return "Settings are valid"
		}
		return fmt.Sprintf("Settings are valid with %d warning(s)", len(vr.Warnings))
	}
	return fmt.Sprintf("Settings are invalid: %d error(s), %d warning(s)",
		len(vr.Errors), len(vr.Warnings))
}

// Validate performs validation of the settings.
// Returns error if settings are invalid, warnings are included in ValidationResult.
func (s *Settings) Validate() error {
	result := s.ValidateDetailed()
	if !result.Valid && len(result.Errors) > 0 {
		firstError := result.Errors[0]
		switch firstError {
		case ErrInvalidDelimiter.Error():
			return ErrInvalidDelimiter
		case ErrInvalidTrimStrategy.Error():
			return ErrInvalidTrimStrategy
		case ErrEmptyTrimSet.Error():
			return ErrEmptyTrimSet
		case ErrInvalidHeaderStrategy.Error():
			return ErrInvalidHeaderStrategy
		case ErrInvalidScanBound.Error():
			return ErrInvalidScanBound
		default:
			return errors.New(ErrCodeInvalidSettings, firstError)
		}
	}
	return nil
}

// ValidateDetailed performs validation and returns detailed results
// including both errors and warnings for better debugging and monitoring
func (s *Settings) ValidateDetailed() ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	s.validateDelimiters(&result)
	s.validateTrim(&result)
	s.validateHeader(&result)
	s.validateScanBounds(&result)

	result.Valid = len(result.Errors) == 0
	return result
}

// validateDelimiters validates explicit delimiter sequences. A nil delimiter
// is a request for inference, not an error; an explicit empty one is.
func (s *Settings) validateDelimiters(result *ValidationResult) {
	if s.FieldDelimiter != nil && len(s.FieldDelimiter) == 0 {
		result.Errors = append(result.Errors, ErrInvalidDelimiter.Error())
	}
	if s.RowDelimiter != nil && len(s.RowDelimiter) == 0 {
		result.Errors = append(result.Errors, ErrInvalidDelimiter.Error())
	}

	// Identical field and row delimiters make every boundary ambiguous for
	// the tokenizer. The contract stops short of forbidding it, so warn.
	if len(s.FieldDelimiter) > 0 && len(s.RowDelimiter) > 0 &&
		runesEqual(s.FieldDelimiter, s.RowDelimiter) {
		result.Warnings = append(result.Warnings,
			"field and row delimiters are identical; tokenization will be ambiguous")
	}
}

// validateTrim validates the trim policy selection
func (s *Settings) validateTrim(result *ValidationResult) {
	switch s.Trim {
	case TrimNone, TrimWhitespace:
		// Valid, no companion data required
	case TrimSet:
		if len(s.TrimCharacters) == 0 {
			result.Errors = append(result.Errors, ErrEmptyTrimSet.Error())
		}
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: '%v'", ErrInvalidTrimStrategy.Error(), s.Trim))
	}

	if s.Trim != TrimSet && len(s.TrimCharacters) > 0 {
		result.Warnings = append(result.Warnings,
			"trim characters are set but the trim strategy ignores them")
	}
}

// validateHeader validates the header strategy selection
func (s *Settings) validateHeader(result *ValidationResult) {
	switch s.Header {
	case HeaderUnknown, HeaderAbsent, HeaderFirstLine:
		// Valid strategies
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: '%v'", ErrInvalidHeaderStrategy.Error(), s.Header))
	}

	switch s.HeaderFallback {
	case HeaderFallbackError, HeaderFallbackAssumeAbsent:
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: unknown header fallback '%v'", ErrInvalidHeaderStrategy.Error(), s.HeaderFallback))
	}
}

// validateScanBounds validates the inference scan limits. Zero means
// "use the default" and is legal; explicit negatives are not.
func (s *Settings) validateScanBounds(result *ValidationResult) {
	if s.MaxScanRunes < 0 || s.MaxScanLines < 0 {
		result.Errors = append(result.Errors, ErrInvalidScanBound.Error())
		return
	}

	if s.MaxScanRunes > 0 && s.MaxScanRunes < 16 {
		result.Warnings = append(result.Warnings,
			"very small rune scan bound will starve inference of evidence")
	}
	if s.Header == HeaderUnknown && s.MaxScanLines == 1 {
		result.Warnings = append(result.Warnings,
			"header inference needs at least two lines; the line bound will be raised to 2")
	}
}

// ErrorCode extracts the error code from a Delphi error
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()

	// go-errors format: [CODE]: Message
	if len(errStr) > 3 && errStr[0] == '[' {
		for idx := 1; idx < len(errStr); idx++ {
			if errStr[idx] == ']' {
				return errStr[1:idx]
			}
		}
	}

	return ""
}

// IsDelphiError checks if an error originated from this package
func IsDelphiError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return len(errStr) > 8 && errStr[0] == '[' && errStr[1:8] == "DELPHI_"
}

// runesEqual reports whether two rune sequences are scalar-for-scalar equal.
func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
