// env.go: Environment variable support for Delphi settings
//
// Container deployments configure dialects the same way they configure
// everything else: through the environment. Variables map one-to-one onto
// Settings fields; unset variables leave the field on its zero value so
// inference and defaulting still apply.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"os"
	"strconv"

	"github.com/agilira/go-errors"
)

// Environment variable names recognised by LoadSettingsFromEnv.
const (
	EnvFieldDelimiter = "DELPHI_FIELD_DELIMITER"
	EnvRowDelimiter   = "DELPHI_ROW_DELIMITER"
	EnvTrim           = "DELPHI_TRIM"
	EnvTrimCharacters = "DELPHI_TRIM_CHARACTERS"
	EnvHeader         = "DELPHI_HEADER"
	EnvHeaderFallback = "DELPHI_HEADER_FALLBACK"
	EnvMaxScanRunes   = "DELPHI_MAX_SCAN_RUNES"
	EnvMaxScanLines   = "DELPHI_MAX_SCAN_LINES"
)

// LoadSettingsFromEnv loads settings from DELPHI_* environment variables,
// applying defaults for anything unset. Delimiter variables use the same
// backslash escapes as preset files ("\t", "\r\n").
func LoadSettingsFromEnv() (*Settings, error) {
	settings := Settings{
		FieldDelimiter: parseDelimiterSpec(os.Getenv(EnvFieldDelimiter)),
		RowDelimiter:   parseDelimiterSpec(os.Getenv(EnvRowDelimiter)),
		TrimCharacters: parseDelimiterSpec(os.Getenv(EnvTrimCharacters)),
	}

	trim, err := parseTrimStrategy(os.Getenv(EnvTrim))
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidSettings, "invalid "+EnvTrim)
	}
	settings.Trim = trim

	header, err := parseHeaderStrategy(os.Getenv(EnvHeader))
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidSettings, "invalid "+EnvHeader)
	}
	settings.Header = header

	fallback, err := parseHeaderFallback(os.Getenv(EnvHeaderFallback))
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidSettings, "invalid "+EnvHeaderFallback)
	}
	settings.HeaderFallback = fallback

	if settings.MaxScanRunes, err = envInt(EnvMaxScanRunes); err != nil {
		return nil, err
	}
	if settings.MaxScanLines, err = envInt(EnvMaxScanLines); err != nil {
		return nil, err
	}

	return settings.WithDefaults(), nil
}

// envInt reads an optional integer environment variable; unset means zero.
func envInt(name string) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(err, ErrCodeInvalidSettings, "invalid "+name)
	}
	return value, nil
}
