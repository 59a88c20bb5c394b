// presets.go: Named dialect presets and preset files for Delphi
//
// Callers that already know their dialect family should not have to spell
// out every rune. Presets cover the common families; preset files let
// deployments pin a dialect in YAML or JSON next to the rest of their
// configuration, with the format detected from the file extension.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package delphi

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// PresetFormat represents supported preset file formats for auto-detection.
type PresetFormat int

const (
	PresetFormatYAML PresetFormat = iota
	PresetFormatJSON
	PresetFormatUnknown
)

// String returns the string representation of the preset format.
func (pf PresetFormat) String() string {
	switch pf {
	case PresetFormatYAML:
		return "YAML"
	case PresetFormatJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// namedPresets are the built-in dialect families. Delimiters follow the
// conventions of each family; header detection stays on unless a family
// mandates otherwise.
var namedPresets = map[string]Settings{
	"rfc4180": {
		FieldDelimiter: []rune{','},
		RowDelimiter:   []rune{'\r', '\n'},
	},
	"semicolon": {
		FieldDelimiter: []rune{';'},
		RowDelimiter:   []rune{'\r', '\n'},
	},
	"tsv": {
		FieldDelimiter: []rune{'\t'},
		RowDelimiter:   []rune{'\n'},
	},
	"pipe": {
		FieldDelimiter: []rune{'|'},
		RowDelimiter:   []rune{'\n'},
	},
}

// Preset returns the settings for a built-in dialect family.
func Preset(name string) (Settings, error) {
	preset, ok := namedPresets[strings.ToLower(name)]
	if !ok {
		return Settings{}, errors.New(ErrCodePresetNotFound, "unknown dialect preset '"+name+"'")
	}
	// Copy the delimiter slices so callers cannot mutate the table.
	preset.FieldDelimiter = append([]rune(nil), preset.FieldDelimiter...)
	preset.RowDelimiter = append([]rune(nil), preset.RowDelimiter...)
	return preset, nil
}

// PresetNames lists the built-in dialect families.
func PresetNames() []string {
	names := make([]string, 0, len(namedPresets))
	for name := range namedPresets {
		names = append(names, name)
	}
	return names
}

// DetectPresetFormat detects the preset file format from the file extension.
func DetectPresetFormat(path string) PresetFormat {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yml"), strings.HasSuffix(lower, ".yaml"):
		return PresetFormatYAML
	case strings.HasSuffix(lower, ".json"):
		return PresetFormatJSON
	default:
		return PresetFormatUnknown
	}
}

// settingsFile is the on-disk shape of a dialect preset. Delimiters use
// backslash escapes so CRLF and tab survive flat config formats.
type settingsFile struct {
	FieldDelimiter string `yaml:"field_delimiter" json:"field_delimiter"`
	RowDelimiter   string `yaml:"row_delimiter" json:"row_delimiter"`
	Trim           string `yaml:"trim" json:"trim"`
	TrimCharacters string `yaml:"trim_characters" json:"trim_characters"`
	Header         string `yaml:"header" json:"header"`
	HeaderFallback string `yaml:"header_fallback" json:"header_fallback"`
	MaxScanRunes   int    `yaml:"max_scan_runes" json:"max_scan_runes"`
	MaxScanLines   int    `yaml:"max_scan_lines" json:"max_scan_lines"`
}

// LoadSettingsFile loads partial settings from a YAML or JSON preset file,
// detecting the format from the extension.
func LoadSettingsFile(path string) (Settings, error) {
	format := DetectPresetFormat(path)
	if format == PresetFormatUnknown {
		return Settings{}, errors.New(ErrCodeInvalidPreset, "unsupported preset format for file '"+path+"'")
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided intentionally
	if err != nil {
		return Settings{}, errors.Wrap(err, ErrCodePresetNotFound, "failed to read preset file '"+path+"'")
	}

	var file settingsFile
	switch format {
	case PresetFormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Settings{}, errors.Wrap(err, ErrCodeInvalidPreset, "failed to parse YAML preset")
		}
	case PresetFormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return Settings{}, errors.Wrap(err, ErrCodeInvalidPreset, "failed to parse JSON preset")
		}
	}

	return file.toSettings()
}

// toSettings converts the on-disk representation to Settings.
func (f *settingsFile) toSettings() (Settings, error) {
	settings := Settings{
		FieldDelimiter: parseDelimiterSpec(f.FieldDelimiter),
		RowDelimiter:   parseDelimiterSpec(f.RowDelimiter),
		TrimCharacters: parseDelimiterSpec(f.TrimCharacters),
		MaxScanRunes:   f.MaxScanRunes,
		MaxScanLines:   f.MaxScanLines,
	}

	trim, err := parseTrimStrategy(f.Trim)
	if err != nil {
		return Settings{}, err
	}
	settings.Trim = trim

	header, err := parseHeaderStrategy(f.Header)
	if err != nil {
		return Settings{}, err
	}
	settings.Header = header

	fallback, err := parseHeaderFallback(f.HeaderFallback)
	if err != nil {
		return Settings{}, err
	}
	settings.HeaderFallback = fallback

	return settings, nil
}

// parseDelimiterSpec turns a delimiter spec string into runes, resolving
// backslash escapes. An empty spec means "not specified" (nil).
func parseDelimiterSpec(spec string) []rune {
	if spec == "" {
		return nil
	}

	var out []rune
	escaped := false
	for _, r := range spec {
		if escaped {
			switch r {
			case 't':
				out = append(out, '\t')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		out = append(out, r)
	}
	if escaped {
		out = append(out, '\\')
	}
	return out
}

// parseTrimStrategy maps a trim strategy name; empty means TrimNone.
func parseTrimStrategy(name string) (TrimStrategy, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return TrimNone, nil
	case "whitespace":
		return TrimWhitespace, nil
	case "set":
		return TrimSet, nil
	default:
		return TrimNone, errors.New(ErrCodeInvalidPreset, "unknown trim strategy '"+name+"'")
	}
}

// parseHeaderStrategy maps a header strategy name; empty means HeaderUnknown.
func parseHeaderStrategy(name string) (HeaderStrategy, error) {
	switch strings.ToLower(name) {
	case "", "unknown":
		return HeaderUnknown, nil
	case "absent", "none":
		return HeaderAbsent, nil
	case "firstline":
		return HeaderFirstLine, nil
	default:
		return HeaderUnknown, errors.New(ErrCodeInvalidPreset, "unknown header strategy '"+name+"'")
	}
}

// parseHeaderFallback maps a header fallback name; empty means error-out.
func parseHeaderFallback(name string) (HeaderFallback, error) {
	switch strings.ToLower(name) {
	case "", "error":
		return HeaderFallbackError, nil
	case "assumeabsent", "assume_absent":
		return HeaderFallbackAssumeAbsent, nil
	default:
		return HeaderFallbackError, errors.New(ErrCodeInvalidPreset, "unknown header fallback '"+name+"'")
	}
}
