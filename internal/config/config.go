// Package config provides centralized configuration for flatfile.
//
// Values are resolved in three layers, later layers winning:
//
//  1. struct-tag defaults
//  2. an optional YAML profile file (see LoadWithProfile)
//  3. environment variables (a .env file is loaded by the CLI)
//
// The result is validated once so that misconfiguration fails fast.
package config

import (
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/flatfile/internal/scan"
)

// Config holds all application configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	CSV     CSVConfig     `yaml:"csv"`
	Run     RunConfig     `yaml:"run"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds line normalization settings.
type ScanConfig struct {
	// HeaderLines is how many leading non-blank lines to drop (default: 0)
	HeaderLines int `yaml:"header_lines" env:"FLATFILE_HEADER_LINES" default:"0"`

	// FooterLines is how many trailing non-blank lines to drop (default: 0)
	FooterLines int `yaml:"footer_lines" env:"FLATFILE_FOOTER_LINES" default:"0"`

	// RemoveBlankLines drops empty and whitespace-only lines (default: true)
	RemoveBlankLines bool `yaml:"remove_blank_lines" env:"FLATFILE_REMOVE_BLANK_LINES" default:"true"`

	// TrimLeading strips leading whitespace (default: true)
	TrimLeading bool `yaml:"trim_leading" env:"FLATFILE_TRIM_LEADING" default:"true"`

	// TrimTrailing strips trailing whitespace (default: true)
	TrimTrailing bool `yaml:"trim_trailing" env:"FLATFILE_TRIM_TRAILING" default:"true"`

	// Encoding is the IANA charset of input files (default: utf-8)
	Encoding string `yaml:"encoding" env:"FLATFILE_ENCODING" default:"utf-8"`

	// MaxLineLength is the longest accepted line in bytes (default: 1MB)
	MaxLineLength int `yaml:"max_line_length" env:"FLATFILE_MAX_LINE_LENGTH" default:"1048576"`
}

// CSVConfig holds column splitting settings.
type CSVConfig struct {
	// Delimiter is the single column delimiter; "tab" or "\t" for a tab (default: ,)
	Delimiter string `yaml:"delimiter" env:"FLATFILE_DELIMITER" default:","`

	// EscapeMarker wraps fields containing the delimiter; empty disables repair,
	// including a set-but-empty FLATFILE_ESCAPE_MARKER (default: ")
	EscapeMarker string `yaml:"escape_marker" env:"FLATFILE_ESCAPE_MARKER,allowempty" default:"\""`

	// ExpectedColumns is the column-count contract, 0 for none (default: 0)
	ExpectedColumns int `yaml:"expected_columns" env:"FLATFILE_EXPECTED_COLUMNS" default:"0"`

	// Columns types columns by position. Profile only.
	Columns []ColumnConfig `yaml:"columns"`
}

// ColumnConfig describes one positional column.
type ColumnConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // text, integer or decimal (default: text)
	Required bool   `yaml:"required"`
}

// RunConfig holds batch execution settings.
type RunConfig struct {
	// MaxConcurrent is the maximum number of files parsed in parallel (default: 4)
	MaxConcurrent int `yaml:"max_concurrent" env:"FLATFILE_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a file waits for a parse slot (default: 30s)
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"FLATFILE_MAX_WAIT_TIME" default:"30s"`

	// Timeout bounds a whole batch run (default: 10m)
	Timeout time.Duration `yaml:"timeout" env:"FLATFILE_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`
}

// DelimiterRune returns the configured delimiter as a rune.
// Only meaningful after Validate succeeds.
func (c *CSVConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// ScanOptions builds the scan options described by the configuration.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{
		HeaderLines:      c.Scan.HeaderLines,
		FooterLines:      c.Scan.FooterLines,
		RemoveBlankLines: c.Scan.RemoveBlankLines,
		TrimLeading:      c.Scan.TrimLeading,
		TrimTrailing:     c.Scan.TrimTrailing,
		Encoding:         c.Scan.Encoding,
		MaxLineLength:    c.Scan.MaxLineLength,
	}
}
