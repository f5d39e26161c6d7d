package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/flatfile/internal/scan"
)

// Load reads configuration from defaults and environment variables,
// then validates the result.
func Load() (*Config, error) {
	return LoadWithProfile("")
}

// LoadWithProfile reads configuration from defaults, the YAML profile at
// path (skipped when path is empty), and environment variables, in that
// order, then validates the result.
func LoadWithProfile(path string) (*Config, error) {
	cfg := &Config{}

	if err := walkFields(reflect.ValueOf(cfg).Elem(), applyDefault); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if path != "" {
		if err := loadProfile(path, cfg); err != nil {
			return nil, fmt.Errorf("config profile: %w", err)
		}
	}

	if err := walkFields(reflect.ValueOf(cfg).Elem(), applyEnv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadProfile overlays the YAML document at path onto cfg.
// Keys absent from the file keep their current values.
func loadProfile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty profile is allowed.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// walkFields calls fn for every tagged leaf field, recursing into nested structs.
func walkFields(v reflect.Value, fn func(reflect.StructField, reflect.Value) error) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := walkFields(fieldVal, fn); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("env") == "" {
			continue
		}

		if err := fn(field, fieldVal); err != nil {
			return err
		}
	}

	return nil
}

// applyDefault sets a field from its default tag.
func applyDefault(field reflect.StructField, fieldVal reflect.Value) error {
	value, ok := field.Tag.Lookup("default")
	if !ok || value == "" {
		return nil
	}
	if err := setField(fieldVal, value); err != nil {
		return fmt.Errorf("invalid default for %s=%q: %w", field.Name, value, err)
	}
	return nil
}

// applyEnv sets a field from its environment variable when it is set.
// An empty value is ignored unless the tag carries the allowempty option.
func applyEnv(field reflect.StructField, fieldVal reflect.Value) error {
	envName, opts, _ := strings.Cut(field.Tag.Get("env"), ",")
	value, ok := os.LookupEnv(envName)
	if !ok || (value == "" && opts != "allowempty") {
		return nil
	}
	if err := setField(fieldVal, value); err != nil {
		return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
	}
	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Scan validation
	if c.Scan.HeaderLines < 0 {
		errs = append(errs, "FLATFILE_HEADER_LINES must be non-negative")
	}
	if c.Scan.FooterLines < 0 {
		errs = append(errs, "FLATFILE_FOOTER_LINES must be non-negative")
	}
	if c.Scan.MaxLineLength <= 0 {
		errs = append(errs, "FLATFILE_MAX_LINE_LENGTH must be positive")
	}
	if err := (scan.Options{Encoding: c.Scan.Encoding}).Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("FLATFILE_ENCODING (%q) is not a supported charset", c.Scan.Encoding))
	}

	// CSV validation
	switch c.CSV.Delimiter {
	case "tab", `\t`:
	default:
		if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
			errs = append(errs, fmt.Sprintf("FLATFILE_DELIMITER (%q) must be a single character", c.CSV.Delimiter))
		}
	}
	if c.CSV.EscapeMarker != "" && strings.ContainsRune(c.CSV.EscapeMarker, c.CSV.DelimiterRune()) {
		errs = append(errs, "FLATFILE_ESCAPE_MARKER must not contain the delimiter")
	}
	if c.CSV.ExpectedColumns < 0 {
		errs = append(errs, "FLATFILE_EXPECTED_COLUMNS must be non-negative")
	}
	for i, col := range c.CSV.Columns {
		switch strings.ToLower(col.Type) {
		case "", "text", "integer", "int", "decimal", "numeric":
		default:
			errs = append(errs, fmt.Sprintf("csv.columns[%d] (%s) type %q must be one of: text, integer, decimal", i, col.Name, col.Type))
		}
	}

	// Run validation
	if c.Run.MaxConcurrent <= 0 {
		errs = append(errs, "FLATFILE_MAX_CONCURRENT must be positive")
	}
	if c.Run.MaxWaitTime <= 0 {
		errs = append(errs, "FLATFILE_MAX_WAIT_TIME must be positive")
	}
	if c.Run.Timeout <= 0 {
		errs = append(errs, "FLATFILE_TIMEOUT must be positive")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: validation failed:\n  - %s", scan.ErrInvalidOptions, strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Scan: {Header: %d, Footer: %d, RemoveBlank: %v, TrimLeading: %v, TrimTrailing: %v, Encoding: %q}, ",
		c.Scan.HeaderLines, c.Scan.FooterLines, c.Scan.RemoveBlankLines, c.Scan.TrimLeading, c.Scan.TrimTrailing, c.Scan.Encoding))
	b.WriteString(fmt.Sprintf("CSV: {Delimiter: %q, EscapeMarker: %q, ExpectedColumns: %d, Columns: %d}, ",
		c.CSV.Delimiter, c.CSV.EscapeMarker, c.CSV.ExpectedColumns, len(c.CSV.Columns)))
	b.WriteString(fmt.Sprintf("Run: {MaxConcurrent: %d, Timeout: %s}, ", c.Run.MaxConcurrent, c.Run.Timeout))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
