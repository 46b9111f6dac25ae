// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/folio/internal/constants"
	"github.com/xonecas/folio/internal/find"
	"github.com/xonecas/folio/internal/pane"
)

// Config is the root configuration structure.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Search  SearchConfig  `toml:"search"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Session SessionConfig `toml:"session"`
}

// EditorConfig holds editing surface settings.
type EditorConfig struct {
	// WordWrap is a pointer so an absent key keeps the default of true.
	WordWrap           *bool `toml:"word_wrap"`
	LargeDocumentBytes int   `toml:"large_document_bytes"`
	ShowLineNumbers    *bool `toml:"show_line_numbers"`
}

// WordWrapOrDefault returns the configured wrap mode or true if unset.
func (e EditorConfig) WordWrapOrDefault() bool {
	if e.WordWrap == nil {
		return true
	}
	return *e.WordWrap
}

// LargeDocumentBytesOrDefault returns the large-document guard size.
func (e EditorConfig) LargeDocumentBytesOrDefault() int {
	if e.LargeDocumentBytes <= 0 {
		return constants.LargeDocumentBytes
	}
	return e.LargeDocumentBytes
}

// ShowLineNumbersOrDefault returns whether the gutter is drawn, true if unset.
func (e EditorConfig) ShowLineNumbersOrDefault() bool {
	if e.ShowLineNumbers == nil {
		return true
	}
	return *e.ShowLineNumbers
}

// SearchConfig holds find and replace tuning.
type SearchConfig struct {
	DebounceMS         int  `toml:"debounce_ms"`
	HighlightThreshold int  `toml:"highlight_threshold"`
	ReplaceThreshold   int  `toml:"replace_threshold"`
	ViewportMargin     int  `toml:"viewport_margin"`
	CaseSensitive      bool `toml:"case_sensitive"`
}

// DebounceOrDefault returns the search debounce delay.
func (s SearchConfig) DebounceOrDefault() time.Duration {
	if s.DebounceMS <= 0 {
		return constants.SearchDebounce
	}
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// FindOptions converts the section into find.Options. Zero values fall
// back to the package defaults.
func (s SearchConfig) FindOptions() find.Options {
	opts := find.DefaultOptions()
	opts.Debounce = s.DebounceOrDefault()
	if s.HighlightThreshold > 0 {
		opts.HighlightThreshold = s.HighlightThreshold
	}
	if s.ReplaceThreshold > 0 {
		opts.ReplaceThreshold = s.ReplaceThreshold
	}
	if s.ViewportMargin > 0 {
		opts.ViewportMargin = s.ViewportMargin
	}
	return opts
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma syntax highlighting theme used across the TUI.
	// UI chrome colors are derived from this theme via highlight.ThemePalette.
	SyntaxTheme string `toml:"syntax_theme"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or the compiled default.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return constants.SyntaxTheme
	}
	return u.SyntaxTheme
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault parses the configured level, "info" if unset.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	if l.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// FileOrDefault returns the log file path, folio.log in dataDir if unset.
func (l LogConfig) FileOrDefault(dataDir string) string {
	if l.File == "" {
		return filepath.Join(dataDir, "folio.log")
	}
	return l.File
}

// SessionConfig holds settings for remembered editor state.
type SessionConfig struct {
	RememberPositions *bool `toml:"remember_positions"`
	TTLHours          int   `toml:"ttl_hours"`
}

// RememberPositionsOrDefault reports whether cursor positions are persisted.
func (s SessionConfig) RememberPositionsOrDefault() bool {
	if s.RememberPositions == nil {
		return true
	}
	return *s.RememberPositions
}

// TTLOrDefault returns the configured TTL in hours.
func (s SessionConfig) TTLOrDefault() int {
	if s.TTLHours <= 0 {
		return constants.SessionTTLHours
	}
	return s.TTLHours
}

// Default returns a configuration with every value unset, so each
// accessor yields its compiled default.
func Default() *Config {
	return &Config{}
}

// PaneOptions converts the editor section into pane.Options.
func (c *Config) PaneOptions() pane.Options {
	return pane.Options{
		WordWrap:           c.Editor.WordWrapOrDefault(),
		LargeDocumentBytes: c.Editor.LargeDocumentBytesOrDefault(),
	}
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.LargeDocumentBytes < 0 {
		errs = append(errs, fmt.Errorf("editor.large_document_bytes=%d must not be negative", c.Editor.LargeDocumentBytes))
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"search.debounce_ms", c.Search.DebounceMS},
		{"search.highlight_threshold", c.Search.HighlightThreshold},
		{"search.replace_threshold", c.Search.ReplaceThreshold},
		{"search.viewport_margin", c.Search.ViewportMargin},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s=%d must not be negative", f.name, f.value))
		}
	}
	if c.Search.DebounceMS > 10_000 {
		errs = append(errs, fmt.Errorf("search.debounce_ms=%d must be at most 10000", c.Search.DebounceMS))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if c.Session.TTLHours < 0 {
		errs = append(errs, fmt.Errorf("session.ttl_hours=%d must not be negative", c.Session.TTLHours))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"FOLIO_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"FOLIO_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"FOLIO_WORD_WRAP", func(v string) {
			if v == "" {
				return
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("FOLIO_WORD_WRAP=%q: %w", v, err))
				return
			}
			cfg.Editor.WordWrap = &b
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
	return errors.Join(errs...)
}

// DataDir returns the path to the folio data directory (~/.config/folio).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "folio"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the config file location inside the data directory.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
