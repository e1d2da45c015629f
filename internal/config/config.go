// Package config loads the demo host's configuration. Settings come
// from three layers merged in order: built-in defaults, a TOML or YAML
// file chosen by extension, and EDTERM_* environment variables. The
// adapter itself takes no configuration; everything here belongs to
// the demo host built on top of it.
package config

import (
	"fmt"
	"strings"
)

// Config holds the demo host's settings.
type Config struct {
	Logging LoggingConfig
	Theme   ThemeConfig
	Editor  EditorConfig
}

// LoggingConfig controls the host's diagnostic log.
type LoggingConfig struct {
	// Level is the minimum level written: debug, info, warn, or error.
	Level string

	// File is the log destination path. Empty disables logging; the
	// terminal owns stderr while the editor runs.
	File string
}

// ThemeConfig carries display colors as hex strings or the sixteen
// terminal color names.
type ThemeConfig struct {
	Text       string
	Background string
	Margin     string
	Caret      string
}

// EditorConfig carries editing behavior settings.
type EditorConfig struct {
	// TabWidth is the number of columns a tab advances to.
	TabWidth int

	// ListRows is the number of completion rows shown at once.
	ListRows int

	// EOL is the document line ending convention: lf, crlf, or cr.
	EOL string

	// CaretStyle is the cursor shape: block, underline, or bar.
	CaretStyle string

	// ShowWhitespace renders space runs as visible dots.
	ShowWhitespace bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Text:       "white",
			Background: "black",
			Margin:     "cyan",
			Caret:      "white",
		},
		Editor: EditorConfig{
			TabWidth:   4,
			ListRows:   5,
			EOL:        "lf",
			CaretStyle: "block",
		},
	}
}

// Load builds the configuration from defaults, the file at path, and
// the environment, in rising priority. An empty path or a missing file
// skips the file layer; a malformed file is an error.
func Load(path string) (Config, error) {
	merged := map[string]any{}

	if path != "" {
		fileLoader, err := NewFileLoader(path)
		if err != nil {
			return Config{}, err
		}
		fromFile, err := fileLoader.Load()
		if err != nil {
			return Config{}, err
		}
		merged = DeepMerge(merged, fromFile)
	}

	fromEnv, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Config{}, err
	}
	merged = DeepMerge(merged, fromEnv)

	cfg := Default()
	cfg.apply(merged)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// apply overlays settings from a merged configuration map. Missing
// keys keep their current values; values of the wrong type are
// ignored the same way.
func (c *Config) apply(m map[string]any) {
	applyString(m, "logging.level", &c.Logging.Level)
	applyString(m, "logging.file", &c.Logging.File)

	applyString(m, "theme.text", &c.Theme.Text)
	applyString(m, "theme.background", &c.Theme.Background)
	applyString(m, "theme.margin", &c.Theme.Margin)
	applyString(m, "theme.caret", &c.Theme.Caret)

	applyInt(m, "editor.tabWidth", &c.Editor.TabWidth)
	applyInt(m, "editor.listRows", &c.Editor.ListRows)
	applyString(m, "editor.eol", &c.Editor.EOL)
	applyString(m, "editor.caretStyle", &c.Editor.CaretStyle)
	applyBool(m, "editor.showWhitespace", &c.Editor.ShowWhitespace)
}

// validate rejects values no layer is allowed to set.
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Editor.EOL) {
	case "lf", "crlf", "cr":
	default:
		return fmt.Errorf("config: invalid editor.eol %q", c.Editor.EOL)
	}
	switch strings.ToLower(c.Editor.CaretStyle) {
	case "block", "underline", "bar":
	default:
		return fmt.Errorf("config: invalid editor.caretStyle %q", c.Editor.CaretStyle)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("config: editor.tabWidth %d out of range 1..16", c.Editor.TabWidth)
	}
	if c.Editor.ListRows < 1 || c.Editor.ListRows > 20 {
		return fmt.Errorf("config: editor.listRows %d out of range 1..20", c.Editor.ListRows)
	}
	return nil
}

// getByPath walks a dot-separated path through nested maps.
func getByPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	v, ok := current[parts[len(parts)-1]]
	return v, ok
}

func applyString(m map[string]any, path string, dst *string) {
	if v, ok := getByPath(m, path); ok {
		if s, ok := v.(string); ok {
			*dst = s
		}
	}
}

func applyInt(m map[string]any, path string, dst *int) {
	v, ok := getByPath(m, path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	}
}

func applyBool(m map[string]any, path string, dst *bool) {
	if v, ok := getByPath(m, path); ok {
		if b, ok := v.(bool); ok {
			*dst = b
		}
	}
}
