package demo

import (
	"fmt"
	"strings"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
)

// Theme carries the demo's display colors.
type Theme struct {
	Text       core.Color
	Background core.Color
	Margin     core.Color
	Caret      core.Color
}

// DefaultTheme returns white text on black with a cyan marker margin.
func DefaultTheme() Theme {
	return Theme{
		Text:       core.ColorWhite,
		Background: core.ColorBlack,
		Margin:     core.ColorCyan,
		Caret:      core.ColorWhite,
	}
}

// colorNames maps the sixteen terminal color names to palette entries.
var colorNames = map[string]core.Color{
	"black":          core.ColorBlack,
	"red":            core.ColorRed,
	"green":          core.ColorGreen,
	"yellow":         core.ColorYellow,
	"blue":           core.ColorBlue,
	"magenta":        core.ColorMagenta,
	"cyan":           core.ColorCyan,
	"white":          core.ColorWhite,
	"bright-black":   core.ColorBrightBlack,
	"bright-red":     core.ColorBrightRed,
	"bright-green":   core.ColorBrightGreen,
	"bright-yellow":  core.ColorBrightYellow,
	"bright-blue":    core.ColorBrightBlue,
	"bright-magenta": core.ColorBrightMagenta,
	"bright-cyan":    core.ColorBrightCyan,
	"bright-white":   core.ColorBrightWhite,
}

// ParseColor resolves a color setting: one of the sixteen terminal
// color names, case insensitive, or a hex value with a leading '#'.
func ParseColor(name string) (core.Color, error) {
	trimmed := strings.TrimSpace(name)
	if c, ok := colorNames[strings.ToLower(trimmed)]; ok {
		return c, nil
	}
	if strings.HasPrefix(trimmed, "#") {
		return core.ColorFromHex(trimmed)
	}
	return core.Color{}, fmt.Errorf("unknown color %q", name)
}

// ParseTheme builds a Theme from color settings, falling back to the
// default for any empty value.
func ParseTheme(text, background, margin, caret string) (Theme, error) {
	theme := DefaultTheme()
	for _, f := range []struct {
		value string
		dst   *core.Color
	}{
		{text, &theme.Text},
		{background, &theme.Background},
		{margin, &theme.Margin},
		{caret, &theme.Caret},
	} {
		if f.value == "" {
			continue
		}
		c, err := ParseColor(f.value)
		if err != nil {
			return theme, err
		}
		*f.dst = c
	}
	return theme, nil
}

// ParseEOL resolves a line ending setting, case insensitive. Unknown
// values fall back to LF.
func ParseEOL(name string) edterm.EOL {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "crlf":
		return edterm.EOLCRLF
	case "cr":
		return edterm.EOLCR
	default:
		return edterm.EOLLF
	}
}

// ParseCaretStyle resolves a caret style setting, case insensitive.
// Unknown values fall back to the block caret.
func ParseCaretStyle(name string) backend.CursorStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "underline":
		return backend.CursorUnderline
	case "bar":
		return backend.CursorBar
	default:
		return backend.CursorBlock
	}
}
