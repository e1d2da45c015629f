package edterm

import (
	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
)

// EOL identifies a line ending convention. The values match the wire
// order engines conventionally use for end of line modes.
type EOL int

const (
	// EOLCRLF terminates lines with "\r\n".
	EOLCRLF EOL = iota
	// EOLCR terminates lines with "\r".
	EOLCR
	// EOLLF terminates lines with "\n".
	EOLLF
)

// Sequence returns the byte sequence that terminates a line in this
// convention. Unknown values fall back to "\n".
func (e EOL) Sequence() string {
	switch e {
	case EOLCRLF:
		return "\r\n"
	case EOLCR:
		return "\r"
	default:
		return "\n"
	}
}

// String returns the conventional name of the line ending.
func (e EOL) String() string {
	switch e {
	case EOLCRLF:
		return "CRLF"
	case EOLCR:
		return "CR"
	case EOLLF:
		return "LF"
	default:
		return "LF"
	}
}

// Profile carries the view defaults an instance pushes into its engine
// at creation. Terminals have no pixels to spare, so the defaults
// trade decoration for density: no scroll bars, no reserved margins
// beyond a one column marker margin, a block caret, and single phase
// unbuffered drawing straight to the screen.
type Profile struct {
	// CaretStyle is the cursor shape shown at the insertion point.
	CaretStyle backend.CursorStyle
	// CaretColor is the insertion point color.
	CaretColor core.Color
	// SelectionFore and SelectionBack style selected text.
	SelectionFore core.Color
	SelectionBack core.Color
	// HScrollBar and VScrollBar request scroll bar chrome. Terminals
	// have none, so both default off.
	HScrollBar bool
	VScrollBar bool
	// LeftMarginWidth and RightMarginWidth reserve text area columns.
	LeftMarginWidth  int
	RightMarginWidth int
	// MarkerMarginWidth is the width of the character based marker
	// margin. Markers render as text, not pixmaps.
	MarkerMarginWidth int
	// FoldOpenGlyph and FoldClosedGlyph mark expanded and collapsed
	// fold points in the marker margin.
	FoldOpenGlyph   rune
	FoldClosedGlyph rune
	// FoldMarkerFore and FoldMarkerBack style the fold glyphs.
	FoldMarkerFore core.Color
	FoldMarkerBack core.Color
	// LineHeight is the height of a document line in rows.
	LineHeight int
	// BufferedDraw and TwoPhaseDraw select the engine's paint
	// pipeline. Both default off; cells go straight to the screen.
	BufferedDraw bool
	TwoPhaseDraw bool
	// PopupMenu requests a context menu. Terminals have none.
	PopupMenu bool
}

// DefaultProfile returns the terminal view defaults: block caret in
// white, black on white selection, no scroll bars, a single text
// marker margin one column wide, '-' and '+' fold glyphs in white on
// black, one row per line, and direct single phase drawing.
func DefaultProfile() Profile {
	return Profile{
		CaretStyle:        backend.CursorBlock,
		CaretColor:        core.ColorWhite,
		SelectionFore:     core.ColorBlack,
		SelectionBack:     core.ColorWhite,
		MarkerMarginWidth: 1,
		FoldOpenGlyph:     '-',
		FoldClosedGlyph:   '+',
		FoldMarkerFore:    core.ColorWhite,
		FoldMarkerBack:    core.ColorBlack,
		LineHeight:        1,
	}
}
