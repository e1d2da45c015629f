package demo

import (
	"strings"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/surface"
)

// Paint renders the document region onto the surface: background, the
// marker margin, the visible lines with the selection styled from the
// view profile, and the caret parked on its cell.
func (e *Engine) Paint(s edterm.Surface, rc core.Rect) {
	if e.host == nil {
		return
	}
	width, height := e.host.Window().Size()
	e.scrollToCaret(height)

	s.FillRegion(rc, e.theme.Background)

	margin := e.profile.MarkerMarginWidth
	if margin > 0 {
		s.FillRegion(core.NewRect(rc.Top, 0, rc.Bottom, float64(margin)), e.theme.Margin)
	}

	font := core.Font{}
	selStart, selEnd := e.selRange()
	for row := 0; row < height; row++ {
		line := e.top + row
		if line >= len(e.lines) {
			break
		}
		e.paintLine(s, font, row, line, margin, width, selStart, selEnd)
	}

	caretCol := margin + e.displayCol(e.lines[e.caret.row], e.caret.col)
	if caretCol >= width {
		caretCol = width - 1
	}
	e.host.Window().CursorTo(e.caret.row-e.top, caretCol)
}

// PaintCallTip draws the remembered tip text inside the popup's border.
func (e *Engine) PaintCallTip(s edterm.Surface) {
	rc := core.NewRect(1, 1, 2, float64(1+len(e.tipText)))
	s.DrawText(rc, core.Font{}, e.tipText, e.theme.Text, e.theme.Background)
}

// paintLine draws one document line at the given screen row, splitting
// it around the selection when the selection touches it.
func (e *Engine) paintLine(s edterm.Surface, font core.Font, row, line, margin, width int, selStart, selEnd position) {
	text := e.lines[line]
	y := float64(row)
	x := 0

	seg := func(from, to int, fore, back core.Color) {
		if from >= to {
			return
		}
		str, nx := e.expand(text[from:to], x)
		s.DrawText(core.NewRect(y, float64(margin+x), y+1, float64(width)), font, str, fore, back)
		x = nx
	}

	if e.hasSelection() && line >= selStart.row && line <= selEnd.row {
		a, b := 0, len(text)
		if line == selStart.row {
			a = selStart.col
		}
		if line == selEnd.row {
			b = selEnd.col
		}
		seg(0, a, e.theme.Text, e.theme.Background)
		seg(a, b, e.profile.SelectionFore, e.profile.SelectionBack)
		seg(b, len(text), e.theme.Text, e.theme.Background)
		return
	}
	seg(0, len(text), e.theme.Text, e.theme.Background)
}

// expand renders a rune range for display. Tabs advance to the next tab
// stop and, when whitespace is shown, spaces become bullets. x is the
// text-relative display column where the range starts; the column after
// the range is returned alongside the display string.
func (e *Engine) expand(runes []rune, x int) (string, int) {
	var b strings.Builder
	for _, r := range runes {
		switch {
		case r == '\t':
			n := e.tabWidth - x%e.tabWidth
			b.WriteString(strings.Repeat(" ", n))
			x += n
		case r == ' ' && e.showWS:
			b.WriteRune(surface.WhitespaceBullet)
			x++
		default:
			b.WriteRune(r)
			x += cellWidth(r)
		}
	}
	return b.String(), x
}

// displayCol converts a rune column on a line to a display column.
func (e *Engine) displayCol(line []rune, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i] == '\t' {
			x += e.tabWidth - x%e.tabWidth
			continue
		}
		x += cellWidth(line[i])
	}
	return x
}

// cellWidth is the number of cells a rune occupies when drawn. Control
// runes still take a cell slot in the draw path, so they count as one.
func cellWidth(r rune) int {
	if w := core.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// scrollToCaret adjusts the scroll offset so the caret's line is on
// screen.
func (e *Engine) scrollToCaret(height int) {
	if height <= 0 {
		return
	}
	if e.caret.row < e.top {
		e.top = e.caret.row
	}
	if e.caret.row >= e.top+height {
		e.top = e.caret.row - height + 1
	}
}
