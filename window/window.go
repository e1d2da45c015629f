// Package window provides rectangular drawing regions over a terminal
// backend. A window owns no cells of its own; it translates window-relative
// coordinates to absolute backend positions and clips writes to its bounds.
// Popup windows (autocomplete lists, call tips) are plain windows placed
// over the main one.
package window

import (
	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
)

// Border characters for popup windows.
const (
	BorderVertical   = '|'
	BorderHorizontal = '-'
	BorderCorner     = '+'
)

// Window is a rectangular region of a backend with an absolute origin.
// Drawing is window-relative; the window reports its own bounds at (0, 0).
type Window struct {
	backend backend.Backend
	origin  core.ScreenPos
	width   int
	height  int
}

// New creates a window covering the given absolute region of the backend.
func New(b backend.Backend, rect core.ScreenRect) *Window {
	return &Window{
		backend: b,
		origin:  rect.TopLeft(),
		width:   rect.Width(),
		height:  rect.Height(),
	}
}

// NewFullScreen creates a window covering the whole backend.
func NewFullScreen(b backend.Backend) *Window {
	w, h := b.Size()
	return New(b, core.RectFromSize(0, 0, h, w))
}

// Destroy releases the window. Further operations on it are no-ops. The
// cells it covered are left as drawn; covering content is the caller's
// concern, as it is for any overlapping window.
func (w *Window) Destroy() {
	w.backend = nil
}

// Destroyed reports whether Destroy has been called.
func (w *Window) Destroyed() bool {
	return w.backend == nil
}

// Size returns the window's dimensions.
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// Position returns the window's own bounds at origin (0, 0). Drawing is
// window-relative, so callers painting "everything" paint exactly this.
func (w *Window) Position() core.ScreenRect {
	return core.NewScreenRect(0, 0, w.height, w.width)
}

// Origin returns the window's absolute top-left position on the backend.
func (w *Window) Origin() core.ScreenPos {
	return w.origin
}

// MoveTo moves the window's absolute origin.
func (w *Window) MoveTo(row, col int) {
	w.origin = core.NewScreenPos(row, col)
}

// Resize changes the window's dimensions in place.
func (w *Window) Resize(width, height int) {
	w.width = width
	w.height = height
}

// SetCell writes one cell at a window-relative position, clipped to the
// window's bounds.
func (w *Window) SetCell(row, col int, cell core.Cell) {
	if w.backend == nil {
		return
	}
	if row < 0 || row >= w.height || col < 0 || col >= w.width {
		return
	}
	w.backend.SetCell(w.origin.Col+col, w.origin.Row+row, cell)
}

// Cell reads the cell at a window-relative position. Positions outside the
// window read as empty.
func (w *Window) Cell(row, col int) core.Cell {
	if w.backend == nil {
		return core.EmptyCell()
	}
	if row < 0 || row >= w.height || col < 0 || col >= w.width {
		return core.EmptyCell()
	}
	return w.backend.GetCell(w.origin.Col+col, w.origin.Row+row)
}

// Fill paints a window-relative region with the given cell.
func (w *Window) Fill(rect core.ScreenRect, cell core.Cell) {
	if w.backend == nil {
		return
	}
	clipped := rect.Intersection(w.Position())
	if clipped.IsEmpty() {
		return
	}
	w.backend.Fill(core.NewScreenRect(
		w.origin.Row+clipped.Top,
		w.origin.Col+clipped.Left,
		w.origin.Row+clipped.Bottom,
		w.origin.Col+clipped.Right,
	), cell)
}

// Clear resets every cell of the window to an empty cell.
func (w *Window) Clear() {
	w.Fill(w.Position(), core.EmptyCell())
}

// DrawString writes a string starting at a window-relative position,
// clipped to the window's width. Wide runes occupy two cells.
func (w *Window) DrawString(row, col int, s string, style core.Style) {
	if w.backend == nil || row < 0 || row >= w.height {
		return
	}
	for _, cell := range core.CellsFromString(s, style) {
		if col >= w.width {
			break
		}
		if col >= 0 {
			w.backend.SetCell(w.origin.Col+col, w.origin.Row+row, cell)
		}
		col++
	}
}

// Restyle rewrites the style of up to count cells starting at a
// window-relative position, preserving each cell's glyph.
func (w *Window) Restyle(row, col, count int, restyle func(core.Style) core.Style) {
	if w.backend == nil || row < 0 || row >= w.height {
		return
	}
	for i := 0; i < count; i++ {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= w.width {
			break
		}
		cell := w.backend.GetCell(w.origin.Col+c, w.origin.Row+row)
		cell.Style = restyle(cell.Style)
		w.backend.SetCell(w.origin.Col+c, w.origin.Row+row, cell)
	}
}

// DrawBorder draws the window frame: '|' sides, '-' top and bottom, '+'
// corners.
func (w *Window) DrawBorder(style core.Style) {
	if w.backend == nil || w.width < 1 || w.height < 1 {
		return
	}
	right := w.width - 1
	bottom := w.height - 1

	for col := 1; col < right; col++ {
		w.SetCell(0, col, core.NewStyledCell(BorderHorizontal, style))
		w.SetCell(bottom, col, core.NewStyledCell(BorderHorizontal, style))
	}
	for row := 1; row < bottom; row++ {
		w.SetCell(row, 0, core.NewStyledCell(BorderVertical, style))
		w.SetCell(row, right, core.NewStyledCell(BorderVertical, style))
	}
	w.SetCell(0, 0, core.NewStyledCell(BorderCorner, style))
	w.SetCell(0, right, core.NewStyledCell(BorderCorner, style))
	w.SetCell(bottom, 0, core.NewStyledCell(BorderCorner, style))
	w.SetCell(bottom, right, core.NewStyledCell(BorderCorner, style))
}

// CursorTo places the terminal cursor at a window-relative position,
// clamped inside the window.
func (w *Window) CursorTo(row, col int) {
	if w.backend == nil {
		return
	}
	pos := w.Position().Clamp(core.NewScreenPos(row, col))
	w.backend.ShowCursor(w.origin.Col+pos.Col, w.origin.Row+pos.Row)
}

// HideCursor hides the terminal cursor.
func (w *Window) HideCursor() {
	if w.backend == nil {
		return
	}
	w.backend.HideCursor()
}

// Flush pushes pending cell writes to the physical terminal.
func (w *Window) Flush() {
	if w.backend == nil {
		return
	}
	w.backend.Show()
}

// Backend exposes the backend the window draws through, for hosts that
// compose additional windows over the same terminal.
func (w *Window) Backend() backend.Backend {
	return w.backend
}
