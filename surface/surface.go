// Package surface converts engine paint requests into character cell
// writes on a window. A Surface is bound to a window immediately before
// each paint pass and released afterward; it owns no cells of its own.
//
// The terminal has no sub-cell typography, so pixel-oriented requests
// degrade deterministically: rectangles become runs of spaces, glyph
// metrics collapse to one cell, and purely pictorial operations
// (polygons, ellipses, images) are silent no-ops. Every operation is
// total over its input domain; drawing clips or degrades, never fails.
package surface

import (
	"unicode/utf8"

	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/window"
)

// WhitespaceBullet is the glyph substituted for sub-character whitespace
// dots, one per cell across the marked range.
const WhitespaceBullet = '·'

// Surface is a drawing target backed by a window and a shared color
// pair registry. The zero binding (before Init or after Release)
// discards all drawing.
type Surface struct {
	win      *window.Window
	registry *palette.Registry
}

// New creates an unbound surface resolving colors through the given
// registry. A nil registry falls back to the process-wide default.
func New(reg *palette.Registry) *Surface {
	if reg == nil {
		reg = palette.Default()
	}
	return &Surface{registry: reg}
}

// Init binds the surface to a window for the duration of a paint pass,
// releasing any previous binding.
func (s *Surface) Init(win *window.Window) {
	s.Release()
	s.win = win
}

// Release unbinds the surface from its window.
func (s *Surface) Release() {
	s.win = nil
}

// Ready reports whether the surface is bound to a window.
func (s *Surface) Ready() bool {
	return s.win != nil
}

// Window returns the bound window, or nil if unbound.
func (s *Surface) Window() *window.Window {
	return s.win
}

// FillRegion paints every cell of the region with a space in the given
// background color. A fractional left edge signals that the engine is
// drawing sub-character whitespace dots; those become bold
// black-on-black bullet glyphs across the floored integer column range,
// one glyph per cell.
func (s *Surface) FillRegion(rc core.Rect, back core.Color) {
	if s.win == nil {
		return
	}
	if rc.HasFractionalLeft() {
		style := s.paintStyle(core.ColorBlack, core.ColorBlack, core.AttrBold)
		cell := core.NewStyledCell(WhitespaceBullet, style)
		right := float64(int(rc.Right))
		for y := int(rc.Top); float64(y) < rc.Bottom; y++ {
			for x := int(rc.Left); float64(x) < right; x++ {
				s.win.SetCell(y, x, cell)
			}
		}
		return
	}
	style := s.paintStyle(core.ColorWhite, back, core.AttrNone)
	cell := core.NewStyledCell(' ', style)
	for y := int(rc.Top); float64(y) < rc.Bottom; y++ {
		for x := int(rc.Left); float64(x) < rc.Right; x++ {
			s.win.SetCell(y, x, cell)
		}
	}
}

// FillRegionPattern fills the region with black. Pattern surfaces are
// pixmaps, which the terminal cannot render.
func (s *Surface) FillRegionPattern(rc core.Rect, pattern *Surface) {
	s.FillRegion(rc, core.ColorBlack)
}

// DrawText writes text starting at the region's top left corner using
// the font's attributes combined with the resolved color pair, clipped
// to the window width. A negative start column clips the corresponding
// leading bytes and begins drawing at column 0.
func (s *Surface) DrawText(rc core.Rect, font core.Font, text string, fore, back core.Color) {
	if s.win == nil {
		return
	}
	col := int(rc.Left)
	if col < 0 {
		skip := -col
		if skip >= len(text) {
			return
		}
		text = text[skip:]
		col = 0
	}
	style := s.paintStyle(fore, back, font.Attr)
	s.win.DrawString(int(rc.Top), col, text, style)
}

// DrawClippedText adjusts two known special-case regions before
// delegating to DrawText. A fractional left edge marks a
// control-character glyph frame, which is shifted one cell left and up
// to land on the character position. A top edge below the bottom edge
// marks line-marker rendering, which is reshaped to a one-row band at
// the original bottom.
func (s *Surface) DrawClippedText(rc core.Rect, font core.Font, text string, fore, back core.Color) {
	if rc.HasFractionalLeft() {
		rc.Left--
		rc.Top--
	}
	if rc.Top > rc.Bottom {
		rc.Top = rc.Bottom
		rc.Bottom = rc.Top + 1
	}
	s.DrawText(rc, font, text, fore, back)
}

// DrawTransparentText draws text against a fixed black background. The
// terminal cannot blend with the cells underneath.
func (s *Surface) DrawTransparentText(rc core.Rect, font core.Font, text string, fore core.Color) {
	s.DrawText(rc, font, text, fore, core.ColorBlack)
}

// MeasureText returns cumulative column positions for every byte of
// text. Each lead byte of a UTF-8 sequence advances the running width
// by one column; continuation bytes advance it by zero but still record
// the running total at their index. The result has one entry per input
// byte and its final value equals the number of encoded characters.
func (s *Surface) MeasureText(font core.Font, text string) []int {
	positions := make([]int, len(text))
	width := 0
	for i := 0; i < len(text); i++ {
		if utf8.RuneStart(text[i]) {
			width++
		}
		positions[i] = width
	}
	return positions
}

// AlphaRectangle emulates a translucent fill. It reads the cell
// directly above the region's top left corner, extracts that cell's
// foreground, and restyles the full region width on that row to the
// existing foreground over the fill color, preserving the glyphs
// already on screen. This approximates blending well enough for
// selected-row highlights; it is not true alpha compositing.
func (s *Surface) AlphaRectangle(rc core.Rect, fill core.Color) {
	if s.win == nil {
		return
	}
	row := int(rc.Top) - 1
	left := int(rc.Left)
	fore := s.win.Cell(row, left).Style.Foreground
	style := s.paintStyle(fore, fill, core.AttrNone)
	s.win.Restyle(row, left, int(rc.Width()), func(core.Style) core.Style {
		return style
	})
}

// WidthText returns the width of text in columns, one per byte. The
// engine positions text by these byte counts, matching MeasureText.
func (s *Surface) WidthText(font core.Font, text string) int {
	return len(text)
}

// WidthChar returns 1 since every terminal glyph occupies one column.
func (s *Surface) WidthChar(font core.Font, ch rune) int {
	return core.GlyphWidth
}

// Ascent returns 0 since terminal glyphs have no ascent.
func (s *Surface) Ascent(font core.Font) int {
	return core.GlyphAscent
}

// Descent returns 0 since terminal glyphs have no descent.
func (s *Surface) Descent(font core.Font) int {
	return core.GlyphDescent
}

// InternalLeading returns 0 since terminal glyphs have no leading.
func (s *Surface) InternalLeading(font core.Font) int {
	return core.GlyphLeading
}

// ExternalLeading returns 0 since terminal glyphs have no leading.
func (s *Surface) ExternalLeading(font core.Font) int {
	return core.GlyphLeading
}

// Height returns 1 since every terminal glyph occupies one row.
func (s *Surface) Height(font core.Font) int {
	return core.GlyphHeight
}

// AverageCharWidth returns 1 since every terminal glyph occupies one
// column.
func (s *Surface) AverageCharWidth(font core.Font) int {
	return core.GlyphWidth
}

// PenColor is a no-op; there is no line drawing to color.
func (s *Surface) PenColor(fore core.Color) {}

// MoveTo is a no-op; there is no pen to move.
func (s *Surface) MoveTo(x, y int) {}

// LineTo is a no-op; lines cannot be drawn in a character grid.
func (s *Surface) LineTo(x, y int) {}

// Polygon is a no-op; polygons cannot be drawn in a character grid.
func (s *Surface) Polygon(pts []core.ScreenPos, fore, back core.Color) {}

// RectangleOutline is a no-op; outlined rectangles are not rendered.
func (s *Surface) RectangleOutline(rc core.Rect, fore, back core.Color) {}

// RoundedRectangle is a no-op; rounded corners cannot be rendered.
func (s *Surface) RoundedRectangle(rc core.Rect, fore, back core.Color) {}

// Ellipse is a no-op; ellipses cannot be drawn in a character grid.
func (s *Surface) Ellipse(rc core.Rect, fore, back core.Color) {}

// DrawImage is a no-op; the terminal has no pixel plane.
func (s *Surface) DrawImage(rc core.Rect, width, height int, pixels []byte) {}

// CopyFrom is a no-op; surface to surface copies are not supported.
func (s *Surface) CopyFrom(rc core.Rect, from core.ScreenPos, src *Surface) {}

// SetClip is a no-op; drawing already clips to the window bounds.
func (s *Surface) SetClip(rc core.Rect) {}

// FlushState is a no-op; no drawing state is cached.
func (s *Surface) FlushState() {}

// paintStyle resolves a foreground and background through the shared
// registry so painted colors degrade to the terminal's palette. On a
// terminal without color support no pair is ever requested and the
// style carries attributes only.
func (s *Surface) paintStyle(fore, back core.Color, attr core.Attribute) core.Style {
	if s.registry.Monochrome() {
		return core.DefaultStyle().WithAttributes(attr)
	}
	pair := s.registry.Resolve(fore, back)
	rf, rb := s.registry.Content(pair)
	return core.Style{Foreground: rf, Background: rb, Attributes: attr}
}
