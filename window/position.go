package window

import "github.com/dshills/edterm/core"

// PositionRelative places a popup rectangle relative to a parent window and
// returns the absolute region it should occupy. The desired rectangle is
// the popup's full outer size, borders included. Placement never precedes
// the parent's origin; a popup larger than the parent is pinned to the
// parent's origin, and one that would extend past the parent's far edge is
// slid back to fit exactly.
//
// The function is pure: identical inputs always yield identical output.
func PositionRelative(desired core.ScreenRect, parent *Window) core.ScreenRect {
	org := parent.Origin()
	pw, ph := parent.Size()

	x := org.Col + desired.Left
	if x < org.Col {
		x = org.Col
	}
	y := org.Row + desired.Top
	if y < org.Row {
		y = org.Row
	}

	width := desired.Width()
	height := desired.Height()

	if width > pw {
		x = org.Col
	} else if x+width > org.Col+pw {
		x = org.Col + pw - width
	}
	if height > ph {
		y = org.Row
	} else if y+height > org.Row+ph {
		y = org.Row + ph - height
	}

	return core.RectFromSize(y, x, height, width)
}
