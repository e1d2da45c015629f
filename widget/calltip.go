package widget

import (
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/window"
)

// CallTip is the call tip popup. Its window is created on the first
// Show from the requested rectangle, clamped to fit entirely inside
// the owning window, and persists until Hide.
type CallTip struct {
	owner    *window.Window
	registry *palette.Registry
	win      *window.Window
	style    core.Style
}

// NewCallTip creates a hidden call tip owned by the given window. A
// nil registry falls back to the process-wide default.
func NewCallTip(owner *window.Window, reg *palette.Registry) *CallTip {
	if reg == nil {
		reg = palette.Default()
	}
	return &CallTip{
		owner:    owner,
		registry: reg,
		style:    core.DefaultStyle(),
	}
}

// Show displays the call tip. The first call creates the popup window
// from rc: the origin slides right and down if it falls before the
// owner's absolute origin, then the size shrinks to the owner's size
// if it exceeds it. Every call, including redraw-only calls with an
// empty rc, redraws the border and hands a fresh surface bound to the
// popup to the paint function for the content.
func (ct *CallTip) Show(rc core.Rect, paint func(*surface.Surface)) {
	if ct.win == nil {
		sr := rc.ToScreen()
		org := ct.owner.Origin()
		ownerWidth, ownerHeight := ct.owner.Size()
		if sr.Left < org.Col {
			d := org.Col - sr.Left
			sr.Left += d
			sr.Right += d
		}
		if sr.Top < org.Row {
			d := org.Row - sr.Top
			sr.Top += d
			sr.Bottom += d
		}
		if sr.Width() > ownerWidth {
			sr.Right = sr.Left + ownerWidth
		}
		if sr.Height() > ownerHeight {
			sr.Bottom = sr.Top + ownerHeight
		}
		ct.win = window.New(ct.owner.Backend(), sr)
	}
	ct.win.DrawBorder(ct.style)
	s := surface.New(ct.registry)
	s.Init(ct.win)
	if paint != nil {
		paint(s)
	}
	s.Release()
	ct.win.Flush()
}

// Active reports whether the call tip window currently exists.
func (ct *CallTip) Active() bool {
	return ct.win != nil
}

// Hide tears down the call tip window. The next Show creates a new
// window from its rectangle argument.
func (ct *CallTip) Hide() {
	if ct.win != nil {
		ct.win.Destroy()
		ct.win = nil
	}
}

// Window returns the popup window, or nil while hidden.
func (ct *CallTip) Window() *window.Window {
	return ct.win
}
