package widget

import (
	"testing"

	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/window"
)

func newTipRegistry() *palette.Registry {
	reg := palette.New()
	reg.Init(palette.Capabilities{Colors: 16, Pairs: 257})
	return reg
}

func TestCallTipShowCreatesWindow(t *testing.T) {
	b := backend.NewNullBackend(40, 12)
	owner := window.NewFullScreen(b)
	ct := NewCallTip(owner, newTipRegistry())

	if ct.Active() {
		t.Error("Active() = true before Show")
	}

	painted := 0
	ct.Show(core.NewRect(2, 3, 6, 23), func(s *surface.Surface) {
		painted++
		s.DrawText(core.NewRect(1, 1, 2, 19), core.Font{}, "fn(a, b)", core.ColorWhite, core.ColorBlack)
	})

	if !ct.Active() {
		t.Fatal("Active() = false after Show")
	}
	win := ct.Window()
	if w, h := win.Size(); w != 20 || h != 4 {
		t.Errorf("tip size = (%d,%d), want (20,4)", w, h)
	}
	if org := win.Origin(); org.Row != 2 || org.Col != 3 {
		t.Errorf("tip origin = %v, want (2,3)", org)
	}
	if painted != 1 {
		t.Errorf("paint called %d times, want 1", painted)
	}
	// border corners land on the backend at the tip's absolute origin
	if got := b.GetCell(3, 2).Rune; got != '+' {
		t.Errorf("top left corner = %q, want '+'", got)
	}
	if got := b.GetCell(22, 5).Rune; got != '+' {
		t.Errorf("bottom right corner = %q, want '+'", got)
	}
	// content painted through the surface is window relative
	if got := strip(b, 3, 4, 8); got != "fn(a, b)" {
		t.Errorf("tip content = %q, want %q", got, "fn(a, b)")
	}
}

func TestCallTipShrinksToOwner(t *testing.T) {
	b := backend.NewNullBackend(40, 12)
	owner := window.NewFullScreen(b)
	ct := NewCallTip(owner, newTipRegistry())

	ct.Show(core.NewRect(0, 0, 30, 100), nil)

	if w, h := ct.Window().Size(); w != 40 || h != 12 {
		t.Errorf("tip size = (%d,%d), want clamped (40,12)", w, h)
	}
}

func TestCallTipSlidesToOwnerOrigin(t *testing.T) {
	b := backend.NewNullBackend(40, 12)
	owner := window.New(b, core.RectFromSize(5, 10, 6, 20))
	ct := NewCallTip(owner, newTipRegistry())

	// A rect computed in owner-relative terms starts before the owner's
	// absolute origin and slides to it, keeping its size.
	ct.Show(core.NewRect(0, 2, 3, 12), nil)

	win := ct.Window()
	if org := win.Origin(); org.Row != 5 || org.Col != 10 {
		t.Errorf("tip origin = %v, want owner origin (5,10)", org)
	}
	if w, h := win.Size(); w != 10 || h != 3 {
		t.Errorf("tip size = (%d,%d), want (10,3)", w, h)
	}
	if got := b.GetCell(10, 5).Rune; got != '+' {
		t.Errorf("corner at owner origin = %q, want '+'", got)
	}
}

func TestCallTipRedrawKeepsWindow(t *testing.T) {
	b := backend.NewNullBackend(40, 12)
	owner := window.NewFullScreen(b)
	ct := NewCallTip(owner, newTipRegistry())

	ct.Show(core.NewRect(1, 1, 5, 21), nil)
	win := ct.Window()

	painted := 0
	ct.Show(core.Rect{}, func(s *surface.Surface) {
		painted++
		if s.Window() != win {
			t.Error("redraw surface bound to a different window")
		}
	})

	if ct.Window() != win {
		t.Error("redraw replaced the tip window")
	}
	if w, h := win.Size(); w != 20 || h != 4 {
		t.Errorf("tip size after redraw = (%d,%d), want (20,4)", w, h)
	}
	if painted != 1 {
		t.Errorf("paint called %d times, want 1", painted)
	}
}

func TestCallTipHide(t *testing.T) {
	b := backend.NewNullBackend(40, 12)
	owner := window.NewFullScreen(b)
	ct := NewCallTip(owner, newTipRegistry())

	ct.Show(core.NewRect(0, 0, 4, 10), nil)
	win := ct.Window()
	ct.Hide()

	if ct.Active() {
		t.Error("Active() = true after Hide")
	}
	if !win.Destroyed() {
		t.Error("Hide did not destroy the tip window")
	}

	// the next Show builds a new window from its own rect
	ct.Show(core.NewRect(2, 2, 5, 8), nil)
	if org := ct.Window().Origin(); org.Row != 2 || org.Col != 2 {
		t.Errorf("recreated origin = %v, want (2,2)", org)
	}
	if w, h := ct.Window().Size(); w != 6 || h != 3 {
		t.Errorf("recreated size = (%d,%d), want (6,3)", w, h)
	}
}
