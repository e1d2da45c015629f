package demo

import (
	"strings"
	"testing"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/window"
)

// newTestEditor wires a demo engine into the adapter over a null
// backend and collects notifications.
func newTestEditor(t *testing.T, opts ...Option) (*Engine, edterm.Handle, *backend.NullBackend, *[]edterm.Notification) {
	t.Helper()
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	eng := New(opts...)
	var notes []edterm.Notification
	h, err := edterm.New(eng,
		func(_ edterm.Handle, n edterm.Notification) { notes = append(notes, n) },
		edterm.WithWindow(win),
		edterm.WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("edterm.New failed: %v", err)
	}
	t.Cleanup(func() { edterm.Destroy(h) })
	return eng, h, b, &notes
}

func typeString(h edterm.Handle, s string) {
	for _, r := range s {
		edterm.SendKey(h, edterm.Key(r), edterm.ModNone)
	}
}

func TestSendKey_TypesText(t *testing.T) {
	eng, h, _, notes := newTestEditor(t)

	typeString(h, "hello")

	if got := eng.Line(0); got != "hello" {
		t.Errorf("Line(0) = %q, want %q", got, "hello")
	}
	if row, col := eng.Caret(); row != 0 || col != 5 {
		t.Errorf("Caret = (%d,%d), want (0,5)", row, col)
	}

	// The first change reports the engine's modified notification
	found := false
	for _, n := range *notes {
		if n.Code == NotifyModified {
			found = true
		}
	}
	if !found {
		t.Error("no modified notification after typing")
	}
}

func TestSendKey_EditingKeys(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "ab")
	edterm.SendKey(h, edterm.KeyEnter, edterm.ModNone)
	typeString(h, "cd")

	if eng.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", eng.LineCount())
	}
	if got := eng.Line(1); got != "cd" {
		t.Errorf("Line(1) = %q, want %q", got, "cd")
	}

	edterm.SendKey(h, edterm.KeyHome, edterm.ModNone)
	edterm.SendKey(h, edterm.KeyBackspace, edterm.ModNone)

	if got := eng.Line(0); got != "abcd" {
		t.Errorf("after join Line(0) = %q, want %q", got, "abcd")
	}

	edterm.SendKey(h, edterm.KeyTab, edterm.ModNone)
	if got := eng.Line(0); got != "ab  cd" {
		t.Errorf("after tab Line(0) = %q, want %q", got, "ab  cd")
	}
}

func TestSendKey_SelectionAndClipboard(t *testing.T) {
	eng, h, _, _ := newTestEditor(t, WithContent("hello"))

	for i := 0; i < 5; i++ {
		edterm.SendKey(h, edterm.KeyRight, edterm.ModShift)
	}
	text, _ := eng.Selection()
	if string(text) != "hello" {
		t.Fatalf("Selection = %q, want %q", text, "hello")
	}

	edterm.Copy(h)
	if n := edterm.GetClipboard(h, nil); n != 5 {
		t.Errorf("GetClipboard size = %d, want 5", n)
	}

	edterm.SendKey(h, edterm.KeyEnd, edterm.ModNone)
	edterm.Paste(h)
	if got := eng.Line(0); got != "hellohello" {
		t.Errorf("after paste Line(0) = %q, want %q", got, "hellohello")
	}
}

func TestSendKey_ControlClipboardShortcuts(t *testing.T) {
	eng, h, _, _ := newTestEditor(t, WithContent("cut me"))

	edterm.SendKey(h, 'a', edterm.ModCtrl)
	edterm.SendKey(h, 'x', edterm.ModCtrl)

	if got := eng.Line(0); got != "" {
		t.Errorf("after cut Line(0) = %q, want empty", got)
	}
	buf := make([]byte, 16)
	n := edterm.GetClipboard(h, buf)
	if string(buf[:n]) != "cut me" {
		t.Errorf("clipboard = %q, want %q", buf[:n], "cut me")
	}

	edterm.SendKey(h, 'v', edterm.ModCtrl)
	if got := eng.Line(0); got != "cut me" {
		t.Errorf("after paste Line(0) = %q, want %q", got, "cut me")
	}
}

func TestSendKey_UnhandledControlKeyNotifies(t *testing.T) {
	_, h, _, notes := newTestEditor(t)

	edterm.SendKey(h, 'q', edterm.ModCtrl)

	var got *edterm.Notification
	for i := range *notes {
		if (*notes)[i].Code == edterm.NotifyKey {
			got = &(*notes)[i]
		}
	}
	if got == nil {
		t.Fatal("no key notification for Ctrl+Q")
	}
	if got.Key != 'q' || !got.Modifiers.HasCtrl() {
		t.Errorf("notification = %+v, want key 'q' with ctrl", got)
	}
}

func TestCompletion_AcceptInsertsRemainder(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "ca")
	edterm.SendKey(h, ' ', edterm.ModCtrl)

	if !eng.completing {
		t.Fatal("completion did not open")
	}
	lb := eng.host.ListBox()
	if !lb.Visible() {
		t.Fatal("list popup not visible")
	}
	if lb.Length() != 1 {
		t.Fatalf("list has %d items, want 1", lb.Length())
	}

	edterm.SendKey(h, edterm.KeyEnter, edterm.ModNone)

	if got := eng.Line(0); got != "caret" {
		t.Errorf("Line(0) = %q, want %q", got, "caret")
	}
	if eng.completing || lb.Visible() {
		t.Error("completion still open after accept")
	}
}

func TestCompletion_NavigateAndTab(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "c")
	edterm.SendKey(h, ' ', edterm.ModCtrl)

	lb := eng.host.ListBox()
	// caret, clipboard, cursor
	if lb.Length() != 3 {
		t.Fatalf("list has %d items, want 3", lb.Length())
	}
	if lb.Selection() != 0 {
		t.Fatalf("initial selection = %d, want 0", lb.Selection())
	}

	edterm.SendKey(h, edterm.KeyUp, edterm.ModNone)
	if lb.Selection() != 0 {
		t.Errorf("selection after up at top = %d, want 0", lb.Selection())
	}

	edterm.SendKey(h, edterm.KeyDown, edterm.ModNone)
	if lb.Selection() != 1 {
		t.Errorf("selection after down = %d, want 1", lb.Selection())
	}

	edterm.SendKey(h, edterm.KeyTab, edterm.ModNone)
	if got := eng.Line(0); got != "clipboard" {
		t.Errorf("Line(0) = %q, want %q", got, "clipboard")
	}
}

func TestCompletion_RefinesAndDismisses(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "s")
	edterm.SendKey(h, ' ', edterm.ModCtrl)

	lb := eng.host.ListBox()
	// screen, scroll, select, style
	if lb.Length() != 4 {
		t.Fatalf("list has %d items, want 4", lb.Length())
	}

	// Typing narrows the list
	typeString(h, "c")
	if lb.Length() != 2 {
		t.Errorf("refined list has %d items, want 2", lb.Length())
	}

	// A prefix with no matches closes it
	typeString(h, "z")
	if eng.completing || lb.Visible() {
		t.Error("completion still open with no matches")
	}
}

func TestCompletion_EscapeDismisses(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "s")
	edterm.SendKey(h, ' ', edterm.ModCtrl)
	if !eng.completing {
		t.Fatal("completion did not open")
	}

	edterm.SendKey(h, edterm.KeyEscape, edterm.ModNone)

	if eng.completing || eng.host.ListBox().Visible() {
		t.Error("completion still open after escape")
	}
	if got := eng.Line(0); got != "s" {
		t.Errorf("Line(0) = %q, want %q", got, "s")
	}
}

func TestCompletion_NoMatchesBeeps(t *testing.T) {
	eng, h, b, _ := newTestEditor(t)

	typeString(h, "zz")
	edterm.SendKey(h, ' ', edterm.ModCtrl)

	if eng.completing || eng.host.ListBox().Visible() {
		t.Error("completion opened with nothing to show")
	}
	if b.BeepCount() != 1 {
		t.Errorf("BeepCount = %d, want 1", b.BeepCount())
	}
}

func TestCallTip_ShowAndHide(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "print(")

	tip := eng.host.CallTip()
	if !tip.Active() {
		t.Fatal("call tip not shown after open parenthesis")
	}

	typeString(h, "x)")

	if tip.Active() {
		t.Error("call tip still active after close parenthesis")
	}
}

func TestCallTip_UnknownNameStaysHidden(t *testing.T) {
	eng, h, _, _ := newTestEditor(t)

	typeString(h, "frobnicate(")

	if eng.host.CallTip().Active() {
		t.Error("call tip shown for unknown function")
	}
}

func TestRefresh_PaintsDocument(t *testing.T) {
	_, h, b, _ := newTestEditor(t, WithContent("hello"))

	edterm.Refresh(h)

	// One margin column, then the text
	if row := b.RowString(0); !strings.HasPrefix(row, " hello") {
		t.Errorf("RowString(0) = %q, want leading %q", row, " hello")
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 1 || y != 0 {
		t.Errorf("cursor = (%d,%d,%v), want (1,0,true)", x, y, visible)
	}
}

func TestRefresh_PaintsSelection(t *testing.T) {
	_, h, b, _ := newTestEditor(t, WithContent("hello"))

	edterm.SendKey(h, edterm.KeyRight, edterm.ModNone)
	edterm.SendKey(h, edterm.KeyRight, edterm.ModShift)
	edterm.SendKey(h, edterm.KeyRight, edterm.ModShift)
	edterm.Refresh(h)

	// Columns 2 and 3 (after the margin) hold the selected "el"
	cell := b.GetCell(2, 0)
	if cell.Rune != 'e' {
		t.Fatalf("cell rune = %q, want 'e'", cell.Rune)
	}
	if !cell.Style.Background.Equals(core.ColorWhite) {
		t.Errorf("selected background = %v, want white", cell.Style.Background)
	}
	if !cell.Style.Foreground.Equals(core.ColorBlack) {
		t.Errorf("selected foreground = %v, want black", cell.Style.Foreground)
	}
	unselected := b.GetCell(1, 0)
	if !unselected.Style.Background.Equals(core.ColorBlack) {
		t.Errorf("unselected background = %v, want black", unselected.Style.Background)
	}
}

func TestRefresh_ShowsWhitespace(t *testing.T) {
	_, h, b, _ := newTestEditor(t, WithContent("a b"), WithShowWhitespace(true))

	edterm.Refresh(h)

	if row := b.RowString(0); !strings.Contains(row, "a·b") {
		t.Errorf("RowString(0) = %q, want %q shown", row, "a·b")
	}
}

func TestRefresh_ScrollsToCaret(t *testing.T) {
	content := strings.Repeat("line\n", 40)
	eng, h, b, _ := newTestEditor(t, WithContent(content))

	eng.setCaret(39, 0)
	edterm.Refresh(h)

	if eng.top == 0 {
		t.Error("view did not scroll for an offscreen caret")
	}
	_, y, _ := b.CursorPosition()
	if y < 0 || y >= 24 {
		t.Errorf("cursor row = %d, want on screen", y)
	}
}
