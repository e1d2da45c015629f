package edterm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/window"
)

// fakeEngine records every adapter call and answers with scripted
// results.
type fakeEngine struct {
	host    Host
	profile Profile
	inits   int

	painted   []core.Rect
	tipPaints int

	keys        []Key
	keyMods     []Modifiers
	consumeKeys bool
	inserted    []rune

	messages   [][3]int64
	messageRet int64

	selection []byte
	selRect   bool

	pasted     [][]byte
	pastedRect []bool
	eol        EOL
}

func (f *fakeEngine) Init(host Host, profile Profile) {
	f.inits++
	f.host = host
	f.profile = profile
}

func (f *fakeEngine) Paint(s Surface, rc core.Rect) {
	f.painted = append(f.painted, rc)
}

func (f *fakeEngine) PaintCallTip(s Surface) {
	f.tipPaints++
}

func (f *fakeEngine) KeyDown(key Key, mods Modifiers) bool {
	f.keys = append(f.keys, key)
	f.keyMods = append(f.keyMods, mods)
	return f.consumeKeys
}

func (f *fakeEngine) InsertCharacter(r rune) {
	f.inserted = append(f.inserted, r)
}

func (f *fakeEngine) Message(id uint32, wParam, lParam int64) int64 {
	f.messages = append(f.messages, [3]int64{int64(id), wParam, lParam})
	return f.messageRet
}

func (f *fakeEngine) Selection() ([]byte, bool) {
	return f.selection, f.selRect
}

func (f *fakeEngine) Paste(text []byte, rectangular bool) {
	f.pasted = append(f.pasted, text)
	f.pastedRect = append(f.pastedRect, rectangular)
}

func (f *fakeEngine) EOLMode() EOL {
	return f.eol
}

// newHosted creates an instance for f over a null backend and collects
// its notifications.
func newHosted(t *testing.T, f *fakeEngine) (Handle, *backend.NullBackend, *[]Notification) {
	t.Helper()
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	var notes []Notification
	h, err := New(f,
		func(_ Handle, n Notification) { notes = append(notes, n) },
		WithWindow(win),
		WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { Destroy(h) })
	return h, b, &notes
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNilEngine) {
		t.Errorf("New(nil engine) = %v, want ErrNilEngine", err)
	}
	if _, err := New(&fakeEngine{}, nil); !errors.Is(err, ErrNilWindow) {
		t.Errorf("New without window = %v, want ErrNilWindow", err)
	}
}

func TestNewInitRunsLast(t *testing.T) {
	f := &fakeEngine{}
	newHosted(t, f)

	if f.inits != 1 {
		t.Fatalf("Init ran %d times, want 1", f.inits)
	}
	// Init must see a fully wired host
	if f.host == nil {
		t.Fatal("Init received a nil host")
	}
	if f.host.ListBox() == nil || f.host.CallTip() == nil || f.host.Window() == nil {
		t.Error("host handed to Init is missing its popups or window")
	}
	if f.profile != DefaultProfile() {
		t.Errorf("Init profile = %+v, want defaults", f.profile)
	}
}

func TestSendKeyEngineConsumes(t *testing.T) {
	f := &fakeEngine{consumeKeys: true}
	h, _, notes := newHosted(t, f)

	SendKey(h, 'a', ModNone)

	if len(f.keys) != 1 || f.keys[0] != 'a' {
		t.Errorf("engine saw keys %v, want ['a']", f.keys)
	}
	if len(f.inserted) != 0 {
		t.Errorf("consumed key was also inserted: %v", f.inserted)
	}
	if len(*notes) != 0 {
		t.Errorf("consumed key was also notified: %v", *notes)
	}
}

func TestSendKeyRouting(t *testing.T) {
	tests := []struct {
		name       string
		key        Key
		mods       Modifiers
		wantInsert bool
		wantNotify bool
	}{
		{"plain rune", 'a', ModNone, true, false},
		{"shifted rune", 'A', ModShift, true, false},
		{"ctrl rune", 'a', ModCtrl, false, true},
		{"alt rune", 'x', ModAlt, false, true},
		{"meta rune", 'm', ModMeta, false, true},
		{"special key", KeyUp, ModNone, false, true},
		{"function key", KeyF5, ModNone, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEngine{}
			h, _, notes := newHosted(t, f)

			SendKey(h, tt.key, tt.mods)

			if got := len(f.inserted) == 1; got != tt.wantInsert {
				t.Errorf("inserted = %v, want insert %v", f.inserted, tt.wantInsert)
			}
			if got := len(*notes) == 1; got != tt.wantNotify {
				t.Errorf("notifications = %v, want notify %v", *notes, tt.wantNotify)
			}
			if tt.wantInsert && f.inserted[0] != rune(tt.key) {
				t.Errorf("inserted %q, want %q", f.inserted[0], rune(tt.key))
			}
			if tt.wantNotify {
				n := (*notes)[0]
				if n.Code != NotifyKey || n.Key != tt.key || n.Modifiers != tt.mods {
					t.Errorf("notification = %+v, want key %v mods %v", n, tt.key, tt.mods)
				}
			}
		})
	}
}

func TestSendMessageForwards(t *testing.T) {
	f := &fakeEngine{messageRet: 42}
	h, _, _ := newHosted(t, f)

	if got := SendMessage(h, 7, 100, -5); got != 42 {
		t.Errorf("SendMessage = %d, want 42", got)
	}
	if len(f.messages) != 1 || f.messages[0] != [3]int64{7, 100, -5} {
		t.Errorf("engine saw messages %v, want [7 100 -5]", f.messages)
	}
}

func TestRefreshPaintsFullExtent(t *testing.T) {
	f := &fakeEngine{}
	h, b, _ := newHosted(t, f)

	Refresh(h)

	if len(f.painted) != 1 {
		t.Fatalf("Paint ran %d times, want 1", len(f.painted))
	}
	want := core.NewRect(0, 0, 24, 80)
	if f.painted[0] != want {
		t.Errorf("paint extent = %+v, want %+v", f.painted[0], want)
	}
	if b.ShowCount() == 0 {
		t.Error("refresh did not flush to the terminal")
	}
}

func TestRefreshRepaintsActiveCallTip(t *testing.T) {
	f := &fakeEngine{}
	h, _, _ := newHosted(t, f)

	rc := core.RectFromScreen(core.RectFromSize(2, 2, 3, 12))
	f.host.CallTip().Show(rc, func(s *surface.Surface) {})
	if f.tipPaints != 0 {
		t.Fatalf("engine painted %d times before refresh", f.tipPaints)
	}

	Refresh(h)

	if f.tipPaints != 1 {
		t.Errorf("call tip repainted %d times, want 1", f.tipPaints)
	}
}

func TestRefreshLeavesInactivePopupsAlone(t *testing.T) {
	f := &fakeEngine{}
	h, _, _ := newHosted(t, f)

	Refresh(h)

	if f.tipPaints != 0 {
		t.Errorf("inactive call tip painted %d times", f.tipPaints)
	}
}

func TestCopyCapturesSelection(t *testing.T) {
	f := &fakeEngine{selection: []byte("grab"), selRect: true}
	h, _, _ := newHosted(t, f)

	Copy(h)

	text, rect := f.host.Clipboard()
	if string(text) != "grab" || !rect {
		t.Errorf("clipboard = %q, %v, want %q, true", text, rect, "grab")
	}
}

func TestCopyEmptySelectionKeepsClipboard(t *testing.T) {
	f := &fakeEngine{selection: []byte("first")}
	h, _, _ := newHosted(t, f)

	Copy(h)
	f.selection = nil
	Copy(h)

	text, _ := f.host.Clipboard()
	if string(text) != "first" {
		t.Errorf("clipboard = %q, want %q", text, "first")
	}
}

func TestPasteEmptyClipboardNoOp(t *testing.T) {
	f := &fakeEngine{}
	h, _, _ := newHosted(t, f)

	Paste(h)

	if len(f.pasted) != 0 {
		t.Errorf("empty clipboard pasted: %v", f.pasted)
	}
}

func TestPasteNormalizesAndKeepsShape(t *testing.T) {
	f := &fakeEngine{selection: []byte("a\r\nb\rc\nd"), selRect: true, eol: EOLLF}
	h, _, _ := newHosted(t, f)

	Copy(h)
	Paste(h)

	if len(f.pasted) != 1 {
		t.Fatalf("Paste ran %d times, want 1", len(f.pasted))
	}
	if got := string(f.pasted[0]); got != "a\nb\nc\nd" {
		t.Errorf("pasted %q, want %q", got, "a\nb\nc\nd")
	}
	if !f.pastedRect[0] {
		t.Error("rectangular flag lost across copy and paste")
	}
}

func TestGetClipboardTwoPhase(t *testing.T) {
	f := &fakeEngine{selection: []byte("ab\x00cd")}
	h, _, _ := newHosted(t, f)
	Copy(h)

	if n := GetClipboard(h, nil); n != 5 {
		t.Errorf("size query = %d, want 5", n)
	}

	small := make([]byte, 3)
	if n := GetClipboard(h, small); n != 3 || !bytes.Equal(small, []byte("ab\x00")) {
		t.Errorf("clipped read = %d, %q", n, small)
	}

	full := make([]byte, 5)
	if n := GetClipboard(h, full); n != 5 || !bytes.Equal(full, []byte("ab\x00cd")) {
		t.Errorf("full read = %d, %q", n, full)
	}
}

func TestNativeWindowReturnsBound(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	h, err := New(&fakeEngine{}, nil, WithWindow(win), WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer Destroy(h)

	if got := NativeWindow(h); got != win {
		t.Errorf("NativeWindow = %p, want %p", got, win)
	}
}

func TestDestroyRetiresHandle(t *testing.T) {
	f := &fakeEngine{messageRet: 7, selection: []byte("x")}
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	h, err := New(f, nil, WithWindow(win), WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	Copy(h)

	Destroy(h)

	if got := SendMessage(h, 1, 0, 0); got != 0 {
		t.Errorf("SendMessage after destroy = %d, want 0", got)
	}
	SendKey(h, 'a', ModNone)
	if len(f.inserted) != 0 {
		t.Errorf("SendKey after destroy reached the engine: %v", f.inserted)
	}
	Refresh(h)
	if len(f.painted) != 0 {
		t.Errorf("Refresh after destroy reached the engine: %v", f.painted)
	}
	if got := GetClipboard(h, nil); got != 0 {
		t.Errorf("GetClipboard after destroy = %d, want 0", got)
	}
	if NativeWindow(h) != nil {
		t.Error("NativeWindow after destroy is not nil")
	}

	// Destroying again is harmless, and the caller's window survives
	Destroy(h)
	if win.Destroyed() {
		t.Error("Destroy tore down the caller's window")
	}
}

func TestDestroyDismissesPopups(t *testing.T) {
	f := &fakeEngine{}
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	h, err := New(f, nil, WithWindow(win), WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	lb := f.host.ListBox()
	lb.Append("item", 0)
	lb.Show()
	tip := f.host.CallTip()
	tip.Show(core.RectFromScreen(core.RectFromSize(1, 1, 3, 10)), func(s *surface.Surface) {})

	Destroy(h)

	if lb.Visible() {
		t.Error("list box still visible after destroy")
	}
	if tip.Active() {
		t.Error("call tip still active after destroy")
	}
}

func TestNotifyNilCallbackDiscards(t *testing.T) {
	f := &fakeEngine{}
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)
	h, err := New(f, nil, WithWindow(win), WithRegistry(palette.New()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer Destroy(h)

	// Unconsumed special key tries to notify; nil callback must not panic
	SendKey(h, KeyUp, ModNone)
}

func TestHandlesNeverReused(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	win := window.NewFullScreen(b)

	seen := make(map[Handle]bool)
	for i := 0; i < 3; i++ {
		h, err := New(&fakeEngine{}, nil, WithWindow(win), WithRegistry(palette.New()))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if seen[h] {
			t.Fatalf("handle %d issued twice", h)
		}
		seen[h] = true
		Destroy(h)
	}
}

func TestUnknownHandleOperations(t *testing.T) {
	const bogus = Handle(0xFFFFFFFF)

	if got := SendMessage(bogus, 1, 2, 3); got != 0 {
		t.Errorf("SendMessage = %d, want 0", got)
	}
	SendKey(bogus, 'a', ModNone)
	Refresh(bogus)
	Copy(bogus)
	Paste(bogus)
	Destroy(bogus)
	if got := GetClipboard(bogus, nil); got != 0 {
		t.Errorf("GetClipboard = %d, want 0", got)
	}
	if NativeWindow(bogus) != nil {
		t.Error("NativeWindow for unknown handle is not nil")
	}
}
