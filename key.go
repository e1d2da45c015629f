package edterm

import (
	"fmt"

	"github.com/dshills/edterm/backend"
)

// Key identifies a key sent to the editor. Printable keys carry their
// rune value directly; special keys use codes starting above the
// Unicode range so the two can never collide.
type Key rune

const (
	// KeySpecialBase is the first key code past the Unicode range.
	// Every code below it is a literal character.
	KeySpecialBase Key = 0x110000 + iota
	KeyDown
	KeyUp
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyEscape
	KeyBackspace
	KeyTab
	KeyEnter
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Printable reports whether the key is a literal character that can be
// inserted as typed text when no control modifier accompanies it.
func (k Key) Printable() bool {
	return k > 0 && k < KeySpecialBase
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyDown:
		return "Down"
	case KeyUp:
		return "Up"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeyEnter:
		return "Enter"
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if k.Printable() {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int64(k))
}

// KeyFromEvent translates a backend key event into the adapter's key
// and modifier form. The last result is false for events that carry no
// key, such as resize and paste markers.
func KeyFromEvent(ev backend.Event) (Key, Modifiers, bool) {
	if ev.Type != backend.EventKey {
		return 0, ModNone, false
	}
	mods := ModNone
	if ev.Mod.Has(backend.ModShift) {
		mods |= ModShift
	}
	if ev.Mod.Has(backend.ModCtrl) {
		mods |= ModCtrl
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods |= ModAlt
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods |= ModMeta
	}

	switch ev.Key {
	case backend.KeyRune:
		return Key(ev.Rune), mods, true
	case backend.KeyEscape:
		return KeyEscape, mods, true
	case backend.KeyEnter:
		return KeyEnter, mods, true
	case backend.KeyTab:
		return KeyTab, mods, true
	case backend.KeyBackspace:
		return KeyBackspace, mods, true
	case backend.KeyDelete:
		return KeyDelete, mods, true
	case backend.KeyInsert:
		return KeyInsert, mods, true
	case backend.KeyHome:
		return KeyHome, mods, true
	case backend.KeyEnd:
		return KeyEnd, mods, true
	case backend.KeyPageUp:
		return KeyPageUp, mods, true
	case backend.KeyPageDown:
		return KeyPageDown, mods, true
	case backend.KeyUp:
		return KeyUp, mods, true
	case backend.KeyDown:
		return KeyDown, mods, true
	case backend.KeyLeft:
		return KeyLeft, mods, true
	case backend.KeyRight:
		return KeyRight, mods, true
	}
	if ev.Key >= backend.KeyF1 && ev.Key <= backend.KeyF12 {
		return KeyF1 + Key(ev.Key-backend.KeyF1), mods, true
	}
	return 0, mods, false
}

// Modifiers represents keyboard modifier keys.
type Modifiers uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifiers = 0

	// ModShift indicates the Shift key.
	ModShift Modifiers = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModMeta indicates the Meta key.
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifiers) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifiers) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifiers) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifiers) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifiers with the specified modifier added.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns a new Modifiers with the specified modifier removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifiers) String() string {
	if m == ModNone {
		return ""
	}
	s := ""
	if m.HasCtrl() {
		s += "Ctrl+"
	}
	if m.HasAlt() {
		s += "Alt+"
	}
	if m.HasShift() {
		s += "Shift+"
	}
	if m.HasMeta() {
		s += "Meta+"
	}
	return s[:len(s)-1]
}
