// Package edterm adapts a character-oriented rich text editing engine
// to terminal screens. It supplies the platform half of the engine's
// porting contract: drawing surfaces over terminal windows, color pair
// management, autocompletion and call tip popups, a keyboard funnel,
// and a single internal clipboard buffer.
//
// The package is deliberately synchronous and single threaded. Every
// call runs to completion on the caller's goroutine; the host owns the
// event loop and serializes all calls into an instance. Multiple
// instances may share one terminal as long as their windows do not
// overlap, since the color pair registry is process wide state.
//
// A host creates an instance with New, feeds it keys and messages,
// asks it to Refresh after each batch of input, and finally calls
// Destroy. Destroy releases everything the adapter allocated but never
// the caller supplied window the instance was bound to.
package edterm

import (
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/widget"
	"github.com/dshills/edterm/window"
)

// Surface is the paint capability set the adapter hands to the engine.
// Pixel oriented operations degrade deterministically: rectangles
// become runs of spaces, metrics collapse to one cell, and pictorial
// calls draw nothing. The engine must tolerate the silent absence of
// those effects.
type Surface interface {
	FillRegion(rc core.Rect, back core.Color)
	FillRegionPattern(rc core.Rect, pattern *surface.Surface)
	DrawText(rc core.Rect, font core.Font, text string, fore, back core.Color)
	DrawClippedText(rc core.Rect, font core.Font, text string, fore, back core.Color)
	DrawTransparentText(rc core.Rect, font core.Font, text string, fore core.Color)
	MeasureText(font core.Font, text string) []int
	AlphaRectangle(rc core.Rect, fill core.Color)
	WidthText(font core.Font, text string) int
	WidthChar(font core.Font, ch rune) int
	Ascent(font core.Font) int
	Descent(font core.Font) int
	InternalLeading(font core.Font) int
	ExternalLeading(font core.Font) int
	Height(font core.Font) int
	AverageCharWidth(font core.Font) int
	PenColor(fore core.Color)
	MoveTo(x, y int)
	LineTo(x, y int)
	Polygon(pts []core.ScreenPos, fore, back core.Color)
	RectangleOutline(rc core.Rect, fore, back core.Color)
	RoundedRectangle(rc core.Rect, fore, back core.Color)
	Ellipse(rc core.Rect, fore, back core.Color)
	DrawImage(rc core.Rect, width, height int, pixels []byte)
	CopyFrom(rc core.Rect, from core.ScreenPos, src *surface.Surface)
	SetClip(rc core.Rect)
	FlushState()
}

var _ Surface = (*surface.Surface)(nil)

// Engine is the contract the hosted editing engine implements. The
// adapter calls into it for painting, key handling, and the generic
// message channel; everything else about document semantics belongs to
// the engine.
type Engine interface {
	// Init hands the engine its host callbacks and the terminal view
	// defaults. Called once, before any other method.
	Init(host Host, profile Profile)
	// Paint renders the region rc of the document onto s.
	Paint(s Surface, rc core.Rect)
	// PaintCallTip renders the call tip contents onto s.
	PaintCallTip(s Surface)
	// KeyDown offers a key to the engine's own key handling and
	// reports whether it was consumed.
	KeyDown(key Key, mods Modifiers) bool
	// InsertCharacter inserts a plain character as typed text.
	InsertCharacter(r rune)
	// Message is the generic command and query channel. IDs and
	// parameter semantics are owned by the engine, including its own
	// treatment of IDs it does not recognize.
	Message(id uint32, wParam, lParam int64) int64
	// Selection returns the current selection's bytes and whether it
	// is rectangular. An empty selection returns no bytes.
	Selection() ([]byte, bool)
	// Paste inserts pasted bytes, honoring rectangular placement when
	// the text was captured from a rectangular selection.
	Paste(text []byte, rectangular bool)
	// EOLMode reports the document's line ending convention.
	EOLMode() EOL
}

// Host is the adapter surface the engine calls back into.
type Host interface {
	// ListBox returns the autocompletion popup for this instance.
	ListBox() *widget.ListBox
	// CallTip returns the call tip popup for this instance.
	CallTip() *widget.CallTip
	// SetClipboard replaces the clipboard buffer with the given text
	// and rectangular flag. Empty text leaves the buffer untouched.
	SetClipboard(text []byte, rectangular bool)
	// Clipboard returns the clipboard buffer and rectangular flag.
	Clipboard() ([]byte, bool)
	// Notify delivers a notification to the host's callback.
	Notify(n Notification)
	// Window returns the terminal window the instance draws on.
	Window() *window.Window
}

// NotifyFunc receives notifications from an instance, identified by
// its handle. It is invoked synchronously on the calling goroutine.
type NotifyFunc func(h Handle, n Notification)

// NotificationCode identifies the event a Notification reports.
type NotificationCode int

const (
	// NotifyNone is the zero notification code.
	NotifyNone NotificationCode = iota
	// NotifyKey reports a key the engine declined that is not plain
	// typed text. The notification carries the raw key code and the
	// modifier bits.
	NotifyKey
	// NotifyEngineBase is the first code available for engine defined
	// notifications; the adapter itself never emits codes at or above
	// it.
	NotifyEngineBase NotificationCode = 1000
)

// Notification is the event record delivered to the host callback.
// The adapter fills Code, Key, and Modifiers for its own events; the
// remaining fields carry engine defined payloads.
type Notification struct {
	Code      NotificationCode
	Key       Key
	Modifiers Modifiers
	Position  int64
	Margin    int
	Text      string
}
