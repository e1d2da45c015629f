package edterm

import (
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/internal/logging"
	"github.com/dshills/edterm/palette"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/widget"
	"github.com/dshills/edterm/window"
	"github.com/google/uuid"
)

// Option configures New.
type Option func(*options)

type options struct {
	win      *window.Window
	registry *palette.Registry
	log      *logging.Logger
}

// WithWindow binds the instance to win. An instance cannot exist
// without a window to draw on, so New fails when no window option is
// given.
func WithWindow(win *window.Window) Option {
	return func(o *options) { o.win = win }
}

// WithRegistry resolves the instance's colors through reg instead of
// the process-wide shared registry.
func WithRegistry(reg *palette.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger routes instance logs through log. The default is the
// silent logger.
func WithLogger(log *logging.Logger) Option {
	return func(o *options) { o.log = log }
}

// editor is one hosted engine instance bound to a window. It
// implements Host for its engine.
type editor struct {
	id       uuid.UUID
	handle   Handle
	engine   Engine
	callback NotifyFunc
	win      *window.Window
	sur      *surface.Surface
	registry *palette.Registry
	list     *widget.ListBox
	tip      *widget.CallTip
	clip     clipboard
	profile  Profile
	log      *logging.Logger
}

var _ Host = (*editor)(nil)

// New creates an instance hosting engine and returns its handle.
// Notifications go to callback; a nil callback discards them. The
// window given by WithWindow is required and remains owned by the
// caller.
//
// The first creation against a registry enumerates the terminal's
// color pairs as a process-wide side effect. Colors beyond the
// canonical sixteen are never enumerated, so a 256-color terminal
// still gets the sixteen-color pair table.
//
// The engine's Init runs last, after the instance is fully wired, so
// Init may already use every Host method.
func New(engine Engine, callback NotifyFunc, opts ...Option) (Handle, error) {
	if engine == nil {
		return 0, ErrNilEngine
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.win == nil {
		return 0, ErrNilWindow
	}
	reg := o.registry
	if reg == nil {
		reg = palette.Default()
	}
	log := o.log
	if log == nil {
		log = logging.NullLogger
	}

	colors := min(o.win.Backend().Colors(), 16)
	reg.Init(palette.Capabilities{Colors: colors, Pairs: colors*colors + 1})

	ed := &editor{
		id:       uuid.New(),
		engine:   engine,
		callback: callback,
		win:      o.win,
		registry: reg,
		profile:  DefaultProfile(),
		log:      log.WithComponent("host"),
	}
	ed.sur = surface.New(reg)
	ed.sur.Init(ed.win)
	ed.list = widget.NewListBox(ed.win.Backend())
	ed.tip = widget.NewCallTip(ed.win, reg)
	ed.handle = handles.add(ed)

	ed.log.WithField("instance", ed.id.String()).Debug("instance created")
	engine.Init(ed, ed.profile)
	return ed.handle, nil
}

// Destroy tears down the instance for h: the paint surface is
// released, both popups are destroyed, and the handle is retired. The
// window the instance was bound to belongs to the caller and is never
// touched. Destroying a handle that is not live is a no-op.
func Destroy(h Handle) {
	ed := handles.remove(h)
	if ed == nil {
		return
	}
	ed.sur.Release()
	ed.list.Destroy()
	ed.tip.Hide()
	ed.log.WithField("instance", ed.id.String()).Debug("instance destroyed")
}

// SendMessage forwards a command or query to h's engine and returns
// the engine's result. Message IDs and parameter semantics belong to
// the engine. An unknown handle returns 0.
func SendMessage(h Handle, id uint32, wParam, lParam int64) int64 {
	ed := handles.get(h)
	if ed == nil {
		return 0
	}
	return ed.engine.Message(id, wParam, lParam)
}

// SendKey routes one key press into h's engine. The engine's own key
// handling sees it first; an unconsumed key that is plain typed text
// (printable with no ctrl, alt, or meta modifier) is inserted as a
// character; any other unconsumed key is reported to the host
// callback as a NotifyKey notification carrying the raw key code and
// the modifier bits.
func SendKey(h Handle, key Key, mods Modifiers) {
	ed := handles.get(h)
	if ed == nil {
		return
	}
	if ed.engine.KeyDown(key, mods) {
		return
	}
	if key.Printable() && !mods.Has(ModCtrl|ModAlt|ModMeta) {
		ed.engine.InsertCharacter(rune(key))
		return
	}
	ed.Notify(Notification{Code: NotifyKey, Key: key, Modifiers: mods})
}

// Refresh paints the full extent of h's window through the engine and
// flushes it to the terminal, then repaints whichever popup is active.
// The popups are separate windows the main paint pass does not touch,
// so without the explicit repaint a refresh would leave them showing
// stale cells.
func Refresh(h Handle) {
	ed := handles.get(h)
	if ed == nil {
		return
	}
	width, height := ed.win.Size()
	ed.engine.Paint(ed.sur, core.NewRect(0, 0, float64(height), float64(width)))
	ed.win.Flush()
	if ed.list.Visible() {
		ed.list.Select(ed.list.Selection())
	}
	if ed.tip.Active() {
		ed.tip.Show(core.Rect{}, func(s *surface.Surface) {
			ed.engine.PaintCallTip(s)
		})
	}
}

// GetClipboard reads h's clipboard buffer in two phases: a nil buf
// returns the byte length of the buffered text without copying, and a
// non-nil buf receives the text, clipped to the buffer's capacity,
// returning the count copied. The text may contain NUL bytes; the
// reported length is authoritative, not any terminator.
func GetClipboard(h Handle, buf []byte) int {
	ed := handles.get(h)
	if ed == nil {
		return 0
	}
	text, _ := ed.clip.contents()
	if buf == nil {
		return len(text)
	}
	return copy(buf, text)
}

// Copy captures h's current selection into the instance clipboard,
// preserving the selection's rectangular flag. An empty selection
// leaves the clipboard unchanged.
func Copy(h Handle) {
	ed := handles.get(h)
	if ed == nil {
		return
	}
	ed.SetClipboard(ed.engine.Selection())
}

// Paste inserts the instance clipboard into h's document. An empty
// clipboard is a no-op; otherwise line endings are normalized to the
// document's convention and the text is forwarded with its
// rectangular flag.
func Paste(h Handle) {
	ed := handles.get(h)
	if ed == nil {
		return
	}
	text, rectangular := ed.clip.contents()
	if len(text) == 0 {
		return
	}
	ed.engine.Paste(normalizeEOLs(text, ed.engine.EOLMode()), rectangular)
}

// NativeWindow returns the window backing h, so a larger application
// can compose the editor into its own layout. An unknown handle
// returns nil.
func NativeWindow(h Handle) *window.Window {
	ed := handles.get(h)
	if ed == nil {
		return nil
	}
	return ed.win
}

// ListBox returns the instance's autocompletion popup.
func (ed *editor) ListBox() *widget.ListBox {
	return ed.list
}

// CallTip returns the instance's call tip popup.
func (ed *editor) CallTip() *widget.CallTip {
	return ed.tip
}

// SetClipboard replaces the clipboard buffer. Empty text is ignored so
// that copying nothing cannot clear a previous capture.
func (ed *editor) SetClipboard(text []byte, rectangular bool) {
	ed.clip.set(text, rectangular)
}

// Clipboard returns the clipboard buffer and its rectangular flag.
func (ed *editor) Clipboard() ([]byte, bool) {
	return ed.clip.contents()
}

// Notify delivers a notification to the host callback on the calling
// goroutine. A nil callback discards it.
func (ed *editor) Notify(n Notification) {
	if ed.callback == nil {
		return
	}
	ed.callback(ed.handle, n)
}

// Window returns the terminal window the instance draws on.
func (ed *editor) Window() *window.Window {
	return ed.win
}
