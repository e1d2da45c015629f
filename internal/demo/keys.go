package demo

import (
	"strings"
	"unicode"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/surface"
	"github.com/dshills/edterm/window"
)

// completionValueMax is the reply buffer size used when reading an item
// back from the list, terminator included.
const completionValueMax = 256

// KeyDown handles navigation, editing, and shortcut keys. Unconsumed
// keys flow back to the adapter, which inserts plain text itself and
// reports the rest to the host callback.
func (e *Engine) KeyDown(key edterm.Key, mods edterm.Modifiers) bool {
	if e.host == nil {
		return false
	}
	if e.completing && e.completionKey(key) {
		return true
	}
	if mods.HasCtrl() && !mods.HasAlt() && !mods.HasMeta() {
		return e.controlKey(key)
	}
	switch key {
	case edterm.KeyLeft, edterm.KeyRight, edterm.KeyUp, edterm.KeyDown,
		edterm.KeyHome, edterm.KeyEnd, edterm.KeyPageUp, edterm.KeyPageDown:
		e.moveCaret(key, mods.HasShift())
		return true
	case edterm.KeyBackspace:
		e.deleteBack()
		return true
	case edterm.KeyDelete:
		e.deleteForward()
		return true
	case edterm.KeyEnter:
		e.deleteSelection()
		e.insertText("\n")
		return true
	case edterm.KeyTab:
		e.insertTab()
		return true
	case edterm.KeyEscape:
		switch {
		case e.host.CallTip().Active():
			e.host.CallTip().Hide()
		case e.hasSelection():
			e.collapse()
		default:
			return false
		}
		return true
	}
	return false
}

// controlKey handles control shortcuts. Unknown combinations are left
// for the host, so application keys like Ctrl+Q pass through.
func (e *Engine) controlKey(key edterm.Key) bool {
	switch key {
	case ' ':
		e.openCompletion()
		return true
	case 'a':
		e.selectAll()
		return true
	case 'c':
		e.host.SetClipboard(e.Selection())
		return true
	case 'x':
		e.host.SetClipboard(e.Selection())
		e.deleteSelection()
		return true
	case 'v':
		text, rectangular := e.host.Clipboard()
		e.Paste(text, rectangular)
		return true
	}
	return false
}

// moveCaret applies a movement key. With extend the anchor stays put,
// growing the selection; otherwise the selection collapses to the new
// caret.
func (e *Engine) moveCaret(key edterm.Key, extend bool) {
	line := e.lines[e.caret.row]
	switch key {
	case edterm.KeyLeft:
		if e.caret.col > 0 {
			e.caret.col--
		} else if e.caret.row > 0 {
			e.caret.row--
			e.caret.col = len(e.lines[e.caret.row])
		}
	case edterm.KeyRight:
		if e.caret.col < len(line) {
			e.caret.col++
		} else if e.caret.row+1 < len(e.lines) {
			e.caret.row++
			e.caret.col = 0
		}
	case edterm.KeyUp:
		if e.caret.row > 0 {
			e.caret.row--
			e.clampCol()
		}
	case edterm.KeyDown:
		if e.caret.row+1 < len(e.lines) {
			e.caret.row++
			e.clampCol()
		}
	case edterm.KeyHome:
		e.caret.col = 0
	case edterm.KeyEnd:
		e.caret.col = len(line)
	case edterm.KeyPageUp, edterm.KeyPageDown:
		_, height := e.host.Window().Size()
		if height < 1 {
			height = 1
		}
		if key == edterm.KeyPageUp {
			e.caret.row -= height
			if e.caret.row < 0 {
				e.caret.row = 0
			}
		} else {
			e.caret.row += height
			if e.caret.row >= len(e.lines) {
				e.caret.row = len(e.lines) - 1
			}
		}
		e.clampCol()
	}
	if !extend {
		e.collapse()
	}
}

// clampCol keeps the caret column within the current line.
func (e *Engine) clampCol() {
	if n := len(e.lines[e.caret.row]); e.caret.col > n {
		e.caret.col = n
	}
}

// insertTab inserts spaces up to the next tab stop.
func (e *Engine) insertTab() {
	e.deleteSelection()
	x := e.displayCol(e.lines[e.caret.row], e.caret.col)
	e.insertText(strings.Repeat(" ", e.tabWidth-x%e.tabWidth))
}

// completionKey handles keys owned by the open completion list and
// reports whether the key was consumed. Horizontal movement dismisses
// the list and then moves normally.
func (e *Engine) completionKey(key edterm.Key) bool {
	lb := e.host.ListBox()
	switch key {
	case edterm.KeyUp:
		if n := lb.Selection(); n > 0 {
			lb.Select(n - 1)
		}
		return true
	case edterm.KeyDown:
		if n := lb.Selection(); n < lb.Length()-1 {
			lb.Select(n + 1)
		}
		return true
	case edterm.KeyEnter, edterm.KeyTab:
		e.acceptCompletion()
		return true
	case edterm.KeyEscape:
		e.dismissCompletion()
		return true
	case edterm.KeyBackspace:
		e.deleteBack()
		e.refineCompletion()
		return true
	case edterm.KeyLeft, edterm.KeyRight, edterm.KeyHome, edterm.KeyEnd,
		edterm.KeyPageUp, edterm.KeyPageDown:
		e.dismissCompletion()
		return false
	}
	return false
}

// openCompletion shows the completion list for the identifier prefix
// before the caret. With no prefix the whole dictionary shows; with no
// matches at all the terminal bell sounds instead.
func (e *Engine) openCompletion() {
	line := e.lines[e.caret.row]
	start := wordStart(line, e.caret.col)
	matches := e.matches(string(line[start:e.caret.col]))
	if len(matches) == 0 {
		e.host.Window().Backend().Beep()
		return
	}
	e.completing = true
	e.wordRow = e.caret.row
	e.wordStart = start
	e.showMatches(matches)
}

// refineCompletion refilters the open list against the typed prefix,
// dismissing it when the caret leaves the word or nothing matches.
func (e *Engine) refineCompletion() {
	if e.caret.row != e.wordRow || e.caret.col < e.wordStart {
		e.dismissCompletion()
		return
	}
	matches := e.matches(string(e.lines[e.wordRow][e.wordStart:e.caret.col]))
	if len(matches) == 0 {
		e.dismissCompletion()
		return
	}
	e.showMatches(matches)
}

// matches returns the dictionary entries starting with prefix.
func (e *Engine) matches(prefix string) []dictEntry {
	out := make([]dictEntry, 0, len(e.dict))
	for _, d := range e.dict {
		if strings.HasPrefix(d.text, prefix) {
			out = append(out, d)
		}
	}
	return out
}

// showMatches rebuilds the completion popup and places it under the
// word being completed, so the item text lines up with the typed
// prefix.
func (e *Engine) showMatches(matches []dictEntry) {
	lb := e.host.ListBox()
	lb.Clear()
	for _, m := range matches {
		lb.Append(m.text, m.tag)
	}
	rows := e.listRows
	if rows > len(matches) {
		rows = len(matches)
	}
	lb.SetVisibleRows(rows)
	lb.Show()

	win := e.host.Window()
	margin := e.profile.MarkerMarginWidth
	width, height := lb.DesiredSize()
	row := (e.wordRow - e.top) + 1
	col := margin + e.displayCol(e.lines[e.wordRow], e.wordStart) - lb.CaretFromEdge()
	place := window.PositionRelative(core.RectFromSize(row, col, height, width), win)
	lb.Window().MoveTo(place.Top, place.Left)
	lb.Select(0)
}

// acceptCompletion inserts the selected item's remainder and closes the
// list.
func (e *Engine) acceptCompletion() {
	lb := e.host.ListBox()
	full := []rune(lb.Value(lb.Selection(), completionValueMax))
	typed := e.caret.col - e.wordStart
	if typed >= 0 && typed < len(full) {
		e.insertText(string(full[typed:]))
	}
	e.dismissCompletion()
}

// dismissCompletion closes the list popup and clears its contents.
func (e *Engine) dismissCompletion() {
	lb := e.host.ListBox()
	lb.Clear()
	lb.Destroy()
	e.completing = false
}

// maybeShowCallTip shows the call tip for the function name ending just
// before the parenthesis the caret sits behind.
func (e *Engine) maybeShowCallTip() {
	line := e.lines[e.caret.row]
	end := e.caret.col - 1
	start := wordStart(line, end)
	if start >= end {
		return
	}
	tip, ok := e.tips[string(line[start:end])]
	if !ok {
		return
	}
	e.tipText = tip

	org := e.host.Window().Origin()
	margin := e.profile.MarkerMarginWidth
	row := org.Row + (e.caret.row - e.top) + 1
	col := org.Col + margin + e.displayCol(line, start)
	rc := core.RectFromScreen(core.RectFromSize(row, col, 3, len(tip)+2))
	e.host.CallTip().Show(rc, func(s *surface.Surface) {
		e.PaintCallTip(s)
	})
}

// wordStart scans back from col for the start of the identifier ending
// there.
func wordStart(line []rune, col int) int {
	start := col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return start
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
