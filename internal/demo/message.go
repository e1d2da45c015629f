package demo

import "github.com/dshills/edterm"

// Message identifiers the demo engine understands. IDs and their
// semantics are engine defined; the adapter forwards them untouched.
const (
	// MsgLength reports the document length in bytes, line endings
	// included.
	MsgLength uint32 = 1 + iota
	// MsgLineCount reports the number of lines.
	MsgLineCount
	// MsgCaretLine reports the caret's line.
	MsgCaretLine
	// MsgCaretColumn reports the caret's column.
	MsgCaretColumn
	// MsgSetCaret moves the caret to line wParam, column lParam,
	// clamped to the document.
	MsgSetCaret
	// MsgSelectAll selects the whole document.
	MsgSelectAll
	// MsgModified reports whether the document changed since creation.
	MsgModified
)

// Notification codes the demo engine emits.
const (
	// NotifyModified reports the first change to a pristine document.
	NotifyModified edterm.NotificationCode = edterm.NotifyEngineBase + iota
)

// Message answers the demo's query and command set. Unrecognized IDs
// return zero.
func (e *Engine) Message(id uint32, wParam, lParam int64) int64 {
	switch id {
	case MsgLength:
		return int64(len(e.Text()))
	case MsgLineCount:
		return int64(len(e.lines))
	case MsgCaretLine:
		return int64(e.caret.row)
	case MsgCaretColumn:
		return int64(e.caret.col)
	case MsgSetCaret:
		e.setCaret(int(wParam), int(lParam))
		return 1
	case MsgSelectAll:
		e.selectAll()
		return 1
	case MsgModified:
		if e.modified {
			return 1
		}
		return 0
	}
	return 0
}

// setCaret moves the caret, clamping to the document, and drops any
// selection.
func (e *Engine) setCaret(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= len(e.lines) {
		row = len(e.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if n := len(e.lines[row]); col > n {
		col = n
	}
	e.caret = position{row: row, col: col}
	e.collapse()
}
