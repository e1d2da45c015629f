// Package demo hosts a small line-buffer editing engine behind the
// adapter's engine contract. It exists so the adapter can be run and
// exercised end to end: plain text editing with a caret and selection,
// autocompletion from a word dictionary, call tips for a few known
// functions, and clipboard traffic through the host. It is not a real
// editing engine; document semantics stay deliberately small.
package demo

import (
	"sort"
	"strings"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/internal/logging"
)

// Default configuration values.
const (
	DefaultTabWidth = 4
	DefaultListRows = 5
)

// FunctionTag is the list type tag for completion items that name a
// function with a call tip.
const FunctionTag = 1

// functionGlyph marks function items in the completion list.
const functionGlyph = 'f'

// position addresses a rune in the document by line and column.
type position struct {
	row, col int
}

// before reports document order between two positions.
func (p position) before(other position) bool {
	if p.row != other.row {
		return p.row < other.row
	}
	return p.col < other.col
}

// dictEntry is one completion candidate.
type dictEntry struct {
	text string
	tag  int
}

// Engine is the demo editing engine. It holds the document as a slice
// of rune slices, one per line without terminators, and drives the
// adapter's popups and clipboard through the host it receives in Init.
type Engine struct {
	host    edterm.Host
	profile edterm.Profile

	lines  [][]rune
	caret  position
	anchor position
	top    int

	modified bool

	theme    Theme
	tabWidth int
	listRows int
	eol      edterm.EOL
	showWS   bool

	dict []dictEntry
	tips map[string]string

	completing bool
	wordRow    int
	wordStart  int
	tipText    string

	log *logging.Logger
}

var _ edterm.Engine = (*Engine)(nil)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial document text. Any line ending
// convention is accepted.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.lines = splitLines(content)
	}
}

// WithTabWidth sets the distance between tab stops in columns.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithListRows sets how many completion rows show at once.
func WithListRows(rows int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.listRows = rows
		}
	}
}

// WithEOLMode sets the document's line ending convention.
func WithEOLMode(eol edterm.EOL) Option {
	return func(e *Engine) {
		e.eol = eol
	}
}

// WithTheme sets the display colors.
func WithTheme(theme Theme) Option {
	return func(e *Engine) {
		e.theme = theme
	}
}

// WithShowWhitespace renders spaces as visible dots.
func WithShowWhitespace(show bool) Option {
	return func(e *Engine) {
		e.showWS = show
	}
}

// WithWords replaces the completion dictionary.
func WithWords(words []string) Option {
	return func(e *Engine) {
		e.dict = e.dict[:0]
		for _, w := range words {
			e.dict = append(e.dict, dictEntry{text: w})
		}
	}
}

// WithCallTips replaces the call tip table. The function names also
// join the completion dictionary.
func WithCallTips(tips map[string]string) Option {
	return func(e *Engine) {
		e.tips = tips
	}
}

// WithLogger routes engine logs through log. The default is silent.
func WithLogger(log *logging.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates a demo engine. Without options it starts with an empty
// document, the built-in dictionary and call tips, and LF line endings.
func New(opts ...Option) *Engine {
	e := &Engine{
		lines:    [][]rune{{}},
		theme:    DefaultTheme(),
		tabWidth: DefaultTabWidth,
		listRows: DefaultListRows,
		eol:      edterm.EOLLF,
		dict:     defaultWords(),
		tips:     defaultTips(),
		log:      logging.NullLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.lines) == 0 {
		e.lines = [][]rune{{}}
	}
	for name := range e.tips {
		e.dict = append(e.dict, dictEntry{text: name, tag: FunctionTag})
	}
	sort.Slice(e.dict, func(i, j int) bool { return e.dict[i].text < e.dict[j].text })
	return e
}

// defaultWords is the built-in completion dictionary.
func defaultWords() []dictEntry {
	words := []string{
		"append", "buffer", "caret", "clipboard", "cursor",
		"delete", "insert", "margin", "palette", "popup",
		"refresh", "screen", "scroll", "select", "style", "window",
	}
	dict := make([]dictEntry, 0, len(words))
	for _, w := range words {
		dict = append(dict, dictEntry{text: w})
	}
	return dict
}

// defaultTips is the built-in call tip table.
func defaultTips() map[string]string {
	return map[string]string{
		"find":  "find(text) search forward from the caret",
		"goto":  "goto(line, col) move the caret",
		"print": "print(text) write text at the caret",
	}
}

// Init receives the host callbacks and view defaults. The completion
// list's glyph registration and row count are pushed here so the first
// popup already shows them.
func (e *Engine) Init(host edterm.Host, profile edterm.Profile) {
	e.host = host
	e.profile = profile
	host.ListBox().RegisterGlyph(FunctionTag, functionGlyph)
	host.ListBox().SetVisibleRows(e.listRows)
	e.log.WithField("lines", len(e.lines)).Debug("engine attached")
}

// EOLMode reports the document's line ending convention.
func (e *Engine) EOLMode() edterm.EOL {
	return e.eol
}

// Text returns the whole document joined with the document's line
// ending convention.
func (e *Engine) Text() string {
	parts := make([]string, len(e.lines))
	for i, line := range e.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, e.eol.Sequence())
}

// Caret returns the caret position as line and column.
func (e *Engine) Caret() (row, col int) {
	return e.caret.row, e.caret.col
}

// Line returns the text of line n, or "" when n is out of range.
func (e *Engine) Line(n int) string {
	if n < 0 || n >= len(e.lines) {
		return ""
	}
	return string(e.lines[n])
}

// LineCount returns the number of lines in the document.
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Modified reports whether the document changed since creation.
func (e *Engine) Modified() bool {
	return e.modified
}

// SetTheme replaces the display colors. Takes effect on the next paint.
func (e *Engine) SetTheme(theme Theme) {
	e.theme = theme
}

// SetTabWidth changes the distance between tab stops in columns.
// Values below 1 are ignored.
func (e *Engine) SetTabWidth(width int) {
	if width >= 1 {
		e.tabWidth = width
	}
}

// SetShowWhitespace toggles rendering spaces as visible dots.
func (e *Engine) SetShowWhitespace(show bool) {
	e.showWS = show
}

// Selection returns the selected bytes in document order and whether
// the selection is rectangular. The demo only makes stream selections.
func (e *Engine) Selection() ([]byte, bool) {
	if !e.hasSelection() {
		return nil, false
	}
	start, end := e.selRange()
	if start.row == end.row {
		return []byte(string(e.lines[start.row][start.col:end.col])), false
	}
	var b strings.Builder
	b.WriteString(string(e.lines[start.row][start.col:]))
	for row := start.row + 1; row < end.row; row++ {
		b.WriteString(e.eol.Sequence())
		b.WriteString(string(e.lines[row]))
	}
	b.WriteString(e.eol.Sequence())
	b.WriteString(string(e.lines[end.row][:end.col]))
	return []byte(b.String()), false
}

// Paste inserts text at the caret. A stream paste replaces the
// selection; a rectangular paste lays the lines down one per row
// starting at the caret's row, all at the caret's column.
func (e *Engine) Paste(text []byte, rectangular bool) {
	if len(text) == 0 {
		return
	}
	if rectangular {
		e.pasteRectangular(splitLines(string(text)))
		return
	}
	e.deleteSelection()
	e.insertText(string(text))
}

// InsertCharacter inserts one typed character, replacing any selection.
// Typing also drives the popups: it refines an open completion list,
// and an opening parenthesis after a known function name shows its call
// tip while a closing parenthesis hides it.
func (e *Engine) InsertCharacter(r rune) {
	if e.host == nil {
		return
	}
	e.deleteSelection()
	e.insertText(string(r))
	switch {
	case e.completing:
		e.refineCompletion()
	case r == '(':
		e.maybeShowCallTip()
	case r == ')':
		if e.host.CallTip().Active() {
			e.host.CallTip().Hide()
		}
	}
}

// hasSelection reports whether the anchor and caret differ.
func (e *Engine) hasSelection() bool {
	return e.anchor != e.caret
}

// selRange returns the selection endpoints in document order.
func (e *Engine) selRange() (start, end position) {
	if e.anchor.before(e.caret) {
		return e.anchor, e.caret
	}
	return e.caret, e.anchor
}

// collapse drops the selection, leaving the caret in place.
func (e *Engine) collapse() {
	e.anchor = e.caret
}

// mark flags the document dirty, notifying the host on the first
// change.
func (e *Engine) mark() {
	if e.modified {
		return
	}
	e.modified = true
	if e.host != nil {
		e.host.Notify(edterm.Notification{Code: NotifyModified})
	}
}

// insertText inserts text at the caret, splitting lines at every line
// ending, and leaves the caret after the inserted text.
func (e *Engine) insertText(text string) {
	if text == "" {
		return
	}
	segs := splitLines(text)
	line := e.lines[e.caret.row]
	before := append([]rune(nil), line[:e.caret.col]...)
	after := append([]rune(nil), line[e.caret.col:]...)

	if len(segs) == 1 {
		e.lines[e.caret.row] = append(append(before, segs[0]...), after...)
		e.caret.col += len(segs[0])
	} else {
		grown := make([][]rune, 0, len(e.lines)+len(segs)-1)
		grown = append(grown, e.lines[:e.caret.row]...)
		grown = append(grown, append(before, segs[0]...))
		grown = append(grown, segs[1:len(segs)-1]...)
		last := append(append([]rune(nil), segs[len(segs)-1]...), after...)
		grown = append(grown, last)
		grown = append(grown, e.lines[e.caret.row+1:]...)
		e.lines = grown
		e.caret.row += len(segs) - 1
		e.caret.col = len(segs[len(segs)-1])
	}
	e.collapse()
	e.mark()
}

// pasteRectangular lays segments down one per row at the caret column,
// clamped to each line's length, growing the document as needed. The
// caret does not move.
func (e *Engine) pasteRectangular(segs [][]rune) {
	for i, seg := range segs {
		row := e.caret.row + i
		for row >= len(e.lines) {
			e.lines = append(e.lines, []rune{})
		}
		line := e.lines[row]
		col := e.caret.col
		if col > len(line) {
			col = len(line)
		}
		grown := append([]rune(nil), line[:col]...)
		grown = append(grown, seg...)
		grown = append(grown, line[col:]...)
		e.lines[row] = grown
	}
	e.collapse()
	e.mark()
}

// deleteSelection removes the selected text, if any, and leaves the
// caret at the selection start.
func (e *Engine) deleteSelection() {
	if !e.hasSelection() {
		return
	}
	start, end := e.selRange()
	head := append([]rune(nil), e.lines[start.row][:start.col]...)
	tail := e.lines[end.row][end.col:]
	e.lines[start.row] = append(head, tail...)
	e.lines = append(e.lines[:start.row+1], e.lines[end.row+1:]...)
	e.caret = start
	e.collapse()
	e.mark()
}

// deleteBack removes the rune before the caret, joining lines at column
// zero. A selection is removed instead.
func (e *Engine) deleteBack() {
	if e.hasSelection() {
		e.deleteSelection()
		return
	}
	switch {
	case e.caret.col > 0:
		line := e.lines[e.caret.row]
		e.lines[e.caret.row] = append(line[:e.caret.col-1], line[e.caret.col:]...)
		e.caret.col--
	case e.caret.row > 0:
		prev := e.lines[e.caret.row-1]
		e.caret.col = len(prev)
		e.lines[e.caret.row-1] = append(prev, e.lines[e.caret.row]...)
		e.lines = append(e.lines[:e.caret.row], e.lines[e.caret.row+1:]...)
		e.caret.row--
	default:
		return
	}
	e.collapse()
	e.mark()
}

// deleteForward removes the rune under the caret, joining lines at line
// end. A selection is removed instead.
func (e *Engine) deleteForward() {
	if e.hasSelection() {
		e.deleteSelection()
		return
	}
	line := e.lines[e.caret.row]
	switch {
	case e.caret.col < len(line):
		e.lines[e.caret.row] = append(line[:e.caret.col], line[e.caret.col+1:]...)
	case e.caret.row+1 < len(e.lines):
		e.lines[e.caret.row] = append(line, e.lines[e.caret.row+1]...)
		e.lines = append(e.lines[:e.caret.row+1], e.lines[e.caret.row+2:]...)
	default:
		return
	}
	e.collapse()
	e.mark()
}

// selectAll selects the whole document.
func (e *Engine) selectAll() {
	e.anchor = position{}
	e.caret = position{row: len(e.lines) - 1, col: len(e.lines[len(e.lines)-1])}
}

// splitLines splits text into lines on any of the three line ending
// conventions. The result always has at least one element.
func splitLines(text string) [][]rune {
	lines := [][]rune{{}}
	cur := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			lines = append(lines, []rune{})
			cur++
		case '\n':
			lines = append(lines, []rune{})
			cur++
		default:
			lines[cur] = append(lines[cur], runes[i])
		}
	}
	return lines
}
