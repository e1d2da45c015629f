// Package widget implements the popup windows the editor floats above
// its main window: the autocompletion list and the call tip. Each owns
// a terminal sub-window that is created lazily on first display and
// destroyed explicitly, never as a side effect of the owner's teardown.
package widget

import (
	"strings"

	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/core"
	"github.com/dshills/edterm/window"
)

// DefaultVisibleRows is the number of list rows shown when the host
// has not asked for a specific height.
const DefaultVisibleRows = 5

// caretFromEdge is the column offset between the caret and the left
// edge of the list window: one border cell plus one glyph cell.
const caretFromEdge = 2

type listItem struct {
	glyph rune
	text  string
}

// ListBox is the autocompletion popup. Items are (glyph, text) pairs
// shown in append order inside a bordered window sized to the longest
// item. Type tags 0 through 9 map to registered indicator glyphs; any
// other tag shows a blank indicator.
type ListBox struct {
	backend   backend.Backend
	win       *window.Window
	rows      int
	width     int
	items     []listItem
	glyphs    [10]rune
	selection int
	style     core.Style
}

// NewListBox creates an empty list popup drawing on the given backend.
// The popup window itself is not created until Create or Show.
func NewListBox(b backend.Backend) *ListBox {
	lb := &ListBox{
		backend: b,
		rows:    DefaultVisibleRows,
		width:   10,
		style:   core.DefaultStyle(),
	}
	lb.ClearGlyphs()
	return lb
}

// Create allocates the popup window if it does not exist yet. The
// window starts as a single cell; Show grows it to the list contents.
func (lb *ListBox) Create() {
	if lb.win != nil {
		return
	}
	lb.win = window.New(lb.backend, core.RectFromSize(0, 0, 1, 1))
}

// Show sizes the popup window to fit the current contents, creating
// the window first if needed. Selection painting happens in Select.
func (lb *ListBox) Show() {
	lb.Create()
	width, height := lb.DesiredSize()
	lb.win.Resize(width, height)
}

// Visible reports whether the popup window currently exists.
func (lb *ListBox) Visible() bool {
	return lb.win != nil
}

// Destroy tears down the popup window. The list contents and
// registered glyphs survive, so a later Create starts a new session
// with the same registrations.
func (lb *ListBox) Destroy() {
	if lb.win != nil {
		lb.win.Destroy()
		lb.win = nil
	}
}

// Window returns the popup window, or nil before the first Create.
func (lb *ListBox) Window() *window.Window {
	return lb.win
}

// SetVisibleRows sets how many item rows the popup shows at once.
func (lb *ListBox) SetVisibleRows(rows int) {
	lb.rows = rows
}

// VisibleRows returns how many item rows the popup shows at once.
func (lb *ListBox) VisibleRows() int {
	return lb.rows
}

// DesiredSize returns the window size needed to show the list: the
// display width and visible rows, each plus two border cells.
func (lb *ListBox) DesiredSize() (width, height int) {
	return lb.width + 2, lb.rows + 2
}

// CaretFromEdge returns how many columns the popup sits left of the
// caret so the item text lines up under the typed prefix.
func (lb *ListBox) CaretFromEdge() int {
	return caretFromEdge
}

// Append adds an item to the end of the list. A type tag between 0 and
// 9 selects the glyph registered for that tag; any other tag shows a
// blank indicator. The display width grows to hold the longest item
// plus its glyph and only Clear shrinks it back.
func (lb *ListBox) Append(text string, typeTag int) {
	glyph := ' '
	if typeTag >= 0 && typeTag <= 9 {
		glyph = lb.glyphs[typeTag]
	}
	lb.items = append(lb.items, listItem{glyph: glyph, text: text})
	if lb.width < len(text)+1 {
		lb.width = len(text) + 1
	}
}

// Clear removes all items and resets the display width.
func (lb *ListBox) Clear() {
	lb.items = lb.items[:0]
	lb.width = 0
}

// Length returns the number of items in the list.
func (lb *ListBox) Length() int {
	return len(lb.items)
}

// Selection returns the index recorded by the last Select call.
func (lb *ListBox) Selection() int {
	return lb.selection
}

// Select records the selection and repaints the popup: border, a run
// of up to VisibleRows items centered on n and clamped to the list
// bounds, the selected row in reverse video, and the cursor on the
// selected row.
func (lb *ListBox) Select(n int) {
	lb.selection = n
	if lb.win == nil {
		return
	}
	lb.win.Clear()
	lb.win.DrawBorder(lb.style)
	length := len(lb.items)
	start := n - lb.rows/2
	if start+lb.rows > length {
		start = length - lb.rows
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < start+lb.rows && i < length; i++ {
		item := lb.items[i]
		lb.win.DrawString(i-start+1, 1, string(item.glyph)+item.text, lb.style)
		if i == n {
			lb.win.Restyle(i-start+1, 2, lb.width-1, func(core.Style) core.Style {
				return core.DefaultStyle().WithAttributes(core.AttrReverse)
			})
		}
	}
	lb.win.CursorTo(n-start+1, 1)
	lb.win.Flush()
}

// Find returns the index of the first item whose text starts with
// prefix, in append order, or -1 if no item matches. The indicator
// glyph is not part of the match.
func (lb *ListBox) Find(prefix string) int {
	for i, item := range lb.items {
		if strings.HasPrefix(item.text, prefix) {
			return i
		}
	}
	return -1
}

// Value returns the text of item n truncated to fit a buffer of size
// bytes including a terminator, mirroring the fixed-length replies of
// the message protocol. Out of range indexes and non-positive sizes
// yield an empty string.
func (lb *ListBox) Value(n, size int) string {
	if n < 0 || n >= len(lb.items) || size <= 0 {
		return ""
	}
	text := lb.items[n].text
	if len(text) >= size {
		text = text[:size-1]
	}
	return text
}

// RegisterGlyph maps a type tag between 0 and 9 to an indicator glyph
// shown before items appended with that tag. Other tags are ignored.
func (lb *ListBox) RegisterGlyph(typeTag int, glyph rune) {
	if typeTag >= 0 && typeTag <= 9 {
		lb.glyphs[typeTag] = glyph
	}
}

// ClearGlyphs resets every type tag back to a blank indicator.
func (lb *ListBox) ClearGlyphs() {
	for i := range lb.glyphs {
		lb.glyphs[i] = ' '
	}
}

// SetList replaces the contents from a separated string. Items are
// split on separator; within an item, text after the last typesep is
// parsed as the item's type tag and earlier typesep bytes stay part of
// the text. A trailing separator appends an empty item.
func (lb *ListBox) SetList(listText string, separator, typesep rune) {
	lb.Clear()
	for _, item := range strings.Split(listText, string(separator)) {
		typeTag := -1
		if sep := strings.LastIndex(item, string(typesep)); sep >= 0 {
			typeTag = leadingInt(item[sep+1:])
			item = item[:sep]
		}
		lb.Append(item, typeTag)
	}
}

// leadingInt parses an optionally signed run of leading digits,
// returning 0 when the string starts with none.
func leadingInt(s string) int {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
