package demo

import (
	"testing"

	"github.com/dshills/edterm"
)

func TestNew_EmptyDocument(t *testing.T) {
	e := New()

	if e.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", e.LineCount())
	}
	if e.Text() != "" {
		t.Errorf("Text = %q, want empty", e.Text())
	}
	if row, col := e.Caret(); row != 0 || col != 0 {
		t.Errorf("Caret = (%d,%d), want (0,0)", row, col)
	}
	if e.Modified() {
		t.Error("new document reports modified")
	}
}

func TestWithContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   []string
	}{
		{"lf", "one\ntwo\nthree", []string{"one", "two", "three"}},
		{"crlf", "one\r\ntwo", []string{"one", "two"}},
		{"cr", "one\rtwo", []string{"one", "two"}},
		{"mixed", "a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"trailing newline", "one\n", []string{"one", ""}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent(tt.content))
			if e.LineCount() != len(tt.lines) {
				t.Fatalf("LineCount = %d, want %d", e.LineCount(), len(tt.lines))
			}
			for i, want := range tt.lines {
				if got := e.Line(i); got != want {
					t.Errorf("Line(%d) = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestText_JoinsWithEOLMode(t *testing.T) {
	e := New(WithContent("one\ntwo"), WithEOLMode(edterm.EOLCRLF))

	if got := e.Text(); got != "one\r\ntwo" {
		t.Errorf("Text = %q, want %q", got, "one\r\ntwo")
	}
	if e.EOLMode() != edterm.EOLCRLF {
		t.Errorf("EOLMode = %v, want CRLF", e.EOLMode())
	}
}

func TestInsertText_MidLine(t *testing.T) {
	e := New(WithContent("hello world"))
	e.setCaret(0, 5)

	e.insertText(",")

	if got := e.Line(0); got != "hello, world" {
		t.Errorf("Line(0) = %q, want %q", got, "hello, world")
	}
	if _, col := e.Caret(); col != 6 {
		t.Errorf("caret col = %d, want 6", col)
	}
	if !e.Modified() {
		t.Error("insert did not mark the document modified")
	}
}

func TestInsertText_MultiLine(t *testing.T) {
	e := New(WithContent("headtail"))
	e.setCaret(0, 4)

	e.insertText("A\nB\nC")

	want := []string{"headA", "B", "Ctail"}
	for i, w := range want {
		if got := e.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
	if row, col := e.Caret(); row != 2 || col != 1 {
		t.Errorf("Caret = (%d,%d), want (2,1)", row, col)
	}
}

func TestDeleteBack(t *testing.T) {
	e := New(WithContent("ab\ncd"))

	// Joining at column zero pulls the line up
	e.setCaret(1, 0)
	e.deleteBack()
	if got := e.Line(0); got != "abcd" {
		t.Errorf("after join Line(0) = %q, want %q", got, "abcd")
	}
	if row, col := e.Caret(); row != 0 || col != 2 {
		t.Errorf("Caret = (%d,%d), want (0,2)", row, col)
	}

	// Plain rune removal
	e.deleteBack()
	if got := e.Line(0); got != "acd" {
		t.Errorf("Line(0) = %q, want %q", got, "acd")
	}

	// At the document start nothing happens
	e.setCaret(0, 0)
	e.deleteBack()
	if got := e.Line(0); got != "acd" {
		t.Errorf("Line(0) = %q, want unchanged %q", got, "acd")
	}
}

func TestDeleteForward(t *testing.T) {
	e := New(WithContent("ab\ncd"))

	e.setCaret(0, 2)
	e.deleteForward()
	if got := e.Line(0); got != "abcd" {
		t.Errorf("after join Line(0) = %q, want %q", got, "abcd")
	}

	e.setCaret(0, 0)
	e.deleteForward()
	if got := e.Line(0); got != "bcd" {
		t.Errorf("Line(0) = %q, want %q", got, "bcd")
	}

	// At the document end nothing happens
	e.setCaret(0, 3)
	e.deleteForward()
	if got := e.Line(0); got != "bcd" {
		t.Errorf("Line(0) = %q, want unchanged %q", got, "bcd")
	}
}

func TestSelection_SingleLine(t *testing.T) {
	e := New(WithContent("hello world"))
	e.setCaret(0, 0)
	e.anchor = position{row: 0, col: 0}
	e.caret = position{row: 0, col: 5}

	text, rectangular := e.Selection()
	if string(text) != "hello" {
		t.Errorf("Selection = %q, want %q", text, "hello")
	}
	if rectangular {
		t.Error("stream selection reported rectangular")
	}
}

func TestSelection_MultiLine(t *testing.T) {
	e := New(WithContent("one\ntwo\nthree"), WithEOLMode(edterm.EOLLF))
	e.anchor = position{row: 0, col: 2}
	e.caret = position{row: 2, col: 3}

	text, _ := e.Selection()
	if string(text) != "e\ntwo\nthr" {
		t.Errorf("Selection = %q, want %q", text, "e\ntwo\nthr")
	}

	// Reversed endpoints return the same bytes
	e.anchor, e.caret = e.caret, e.anchor
	text, _ = e.Selection()
	if string(text) != "e\ntwo\nthr" {
		t.Errorf("reversed Selection = %q, want %q", text, "e\ntwo\nthr")
	}
}

func TestSelection_Empty(t *testing.T) {
	e := New(WithContent("text"))

	text, rectangular := e.Selection()
	if text != nil || rectangular {
		t.Errorf("empty Selection = (%q, %v), want (nil, false)", text, rectangular)
	}
}

func TestDeleteSelection_MultiLine(t *testing.T) {
	e := New(WithContent("one\ntwo\nthree"))
	e.anchor = position{row: 0, col: 2}
	e.caret = position{row: 2, col: 3}

	e.deleteSelection()

	if e.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1", e.LineCount())
	}
	if got := e.Line(0); got != "onee" {
		t.Errorf("Line(0) = %q, want %q", got, "onee")
	}
	if row, col := e.Caret(); row != 0 || col != 2 {
		t.Errorf("Caret = (%d,%d), want (0,2)", row, col)
	}
}

func TestPaste_Stream(t *testing.T) {
	e := New(WithContent("headtail"))
	e.setCaret(0, 4)

	e.Paste([]byte("X\nY"), false)

	if got := e.Line(0); got != "headX" {
		t.Errorf("Line(0) = %q, want %q", got, "headX")
	}
	if got := e.Line(1); got != "Ytail" {
		t.Errorf("Line(1) = %q, want %q", got, "Ytail")
	}
}

func TestPaste_ReplacesSelection(t *testing.T) {
	e := New(WithContent("hello world"))
	e.anchor = position{row: 0, col: 0}
	e.caret = position{row: 0, col: 5}

	e.Paste([]byte("bye"), false)

	if got := e.Line(0); got != "bye world" {
		t.Errorf("Line(0) = %q, want %q", got, "bye world")
	}
}

func TestPaste_Rectangular(t *testing.T) {
	e := New(WithContent("aa\nbb"))
	e.setCaret(0, 1)

	e.Paste([]byte("X\nY\nZ"), true)

	want := []string{"aXa", "bYb", "Z"}
	if e.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", e.LineCount())
	}
	for i, w := range want {
		if got := e.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
	// The caret stays put on a rectangular paste
	if row, col := e.Caret(); row != 0 || col != 1 {
		t.Errorf("Caret = (%d,%d), want (0,1)", row, col)
	}
}

func TestPaste_Empty(t *testing.T) {
	e := New(WithContent("text"))

	e.Paste(nil, false)

	if e.Modified() {
		t.Error("empty paste marked the document modified")
	}
	if got := e.Line(0); got != "text" {
		t.Errorf("Line(0) = %q, want unchanged %q", got, "text")
	}
}

func TestMessage(t *testing.T) {
	e := New(WithContent("one\ntwo"))

	tests := []struct {
		name   string
		id     uint32
		wParam int64
		lParam int64
		want   int64
	}{
		{"length", MsgLength, 0, 0, 7},
		{"line count", MsgLineCount, 0, 0, 2},
		{"caret line", MsgCaretLine, 0, 0, 0},
		{"set caret", MsgSetCaret, 1, 2, 1},
		{"caret line after move", MsgCaretLine, 0, 0, 1},
		{"caret column after move", MsgCaretColumn, 0, 0, 2},
		{"set caret clamps", MsgSetCaret, 99, 99, 1},
		{"caret line clamped", MsgCaretLine, 0, 0, 1},
		{"caret column clamped", MsgCaretColumn, 0, 0, 3},
		{"not modified", MsgModified, 0, 0, 0},
		{"select all", MsgSelectAll, 0, 0, 1},
		{"unknown id", 9999, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := e.Message(tt.id, tt.wParam, tt.lParam); got != tt.want {
			t.Errorf("%s: Message(%d, %d, %d) = %d, want %d",
				tt.name, tt.id, tt.wParam, tt.lParam, got, tt.want)
		}
	}

	text, _ := e.Selection()
	if string(text) != "one\ntwo" {
		t.Errorf("after select all Selection = %q, want %q", text, "one\ntwo")
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\r\n\nb\r")
	want := []string{"a", "", "b", ""}
	if len(lines) != len(want) {
		t.Fatalf("splitLines returned %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if string(lines[i]) != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
