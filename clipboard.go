package edterm

// clipboard is the single internal text buffer an instance's copy and
// paste operate on. There is no native clipboard integration; text
// never leaves the process.
type clipboard struct {
	text        []byte
	rectangular bool
}

// set replaces the buffer wholesale with its own copy of text. Empty
// text is ignored, so copying an empty selection cannot clear a
// previous capture.
func (c *clipboard) set(text []byte, rectangular bool) {
	if len(text) == 0 {
		return
	}
	c.text = append(c.text[:0:0], text...)
	c.rectangular = rectangular
}

// contents returns the buffered text and its rectangular flag. The
// returned slice is the buffer itself; callers treat it as read-only.
func (c *clipboard) contents() ([]byte, bool) {
	return c.text, c.rectangular
}

// normalizeEOLs rewrites every line ending in text ("\r\n", "\r", or
// "\n") to the sequence for mode, leaving all other bytes intact.
func normalizeEOLs(text []byte, mode EOL) []byte {
	eol := mode.Sequence()
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			out = append(out, eol...)
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
			out = append(out, eol...)
		default:
			out = append(out, text[i])
		}
	}
	return out
}
