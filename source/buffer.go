// Package source owns the raw bytes of a Chef program and provides the
// small set of primitives the lexer and parser need on top of them:
// indexed byte access, whitespace-aware peeking, and substring extraction
// for diagnostic spans.
package source

// Buffer holds a single source file's bytes and the file name used in
// diagnostic messages.
type Buffer struct {
	Name string
	Text []byte
}

// New wraps raw bytes as a Buffer. CR bytes are not stripped here; the
// lexer treats them as whitespace per the source file format rules.
func New(name string, text []byte) *Buffer {
	return &Buffer{Name: name, Text: text}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.Text)
}

// At returns the byte at pos, or 0 if pos is out of range.
func (b *Buffer) At(pos int) byte {
	if pos < 0 || pos >= len(b.Text) {
		return 0
	}
	return b.Text[pos]
}

// PeekChar returns the byte at pos without requiring the caller to bounds
// check. When ignoreWS is true, it skips over spaces and tabs first and
// returns the first non-whitespace byte (or 0 at EOF); the returned
// position is not reported back, since callers only use this to decide
// what comes next, not to advance.
func (b *Buffer) PeekChar(pos int, ignoreWS bool) byte {
	for pos < len(b.Text) {
		ch := b.Text[pos]
		if ignoreWS && (ch == ' ' || ch == '\t') {
			pos++
			continue
		}
		return ch
	}
	return 0
}

// HasPrefixAt reports whether the literal string lit occurs starting at
// pos. Used by the parser to probe for keyword lines ("Ingredients.",
// "Method.") without tokenising past them.
func (b *Buffer) HasPrefixAt(pos int, lit string) bool {
	end := pos + len(lit)
	if end > len(b.Text) {
		return false
	}
	return string(b.Text[pos:end]) == lit
}

// Span extracts the substring [begin, end) for diagnostic spans or for
// lexing an identifier/number run. Out-of-range bounds are clamped.
func (b *Buffer) Span(begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > len(b.Text) {
		end = len(b.Text)
	}
	if begin >= end {
		return ""
	}
	return string(b.Text[begin:end])
}
