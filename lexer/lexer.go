// Package lexer turns a source.Buffer into a lazy stream of tokens for
// the Chef parser.
package lexer

import (
	"github.com/chef-lang/chef/source"
	"github.com/chef-lang/chef/token"
)

// Lexer scans a source.Buffer one token at a time. Like the teacher's
// Cooklang lexer it supports putting a token back so the parser can get
// one token of lookahead without a separate buffering layer of its own.
type Lexer struct {
	buf *source.Buffer
	pos int

	line   int
	column int

	// ignoreSingleNewlines, when set, makes a lone '\n' act as
	// whitespace instead of producing a NewLine token. Two or more
	// still collapse to a single EndOfParagraph regardless.
	ignoreSingleNewlines bool

	putBack []token.Token
}

// New creates a Lexer positioned at the start of buf.
func New(buf *source.Buffer) *Lexer {
	return &Lexer{buf: buf, pos: 0, line: 1, column: 1}
}

// SetIgnoreSingleNewlines toggles whether a lone newline is treated as
// whitespace rather than emitted as a NewLine token.
func (l *Lexer) SetIgnoreSingleNewlines(ignore bool) {
	l.ignoreSingleNewlines = ignore
}

// PeekChar returns the next byte without advancing. When ignoreWS is
// true it skips spaces and tabs first, exactly as spec §4.1 describes
// peek_char(ignore_ws).
func (l *Lexer) PeekChar(ignoreWS bool) byte {
	return l.buf.PeekChar(l.pos, ignoreWS)
}

// HasLiteralAhead reports whether the literal string lit begins at the
// current (post-whitespace) position, without consuming any tokens. The
// parser uses this to probe for "Ingredients.\n" / "Method.\n" headers.
func (l *Lexer) HasLiteralAhead(lit string) bool {
	p := l.pos
	for p < len(l.buf.Text) && (l.buf.Text[p] == ' ' || l.buf.Text[p] == '\t' || l.buf.Text[p] == '\r') {
		p++
	}
	return l.buf.HasPrefixAt(p, lit)
}

func (l *Lexer) advance() byte {
	ch := l.buf.At(l.pos)
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Pos returns the current byte offset into the buffer.
func (l *Lexer) Pos() int {
	return l.pos
}

// LineCol returns the current 1-based line and column.
func (l *Lexer) LineCol() (int, int) {
	return l.line, l.column
}

// ReadRawUntil consumes raw bytes (bypassing tokenisation) up to but not
// including the first occurrence of stopByte, or to EOF if stopByte
// never occurs. It is used for the free-form spans of the grammar that
// are not built from tokens: recipe titles ("all bytes up to the first
// FullStop") and ingredient names ("everything remaining up to the line
// terminator"). Any buffered (PutBack) tokens are discarded first and the
// read restarts at the beginning of the earliest of them, so their text
// is included in the result.
func (l *Lexer) ReadRawUntil(stopByte byte) (string, token.Location) {
	if len(l.putBack) > 0 {
		first := l.putBack[0].Loc
		l.pos, l.line, l.column = first.Begin, first.Line, first.Column
	}
	l.putBack = nil
	start := l.pos
	beginLine, beginCol := l.line, l.column
	for l.pos < l.buf.Len() && l.buf.At(l.pos) != stopByte {
		l.advance()
	}
	text := l.buf.Span(start, l.pos)
	return text, loc(start, l.pos, beginLine, beginCol)
}

// PutBack pushes a token back onto the front of the stream; the next
// Next() call returns it before reading any further input.
func (l *Lexer) PutBack(tok token.Token) {
	l.putBack = append([]token.Token{tok}, l.putBack...)
}

// Next returns the next token, advancing the lexer past it.
func (l *Lexer) Next() token.Token {
	if len(l.putBack) > 0 {
		tok := l.putBack[0]
		l.putBack = l.putBack[1:]
		return tok
	}

	// Skip spaces, tabs, and CR, which are always whitespace (CR bytes
	// are treated as whitespace per the source file format rules).
	for {
		ch := l.buf.At(l.pos)
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		break
	}

	beginPos, beginLine, beginCol := l.pos, l.line, l.column

	if l.pos >= l.buf.Len() {
		return token.Token{Kind: token.EndOfFile, Loc: loc(beginPos, beginPos, beginLine, beginCol)}
	}

	ch := l.buf.At(l.pos)

	if ch == '\n' {
		l.advance()
		// Look ahead through any interior spaces/tabs/CR for a second
		// newline; two-or-more newlines collapse into one paragraph
		// break regardless of how they're separated.
		scan := l.pos
		for scan < l.buf.Len() {
			c := l.buf.At(scan)
			if c == ' ' || c == '\t' || c == '\r' {
				scan++
				continue
			}
			break
		}
		if scan < l.buf.Len() && l.buf.At(scan) == '\n' {
			for l.pos <= scan {
				l.advance()
			}
			// Absorb any further blank lines into the same break.
			for {
				s := l.pos
				for s < l.buf.Len() && (l.buf.At(s) == ' ' || l.buf.At(s) == '\t' || l.buf.At(s) == '\r') {
					s++
				}
				if s >= l.buf.Len() || l.buf.At(s) != '\n' {
					break
				}
				for l.pos <= s {
					l.advance()
				}
			}
			return token.Token{Kind: token.EndOfParagraph, Loc: loc(beginPos, l.pos, beginLine, beginCol)}
		}
		if l.ignoreSingleNewlines {
			return l.Next()
		}
		return token.Token{Kind: token.NewLine, Loc: loc(beginPos, l.pos, beginLine, beginCol)}
	}

	if isLetter(ch) {
		start := l.pos
		for isLetter(l.buf.At(l.pos)) {
			l.advance()
		}
		return token.Token{
			Kind:  token.Identifier,
			Ident: l.buf.Span(start, l.pos),
			Loc:   loc(beginPos, l.pos, beginLine, beginCol),
		}
	}

	if isDigit(ch) {
		start := l.pos
		for isDigit(l.buf.At(l.pos)) {
			l.advance()
		}
		text := l.buf.Span(start, l.pos)
		var n int64
		for i := 0; i < len(text); i++ {
			n = n*10 + int64(text[i]-'0')
		}
		return token.Token{
			Kind: token.Number,
			Num:  n,
			Loc:  loc(beginPos, l.pos, beginLine, beginCol),
		}
	}

	kind := token.Unknown
	switch ch {
	case '.':
		kind = token.FullStop
	case '-':
		kind = token.Hyphen
	case ':':
		kind = token.Colon
	case '(':
		kind = token.OpenParen
	case ')':
		kind = token.CloseParen
	}
	l.advance()
	return token.Token{Kind: kind, Loc: loc(beginPos, l.pos, beginLine, beginCol)}
}

func loc(begin, end, line, col int) token.Location {
	return token.Location{Begin: begin, End: end, Line: line, Column: col}
}
