// Package token defines the lexical tokens produced by the Chef lexer
// and the SourceLocation records attached to every parser and runtime
// diagnostic.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EndOfFile Kind = iota
	NewLine
	EndOfParagraph
	Identifier
	Number
	FullStop
	Hyphen
	Colon
	OpenParen
	CloseParen
	Unknown
)

func (k Kind) String() string {
	switch k {
	case EndOfFile:
		return "EndOfFile"
	case NewLine:
		return "NewLine (\\n)"
	case EndOfParagraph:
		return "EndOfParagraph (\\n\\n)"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case FullStop:
		return "'.'"
	case Hyphen:
		return "'-'"
	case Colon:
		return "':'"
	case OpenParen:
		return "'('"
	case CloseParen:
		return "')'"
	default:
		return "Unknown"
	}
}

// Location is a half-open byte span [Begin, End) in a source.Buffer
// together with the 1-based line and column of Begin.
type Location struct {
	Begin  int
	End    int
	Line   int
	Column int
}

// String renders a location as "line:column", the prefix used in every
// diagnostic message (see diag.Sink).
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token is a single lexical unit: its Kind, the raw source span it came
// from, and its decoded payload (Ident for Identifier, Num for Number).
type Token struct {
	Kind  Kind
	Loc   Location
	Ident string
	Num   int64
}

// Is reports whether the token has the given Kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// IsNot is the negation of Is.
func (t Token) IsNot(k Kind) bool {
	return t.Kind != k
}

// IsIdent reports whether the token is an Identifier with the exact
// (case-sensitive) text s.
func (t Token) IsIdent(s string) bool {
	return t.Kind == Identifier && t.Ident == s
}

// IsAnyKind reports whether the token's Kind matches any of ks.
func (t Token) IsAnyKind(ks ...Kind) bool {
	for _, k := range ks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsAnyIdent reports whether the token is an Identifier matching any of
// the given case-sensitive strings.
func (t Token) IsAnyIdent(words ...string) bool {
	if t.Kind != Identifier {
		return false
	}
	for _, w := range words {
		if t.Ident == w {
			return true
		}
	}
	return false
}

// String renders a human-readable form of the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return t.Ident
	case Number:
		return fmt.Sprintf("%d", t.Num)
	default:
		return t.Kind.String()
	}
}
