// Package parser is the central component of the Chef toolchain: it
// drives the lexer, builds the ir.Program, and reports diagnostics
// through a diag.Sink, recovering at paragraph boundaries where
// possible so a single run can surface more than one diagnostic.
package parser

import (
	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/lexer"
	"github.com/chef-lang/chef/scope"
	"github.com/chef-lang/chef/source"
	"github.com/chef-lang/chef/token"
)

// Parser holds all per-parse mutable state; a Parser is re-entrant over
// independent inputs (spec §5), so callers create one per source.Buffer.
type Parser struct {
	buf  *source.Buffer
	lex  *lexer.Lexer
	sink *diag.Sink

	program *ir.Program
	recipe  *ir.Recipe
	resolve *scope.Resolver
}

// New creates a Parser over buf reporting through sink.
func New(buf *source.Buffer, sink *diag.Sink) *Parser {
	return &Parser{
		buf:     buf,
		lex:     lexer.New(buf),
		sink:    sink,
		program: ir.NewProgram(),
	}
}

// ParseProgram runs the grammar of spec §4.2 top to bottom:
//
//	program := recipe ( EOP recipe )* EOF
//
// It returns the compiled Program even if some recipes failed to parse
// (the diag.Sink records why); callers should check sink.HasErrors()
// before treating the Program as usable for execution.
func (p *Parser) ParseProgram() *ir.Program {
	for {
		if p.atEOF() {
			break
		}
		// parseRecipe always leaves the lexer at the start of the next
		// paragraph or at EOF, on every return path (success or error),
		// so no additional recovery is needed between iterations.
		p.parseRecipe()
	}

	p.sink.DebugBytes("driver", "parsed source into program: ", p.buf.Len())
	return p.program
}

func (p *Parser) atEOF() bool {
	tok := p.next()
	defer p.pushBack(tok)
	return tok.Kind == token.EndOfFile
}

// recoverToParagraphBoundary discards tokens until it has consumed an
// EndOfParagraph or reached EOF, so that a later diagnostic in one
// recipe does not cascade into the next.
func (p *Parser) recoverToParagraphBoundary() {
	for {
		tok := p.next()
		if tok.Kind == token.EndOfParagraph || tok.Kind == token.EndOfFile {
			if tok.Kind == token.EndOfFile {
				p.pushBack(tok)
			}
			return
		}
	}
}

func (p *Parser) next() token.Token {
	return p.lex.Next()
}

func (p *Parser) pushBack(tok token.Token) {
	p.lex.PutBack(tok)
}

func (p *Parser) peek() token.Token {
	tok := p.next()
	p.pushBack(tok)
	return tok
}

// expectKind consumes the next token if it has kind k, reporting an
// error otherwise.
func (p *Parser) expectKind(k token.Kind, context string) (token.Token, bool) {
	tok := p.next()
	if tok.Kind != k {
		p.sink.Error(tok.Loc, "expected %v %s, found %v", k, context, tok.Kind)
		p.pushBack(tok)
		return tok, false
	}
	return tok, true
}

// expectIdent consumes the next token if it is the exact identifier
// word, reporting an error otherwise.
func (p *Parser) expectIdent(word, context string) bool {
	tok := p.next()
	if !tok.IsIdent(word) {
		p.sink.Error(tok.Loc, "expected %q %s, found %v", word, context, tok)
		p.pushBack(tok)
		return false
	}
	return true
}

// consumeIdentSeq consumes a run of identifiers that must match words in
// order exactly (case-sensitive), e.g. []string{"mixing", "bowl"}.
func (p *Parser) consumeIdentSeq(words []string, context string) bool {
	for _, w := range words {
		if !p.expectIdent(w, context) {
			return false
		}
	}
	return true
}

// consumeOptionalIdent consumes the next token if it is the identifier
// word; otherwise leaves the stream untouched and returns false.
func (p *Parser) consumeOptionalIdent(word string) bool {
	tok := p.next()
	if tok.IsIdent(word) {
		return true
	}
	p.pushBack(tok)
	return false
}

// consumeOptionalKind consumes the next token if it has kind k;
// otherwise leaves the stream untouched and returns false.
func (p *Parser) consumeOptionalKind(k token.Kind) bool {
	tok := p.next()
	if tok.Kind == k {
		return true
	}
	p.pushBack(tok)
	return false
}

// peekN reads n tokens ahead without consuming them, for the rare
// statement shapes (Stir) that need more than one token of lookahead to
// disambiguate.
func (p *Parser) peekN(n int) []token.Token {
	toks := make([]token.Token, 0, n)
	for i := 0; i < n; i++ {
		toks = append(toks, p.next())
	}
	for i := len(toks) - 1; i >= 0; i-- {
		p.pushBack(toks[i])
	}
	return toks
}
