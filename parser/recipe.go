package parser

import (
	"strings"

	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/scope"
	"github.com/chef-lang/chef/token"
)

// parseRecipe implements spec §4.2's `recipe` production. It always
// leaves the lexer at the start of the next paragraph (or at EOF), even
// when it bails out early on a missing mandatory section, so
// ParseProgram can keep iterating without any recovery of its own.
func (p *Parser) parseRecipe() {
	title, titleLoc := p.parseTitle()
	if title == "" {
		p.sink.Error(titleLoc, "recipe title is empty")
		return
	}
	p.recipe = ir.NewRecipe(title)

	if !p.lex.HasLiteralAhead("Ingredients.") {
		// At most one comment paragraph is permitted before Ingredients.
		p.recoverToParagraphBoundary()
	}
	if !p.lex.HasLiteralAhead("Ingredients.") {
		p.sink.Error(titleLoc, "recipe %q is missing its Ingredients. section", title)
		p.recoverToParagraphBoundary()
		return
	}

	if !p.parseIngredientsSection() {
		return
	}

	if p.lex.HasLiteralAhead("Cooking time") {
		p.parseCookingTime()
	}
	if p.lex.HasLiteralAhead("Pre-heat oven to") {
		p.parseOvenTemperature()
	}

	if !p.lex.HasLiteralAhead("Method.") {
		p.sink.Error(titleLoc, "recipe %q is missing its Method. section", title)
		p.recoverToParagraphBoundary()
		return
	}
	if !p.parseMethodSection() {
		return
	}

	if p.lex.HasLiteralAhead("Serves") {
		p.parseServes()
	}

	p.program.AddRecipe(p.recipe)
}

// parseTitle reads the title production: all bytes from the start of the
// paragraph up to the first FullStop.
func (p *Parser) parseTitle() (string, token.Location) {
	text, loc := p.lex.ReadRawUntil('.')
	p.expectKind(token.FullStop, "to end the recipe title")
	p.recoverToParagraphBoundary()
	return strings.TrimSpace(text), loc
}

func (p *Parser) parseIngredientsSection() bool {
	if !p.expectIdent("Ingredients", "to start the ingredients list") {
		p.recoverToParagraphBoundary()
		return false
	}
	if _, ok := p.expectKind(token.FullStop, "after \"Ingredients\""); !ok {
		p.recoverToParagraphBoundary()
		return false
	}
	p.expectKind(token.NewLine, "after the \"Ingredients.\" header")

	for {
		tok := p.peek()
		if tok.Kind == token.EndOfParagraph || tok.Kind == token.EndOfFile {
			break
		}
		p.parseIngredientLine()
	}
	if tok := p.peek(); tok.Kind == token.EndOfParagraph {
		p.next()
	}
	return true
}

func (p *Parser) parseIngredientLine() {
	lineLoc := p.peek().Loc

	var num int64
	hasNum := false
	if tok := p.next(); tok.Kind == token.Number {
		num, hasNum = tok.Num, true
	} else {
		p.pushBack(tok)
	}

	var measureType, measure string
	haveMeasure := false
	var nameFirstWord string

	switch tok := p.next(); {
	case tok.Kind == token.Identifier && measureTypes[tok.Ident]:
		measureType = tok.Ident
		mtok := p.next()
		if mtok.Kind == token.Identifier {
			measure = mtok.Ident
			haveMeasure = true
			if classifyMeasure(measure) == measureWet {
				p.sink.Error(mtok.Loc, "%q requires a dry or unspecified measure, got wet measure %q", measureType, measure)
			}
		} else {
			p.sink.Error(mtok.Loc, "expected a measure after %q", measureType)
			p.pushBack(mtok)
		}
	case tok.Kind == token.Identifier && classifyMeasure(tok.Ident) != measureInvalid:
		measure = tok.Ident
		haveMeasure = true
	case tok.Kind == token.Identifier:
		nameFirstWord = tok.Ident
	default:
		p.pushBack(tok)
	}

	if haveMeasure {
		n := int64(1)
		if hasNum {
			n = num
		}
		singularUse := n == 1
		if singularUse && !measureSingular[measure] {
			p.sink.Warn(lineLoc, "measure %q should be singular for a quantity of 1", measure)
		}
		if !singularUse && !measurePlural[measure] {
			p.sink.Warn(lineLoc, "measure %q should be plural for a quantity of %d", measure, n)
		}
	}

	rest, _ := p.lex.ReadRawUntil('\n')
	name := strings.TrimSpace(nameFirstWord + rest)

	if nl := p.next(); nl.Kind != token.NewLine {
		p.pushBack(nl)
	}

	tag := ir.Dry
	if haveMeasure && classifyMeasure(measure) == measureWet {
		tag = ir.Liquid
	}
	p.recipe.AddIngredient(&ir.Ingredient{
		Name:    name,
		DefLoc:  lineLoc,
		Initial: ir.Value{Num: num, Tag: tag},
		HasInit: hasNum,
		Runtime: ir.Value{Num: num, Tag: tag},
	})
}

func (p *Parser) parseCookingTime() {
	p.expectIdent("Cooking", "cooking time header")
	p.expectIdent("time", "cooking time header")
	p.expectKind(token.Colon, "after \"Cooking time\"")
	nTok, ok := p.expectKind(token.Number, "cooking time value")
	if ok {
		uTok := p.next()
		if uTok.Kind == token.Identifier && isValidTimeUnit(uTok.Ident) {
			wantSingular := nTok.Num == 1
			if wantSingular != timeUnitIsSingular(uTok.Ident) {
				p.sink.Warn(uTok.Loc, "cooking time unit %q does not match the plurality of %d", uTok.Ident, nTok.Num)
			}
		} else {
			p.sink.Error(uTok.Loc, "expected an hour/minute unit, found %v", uTok)
			p.pushBack(uTok)
		}
	}
	p.expectKind(token.FullStop, "to end the cooking time header")
	p.recoverToParagraphBoundary()
}

func (p *Parser) parseOvenTemperature() {
	p.expectIdent("Pre", "oven temperature header")
	p.expectKind(token.Hyphen, "oven temperature header")
	p.expectIdent("heat", "oven temperature header")
	p.expectIdent("oven", "oven temperature header")
	p.expectIdent("to", "oven temperature header")
	p.expectKind(token.Number, "oven temperature degrees")
	p.expectIdent("degrees", "oven temperature header")
	p.expectIdent("Celcius", "oven temperature header")
	if p.consumeOptionalKind(token.OpenParen) {
		p.expectIdent("gas", "gas mark")
		p.expectIdent("mark", "gas mark")
		p.expectKind(token.Number, "gas mark value")
		p.expectKind(token.CloseParen, "to close the gas mark parenthetical")
	}
	p.expectKind(token.FullStop, "to end the oven temperature header")
	p.recoverToParagraphBoundary()
}

func (p *Parser) parseServes() {
	p.expectIdent("Serves", "serves line")
	nTok, ok := p.expectKind(token.Number, "serves count")
	if ok {
		p.recipe.ServesCount = int(nTok.Num)
	}
	p.expectKind(token.FullStop, "to end the Serves line")
	p.recoverToParagraphBoundary()
}

func (p *Parser) parseMethodSection() bool {
	p.expectIdent("Method", "to start the method section")
	if _, ok := p.expectKind(token.FullStop, "after \"Method\""); !ok {
		p.recoverToParagraphBoundary()
		return false
	}
	p.expectKind(token.NewLine, "after the \"Method.\" header")

	p.lex.SetIgnoreSingleNewlines(true)
	p.resolve = scope.New()

	endLoc := p.peek().Loc
	for {
		tok := p.peek()
		if tok.Kind == token.EndOfParagraph || tok.Kind == token.EndOfFile {
			endLoc = tok.Loc
			break
		}
		p.parseMethodStatement()
	}

	if p.resolve.Depth() != 0 {
		verb, _ := p.resolve.InnermostVerb()
		p.sink.Error(endLoc, "loop opened by verb %q is never closed", verb)
	}

	p.lex.SetIgnoreSingleNewlines(false)
	if tok := p.peek(); tok.Kind == token.EndOfParagraph {
		p.next()
	}
	return true
}
