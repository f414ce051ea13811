package parser

import (
	"strings"

	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/token"
)

// parseMethodStatement dispatches on the statement's leading identifier
// to one of the step-specific sub-grammars in spec §4.3, or — for any
// identifier outside the closed method-keyword vocabulary — treats it
// as a verb-loop opener.
func (p *Parser) parseMethodStatement() {
	tok := p.next()
	if tok.Kind != token.Identifier {
		p.sink.Error(tok.Loc, "expected a method statement, found %v", tok.Kind)
		p.skipStatement()
		return
	}

	switch tok.Ident {
	case "Take":
		p.parseTake(tok.Loc)
	case "Put":
		p.parseIngredientToBowlStep(ir.Put, tok.Loc, "into")
	case "Fold":
		p.parseIngredientToBowlStep(ir.Fold, tok.Loc, "into")
	case "Add":
		p.parseAdd(tok.Loc)
	case "Remove":
		p.parseIngredientToBowlStep(ir.Remove, tok.Loc, "from")
	case "Combine":
		p.parseIngredientToBowlStep(ir.Combine, tok.Loc, "into")
	case "Divide":
		p.parseIngredientToBowlStep(ir.Divide, tok.Loc, "into")
	case "Liquefy", "Liquify":
		p.parseLiquefy(tok.Loc)
	case "Stir":
		p.parseStir(tok.Loc)
	case "Mix":
		p.parseMix(tok.Loc)
	case "Clean":
		p.parseClean(tok.Loc)
	case "Pour":
		p.parsePour(tok.Loc)
	case "Set":
		p.parseSetAside(tok.Loc)
	case "Serve":
		p.parseServeStatement(tok.Loc)
	case "Refrigerate":
		p.parseRefrigerate(tok.Loc)
	case "Until":
		p.parseUntilVerbed(tok.Loc)
	default:
		p.parseVerbBegin(tok)
	}
}

func containsWord(words []string, w string) bool {
	for _, s := range words {
		if s == w {
			return true
		}
	}
	return false
}

// parseIngredientRef greedily accumulates identifier words as an
// ingredient name, stopping at the statement's FullStop or at any of
// stopWords (once at least one word has been accumulated). Ingredient
// names are free-form and may contain spaces (spec §4.2), so the parser
// disambiguates against the surrounding keyword grammar this way rather
// than through a reserved-word list. A letter or digit run written flush
// against the previous one ("l1") is joined to it as part of one word.
func (p *Parser) parseIngredientRef(stopWords ...string) (ir.MethodOperand, bool) {
	loc := p.peek().Loc
	var parts []string
	prevEnd := -1
	for {
		tok := p.peek()
		flush := len(parts) > 0 && tok.Loc.Begin == prevEnd
		if tok.Kind != token.Identifier && !(flush && tok.Kind == token.Number) {
			break
		}
		if !flush && len(parts) > 0 && containsWord(stopWords, tok.Ident) {
			break
		}
		p.next()
		text := p.buf.Span(tok.Loc.Begin, tok.Loc.End)
		if flush {
			parts[len(parts)-1] += text
		} else {
			parts = append(parts, text)
		}
		prevEnd = tok.Loc.End
	}
	if len(parts) == 0 {
		tok := p.peek()
		p.sink.Error(tok.Loc, "expected an ingredient name, found %v", tok)
		return ir.MethodOperand{}, false
	}
	name := strings.Join(parts, " ")
	ing, ok := p.recipe.Ingredient(name)
	if !ok {
		p.sink.Error(loc, "unresolved ingredient reference %q", name)
	}
	return ir.MethodOperand{
		Kind:           ir.OperandIngredientRef,
		IngredientName: name,
		IngredientLoc:  loc,
		Ingredient:     ing,
	}, true
}

// parseContainerRef reads the optional "the [ordinal] <kindWords>"
// container reference, e.g. "the 2nd mixing bowl" or "the baking dish".
// An absent ordinal defaults to index 1 (spec §4.2).
func (p *Parser) parseContainerRef(kindWords []string) (ir.MethodOperand, bool) {
	p.consumeOptionalIdent("the")
	idx := int64(1)
	if numTok := p.peek(); numTok.Kind == token.Number {
		p.next()
		idx = numTok.Num
		suffixTok := p.next()
		want := ordinalSuffix(idx)
		if suffixTok.Kind != token.Identifier || suffixTok.Ident != want {
			p.sink.Warn(suffixTok.Loc, "ordinal suffix %q does not match expected %q for %d", suffixTok, want, idx)
		}
	}
	if !p.consumeIdentSeq(kindWords, "container reference") {
		return ir.MethodOperand{}, false
	}
	kind := ir.OperandMixingBowlRef
	if kindWords[0] == "baking" {
		kind = ir.OperandBakingDishRef
	}
	return ir.MethodOperand{Kind: kind, Index: int(idx)}, true
}

func (p *Parser) appendStep(kind ir.StepKind, loc token.Location, operands ...ir.MethodOperand) {
	p.recipe.Method = append(p.recipe.Method, ir.MethodStep{Kind: kind, Operands: operands, Loc: loc})
}

// skipStatement discards tokens up to (and including) the next
// FullStop, or up to (but not including) the next EndOfParagraph/EOF,
// so the parser can keep surfacing diagnostics for later statements.
func (p *Parser) skipStatement() {
	for {
		tok := p.next()
		switch tok.Kind {
		case token.FullStop:
			return
		case token.EndOfParagraph, token.EndOfFile:
			p.pushBack(tok)
			return
		}
	}
}

// parseIngredientToBowlStep handles the common shape shared by Put,
// Fold, Combine, Divide and Remove: `ingredient <preposition> [ordinal]
// "mixing bowl"`.
func (p *Parser) parseIngredientToBowlStep(kind ir.StepKind, loc token.Location, preposition string) {
	p.consumeOptionalIdent("the")
	ingredientOperand, ok := p.parseIngredientRef(preposition)
	if !ok {
		p.skipStatement()
		return
	}
	if !p.expectIdent(preposition, "before the mixing bowl reference") {
		p.skipStatement()
		return
	}
	containerOperand, ok := p.parseContainerRef([]string{"mixing", "bowl"})
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(kind, loc, ingredientOperand, containerOperand)
}

func (p *Parser) parseTake(loc token.Location) {
	p.consumeOptionalIdent("the")
	ingredientOperand, ok := p.parseIngredientRef("from")
	if !ok {
		p.skipStatement()
		return
	}
	if !p.expectIdent("from", "before \"refrigerator\"") {
		p.skipStatement()
		return
	}
	p.expectIdent("refrigerator", "to end \"Take ... from refrigerator\"")
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Take, loc, ingredientOperand)
}

func (p *Parser) parseAdd(loc token.Location) {
	if p.consumeOptionalIdent("dry") {
		p.expectIdent("ingredients", "after \"Add dry\"")
		containerOperand := ir.MethodOperand{Kind: ir.OperandMixingBowlRef, Index: 1}
		if p.consumeOptionalIdent("to") {
			var ok bool
			containerOperand, ok = p.parseContainerRef([]string{"mixing", "bowl"})
			if !ok {
				p.skipStatement()
				return
			}
		}
		if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
			p.skipStatement()
			return
		}
		p.appendStep(ir.AddDry, loc, containerOperand)
		return
	}
	p.parseIngredientToBowlStep(ir.Add, loc, "to")
}

func (p *Parser) parseLiquefy(loc token.Location) {
	if p.consumeOptionalIdent("contents") {
		p.expectIdent("of", "after \"Liquefy contents\"")
		containerOperand, ok := p.parseContainerRef([]string{"mixing", "bowl"})
		if !ok {
			p.skipStatement()
			return
		}
		if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
			p.skipStatement()
			return
		}
		p.appendStep(ir.LiquefyBowl, loc, containerOperand)
		return
	}
	p.consumeOptionalIdent("the")
	ingredientOperand, ok := p.parseIngredientRef()
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.LiquefyIngredient, loc, ingredientOperand)
}

// parseStir disambiguates StirBowl ("Stir [the [ordinal] mixing bowl]
// for n minutes.") from StirIngredient ("Stir the ingredient into
// [ordinal] mixing bowl.") by looking one identifier past an optional
// leading "the".
func (p *Parser) parseStir(loc token.Location) {
	toks := p.peekN(2)
	effective := toks[0]
	if toks[0].IsIdent("the") {
		effective = toks[1]
	}

	if effective.Kind == token.Number || effective.IsIdent("mixing") || effective.IsIdent("for") {
		containerOperand := ir.MethodOperand{Kind: ir.OperandMixingBowlRef, Index: 1}
		if !effective.IsIdent("for") {
			var ok bool
			containerOperand, ok = p.parseContainerRef([]string{"mixing", "bowl"})
			if !ok {
				p.skipStatement()
				return
			}
		} else {
			p.consumeOptionalIdent("the")
		}
		if !p.expectIdent("for", "before the stir duration") {
			p.skipStatement()
			return
		}
		nTok, ok := p.expectKind(token.Number, "stir duration")
		if !ok {
			p.skipStatement()
			return
		}
		if !p.consumeOptionalIdent("minutes") {
			p.expectIdent("minute", "after the stir duration")
		}
		if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
			p.skipStatement()
			return
		}
		p.appendStep(ir.StirBowl, loc, containerOperand, ir.MethodOperand{Kind: ir.OperandNumber, Number: nTok.Num})
		return
	}

	p.consumeOptionalIdent("the")
	ingredientOperand, ok := p.parseIngredientRef("into")
	if !ok {
		p.skipStatement()
		return
	}
	if !p.expectIdent("into", "before the mixing bowl reference") {
		p.skipStatement()
		return
	}
	containerOperand, ok := p.parseContainerRef([]string{"mixing", "bowl"})
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.StirIngredient, loc, ingredientOperand, containerOperand)
}

func (p *Parser) parseMix(loc token.Location) {
	containerOperand := ir.MethodOperand{Kind: ir.OperandMixingBowlRef, Index: 1}
	if !p.peek().IsIdent("well") {
		var ok bool
		containerOperand, ok = p.parseContainerRef([]string{"mixing", "bowl"})
		if !ok {
			p.skipStatement()
			return
		}
	}
	if !p.expectIdent("well", "to end \"Mix ... well\"") {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Mix, loc, containerOperand)
}

func (p *Parser) parseClean(loc token.Location) {
	containerOperand, ok := p.parseContainerRef([]string{"mixing", "bowl"})
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Clean, loc, containerOperand)
}

func (p *Parser) parsePour(loc token.Location) {
	if !p.expectIdent("contents", "after \"Pour\"") {
		p.skipStatement()
		return
	}
	p.expectIdent("of", "after \"Pour contents\"")
	bowlOperand, ok := p.parseContainerRef([]string{"mixing", "bowl"})
	if !ok {
		p.skipStatement()
		return
	}
	if !p.expectIdent("into", "before the baking dish reference") {
		p.skipStatement()
		return
	}
	p.expectIdent("the", "before the baking dish reference")
	dishOperand, ok := p.parseContainerRef([]string{"baking", "dish"})
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Pour, loc, bowlOperand, dishOperand)
}

func (p *Parser) parseSetAside(loc token.Location) {
	if !p.expectIdent("aside", "after \"Set\"") {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end \"Set aside\""); !ok {
		p.skipStatement()
		return
	}
	idx := len(p.recipe.Method)
	p.appendStep(ir.SetAside, loc)
	if !p.resolve.RecordSetAside(idx) {
		p.sink.Error(loc, "\"Set aside\" used outside any open loop")
	}
}

func (p *Parser) parseServeStatement(loc token.Location) {
	if !p.expectIdent("with", "after \"Serve\"") {
		p.skipStatement()
		return
	}
	text, titleLoc := p.lex.ReadRawUntil('.')
	title := strings.TrimSpace(text)
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Serve, loc, ir.MethodOperand{Kind: ir.OperandRecipeRef, RecipeTitle: title, RecipeLoc: titleLoc})
}

func (p *Parser) parseRefrigerate(loc token.Location) {
	n := int64(0)
	if p.consumeOptionalIdent("for") {
		nTok, ok := p.expectKind(token.Number, "refrigeration duration")
		if ok {
			n = nTok.Num
		}
		p.expectIdent("hours", "after the refrigeration duration")
	}
	if _, ok := p.expectKind(token.FullStop, "to end the statement"); !ok {
		p.skipStatement()
		return
	}
	p.appendStep(ir.Refrigerate, loc, ir.MethodOperand{Kind: ir.OperandNumber, Number: n})
}

// parseVerbBegin handles any leading identifier outside the closed
// method-keyword vocabulary: `verb ingredient "."`, opening a loop.
func (p *Parser) parseVerbBegin(tok token.Token) {
	verb := tok.Ident
	if !isKnownVerb(verb) {
		p.sink.Error(tok.Loc, "%q is not a method keyword and does not match any verb in the open verb table", verb)
		p.skipStatement()
		return
	}
	p.consumeOptionalIdent("the")
	ingredientOperand, ok := p.parseIngredientRef()
	if !ok {
		p.skipStatement()
		return
	}
	if _, ok := p.expectKind(token.FullStop, "to end the loop header"); !ok {
		p.skipStatement()
		return
	}
	idx := len(p.recipe.Method)
	p.appendStep(ir.VerbBegin, tok.Loc, ir.MethodOperand{Kind: ir.OperandVerbWord, Verb: verb}, ingredientOperand)
	p.resolve.OpenLoop(verb, idx, tok.Loc)
}

// parseUntilVerbed handles `"Until" pastParticiple [ "the" ingredient ]
// "."`, closing the innermost open loop.
func (p *Parser) parseUntilVerbed(loc token.Location) {
	partTok, ok := p.expectKind(token.Identifier, "a past participle after \"Until\"")
	if !ok {
		p.skipStatement()
		return
	}
	participle := partTok.Ident

	operands := []ir.MethodOperand{{Kind: ir.OperandVerbWord, Verb: participle}}
	if p.consumeOptionalIdent("the") {
		ingredientOperand, ok := p.parseIngredientRef()
		if ok {
			operands = append(operands, ingredientOperand)
		}
	}
	if _, ok := p.expectKind(token.FullStop, "to end the loop footer"); !ok {
		p.skipStatement()
		return
	}

	idx := len(p.recipe.Method)
	p.appendStep(ir.UntilVerbed, loc, operands...)
	if err := p.resolve.CloseLoop(p.recipe.Method, idx, participle, participleMatches); err != nil {
		p.sink.Error(loc, "%s", err)
	}
}
