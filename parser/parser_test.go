package parser

import (
	"testing"

	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/source"
)

func parse(t *testing.T, text string) (*ir.Program, *diag.Sink) {
	t.Helper()
	buf := source.New("recipe.chef", []byte(text))
	sink := diag.New("recipe.chef", false, nil)
	prog := New(buf, sink).ParseProgram()
	return prog, sink
}

const helloWorldSource = `Hello World Souffle.

This prints hello world in a bowl.

Ingredients.
72 g haricot beans
101 eggs
108 l lard
111 cups oil
32 zucchinis
87 water
114 g red salmon
100 dijon mustard

Method.
Put haricot beans into the mixing bowl.
Put eggs into the mixing bowl.
Put lard into the mixing bowl.
Put oil into the mixing bowl.
Put zucchinis into the mixing bowl.
Liquefy contents of the mixing bowl.
Pour contents of the mixing bowl into the baking dish.

Serves 1.
`

func TestParseHelloWorldShapedRecipe(t *testing.T) {
	prog, sink := parse(t, helloWorldSource)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	r, ok := prog.Recipe("Hello World Souffle")
	if !ok {
		t.Fatalf("recipe not found; titles = %v", prog.RecipeTitles)
	}
	if r.ServesCount != 1 {
		t.Errorf("ServesCount = %d, want 1", r.ServesCount)
	}
	if len(r.Method) != 7 {
		t.Fatalf("len(Method) = %d, want 7: %+v", len(r.Method), r.Method)
	}
	if r.Method[5].Kind != ir.LiquefyBowl {
		t.Errorf("Method[5].Kind = %v, want LiquefyBowl", r.Method[5].Kind)
	}
	if r.Method[6].Kind != ir.Pour {
		t.Errorf("Method[6].Kind = %v, want Pour", r.Method[6].Kind)
	}
	if _, ok := r.Ingredient("haricot beans"); !ok {
		t.Errorf("expected a declared ingredient named %q", "haricot beans")
	}
	ham, _ := r.Ingredient("lard")
	if ham.Initial.Tag != ir.Liquid {
		t.Errorf("lard (measured in l) should be Liquid-tagged, got %v", ham.Initial.Tag)
	}
}

const fibonacciSource = `Fibonacci 10.

Ingredients.
1 counter
0 first number
1 second number

Method.
Take the counter from refrigerator.
Bake the counter.
Put first number into the mixing bowl.
Add second number to the mixing bowl.
Fold first number into the mixing bowl.
Until baked.
Serve with Output.
Refrigerate.
`

func TestParseVerbLoopOpenAndClose(t *testing.T) {
	prog, sink := parse(t, fibonacciSource)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	r, ok := prog.Recipe("Fibonacci 10")
	if !ok {
		t.Fatalf("recipe not found")
	}
	var begin, until *ir.MethodStep
	for i := range r.Method {
		switch r.Method[i].Kind {
		case ir.VerbBegin:
			begin = &r.Method[i]
		case ir.UntilVerbed:
			until = &r.Method[i]
		}
	}
	if begin == nil || until == nil {
		t.Fatalf("expected a VerbBegin/UntilVerbed pair in %+v", r.Method)
	}
	if begin.Operands[0].Verb != "Bake" {
		t.Errorf("VerbBegin verb = %q, want Bake", begin.Operands[0].Verb)
	}
	bIdx := indexOfStep(r.Method, begin)
	uIdx := indexOfStep(r.Method, until)
	if begin.JumpOffset != uIdx-bIdx {
		t.Errorf("VerbBegin.JumpOffset = %d, want %d", begin.JumpOffset, uIdx-bIdx)
	}
	if until.JumpOffset != -(uIdx - bIdx) {
		t.Errorf("UntilVerbed.JumpOffset = %d, want %d", until.JumpOffset, -(uIdx - bIdx))
	}
}

func indexOfStep(method []ir.MethodStep, target *ir.MethodStep) int {
	for i := range method {
		if &method[i] == target {
			return i
		}
	}
	return -1
}

func TestParseMismatchedLoopIsAnError(t *testing.T) {
	src := `Bad Recipe.

Ingredients.
1 flour

Method.
Sift the flour.
Until baked.
`
	_, sink := parse(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a mismatched-loop error")
	}
}

func TestParseUnresolvedIngredientReference(t *testing.T) {
	src := `Broken Recipe.

Ingredients.
1 flour

Method.
Put sugar into the mixing bowl.
`
	_, sink := parse(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected an unresolved-ingredient error")
	}
}

func TestParsePluralityWarning(t *testing.T) {
	src := `Warn Recipe.

Ingredients.
1 cups sugar

Method.
Put sugar into the mixing bowl.
`
	_, sink := parse(t, src)
	if sink.HasErrors() {
		t.Fatalf("plurality mismatch should warn, not error: %v", sink.Diagnostics())
	}
	if sink.WarningCount() == 0 {
		t.Errorf("expected a plurality mismatch warning for singular quantity with plural measure")
	}
}

func TestParseStrictPromotesPluralityWarningToError(t *testing.T) {
	buf := source.New("recipe.chef", []byte(`Warn Recipe.

Ingredients.
1 cups sugar

Method.
Put sugar into the mixing bowl.
`))
	sink := diag.New("recipe.chef", true, nil)
	New(buf, sink).ParseProgram()
	if !sink.HasErrors() {
		t.Errorf("strict mode should promote the plurality warning to an error")
	}
}

func TestParseOrdinalContainerReferences(t *testing.T) {
	src := `Ordinal Recipe.

Ingredients.
1 sugar
2 flour

Method.
Put sugar into the 1st mixing bowl.
Put flour into the 2nd mixing bowl.
Pour contents of the 2nd mixing bowl into the 1st baking dish.
`
	prog, sink := parse(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	r, _ := prog.Recipe("Ordinal Recipe")
	if r.Method[1].Operands[1].Index != 2 {
		t.Errorf("second Put's bowl index = %d, want 2", r.Method[1].Operands[1].Index)
	}
	pour := r.Method[2]
	if pour.Operands[0].Index != 2 || pour.Operands[1].Index != 1 {
		t.Errorf("Pour operands = %+v, want bowl 2 / dish 1", pour.Operands)
	}
}

func TestParseSetAsideOutsideLoopIsAnError(t *testing.T) {
	src := `Bad Recipe.

Ingredients.
1 flour

Method.
Set aside.
`
	_, sink := parse(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected an error for Set aside outside any loop")
	}
}

func TestParseScopeStackEmptyInvariantHolds(t *testing.T) {
	prog, sink := parse(t, fibonacciSource)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	r, _ := prog.Recipe("Fibonacci 10")
	depth := 0
	for _, s := range r.Method {
		if s.Kind == ir.VerbBegin {
			depth++
		}
		if s.Kind == ir.UntilVerbed {
			depth--
		}
	}
	if depth != 0 {
		t.Errorf("scope stack should be balanced at recipe end, got depth %d", depth)
	}
}

func TestParseCookingTimeAndOvenTemperatureAreDiscarded(t *testing.T) {
	src := `Cake.

Ingredients.
100 g sugar

Cooking time: 30 minutes.

Pre-heat oven to 180 degrees Celcius (gas mark 4).

Method.
Put sugar into the mixing bowl.
`
	prog, sink := parse(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	r, _ := prog.Recipe("Cake")
	if len(r.Method) != 1 {
		t.Fatalf("len(Method) = %d, want 1", len(r.Method))
	}
}

func TestParseEmptyProgramProducesNoRecipes(t *testing.T) {
	prog, sink := parse(t, "")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if len(prog.RecipeTitles) != 0 {
		t.Errorf("expected no recipes, got %v", prog.RecipeTitles)
	}
}

func TestParseMultipleRecipesEntryPointIsFirst(t *testing.T) {
	src := `Main.

Ingredients.
1 flour

Method.
Serve with Helper.
Refrigerate.

Helper.

Ingredients.
1 sugar

Method.
Put sugar into the mixing bowl.
`
	prog, sink := parse(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if prog.EntryTitle != "Main" {
		t.Errorf("EntryTitle = %q, want Main", prog.EntryTitle)
	}
	if _, ok := prog.Recipe("Helper"); !ok {
		t.Errorf("expected auxiliary recipe Helper to be present")
	}
}
