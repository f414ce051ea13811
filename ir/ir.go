// Package ir is the compiled program representation the parser builds
// and the interpreter walks: programs, recipes, ingredients, and method
// steps with typed operands.
package ir

import "github.com/chef-lang/chef/token"

// ValueTag marks whether a numeric datum should be serialised as a
// decimal integer (Dry) or as a Unicode code point (Liquid).
type ValueTag int

const (
	Dry ValueTag = iota
	Liquid
)

func (t ValueTag) String() string {
	if t == Liquid {
		return "liquid"
	}
	return "dry"
}

// Value is a tagged runtime datum: an integer together with its Dry/
// Liquid interpretation.
type Value struct {
	Num int64
	Tag ValueTag
}

// Ingredient is a named integer variable, its definition site, its
// initial value/tag pair, and its mutable runtime value/tag pair.
type Ingredient struct {
	Name    string
	DefLoc  token.Location
	Initial Value
	HasInit bool // whether an initial numeric value was given in the source

	Runtime Value
}

// ResetToInitial restores the runtime value/tag to the ingredient's
// initial snapshot, as happens on entry to an auxiliary recipe.
func (ing *Ingredient) ResetToInitial() {
	ing.Runtime = ing.Initial
}

// OperandKind tags the variant a MethodOperand holds.
type OperandKind int

const (
	OperandIngredientRef OperandKind = iota
	OperandMixingBowlRef
	OperandBakingDishRef
	OperandNumber
	OperandRecipeRef
	OperandVerbWord
)

// MethodOperand is a tagged union over the operand shapes a MethodStep
// can carry. Exactly the fields relevant to Kind are meaningful.
type MethodOperand struct {
	Kind OperandKind

	// OperandIngredientRef
	IngredientName string
	IngredientLoc  token.Location
	// resolved at parse time; nil if the reference never resolved
	// (a diagnostic is emitted and a placeholder operand installed so
	// parsing can continue).
	Ingredient *Ingredient

	// OperandMixingBowlRef / OperandBakingDishRef (both 1-based)
	Index int

	// OperandNumber
	Number int64

	// OperandRecipeRef
	RecipeTitle string
	RecipeLoc   token.Location

	// OperandVerbWord
	Verb string
}

// StepKind enumerates the method statement taxonomy of spec §4.3.
type StepKind int

const (
	Take StepKind = iota
	Put
	Fold
	Add
	Remove
	Combine
	Divide
	AddDry
	LiquefyBowl
	LiquefyIngredient
	StirBowl
	StirIngredient
	Mix
	Clean
	Pour
	VerbBegin
	UntilVerbed
	SetAside
	Serve
	Refrigerate
)

func (k StepKind) String() string {
	switch k {
	case Take:
		return "Take"
	case Put:
		return "Put"
	case Fold:
		return "Fold"
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	case Combine:
		return "Combine"
	case Divide:
		return "Divide"
	case AddDry:
		return "AddDry"
	case LiquefyBowl:
		return "LiquefyBowl"
	case LiquefyIngredient:
		return "LiquefyIngredient"
	case StirBowl:
		return "StirBowl"
	case StirIngredient:
		return "StirIngredient"
	case Mix:
		return "Mix"
	case Clean:
		return "Clean"
	case Pour:
		return "Pour"
	case VerbBegin:
		return "VerbBegin"
	case UntilVerbed:
		return "UntilVerbed"
	case SetAside:
		return "SetAside"
	case Serve:
		return "Serve"
	case Refrigerate:
		return "Refrigerate"
	default:
		return "Invalid"
	}
}

// MethodStep is one statement of a recipe's method list: its kind, its
// ordered operands, and its source location. VerbBegin, UntilVerbed and
// SetAside additionally carry a JumpOffset patched in by the scope
// resolver (see package scope).
type MethodStep struct {
	Kind     StepKind
	Operands []MethodOperand
	Loc      token.Location

	// JumpOffset is meaningful only for VerbBegin, UntilVerbed and
	// SetAside; see scope.Resolver for the sign conventions.
	JumpOffset int
}

// Recipe is a single named unit of a Chef program: its title, its
// serves count (0 meaning no Serves line), its ingredient table in
// declaration order, and its compiled method list.
type Recipe struct {
	Title       string
	ServesCount int

	// IngredientNames preserves declaration order; Ingredients is keyed
	// by name. A later definition of the same name silently replaces
	// the earlier one and keeps the earlier position in
	// IngredientNames, matching spec §3's "later definition silently
	// replaces" invariant.
	IngredientNames []string
	Ingredients     map[string]*Ingredient

	Method []MethodStep
}

// AddIngredient inserts or replaces an ingredient by name, preserving
// first-seen declaration order.
func (r *Recipe) AddIngredient(ing *Ingredient) {
	if _, exists := r.Ingredients[ing.Name]; !exists {
		r.IngredientNames = append(r.IngredientNames, ing.Name)
	}
	r.Ingredients[ing.Name] = ing
}

// Ingredient looks up an ingredient by name.
func (r *Recipe) Ingredient(name string) (*Ingredient, bool) {
	ing, ok := r.Ingredients[name]
	return ing, ok
}

// NewRecipe creates an empty Recipe with the given title.
func NewRecipe(title string) *Recipe {
	return &Recipe{
		Title:       title,
		Ingredients: make(map[string]*Ingredient),
	}
}

// Program is an insertion-ordered collection of recipes plus the title
// of the entry-point recipe (the first one declared in source order).
type Program struct {
	RecipeTitles []string
	Recipes      map[string]*Recipe
	EntryTitle   string
}

// NewProgram creates an empty Program.
func NewProgram() *Program {
	return &Program{Recipes: make(map[string]*Recipe)}
}

// AddRecipe appends a recipe, setting it as the entry point if it is the
// first recipe added.
func (p *Program) AddRecipe(r *Recipe) {
	if _, exists := p.Recipes[r.Title]; !exists {
		p.RecipeTitles = append(p.RecipeTitles, r.Title)
	}
	if p.EntryTitle == "" {
		p.EntryTitle = r.Title
	}
	p.Recipes[r.Title] = r
}

// Recipe looks up a recipe by title.
func (p *Program) Recipe(title string) (*Recipe, bool) {
	r, ok := p.Recipes[title]
	return r, ok
}

// Entry returns the entry-point recipe.
func (p *Program) Entry() (*Recipe, bool) {
	return p.Recipe(p.EntryTitle)
}
