package interp

import (
	"fmt"

	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/token"
)

// ingredient resolves an ingredient operand to its live *ir.Ingredient,
// failing if the parser ever left a placeholder behind (an unresolved
// reference that should already have aborted compilation via
// diag.Sink.HasErrors, but the interpreter does not trust that callers
// checked).
func (in *Interp) ingredient(op ir.MethodOperand, loc token.Location) (*ir.Ingredient, error) {
	if op.Ingredient == nil {
		return nil, in.fail(loc, "unresolved ingredient %q used at runtime", op.IngredientName)
	}
	return op.Ingredient, nil
}

// runRecipe runs r to completion (or its first Refrigerate), starting
// from a deep copy of callerBowls/callerDishes, per spec §4.5's
// sub-recipe calling convention. topLevel gates whether a Refrigerate
// with n > 0 may override the served count in the return value.
func (in *Interp) runRecipe(prog *ir.Program, r *ir.Recipe, callerBowls, callerDishes [][]ir.Value, topLevel bool) ([][]ir.Value, int, error) {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > maxRecipeDepth {
		loc := token.Location{}
		if len(r.Method) > 0 {
			loc = r.Method[0].Loc
		}
		return nil, 0, in.fail(loc, "stack overflow: recipe recursion exceeded %d levels", maxRecipeDepth)
	}

	for _, name := range r.IngredientNames {
		r.Ingredients[name].ResetToInitial()
	}

	bowls := deepCopyStacks(callerBowls)
	dishes := deepCopyStacks(callerDishes)

	servesOverride := 0
	pc := 0
	for pc < len(r.Method) {
		step := &r.Method[pc]
		next, halted, n, err := in.execStep(prog, r, step, pc, &bowls, &dishes)
		if err != nil {
			return nil, 0, err
		}
		if halted {
			if topLevel && n > 0 {
				servesOverride = int(n)
			}
			break
		}
		pc = next
	}
	return dishes, servesOverride, nil
}

// execStep runs one method step of recipe r and reports where execution
// continues. halted is true only for Refrigerate; n carries its
// optional hour count.
func (in *Interp) execStep(prog *ir.Program, r *ir.Recipe, step *ir.MethodStep, pc int, bowlsPtr, dishesPtr *[][]ir.Value) (next int, halted bool, n int64, err error) {
	switch step.Kind {
	case ir.Take:
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		var v int64
		if _, scanErr := fmt.Fscan(in.stdin, &v); scanErr != nil {
			return 0, false, 0, in.fail(step.Loc, "failed to read an integer from standard input: %s", scanErr)
		}
		ing.Runtime = ir.Value{Num: v, Tag: ir.Dry}

	case ir.Put:
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		idx := step.Operands[1].Index
		bowls := ensure(*bowlsPtr, idx)
		bowls[idx-1] = append(bowls[idx-1], ing.Runtime)
		*bowlsPtr = bowls

	case ir.Fold:
		idx := step.Operands[1].Index
		bowls := ensure(*bowlsPtr, idx)
		b := bowls[idx-1]
		if len(b) == 0 {
			return 0, false, 0, in.fail(step.Loc, "stack underflow: cannot Fold from an empty mixing bowl")
		}
		top := b[len(b)-1]
		bowls[idx-1] = b[:len(b)-1]
		*bowlsPtr = bowls
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		ing.Runtime = top

	case ir.Add, ir.Remove, ir.Combine, ir.Divide:
		idx := step.Operands[1].Index
		bowls := ensure(*bowlsPtr, idx)
		b := bowls[idx-1]
		if len(b) == 0 {
			return 0, false, 0, in.fail(step.Loc, "stack underflow: %s needs a non-empty mixing bowl", step.Kind)
		}
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		top := &b[len(b)-1]
		switch step.Kind {
		case ir.Add:
			top.Num += ing.Runtime.Num
		case ir.Remove:
			top.Num -= ing.Runtime.Num
		case ir.Combine:
			top.Num *= ing.Runtime.Num
		case ir.Divide:
			if ing.Runtime.Num == 0 {
				return 0, false, 0, in.fail(step.Loc, "division by zero")
			}
			top.Num /= ing.Runtime.Num
		}
		bowls[idx-1] = b
		*bowlsPtr = bowls

	case ir.AddDry:
		idx := step.Operands[0].Index
		var sum int64
		for _, name := range r.IngredientNames {
			ing := r.Ingredients[name]
			if ing.Runtime.Tag == ir.Dry {
				sum += ing.Runtime.Num
			}
		}
		bowls := ensure(*bowlsPtr, idx)
		bowls[idx-1] = append(bowls[idx-1], ir.Value{Num: sum, Tag: ir.Dry})
		*bowlsPtr = bowls

	case ir.LiquefyIngredient:
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		ing.Runtime.Tag = ir.Liquid

	case ir.LiquefyBowl:
		idx := step.Operands[0].Index
		bowls := ensure(*bowlsPtr, idx)
		for i := range bowls[idx-1] {
			bowls[idx-1][i].Tag = ir.Liquid
		}
		*bowlsPtr = bowls

	case ir.StirBowl:
		idx := step.Operands[0].Index
		k := step.Operands[1].Number
		bowls := ensure(*bowlsPtr, idx)
		bowls[idx-1] = stirStack(bowls[idx-1], k)
		*bowlsPtr = bowls

	case ir.StirIngredient:
		ing, err := in.ingredient(step.Operands[0], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		idx := step.Operands[1].Index
		bowls := ensure(*bowlsPtr, idx)
		bowls[idx-1] = stirStack(bowls[idx-1], ing.Runtime.Num)
		*bowlsPtr = bowls

	case ir.Mix:
		idx := step.Operands[0].Index
		bowls := ensure(*bowlsPtr, idx)
		in.shuffle(bowls[idx-1])
		*bowlsPtr = bowls

	case ir.Clean:
		idx := step.Operands[0].Index
		bowls := ensure(*bowlsPtr, idx)
		bowls[idx-1] = nil
		*bowlsPtr = bowls

	case ir.Pour:
		bowlIdx := step.Operands[0].Index
		dishIdx := step.Operands[1].Index
		bowls := ensure(*bowlsPtr, bowlIdx)
		dishes := ensure(*dishesPtr, dishIdx)
		b := bowls[bowlIdx-1]
		d := dishes[dishIdx-1]
		d = append(d, b...)
		dishes[dishIdx-1] = d
		*bowlsPtr = bowls
		*dishesPtr = dishes

	case ir.VerbBegin:
		ing, err := in.ingredient(step.Operands[1], step.Loc)
		if err != nil {
			return 0, false, 0, err
		}
		if ing.Runtime.Num == 0 {
			return pc + step.JumpOffset + 1, false, 0, nil
		}
		return pc + 1, false, 0, nil

	case ir.UntilVerbed:
		if len(step.Operands) > 1 {
			ing, err := in.ingredient(step.Operands[1], step.Loc)
			if err != nil {
				return 0, false, 0, err
			}
			ing.Runtime.Num--
		}
		// Unlike VerbBegin's forward skip and SetAside's break (which
		// both land one step past the loop, per their own JumpOffset +
		// 1), UntilVerbed's backward jump lands exactly on VerbBegin
		// (JumpOffset already encodes -(e-b), i.e. no trailing +1) so
		// the zero-test there re-runs on every iteration.
		return pc + step.JumpOffset, false, 0, nil

	case ir.SetAside:
		return pc + step.JumpOffset + 1, false, 0, nil

	case ir.Serve:
		sub, ok := prog.Recipe(step.Operands[0].RecipeTitle)
		if !ok {
			return 0, false, 0, in.fail(step.Operands[0].RecipeLoc, "Serve with %q: no such recipe", step.Operands[0].RecipeTitle)
		}
		subDishes, _, err := in.runRecipe(prog, sub, *bowlsPtr, *dishesPtr, false)
		if err != nil {
			return 0, false, 0, err
		}
		bowls := ensure(*bowlsPtr, 1)
		bowls[0] = append(bowls[0], servedItems(subDishes, sub.ServesCount)...)
		*bowlsPtr = bowls

	case ir.Refrigerate:
		return 0, true, step.Operands[0].Number, nil

	default:
		return 0, false, 0, in.fail(step.Loc, "unimplemented method step kind %s", step.Kind)
	}

	return pc + 1, false, 0, nil
}

// stirStack implements spec §4.5's StirBowl(n, k): remove the item at
// position min(k+1, depth) from the top and push it back on top.
func stirStack(items []ir.Value, k int64) []ir.Value {
	depth := len(items)
	if depth == 0 {
		return items
	}
	pos := k + 1
	if pos > int64(depth) {
		pos = int64(depth)
	}
	if pos < 1 {
		pos = 1
	}
	idx := depth - int(pos)
	item := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	items = append(items, item)
	return items
}

// servedItems renders the first s baking dishes of a served sub-recipe
// into the liquid-tagged item sequence that gets appended to the
// caller's top mixing bowl, per spec §4.5's Serve rule: each dish's
// standard top-to-bottom serialisation is produced, the dishes are
// concatenated in order, and every Unicode code point of the result
// becomes one new Liquid item.
func servedItems(dishes [][]ir.Value, s int) []ir.Value {
	var text []byte
	for i := 0; i < s && i < len(dishes); i++ {
		text = append(text, []byte(serializeDish(dishes[i]))...)
	}
	var items []ir.Value
	for _, r := range string(text) {
		items = append(items, ir.Value{Num: int64(r), Tag: ir.Liquid})
	}
	return items
}
