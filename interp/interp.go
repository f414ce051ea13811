// Package interp is the multi-stack machine that walks a compiled
// ir.Program: per-recipe mixing bowls and baking dishes, ingredient
// variables with dry/liquid tagging, recipe-call semantics, and final
// serialisation of the entry recipe's baking dishes to standard output
// (spec §4.5).
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/chef-lang/chef/diag"
	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/token"
)

// maxRecipeDepth bounds recursive Serve calls so a runaway recipe
// reports a runtime error instead of exhausting the native call stack
// (spec §5: "implementations SHOULD detect stack overflow and report it
// as a runtime error rather than crash").
const maxRecipeDepth = 4096

// Interp holds the machine's process-wide resources: where Take reads
// from, where the final serialisation is written, the diagnostic sink,
// and the RNG backing Mix.
type Interp struct {
	sink   *diag.Sink
	stdin  *bufio.Reader
	stdout io.Writer

	// rng is nil when Mix should draw from math/rand/v2's top-level,
	// process-entropy-seeded source; non-nil once SeedMix has been
	// called for a deterministic run (spec §9 RNG policy, SPEC_FULL.md
	// §9).
	rng *rand.Rand

	depth int
}

// New creates an Interp reading Take input from stdin and writing the
// program's final output to stdout.
func New(sink *diag.Sink, stdin io.Reader, stdout io.Writer) *Interp {
	return &Interp{
		sink:   sink,
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
	}
}

// SeedMix switches Mix to a deterministic math/rand/v2.Rand seeded from
// seed, for reproducible runs (the `mix_seed` config key). Calling it with seed 0 has no special meaning here; the
// zero-means-entropy convention is handled by the caller, which simply
// does not call SeedMix at all in that case.
func (in *Interp) SeedMix(seed uint64) {
	in.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// shuffle performs a uniform random permutation in place, drawing from
// the deterministic Rand if one was seeded, or from math/rand/v2's
// top-level (process-entropy) source otherwise.
func (in *Interp) shuffle(items []ir.Value) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if in.rng != nil {
		in.rng.Shuffle(len(items), swap)
		return
	}
	rand.Shuffle(len(items), swap)
}

// RuntimeError is returned by Run when execution must stop because of a
// spec §7 runtime error (division by zero, stack underflow, recursion
// depth exceeded, an unresolved Serve target, or the interpreter
// encountering an ingredient placeholder the parser left after an
// unresolved reference). The offending step's SourceLocation has
// already been reported to the diag.Sink by the time Run returns this.
type RuntimeError struct {
	Loc     token.Location
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (in *Interp) fail(loc token.Location, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	in.sink.Error(loc, "%s", msg)
	return &RuntimeError{Loc: loc, Message: msg}
}

// Run executes prog's entry recipe to completion (or its first
// Refrigerate) and writes its served baking dishes to stdout per spec
// §4.5's "Program termination and output" rule.
func (in *Interp) Run(prog *ir.Program) error {
	entry, ok := prog.Entry()
	if !ok {
		return nil
	}
	dishes, servesOverride, err := in.runRecipe(prog, entry, nil, nil, true)
	if err != nil {
		return err
	}
	serves := entry.ServesCount
	if servesOverride > 0 {
		serves = servesOverride
	}
	return in.serve(dishes, serves)
}

// serve writes dishes[0:serves] to stdout, one block per dish, per spec
// §4.5's final serialisation rule.
func (in *Interp) serve(dishes [][]ir.Value, serves int) error {
	w := bufio.NewWriter(in.stdout)
	for i := 0; i < serves; i++ {
		var items []ir.Value
		if i < len(dishes) {
			items = dishes[i]
		}
		if _, err := w.WriteString(serializeDish(items)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// serializeDish renders one baking dish's items top-to-bottom: a Dry
// item as its decimal integer followed by a single space, a Liquid item
// as its Unicode code point with no separator. Pour appends in storage
// order (bottom to top), so this is the sole place a dish's order gets
// reversed for output.
func serializeDish(items []ir.Value) string {
	var out []byte
	for i := len(items) - 1; i >= 0; i-- {
		v := items[i]
		if v.Tag == ir.Liquid {
			out = append(out, []byte(string(rune(v.Num)))...)
			continue
		}
		out = append(out, []byte(fmt.Sprintf("%d ", v.Num))...)
	}
	return string(out)
}

// deepCopyStacks clones a list of stacks (mixing bowls or baking
// dishes) so a callee's mutations never alias the caller's, per spec
// §4.5's "deep-copy caller's current mixing-bowl list and baking-dish
// list into the callee's locals".
func deepCopyStacks(stacks [][]ir.Value) [][]ir.Value {
	out := make([][]ir.Value, len(stacks))
	for i, s := range stacks {
		out[i] = append([]ir.Value(nil), s...)
	}
	return out
}

// ensure grows a 1-indexed stack list on demand so index idx is valid,
// per spec §3's "mixing bowls... indexed from 1, grown on demand".
func ensure(stacks [][]ir.Value, idx int) [][]ir.Value {
	for len(stacks) < idx {
		stacks = append(stacks, nil)
	}
	return stacks
}
