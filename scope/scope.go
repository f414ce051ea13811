// Package scope resolves Chef's loop structure during parsing: it tracks
// a stack of open verb-loops and, on each loop's closing UntilVerbed,
// patches the forward/backward jump offsets the interpreter uses.
package scope

import (
	"fmt"

	"github.com/chef-lang/chef/ir"
	"github.com/chef-lang/chef/token"
)

// openLoop records one VerbBegin step awaiting its matching UntilVerbed.
type openLoop struct {
	verb        string // the opening verb, e.g. "Bake"
	beginIndex  int    // index of the VerbBegin step in the recipe's method list
	beginLoc    token.Location
	setAsideIdx []int // indices of SetAside steps seen inside this loop
}

// Resolver maintains the stack of open loops for a single recipe's
// method list. It is a transient parsing artifact: a fresh Resolver is
// created per recipe and discarded once that recipe's method list is
// fully parsed.
type Resolver struct {
	stack []openLoop
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{}
}

// OpenLoop pushes a new loop record when a VerbBegin step is parsed.
// index is the step's position in the recipe's (in-progress) method
// list.
func (r *Resolver) OpenLoop(verb string, index int, loc token.Location) {
	r.stack = append(r.stack, openLoop{verb: verb, beginIndex: index, beginLoc: loc})
}

// RecordSetAside notes a SetAside step at the given index as belonging
// to the innermost currently-open loop. It returns false if there is no
// open loop (a "Set aside" outside any loop), which callers should
// surface as an error.
func (r *Resolver) RecordSetAside(index int) bool {
	if len(r.stack) == 0 {
		return false
	}
	top := len(r.stack) - 1
	r.stack[top].setAsideIdx = append(r.stack[top].setAsideIdx, index)
	return true
}

// Mismatch describes why an UntilVerbed failed to close a loop: either
// the stack was empty, or the participle didn't match the open loop's
// verb.
type Mismatch struct {
	Empty        bool
	OpenVerb     string
	OpenVerbLoc  token.Location
	ClosingParti string
}

func (m *Mismatch) Error() string {
	if m.Empty {
		return fmt.Sprintf("'Until %s' has no matching open loop", m.ClosingParti)
	}
	return fmt.Sprintf("'Until %s' does not match open loop verb %q (opened at %s)", m.ClosingParti, m.OpenVerb, m.OpenVerbLoc)
}

// CloseLoop matches an UntilVerbed step (at endIndex, with closing
// participle participle) against the innermost open loop, and patches
// the jump offsets of the method list's VerbBegin, UntilVerbed and any
// SetAside steps belonging to that loop, per spec §4.4:
//
//	VerbBegin.JumpOffset   =  e - b   (forward, to the UntilVerbed)
//	UntilVerbed.JumpOffset = -(e - b) (backward, to the VerbBegin)
//	SetAside.JumpOffset    =  e - k   (forward, to the UntilVerbed)
//
// matches reports whether participle matches the open loop's verb (the
// parser supplies this, since matching requires the verb-inflection
// table that lives in package parser).
func (r *Resolver) CloseLoop(method []ir.MethodStep, endIndex int, participle string, matches func(verb, participle string) bool) error {
	if len(r.stack) == 0 {
		return &Mismatch{Empty: true, ClosingParti: participle}
	}
	top := len(r.stack) - 1
	loop := r.stack[top]
	if !matches(loop.verb, participle) {
		return &Mismatch{OpenVerb: loop.verb, OpenVerbLoc: loop.beginLoc, ClosingParti: participle}
	}
	r.stack = r.stack[:top]

	b, e := loop.beginIndex, endIndex
	method[b].JumpOffset = e - b
	method[e].JumpOffset = -(e - b)
	for _, k := range loop.setAsideIdx {
		method[k].JumpOffset = e - k
	}
	return nil
}

// Depth returns the number of currently open loops; a non-zero Depth at
// the end of a recipe's method list is an error (spec §3 invariant: "the
// scope stack is empty at the end of every recipe's method list").
func (r *Resolver) Depth() int {
	return len(r.stack)
}

// InnermostVerb returns the verb of the innermost open loop and true, or
// ("", false) if no loop is open. The parser uses it to name the verb in
// its diagnostic for a loop left open at the end of a method list.
func (r *Resolver) InnermostVerb() (string, bool) {
	if len(r.stack) == 0 {
		return "", false
	}
	return r.stack[len(r.stack)-1].verb, true
}
