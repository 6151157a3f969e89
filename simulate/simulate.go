// Package simulate executes automata over input strings. Run drives a DFA
// and records the exact state path; Accepts drives an NFA directly via
// ε-closure subset advance, giving language-equality tests an independent
// second opinion that never goes through determinization.
package simulate

import (
	"errors"
	"fmt"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/internal/sparse"
)

// ErrUnknownSymbol indicates an input rune outside the automaton's
// alphabet. Run itself never returns it (a stuck simulation is a
// rejection, not an error); FirstUnknown surfaces it to callers that want
// to explain a rejection.
var ErrUnknownSymbol = errors.New("input symbol outside the automaton alphabet")

// Run simulates d over input. It returns the ordered list of states
// visited starting at the initial state, and whether the run consumed the
// whole input and ended on an accepting state. An input rune with no
// defined transition stops the run: the path so far is returned with
// accepted=false. The only error conditions are a non-deterministic input
// automaton or a missing initial state.
func Run(d *automaton.Automaton, input string) (path []automaton.StateID, accepted bool, err error) {
	initial, ok := d.Initial()
	if !ok {
		return nil, false, fmt.Errorf("simulate: %w", automaton.ErrNoInitial)
	}
	if !d.IsDFA() {
		return nil, false, fmt.Errorf("simulate: %w", automaton.ErrNotADFA)
	}

	cur := initial
	path = []automaton.StateID{cur}
	for _, r := range input {
		targets := d.Targets(cur, automaton.Symbol(r))
		if len(targets) == 0 {
			targets = d.Targets(cur, automaton.Any)
		}
		if len(targets) == 0 {
			return path, false, nil
		}
		cur = targets[0]
		path = append(path, cur)
	}
	return path, d.IsAccepting(cur), nil
}

// FirstUnknown returns the first rune of input that is not in d's
// alphabet, unless the alphabet contains the wildcard pseudo-symbol, in
// which case every rune is known.
func FirstUnknown(d *automaton.Automaton, input string) (rune, error) {
	known := make(map[automaton.Symbol]bool)
	for _, s := range d.Alphabet() {
		known[s] = true
	}
	if known[automaton.Any] {
		return 0, nil
	}
	for _, r := range input {
		if !known[automaton.Symbol(r)] {
			return r, fmt.Errorf("simulate: %w: %q", ErrUnknownSymbol, r)
		}
	}
	return 0, nil
}

// Accepts simulates an automaton with possible ε-transitions over input
// using the textbook subset-advance schedule: start from the ε-closure of
// the initial state, advance the whole set on each rune, and accept iff
// the final set intersects the accepting states.
func Accepts(n *automaton.Automaton, input string) (bool, error) {
	initial, ok := n.Initial()
	if !ok {
		return false, fmt.Errorf("simulate: %w", automaton.ErrNoInitial)
	}

	cur := sparse.New(n.NumStates())
	closureInto(n, cur, initial)

	next := sparse.New(n.NumStates())
	for _, r := range input {
		next.Clear()
		for _, s := range cur.Dense() {
			for _, t := range n.Targets(s, automaton.Symbol(r)) {
				closureInto(n, next, t)
			}
			for _, t := range n.Targets(s, automaton.Any) {
				closureInto(n, next, t)
			}
		}
		cur, next = next, cur
		if cur.Len() == 0 {
			break
		}
	}

	for _, s := range cur.Dense() {
		if n.IsAccepting(s) {
			return true, nil
		}
	}
	return false, nil
}

// closureInto inserts s and everything ε-reachable from it into set.
func closureInto(n *automaton.Automaton, set *sparse.Set, s automaton.StateID) {
	if set.Contains(s) {
		return
	}
	set.Insert(s)
	work := []automaton.StateID{s}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, d := range n.Targets(cur, automaton.Epsilon) {
			if !set.Contains(d) {
				set.Insert(d)
				work = append(work, d)
			}
		}
	}
}
