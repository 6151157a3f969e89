// Package subset converts an ε-NFA into a DFA over the same alphabet by
// the classic subset construction. Each DFA state stands for a frozen set
// of NFA states; discovery order under sorted-symbol iteration fixes the
// q0, q1, ... naming, so identical inputs always produce identically
// named DFAs.
package subset

import (
	"fmt"
	"sort"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/internal/ids"
	"github.com/automatonc/refa/internal/sparse"
)

// Determinize builds a DFA accepting exactly the language of n. The input
// is not modified.
func Determinize(n *automaton.Automaton) (*automaton.Automaton, error) {
	initial, ok := n.Initial()
	if !ok {
		return nil, fmt.Errorf("subset: %w", automaton.ErrNoInitial)
	}

	cl := newCloser(n)
	symbols := n.Alphabet()

	d := automaton.New(automaton.KindDFA)

	type pending struct {
		id  automaton.StateID
		set []automaton.StateID
	}

	start := cl.closure([]automaton.StateID{initial})
	index := map[string]automaton.StateID{ids.Key(start): 0}

	q0 := d.AddState()
	d.SetInitial(q0)
	d.SetName(q0, "q0")
	if intersectsAccepting(n, start) {
		d.SetAccepting(q0)
	}

	queue := []pending{{id: q0, set: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sym := range symbols {
			move := cl.move(cur.set, sym)
			if len(move) == 0 {
				continue
			}
			key := ids.Key(move)
			uid, seen := index[key]
			if !seen {
				uid = d.AddState()
				index[key] = uid
				d.SetName(uid, fmt.Sprintf("q%d", uid))
				if intersectsAccepting(n, move) {
					d.SetAccepting(uid)
				}
				queue = append(queue, pending{id: uid, set: move})
			}
			d.AddTransition(cur.id, sym, uid)
		}
	}
	return d, nil
}

func intersectsAccepting(n *automaton.Automaton, set []automaton.StateID) bool {
	for _, s := range set {
		if n.IsAccepting(s) {
			return true
		}
	}
	return false
}

// closer computes ε-closures over one NFA, memoizing per single state.
// The automaton is immutable by the time Determinize runs, so the memo is
// never invalidated; it is discarded with the closer when the call
// returns.
type closer struct {
	n     *automaton.Automaton
	memo  map[automaton.StateID][]automaton.StateID
	visit *sparse.Set
}

func newCloser(n *automaton.Automaton) *closer {
	return &closer{
		n:     n,
		memo:  make(map[automaton.StateID][]automaton.StateID),
		visit: sparse.New(n.NumStates()),
	}
}

// single returns the ε-closure of one state, sorted.
func (c *closer) single(s automaton.StateID) []automaton.StateID {
	if cached, ok := c.memo[s]; ok {
		return cached
	}
	c.visit.Clear()
	c.visit.Insert(s)
	work := []automaton.StateID{s}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, d := range c.n.Targets(cur, automaton.Epsilon) {
			if !c.visit.Contains(d) {
				c.visit.Insert(d)
				work = append(work, d)
			}
		}
	}
	out := append([]automaton.StateID(nil), c.visit.Dense()...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	c.memo[s] = out
	return out
}

// closure returns the ε-closure of a set of states, sorted and
// duplicate-free.
func (c *closer) closure(set []automaton.StateID) []automaton.StateID {
	merged := sparse.New(c.n.NumStates())
	for _, s := range set {
		for _, m := range c.single(s) {
			merged.Insert(m)
		}
	}
	out := append([]automaton.StateID(nil), merged.Dense()...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// move returns ε-closure(δ(set, sym)). A literal symbol also follows Any
// edges: the wildcard pseudo-symbol matches every input rune, so a rune
// known to the alphabet must take both its own edges and the wildcard's.
func (c *closer) move(set []automaton.StateID, sym automaton.Symbol) []automaton.StateID {
	var targets []automaton.StateID
	for _, s := range set {
		targets = append(targets, c.n.Targets(s, sym)...)
		if sym != automaton.Any {
			targets = append(targets, c.n.Targets(s, automaton.Any)...)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	return c.closure(targets)
}
