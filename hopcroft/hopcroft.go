// Package hopcroft contracts a DFA to the unique minimal DFA for the same
// language by partition refinement: states start split into accepting and
// non-accepting blocks, and blocks split further until no symbol
// distinguishes two states of the same block. Each final block becomes one
// state of the minimal DFA.
package hopcroft

import (
	"fmt"
	"sort"

	"github.com/automatonc/refa/automaton"
)

// Config bounds the refinement loop.
type Config struct {
	// MaxIterations caps the number of worklist pops. 0 means unbounded;
	// the input caps on pattern length and repetition bounds already keep
	// state counts small, so this is a defensive ceiling.
	MaxIterations int
}

// block is one equivalence class of the partition under refinement.
type block struct {
	members map[automaton.StateID]bool
	inW     bool
}

// Minimize returns the minimal DFA for d's language with an unbounded
// refinement loop.
func Minimize(d *automaton.Automaton) (*automaton.Automaton, error) {
	return MinimizeWith(d, Config{})
}

// MinimizeWith is Minimize with an explicit Config. Unreachable states are
// discarded first; the input is not modified.
func MinimizeWith(d *automaton.Automaton, cfg Config) (*automaton.Automaton, error) {
	initial, ok := d.Initial()
	if !ok {
		return nil, &DFAError{Kind: NoInitial, Message: "automaton has no initial state"}
	}
	if !d.IsDFA() {
		return nil, &DFAError{Kind: NotADFA, Message: "input automaton is not deterministic"}
	}

	reach := reachable(d, initial)
	alphabet := d.Alphabet()

	accepting := make(map[automaton.StateID]bool)
	nonAccepting := make(map[automaton.StateID]bool)
	for _, q := range reach {
		if d.IsAccepting(q) {
			accepting[q] = true
		} else {
			nonAccepting[q] = true
		}
	}

	// Language ∅: one block, no refinement, and no transitions in the
	// result.
	if len(accepting) == 0 {
		m := automaton.New(automaton.KindDFA)
		s := m.AddState()
		m.SetInitial(s)
		if len(reach) == 1 {
			m.SetName(s, d.Name(reach[0]))
		} else {
			m.SetName(s, "m0")
		}
		return m, nil
	}

	f := &block{members: accepting, inW: true}
	partition := []*block{f}
	worklist := []*block{f}
	if len(nonAccepting) > 0 {
		// Transitions may be partial, so the preimage of the non-accepting
		// block is not the complement of f's: it must split on its own.
		nb := &block{members: nonAccepting, inW: true}
		partition = append(partition, nb)
		worklist = append(worklist, nb)
	}

	iterations := 0
	for len(worklist) > 0 {
		if cfg.MaxIterations > 0 {
			iterations++
			if iterations > cfg.MaxIterations {
				return nil, ErrIterationLimit
			}
		}
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		a.inW = false
		splitters := a.members

		for _, sym := range alphabet {
			// preimage of the splitter block under sym
			x := make(map[automaton.StateID]bool)
			for _, q := range reach {
				if t, ok := step(d, q, sym); ok && splitters[t] {
					x[q] = true
				}
			}
			if len(x) == 0 {
				continue
			}

			next := make([]*block, 0, len(partition))
			for _, y := range partition {
				inter, diff := split(y.members, x)
				if len(inter) == 0 || len(diff) == 0 {
					next = append(next, y)
					continue
				}
				bi := &block{members: inter}
				bd := &block{members: diff}
				next = append(next, bi, bd)
				if y.inW {
					worklist = removeBlock(worklist, y)
					bi.inW = true
					bd.inW = true
					worklist = append(worklist, bi, bd)
				} else if len(inter) <= len(diff) {
					bi.inW = true
					worklist = append(worklist, bi)
				} else {
					bd.inW = true
					worklist = append(worklist, bd)
				}
			}
			partition = next
		}
	}

	return contract(d, reach, alphabet, partition, accepting, initial), nil
}

// contract builds the minimal DFA from the final partition. A
// single-member block keeps its state's name; merged blocks take fresh
// m0, m1, ... names in partition enumeration order.
func contract(
	d *automaton.Automaton,
	reach []automaton.StateID,
	alphabet []automaton.Symbol,
	partition []*block,
	accepting map[automaton.StateID]bool,
	initial automaton.StateID,
) *automaton.Automaton {
	m := automaton.New(automaton.KindDFA)
	blockOf := make(map[automaton.StateID]int, len(reach))
	blockState := make([]automaton.StateID, len(partition))

	merged := 0
	for i, b := range partition {
		id := m.AddState()
		blockState[i] = id
		if len(b.members) == 1 {
			for q := range b.members {
				m.SetName(id, d.Name(q))
			}
		} else {
			m.SetName(id, fmt.Sprintf("m%d", merged))
			merged++
		}
		accepts := false
		for q := range b.members {
			blockOf[q] = i
			if accepting[q] {
				accepts = true
			}
		}
		if accepts {
			m.SetAccepting(id)
		}
		if b.members[initial] {
			m.SetInitial(id)
		}
	}

	for _, q := range reach {
		for _, sym := range alphabet {
			if t, ok := step(d, q, sym); ok {
				m.AddTransition(blockState[blockOf[q]], sym, blockState[blockOf[t]])
			}
		}
	}
	return m
}

// split partitions y into (y ∩ x, y \ x).
func split(y, x map[automaton.StateID]bool) (inter, diff map[automaton.StateID]bool) {
	inter = make(map[automaton.StateID]bool)
	diff = make(map[automaton.StateID]bool)
	for q := range y {
		if x[q] {
			inter[q] = true
		} else {
			diff[q] = true
		}
	}
	return inter, diff
}

func removeBlock(w []*block, b *block) []*block {
	for i, cur := range w {
		if cur == b {
			return append(w[:i], w[i+1:]...)
		}
	}
	return w
}

// step returns the unique sym-successor of q, if defined.
func step(d *automaton.Automaton, q automaton.StateID, sym automaton.Symbol) (automaton.StateID, bool) {
	ts := d.Targets(q, sym)
	if len(ts) != 1 {
		return automaton.InvalidState, false
	}
	return ts[0], true
}

// reachable returns the states reachable from initial, sorted.
func reachable(d *automaton.Automaton, initial automaton.StateID) []automaton.StateID {
	seen := map[automaton.StateID]bool{initial: true}
	queue := []automaton.StateID{initial}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, sym := range d.Alphabet() {
			for _, t := range d.Targets(q, sym) {
				if !seen[t] {
					seen[t] = true
					queue = append(queue, t)
				}
			}
		}
	}
	out := make([]automaton.StateID, 0, len(seen))
	for q := range seen {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
