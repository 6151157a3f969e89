package serialize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/automatonc/refa/automaton"
)

func dotLabel(s automaton.Symbol) string {
	switch s {
	case automaton.Epsilon:
		return "ε"
	case automaton.Any:
		return anyLabel
	default:
		return string(rune(s))
	}
}

// ToDOT renders the automaton as a Graphviz digraph: a point-shaped
// pseudo-state feeds the initial state, accepting states are
// doublecircle, and multiple symbols between the same state pair collapse
// into one comma-separated, alphabetically sorted edge label.
func ToDOT(a *automaton.Automaton) string {
	var b strings.Builder
	b.WriteString("digraph Automaton {\n")
	b.WriteString("  rankdir=LR;\n")

	initial, hasInitial := a.Initial()
	if hasInitial {
		b.WriteString("  __start__ [shape=point];\n")
	}

	states := a.States()
	sort.Slice(states, func(i, j int) bool { return a.Name(states[i]) < a.Name(states[j]) })
	for _, s := range states {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", a.Name(s), shape)
	}
	if hasInitial {
		fmt.Fprintf(&b, "  __start__ -> %q;\n", a.Name(initial))
	}

	type pair struct{ src, dst string }
	labels := make(map[pair][]string)
	for _, e := range a.Transitions() {
		p := pair{src: a.Name(e.Src), dst: a.Name(e.Dest)}
		labels[p] = append(labels[p], dotLabel(e.Symbol))
	}
	pairs := make([]pair, 0, len(labels))
	for p := range labels {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].src != pairs[j].src {
			return pairs[i].src < pairs[j].src
		}
		return pairs[i].dst < pairs[j].dst
	})
	for _, p := range pairs {
		ls := labels[p]
		sort.Strings(ls)
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", p.src, p.dst, strings.Join(ls, ", "))
	}

	b.WriteString("}\n")
	return b.String()
}
