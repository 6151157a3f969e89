// Package serialize renders automata and token streams in the project's
// stable wire formats: a JSON record with fixed key order, the plain-text
// postfix form, and Graphviz DOT. It is a pure reader; nothing here
// mutates an automaton.
package serialize

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/automatonc/refa/automaton"
)

// wireAutomaton is the JSON wire record. Field order is the key order on
// the wire; encoding/json preserves declared struct order, so no custom
// marshaler is needed.
type wireAutomaton struct {
	States      []int            `json:"ESTADOS"`
	Symbols     []string         `json:"SIMBOLOS"`
	Initial     []int            `json:"INICIO"`
	Accepting   []int            `json:"ACEPTACION"`
	Transitions []wireTransition `json:"TRANSICIONES"`
}

// wireTransition is one [src, label, dst] triple. The label is the empty
// string for ε.
type wireTransition struct {
	Src   int
	Label string
	Dst   int
}

// MarshalJSON renders the transition as a three-element array.
func (t wireTransition) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{t.Src, t.Label, t.Dst})
}

// UnmarshalJSON parses the three-element array form.
func (t *wireTransition) UnmarshalJSON(data []byte) error {
	var triple []any
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return fmt.Errorf("transition has %d elements, want 3", len(triple))
	}
	src, ok := triple[0].(float64)
	if !ok {
		return fmt.Errorf("transition source %v is not a number", triple[0])
	}
	label, ok := triple[1].(string)
	if !ok {
		return fmt.Errorf("transition label %v is not a string", triple[1])
	}
	dst, ok := triple[2].(float64)
	if !ok {
		return fmt.Errorf("transition destination %v is not a number", triple[2])
	}
	t.Src = int(src)
	t.Label = label
	t.Dst = int(dst)
	return nil
}

// anyLabel is the wire spelling of the wildcard pseudo-symbol.
const anyLabel = "·"

func jsonLabel(s automaton.Symbol) string {
	switch s {
	case automaton.Epsilon:
		return ""
	case automaton.Any:
		return anyLabel
	default:
		return string(rune(s))
	}
}

// renumber maps every state to its wire integer: the initial state gets
// 0, the remaining states follow sorted by their prior string identity.
func renumber(a *automaton.Automaton) map[automaton.StateID]int {
	initial, hasInitial := a.Initial()

	rest := make([]automaton.StateID, 0, a.NumStates())
	for _, s := range a.States() {
		if hasInitial && s == initial {
			continue
		}
		rest = append(rest, s)
	}
	sort.Slice(rest, func(i, j int) bool { return a.Name(rest[i]) < a.Name(rest[j]) })

	num := make(map[automaton.StateID]int, a.NumStates())
	next := 0
	if hasInitial {
		num[initial] = 0
		next = 1
	}
	for _, s := range rest {
		num[s] = next
		next++
	}
	return num
}

// ToJSON serializes an automaton to the JSON wire record. States are
// renumbered sequentially with the initial state as 0; the output is
// byte-stable for identical inputs.
func ToJSON(a *automaton.Automaton) ([]byte, error) {
	num := renumber(a)

	w := wireAutomaton{
		States:      make([]int, 0, a.NumStates()),
		Symbols:     make([]string, 0),
		Initial:     make([]int, 0, 1),
		Accepting:   make([]int, 0),
		Transitions: make([]wireTransition, 0),
	}

	for i := 0; i < a.NumStates(); i++ {
		w.States = append(w.States, i)
	}
	for _, s := range a.Alphabet() {
		w.Symbols = append(w.Symbols, jsonLabel(s))
	}
	sort.Strings(w.Symbols)
	if initial, ok := a.Initial(); ok {
		w.Initial = append(w.Initial, num[initial])
	}
	for _, s := range a.AcceptingStates() {
		w.Accepting = append(w.Accepting, num[s])
	}
	sort.Ints(w.Accepting)
	for _, e := range a.Transitions() {
		w.Transitions = append(w.Transitions, wireTransition{
			Src:   num[e.Src],
			Label: jsonLabel(e.Symbol),
			Dst:   num[e.Dest],
		})
	}
	sort.Slice(w.Transitions, func(i, j int) bool {
		ti, tj := w.Transitions[i], w.Transitions[j]
		if ti.Src != tj.Src {
			return ti.Src < tj.Src
		}
		if ti.Label != tj.Label {
			return ti.Label < tj.Label
		}
		return ti.Dst < tj.Dst
	})

	return json.Marshal(w)
}

// FromJSON rebuilds an automaton from its JSON wire record. States keep
// their wire integers as names, zero-padded to a common width so that
// string order equals numeric order; serialize -> parse -> re-serialize is
// therefore the identity on well-formed records.
func FromJSON(data []byte) (*automaton.Automaton, error) {
	var w wireAutomaton
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	n := len(w.States)
	inRange := func(s int) bool { return s >= 0 && s < n }
	for _, s := range w.States {
		if !inRange(s) {
			return nil, fmt.Errorf("serialize: state %d outside [0, %d)", s, n)
		}
	}

	// Classify before construction: ε labels or a duplicated (src, label)
	// pair mean NFA.
	kind := automaton.KindDFA
	seen := make(map[[2]any]bool, len(w.Transitions))
	for _, tr := range w.Transitions {
		if tr.Label == "" {
			kind = automaton.KindNFA
			break
		}
		k := [2]any{tr.Src, tr.Label}
		if seen[k] {
			kind = automaton.KindNFA
			break
		}
		seen[k] = true
	}
	if len(w.Initial) == 0 {
		kind = automaton.KindNFA
	}

	a := automaton.New(kind)
	states := make([]automaton.StateID, n)
	width := len(fmt.Sprintf("%d", n-1))
	for i := 0; i < n; i++ {
		states[i] = a.AddState()
		a.SetName(states[i], fmt.Sprintf("%0*d", width, i))
	}
	if len(w.Initial) > 1 {
		return nil, fmt.Errorf("serialize: %d initial states, want at most 1", len(w.Initial))
	}
	if len(w.Initial) == 1 {
		if !inRange(w.Initial[0]) {
			return nil, fmt.Errorf("serialize: initial state %d outside [0, %d)", w.Initial[0], n)
		}
		a.SetInitial(states[w.Initial[0]])
	}
	for _, s := range w.Accepting {
		if !inRange(s) {
			return nil, fmt.Errorf("serialize: accepting state %d outside [0, %d)", s, n)
		}
		a.SetAccepting(states[s])
	}
	for _, tr := range w.Transitions {
		if !inRange(tr.Src) || !inRange(tr.Dst) {
			return nil, fmt.Errorf("serialize: transition [%d %q %d] references a state outside [0, %d)", tr.Src, tr.Label, tr.Dst, n)
		}
		sym, err := parseLabel(tr.Label)
		if err != nil {
			return nil, err
		}
		a.AddTransition(states[tr.Src], sym, states[tr.Dst])
	}
	return a, nil
}

func parseLabel(label string) (automaton.Symbol, error) {
	switch label {
	case "":
		return automaton.Epsilon, nil
	case anyLabel:
		return automaton.Any, nil
	default:
		r, size := utf8.DecodeRuneInString(label)
		if size != len(label) || r == utf8.RuneError {
			return 0, fmt.Errorf("serialize: label %q is not a single symbol", label)
		}
		return automaton.Symbol(r), nil
	}
}
