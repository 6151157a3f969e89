// Package ids builds stable hash keys for frozen subsets of NFA states.
// Subset construction identifies each DFA state by the set of NFA states
// it stands for; Key packs that set into a string usable as a map key.
package ids

import (
	"sort"

	"github.com/automatonc/refa/automaton"
)

// Key returns a stable key for a set of state IDs: the IDs sorted and
// packed little-endian, four bytes each. Equal sets yield equal keys
// regardless of input order. The input slice is not modified.
func Key(states []automaton.StateID) string {
	s := append([]automaton.StateID(nil), states...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })

	b := make([]byte, 0, len(s)*4)
	for _, id := range s {
		b = append(b, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(b)
}
