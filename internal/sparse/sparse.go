// Package sparse provides a sparse set over automaton state IDs with O(1)
// insertion and membership testing plus a dense slice for iteration in
// insertion order. It backs ε-closure computation and the NFA simulator's
// subset advance, where the universe (the automaton's state count) is
// known up front.
package sparse

import (
	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/internal/conv"
)

// Set is a set of state IDs drawn from a fixed universe [0, capacity).
type Set struct {
	sparse []uint32 // maps id -> index in dense
	dense  []automaton.StateID
}

// New creates a set able to hold IDs in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]automaton.StateID, 0, capacity),
	}
}

// Insert adds id to the set; inserting an existing member is a no-op.
// Panics if id is outside the set's universe.
func (s *Set) Insert(id automaton.StateID) {
	if s.Contains(id) {
		return
	}
	s.sparse[id] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, id)
}

// Contains reports whether id is a member.
func (s *Set) Contains(id automaton.StateID) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return idx < uint32(len(s.dense)) && s.dense[idx] == id
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Dense returns the members in insertion order. The slice aliases the
// set's storage; it is valid until the next Insert or Clear.
func (s *Set) Dense() []automaton.StateID {
	return s.dense
}

// Clear empties the set without releasing storage.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}
