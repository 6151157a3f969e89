package hopcroft

import (
	"fmt"

	"github.com/automatonc/refa/automaton"
)

// ErrorKind classifies minimization errors into categories
type ErrorKind uint8

const (
	// NotADFA indicates the input automaton has ε transitions or a
	// non-deterministic (state, symbol) pair.
	NotADFA ErrorKind = iota

	// NoInitial indicates the input automaton has no initial state.
	NoInitial

	// IterationLimit indicates refinement exceeded Config.MaxIterations.
	IterationLimit
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case NotADFA:
		return "NotADFA"
	case NoInitial:
		return "NoInitial"
	case IterationLimit:
		return "IterationLimit"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// DFAError is the error type returned by Minimize.
type DFAError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *DFAError) Error() string {
	return fmt.Sprintf("hopcroft: %s", e.Message)
}

// Unwrap maps the kind onto the shared automaton sentinels, so
// errors.Is(err, automaton.ErrNotADFA) works across package boundaries.
func (e *DFAError) Unwrap() error {
	switch e.Kind {
	case NotADFA:
		return automaton.ErrNotADFA
	case NoInitial:
		return automaton.ErrNoInitial
	default:
		return nil
	}
}

// ErrIterationLimit is returned when partition refinement runs past the
// configured ceiling.
var ErrIterationLimit = &DFAError{
	Kind:    IterationLimit,
	Message: "refinement iteration limit exceeded",
}
