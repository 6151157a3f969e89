// Package thompson builds an ε-NFA from a postfix token stream by
// structural composition of small fragments. Every construction rule
// allocates fresh states; fragment states are never repurposed, which
// keeps the result single-entry/single-exit.
package thompson

import (
	"errors"
	"fmt"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/parser"
)

// ErrMalformedPostfix indicates the postfix stream underflowed the
// fragment stack or left it with a cardinality other than one.
var ErrMalformedPostfix = errors.New("malformed postfix stream")

// BuildError wraps a construction failure with the offending token index.
type BuildError struct {
	Pos     int
	Message string
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("thompson: token %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("thompson: %s", e.Message)
}

// Unwrap returns the underlying sentinel
func (e *BuildError) Unwrap() error {
	return ErrMalformedPostfix
}

// fragment is a partially built NFA: one entry state and the exit states
// still waiting to be wired into an enclosing fragment. Fragments live
// only on the construction stack.
type fragment struct {
	entry automaton.StateID
	exits []automaton.StateID
}

// Build constructs the ε-NFA for a postfix token stream. The result has
// exactly one initial and one accepting state.
func Build(tokens []parser.Token) (*automaton.Automaton, error) {
	n := automaton.New(automaton.KindNFA)
	var stack []fragment

	pop := func() fragment {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for i, tok := range tokens {
		if need := tok.Arity(); len(stack) < need {
			return nil, &BuildError{
				Pos:     i,
				Message: fmt.Sprintf("operator %q needs %d operands, stack has %d", tok, need, len(stack)),
			}
		}
		switch tok.Kind {
		case parser.TokLiteral:
			stack = append(stack, atom(n, automaton.Symbol(tok.Rune)))
		case parser.TokEpsilon:
			stack = append(stack, atom(n, automaton.Epsilon))
		case parser.TokAny:
			stack = append(stack, atom(n, automaton.Any))
		case parser.TokConcat:
			b := pop()
			a := pop()
			for _, e := range a.exits {
				n.AddTransition(e, automaton.Epsilon, b.entry)
			}
			stack = append(stack, fragment{entry: a.entry, exits: b.exits})
		case parser.TokAlt:
			b := pop()
			a := pop()
			s0 := n.AddState()
			s1 := n.AddState()
			n.AddTransition(s0, automaton.Epsilon, a.entry)
			n.AddTransition(s0, automaton.Epsilon, b.entry)
			for _, e := range a.exits {
				n.AddTransition(e, automaton.Epsilon, s1)
			}
			for _, e := range b.exits {
				n.AddTransition(e, automaton.Epsilon, s1)
			}
			stack = append(stack, fragment{entry: s0, exits: []automaton.StateID{s1}})
		case parser.TokStar:
			a := pop()
			s0 := n.AddState()
			s1 := n.AddState()
			n.AddTransition(s0, automaton.Epsilon, a.entry)
			n.AddTransition(s0, automaton.Epsilon, s1)
			for _, e := range a.exits {
				n.AddTransition(e, automaton.Epsilon, a.entry)
				n.AddTransition(e, automaton.Epsilon, s1)
			}
			stack = append(stack, fragment{entry: s0, exits: []automaton.StateID{s1}})
		case parser.TokPlus:
			// Like star, but without the direct s0 -> s1 edge: at least one
			// pass through the operand is mandatory.
			a := pop()
			s0 := n.AddState()
			s1 := n.AddState()
			n.AddTransition(s0, automaton.Epsilon, a.entry)
			for _, e := range a.exits {
				n.AddTransition(e, automaton.Epsilon, a.entry)
				n.AddTransition(e, automaton.Epsilon, s1)
			}
			stack = append(stack, fragment{entry: s0, exits: []automaton.StateID{s1}})
		case parser.TokQuestion:
			a := pop()
			s0 := n.AddState()
			s1 := n.AddState()
			n.AddTransition(s0, automaton.Epsilon, a.entry)
			n.AddTransition(s0, automaton.Epsilon, s1)
			for _, e := range a.exits {
				n.AddTransition(e, automaton.Epsilon, s1)
			}
			stack = append(stack, fragment{entry: s0, exits: []automaton.StateID{s1}})
		default:
			return nil, &BuildError{Pos: i, Message: fmt.Sprintf("unknown token kind %d", tok.Kind)}
		}
	}

	if len(stack) != 1 {
		return nil, &BuildError{
			Pos:     -1,
			Message: fmt.Sprintf("stream leaves %d fragments on the stack, want 1", len(stack)),
		}
	}
	f := stack[0]
	n.SetInitial(f.entry)
	for _, e := range f.exits {
		n.SetAccepting(e)
	}
	return n, nil
}

// atom builds the two-state fragment for a single symbol (or ε, or the
// wildcard pseudo-symbol).
func atom(n *automaton.Automaton, s automaton.Symbol) fragment {
	s0 := n.AddState()
	s1 := n.AddState()
	n.AddTransition(s0, s, s1)
	return fragment{entry: s0, exits: []automaton.StateID{s1}}
}
