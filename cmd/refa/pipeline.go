package main

import (
	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/hopcroft"
	"github.com/automatonc/refa/parser"
	"github.com/automatonc/refa/subset"
	"github.com/automatonc/refa/thompson"
)

// compilation holds every stage's output for one pattern.
type compilation struct {
	pattern string
	tokens  []parser.Token
	nfa     *automaton.Automaton
	dfa     *automaton.Automaton
	min     *automaton.Automaton // nil when minimization is disabled
}

// result returns the automaton the CLI should simulate and export: the
// minimal DFA when minimization ran, the raw DFA otherwise.
func (c *compilation) result() *automaton.Automaton {
	if c.min != nil {
		return c.min
	}
	return c.dfa
}

// compilePattern runs the pipeline on one pattern. Each run owns its
// automata exclusively, so batch mode can call this from concurrent
// goroutines.
func compilePattern(pattern string, minimize bool) (*compilation, error) {
	tokens, err := parser.ToPostfix(pattern)
	if err != nil {
		return nil, err
	}
	nfa, err := thompson.Build(tokens)
	if err != nil {
		return nil, err
	}
	dfa, err := subset.Determinize(nfa)
	if err != nil {
		return nil, err
	}
	c := &compilation{pattern: pattern, tokens: tokens, nfa: nfa, dfa: dfa}
	if minimize {
		c.min, err = hopcroft.Minimize(dfa)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}
