package simulate_test

import (
	"testing"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/hopcroft"
	"github.com/automatonc/refa/parser"
	"github.com/automatonc/refa/simulate"
	"github.com/automatonc/refa/subset"
	"github.com/automatonc/refa/thompson"
)

// compile runs the full pipeline and returns every stage's automaton.
func compile(t *testing.T, pattern string) (nfa, dfa, min *automaton.Automaton) {
	t.Helper()
	tokens, err := parser.ToPostfix(pattern)
	if err != nil {
		t.Fatalf("ToPostfix(%q) returned error: %v", pattern, err)
	}
	nfa, err = thompson.Build(tokens)
	if err != nil {
		t.Fatalf("thompson.Build(%q) returned error: %v", pattern, err)
	}
	dfa, err = subset.Determinize(nfa)
	if err != nil {
		t.Fatalf("Determinize(%q) returned error: %v", pattern, err)
	}
	min, err = hopcroft.Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize(%q) returned error: %v", pattern, err)
	}
	return nfa, dfa, min
}

// TestPipeline_Scenarios drives the end-to-end accept/reject table through
// the minimal DFA, and cross-checks every verdict against the NFA and the
// unminimized DFA.
func TestPipeline_Scenarios(t *testing.T) {
	tests := []struct {
		pattern  string
		accepted []string
		rejected []string
	}{
		{"a", []string{"a"}, []string{"", "b", "aa"}},
		{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
		{"a*", []string{"", "a", "aa", "aaaa"}, []string{"b", "ab"}},
		{"a+", []string{"a", "aa", "aaa"}, []string{"", "b"}},
		{"(a|b)*abb", []string{"abb", "aabb", "babb", "ababb", "bbabb"}, []string{"", "ab", "ba", "abba"}},
		{"a?b", []string{"b", "ab"}, []string{"", "aab", "aa"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			nfa, dfa, min := compile(t, tt.pattern)

			check := func(input string, want bool) {
				t.Helper()
				_, got, err := simulate.Run(min, input)
				if err != nil {
					t.Fatalf("Run(min, %q) returned error: %v", input, err)
				}
				if got != want {
					t.Errorf("minimal DFA on %q: accepted = %v, want %v", input, got, want)
				}
				if _, got, _ := simulate.Run(dfa, input); got != want {
					t.Errorf("DFA on %q: accepted = %v, want %v", input, got, want)
				}
				if got, err := simulate.Accepts(nfa, input); err != nil || got != want {
					t.Errorf("NFA on %q: accepted = %v (err %v), want %v", input, got, err, want)
				}
			}
			for _, s := range tt.accepted {
				check(s, true)
			}
			for _, s := range tt.rejected {
				check(s, false)
			}
		})
	}
}

// TestPipeline_MinimalStateCount is the acceptance gate on the minimizer:
// the classic pattern contracts to exactly 4 states.
func TestPipeline_MinimalStateCount(t *testing.T) {
	_, _, min := compile(t, "(a|b)*abb")
	if got := min.NumStates(); got != 4 {
		t.Errorf("minimal DFA for (a|b)*abb has %d states, want 4", got)
	}
}

// TestPipeline_EquivalentRewrites checks that syntactic rewrites of the
// same language agree on a finite sample after the full pipeline.
func TestPipeline_EquivalentRewrites(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		sample []string
	}{
		{
			"plus as aa*",
			"a+", "aa*",
			[]string{"", "a", "aa", "aaa", "b", "ab", "ba"},
		},
		{
			"option as epsilon alternative",
			"a?", "(a|ε)",
			[]string{"", "a", "aa", "b"},
		},
		{
			"class as alternation",
			"[ab]c", "(a|b)c",
			[]string{"", "ac", "bc", "c", "ab", "abc"},
		},
		{
			"bounded repetition unrolled",
			"a{2,3}", "aa|aaa",
			[]string{"", "a", "aa", "aaa", "aaaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, minA := compile(t, tt.a)
			_, _, minB := compile(t, tt.b)
			for _, input := range tt.sample {
				_, gotA, err := simulate.Run(minA, input)
				if err != nil {
					t.Fatalf("Run(%q, %q) returned error: %v", tt.a, input, err)
				}
				_, gotB, err := simulate.Run(minB, input)
				if err != nil {
					t.Fatalf("Run(%q, %q) returned error: %v", tt.b, input, err)
				}
				if gotA != gotB {
					t.Errorf("%q vs %q disagree on %q: %v vs %v", tt.a, tt.b, input, gotA, gotB)
				}
			}
		})
	}
}

// TestPipeline_Wildcard checks the opaque wildcard end to end: '.' matches
// any single rune, including ones outside the rest of the alphabet.
func TestPipeline_Wildcard(t *testing.T) {
	_, _, min := compile(t, "a.c")
	for _, input := range []string{"abc", "axc", "a7c", "aac"} {
		_, accepted, err := simulate.Run(min, input)
		if err != nil {
			t.Fatalf("Run(%q) returned error: %v", input, err)
		}
		if !accepted {
			t.Errorf("a.c rejected %q", input)
		}
	}
	for _, input := range []string{"ac", "abbc", "xbc"} {
		_, accepted, _ := simulate.Run(min, input)
		if accepted {
			t.Errorf("a.c accepted %q", input)
		}
	}
}

// TestPipeline_PathThroughMinimalDFA pins the exact visited path for the
// classic pattern, by block name.
func TestPipeline_PathThroughMinimalDFA(t *testing.T) {
	_, _, min := compile(t, "(a|b)*abb")
	path, accepted, err := simulate.Run(min, "abb")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !accepted {
		t.Fatal("minimal DFA rejected \"abb\"")
	}
	want := []string{"m0", "q1", "q3", "q4"}
	if len(path) != len(want) {
		t.Fatalf("path has %d states, want %d", len(path), len(want))
	}
	for i, name := range want {
		if got := min.Name(path[i]); got != name {
			t.Errorf("path[%d] = %s, want %s", i, got, name)
		}
	}
}
