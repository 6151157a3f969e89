package serialize_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/automatonc/refa/automaton"
	"github.com/automatonc/refa/hopcroft"
	"github.com/automatonc/refa/parser"
	"github.com/automatonc/refa/serialize"
	"github.com/automatonc/refa/subset"
	"github.com/automatonc/refa/thompson"
)

func compileMin(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	tokens, err := parser.ToPostfix(pattern)
	if err != nil {
		t.Fatalf("ToPostfix(%q) returned error: %v", pattern, err)
	}
	nfa, err := thompson.Build(tokens)
	if err != nil {
		t.Fatalf("thompson.Build(%q) returned error: %v", pattern, err)
	}
	dfa, err := subset.Determinize(nfa)
	if err != nil {
		t.Fatalf("Determinize(%q) returned error: %v", pattern, err)
	}
	min, err := hopcroft.Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize(%q) returned error: %v", pattern, err)
	}
	return min
}

func TestPostfix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"(a|b)*abb", "ab|*a.b.b."},
		{"a|ε", "aε|"},
		{"a?b", "a?b."},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tokens, err := parser.ToPostfix(tt.pattern)
			if err != nil {
				t.Fatalf("ToPostfix(%q) returned error: %v", tt.pattern, err)
			}
			if got := serialize.Postfix(tokens); got != tt.want {
				t.Errorf("Postfix = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestToJSON_Golden pins the exact wire bytes for the minimal DFA of the
// classic pattern against the checked-in fixture.
func TestToJSON_Golden(t *testing.T) {
	want, err := os.ReadFile("testdata/abb_min_dfa.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	want = bytes.TrimSpace(want)

	got, err := serialize.ToJSON(compileMin(t, "(a|b)*abb"))
	if err != nil {
		t.Fatalf("ToJSON returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ToJSON mismatch\n got: %s\nwant: %s", got, want)
	}
}

// TestJSON_RoundTrip checks serialize -> parse-back -> re-serialize is the
// identity, for both the golden DFA and a freshly built ε-NFA.
func TestJSON_RoundTrip(t *testing.T) {
	t.Run("golden DFA", func(t *testing.T) {
		data, err := os.ReadFile("testdata/abb_min_dfa.json")
		if err != nil {
			t.Fatalf("reading fixture: %v", err)
		}
		data = bytes.TrimSpace(data)

		a, err := serialize.FromJSON(data)
		if err != nil {
			t.Fatalf("FromJSON returned error: %v", err)
		}
		if a.Kind() != automaton.KindDFA {
			t.Errorf("Kind = %v, want %v", a.Kind(), automaton.KindDFA)
		}
		again, err := serialize.ToJSON(a)
		if err != nil {
			t.Fatalf("ToJSON returned error: %v", err)
		}
		if !bytes.Equal(again, data) {
			t.Errorf("round trip mismatch\n got: %s\nwant: %s", again, data)
		}
	})

	t.Run("epsilon NFA", func(t *testing.T) {
		tokens, err := parser.ToPostfix("a|b")
		if err != nil {
			t.Fatalf("ToPostfix returned error: %v", err)
		}
		nfa, err := thompson.Build(tokens)
		if err != nil {
			t.Fatalf("Build returned error: %v", err)
		}
		first, err := serialize.ToJSON(nfa)
		if err != nil {
			t.Fatalf("ToJSON returned error: %v", err)
		}
		if !bytes.Contains(first, []byte(`,"",`)) {
			t.Error("NFA serialization has no ε (empty-string) labels")
		}
		parsed, err := serialize.FromJSON(first)
		if err != nil {
			t.Fatalf("FromJSON returned error: %v", err)
		}
		if parsed.Kind() != automaton.KindNFA {
			t.Errorf("Kind = %v, want %v", parsed.Kind(), automaton.KindNFA)
		}
		second, err := serialize.ToJSON(parsed)
		if err != nil {
			t.Fatalf("second ToJSON returned error: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("round trip mismatch\n got: %s\nwant: %s", second, first)
		}
	})
}

// TestPipeline_ByteIdentical runs the full pipeline twice and demands
// byte-identical serialized output, JSON and DOT both.
func TestPipeline_ByteIdentical(t *testing.T) {
	const pattern = "(a|b)*abb"
	first := compileMin(t, pattern)
	second := compileMin(t, pattern)

	j1, err := serialize.ToJSON(first)
	if err != nil {
		t.Fatalf("ToJSON returned error: %v", err)
	}
	j2, err := serialize.ToJSON(second)
	if err != nil {
		t.Fatalf("ToJSON returned error: %v", err)
	}
	if !bytes.Equal(j1, j2) {
		t.Error("two identical pipeline runs serialized differently")
	}
	if d1, d2 := serialize.ToDOT(first), serialize.ToDOT(second); d1 != d2 {
		t.Error("two identical pipeline runs rendered different DOT")
	}
}

func TestToDOT(t *testing.T) {
	d := automaton.New(automaton.KindDFA)
	s0 := d.AddState()
	s1 := d.AddState()
	d.SetInitial(s0)
	d.SetAccepting(s1)
	d.AddTransition(s0, 'a', s1)
	d.AddTransition(s0, 'b', s1)

	want := `digraph Automaton {
  rankdir=LR;
  __start__ [shape=point];
  "0" [shape=circle];
  "1" [shape=doublecircle];
  __start__ -> "0";
  "0" -> "1" [label="a, b"];
}
`
	if got := serialize.ToDOT(d); got != want {
		t.Errorf("ToDOT mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestToDOT_EpsilonLabel(t *testing.T) {
	n := automaton.New(automaton.KindNFA)
	s0 := n.AddState()
	s1 := n.AddState()
	n.SetInitial(s0)
	n.AddTransition(s0, automaton.Epsilon, s1)

	dot := serialize.ToDOT(n)
	if !bytes.Contains([]byte(dot), []byte(`[label="ε"]`)) {
		t.Errorf("DOT output missing ε label:\n%s", dot)
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"state out of range", `{"ESTADOS":[0,5],"SIMBOLOS":[],"INICIO":[],"ACEPTACION":[],"TRANSICIONES":[]}`},
		{"initial out of range", `{"ESTADOS":[0],"SIMBOLOS":[],"INICIO":[7],"ACEPTACION":[],"TRANSICIONES":[]}`},
		{"two initial states", `{"ESTADOS":[0,1],"SIMBOLOS":[],"INICIO":[0,1],"ACEPTACION":[],"TRANSICIONES":[]}`},
		{"transition out of range", `{"ESTADOS":[0],"SIMBOLOS":["a"],"INICIO":[0],"ACEPTACION":[],"TRANSICIONES":[[0,"a",3]]}`},
		{"multi-rune label", `{"ESTADOS":[0,1],"SIMBOLOS":["ab"],"INICIO":[0],"ACEPTACION":[],"TRANSICIONES":[[0,"ab",1]]}`},
		{"short transition", `{"ESTADOS":[0],"SIMBOLOS":[],"INICIO":[0],"ACEPTACION":[],"TRANSICIONES":[[0,"a"]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := serialize.FromJSON([]byte(tt.data)); err == nil {
				t.Error("FromJSON succeeded, want error")
			}
		})
	}
}
