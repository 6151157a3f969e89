package serialize

import (
	"strings"

	"github.com/automatonc/refa/parser"
)

// Postfix renders a token stream as plain postfix text: literals as
// themselves, ε as "ε", operators as their glyph.
func Postfix(tokens []parser.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
