package test

import (
	"math/rand"
	"strings"
)

const validTokens = "def|extern|foo|bar|x|y|z2|(|)|,|;|+|-|*|<|1|42|3.14|.5|# a comment that runs to the end of the line\n|\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, "|")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression builds a well-formed expression of size operands joined
// by binary operators, with calls and parentheses mixed in.
func GetRandomExpression(size int) string {
	operands := []string{"x", "y", "1", "2.5", "foo(x, 1)", "(a+b)", "bar()"}
	operators := []string{"+", "-", "*", "<"}

	var expr strings.Builder
	for i := 0; i < size; i++ {
		if i > 0 {
			expr.WriteString(operators[rand.Intn(len(operators))])
		}

		expr.WriteString(operands[rand.Intn(len(operands))])
	}

	return expr.String()
}
