package toy

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.toylang.dev/internal/test"
)

func lexAll(data string) []Token {
	l := NewLexerFromReader(strings.NewReader(data))

	var toks []Token
	for tok := l.Get(); tok.Typ != TokenEOF; tok = l.Get() {
		toks = append(toks, tok)
	}

	return toks
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []Token
	}{
		{
			"def foo(x y) x+y",
			[]Token{
				{Typ: TokenDef, Value: "def"},
				{Typ: TokenIdentifier, Value: "foo"},
				{Typ: TokenSymbol, Value: "("},
				{Typ: TokenIdentifier, Value: "x"},
				{Typ: TokenIdentifier, Value: "y"},
				{Typ: TokenSymbol, Value: ")"},
				{Typ: TokenIdentifier, Value: "x"},
				{Typ: TokenSymbol, Value: "+"},
				{Typ: TokenIdentifier, Value: "y"},
			},
		},
		{
			"extern sin(a);",
			[]Token{
				{Typ: TokenExtern, Value: "extern"},
				{Typ: TokenIdentifier, Value: "sin"},
				{Typ: TokenSymbol, Value: "("},
				{Typ: TokenIdentifier, Value: "a"},
				{Typ: TokenSymbol, Value: ")"},
				{Typ: TokenSymbol, Value: ";"},
			},
		},
		{
			"x1y2 Def definition externs",
			[]Token{
				{Typ: TokenIdentifier, Value: "x1y2"},
				{Typ: TokenIdentifier, Value: "Def"},
				{Typ: TokenIdentifier, Value: "definition"},
				{Typ: TokenIdentifier, Value: "externs"},
			},
		},
		{
			"42 3.14 .5 5.",
			[]Token{
				{Typ: TokenNumber, Value: "42", Num: 42},
				{Typ: TokenNumber, Value: "3.14", Num: 3.14},
				{Typ: TokenNumber, Value: ".5", Num: 0.5},
				{Typ: TokenNumber, Value: "5.", Num: 5},
			},
		},
		{
			"1.2.3 .. 12abc",
			[]Token{
				{Typ: TokenNumber, Value: "1.2.3", Num: 1.2},
				{Typ: TokenNumber, Value: "..", Num: 0},
				{Typ: TokenNumber, Value: "12", Num: 12},
				{Typ: TokenIdentifier, Value: "abc"},
			},
		},
		{
			"# only a comment",
			nil,
		},
		{
			"1 # comment\r\n+2",
			[]Token{
				{Typ: TokenNumber, Value: "1", Num: 1},
				{Typ: TokenSymbol, Value: "+"},
				{Typ: TokenNumber, Value: "2", Num: 2},
			},
		},
		{
			" \t\r\n\v\f@<*é",
			[]Token{
				{Typ: TokenSymbol, Value: "@"},
				{Typ: TokenSymbol, Value: "<"},
				{Typ: TokenSymbol, Value: "*"},
				{Typ: TokenSymbol, Value: "é"},
			},
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, lexAll(c.data), c.data)
	}
}

func TestLexerCommentIsTransparent(t *testing.T) {
	assert.Equal(t, lexAll("1\n+2"), lexAll("1 # comment\n+2"))
}

func TestLexerEOFIsIdempotent(t *testing.T) {
	l := NewLexerFromReader(strings.NewReader("x"))

	assert.Equal(t, Token{Typ: TokenIdentifier, Value: "x"}, l.Get())
	for i := 0; i < 5; i++ {
		assert.Equal(t, Token{Typ: TokenEOF}, l.Get())
	}
	assert.NoError(t, l.Err())
}

func TestLexerReadError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLexerFromReader(iotest.TimeoutReader(strings.NewReader("abc def")))

	// TimeoutReader fails the second read, the first returns the whole input
	assert.Equal(t, Token{Typ: TokenIdentifier, Value: "abc"}, l.Get())
	assert.Equal(t, Token{Typ: TokenDef, Value: "def"}, l.Get())
	assert.Equal(t, Token{Typ: TokenEOF}, l.Get())
	assert.ErrorIs(t, l.Err(), iotest.ErrTimeout)

	l = NewLexerFromReader(iotest.ErrReader(boom))
	assert.Equal(t, Token{Typ: TokenEOF}, l.Get())
	assert.ErrorIs(t, l.Err(), boom)
}

func TestIsSymbol(t *testing.T) {
	for _, r := range "+-*</@é()" {
		assert.True(t, IsSymbol(r), string(r))
		assert.Equal(t, []Token{{Typ: TokenSymbol, Value: string(r)}}, lexAll(string(r)))
	}

	for _, r := range "aZ09. \t\n#" {
		assert.False(t, IsSymbol(r), "%q", r)
	}
	assert.False(t, IsSymbol(EOF))
}

func TestNewLexerMissingFile(t *testing.T) {
	_, err := NewLexer("testdata/does-not-exist.toy")
	require.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"0":       0,
		"007":     7,
		"1.5":     1.5,
		"1.5.9":   1.5,
		".":       0,
		"...":     0,
		".25.":    0.25,
		"1234567": 1234567,
	}

	for in, expect := range cases {
		assert.Equal(t, expect, parseNumber(in), in)
	}

	assert.True(t, math.IsInf(parseNumber(strings.Repeat("9", 400)), 1))
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		b.StartTimer()

		benchResult = lexAll(data)
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
