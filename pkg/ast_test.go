package toy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclString(t *testing.T) {
	cases := []struct {
		decl   Decl
		expect string
	}{
		{
			&Function{
				Proto: &Prototype{Name: "foo", Params: []string{"x", "y"}},
				Body:  bin('+', variable("x"), call("foo", variable("y"), num(4.5))),
			},
			"(def (foo x y) (+ x (call foo y 4.5)))",
		},
		{
			&Function{
				Proto: &Prototype{Name: AnonymousName},
				Body:  bin('<', num(1), bin('*', num(2), num(3))),
			},
			"(< 1 (* 2 3))",
		},
		{
			&Prototype{Name: "sin", Params: []string{"a"}},
			"(extern (sin a))",
		},
		{
			&Prototype{Name: "rand"},
			"(extern (rand))",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.decl.String())
	}
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, (&Function{Proto: &Prototype{Name: AnonymousName}, Body: num(1)}).IsAnonymous())
	assert.False(t, (&Function{Proto: &Prototype{Name: AnonymousName, Params: []string{"x"}}, Body: num(1)}).IsAnonymous())
	assert.False(t, (&Function{Proto: &Prototype{Name: "f"}, Body: num(1)}).IsAnonymous())
}
