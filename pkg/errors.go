package toy

import "fmt"

type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrUnclosedParen
	ErrMalformedArgumentList
	ErrMalformedPrototype
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnclosedParen:
		return "unclosed parenthesis"
	case ErrMalformedArgumentList:
		return "malformed argument list"
	case ErrMalformedPrototype:
		return "malformed prototype"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the only error the Parser returns. Enclosing constructs pass
// it through untouched, so the innermost message is the one reported.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Tok  Token // The offending token, still current when the error is returned
}

func (e *ParseError) Error() string {
	return e.Msg
}

// LoweringError reports a declaration that parsed but cannot be lowered to IR.
type LoweringError struct {
	Decl string
	Msg  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("%s: %s", e.Decl, e.Msg)
}
