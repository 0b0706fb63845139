package toy

// PrecedenceTable maps a binary operator character to its precedence. Higher
// binds tighter. Characters that are missing, or mapped to a value <= 0, are
// not binary operators.
type PrecedenceTable map[rune]int

// DefaultPrecedence returns a fresh copy of the standard operator table.
func DefaultPrecedence() PrecedenceTable {
	return PrecedenceTable{
		'<': 10,
		'+': 20,
		'-': 20,
		'*': 40, // highest
	}
}

// Lookup returns the precedence of tok, or -1 if tok is not a declared binary
// operator.
func (t PrecedenceTable) Lookup(tok Token) int {
	if tok.Typ != TokenSymbol {
		return -1
	}

	r := []rune(tok.Value)
	if len(r) != 1 {
		return -1
	}

	if prec := t[r[0]]; prec > 0 {
		return prec
	}

	return -1
}
