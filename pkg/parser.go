package toy

import "fmt"

type Parser struct {
	filename  string
	tokenizer Tokenizer
	prec      PrecedenceTable
	cur       Token
}

// NewParser builds a parser over tokenizer. A nil table selects
// DefaultPrecedence. The current token is undefined until Next is called.
func NewParser(tokenizer Tokenizer, prec PrecedenceTable) *Parser {
	if prec == nil {
		prec = DefaultPrecedence()
	}

	return &Parser{
		filename:  tokenizer.GetFilename(),
		tokenizer: tokenizer,
		prec:      prec,
	}
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Current returns the token the parser is looking at.
func (p *Parser) Current() Token {
	return p.cur
}

// Next reads another token into the current slot and returns it.
func (p *Parser) Next() Token {
	p.cur = p.tokenizer.Get()
	return p.cur
}

func (p *Parser) check(r rune) bool {
	return p.cur.Is(r)
}

func (p *Parser) errorf(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Tok:  p.cur,
	}
}

// ParsePrimary parses
//
//	primary ::= identifierexpr | numberexpr | parenexpr
func (p *Parser) ParsePrimary() (Expr, error) {
	switch tok := p.cur; {
	case tok.Typ == TokenIdentifier:
		return p.ParseIdentifierExpr()
	case tok.Typ == TokenNumber:
		return p.numberExpr(), nil
	case tok.Is('('):
		return p.ParseParenExpr()
	default:
		return nil, p.errorf(ErrUnexpectedToken, "unknown token when expecting an expression")
	}
}

func (p *Parser) numberExpr() Expr {
	expr := &NumberExpr{Value: p.cur.Num}
	p.Next()

	return expr
}

// ParseParenExpr parses '(' expression ')'. The parentheses leave no node
// behind.
func (p *Parser) ParseParenExpr() (Expr, error) {
	p.Next() // Skip (

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.check(')') {
		return nil, p.errorf(ErrUnclosedParen, "expected ')'")
	}
	p.Next()

	return expr, nil
}

// ParseIdentifierExpr parses
//
//	identifierexpr ::= identifier | identifier '(' (expression (',' expression)*)? ')'
func (p *Parser) ParseIdentifierExpr() (Expr, error) {
	name := p.cur.Value
	p.Next()

	if !p.check('(') {
		return &VariableExpr{Name: name}, nil
	}
	p.Next() // Skip (

	var args []Expr
	if !p.check(')') {
		for {
			if p.cur.Typ == TokenEOF {
				return nil, p.errorf(ErrMalformedArgumentList, "unterminated argument list in call to '%s'", name)
			}

			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.check(')') {
				break
			}

			if !p.check(',') {
				return nil, p.errorf(ErrMalformedArgumentList, "Expected ')' or ',' in argument list")
			}
			p.Next()
		}
	}
	p.Next() // Skip )

	return &CallExpr{
		Callee: name,
		Args:   args,
	}, nil
}

// ParseBinOpRHS folds operators of precedence >= minPrec onto lhs. Equal
// precedences associate to the left; a tighter operator following the
// right-hand side is absorbed into it first.
func (p *Parser) ParseBinOpRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		tokPrec := p.prec.Lookup(p.cur)
		if tokPrec < minPrec {
			return lhs, nil
		}

		op := []rune(p.cur.Value)[0]
		p.Next()

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		if nextPrec := p.prec.Lookup(p.cur); tokPrec < nextPrec {
			rhs, err = p.ParseBinOpRHS(tokPrec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{
			Op:  op,
			LHS: lhs,
			RHS: rhs,
		}
	}
}

// ParseExpression parses primary binoprhs.
func (p *Parser) ParseExpression() (Expr, error) {
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}

	return p.ParseBinOpRHS(0, lhs)
}

// ParsePrototype parses
//
//	prototype ::= identifier '(' identifier* ')'
func (p *Parser) ParsePrototype() (*Prototype, error) {
	if p.cur.Typ != TokenIdentifier {
		return nil, p.errorf(ErrMalformedPrototype, "Expected function name in prototype")
	}
	name := p.cur.Value
	p.Next()

	if !p.check('(') {
		return nil, p.errorf(ErrMalformedPrototype, "Expected '(' in prototype")
	}

	var params []string
	for p.Next().Typ == TokenIdentifier {
		params = append(params, p.cur.Value)
	}

	if !p.check(')') {
		return nil, p.errorf(ErrMalformedPrototype, "Expected ')' in prototype")
	}
	p.Next()

	return &Prototype{
		Name:   name,
		Params: params,
	}, nil
}

// ParseDefinition parses 'def' prototype expression.
func (p *Parser) ParseDefinition() (*Function, error) {
	p.Next() // Skip def

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{
		Proto: proto,
		Body:  body,
	}, nil
}

// ParseExtern parses 'extern' prototype.
func (p *Parser) ParseExtern() (*Prototype, error) {
	p.Next() // Skip extern

	return p.ParsePrototype()
}

// ParseTopLevelExpr wraps a bare expression in a parameterless function named
// AnonymousName.
func (p *Parser) ParseTopLevelExpr() (*Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{
		Proto: &Prototype{Name: AnonymousName},
		Body:  body,
	}, nil
}
