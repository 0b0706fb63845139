package toy

import (
	"strconv"
	"strings"
)

// AnonymousName is the prototype name given to bare top-level expressions.
const AnonymousName = "__anon_expr"

type AST struct {
	Filename string
	Decls    []Decl
	Errors   []error
}

// Expr is implemented by NumberExpr, VariableExpr, BinaryExpr and CallExpr
// only.
type Expr interface {
	String() string
	exprNode()
}

// Decl is a top-level construct: a *Function (definition or anonymous
// top-level expression) or a *Prototype (extern declaration).
type Decl interface {
	String() string
	declNode()
}

type NumberExpr struct {
	Value float64
}

type VariableExpr struct {
	Name string
}

type BinaryExpr struct {
	Op  rune
	LHS Expr
	RHS Expr
}

type CallExpr struct {
	Callee string
	Args   []Expr
}

type Prototype struct {
	Name   string
	Params []string
}

type Function struct {
	Proto *Prototype
	Body  Expr
}

func (*NumberExpr) exprNode()   {}
func (*VariableExpr) exprNode() {}
func (*BinaryExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}

func (*Prototype) declNode() {}
func (*Function) declNode()  {}

func (e *NumberExpr) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e *VariableExpr) String() string {
	return e.Name
}

func (e *BinaryExpr) String() string {
	return "(" + string(e.Op) + " " + e.LHS.String() + " " + e.RHS.String() + ")"
}

func (e *CallExpr) String() string {
	var str strings.Builder
	str.WriteString("(call ")
	str.WriteString(e.Callee)

	for _, arg := range e.Args {
		str.WriteByte(' ')
		str.WriteString(arg.String())
	}
	str.WriteByte(')')

	return str.String()
}

// String renders the prototype on its own, as an extern declaration.
func (p *Prototype) String() string {
	return "(extern " + p.signature() + ")"
}

func (p *Prototype) signature() string {
	return "(" + strings.Join(append([]string{p.Name}, p.Params...), " ") + ")"
}

func (f *Function) String() string {
	if f.IsAnonymous() {
		return f.Body.String()
	}

	return "(def " + f.Proto.signature() + " " + f.Body.String() + ")"
}

// IsAnonymous reports whether the function wraps a bare top-level expression.
func (f *Function) IsAnonymous() bool {
	return f.Proto.Name == AnonymousName && len(f.Proto.Params) == 0
}
