package toy

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// Emitter lowers parsed declarations into a single LLVM module. Every value in
// the language is a double.
type Emitter struct {
	mod    *ir.Module
	funcs  map[string]*ir.Func
	block  *ir.Block
	params *ValueLookup
}

func NewEmitter() *Emitter {
	return &Emitter{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}
}

// Emit lowers decl and returns its textual IR. Anonymous top-level functions
// are removed from the module once rendered.
func (e *Emitter) Emit(decl Decl) (string, error) {
	switch d := decl.(type) {
	case *Prototype:
		f, err := e.declare(d)
		if err != nil {
			return "", err
		}

		return f.LLString(), nil
	case *Function:
		f, err := e.function(d)
		if err != nil {
			return "", err
		}

		out := f.LLString()
		if d.IsAnonymous() {
			e.remove(f)
		}

		return out, nil
	default:
		return "", fmt.Errorf("unexpected declaration %T", decl)
	}
}

// Module renders every function currently held by the emitter.
func (e *Emitter) Module() string {
	return e.mod.String()
}

func (e *Emitter) declare(proto *Prototype) (*ir.Func, error) {
	if f, ok := e.funcs[proto.Name]; ok {
		if len(f.Params) != len(proto.Params) {
			return nil, &LoweringError{proto.Name, "redefinition of function with different # args"}
		}

		return f, nil
	}

	params := make([]*ir.Param, 0, len(proto.Params))
	for _, name := range uniqueNames(proto.Params) {
		params = append(params, ir.NewParam(name, types.Double))
	}

	f := e.mod.NewFunc(proto.Name, types.Double, params...)
	e.funcs[proto.Name] = f

	return f, nil
}

func (e *Emitter) function(fn *Function) (*ir.Func, error) {
	_, existed := e.funcs[fn.Proto.Name]

	f, err := e.declare(fn.Proto)
	if err != nil {
		return nil, err
	}

	if len(f.Blocks) != 0 {
		return nil, &LoweringError{fn.Proto.Name, "function cannot be redefined"}
	}

	// The extern's parameter names give way to the definition's
	prev := make([]string, len(f.Params))
	for i, name := range uniqueNames(fn.Proto.Params) {
		prev[i] = f.Params[i].Name()
		f.Params[i].SetName(name)
	}

	e.block = f.NewBlock("entry")
	e.params = NewValueLookup()
	for i, name := range fn.Proto.Params {
		// A repeated name refers to its first parameter
		if _, ok := e.params.Get(name); !ok {
			e.params.Set(name, f.Params[i])
		}
	}

	defer func() {
		e.block = nil
		e.params = nil
	}()

	ret, err := e.expr(fn.Body)
	if err == nil {
		e.block.NewRet(ret)
		err = f.AssignIDs()
	}

	if err != nil {
		// Drop the half-built body so a later definition can retry
		f.Blocks = nil
		for i, name := range prev {
			f.Params[i].SetName(name)
		}

		if !existed {
			e.remove(f)
		}

		return nil, err
	}

	return f, nil
}

func (e *Emitter) expr(expr Expr) (value.Value, error) {
	switch x := expr.(type) {
	case *NumberExpr:
		return constant.NewFloat(types.Double, x.Value), nil
	case *VariableExpr:
		if v, ok := e.params.Get(x.Name); ok {
			return v, nil
		}

		return nil, &LoweringError{x.Name, "unknown variable name"}
	case *BinaryExpr:
		return e.binaryExpr(x)
	case *CallExpr:
		return e.callExpr(x)
	default:
		return nil, fmt.Errorf("unexpected expression %T", expr)
	}
}

func (e *Emitter) binaryExpr(expr *BinaryExpr) (value.Value, error) {
	lhs, err := e.expr(expr.LHS)
	if err != nil {
		return nil, err
	}

	rhs, err := e.expr(expr.RHS)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case '+':
		return e.block.NewFAdd(lhs, rhs), nil
	case '-':
		return e.block.NewFSub(lhs, rhs), nil
	case '*':
		return e.block.NewFMul(lhs, rhs), nil
	case '<':
		cmp := e.block.NewFCmp(enum.FPredULT, lhs, rhs)
		// Booleans are 0.0 or 1.0
		return e.block.NewUIToFP(cmp, types.Double), nil
	default:
		return nil, &LoweringError{string(expr.Op), "invalid binary operator"}
	}
}

func (e *Emitter) callExpr(expr *CallExpr) (value.Value, error) {
	callee, ok := e.funcs[expr.Callee]
	if !ok {
		return nil, &LoweringError{expr.Callee, "unknown function referenced"}
	}

	if len(callee.Params) != len(expr.Args) {
		return nil, &LoweringError{expr.Callee, "incorrect # arguments passed"}
	}

	args := make([]value.Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := e.expr(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return e.block.NewCall(callee, args...), nil
}

// uniqueNames suffixes repeated parameter names with a counter (x, x1, x2)
// since LLVM rejects two locals with the same name.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))

	for i, name := range names {
		unique := name
		for n := 1; seen[unique]; n++ {
			unique = fmt.Sprintf("%s%d", name, n)
		}

		seen[unique] = true
		out[i] = unique
	}

	return out
}

func (e *Emitter) remove(f *ir.Func) {
	delete(e.funcs, f.Name())

	for i, g := range e.mod.Funcs {
		if g == f {
			e.mod.Funcs = append(e.mod.Funcs[:i], e.mod.Funcs[i+1:]...)
			break
		}
	}
}
