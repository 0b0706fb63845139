package toy

import (
	"fmt"
	"strings"
)

// RecoveryMode decides how far the driver skips after a construct fails to
// parse.
type RecoveryMode int

const (
	// RecoverSkipToken drops the offending token and resumes at top level.
	RecoverSkipToken RecoveryMode = iota
	// RecoverSync drops tokens until ';', 'def', 'extern' or end of input.
	RecoverSync
)

func ParseRecoveryMode(s string) (RecoveryMode, error) {
	switch strings.ToLower(s) {
	case "", "token":
		return RecoverSkipToken, nil
	case "sync":
		return RecoverSync, nil
	default:
		return 0, fmt.Errorf("unknown recovery mode %q (want token or sync)", s)
	}
}

func (m RecoveryMode) String() string {
	if m == RecoverSync {
		return "sync"
	}

	return "token"
}

type Driver struct {
	parser   *Parser
	diag     *Diagnostics
	recovery RecoveryMode
	emitter  *Emitter
	dumpAST  bool
}

type DriverOption func(d *Driver)

func WithRecovery(mode RecoveryMode) DriverOption {
	return func(d *Driver) {
		d.recovery = mode
	}
}

// WithEmitter lowers every parsed declaration and prints its IR.
func WithEmitter(e *Emitter) DriverOption {
	return func(d *Driver) {
		d.emitter = e
	}
}

// WithDumpAST prints every parsed declaration as an S-expression.
func WithDumpAST() DriverOption {
	return func(d *Driver) {
		d.dumpAST = true
	}
}

func NewDriver(parser *Parser, diag *Diagnostics, opts ...DriverOption) *Driver {
	d := &Driver{
		parser: parser,
		diag:   diag,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run parses top-level constructs until the end of input. Failures are
// reported and collected, they never stop the loop.
func (d *Driver) Run() *AST {
	ast := &AST{
		Filename: d.parser.GetFilename(),
	}

	d.diag.Prompt()
	d.parser.Next()

	for {
		switch tok := d.parser.Current(); {
		case tok.Typ == TokenEOF:
			return ast
		case tok.Is(';'): // Ignore top-level semicolons
			d.parser.Next()
		case tok.Typ == TokenDef:
			d.handle(ast, "Parsed a function definition.", func() (Decl, error) {
				return d.parser.ParseDefinition()
			})
		case tok.Typ == TokenExtern:
			d.handle(ast, "Parsed an extern", func() (Decl, error) {
				return d.parser.ParseExtern()
			})
		default:
			d.handle(ast, "Parsed a top-level expr", func() (Decl, error) {
				return d.parser.ParseTopLevelExpr()
			})
		}

		d.diag.Prompt()
	}
}

func (d *Driver) handle(ast *AST, status string, parse func() (Decl, error)) {
	decl, err := parse()
	if err != nil {
		d.diag.Error(err)
		ast.Errors = append(ast.Errors, err)
		d.recover()

		return
	}

	d.diag.Status(status)
	ast.Decls = append(ast.Decls, decl)

	if d.dumpAST {
		d.diag.Dump(decl.String())
	}

	if d.emitter != nil {
		out, err := d.emitter.Emit(decl)
		if err != nil {
			d.diag.Error(err)
			ast.Errors = append(ast.Errors, err)

			return
		}

		d.diag.Dump(out)
	}
}

func (d *Driver) recover() {
	if d.recovery == RecoverSkipToken {
		d.parser.Next()
		return
	}

	for tok := d.parser.Current(); !isBoundary(tok); tok = d.parser.Next() {
	}
}

func isBoundary(tok Token) bool {
	return tok.Typ == TokenEOF || tok.Typ == TokenDef || tok.Typ == TokenExtern || tok.Is(';')
}
