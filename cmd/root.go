package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.toylang.dev/internal/config"
	toy "go.toylang.dev/pkg"
)

type options struct {
	cfgFile  string
	recovery string
	emitIR   bool
	dumpAST  bool
	quiet    bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "toyc [file]",
		Short: "Parse toy language source into an AST",
		Long: `toyc reads function definitions, extern declarations and top-level
expressions from a file, or from standard input when no file is given,
and reports each construct as it is parsed.

  ready> def foo(x y) x+foo(y, 4.0);
  ready> extern sin(a);`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts, args)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "toyc: %v\n", err)
			}

			return err
		},
	}

	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (.toml or .yaml)")
	cmd.Flags().StringVar(&opts.recovery, "recovery", "", "error recovery: token or sync")
	cmd.Flags().BoolVar(&opts.emitIR, "emit-ir", false, "print LLVM IR for each parsed construct")
	cmd.Flags().BoolVar(&opts.dumpAST, "dump-ast", false, "print each parsed construct as an S-expression")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the prompt")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if opts.cfgFile != "" {
		loaded, err := config.Load(opts.cfgFile)
		if err != nil {
			return err
		}

		cfg = loaded
		logger.Debug("loaded config", "path", opts.cfgFile, "operators", len(cfg.Precedence))
	}

	if opts.recovery != "" {
		cfg.Recovery = opts.recovery
	}

	if opts.quiet {
		cfg.Prompt = ""
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	lexer, err := openLexer(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	defer lexer.Close()
	logger.Debug("reading source", "file", lexer.GetFilename(), "recovery", cfg.Recovery)

	driverOpts := []toy.DriverOption{toy.WithRecovery(cfg.RecoveryMode())}
	if opts.dumpAST {
		driverOpts = append(driverOpts, toy.WithDumpAST())
	}
	if opts.emitIR {
		driverOpts = append(driverOpts, toy.WithEmitter(toy.NewEmitter()))
	}

	parser := toy.NewParser(lexer, cfg.PrecedenceTable())
	diag := toy.NewDiagnostics(cmd.ErrOrStderr(), cfg.Prompt)

	ast := toy.NewDriver(parser, diag, driverOpts...).Run()
	logger.Debug("done", "decls", len(ast.Decls), "errors", len(ast.Errors))

	if err := lexer.Err(); err != nil {
		return errors.Wrap(err, "reading source")
	}

	return nil
}

func openLexer(stdin io.Reader, args []string) (*toy.Lexer, error) {
	if len(args) == 0 || args[0] == "-" {
		return toy.NewLexerFromReader(stdin), nil
	}

	lexer, err := toy.NewLexer(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}

	return lexer, nil
}
