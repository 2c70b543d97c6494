package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/alptugp/wacc-compiler/internal/log"
	"github.com/alptugp/wacc-compiler/lang/compiler"
	"github.com/alptugp/wacc-compiler/lang/parser"
	"github.com/alptugp/wacc-compiler/lang/resolver"
	"github.com/alptugp/wacc-compiler/lang/scanner"
)

// Compile runs the full pipeline on a single source file and writes the
// resulting assembly. The output path defaults to the source file name
// with a .s extension, in the current directory.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if c.Verbose {
		log.LogLevel.Set(log.Debug)
	}
	logger := log.NewLogger(stdio.Stderr)

	file := args[0]
	output := c.Output
	if output == "" {
		base := filepath.Base(file)
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".s"
	}

	compiled, err := CompileFile(ctx, stdio, logger, file)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if err := compiler.Fprint(f, compiled); err != nil {
		f.Close()
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	logger.Debug("assembly written", log.String("path", output))
	return nil
}

// CompileFile runs the scanner, parser, semantic analysis and code
// generation on the source file, printing diagnostics to stdio.Stderr.
// The returned error maps parse failures to exit code 100 and semantic
// failures to 200.
func CompileFile(ctx context.Context, stdio mainer.Stdio, logger *log.Logger, file string) (*compiler.Compiled, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return nil, err
	}

	prog, err := parser.ParseProgram(file, src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return nil, &exitError{code: CodeSyntaxError, err: err}
	}
	logger.Debug("parsed", log.String("file", file), log.Int("funcs", len(prog.Funcs)))

	info, err := resolver.ResolveProgram(ctx, prog)
	if err != nil {
		if list, ok := err.(resolver.ErrorList); ok {
			list.Render(stdio.Stderr, file, src)
		} else {
			fmt.Fprintln(stdio.Stderr, err)
		}
		return nil, &exitError{code: CodeSemanticError, err: err}
	}
	logger.Debug("resolved", log.String("file", file))

	compiled := compiler.CompileProgram(ctx, prog, info)
	logger.Debug("compiled",
		log.Int("instructions", len(compiled.Instrs)),
		log.Int("pool entries", compiled.Pool.Len()))
	return compiled, nil
}
