package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/alptugp/wacc-compiler/lang/parser"
	"github.com/alptugp/wacc-compiler/lang/resolver"
	"github.com/alptugp/wacc-compiler/lang/scanner"
)

// Check runs the parser and the semantic analysis on the source files and
// reports diagnostics, without generating code.
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var firstErr error
	for _, file := range args {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		prog, err := parser.ParseProgram(file, src)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = &exitError{code: CodeSyntaxError, err: err}
			}
			continue
		}

		if _, err := resolver.ResolveProgram(ctx, prog); err != nil {
			if list, ok := err.(resolver.ErrorList); ok {
				list.Render(stdio.Stderr, file, src)
			} else {
				fmt.Fprintln(stdio.Stderr, err)
			}
			if firstErr == nil {
				firstErr = &exitError{code: CodeSemanticError, err: err}
			}
		}
	}
	return firstErr
}
