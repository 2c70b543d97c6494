package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/parser"
	"github.com/alptugp/wacc-compiler/lang/scanner"
	"github.com/alptugp/wacc-compiler/lang/token"
)

// Parse executes the parser phase and prints the resulting ASTs.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, token.PosLong, "%v", args...)
}

// ParseFiles parses the source files and pretty-prints each resulting AST
// to stdio.Stdout, and any error to stdio.Stderr.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, nodeFmt string, files ...string) error {
	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
	}

	progs, err := parser.ParseFiles(ctx, files...)
	for _, prog := range progs {
		if perr := printer.Print(prog); perr != nil {
			fmt.Fprintln(stdio.Stderr, perr)
			return perr
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return &exitError{code: CodeSyntaxError, err: err}
	}
	return nil
}
