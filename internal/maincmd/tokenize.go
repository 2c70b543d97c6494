package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/alptugp/wacc-compiler/lang/scanner"
	"github.com/alptugp/wacc-compiler/lang/token"
)

// Tokenize executes the scanner phase and prints the resulting tokens.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, token.PosLong, args...)
}

// TokenizeFiles tokenizes the source files and prints one token per line
// to stdio.Stdout, and any error to stdio.Stderr.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	toksByFile, err := scanner.ScanFiles(ctx, files...)
	for _, toks := range toksByFile {
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s: %s", token.FormatPos(posMode, tok.Value.Pos), tok.Token)
			if lit := tok.Token.Literal(tok.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return &exitError{code: CodeSyntaxError, err: err}
	}
	return nil
}
