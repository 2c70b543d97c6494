package resolver

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// Kind identifies the class of a semantic diagnostic.
type Kind int

// List of semantic diagnostic kinds.
const (
	RedefinedFunction Kind = iota
	RedefinedVariable
	UndefinedVariable
	UndefinedFunction
	TypeMismatch
	IncorrectNumberOfArgs
	ArrayDimensionMismatch
	UnexpectedReturn
)

var kindNames = [...]string{
	RedefinedFunction:      "redefined function",
	RedefinedVariable:      "redefined variable",
	UndefinedVariable:      "undefined variable",
	UndefinedFunction:      "undefined function",
	TypeMismatch:           "type mismatch",
	IncorrectNumberOfArgs:  "incorrect number of arguments",
	ArrayDimensionMismatch: "array dimension mismatch",
	UnexpectedReturn:       "unexpected return",
}

func (k Kind) String() string { return kindNames[k] }

// Error is a structured semantic diagnostic: its kind, the source position
// it was reported at, the type that was found and the set of types that
// would have been acceptable (both optional), and a free-text context.
type Error struct {
	Kind     Kind
	Pos      token.Pos
	Got      types.Type   // may be nil
	Expected []types.Type // may be empty
	Context  string
}

// Error implements the error interface, rendering a one-line message
// without the source excerpt.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Context != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Context)
	}
	if e.Got != nil {
		fmt.Fprintf(&sb, ": got %s", e.Got)
		if len(e.Expected) > 0 {
			sb.WriteString(", expected ")
			for i, t := range e.Expected {
				if i > 0 {
					sb.WriteString(" or ")
				}
				sb.WriteString(t.String())
			}
		}
	}
	return sb.String()
}

// ErrorList is a list of semantic diagnostics. The zero value is ready to
// use.
type ErrorList []*Error

// Error implements the error interface, reporting the first error of the
// list along with the number of remaining ones.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns an error equivalent to the list, which is nil if the list is
// empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Sort sorts the list by source position.
func (l ErrorList) Sort() {
	slices.SortStableFunc(l, func(a, b *Error) int {
		al, ac := a.Pos.LineCol()
		bl, bc := b.Pos.LineCol()
		if al != bl {
			return al - bl
		}
		return ac - bc
	})
}

// Render writes the diagnostics to w, one per line, each followed by the
// offending source line with a caret marking the reported column.
func (l ErrorList) Render(w io.Writer, filename string, src []byte) {
	lines := bytes.Split(src, []byte{'\n'})
	for _, e := range l {
		line, col := e.Pos.LineCol()
		fmt.Fprintf(w, "%s: %s\n", token.MakePosition(filename, e.Pos), e)

		if line < 1 || line > len(lines) {
			continue
		}
		srcLine := strings.TrimRight(string(lines[line-1]), "\r")
		fmt.Fprintf(w, "\t%s\n", srcLine)
		if col >= 1 && col <= len(srcLine)+1 {
			fmt.Fprintf(w, "\t%s^\n", strings.Repeat(" ", col-1))
		}
	}
}
