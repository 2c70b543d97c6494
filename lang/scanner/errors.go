package scanner

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/alptugp/wacc-compiler/lang/token"
)

// Error represents a scanning or parsing error at a specific position.
type Error struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Pos.Filename != "" || e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is a list of *Error. The zero value is ready to use.
type ErrorList []*Error

// Add appends an Error with the provided position and message to the list.
func (l *ErrorList) Add(pos token.Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

// Sort sorts the list by position, breaking ties by message.
func (l ErrorList) Sort() {
	slices.SortFunc(l, func(a, b *Error) int {
		if c := cmpPos(a.Pos, b.Pos); c != 0 {
			return c
		}
		switch {
		case a.Msg < b.Msg:
			return -1
		case a.Msg > b.Msg:
			return 1
		}
		return 0
	})
}

func cmpPos(a, b token.Position) int {
	switch {
	case a.Filename != b.Filename:
		if a.Filename < b.Filename {
			return -1
		}
		return 1
	case a.Line != b.Line:
		return a.Line - b.Line
	default:
		return a.Column - b.Column
	}
}

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

// PrintError prints err to w, one error per line if err is an ErrorList.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
	} else if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}
