// Package ast defines the types to represent the abstract syntax tree (AST)
// of the WACC language. Every node records the position of its first
// consumed token; only synthesized nodes may carry an unknown position.
//
// A handful of nodes inhabit more than one syntactic role: Ident and
// ArrayElem are both expressions and left-values, PairElem is both a
// left-value and a right-value, and every expression is a right-value.
// Those roles are modelled with the Expr, LValue and RValue interfaces.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so they can print a
	// description of themselves. The only supported verbs are 'v' and 's'.
	// The '#' flag can be used to print count information about children
	// nodes. A width can be set to define the number of runes to print for
	// the node description - by default, that width is padded with spaces
	// on the left if the description is shorter, otherwise it is truncated
	// to that width. The '-' flag can be used to pad with spaces on the
	// right instead, and the '+' flag can be used to prevent padding
	// altogether - it only truncates if longer.
	fmt.Formatter

	// Pos reports the starting position of the node.
	Pos() token.Pos

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Stat represents a statement in the AST.
type Stat interface {
	Node
	stat()
}

// Expr represents an expression in the AST. Every expression can also be
// used as a right-value.
type Expr interface {
	Node
	expr()
	rvalue()
}

// LValue represents an assignment or read target: an identifier, an array
// element or a pair element.
type LValue interface {
	Node
	lvalue()
}

// RValue represents anything that may appear on the right-hand side of a
// declaration or assignment.
type RValue interface {
	Node
	rvalue()
}

type (
	// Program is the root node: the functions followed by the program body,
	// delimited by the begin and end keywords.
	Program struct {
		Begin token.Pos
		Funcs []*Func
		Body  *Block
		End   token.Pos
	}

	// Func represents a function definition.
	Func struct {
		Start  token.Pos // position of the return type
		Ret    types.Type
		Name   *Ident
		Params []*Param
		Body   *Block
		End    token.Pos
	}

	// Param represents a single function parameter.
	Param struct {
		Start token.Pos // position of the parameter type
		Type  types.Type
		Name  *Ident
	}

	// Block represents a sequence of semicolon-separated statements. Each
	// block introduces a new scope in the semantic analysis.
	Block struct {
		Start token.Pos
		End   token.Pos
		Stats []Stat
	}
)

func (n *Program) Format(f fmt.State, verb rune) {
	format(f, verb, n, "program", map[string]int{"funcs": len(n.Funcs)})
}
func (n *Program) Pos() token.Pos { return n.Begin }
func (n *Program) Walk(v Visitor) {
	for _, fn := range n.Funcs {
		Walk(v, fn)
	}
	Walk(v, n.Body)
}

func (n *Func) Format(f fmt.State, verb rune) {
	format(f, verb, n, "func "+n.Name.Name+" "+n.Ret.String(), map[string]int{"params": len(n.Params)})
}
func (n *Func) Pos() token.Pos { return n.Start }
func (n *Func) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}

func (n *Param) Format(f fmt.State, verb rune) {
	format(f, verb, n, "param "+n.Name.Name+" "+n.Type.String(), nil)
}
func (n *Param) Pos() token.Pos { return n.Start }
func (n *Param) Walk(v Visitor) {}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stats": len(n.Stats)})
}
func (n *Block) Pos() token.Pos { return n.Start }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stats {
		Walk(v, s)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	// replace tabs and newlines with the corresponding unicode key
	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
