package ast

import (
	"fmt"
	"strconv"

	"github.com/alptugp/wacc-compiler/lang/token"
)

type (
	// IntLit represents an integer literal. The value always fits the
	// 32-bit target integer type; the parser folds a leading minus into the
	// literal so the most negative value is representable.
	IntLit struct {
		Start token.Pos
		Value int32
	}

	// BoolLit represents the true and false literals.
	BoolLit struct {
		Start token.Pos
		Value bool
	}

	// CharLit represents a character literal, with escapes resolved.
	CharLit struct {
		Start token.Pos
		Value rune
	}

	// StrLit represents a string literal. Raw is the uninterpreted source
	// text, Value the decoded content with escapes resolved.
	StrLit struct {
		Start token.Pos
		Raw   string
		Value string
	}

	// NullLit represents the null pair literal.
	NullLit struct {
		Start token.Pos
	}

	// Ident represents an identifier, usable as an expression and as a
	// left-value.
	Ident struct {
		Start token.Pos
		Name  string
	}

	// ArrayElem represents an array element access with one or more index
	// expressions, e.g. a[i][j]. Usable as an expression and as a
	// left-value. Index is never empty.
	ArrayElem struct {
		Name  *Ident
		Index []Expr
	}

	// ParenExpr represents an expression wrapped in parentheses.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// UnaryExpr represents a unary operator expression: !, unary minus,
	// len, ord or chr.
	UnaryExpr struct {
		Kind  token.Token
		OpPos token.Pos
		Right Expr
	}

	// BinaryExpr represents a binary operator expression.
	BinaryExpr struct {
		Left  Expr
		Kind  token.Token
		OpPos token.Pos
		Right Expr
	}

	// ArrayLit represents an array literal right-value, e.g. [1, 2, 3].
	ArrayLit struct {
		Lbrack token.Pos
		Elems  []Expr
		Rbrack token.Pos
	}

	// NewPair represents a newpair(fst, snd) right-value.
	NewPair struct {
		Kw       token.Pos
		Fst, Snd Expr
	}

	// Call represents a function call right-value, e.g. call f(1, 2).
	Call struct {
		Kw     token.Pos
		Name   *Ident
		Args   []Expr
		Rparen token.Pos
	}

	// PairElem represents a fst or snd pair element access, usable as a
	// left-value and as a right-value. Kind is FST or SND.
	PairElem struct {
		Kind    token.Token
		Kw      token.Pos
		Operand LValue
	}
)

func (n *IntLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "int "+strconv.FormatInt(int64(n.Value), 10), nil)
}
func (n *IntLit) Pos() token.Pos { return n.Start }
func (n *IntLit) Walk(v Visitor) {}
func (n *IntLit) expr()          {}
func (n *IntLit) rvalue()        {}

func (n *BoolLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "bool "+strconv.FormatBool(n.Value), nil)
}
func (n *BoolLit) Pos() token.Pos { return n.Start }
func (n *BoolLit) Walk(v Visitor) {}
func (n *BoolLit) expr()          {}
func (n *BoolLit) rvalue()        {}

func (n *CharLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "char "+strconv.QuoteRune(n.Value), nil)
}
func (n *CharLit) Pos() token.Pos { return n.Start }
func (n *CharLit) Walk(v Visitor) {}
func (n *CharLit) expr()          {}
func (n *CharLit) rvalue()        {}

func (n *StrLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "string "+n.Raw, nil)
}
func (n *StrLit) Pos() token.Pos { return n.Start }
func (n *StrLit) Walk(v Visitor) {}
func (n *StrLit) expr()          {}
func (n *StrLit) rvalue()        {}

func (n *NullLit) Format(f fmt.State, verb rune) { format(f, verb, n, "null", nil) }
func (n *NullLit) Pos() token.Pos                { return n.Start }
func (n *NullLit) Walk(v Visitor)                {}
func (n *NullLit) expr()                         {}
func (n *NullLit) rvalue()                       {}

func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Ident) Pos() token.Pos                { return n.Start }
func (n *Ident) Walk(v Visitor)                {}
func (n *Ident) expr()                         {}
func (n *Ident) lvalue()                       {}
func (n *Ident) rvalue()                       {}

func (n *ArrayElem) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name.Name+"[..]", map[string]int{"indices": len(n.Index)})
}
func (n *ArrayElem) Pos() token.Pos { return n.Name.Start }
func (n *ArrayElem) Walk(v Visitor) {
	for _, ix := range n.Index {
		Walk(v, ix)
	}
}
func (n *ArrayElem) expr()   {}
func (n *ArrayElem) lvalue() {}
func (n *ArrayElem) rvalue() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *ParenExpr) Pos() token.Pos                { return n.Lparen }
func (n *ParenExpr) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *ParenExpr) expr()   {}
func (n *ParenExpr) rvalue() {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Kind.GoString(), nil)
}
func (n *UnaryExpr) Pos() token.Pos { return n.OpPos }
func (n *UnaryExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *UnaryExpr) expr()   {}
func (n *UnaryExpr) rvalue() {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Kind.GoString(), nil)
}
func (n *BinaryExpr) Pos() token.Pos { return n.Left.Pos() }
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr()   {}
func (n *BinaryExpr) rvalue() {}

func (n *ArrayLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array", map[string]int{"elems": len(n.Elems)})
}
func (n *ArrayLit) Pos() token.Pos { return n.Lbrack }
func (n *ArrayLit) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *ArrayLit) rvalue() {}

func (n *NewPair) Format(f fmt.State, verb rune) { format(f, verb, n, "newpair", nil) }
func (n *NewPair) Pos() token.Pos                { return n.Kw }
func (n *NewPair) Walk(v Visitor) {
	Walk(v, n.Fst)
	Walk(v, n.Snd)
}
func (n *NewPair) rvalue() {}

func (n *Call) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Name.Name, map[string]int{"args": len(n.Args)})
}
func (n *Call) Pos() token.Pos { return n.Kw }
func (n *Call) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *Call) rvalue() {}
func (n *Call) expr()   {}

func (n *PairElem) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Kind.String(), nil)
}
func (n *PairElem) Pos() token.Pos { return n.Kw }
func (n *PairElem) Walk(v Visitor) {
	Walk(v, n.Operand)
}
func (n *PairElem) lvalue() {}
func (n *PairElem) rvalue() {}
