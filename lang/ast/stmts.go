package ast

import (
	"fmt"

	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

type (
	// SkipStat represents the no-op skip statement.
	SkipStat struct {
		Kw token.Pos
	}

	// DeclStat represents a variable declaration with its initializer,
	// e.g. int x = 3.
	DeclStat struct {
		Start token.Pos // position of the declared type
		Type  types.Type
		Name  *Ident
		Value RValue
	}

	// AssignStat represents an assignment to a left-value, e.g. x[0] = 3.
	AssignStat struct {
		Target LValue
		Assign token.Pos
		Value  RValue
	}

	// ReadStat represents a read statement, targeting a left-value.
	ReadStat struct {
		Kw     token.Pos
		Target LValue
	}

	// CommandStat represents the single-expression keyword statements:
	// free, return, exit, print and println. Kind discriminates between
	// them.
	CommandStat struct {
		Kind token.Token
		Kw   token.Pos
		Expr Expr
	}

	// IfStat represents an if statement. Both branches are mandatory in the
	// grammar.
	IfStat struct {
		If   token.Pos
		Cond Expr
		Then *Block
		Else *Block
		Fi   token.Pos
	}

	// WhileStat represents a while loop.
	WhileStat struct {
		While token.Pos
		Cond  Expr
		Body  *Block
		Done  token.Pos
	}

	// ScopeStat represents a bare begin..end scope block.
	ScopeStat struct {
		Begin token.Pos
		Body  *Block
		End   token.Pos
	}
)

func (n *SkipStat) Format(f fmt.State, verb rune) { format(f, verb, n, "skip", nil) }
func (n *SkipStat) Pos() token.Pos                { return n.Kw }
func (n *SkipStat) Walk(v Visitor)                {}
func (n *SkipStat) stat()                         {}

func (n *DeclStat) Format(f fmt.State, verb rune) {
	format(f, verb, n, "decl "+n.Name.Name+" "+n.Type.String(), nil)
}
func (n *DeclStat) Pos() token.Pos { return n.Start }
func (n *DeclStat) Walk(v Visitor) {
	Walk(v, n.Value)
}
func (n *DeclStat) stat() {}

func (n *AssignStat) Format(f fmt.State, verb rune) { format(f, verb, n, "assign", nil) }
func (n *AssignStat) Pos() token.Pos                { return n.Target.Pos() }
func (n *AssignStat) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}
func (n *AssignStat) stat() {}

func (n *ReadStat) Format(f fmt.State, verb rune) { format(f, verb, n, "read", nil) }
func (n *ReadStat) Pos() token.Pos                { return n.Kw }
func (n *ReadStat) Walk(v Visitor) {
	Walk(v, n.Target)
}
func (n *ReadStat) stat() {}

func (n *CommandStat) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Kind.String(), nil)
}
func (n *CommandStat) Pos() token.Pos { return n.Kw }
func (n *CommandStat) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *CommandStat) stat() {}

func (n *IfStat) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfStat) Pos() token.Pos                { return n.If }
func (n *IfStat) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	Walk(v, n.Else)
}
func (n *IfStat) stat() {}

func (n *WhileStat) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStat) Pos() token.Pos                { return n.While }
func (n *WhileStat) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStat) stat() {}

func (n *ScopeStat) Format(f fmt.State, verb rune) { format(f, verb, n, "scope", nil) }
func (n *ScopeStat) Pos() token.Pos                { return n.Begin }
func (n *ScopeStat) Walk(v Visitor) {
	Walk(v, n.Body)
}
func (n *ScopeStat) stat() {}
