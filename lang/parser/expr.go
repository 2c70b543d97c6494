package parser

import (
	"math"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/token"
)

func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

var (
	binopPriority = [...]struct{ left, right int }{
		token.PIPEPIPE: {1, 0}, // right associative
		token.ANDAND:   {2, 1}, // right associative
		token.EQEQ:     {3, 3}, token.BANGEQ: {3, 3}, // non-associative
		token.LT: {4, 4}, token.LE: {4, 4}, // non-associative
		token.GT: {4, 4}, token.GE: {4, 4},
		token.PLUS: {5, 5}, token.MINUS: {5, 5},
		token.STAR: {6, 6}, token.SLASH: {6, 6}, token.PERCENT: {6, 6},
	}
	unopPriority = 7
)

func nonAssoc(tok token.Token) bool {
	return binopPriority[tok].left == 3 || binopPriority[tok].left == 4
}

// parses a SubExpr where the binary operator has a priority higher than the
// provided priority (for precedence climbing).
func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr

	if p.tok.IsUnop() {
		kind := p.tok
		pos := p.expect(p.tok)
		if kind == token.MINUS && p.tok == token.INT {
			// fold the minus into the literal so that the most negative
			// value parses
			left = p.parseIntLit(pos, true)
		} else {
			var unop ast.UnaryExpr
			unop.Kind = kind
			unop.OpPos = pos
			unop.Right = p.parseSubExpr(unopPriority)
			left = &unop
		}
	} else {
		left = p.parsePrimaryExpr()
	}

	for p.tok.IsBinop() && binopPriority[p.tok].left > priority {
		var bin ast.BinaryExpr
		bin.Left = left
		bin.Kind = p.tok
		bin.OpPos = p.expect(p.tok)
		bin.Right = p.parseSubExpr(binopPriority[bin.Kind].right)
		left = &bin

		if nonAssoc(bin.Kind) && p.tok.IsBinop() &&
			binopPriority[p.tok].left == binopPriority[bin.Kind].left {
			p.error(p.val.Pos, p.tok.GoString()+" cannot be chained, use parentheses")
		}
	}

	return left
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.INT:
		return p.parseIntLit(p.val.Pos, false)

	case token.TRUE, token.FALSE:
		lit := &ast.BoolLit{Value: p.tok == token.TRUE}
		lit.Start = p.expect(p.tok)
		return lit

	case token.CHAR:
		lit := &ast.CharLit{Value: rune(p.val.Int)}
		lit.Start = p.expect(token.CHAR)
		return lit

	case token.STRING:
		lit := &ast.StrLit{Raw: p.val.Raw, Value: p.val.Str}
		lit.Start = p.expect(token.STRING)
		return lit

	case token.NULL:
		return &ast.NullLit{Start: p.expect(token.NULL)}

	case token.IDENT:
		return p.parseIdentOrArrayElem()

	case token.CALL:
		return p.parseCall()

	case token.LPAREN:
		var expr ast.ParenExpr
		expr.Lparen = p.expect(token.LPAREN)
		expr.Expr = p.parseExpr()
		expr.Rparen = p.expect(token.RPAREN)
		return &expr

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic("unreachable")
	}
}

// parseIntLit parses an integer literal at the current token, negated if
// the leading minus was consumed at pos. The value must fit the 32-bit
// integer type of the target.
func (p *parser) parseIntLit(pos token.Pos, negated bool) *ast.IntLit {
	val := p.val.Int
	litPos := p.val.Pos
	if negated {
		val = -val
	}
	p.expect(token.INT)

	if val < math.MinInt32 || val > math.MaxInt32 {
		p.error(litPos, "integer literal value out of range")
	}
	return &ast.IntLit{Start: pos, Value: int32(val)}
}

// parseIdentOrArrayElem parses an identifier, promoted to an array element
// access if it is followed by one or more bracketed indices.
func (p *parser) parseIdentOrArrayElem() ast.Expr {
	ident := p.parseIdent()
	if p.tok != token.LBRACK {
		return ident
	}

	elem := &ast.ArrayElem{Name: ident}
	for p.tok == token.LBRACK {
		p.expect(token.LBRACK)
		elem.Index = append(elem.Index, p.parseExpr())
		p.expect(token.RBRACK)
	}
	return elem
}

func (p *parser) parseCall() *ast.Call {
	var call ast.Call
	call.Kw = p.expect(token.CALL)
	call.Name = p.parseIdent()
	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		call.Args = append(call.Args, p.parseExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			call.Args = append(call.Args, p.parseExpr())
		}
	}
	call.Rparen = p.expect(token.RPAREN)
	return &call
}

func (p *parser) parseIdent() *ast.Ident {
	var ident ast.Ident
	ident.Name = p.val.Raw
	ident.Start = p.expect(token.IDENT)
	return &ident
}
