package parser

import (
	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

func (p *parser) parseProgram() *ast.Program {
	var prog ast.Program
	prog.Begin = p.expect(token.BEGIN)
	prog.Funcs = p.parseFuncs()
	prog.Body = p.parseBlock(token.END)
	prog.End = p.expect(token.END)
	p.expect(token.EOF)
	return &prog
}

// parseFuncs parses the function definitions preceding the program body.
// A function and a leading declaration statement both start with a type,
// so each candidate is parsed speculatively up to the opening parenthesis
// that commits it to being a function.
func (p *parser) parseFuncs() []*ast.Func {
	var funcs []*ast.Func
	for p.tok.IsTypeStart() {
		var (
			typ  types.Type
			pos  token.Pos
			name *ast.Ident
		)
		ok := p.attempt(func() bool {
			typ, pos = p.parseType()
			name = p.parseIdent()
			// if not a function, rewind and parse as the body's first
			// declaration statement
			return p.tok == token.LPAREN
		})
		if !ok {
			break
		}
		funcs = append(funcs, p.parseFuncRest(pos, typ, name))
		// a semicolon may separate a function from what follows
		if p.tok == token.SEMICOLON {
			p.expect(token.SEMICOLON)
		}
	}
	return funcs
}

func (p *parser) parseFuncRest(start token.Pos, ret types.Type, name *ast.Ident) *ast.Func {
	var fn ast.Func
	fn.Start = start
	fn.Ret = ret
	fn.Name = name

	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		fn.Params = append(fn.Params, p.parseParam())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			fn.Params = append(fn.Params, p.parseParam())
		}
	}
	p.expect(token.RPAREN)

	p.expect(token.IS)
	fn.Body = p.parseBlock(token.END)
	fn.End = p.expect(token.END)

	if !blockEnds(fn.Body) {
		p.error(fn.End, "function "+fn.Name.Name+" must end with a return or exit statement on every path")
	}
	return &fn
}

func (p *parser) parseParam() *ast.Param {
	var param ast.Param
	typ, pos := p.parseType()
	param.Start = pos
	param.Type = typ
	param.Name = p.parseIdent()
	return &param
}

// blockEnds returns true if the block is guaranteed to leave the function
// through a return or exit statement.
func blockEnds(b *ast.Block) bool {
	if len(b.Stats) == 0 {
		return false
	}
	return statEnds(b.Stats[len(b.Stats)-1])
}

func statEnds(s ast.Stat) bool {
	switch s := s.(type) {
	case *ast.CommandStat:
		return s.Kind == token.RETURN || s.Kind == token.EXIT
	case *ast.IfStat:
		return blockEnds(s.Then) && blockEnds(s.Else)
	case *ast.ScopeStat:
		return blockEnds(s.Body)
	default:
		return false
	}
}

// parseBlock parses the semicolon-separated statements of a block, up to
// (but not including) any of the end tokens.
func (p *parser) parseBlock(end ...token.Token) *ast.Block {
	var block ast.Block
	block.Start = p.val.Pos

	block.Stats = append(block.Stats, p.parseStat())
	for p.tok == token.SEMICOLON {
		p.expect(token.SEMICOLON)
		block.Stats = append(block.Stats, p.parseStat())
	}

	block.End = p.val.Pos
	for _, tok := range end {
		if p.tok == tok {
			return &block
		}
	}
	p.expect(end...)
	return &block
}

func (p *parser) parseStat() ast.Stat {
	switch {
	case p.tok == token.SKIP:
		return &ast.SkipStat{Kw: p.expect(token.SKIP)}

	case p.tok.IsTypeStart():
		return p.parseDeclStat()

	case p.tok == token.IDENT || p.tok == token.FST || p.tok == token.SND:
		return p.parseAssignStat()

	case p.tok == token.READ:
		var stmt ast.ReadStat
		stmt.Kw = p.expect(token.READ)
		stmt.Target = p.parseLValue()
		return &stmt

	case p.tok == token.FREE || p.tok == token.RETURN || p.tok == token.EXIT ||
		p.tok == token.PRINT || p.tok == token.PRINTLN:
		var stmt ast.CommandStat
		stmt.Kind = p.tok
		stmt.Kw = p.expect(p.tok)
		stmt.Expr = p.parseExpr()
		return &stmt

	case p.tok == token.IF:
		return p.parseIfStat()

	case p.tok == token.WHILE:
		return p.parseWhileStat()

	case p.tok == token.BEGIN:
		var stmt ast.ScopeStat
		stmt.Begin = p.expect(token.BEGIN)
		stmt.Body = p.parseBlock(token.END)
		stmt.End = p.expect(token.END)
		return &stmt

	default:
		p.errorExpected(p.val.Pos, "statement")
		panic("unreachable")
	}
}

func (p *parser) parseDeclStat() *ast.DeclStat {
	var stmt ast.DeclStat
	typ, pos := p.parseType()
	stmt.Start = pos
	stmt.Type = typ
	stmt.Name = p.parseIdent()
	p.expect(token.ASSIGN)
	stmt.Value = p.parseRValue()
	return &stmt
}

func (p *parser) parseAssignStat() *ast.AssignStat {
	var stmt ast.AssignStat
	stmt.Target = p.parseLValue()
	stmt.Assign = p.expect(token.ASSIGN)
	stmt.Value = p.parseRValue()
	return &stmt
}

func (p *parser) parseIfStat() *ast.IfStat {
	var stmt ast.IfStat
	stmt.If = p.expect(token.IF)
	stmt.Cond = p.parseExpr()
	p.expect(token.THEN)
	stmt.Then = p.parseBlock(token.ELSE)
	p.expect(token.ELSE)
	stmt.Else = p.parseBlock(token.FI)
	stmt.Fi = p.expect(token.FI)
	return &stmt
}

func (p *parser) parseWhileStat() *ast.WhileStat {
	var stmt ast.WhileStat
	stmt.While = p.expect(token.WHILE)
	stmt.Cond = p.parseExpr()
	p.expect(token.DO)
	stmt.Body = p.parseBlock(token.DONE)
	stmt.Done = p.expect(token.DONE)
	return &stmt
}

func (p *parser) parseLValue() ast.LValue {
	switch p.tok {
	case token.IDENT:
		// Ident and ArrayElem are both expressions and left-values
		return p.parseIdentOrArrayElem().(ast.LValue)
	case token.FST, token.SND:
		var pe ast.PairElem
		pe.Kind = p.tok
		pe.Kw = p.expect(p.tok)
		pe.Operand = p.parseLValue()
		return &pe
	default:
		p.errorExpected(p.val.Pos, "assignable expression")
		panic("unreachable")
	}
}

func (p *parser) parseRValue() ast.RValue {
	switch p.tok {
	case token.LBRACK:
		var lit ast.ArrayLit
		lit.Lbrack = p.expect(token.LBRACK)
		if p.tok != token.RBRACK {
			lit.Elems = append(lit.Elems, p.parseExpr())
			for p.tok == token.COMMA {
				p.expect(token.COMMA)
				lit.Elems = append(lit.Elems, p.parseExpr())
			}
		}
		lit.Rbrack = p.expect(token.RBRACK)
		return &lit

	case token.NEWPAIR:
		var np ast.NewPair
		np.Kw = p.expect(token.NEWPAIR)
		p.expect(token.LPAREN)
		np.Fst = p.parseExpr()
		p.expect(token.COMMA)
		np.Snd = p.parseExpr()
		p.expect(token.RPAREN)
		return &np

	case token.CALL:
		return p.parseCall()

	case token.FST, token.SND:
		var pe ast.PairElem
		pe.Kind = p.tok
		pe.Kw = p.expect(p.tok)
		pe.Operand = p.parseLValue()
		return &pe

	default:
		return p.parseExpr()
	}
}
