package parser

import (
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

var baseTypes = map[token.Token]types.Basic{
	token.INTTYPE:  types.Int,
	token.BOOLTYPE: types.Bool,
	token.CHARTYPE: types.Char,
	token.STRTYPE:  types.String,
}

// parseType parses a type: a base type or a pair type, followed by zero or
// more [] suffixes producing array types. It returns the type along with
// the position of its first token.
func (p *parser) parseType() (types.Type, token.Pos) {
	pos := p.val.Pos

	var typ types.Type
	switch {
	case p.tok.IsBaseType():
		typ = baseTypes[p.tok]
		p.expect(p.tok)

	case p.tok == token.PAIR:
		p.expect(token.PAIR)
		p.expect(token.LPAREN)
		fst := p.parsePairElemType()
		p.expect(token.COMMA)
		snd := p.parsePairElemType()
		p.expect(token.RPAREN)
		typ = &types.Pair{Fst: fst, Snd: snd}

	default:
		p.errorExpected(pos, "type")
	}

	return p.parseArraySuffixes(typ), pos
}

// parsePairElemType parses the restricted type syntax admissible inside
// pair(...): a bare pair keyword (standing for an erased pair type), or a
// base type with optional array suffixes. Nested pair(...) types are not
// admitted.
func (p *parser) parsePairElemType() types.Type {
	if p.tok == token.PAIR {
		pos := p.expect(token.PAIR)
		if p.tok == token.LPAREN {
			p.error(pos, "pair element types cannot be nested pair types")
		}
		return types.ErasedPair
	}

	pos := p.val.Pos
	if !p.tok.IsBaseType() {
		p.errorExpected(pos, "pair element type")
	}
	typ := types.Type(baseTypes[p.tok])
	p.expect(p.tok)
	return p.parseArraySuffixes(typ)
}

func (p *parser) parseArraySuffixes(typ types.Type) types.Type {
	for p.tok == token.LBRACK {
		p.expect(token.LBRACK)
		p.expect(token.RBRACK)
		typ = &types.Array{Elem: typ}
	}
	return typ
}
