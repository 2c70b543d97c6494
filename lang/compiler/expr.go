package compiler

import (
	"fmt"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// expr generates code evaluating e into the result register. Expression
// generation uses exactly one register for its result, plus one more for
// the second operand of binary operators (and a third for the low word of
// a multiplication), released as soon as the operator is emitted.
func (c *codegen) expr(e ast.Expr) {
	res := c.resReg()

	switch e := e.(type) {
	case *ast.IntLit:
		c.emit(Load{Dst: res, Src: Constant(e.Value)})

	case *ast.BoolLit:
		val := 0
		if e.Value {
			val = 1
		}
		c.emit(Move{Dst: res, Src: Imm(val)})

	case *ast.CharLit:
		c.emit(Move{Dst: res, Src: CharImm(e.Value)})

	case *ast.StrLit:
		entry := c.pool.Add(e.Value)
		c.emit(Load{Dst: res, Src: LabelRef(entry.Label())})

	case *ast.NullLit:
		c.emit(Load{Dst: res, Src: Constant(0)})

	case *ast.Ident:
		v := c.vars[e.Name]
		size := types.SizeOf(v.typ)
		c.emit(Load{Byte: size == 1, Dst: res, Src: Mem{Base: StackPointer, Off: c.spOff - v.off}})

	case *ast.ArrayElem:
		c.arrayElemAddr(e)
		size := types.SizeOf(c.arrayElemType(e))
		c.emit(Load{Byte: size == 1, Dst: res, Src: Mem{Base: res}})

	case *ast.ParenExpr:
		c.expr(e.Expr)

	case *ast.Call:
		c.call(e)

	case *ast.UnaryExpr:
		c.unary(e)

	case *ast.BinaryExpr:
		c.binary(e)

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}

func (c *codegen) unary(e *ast.UnaryExpr) {
	res := c.resReg()
	c.expr(e.Right)

	switch e.Kind {
	case token.BANG:
		c.emit(XorInstr{Dst: res, Lhs: res, Rhs: Imm(1)})
	case token.MINUS:
		c.emit(Rsb{Dst: res, Lhs: res, Rhs: Imm(0)})
	case token.LEN:
		// the length word sits at the array pointer
		c.emit(Load{Dst: res, Src: Mem{Base: res}})
	case token.ORD, token.CHR:
		// representation-preserving, nothing to do
	default:
		panic(fmt.Sprintf("unexpected unary operator %v", e.Kind))
	}
}

func (c *codegen) binary(e *ast.BinaryExpr) {
	res := c.resReg()
	c.expr(e.Left)
	c.consume()
	rhs := c.resReg()
	c.expr(e.Right)

	switch e.Kind {
	case token.PLUS:
		c.emit(AddInstr{Dst: res, Lhs: res, Rhs: rhs})
	case token.MINUS:
		c.emit(SubInstr{Dst: res, Lhs: res, Rhs: rhs})
	case token.STAR:
		// RdLo, RdHi and Rm must be pairwise distinct, so the low word
		// lands in a third scratch register before moving into res
		c.consume()
		tmp := c.resReg()
		c.emit(
			Smull{RdLo: tmp, RdHi: rhs, Rm: res, Rs: rhs},
			Move{Dst: res, Src: tmp},
		)
		c.release(rhs)
	case token.SLASH:
		c.emit(
			Move{Dst: R0, Src: res},
			Move{Dst: R1, Src: rhs},
			BranchAndLink{Label: "__aeabi_idiv"},
			Move{Dst: res, Src: R0},
		)
	case token.PERCENT:
		c.emit(
			Move{Dst: R0, Src: res},
			Move{Dst: R1, Src: rhs},
			BranchAndLink{Label: "__aeabi_idivmod"},
			Move{Dst: res, Src: R1},
		)

	case token.LT, token.LE, token.GT, token.GE, token.EQEQ, token.BANGEQ:
		cond := compareCond(e.Kind)
		c.emit(
			Cmp{Lhs: res, Rhs: rhs},
			Move{Cond: cond, Dst: res, Src: Imm(1)},
			Move{Cond: cond.Negate(), Dst: res, Src: Imm(0)},
		)

	case token.ANDAND:
		c.emit(AndInstr{Dst: res, Lhs: res, Rhs: rhs})
	case token.PIPEPIPE:
		c.emit(OrrInstr{Dst: res, Lhs: res, Rhs: rhs})

	default:
		panic(fmt.Sprintf("unexpected binary operator %v", e.Kind))
	}

	c.release(res)
}

func compareCond(kind token.Token) Cond {
	switch kind {
	case token.LT:
		return LT
	case token.LE:
		return LE
	case token.GT:
		return GT
	case token.GE:
		return GE
	case token.EQEQ:
		return EQ
	case token.BANGEQ:
		return NE
	default:
		panic(fmt.Sprintf("not a comparison operator: %v", kind))
	}
}

// rvalue generates code evaluating v into the result register. The target
// type provides the element size of array literals, which is not
// recoverable from the literal alone.
func (c *codegen) rvalue(v ast.RValue, target types.Type) {
	res := c.resReg()

	switch v := v.(type) {
	case *ast.ArrayLit:
		elemSize := 4
		switch target := target.(type) {
		case *types.Array:
			elemSize = types.SizeOf(target.Elem)
		case types.Basic:
			// a char-array literal can initialize a string
			if target == types.String {
				elemSize = 1
			}
		}
		c.emit(
			Load{Dst: R0, Src: Constant(4 + len(v.Elems)*elemSize)},
			BranchAndLink{Label: "malloc"},
			Move{Dst: res, Src: R0},
		)
		c.consume()
		tmp := c.resReg()
		c.emit(Load{Dst: tmp, Src: Constant(len(v.Elems))}, Store{Src: tmp, Dst: Mem{Base: res}})
		for i, e := range v.Elems {
			c.expr(e)
			c.emit(Store{Byte: elemSize == 1, Src: tmp, Dst: Mem{Base: res, Off: 4 + i*elemSize}})
		}
		c.release(res)

	case *ast.NewPair:
		c.emit(
			Load{Dst: R0, Src: Constant(8)},
			BranchAndLink{Label: "malloc"},
			Move{Dst: res, Src: R0},
		)
		c.consume()
		tmp := c.resReg()
		c.expr(v.Fst)
		c.emit(Store{Src: tmp, Dst: Mem{Base: res}})
		c.expr(v.Snd)
		c.emit(Store{Src: tmp, Dst: Mem{Base: res, Off: 4}})
		c.release(res)

	case *ast.Call:
		c.call(v)

	case *ast.PairElem:
		c.pairElemAddr(v)
		c.emit(Load{Dst: res, Src: Mem{Base: res}})

	case ast.Expr:
		c.expr(v)

	default:
		panic(fmt.Sprintf("unexpected rvalue %T", v))
	}
}

// call evaluates the arguments left to right, pushing each onto the stack,
// then branches to the function and restores the stack pointer by the
// total argument size. The result moves from R0 into the result register.
func (c *codegen) call(v *ast.Call) {
	if !c.funcNames[v.Name.Name] {
		panic(fmt.Sprintf("call to unknown function %s", v.Name.Name))
	}

	res := c.resReg()
	sig, _ := c.info.Funcs.Get(v.Name.Name)

	var total int
	for i, arg := range v.Args {
		c.expr(arg)
		size := types.SizeOf(sig.Params[i])
		c.emit(Store{Byte: size == 1, Src: res, Dst: Mem{Base: StackPointer, Off: -size}, Wb: true})
		c.spOff += size
		total += size
	}

	c.emit(BranchAndLink{Label: funcPrefix + v.Name.Name})
	if total > 0 {
		c.emit(AddInstr{Dst: StackPointer, Lhs: StackPointer, Rhs: Imm(total)})
		c.spOff -= total
	}
	c.emit(Move{Dst: res, Src: R0})
}

// lvalueAddr generates code computing the address of the left-value into
// the result register.
func (c *codegen) lvalueAddr(lv ast.LValue) {
	res := c.resReg()

	switch lv := lv.(type) {
	case *ast.Ident:
		v := c.vars[lv.Name]
		c.emit(AddInstr{Dst: res, Lhs: StackPointer, Rhs: Imm(c.spOff - v.off)})

	case *ast.ArrayElem:
		c.arrayElemAddr(lv)

	case *ast.PairElem:
		c.pairElemAddr(lv)

	default:
		panic(fmt.Sprintf("unexpected lvalue %T", lv))
	}
}

// arrayElemAddr computes the address of an array element into the result
// register: the array pointer is loaded, then each index skips the length
// word and scales by the element size of that dimension.
func (c *codegen) arrayElemAddr(e *ast.ArrayElem) {
	res := c.resReg()
	v := c.vars[e.Name.Name]
	c.emit(Load{Dst: res, Src: Mem{Base: StackPointer, Off: c.spOff - v.off}})

	typ := v.typ
	for i, ix := range e.Index {
		arr, ok := typ.(*types.Array)
		if !ok {
			panic(fmt.Sprintf("indexing non-array type %s", typ))
		}
		typ = arr.Elem

		if i > 0 {
			c.emit(Load{Dst: res, Src: Mem{Base: res}})
		}

		c.consume()
		idx := c.resReg()
		c.expr(ix)
		c.emit(AddInstr{Dst: res, Lhs: res, Rhs: Imm(4)})
		if types.SizeOf(typ) == 1 {
			c.emit(AddInstr{Dst: res, Lhs: res, Rhs: idx})
		} else {
			c.emit(AddInstr{Dst: res, Lhs: res, Rhs: Shifted{Reg: idx, LSL: 2}})
		}
		c.release(res)
	}
}

// pairElemAddr computes the address of a fst or snd slot into the result
// register. Pair slots are full words.
func (c *codegen) pairElemAddr(pe *ast.PairElem) {
	c.lvalueValue(pe.Operand)
	if pe.Kind == token.SND {
		res := c.resReg()
		c.emit(AddInstr{Dst: res, Lhs: res, Rhs: Imm(4)})
	}
}

// lvalueValue generates code loading the value of the left-value into the
// result register.
func (c *codegen) lvalueValue(lv ast.LValue) {
	res := c.resReg()

	switch lv := lv.(type) {
	case *ast.Ident:
		v := c.vars[lv.Name]
		size := types.SizeOf(v.typ)
		c.emit(Load{Byte: size == 1, Dst: res, Src: Mem{Base: StackPointer, Off: c.spOff - v.off}})

	case *ast.ArrayElem:
		c.arrayElemAddr(lv)
		size := types.SizeOf(c.arrayElemType(lv))
		c.emit(Load{Byte: size == 1, Dst: res, Src: Mem{Base: res}})

	case *ast.PairElem:
		c.pairElemAddr(lv)
		c.emit(Load{Dst: res, Src: Mem{Base: res}})

	default:
		panic(fmt.Sprintf("unexpected lvalue %T", lv))
	}
}

// lvalueType resolves the static type of a left-value from the codegen
// symbol table.
func (c *codegen) lvalueType(lv ast.LValue) types.Type {
	switch lv := lv.(type) {
	case *ast.Ident:
		return c.vars[lv.Name].typ

	case *ast.ArrayElem:
		return c.arrayElemType(lv)

	case *ast.PairElem:
		if p, ok := c.lvalueType(lv.Operand).(*types.Pair); ok {
			if lv.Kind == token.FST {
				return p.Fst
			}
			return p.Snd
		}
		return types.Any

	default:
		panic(fmt.Sprintf("unexpected lvalue %T", lv))
	}
}

func (c *codegen) arrayElemType(e *ast.ArrayElem) types.Type {
	typ := c.vars[e.Name.Name].typ
	for range e.Index {
		arr, ok := typ.(*types.Array)
		if !ok {
			return types.Any
		}
		typ = arr.Elem
	}
	return typ
}
