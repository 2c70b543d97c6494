package resolver

import (
	"fmt"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// exprType computes the type of an expression, reporting diagnostics for
// any mismatch found in its subtree. It always returns a best-effort type
// so that sibling errors are reported independently.
func (r *resolver) exprType(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.BoolLit:
		return types.Bool
	case *ast.CharLit:
		return types.Char
	case *ast.StrLit:
		return types.String
	case *ast.NullLit:
		return types.Null

	case *ast.Ident:
		typ, ok := r.lookup(e.Name)
		if !ok {
			r.errorf(UndefinedVariable, e.Start, "%s", e.Name)
			return types.Invalid
		}
		return typ

	case *ast.ArrayElem:
		return r.arrayElemType(e)

	case *ast.ParenExpr:
		return r.exprType(e.Expr)

	case *ast.Call:
		return r.callType(e)

	case *ast.UnaryExpr:
		return r.unaryType(e)

	case *ast.BinaryExpr:
		return r.binaryType(e)

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}

func (r *resolver) arrayElemType(e *ast.ArrayElem) types.Type {
	typ, ok := r.lookup(e.Name.Name)
	if !ok {
		r.errorf(UndefinedVariable, e.Name.Start, "%s", e.Name.Name)
		typ = types.Invalid
	}

	for i, ix := range e.Index {
		if got := r.exprType(ix); !types.Equivalent(got, types.Int) {
			r.typeError(ix.Pos(), "array index", got, types.Int)
		}

		switch t := typ.(type) {
		case *types.Array:
			typ = t.Elem
		default:
			if typ == types.Invalid || typ == types.Any {
				return types.Invalid
			}
			r.errorf(ArrayDimensionMismatch, e.Name.Start,
				"%s has %d dimensions, cannot index %d", e.Name.Name, i, len(e.Index))
			return types.Invalid
		}
	}
	return typ
}

func (r *resolver) unaryType(e *ast.UnaryExpr) types.Type {
	got := r.exprType(e.Right)

	check := func(want types.Type, result types.Type) types.Type {
		if !types.Equivalent(got, want) {
			r.typeError(e.Right.Pos(), "operand of "+e.Kind.GoString(), got, want)
		}
		return result
	}

	switch e.Kind {
	case token.BANG:
		return check(types.Bool, types.Bool)
	case token.MINUS:
		return check(types.Int, types.Int)
	case token.LEN:
		if !types.IsArray(got) && got != types.Invalid && got != types.Any {
			r.typeError(e.Right.Pos(), "operand of len", got, &types.Array{Elem: types.Any})
		}
		return types.Int
	case token.ORD:
		return check(types.Char, types.Int)
	case token.CHR:
		return check(types.Int, types.Char)
	default:
		panic(fmt.Sprintf("unexpected unary operator %v", e.Kind))
	}
}

func (r *resolver) binaryType(e *ast.BinaryExpr) types.Type {
	lt := r.exprType(e.Left)
	rt := r.exprType(e.Right)

	switch e.Kind {
	case token.STAR, token.SLASH, token.PERCENT, token.PLUS, token.MINUS:
		if !types.Equivalent(lt, types.Int) {
			r.typeError(e.Left.Pos(), "operand of "+e.Kind.GoString(), lt, types.Int)
		}
		if !types.Equivalent(rt, types.Int) {
			r.typeError(e.Right.Pos(), "operand of "+e.Kind.GoString(), rt, types.Int)
		}
		return types.Int

	case token.LT, token.LE, token.GT, token.GE:
		// both operands must be of the same type, int or char
		ok := types.Equivalent(lt, types.Int) && types.Equivalent(rt, types.Int) ||
			types.Equivalent(lt, types.Char) && types.Equivalent(rt, types.Char)
		if !ok {
			r.typeError(e.Right.Pos(), "operands of "+e.Kind.GoString(), rt, types.Int, types.Char)
		}
		return types.Bool

	case token.EQEQ, token.BANGEQ:
		if !types.Equivalent(lt, rt) {
			r.typeError(e.Right.Pos(), "operands of "+e.Kind.GoString(), rt, lt)
		}
		return types.Bool

	case token.ANDAND, token.PIPEPIPE:
		if !types.Equivalent(lt, types.Bool) {
			r.typeError(e.Left.Pos(), "operand of "+e.Kind.GoString(), lt, types.Bool)
		}
		if !types.Equivalent(rt, types.Bool) {
			r.typeError(e.Right.Pos(), "operand of "+e.Kind.GoString(), rt, types.Bool)
		}
		return types.Bool

	default:
		panic(fmt.Sprintf("unexpected binary operator %v", e.Kind))
	}
}

// rvalueType computes the type of a right-value.
func (r *resolver) rvalueType(v ast.RValue) types.Type {
	switch v := v.(type) {
	case *ast.ArrayLit:
		if len(v.Elems) == 0 {
			// the element type of an empty literal unifies with any array
			return &types.Array{Elem: types.Any}
		}
		elem := r.exprType(v.Elems[0])
		for _, e := range v.Elems[1:] {
			if got := r.exprType(e); !types.Equivalent(elem, got) {
				r.typeError(e.Pos(), "array literal element", got, elem)
			}
		}
		return &types.Array{Elem: elem}

	case *ast.NewPair:
		fst := r.exprType(v.Fst)
		snd := r.exprType(v.Snd)
		return &types.Pair{Fst: types.Erase(fst), Snd: types.Erase(snd)}

	case *ast.Call:
		return r.callType(v)

	case *ast.PairElem:
		return r.pairElemType(v)

	case ast.Expr:
		return r.exprType(v)

	default:
		panic(fmt.Sprintf("unexpected rvalue %T", v))
	}
}

func (r *resolver) callType(v *ast.Call) types.Type {
	sig, ok := r.funcs.Get(v.Name.Name)
	if !ok {
		r.errorf(UndefinedFunction, v.Name.Start, "%s", v.Name.Name)
		return types.Invalid
	}

	if len(v.Args) != len(sig.Params) {
		r.errorf(IncorrectNumberOfArgs, v.Name.Start,
			"function %s takes %d arguments, got %d", v.Name.Name, len(sig.Params), len(v.Args))
	}

	// check the types of the arguments that line up with a parameter
	n := len(v.Args)
	if len(sig.Params) < n {
		n = len(sig.Params)
	}
	for i := 0; i < n; i++ {
		if got := r.exprType(v.Args[i]); !types.Equivalent(sig.Params[i], got) {
			r.typeError(v.Args[i].Pos(), fmt.Sprintf("argument %d of %s", i+1, v.Name.Name), got, sig.Params[i])
		}
	}
	return sig.Ret
}

// lvalueType computes the type of a left-value.
func (r *resolver) lvalueType(v ast.LValue) types.Type {
	switch v := v.(type) {
	case *ast.Ident:
		typ, ok := r.lookup(v.Name)
		if !ok {
			r.errorf(UndefinedVariable, v.Start, "%s", v.Name)
			return types.Invalid
		}
		return typ

	case *ast.ArrayElem:
		return r.arrayElemType(v)

	case *ast.PairElem:
		return r.pairElemType(v)

	default:
		panic(fmt.Sprintf("unexpected lvalue %T", v))
	}
}

// pairElemType computes the type of a fst or snd access. Accessing an
// element of a pair with no concrete type (the null literal or an erased
// inner pair) yields the Any wildcard.
func (r *resolver) pairElemType(v *ast.PairElem) types.Type {
	got := r.lvalueType(v.Operand)

	switch t := got.(type) {
	case *types.Pair:
		if v.Kind == token.FST {
			return t.Fst
		}
		return t.Snd
	default:
		if got == types.Null || got == types.Any || got == types.ErasedPair || got == types.Invalid {
			return types.Any
		}
		r.typeError(v.Operand.Pos(), "operand of "+v.Kind.String(), got, &types.Pair{Fst: types.Any, Snd: types.Any})
		return types.Invalid
	}
}
