// Package resolver implements the semantic analysis that takes a parsed
// abstract syntax tree and resolves identifiers to their declarations,
// checking types along the way.
//
// # Scopes
//
// Identifiers are local to the block they are declared in: each block
// (function body, if branches, while body, bare scope) extends the
// enclosing scope with a fresh frame, lookups fall through to enclosing
// frames, and a declaration shadows an outer binding of the same name.
// Redeclaring a name within the same frame is an error. Functions live in
// their own flat table, built before any body is checked so that calls may
// refer to functions defined later in the file.
//
// # Error recovery
//
// Diagnostics are accumulated, never aborting the traversal: a subtree
// that fails to type returns the Invalid sentinel, which is equivalent to
// every type, so errors in sibling subtrees are reported independently and
// cascades are suppressed.
package resolver

import (
	"context"
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// FuncSig describes the signature of a user-defined function: its return
// type and the types of its parameters in source order.
type FuncSig struct {
	Ret    types.Type
	Params []types.Type
}

// Info holds the results of a successful semantic analysis, consumed by
// the code generator.
type Info struct {
	// Funcs maps each function name to its signature.
	Funcs *swiss.Map[string, *FuncSig]

	// PrintTypes maps the position of the expression argument of each
	// print and println statement to that expression's resolved type,
	// which selects the print routine specialization.
	PrintTypes *swiss.Map[token.Pos, types.Type]
}

// ResolveProgram runs the semantic analysis on a parsed program. It
// returns the analysis results and any diagnostics produced; the error,
// if non-nil, is guaranteed to be an ErrorList. The Info result is valid
// even in the presence of errors, but should only be used for code
// generation when the error is nil.
//
// An AST that resulted in errors in the parse phase should never be
// passed to the resolver, the behavior is undefined.
func ResolveProgram(ctx context.Context, prog *ast.Program) (*Info, error) {
	r := resolver{
		funcs:      swiss.NewMap[string, *FuncSig](8),
		printTypes: swiss.NewMap[token.Pos, types.Type](8),
	}

	// register every function before checking any body, so that calls can
	// refer to functions defined later
	for _, fn := range prog.Funcs {
		if _, ok := r.funcs.Get(fn.Name.Name); ok {
			r.errorf(RedefinedFunction, fn.Name.Start, "%s already defined", fn.Name.Name)
			continue
		}
		sig := &FuncSig{Ret: fn.Ret}
		for _, param := range fn.Params {
			sig.Params = append(sig.Params, param.Type)
		}
		r.funcs.Put(fn.Name.Name, sig)
	}

	for _, fn := range prog.Funcs {
		r.function(fn)
	}

	r.ret = nil
	r.block(prog.Body)

	r.errors.Sort()
	return &Info{Funcs: r.funcs, PrintTypes: r.printTypes}, r.errors.Err()
}

type resolver struct {
	errors ErrorList

	// funcs is the immutable function table, built before checking bodies.
	funcs *swiss.Map[string, *FuncSig]

	// env is the current local environment, a linked list of scopes with
	// the innermost scope first.
	env *scope

	// ret is the declared return type of the function being checked, nil
	// in the program body.
	ret types.Type

	// printTypes accumulates the print table.
	printTypes *swiss.Map[token.Pos, types.Type]
}

// scope is a single frame of the environment, mapping the identifiers
// declared in one block to their types.
type scope struct {
	parent *scope
	vars   *swiss.Map[string, types.Type]
}

func (r *resolver) push() {
	r.env = &scope{parent: r.env, vars: swiss.NewMap[string, types.Type](8)}
}

func (r *resolver) pop() {
	r.env = r.env.parent
}

// declare binds the identifier in the innermost frame. Redeclaring a name
// bound in the same frame is an error; shadowing an outer frame is not.
func (r *resolver) declare(ident *ast.Ident, typ types.Type) {
	if _, ok := r.env.vars.Get(ident.Name); ok {
		r.errorf(RedefinedVariable, ident.Start, "%s already declared in this scope", ident.Name)
		return
	}
	r.env.vars.Put(ident.Name, typ)
}

// lookup resolves the identifier through the scope chain, innermost frame
// first.
func (r *resolver) lookup(name string) (types.Type, bool) {
	for env := r.env; env != nil; env = env.parent {
		if typ, ok := env.vars.Get(name); ok {
			return typ, true
		}
	}
	return nil, false
}

func (r *resolver) errorf(kind Kind, pos token.Pos, format string, args ...any) {
	r.errors = append(r.errors, &Error{
		Kind:    kind,
		Pos:     pos,
		Context: fmt.Sprintf(format, args...),
	})
}

// typeError records a TypeMismatch diagnostic with the type that was found
// and the types that would have been acceptable.
func (r *resolver) typeError(pos token.Pos, context string, got types.Type, expected ...types.Type) {
	r.errors = append(r.errors, &Error{
		Kind:     TypeMismatch,
		Pos:      pos,
		Got:      got,
		Expected: expected,
		Context:  context,
	})
}

func (r *resolver) function(fn *ast.Func) {
	// parameters live in their own frame enclosing the body block
	r.push()
	for _, param := range fn.Params {
		r.declare(param.Name, param.Type)
	}

	r.ret = fn.Ret
	r.block(fn.Body)
	r.pop()
}

func (r *resolver) block(b *ast.Block) {
	r.push()
	for _, s := range b.Stats {
		r.stat(s)
	}
	r.pop()
}

func (r *resolver) stat(stmt ast.Stat) {
	switch stmt := stmt.(type) {
	case *ast.SkipStat:
		// always well-typed

	case *ast.DeclStat:
		// the initializer resolves before the name is bound, so it may
		// refer to a shadowed outer binding
		got := r.rvalueType(stmt.Value)
		if !types.Equivalent(stmt.Type, got) {
			r.typeError(stmt.Value.Pos(), "", got, stmt.Type)
		}
		r.declare(stmt.Name, stmt.Type)

	case *ast.AssignStat:
		lt := r.lvalueType(stmt.Target)
		rt := r.rvalueType(stmt.Value)

		// assigning a pair element from a pair element requires at least
		// one side to have a known type
		_, lpe := stmt.Target.(*ast.PairElem)
		_, rpe := stmt.Value.(*ast.PairElem)
		unknown := func(t types.Type) bool { return t == types.Any || t == types.ErasedPair }
		if lpe && rpe && unknown(lt) && unknown(rt) {
			r.typeError(stmt.Assign, "at least one side of the assignment must have a known type", nil)
			return
		}

		if !types.Equivalent(lt, rt) {
			r.typeError(stmt.Value.Pos(), "", rt, lt)
		}

	case *ast.ReadStat:
		lt := r.lvalueType(stmt.Target)
		if lt != types.Int && lt != types.Char && lt != types.Invalid {
			r.typeError(stmt.Target.Pos(), "read target", lt, types.Int, types.Char)
		}

	case *ast.CommandStat:
		r.command(stmt)

	case *ast.IfStat:
		r.cond(stmt.Cond)
		r.block(stmt.Then)
		r.block(stmt.Else)

	case *ast.WhileStat:
		r.cond(stmt.Cond)
		r.block(stmt.Body)

	case *ast.ScopeStat:
		r.block(stmt.Body)

	default:
		panic(fmt.Sprintf("unexpected stat %T", stmt))
	}
}

func (r *resolver) cond(e ast.Expr) {
	if got := r.exprType(e); !types.Equivalent(got, types.Bool) {
		r.typeError(e.Pos(), "condition", got, types.Bool)
	}
}

func (r *resolver) command(stmt *ast.CommandStat) {
	got := r.exprType(stmt.Expr)

	switch stmt.Kind {
	case token.FREE:
		if !types.IsHeap(got) && got != types.Invalid && got != types.Any {
			r.typeError(stmt.Expr.Pos(), "free target", got, &types.Array{Elem: types.Any}, &types.Pair{Fst: types.Any, Snd: types.Any})
		}

	case token.RETURN:
		if r.ret == nil {
			r.errorf(UnexpectedReturn, stmt.Kw, "return is only valid inside a function body")
			return
		}
		if !types.Equivalent(r.ret, got) {
			r.typeError(stmt.Expr.Pos(), "return value", got, r.ret)
		}

	case token.EXIT:
		if !types.Equivalent(got, types.Int) {
			r.typeError(stmt.Expr.Pos(), "exit code", got, types.Int)
		}

	case token.PRINT, token.PRINTLN:
		// any type prints; record the resolved type for the code
		// generator to pick the print specialization
		r.printTypes.Put(stmt.Expr.Pos(), got)

	default:
		panic(fmt.Sprintf("unexpected command %v", stmt.Kind))
	}
}
