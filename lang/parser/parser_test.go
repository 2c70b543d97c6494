package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/parser"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseProgram("test.wacc", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseProgram("test.wacc", []byte(src))
	require.Error(t, err)
	require.Nil(t, prog)
	return err
}

func TestParseMinimal(t *testing.T) {
	prog := parse(t, "begin skip end")
	assert.Empty(t, prog.Funcs)
	require.Len(t, prog.Body.Stats, 1)
	assert.IsType(t, &ast.SkipStat{}, prog.Body.Stats[0])
	assert.Equal(t, token.MakePos(1, 1), prog.Pos())
}

func TestParseDeclare(t *testing.T) {
	prog := parse(t, "begin int x = 3 ; exit x end")
	require.Len(t, prog.Body.Stats, 2)

	decl, ok := prog.Body.Stats[0].(*ast.DeclStat)
	require.True(t, ok)
	assert.Equal(t, types.Type(types.Int), decl.Type)
	assert.Equal(t, "x", decl.Name.Name)
	lit, ok := decl.Value.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int32(3), lit.Value)

	cmd, ok := prog.Body.Stats[1].(*ast.CommandStat)
	require.True(t, ok)
	assert.Equal(t, token.EXIT, cmd.Kind)
}

func TestParseFunc(t *testing.T) {
	prog := parse(t, "begin int f(int x, bool b) is return x end ; exit 0 end")
	require.Len(t, prog.Funcs, 1)

	fn := prog.Funcs[0]
	assert.Equal(t, "f", fn.Name.Name)
	assert.Equal(t, types.Type(types.Int), fn.Ret)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Name.Name)
	assert.Equal(t, types.Type(types.Bool), fn.Params[1].Type)
	require.Len(t, fn.Body.Stats, 1)
}

func TestParseFuncBodyDisambiguation(t *testing.T) {
	// a declaration whose type prefix looks like a function definition
	prog := parse(t, "begin int x = 1 ; exit x end")
	assert.Empty(t, prog.Funcs)
	assert.Len(t, prog.Body.Stats, 2)

	// array types on both sides of the split
	prog = parse(t, "begin int[] f(int[] a) is return a[0] end ; int[] xs = [1] ; exit 0 end")
	require.Len(t, prog.Funcs, 1)
	assert.Equal(t, types.Type(&types.Array{Elem: types.Int}), prog.Funcs[0].Ret)
	assert.Len(t, prog.Body.Stats, 2)
}

func TestParseFuncMustReturn(t *testing.T) {
	err := parseErr(t, "begin int f() is skip end ; exit 0 end")
	assert.Contains(t, err.Error(), "must end with a return or exit")

	// an if ending on both branches is fine
	parse(t, "begin int f() is if true then return 1 else return 2 fi end ; exit 0 end")
}

func TestParsePrecedence(t *testing.T) {
	prog := parse(t, "begin int x = 1 + 2 * 3 end")
	decl := prog.Body.Stats[0].(*ast.DeclStat)

	add, ok := decl.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Kind)
	assert.IsType(t, &ast.IntLit{}, add.Left)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Kind)
}

func TestParseAssociativity(t *testing.T) {
	// + is left-associative: (1 - 2) - 3
	prog := parse(t, "begin int x = 1 - 2 - 3 end")
	sub := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.BinaryExpr)
	assert.Equal(t, token.MINUS, sub.Kind)
	assert.IsType(t, &ast.BinaryExpr{}, sub.Left)
	assert.IsType(t, &ast.IntLit{}, sub.Right)

	// || is right-associative: a || (b || c)
	prog = parse(t, "begin bool x = true || false || true end")
	or := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.BinaryExpr)
	assert.Equal(t, token.PIPEPIPE, or.Kind)
	assert.IsType(t, &ast.BoolLit{}, or.Left)
	assert.IsType(t, &ast.BinaryExpr{}, or.Right)
}

func TestParseNonAssociative(t *testing.T) {
	err := parseErr(t, "begin bool x = 1 == 2 == 3 end")
	assert.Contains(t, err.Error(), "cannot be chained")

	err = parseErr(t, "begin bool x = 1 < 2 < 3 end")
	assert.Contains(t, err.Error(), "cannot be chained")

	// parenthesized chains are fine
	parse(t, "begin bool x = (1 == 2) == false end")
}

func TestParseIntBounds(t *testing.T) {
	prog := parse(t, "begin int x = -2147483648 ; int y = 2147483647 end")
	min := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.IntLit)
	assert.Equal(t, int32(-2147483648), min.Value)
	max := prog.Body.Stats[1].(*ast.DeclStat).Value.(*ast.IntLit)
	assert.Equal(t, int32(2147483647), max.Value)

	err := parseErr(t, "begin int x = 2147483648 end")
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseUnary(t *testing.T) {
	prog := parse(t, "begin int x = - y ; bool b = !true ; int o = ord 'a' ; int l = len xs end")
	neg := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.UnaryExpr)
	assert.Equal(t, token.MINUS, neg.Kind)
	not := prog.Body.Stats[1].(*ast.DeclStat).Value.(*ast.UnaryExpr)
	assert.Equal(t, token.BANG, not.Kind)
}

func TestParseArrayElem(t *testing.T) {
	prog := parse(t, "begin int x = a[1][b] end")
	elem := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.ArrayElem)
	assert.Equal(t, "a", elem.Name.Name)
	require.Len(t, elem.Index, 2)
	assert.IsType(t, &ast.IntLit{}, elem.Index[0])
	assert.IsType(t, &ast.Ident{}, elem.Index[1])
}

func TestParseLValues(t *testing.T) {
	prog := parse(t, "begin x = 1 ; a[0] = 2 ; fst p = 3 ; snd q = 4 ; fst snd r = 5 end")
	stats := prog.Body.Stats
	assert.IsType(t, &ast.Ident{}, stats[0].(*ast.AssignStat).Target)
	assert.IsType(t, &ast.ArrayElem{}, stats[1].(*ast.AssignStat).Target)

	pe := stats[2].(*ast.AssignStat).Target.(*ast.PairElem)
	assert.Equal(t, token.FST, pe.Kind)
	nested := stats[4].(*ast.AssignStat).Target.(*ast.PairElem)
	assert.IsType(t, &ast.PairElem{}, nested.Operand)
}

func TestParseRValues(t *testing.T) {
	prog := parse(t, "begin int[] a = [1, 2] ; pair(int, int) p = newpair(1, 2) ; int x = call f(1) ; int y = fst p end")
	stats := prog.Body.Stats
	assert.IsType(t, &ast.ArrayLit{}, stats[0].(*ast.DeclStat).Value)
	assert.IsType(t, &ast.NewPair{}, stats[1].(*ast.DeclStat).Value)
	call := stats[2].(*ast.DeclStat).Value.(*ast.Call)
	assert.Equal(t, "f", call.Name.Name)
	assert.Len(t, call.Args, 1)
	assert.IsType(t, &ast.PairElem{}, stats[3].(*ast.DeclStat).Value)
}

func TestParseEmptyArrayLit(t *testing.T) {
	prog := parse(t, "begin int[] a = [] end")
	lit := prog.Body.Stats[0].(*ast.DeclStat).Value.(*ast.ArrayLit)
	assert.Empty(t, lit.Elems)
}

func TestParseTypes(t *testing.T) {
	prog := parse(t, "begin int[][] m = [] ; pair(pair, char[]) p = null ; string s = \"x\" end")
	m := prog.Body.Stats[0].(*ast.DeclStat)
	assert.Equal(t, types.Type(&types.Array{Elem: &types.Array{Elem: types.Int}}), m.Type)

	p := prog.Body.Stats[1].(*ast.DeclStat)
	assert.Equal(t, types.Type(&types.Pair{Fst: types.ErasedPair, Snd: &types.Array{Elem: types.Char}}), p.Type)

	err := parseErr(t, "begin pair(pair(int, int), int) p = null end")
	assert.Contains(t, err.Error(), "nested")
}

func TestParseControlFlow(t *testing.T) {
	prog := parse(t, "begin if x > 0 then skip else exit 1 fi ; while true do skip done ; begin skip end end")
	stats := prog.Body.Stats

	ifStat := stats[0].(*ast.IfStat)
	assert.IsType(t, &ast.BinaryExpr{}, ifStat.Cond)
	assert.Len(t, ifStat.Then.Stats, 1)
	assert.Len(t, ifStat.Else.Stats, 1)

	whileStat := stats[1].(*ast.WhileStat)
	assert.Len(t, whileStat.Body.Stats, 1)

	assert.IsType(t, &ast.ScopeStat{}, stats[2])
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",                                  // empty file
		"begin end",                         // empty body
		"begin skip",                        // missing end
		"begin skip ; end",                  // trailing semicolon
		"begin if true then skip fi end",    // missing else
		"begin int = 3 end",                 // missing identifier
		"begin x = end",                     // missing rvalue
		"begin skip end extra",              // trailing tokens
		"begin int f() is return 0 end end", // function without body statement
	}
	for _, src := range cases {
		prog, err := parser.ParseProgram("test.wacc", []byte(src))
		assert.Error(t, err, src)
		assert.Nil(t, prog, src)
	}
}

func TestParsePositions(t *testing.T) {
	prog := parse(t, "begin\n  int x = 3\nend")
	decl := prog.Body.Stats[0].(*ast.DeclStat)
	assert.Equal(t, token.MakePos(2, 3), decl.Pos())
	assert.Equal(t, token.MakePos(2, 11), decl.Value.Pos())

	// every node of a parsed AST carries a valid position
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			assert.True(t, n.Pos().IsValid(), "%v", n)
		}
		return v
	}
	ast.Walk(v, prog)
}
