package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alptugp/wacc-compiler/lang/parser"
	"github.com/alptugp/wacc-compiler/lang/resolver"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

func resolve(t *testing.T, src string) (*resolver.Info, resolver.ErrorList) {
	t.Helper()

	prog, err := parser.ParseProgram("test.wacc", []byte(src))
	require.NoError(t, err)

	info, err := resolver.ResolveProgram(context.Background(), prog)
	if err != nil {
		return info, err.(resolver.ErrorList)
	}
	return info, nil
}

func kinds(el resolver.ErrorList) []resolver.Kind {
	res := make([]resolver.Kind, len(el))
	for i, e := range el {
		res[i] = e.Kind
	}
	return res
}

func TestResolveValid(t *testing.T) {
	cases := []string{
		"begin skip end",
		"begin int x = 3 ; exit x end",
		"begin bool b = true && false ; println b end",
		"begin char c = 'a' ; int o = ord c ; char back = chr o ; skip end",
		"begin string s = \"hi\" ; println s end",
		"begin int[] a = [1, 2, 3] ; int n = len a ; exit a[0] end",
		"begin int[] a = [] ; exit 0 end",
		"begin char[] cs = ['h', 'i'] ; string s = cs ; skip end",
		"begin pair(int, bool) p = newpair(1, true) ; int x = fst p ; bool b = snd p ; skip end",
		"begin pair(int, int) p = null ; skip end",
		"begin bool b = null == null ; skip end",
		"begin int f(int x) is return x end ; exit call f(1) end",
		"begin int fac(int n) is if n == 0 then return 1 else return n * call fac(n - 1) fi end ; exit call fac(5) end",
		"begin int x = 1 ; begin int x = 2 ; skip end ; exit x end", // shadowing in inner scope
		"begin pair(pair, int) p = newpair(null, 1) ; pair(int, int) q = fst p ; skip end",
		"begin int x = 0 ; read x ; char c = 'a' ; read c ; skip end",
		"begin int[] a = [1] ; free a ; pair(int, int) p = newpair(1, 2) ; free p end",
		"begin if true then skip else skip fi ; while false do skip done end",
		"begin print 1 ; print true ; print 'c' ; print \"s\" ; print null end",
	}
	for _, src := range cases {
		_, el := resolve(t, src)
		assert.Empty(t, el, src)
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	_, el := resolve(t, "begin int x = true end")
	require.Len(t, el, 1)
	e := el[0]
	assert.Equal(t, resolver.TypeMismatch, e.Kind)
	assert.Equal(t, types.Type(types.Bool), e.Got)
	assert.Equal(t, []types.Type{types.Int}, e.Expected)
	assert.Equal(t, token.MakePos(1, 15), e.Pos)
}

func TestResolveScopes(t *testing.T) {
	// a declaration is not visible once its block exits
	_, el := resolve(t, "begin begin int x = 1 end ; exit x end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.UndefinedVariable, el[0].Kind)

	// redeclaration in the same block
	_, el = resolve(t, "begin int x = 1 ; bool x = true end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.RedefinedVariable, el[0].Kind)

	// duplicate parameter names
	_, el = resolve(t, "begin int f(int a, bool a) is return 0 end ; exit 0 end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.RedefinedVariable, el[0].Kind)

	// the initializer resolves in the enclosing scope
	_, el = resolve(t, "begin int x = 1 ; begin int x = x + 1 ; exit x end end")
	assert.Empty(t, el)
}

func TestResolveFunctions(t *testing.T) {
	_, el := resolve(t, "begin int f() is return 1 end ; int f() is return 2 end ; exit 0 end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.RedefinedFunction, el[0].Kind)

	_, el = resolve(t, "begin exit call nope() end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.UndefinedFunction, el[0].Kind)

	_, el = resolve(t, "begin int f(int x) is return x end ; exit call f(1, 2) end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.IncorrectNumberOfArgs, el[0].Kind)

	_, el = resolve(t, "begin int f(int x) is return x end ; exit call f(true) end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.TypeMismatch, el[0].Kind)

	_, el = resolve(t, "begin int f(int x) is return true end ; exit 0 end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.TypeMismatch, el[0].Kind)
}

func TestResolveReturnOutsideFunction(t *testing.T) {
	_, el := resolve(t, "begin return 1 end")
	require.Len(t, el, 1)
	assert.Equal(t, resolver.UnexpectedReturn, el[0].Kind)
}

func TestResolveStatementRules(t *testing.T) {
	cases := map[string]resolver.Kind{
		"begin exit true end":                      resolver.TypeMismatch,
		"begin if 1 then skip else skip fi end":    resolver.TypeMismatch,
		"begin while 'c' do skip done end":         resolver.TypeMismatch,
		"begin bool b = true ; read b end":         resolver.TypeMismatch,
		"begin int x = 1 ; free x end":             resolver.TypeMismatch,
		"begin string s = \"x\" ; free s end":      resolver.TypeMismatch,
		"begin exit y end":                         resolver.UndefinedVariable,
		"begin int[] a = [1] ; exit a[0][1] end":   resolver.ArrayDimensionMismatch,
		"begin int x = 1 ; x = true end":           resolver.TypeMismatch,
	}
	for src, want := range cases {
		_, el := resolve(t, src)
		require.NotEmpty(t, el, src)
		assert.Equal(t, want, el[0].Kind, src)
	}
}

func TestResolveOperators(t *testing.T) {
	valid := []string{
		"begin int x = 1 + 2 * 3 - 4 / 5 % 6 ; skip end",
		"begin bool b = 1 < 2 ; bool c = 'a' <= 'b' ; skip end",
		"begin bool b = 1 == 2 ; bool c = \"a\" != \"b\" ; skip end",
		"begin bool b = !true || false ; skip end",
		"begin int n = -5 ; int m = - n ; skip end",
		"begin int[] a = [1] ; bool b = a == a ; skip end",
	}
	for _, src := range valid {
		_, el := resolve(t, src)
		assert.Empty(t, el, src)
	}

	invalid := []string{
		"begin int x = 1 + true end",
		"begin bool b = 1 < 'c' end",
		"begin bool b = 1 == true end",
		"begin bool b = 1 && true end",
		"begin bool b = !1 end",
		"begin int x = ord 1 end",
		"begin char c = chr 'a' end",
		"begin int n = len 1 end",
	}
	for _, src := range invalid {
		_, el := resolve(t, src)
		require.NotEmpty(t, el, src)
		assert.Equal(t, resolver.TypeMismatch, el[0].Kind, src)
	}
}

func TestResolvePairRules(t *testing.T) {
	// assigning two pair elements with both sides unknown is rejected
	_, el := resolve(t, "begin pair(pair, pair) p = newpair(null, null) ; fst p = snd p end")
	require.NotEmpty(t, el)
	assert.Equal(t, resolver.TypeMismatch, el[0].Kind)

	// one known side disambiguates
	_, el = resolve(t, "begin pair(int, bool) p = newpair(1, true) ; pair(int, pair) r = newpair(1, null) ; fst p = fst snd r end")
	assert.Empty(t, el)

	// an erased pair element only accepts pair-like values
	_, el = resolve(t, "begin pair(pair, pair) q = newpair(null, null) ; fst q = 1 end")
	require.NotEmpty(t, el)
	assert.Equal(t, resolver.TypeMismatch, el[0].Kind)
}

func TestResolveErrorRecovery(t *testing.T) {
	// sibling errors are reported independently
	_, el := resolve(t, "begin int x = true ; bool b = 1 ; exit q end")
	assert.Len(t, el, 3)
}

func TestResolvePrintTable(t *testing.T) {
	info, el := resolve(t, "begin print \"hello\" ; println \"hello\" ; println 42 end")
	require.Empty(t, el)

	typ, ok := info.PrintTypes.Get(token.MakePos(1, 13))
	require.True(t, ok)
	assert.Equal(t, types.Type(types.String), typ)

	typ, ok = info.PrintTypes.Get(token.MakePos(1, 31))
	require.True(t, ok)
	assert.Equal(t, types.Type(types.String), typ)

	typ, ok = info.PrintTypes.Get(token.MakePos(1, 49))
	require.True(t, ok)
	assert.Equal(t, types.Type(types.Int), typ)

	// positions that are not print arguments are absent
	_, ok = info.PrintTypes.Get(token.MakePos(1, 1))
	assert.False(t, ok)
}


func TestResolveFuncsTable(t *testing.T) {
	info, el := resolve(t, "begin int f(int x, char c) is return x end ; exit 0 end")
	require.Empty(t, el)

	sig, ok := info.Funcs.Get("f")
	require.True(t, ok)
	assert.Equal(t, types.Type(types.Int), sig.Ret)
	assert.Equal(t, []types.Type{types.Int, types.Char}, sig.Params)
}
