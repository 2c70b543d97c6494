package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alptugp/wacc-compiler/lang/token"
)

// scanAll tokenizes src and returns the tokens (excluding EOF) along with
// any errors reported.
func scanAll(t *testing.T, src string) ([]TokenAndValue, ErrorList) {
	t.Helper()

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)
	s.Init("test.wacc", []byte(src), el.Add)

	var toks []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		if tok == token.EOF {
			break
		}
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
	}
	return toks, el
}

func tokens(toks []TokenAndValue) []token.Token {
	res := make([]token.Token, len(toks))
	for i, tv := range toks {
		res[i] = tv.Token
	}
	return res
}

func TestScanProgram(t *testing.T) {
	toks, el := scanAll(t, "begin int x = 3 ; exit x end")
	require.NoError(t, el.Err())
	assert.Equal(t, []token.Token{
		token.BEGIN, token.INTTYPE, token.IDENT, token.ASSIGN, token.INT,
		token.SEMICOLON, token.EXIT, token.IDENT, token.END,
	}, tokens(toks))

	assert.Equal(t, "x", toks[2].Value.Raw)
	assert.Equal(t, int64(3), toks[4].Value.Int)
}

func TestScanPositions(t *testing.T) {
	toks, el := scanAll(t, "begin\n  skip\nend")
	require.NoError(t, el.Err())
	require.Len(t, toks, 3)

	assert.Equal(t, token.MakePos(1, 1), toks[0].Value.Pos)
	assert.Equal(t, token.MakePos(2, 3), toks[1].Value.Pos)
	assert.Equal(t, token.MakePos(3, 1), toks[2].Value.Pos)
}

func TestScanOperators(t *testing.T) {
	toks, el := scanAll(t, "+ - * / % > >= < <= == != && || ! = ( ) [ ] , ;")
	require.NoError(t, el.Err())
	assert.Equal(t, []token.Token{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.GT, token.GE, token.LT, token.LE, token.EQEQ, token.BANGEQ,
		token.ANDAND, token.PIPEPIPE, token.BANG, token.ASSIGN,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.COMMA, token.SEMICOLON,
	}, tokens(toks))
}

func TestScanComments(t *testing.T) {
	toks, el := scanAll(t, "skip # this is a comment\n# full line\nskip")
	require.NoError(t, el.Err())
	assert.Equal(t, []token.Token{token.SKIP, token.SKIP}, tokens(toks))
	assert.Equal(t, token.MakePos(3, 1), toks[1].Value.Pos)
}

func TestScanCharLit(t *testing.T) {
	cases := map[string]rune{
		"'a'":   'a',
		"'Z'":   'Z',
		"'0'":   '0',
		`'\n'`:  '\n',
		`'\t'`:  '\t',
		`'\0'`:  0,
		`'\''`:  '\'',
		`'\"'`:  '"',
		`'\\'`:  '\\',
	}
	for in, want := range cases {
		toks, el := scanAll(t, in)
		require.NoError(t, el.Err(), in)
		require.Len(t, toks, 1, in)
		assert.Equal(t, token.CHAR, toks[0].Token, in)
		assert.Equal(t, int64(want), toks[0].Value.Int, in)
		assert.Equal(t, in, toks[0].Value.Raw, in)
	}
}

func TestScanStringLit(t *testing.T) {
	cases := map[string]string{
		`"hello"`:      "hello",
		`""`:           "",
		`"a b c"`:      "a b c",
		`"tab\there"`:  "tab\there",
		`"nl\n"`:       "nl\n",
		`"quote\""`:    `quote"`,
		`"back\\lash"`: `back\lash`,
	}
	for in, want := range cases {
		toks, el := scanAll(t, in)
		require.NoError(t, el.Err(), in)
		require.Len(t, toks, 1, in)
		assert.Equal(t, token.STRING, toks[0].Token, in)
		assert.Equal(t, want, toks[0].Value.Str, in)
	}
}

func TestScanErrors(t *testing.T) {
	cases := map[string]string{
		"&":             "illegal character '&', expected '&&'",
		"|":             "illegal character '|', expected '||'",
		"'ab'":          "char literal not terminated",
		"''":            "empty char literal",
		`'\x'`:          "unknown escape sequence '\\x'",
		`"unterminated`: "string literal not terminated",
		"@":             "illegal character",
		"4294967296":    "integer literal value out of range",
	}
	for in, want := range cases {
		_, el := scanAll(t, in)
		require.Error(t, el.Err(), in)
		assert.Contains(t, el[0].Msg, want, in)
	}
}

func TestScanIntBounds(t *testing.T) {
	// the scanner accepts up to MaxInt32+1, the parser validates the final
	// value once a leading minus has been folded
	toks, el := scanAll(t, "2147483647 2147483648")
	require.NoError(t, el.Err())
	assert.Equal(t, int64(2147483647), toks[0].Value.Int)
	assert.Equal(t, int64(2147483648), toks[1].Value.Int)

	_, el = scanAll(t, "2147483649")
	require.Error(t, el.Err())
}
