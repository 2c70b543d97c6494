// Package scanner implements the scanner that tokenizes WACC source files
// for the parser to consume.
package scanner

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/alptugp/wacc-compiler/lang/token"
)

// TokenAndValue combines the token type with the token value type in the
// same struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and
// returns the list of tokens, grouped by the file at the same index, and
// produces any error encountered. The error, if non-nil, is guaranteed to
// be an ErrorList.
func ScanFiles(ctx context.Context, files ...string) ([][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		s.Init(file, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{
				Token: tok,
				Value: tokVal,
			})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return tokensByFile, el.Err()
}

// Scanner tokenizes source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte
	err      func(pos token.Position, msg string)

	// mutable scanning state
	cur  rune // current character, -1 at end of file
	off  int  // character offset in bytes of cur
	roff int  // reading offset in bytes (position after current character)
	line int  // 1-based line of cur
	col  int  // 1-based column of cur
}

// Init initializes the scanner to tokenize a new file.
func (s *Scanner) Init(filename string, src []byte, errHandler func(token.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0

	// advance to first character
	s.advance()
}

// read the next character into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.cur == -1 {
		return
	}
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}

	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.col++
		s.cur = -1
		return
	}

	s.off = s.roff

	// fast path if the rune is an ASCII char, no decoding necessary
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.line, s.col+1, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) error(line, col int, msg string) {
	if s.err != nil {
		s.err(token.Position{Filename: s.filename, Line: line, Column: col}, msg)
	}
}

func (s *Scanner) errorf(line, col int, format string, args ...any) {
	s.error(line, col, fmt.Sprintf(format, args...))
}

// advance only if the current char matches the specified one.
func (s *Scanner) advanceIf(match rune) bool {
	if s.cur == match {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespace()

	// current token start
	pos := token.MakePos(s.line, s.col)
	line, col := s.line, s.col
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		// keywords and identifiers
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur):
		lit := s.digits()
		tok = token.INT
		v, err := strconv.ParseInt(lit, 10, 64)
		// the most negative int literal overflows by one until the parser
		// folds the leading minus, so the bound here is MaxInt32+1
		if err != nil || v > math.MaxInt32+1 {
			s.error(line, col, "integer literal value out of range")
			v = 0
		}
		*tokVal = token.Value{Raw: lit, Pos: pos, Int: v}

	default:
		// keywords, identifiers and numbers are done

		s.advance() // always make progress
		switch cur {
		case '\'':
			tok = token.CHAR
			lit, val := s.charLit(line, col)
			*tokVal = token.Value{Raw: lit, Pos: pos, Int: int64(val)}

		case '"':
			tok = token.STRING
			lit, val := s.stringLit(line, col)
			*tokVal = token.Value{Raw: lit, Pos: pos, Str: val}

		case '+', '*', '/', '%', '(', ')', '[', ']', ',', ';', '-':
			// unambiguous single-char punctuation ('-' never merges with the
			// digits of a literal, negation is folded by the parser)
			tok = lookupPunct[cur]
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.BANGEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '&':
			if s.advanceIf('&') {
				tok = token.ANDAND
				*tokVal = token.Value{Raw: tok.String(), Pos: pos}
				break
			}
			s.error(line, col, "illegal character '&', expected '&&'")
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: "&", Pos: pos}

		case '|':
			if s.advanceIf('|') {
				tok = token.PIPEPIPE
				*tokVal = token.Value{Raw: tok.String(), Pos: pos}
				break
			}
			s.error(line, col, "illegal character '|', expected '||'")
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: "|", Pos: pos}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			s.errorf(line, col, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
		}
	}
	return tok
}

var lookupPunct = map[rune]token.Token{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACK,
	']': token.RBRACK,
	',': token.COMMA,
	';': token.SEMICOLON,
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) digits() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipWhitespace skips whitespace and '#' line comments, which extend to
// the end of the line.
func (s *Scanner) skipWhitespace() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '#':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
