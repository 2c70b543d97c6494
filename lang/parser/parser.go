// Package parser implements the parser that transforms WACC source code
// into an abstract syntax tree (AST).
//
// The parser reports a single error: at the first construct it cannot
// recognize, it records a positioned message and aborts. Backtracking is
// available through a bounded attempt primitive, used to disambiguate
// function definitions from the leading statement of the program body
// (both begin with a type token).
package parser

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/scanner"
	"github.com/alptugp/wacc-compiler/lang/token"
)

// ParseFiles is a helper function that parses the source files and returns
// the ASTs along with any error encountered. The error, if non-nil, is
// guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) ([]*ast.Program, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var el scanner.ErrorList
	res := make([]*ast.Program, 0, len(files))
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		prog, err := ParseProgram(file, b)
		if err != nil {
			el = append(el, err.(scanner.ErrorList)...)
			continue
		}
		res = append(res, prog)
	}
	el.Sort()
	return res, el.Err()
}

// ParseProgram parses a single program from a slice of bytes and returns
// the AST and any error encountered. The filename is only used for
// position reporting. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList.
func ParseProgram(filename string, src []byte) (prog *ast.Program, err error) {
	var p parser
	p.init(filename, src)

	defer func() {
		if e := recover(); e != nil {
			if e != errPanicMode {
				panic(e)
			}
			prog, err = nil, p.errors.Err()
		}
	}()

	prog = p.parseProgram()
	if err = p.errors.Err(); err != nil {
		prog = nil
	}
	return prog, err
}

// parser parses source files and generates an AST.
type parser struct {
	// filename is immutable after p.init; errors collects the reported
	// errors and is truncated by restore
	filename string
	errors   scanner.ErrorList

	// scanning state, saved and restored by attempt
	scanner scanner.Scanner
	tok     token.Token
	val     token.Value
}

func (p *parser) init(filename string, src []byte) {
	p.filename = filename
	p.scanner.Init(filename, src, p.errors.Add)

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

var errPanicMode = errors.New("panic")

// checkpoint captures the parser state for backtracking.
type checkpoint struct {
	scan scanner.Scanner
	tok  token.Token
	val  token.Value
	errn int
}

func (p *parser) save() checkpoint {
	return checkpoint{scan: p.scanner, tok: p.tok, val: p.val, errn: len(p.errors)}
}

func (p *parser) restore(cp checkpoint) {
	p.scanner = cp.scan
	p.tok = cp.tok
	p.val = cp.val
	p.errors = p.errors[:cp.errn]
}

// attempt runs fn speculatively. If fn returns false or aborts in panic
// mode, the parser is rewound to the state it had before the call, any
// error recorded during the attempt is dropped, and attempt returns false.
func (p *parser) attempt(fn func() bool) (ok bool) {
	cp := p.save()
	defer func() {
		if e := recover(); e != nil {
			if e != errPanicMode {
				panic(e)
			}
			p.restore(cp)
			ok = false
		}
	}()

	if ok = fn(); !ok {
		p.restore(cp)
	}
	return ok
}

// expect returns the position of the current token and consumes it if it is
// one of the expected tokens, otherwise it reports an error and panics with
// errPanicMode which gets recovered at the top level, aborting the parse.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(pos, lbl)
	}

	p.advance()
	return pos
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(token.MakePosition(p.filename, pos), msg)
	panic(errPanicMode)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		// the error happened at the current position;
		// make the error message more specific
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			// print 123 rather than 'INT', etc.
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}
