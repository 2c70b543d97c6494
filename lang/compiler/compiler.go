// Package compiler takes a parsed and semantically-checked AST and
// compiles it to a stream of typed ARM instructions plus a read-only data
// pool. It also provides the textual assembly serialization of the
// result.
//
// The generator assumes a well-typed program: any inconsistency found
// here is a compiler bug, not a user-facing error.
package compiler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alptugp/wacc-compiler/lang/ast"
	"github.com/alptugp/wacc-compiler/lang/resolver"
	"github.com/alptugp/wacc-compiler/lang/token"
	"github.com/alptugp/wacc-compiler/lang/types"
)

// Compiled is the result of code generation: the .text instruction stream
// in emission order and the .data string pool.
type Compiled struct {
	Instrs []Instr
	Pool   *StringPool
}

// funcPrefix is prepended to the source name of user-defined functions to
// form their label.
const funcPrefix = "wacc_"

// originalSP is the distinguished ident-to-offset entry recording the
// stack-pointer offset at the start of the enclosing block, used to roll
// the stack back when the block exits.
const originalSP = "originalSP"

// CompileProgram generates code for a program that passed the semantic
// analysis, using the analysis results to pick print specializations.
func CompileProgram(ctx context.Context, prog *ast.Program, info *resolver.Info) *Compiled {
	c := codegen{
		pool:      NewStringPool(),
		info:      info,
		helpers:   make(map[string]bool),
		funcNames: make(map[string]bool),
	}
	for _, fn := range prog.Funcs {
		c.funcNames[fn.Name.Name] = true
	}

	for _, fn := range prog.Funcs {
		c.function(funcPrefix+fn.Name.Name, fn.Params, fn.Body, false)
	}
	c.function("main", nil, prog.Body, true)

	c.emitHelpers()
	return &Compiled{Instrs: c.instrs, Pool: c.pool}
}

// varInfo records the stack offset of an in-scope identifier, measured
// from the function's frame base, along with its declared type.
type varInfo struct {
	off int
	typ types.Type
}

type codegen struct {
	instrs []Instr
	pool   *StringPool
	info   *resolver.Info

	// avail is the ordered pool of scratch registers available for
	// allocation; the result register of an expression is the front
	// element.
	avail []Reg

	// vars maps each in-scope identifier to its frame offset and type,
	// plus the distinguished originalSP entry of the enclosing block.
	vars map[string]varInfo

	// spOff is the current delta between the stack pointer and the
	// function's frame base.
	spOff int

	// usedStack is the running total of locals and parameters allocated
	// in the current frame.
	usedStack int

	// funcNames is the set of user-defined function names.
	funcNames map[string]bool

	// helpers is the set of runtime helper routines required so far.
	helpers map[string]bool

	labelN int
}

func (c *codegen) emit(ins ...Instr) {
	c.instrs = append(c.instrs, ins...)
}

// label allocates the next branch target label. Labels are numbered
// monotonically within the program.
func (c *codegen) label() string {
	l := "L" + strconv.Itoa(c.labelN)
	c.labelN++
	return l
}

// resReg returns the result register, the front of the available pool,
// without consuming it.
func (c *codegen) resReg() Reg { return c.avail[0] }

// consume pops the result register off the available pool.
func (c *codegen) consume() Reg {
	r := c.avail[0]
	c.avail = c.avail[1:]
	return r
}

// release pushes a consumed register back onto the front of the pool.
func (c *codegen) release(r Reg) {
	c.avail = append([]Reg{r}, c.avail...)
}

func (c *codegen) function(label string, params []*ast.Param, body *ast.Block, isMain bool) {
	c.emit(Label(label), Push{LinkRegister})
	c.avail = []Reg{R4, R5, R6, R7, R8, R9, R10, R11, R12}
	c.spOff = 4
	c.usedStack = 0
	c.vars = make(map[string]varInfo)

	// parameters are at positive offsets from the frame base: the caller
	// pushed them left to right, so the first parameter is the deepest
	var total int
	for _, p := range params {
		total += types.SizeOf(p.Type)
	}
	var prefix int
	for _, p := range params {
		size := types.SizeOf(p.Type)
		prefix += size
		c.vars[p.Name.Name] = varInfo{off: -(total - prefix), typ: p.Type}
		c.usedStack += size
	}

	c.block(body)

	if isMain {
		c.emit(Load{Dst: R0, Src: Constant(0)})
	}
	c.emit(Pop{ProgramCounter}, Directive(".ltorg"))
}

// block generates the statements of a block in a fresh scope: locals
// declared inside are rolled back from the stack when the block exits.
func (c *codegen) block(b *ast.Block) {
	outer := c.vars
	inner := make(map[string]varInfo, len(outer)+4)
	for k, v := range outer {
		inner[k] = v
	}
	inner[originalSP] = varInfo{off: c.spOff}
	c.vars = inner

	for _, s := range b.Stats {
		c.stat(s)
	}

	base := c.vars[originalSP].off
	if n := c.spOff - base; n > 0 {
		c.emit(AddInstr{Dst: StackPointer, Lhs: StackPointer, Rhs: Imm(n)})
		c.spOff = base
	}
	c.vars = outer
}

func (c *codegen) stat(stmt ast.Stat) {
	switch stmt := stmt.(type) {
	case *ast.SkipStat:
		// nothing to do

	case *ast.DeclStat:
		res := c.resReg()
		c.rvalue(stmt.Value, stmt.Type)
		size := types.SizeOf(stmt.Type)
		c.emit(Store{Byte: size == 1, Src: res, Dst: Mem{Base: StackPointer, Off: -size}, Wb: true})
		c.spOff += size
		c.usedStack += size
		c.vars[stmt.Name.Name] = varInfo{off: c.spOff, typ: stmt.Type}

	case *ast.AssignStat:
		c.assign(stmt.Target, stmt.Value)

	case *ast.ReadStat:
		res := c.resReg()
		c.lvalueAddr(stmt.Target)
		c.emit(Move{Dst: R0, Src: res})
		if c.lvalueType(stmt.Target) == types.Char {
			c.emit(BranchAndLink{Label: c.helper("p_read_char")})
		} else {
			c.emit(BranchAndLink{Label: c.helper("p_read_int")})
		}

	case *ast.CommandStat:
		c.command(stmt)

	case *ast.IfStat:
		res := c.resReg()
		c.expr(stmt.Cond)
		c.emit(Cmp{Lhs: res, Rhs: Imm(0)})
		elseLabel, endLabel := c.label(), c.label()
		c.emit(Branch{Cond: EQ, Label: elseLabel})
		c.block(stmt.Then)
		c.emit(Branch{Label: endLabel}, Label(elseLabel))
		c.block(stmt.Else)
		c.emit(Label(endLabel))

	case *ast.WhileStat:
		condLabel, bodyLabel := c.label(), c.label()
		c.emit(Branch{Label: condLabel}, Label(bodyLabel))
		c.block(stmt.Body)
		c.emit(Label(condLabel))
		res := c.resReg()
		c.expr(stmt.Cond)
		c.emit(Cmp{Lhs: res, Rhs: Imm(1)}, Branch{Cond: EQ, Label: bodyLabel})

	case *ast.ScopeStat:
		c.block(stmt.Body)

	default:
		panic(fmt.Sprintf("unexpected stat %T", stmt))
	}
}

func (c *codegen) command(stmt *ast.CommandStat) {
	res := c.resReg()
	c.expr(stmt.Expr)

	switch stmt.Kind {
	case token.FREE:
		c.emit(Move{Dst: R0, Src: res}, BranchAndLink{Label: "free"})

	case token.RETURN:
		c.emit(Move{Dst: R0, Src: res})
		if n := c.spOff - 4; n > 0 {
			c.emit(AddInstr{Dst: StackPointer, Lhs: StackPointer, Rhs: Imm(n)})
		}
		c.emit(Pop{ProgramCounter})

	case token.EXIT:
		c.emit(Move{Dst: R0, Src: res}, BranchAndLink{Label: "exit"})

	case token.PRINT, token.PRINTLN:
		c.emit(Move{Dst: R0, Src: res})
		c.print(stmt.Expr)
		if stmt.Kind == token.PRINTLN {
			c.emit(BranchAndLink{Label: c.helper("p_println")})
		}

	default:
		panic(fmt.Sprintf("unexpected command %v", stmt.Kind))
	}
}

// print emits the call to the print specialization selected by the type
// recorded for the argument's position during the semantic analysis.
func (c *codegen) print(arg ast.Expr) {
	typ, ok := c.info.PrintTypes.Get(arg.Pos())
	if !ok {
		panic(fmt.Sprintf("no print type recorded at %s", arg.Pos()))
	}

	switch typ := typ.(type) {
	case types.Basic:
		switch typ {
		case types.Int:
			c.emit(BranchAndLink{Label: c.helper("p_print_int")})
		case types.Bool:
			c.emit(BranchAndLink{Label: c.helper("p_print_bool")})
		case types.Char:
			c.emit(BranchAndLink{Label: "putchar"})
		case types.String:
			c.emit(BranchAndLink{Label: c.helper("p_print_string")})
		default:
			c.emit(BranchAndLink{Label: c.helper("p_print_reference")})
		}
	case *types.Array:
		// char arrays print as strings, other references as pointers
		if typ.Elem == types.Char {
			c.emit(BranchAndLink{Label: c.helper("p_print_string")})
		} else {
			c.emit(BranchAndLink{Label: c.helper("p_print_reference")})
		}
	default:
		c.emit(BranchAndLink{Label: c.helper("p_print_reference")})
	}
}

func (c *codegen) assign(target ast.LValue, value ast.RValue) {
	targetType := c.lvalueType(target)
	res := c.resReg()
	c.rvalue(value, targetType)

	switch target := target.(type) {
	case *ast.Ident:
		v := c.vars[target.Name]
		size := types.SizeOf(v.typ)
		c.emit(Store{Byte: size == 1, Src: res, Dst: Mem{Base: StackPointer, Off: c.spOff - v.off}})

	default:
		// array and pair elements store through a computed address
		c.consume()
		addr := c.resReg()
		c.lvalueAddr(target)
		size := types.SizeOf(targetType)
		if _, ok := target.(*ast.PairElem); ok {
			size = 4 // pair slots are full words
		}
		c.emit(Store{Byte: size == 1, Src: res, Dst: Mem{Base: addr}})
		c.release(res)
	}
}
