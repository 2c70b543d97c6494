package compiler

import "fmt"

// helper records that the named runtime helper routine is required and
// returns its label.
func (c *codegen) helper(name string) string {
	c.helpers[name] = true
	return name
}

// helperOrder fixes the emission order of the runtime helper routines.
var helperOrder = []string{
	"p_print_int",
	"p_print_bool",
	"p_print_string",
	"p_print_reference",
	"p_println",
	"p_read_int",
	"p_read_char",
}

// emitHelpers appends the required runtime helper routines after the
// program entry. Each routine wraps a libc call, with its format string
// inserted into the shared data pool.
func (c *codegen) emitHelpers() {
	for _, name := range helperOrder {
		if !c.helpers[name] {
			continue
		}
		switch name {
		case "p_print_int":
			c.printfHelper(name, "%d", Move{Dst: R1, Src: R0})
		case "p_print_bool":
			trueMsg := c.pool.Add("true")
			falseMsg := c.pool.Add("false")
			c.emit(
				Label(name),
				Push{LinkRegister},
				Cmp{Lhs: R0, Rhs: Imm(0)},
				Load{Cond: NE, Dst: R0, Src: LabelRef(trueMsg.Label())},
				Load{Cond: EQ, Dst: R0, Src: LabelRef(falseMsg.Label())},
				AddInstr{Dst: R0, Lhs: R0, Rhs: Imm(4)},
				BranchAndLink{Label: "printf"},
				Move{Dst: R0, Src: Imm(0)},
				BranchAndLink{Label: "fflush"},
				Pop{ProgramCounter},
				Directive(".ltorg"),
			)
		case "p_print_string":
			c.printfHelper(name, "%.*s",
				Load{Dst: R1, Src: Mem{Base: R0}},
				AddInstr{Dst: R2, Lhs: R0, Rhs: Imm(4)},
			)
		case "p_print_reference":
			c.printfHelper(name, "%p", Move{Dst: R1, Src: R0})
		case "p_println":
			msg := c.pool.Add("")
			c.emit(
				Label(name),
				Push{LinkRegister},
				Load{Dst: R0, Src: LabelRef(msg.Label())},
				AddInstr{Dst: R0, Lhs: R0, Rhs: Imm(4)},
				BranchAndLink{Label: "puts"},
				Move{Dst: R0, Src: Imm(0)},
				BranchAndLink{Label: "fflush"},
				Pop{ProgramCounter},
				Directive(".ltorg"),
			)
		case "p_read_int":
			c.scanfHelper(name, "%d")
		case "p_read_char":
			c.scanfHelper(name, " %c")
		default:
			panic(fmt.Sprintf("unknown helper %s", name))
		}
	}
}

// printfHelper emits a print routine: the provided setup instructions
// arrange the value arguments, then the format string is loaded and printf
// is called, flushing stdout before returning.
func (c *codegen) printfHelper(name, format string, setup ...Instr) {
	msg := c.pool.Add(format)
	c.emit(Label(name), Push{LinkRegister})
	c.emit(setup...)
	c.emit(
		Load{Dst: R0, Src: LabelRef(msg.Label())},
		AddInstr{Dst: R0, Lhs: R0, Rhs: Imm(4)},
		BranchAndLink{Label: "printf"},
		Move{Dst: R0, Src: Imm(0)},
		BranchAndLink{Label: "fflush"},
		Pop{ProgramCounter},
		Directive(".ltorg"),
	)
}

// scanfHelper emits a read routine: the target address arrives in R0 and
// becomes the second scanf argument.
func (c *codegen) scanfHelper(name, format string) {
	msg := c.pool.Add(format)
	c.emit(
		Label(name),
		Push{LinkRegister},
		Move{Dst: R1, Src: R0},
		Load{Dst: R0, Src: LabelRef(msg.Label())},
		AddInstr{Dst: R0, Lhs: R0, Rhs: Imm(4)},
		BranchAndLink{Label: "scanf"},
		Pop{ProgramCounter},
		Directive(".ltorg"),
	)
}
