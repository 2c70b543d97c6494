package compiler

import (
	"bufio"
	"fmt"
	"io"
)

// Fprint writes the textual ARM assembly of the compiled program to w:
// the .data segment holding the string pool in insertion order, then the
// .text segment with the instruction stream.
func Fprint(w io.Writer, compiled *Compiled) error {
	bw := bufio.NewWriter(w)

	if compiled.Pool.Len() > 0 {
		fmt.Fprintln(bw, ".data")
		for _, e := range compiled.Pool.Entries() {
			fmt.Fprintln(bw)
			fmt.Fprintf(bw, "%s:\n", e.Label())
			fmt.Fprintf(bw, "\t.word %d\n", e.Length)
			fmt.Fprintf(bw, "\t.ascii \"%s\\0\"\n", e.Escaped)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, ".text")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, ".global main")

	for _, ins := range compiled.Instrs {
		if _, ok := ins.(Label); ok {
			fmt.Fprintf(bw, "%s\n", ins)
			continue
		}
		fmt.Fprintf(bw, "\t%s\n", ins)
	}
	return bw.Flush()
}
