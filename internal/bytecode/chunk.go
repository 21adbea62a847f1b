// Package bytecode is the interpreter's second execution path: a small
// compiler lowering a supported AST subset into chunks, and a stack VM
// running them against the same symbol container as the tree-walker.
package bytecode

import (
	"fmt"
	"io"

	"github.com/jcorbin/vyne/internal/value"
)

// Op is one VM instruction.
type Op = byte

// Supported opcodes. Jump operands are 16-bit relative offsets,
// back-patched after their body is emitted.
const (
	OpConstant Op = iota // push constants[operand]
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpEqual
	OpGreater
	OpSmaller
	OpPrint
	OpType
	OpArray // pop operand elements, push array
	OpPop
	OpJumpIfFalse // pop condition, jump forward if falsy
	OpJump
	OpLoop // jump backward
	OpDefineGlobal
	OpGetGlobal
	OpReturn
)

var opNames = [...]string{
	"OP_CONSTANT",
	"OP_ADD",
	"OP_SUBTRACT",
	"OP_MULTIPLY",
	"OP_DIVIDE",
	"OP_EQUAL",
	"OP_GREATER",
	"OP_SMALLER",
	"OP_PRINT",
	"OP_TYPE",
	"OP_ARRAY",
	"OP_POP",
	"OP_JUMP_IF_FALSE",
	"OP_JUMP",
	"OP_LOOP",
	"OP_DEFINE_GLOBAL",
	"OP_GET_GLOBAL",
	"OP_RETURN",
}

// Chunk is one compiled code unit: bytecode, its constants, and a line
// table parallel to the code buffer.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int32
}

// Write appends one byte, recording the source line it came from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, int32(line))
}

// AddConstant appends v to the constant table and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Line reports the source line for the code byte at offset.
func (c *Chunk) Line(offset int) int {
	if offset < len(c.Lines) {
		return int(c.Lines[offset])
	}
	return 0
}

// Disassemble renders the chunk for debugging.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "== %v ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.disassembleInstruction(w, offset)
	}
}

func (c *Chunk) disassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)

	op := c.Code[offset]
	name := "???"
	if int(op) < len(opNames) {
		name = opNames[op]
	}

	switch op {
	case OpConstant, OpDefineGlobal, OpGetGlobal:
		index := c.Code[offset+1]
		fmt.Fprintf(w, "%-16s %d '", name, index)
		c.Constants[index].Print(w)
		fmt.Fprintf(w, "'\n")
		return offset + 2

	case OpArray:
		fmt.Fprintf(w, "%-16s %d\n", name, c.Code[offset+1])
		return offset + 2

	case OpJumpIfFalse, OpJump:
		jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
		fmt.Fprintf(w, "%-16s %d -> %d\n", name, offset, offset+3+jump)
		return offset + 3

	case OpLoop:
		jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
		fmt.Fprintf(w, "%-16s %d -> %d\n", name, offset, offset+3-jump)
		return offset + 3
	}

	fmt.Fprintf(w, "%s\n", name)
	return offset + 1
}
