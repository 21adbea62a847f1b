package bytecode

import (
	"fmt"
	"io"

	"github.com/jcorbin/vyne/internal/flushio"
	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// RuntimeError aborts a VM run; the driver maps it to exit code 70.
type RuntimeError struct {
	Line int
	Mess string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("line %v: %v", e.Line, e.Mess)
}

// VM is a stack machine over one chunk. It shares the symbol container
// and string pool with the tree-walker, so globals defined by either
// path are visible to the other.
type VM struct {
	env  *symtab.Container
	pool *strpool.Pool
	out  flushio.WriteFlusher

	chunk *Chunk
	ip    int
	stack []value.Value
}

// New builds a VM against the shared environment.
func New(env *symtab.Container, pool *strpool.Pool, out io.Writer) *VM {
	return &VM{env: env, pool: pool, out: flushio.NewWriteFlusher(out)}
}

// Interpret runs one chunk to its RETURN.
func (vm *VM) Interpret(chunk *Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.stack = vm.stack[:0]
	defer vm.out.Flush()
	return vm.run()
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	i := len(vm.stack) - 1
	v := vm.stack[i]
	vm.stack = vm.stack[:i]
	return v
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readShort() int {
	hi, lo := vm.readByte(), vm.readByte()
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) failf(mess string, args ...interface{}) error {
	return RuntimeError{Line: vm.chunk.Line(vm.ip - 1), Mess: fmt.Sprintf(mess, args...)}
}

func (vm *VM) run() error {
	for {
		op := vm.readByte()
		switch op {
		case OpConstant:
			vm.push(vm.readConstant())

		case OpAdd, OpSubtract, OpMultiply, OpDivide:
			b, a := vm.pop(), vm.pop()
			if op == OpAdd && (a.Kind() == value.KindString || b.Kind() == value.KindString) {
				vm.push(value.Str(a.String() + b.String()))
				continue
			}
			if a.Kind() != value.KindNumber || b.Kind() != value.KindNumber {
				return vm.failf("Type Error: unsupported operands %v and %v", a.TypeName(), b.TypeName())
			}
			switch op {
			case OpAdd:
				vm.push(value.Num(a.Num() + b.Num()))
			case OpSubtract:
				vm.push(value.Num(a.Num() - b.Num()))
			case OpMultiply:
				vm.push(value.Num(a.Num() * b.Num()))
			case OpDivide:
				if b.Num() == 0 {
					return vm.failf("Division by zero")
				}
				vm.push(value.Num(a.Num() / b.Num()))
			}

		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(a.Equal(b)))

		case OpGreater, OpSmaller:
			b, a := vm.pop(), vm.pop()
			if a.Kind() != value.KindNumber || b.Kind() != value.KindNumber {
				return vm.failf("Type Error: unsupported operands %v and %v", a.TypeName(), b.TypeName())
			}
			if op == OpGreater {
				vm.push(value.Bool(a.Num() > b.Num()))
			} else {
				vm.push(value.Bool(a.Num() < b.Num()))
			}

		case OpPrint:
			v := vm.pop()
			v.Print(vm.out)
			if _, err := vm.out.Write([]byte{'\n'}); err != nil {
				return vm.failf("print: %v", err)
			}

		case OpType:
			vm.push(value.Str(vm.pop().TypeName()))

		case OpArray:
			n := int(vm.readByte())
			elems := make([]value.Value, n)
			for i := n - 1; i >= 0; i-- {
				elems[i] = vm.pop()
			}
			vm.push(value.Array(elems))

		case OpPop:
			vm.pop()

		case OpJumpIfFalse:
			jump := vm.readShort()
			if !vm.pop().Truthy() {
				vm.ip += jump
			}

		case OpJump:
			vm.ip += vm.readShort()

		case OpLoop:
			vm.ip -= vm.readShort()

		case OpDefineGlobal:
			name := vm.readConstant()
			id := vm.pool.Intern(name.Str())
			vm.env.Define(symtab.Global, id, vm.pop())

		case OpGetGlobal:
			name := vm.readConstant()
			id := vm.pool.Intern(name.Str())
			v, ok := vm.env.Lookup(symtab.Global, id)
			if !ok {
				return vm.failf("Undefined variable '%v'", name.Str())
			}
			vm.push(v)

		case OpReturn:
			return nil

		default:
			return vm.failf("invalid opcode %v", op)
		}
	}
}
