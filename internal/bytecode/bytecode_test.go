package bytecode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/vyne/internal/bytecode"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/parser"
	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

type vmFixture struct {
	env  *symtab.Container
	pool *strpool.Pool
	out  bytes.Buffer
}

func newVMFixture() *vmFixture {
	return &vmFixture{env: symtab.New(), pool: &strpool.Pool{}}
}

func (fx *vmFixture) compile(t *testing.T, src string) (*bytecode.Chunk, error) {
	prog, err := parser.Parse(lexer.Tokenize(src), fx.pool)
	require.NoError(t, err, "unexpected parse error for %q", src)
	return bytecode.Compile(prog)
}

func (fx *vmFixture) run(t *testing.T, src string) error {
	chunk, err := fx.compile(t, src)
	require.NoError(t, err, "unexpected compile error for %q", src)
	vm := bytecode.New(fx.env, fx.pool, &fx.out)
	return vm.Interpret(chunk)
}

func (fx *vmFixture) mustRun(t *testing.T, src string) string {
	require.NoError(t, fx.run(t, src), "unexpected VM error for %q", src)
	return fx.out.String()
}

func TestVM_programs(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"constant", `log(42);`, "42\n"},
		{"arithmetic", `log(1 + 2 * 3);`, "7\n"},
		{"division", `log(10 / 4);`, "2.5\n"},
		{"string constant", `log("hi");`, "\"hi\"\n"},
		{"string concat", `log("n = " + 1);`, "\"n = 1\"\n"},
		{"comparisons", `log(1 < 2); log(1 > 2); log(2 == 2);`, "1\n0\n1\n"},
		{"booleans", `log(true); log(false);`, "1\n0\n"},
		{"null", `log(null);`, "null\n"},
		{"array literal", `log([1, "a", 2]);`, "[1, \"a\", 2]\n"},
		{"type builtin", `log(type(3));`, "\"Number\"\n"},
		{"globals", `x = 6; y = 7; log(x * y);`, "42\n"},
		{"if true branch", `if 1 { log(10); } else { log(20); }`, "10\n"},
		{"if false branch", `if 0 { log(10); } else { log(20); }`, "20\n"},
		{"if without else", `if 0 { log(10); } log(1);`, "1\n"},
		{"while loop", `i = 0; while i < 3 { log(i); i = i + 1; } log("done");`, "0\n1\n2\n\"done\"\n"},
		{"while never entered", `while 0 { log(9); } log(1);`, "1\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := newVMFixture()
			assert.Equal(t, tc.want, fx.mustRun(t, tc.src))
		})
	}
}

func TestVM_runtimeErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		src     string
		wantErr string
	}{
		{"division by zero", `log(1 / 0);`, "Division by zero"},
		{"undefined global", `log(missing);`, "Undefined variable 'missing'"},
		{"type error", `log(1 - "x");`, "unsupported operands"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := newVMFixture()
			err := fx.run(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var rte bytecode.RuntimeError
			require.True(t, asRuntimeError(err, &rte), "expected a bytecode.RuntimeError, got %T", err)
			assert.True(t, rte.Line > 0, "expected a source line on the error")
		})
	}
}

func asRuntimeError(err error, out *bytecode.RuntimeError) bool {
	rte, ok := err.(bytecode.RuntimeError)
	if ok {
		*out = rte
	}
	return ok
}

func TestCompile_unsupported(t *testing.T) {
	for _, src := range []string{
		`sub f() { return 1; }`,
		`f(1);`,
		`a.push(1);`,
		`through i:: 1..3 { i; };`,
		`module vcore;`,
		`x = 1..3;`,
		`i = 0; i++;`,
		`x = 1 // 2;`,
		`const x = 1;`,
		`a[0] = 1;`,
	} {
		t.Run(src, func(t *testing.T) {
			fx := newVMFixture()
			_, err := fx.compile(t, src)
			require.Error(t, err, "expected %q unsupported in bytecode", src)
			assert.Contains(t, err.Error(), "unsupported in bytecode")
		})
	}
}

func TestVM_sharesEnvironmentWithTreeWalker(t *testing.T) {
	fx := newVMFixture()
	fx.env.Define(symtab.Global, fx.pool.Intern("seed"), value.Num(40))
	assert.Equal(t, "42\n", fx.mustRun(t, `log(seed + 2);`))
}

func TestChunk_writeAndLines(t *testing.T) {
	var chunk bytecode.Chunk
	chunk.Write(bytecode.OpReturn, 3)
	require.Len(t, chunk.Code, 1)
	require.Len(t, chunk.Lines, 1)
	assert.Equal(t, 3, chunk.Line(0))

	index := chunk.AddConstant(value.Num(1))
	assert.Equal(t, 0, index)
}

func TestChunk_disassemble(t *testing.T) {
	fx := newVMFixture()
	chunk, err := fx.compile(t, `x = 1; if x { log(x); }`)
	require.NoError(t, err)

	var sb strings.Builder
	chunk.Disassemble(&sb, "test")
	dump := sb.String()

	assert.Contains(t, dump, "== test ==")
	assert.Contains(t, dump, "OP_CONSTANT")
	assert.Contains(t, dump, "OP_DEFINE_GLOBAL")
	assert.Contains(t, dump, "OP_GET_GLOBAL")
	assert.Contains(t, dump, "OP_JUMP_IF_FALSE")
	assert.Contains(t, dump, "OP_PRINT")
	assert.Contains(t, dump, "OP_RETURN")
}
