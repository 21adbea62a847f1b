package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/strpool"
)

func parse(t *testing.T, src string) *ast.Program {
	var pool strpool.Pool
	prog, err := Parse(lexer.Tokenize(src), &pool)
	require.NoError(t, err, "unexpected parse error for %q", src)
	return prog
}

func parseErr(t *testing.T, src string) error {
	var pool strpool.Pool
	_, err := Parse(lexer.Tokenize(src), &pool)
	require.Error(t, err, "expected a parse error for %q", src)
	return err
}

func TestParse_precedence(t *testing.T) {
	prog := parse(t, "x = 1 + 2 * 3;")
	require.Len(t, prog.Stmts, 1)

	assign := prog.Stmts[0].(*ast.Assign)
	add := assign.RHS.(*ast.BinOp)
	assert.Equal(t, lexer.Add, add.Op)
	assert.Equal(t, 1.0, add.L.(*ast.Num).Val)

	mul := add.R.(*ast.BinOp)
	assert.Equal(t, lexer.Multiply, mul.Op)
}

func TestParse_leftAssociativity(t *testing.T) {
	prog := parse(t, "x = 10 - 4 - 3;")
	outer := prog.Stmts[0].(*ast.Assign).RHS.(*ast.BinOp)
	assert.Equal(t, lexer.Subtract, outer.Op)

	inner := outer.L.(*ast.BinOp)
	assert.Equal(t, lexer.Subtract, inner.Op)
	assert.Equal(t, 10.0, inner.L.(*ast.Num).Val)
	assert.Equal(t, 3.0, outer.R.(*ast.Num).Val)
}

func TestParse_rangeBindsLoosest(t *testing.T) {
	prog := parse(t, "x = 1 + 1 .. 2 * 3;")
	rng := prog.Stmts[0].(*ast.Assign).RHS.(*ast.Range)
	assert.Equal(t, lexer.Add, rng.Lo.(*ast.BinOp).Op)
	assert.Equal(t, lexer.Multiply, rng.Hi.(*ast.BinOp).Op)
}

func TestParse_statements(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want interface{}
	}{
		{"assignment", "x = 1;", &ast.Assign{}},
		{"const assignment", "const x = 1;", &ast.Assign{}},
		{"indexed assignment", "a[0] = 1;", &ast.Assign{}},
		{"scoped assignment", "a.b.c = 1;", &ast.Assign{}},
		{"expression", "1 + 2;", &ast.BinOp{}},
		{"call", "f(1, 2);", &ast.Call{}},
		{"method call", "a.push(1);", &ast.MethodCall{}},
		{"builtin", "log(1);", &ast.BuiltinCall{}},
		{"group", "group g { x = 1; };", &ast.Group{}},
		{"group no semi", "group g { x = 1; }", &ast.Group{}},
		{"function", "sub f(a, b) { return a; }", &ast.FuncDef{}},
		{"module", "module vcore;", &ast.ModuleStmt{}},
		{"dismiss", "dismiss vcore;", &ast.DismissStmt{}},
		{"while", "while 1 { break; }", &ast.WhileStmt{}},
		{"through", "through 1..3 { 1; };", &ast.ForStmt{}},
		{"if", "if 1 { 2; } else { 3; }", &ast.IfStmt{}},
		{"return", "return 1;", &ast.ReturnStmt{}},
		{"postfix", "i++;", &ast.Postfix{}},
		{"block", "{ 1; 2; }", &ast.Block{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(t, tc.src)
			require.Len(t, prog.Stmts, 1)
			assert.IsType(t, tc.want, prog.Stmts[0])
		})
	}
}

func TestParse_assignmentShapes(t *testing.T) {
	prog := parse(t, "a.b.c = 1;")
	assign := prog.Stmts[0].(*ast.Assign)
	assert.Equal(t, "c", assign.Name)
	assert.Equal(t, []string{"a", "b"}, assign.Scope)
	assert.Nil(t, assign.Index)

	prog = parse(t, "a[i + 1] = 2;")
	assign = prog.Stmts[0].(*ast.Assign)
	assert.Equal(t, "a", assign.Name)
	assert.NotNil(t, assign.Index)

	prog = parse(t, "const pi :: Number = 3.14;")
	assign = prog.Stmts[0].(*ast.Assign)
	assert.True(t, assign.Const)
}

func TestParse_identifierChains(t *testing.T) {
	prog := parse(t, "g.x;")
	v := prog.Stmts[0].(*ast.Var)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, []string{"g"}, v.Scope)

	prog = parse(t, "a[0];")
	ix := prog.Stmts[0].(*ast.Index)
	assert.Equal(t, "a", ix.Name)

	prog = parse(t, "m.f(1);")
	m := prog.Stmts[0].(*ast.MethodCall)
	assert.Equal(t, "f", m.Name)
	assert.IsType(t, &ast.Var{}, m.Recv)

	prog = parse(t, "a.sort().size();")
	outer := prog.Stmts[0].(*ast.MethodCall)
	assert.Equal(t, "size", outer.Name)
	assert.Equal(t, "sort", outer.Recv.(*ast.MethodCall).Name)

	// built-in names double as module members
	prog = parse(t, "vcore.string(3);")
	m = prog.Stmts[0].(*ast.MethodCall)
	assert.Equal(t, "string", m.Name)

	prog = parse(t, "vmath.log(1);")
	m = prog.Stmts[0].(*ast.MethodCall)
	assert.Equal(t, "log", m.Name)
}

func TestParse_throughForms(t *testing.T) {
	prog := parse(t, "through i:: 1..3 -> collect { i * i; };")
	loop := prog.Stmts[0].(*ast.ForStmt)
	assert.Equal(t, "i", loop.Name)
	assert.Equal(t, ast.Collect, loop.Mode)
	assert.IsType(t, &ast.Range{}, loop.Iter)

	prog = parse(t, "through [1, 2] { 1; };")
	loop = prog.Stmts[0].(*ast.ForStmt)
	assert.Equal(t, "_", loop.Name, "expected the default iterator name")
	assert.Equal(t, ast.Loop, loop.Mode)
}

func TestParse_functionForms(t *testing.T) {
	prog := parse(t, "sub mymod::helper(x) { return x; }")
	def := prog.Stmts[0].(*ast.FuncDef)
	assert.Equal(t, "mymod", def.Target)
	assert.Equal(t, "helper", def.Name)
	require.Len(t, def.Params, 1)

	prog = parse(t, "sub f() { return 1; }")
	def = prog.Stmts[0].(*ast.FuncDef)
	assert.Equal(t, "", def.Target)
	assert.Len(t, def.Params, 0)
}

func TestParse_errors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		src     string
		wantErr string
	}{
		{"missing semicolon", "x = 1 y = 2;", "expected ';'"},
		{"function in group", "group g { sub f() { return 1; } };", "cannot define a function inside a group"},
		{"inject into vcore", "sub vcore::f() { return 1; }", "built-in module vcore"},
		{"inject into vglib", "sub vglib::f() { return 1; }", "built-in module vglib"},
		{"static type mismatch", "x :: Number = \"text\";", "declared Number but assigned String"},
		{"const type mismatch", "const s :: String = 5;", "declared String but assigned Number"},
		{"unknown annotation", "x :: Widget = 1;", "unknown type annotation"},
		{"unexpected token", "x = ;", "unexpected token"},
		{"unclosed paren", "x = (1 + 2;", "expected ')'"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErr(t, tc.src)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse_errorLines(t *testing.T) {
	err := parseErr(t, "x = 1;\ny = ;")
	perr, ok := err.(Error)
	require.True(t, ok, "expected a parser.Error, got %T", err)
	assert.Equal(t, 2, perr.Line)
}

func TestParse_annotationChecksLaterAssignments(t *testing.T) {
	err := parseErr(t, "x :: Number = 1; x = \"text\";")
	assert.Contains(t, err.Error(), "declared Number but assigned String")

	// unknown static types pass: the runtime owns those
	parse(t, "x :: Number = 1; x = f();")

	// annotations are scoped to their block
	parse(t, "{ x :: Number = 1; } x = \"text\";")
}

func TestParse_internsIdentifiers(t *testing.T) {
	var pool strpool.Pool
	_, err := Parse(lexer.Tokenize("alpha = 1; beta = alpha;"), &pool)
	require.NoError(t, err)

	_, ok := pool.Has("alpha")
	assert.True(t, ok)
	_, ok = pool.Has("beta")
	assert.True(t, ok)
}
