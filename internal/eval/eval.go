// Package eval walks the AST. The Evaluator is the interpreter context:
// it owns the string pool, the symbol container and the native module
// registry, and threads them through every evaluation.
package eval

import (
	"fmt"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
	"github.com/jcorbin/vyne/internal/vmod"
)

// RuntimeError aborts the current top-level statement; it carries the
// offending node's source line.
type RuntimeError struct {
	Line int
	Mess string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("line %v: %v", e.Line, e.Mess)
}

func errf(line int, mess string, args ...interface{}) error {
	return RuntimeError{Line: line, Mess: fmt.Sprintf(mess, args...)}
}

// control classifies how a subtree finished: normally, or unwinding
// through return, break or continue. Loops consume ctlBreak and
// ctlContinue, calls consume ctlReturn; anything escaping past its
// construct is a runtime error, never a panic.
type control int

const (
	ctlNone control = iota
	ctlReturn
	ctlBreak
	ctlContinue
)

// result pairs a value with its control disposition.
type result struct {
	val value.Value
	ctl control
}

func valued(v value.Value) result { return result{val: v} }

// Evaluator is the tree-walking interpreter.
type Evaluator struct {
	Env  *symtab.Container
	Pool *strpool.Pool

	host     *vmod.Host
	registry map[string]vmod.Setup

	logfn func(mess string, args ...interface{})

	callNonce uint64
}

// New builds an evaluator with a fresh environment; see the With*
// options for I/O and tracing wiring.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		Env:  symtab.New(),
		Pool: &strpool.Pool{},
		host: vmod.NewHost(nil, nil),
	}
	for _, opt := range opts {
		opt.apply(ev)
	}
	if ev.registry == nil {
		ev.registry = ev.host.Registry()
	}
	return ev
}

// Host exposes the native-module host (shared I/O streams).
func (ev *Evaluator) Host() *vmod.Host { return ev.host }

func (ev *Evaluator) logf(mark, mess string, args ...interface{}) {
	if ev.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	ev.logfn("%v %v", mark, mess)
}

// EvalProgram runs every top-level statement in the global group. A
// top-level return stops execution with its value; break or continue at
// the top level is a runtime error. Output is flushed on every exit
// path.
func (ev *Evaluator) EvalProgram(prog *ast.Program) (value.Value, error) {
	defer ev.host.Out.Flush()

	var last value.Value
	for _, stmt := range prog.Stmts {
		res, err := ev.eval(stmt, symtab.Global)
		if err != nil {
			return value.Null(), err
		}
		switch res.ctl {
		case ctlReturn:
			return res.val, nil
		case ctlBreak, ctlContinue:
			return value.Null(), errf(stmt.Pos(), "%v outside of a loop", ctlName(res.ctl))
		}
		last = res.val
	}
	return last, nil
}

// EvalStmt runs one statement in the global group, as the REPL does.
func (ev *Evaluator) EvalStmt(stmt ast.Node) (value.Value, error) {
	defer ev.host.Out.Flush()

	res, err := ev.eval(stmt, symtab.Global)
	if err != nil {
		return value.Null(), err
	}
	if res.ctl == ctlBreak || res.ctl == ctlContinue {
		return value.Null(), errf(stmt.Pos(), "%v outside of a loop", ctlName(res.ctl))
	}
	return res.val, nil
}

func ctlName(c control) string {
	if c == ctlBreak {
		return "'break'"
	}
	return "'continue'"
}

// eval drives one node within the named group.
func (ev *Evaluator) eval(n ast.Node, group string) (result, error) {
	switch n := n.(type) {
	case *ast.Program:
		return ev.evalStmts(n.Stmts, group)

	case *ast.Block:
		return ev.evalStmts(n.Stmts, group)

	case *ast.Group:
		return ev.evalGroup(n, group)

	case *ast.Num:
		return valued(value.Num(n.Val)), nil

	case *ast.Str:
		return valued(value.Str(n.Text)), nil

	case *ast.Bool:
		return valued(value.Bool(n.Val)), nil

	case *ast.NullLit:
		return valued(value.Null()), nil

	case *ast.ArrayLit:
		return ev.evalArrayLit(n, group)

	case *ast.Range:
		return ev.evalRange(n, group)

	case *ast.Var:
		return ev.evalVar(n, group)

	case *ast.Index:
		return ev.evalIndex(n, group)

	case *ast.Assign:
		return ev.evalAssign(n, group)

	case *ast.BinOp:
		return ev.evalBinOp(n, group)

	case *ast.Postfix:
		return ev.evalPostfix(n, group)

	case *ast.BuiltinCall:
		return ev.evalBuiltin(n, group)

	case *ast.FuncDef:
		return ev.evalFuncDef(n, group)

	case *ast.Call:
		return ev.evalCall(n, group)

	case *ast.MethodCall:
		return ev.evalMethodCall(n, group)

	case *ast.ReturnStmt:
		res, err := ev.eval(n.Expr, group)
		if err != nil {
			return res, err
		}
		return result{val: res.val, ctl: ctlReturn}, nil

	case *ast.WhileStmt:
		return ev.evalWhile(n, group)

	case *ast.ForStmt:
		return ev.evalFor(n, group)

	case *ast.IfStmt:
		return ev.evalIf(n, group)

	case *ast.ModuleStmt:
		return ev.evalModule(n, group)

	case *ast.DismissStmt:
		return ev.evalDismiss(n, group)

	case *ast.BreakStmt:
		return result{ctl: ctlBreak}, nil

	case *ast.ContinueStmt:
		return result{ctl: ctlContinue}, nil
	}

	return result{}, errf(n.Pos(), "cannot evaluate %T node", n)
}

// evalStmts runs statements in order, propagating any unwinding and
// yielding the last statement's value.
func (ev *Evaluator) evalStmts(stmts []ast.Node, group string) (result, error) {
	var last result
	for _, stmt := range stmts {
		res, err := ev.eval(stmt, group)
		if err != nil {
			return res, err
		}
		if res.ctl != ctlNone {
			return res, nil
		}
		last = res
	}
	return last, nil
}

func (ev *Evaluator) evalGroup(n *ast.Group, group string) (result, error) {
	next := group + "." + n.Name
	res, err := ev.evalStmts(n.Stmts, next)
	if err != nil || res.ctl != ctlNone {
		return res, err
	}
	return valued(value.Null()), nil
}

func (ev *Evaluator) evalArrayLit(n *ast.ArrayLit, group string) (result, error) {
	elems := make([]value.Value, 0, len(n.Elems))
	for _, el := range n.Elems {
		res, err := ev.eval(el, group)
		if err != nil {
			return res, err
		}
		elems = append(elems, res.val)
	}
	return valued(value.Array(elems)), nil
}

func (ev *Evaluator) evalVar(n *ast.Var, group string) (result, error) {
	v, ok := ev.Env.LookupScoped(n.Scope, group, n.ID)
	if !ok {
		return result{}, errf(n.Line, "Variable '%v' not found", n.Name)
	}
	return valued(v), nil
}

func (ev *Evaluator) evalIndex(n *ast.Index, group string) (result, error) {
	target, ok := ev.Env.LookupScoped(n.Scope, group, n.ID)
	if !ok {
		return result{}, errf(n.Line, "Variable '%v' not found", n.Name)
	}
	arr := target.Arr()
	if arr == nil {
		return result{}, errf(n.Line, "'%v' is not an array", n.Name)
	}

	res, err := ev.eval(n.Expr, group)
	if err != nil {
		return res, err
	}
	i, err := ev.index(n.Line, res.val, len(*arr))
	if err != nil {
		return result{}, err
	}
	return valued((*arr)[i]), nil
}

func (ev *Evaluator) index(line int, v value.Value, n int) (int, error) {
	if v.Kind() != value.KindNumber {
		return 0, errf(line, "array index must be a number, not %v", v.TypeName())
	}
	i := int(v.Num())
	if i < 0 || i >= n {
		return 0, errf(line, "array index %v out of range for length %v", i, n)
	}
	return i, nil
}

func (ev *Evaluator) evalAssign(n *ast.Assign, group string) (result, error) {
	res, err := ev.eval(n.RHS, group)
	if err != nil {
		return res, err
	}
	val := res.val

	target := symtab.Resolve(n.Scope, group)
	prior, bound := ev.Env.Lookup(target, n.ID)
	if bound && prior.ReadOnly() {
		return result{}, errf(n.Line, "Cannot reassign read-only '%v'", n.Name)
	}

	if n.Index != nil {
		if !bound {
			return result{}, errf(n.Line, "Variable '%v' not found", n.Name)
		}
		arr := prior.Arr()
		if arr == nil {
			return result{}, errf(n.Line, "'%v' is not an array", n.Name)
		}
		ires, err := ev.eval(n.Index, group)
		if err != nil {
			return ires, err
		}
		i, err := ev.index(n.Line, ires.val, len(*arr))
		if err != nil {
			return result{}, err
		}
		(*arr)[i] = val
		return valued(val), nil
	}

	if n.Const {
		val = val.AsReadOnly()
	}
	ev.Env.Define(target, n.ID, val)
	return valued(val), nil
}

func (ev *Evaluator) evalIf(n *ast.IfStmt, group string) (result, error) {
	res, err := ev.eval(n.Cond, group)
	if err != nil {
		return res, err
	}
	if res.val.Truthy() {
		return ev.eval(n.Then, group)
	}
	if n.Else != nil {
		return ev.eval(n.Else, group)
	}
	return valued(value.Null()), nil
}
