package eval

import (
	"fmt"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

func (ev *Evaluator) evalFuncDef(n *ast.FuncDef, group string) (result, error) {
	fn := value.Func(&value.FuncData{Params: n.Params, Body: n.Body})

	target := group
	if n.Target != "" {
		target = symtab.Global + "." + n.Target
	}
	ev.Env.Define(target, n.ID, fn)
	return valued(fn), nil
}

func (ev *Evaluator) evalCall(n *ast.Call, group string) (result, error) {
	fv, ok := ev.Env.Lookup(symtab.Global, n.ID)
	if !ok {
		return result{}, errf(n.Line, "'%v' is not defined in the global scope", n.Name)
	}
	fn := fv.Fn()
	if fn == nil {
		return result{}, errf(n.Line, "Type Error: '%v' is not a function", n.Name)
	}

	args, err := ev.evalArgs(n.Args, group)
	if err != nil {
		return result{}, err
	}

	if fn.IsNative {
		v, nerr := fn.Native(args)
		if nerr != nil {
			return result{}, errf(n.Line, "%v", nerr)
		}
		return valued(v), nil
	}
	return ev.callUser(n.Line, n.Name, fn, args)
}

// callUser runs a user function body in a fresh call frame group; the
// frame is dropped on every exit path, including runtime errors.
func (ev *Evaluator) callUser(line int, name string, fn *value.FuncData, args []value.Value) (result, error) {
	if len(fn.Params) != len(args) {
		return result{}, errf(line, "Argument count mismatch on function call '%v': want %v, got %v",
			name, len(fn.Params), len(args))
	}

	frame := fmt.Sprintf("call_%v_%v", name, ev.callNonce)
	ev.callNonce++
	defer ev.Env.DropGroup(frame)

	ev.logf(">", "call %v frame %v", name, frame)
	for i, param := range fn.Params {
		ev.Env.Define(frame, param, args[i])
	}

	var last result
	for _, stmt := range fn.Body {
		res, err := ev.eval(stmt, frame)
		if err != nil {
			return res, err
		}
		switch res.ctl {
		case ctlReturn:
			return valued(res.val), nil
		case ctlBreak, ctlContinue:
			return result{}, errf(stmt.Pos(), "%v outside of a loop", ctlName(res.ctl))
		}
		last = res
	}
	return valued(last.val), nil
}

func (ev *Evaluator) evalArgs(nodes []ast.Node, group string) ([]value.Value, error) {
	args := make([]value.Value, 0, len(nodes))
	for _, arg := range nodes {
		res, err := ev.eval(arg, group)
		if err != nil {
			return nil, err
		}
		args = append(args, res.val)
	}
	return args, nil
}

func (ev *Evaluator) evalMethodCall(n *ast.MethodCall, group string) (result, error) {
	recv, err := ev.eval(n.Recv, group)
	if err != nil {
		return recv, err
	}

	switch recv.val.Kind() {
	case value.KindModule:
		return ev.moduleMethod(n, recv.val.Mod(), group)
	case value.KindArray:
		return ev.arrayMethod(n, recv.val, group)
	}
	return result{}, errf(n.Line, "Type Error: cannot call method '%v' on %v",
		n.Name, recv.val.TypeName())
}

func (ev *Evaluator) moduleMethod(n *ast.MethodCall, mod value.ModuleData, group string) (result, error) {
	path := symtab.Global + "." + mod.Name
	id := ev.Pool.Intern(n.Name)

	fv, ok := ev.Env.Lookup(path, id)
	if !ok {
		return result{}, errf(n.Line, "Method '%v' not found in module %v", n.Name, mod.Name)
	}
	fn := fv.Fn()
	if fn == nil {
		return result{}, errf(n.Line, "Type Error: %v.%v is not callable", mod.Name, n.Name)
	}

	args, err := ev.evalArgs(n.Args, group)
	if err != nil {
		return result{}, err
	}

	if fn.IsNative {
		v, nerr := fn.Native(args)
		if nerr != nil {
			return result{}, errf(n.Line, "%v", nerr)
		}
		return valued(v), nil
	}
	return ev.callUser(n.Line, mod.Name+"."+n.Name, fn, args)
}
