package eval

import (
	"sort"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// arrayMethod dispatches the fixed array method set over the already
// evaluated receiver. Mutating methods need the receiver expression to
// be a variable reference so the mutation has a binding to land on;
// anonymous arrays only answer pure methods. The array payload is
// shared, so writing through it reaches every holder of the binding.
func (ev *Evaluator) arrayMethod(n *ast.MethodCall, target value.Value, group string) (result, error) {
	_, isVar := n.Recv.(*ast.Var)

	arr := target.Arr()
	if arr == nil {
		return result{}, errf(n.Line, "Type Error: called method %v() on non-array", n.Name)
	}

	if n.Name == "size" {
		if err := ev.wantArgs(n, 0); err != nil {
			return result{}, err
		}
		return valued(value.Num(float64(len(*arr)))), nil
	}

	if !isVar {
		return result{}, errf(n.Line, "Cannot call mutating method %v() on an anonymous array", n.Name)
	}

	args, err := ev.evalArgs(n.Args, group)
	if err != nil {
		return result{}, err
	}

	switch n.Name {
	case "push":
		if len(args) < 1 {
			return result{}, errf(n.Line, "Argument Error: push() expects at least 1 argument")
		}
		*arr = append(*arr, args...)
		return valued(target), nil

	case "pop":
		if err := ev.wantArgs(n, 0); err != nil {
			return result{}, err
		}
		if len(*arr) == 0 {
			return result{}, errf(n.Line, "pop() from empty array")
		}
		*arr = (*arr)[:len(*arr)-1]
		return valued(value.Bool(true)), nil

	case "delete":
		if err := ev.wantArgs(n, 1); err != nil {
			return result{}, err
		}
		for i, el := range *arr {
			if el.Equal(args[0]) {
				*arr = append((*arr)[:i], (*arr)[i+1:]...)
				return valued(value.Bool(true)), nil
			}
		}
		return result{}, errf(n.Line, "Value Error: could not find given value in array")

	case "sort":
		if err := ev.wantArgs(n, 0); err != nil {
			return result{}, err
		}
		for _, el := range *arr {
			if el.Kind() != value.KindNumber {
				return result{}, errf(n.Line, "Value Error: cannot sort non-number values")
			}
		}
		sort.SliceStable(*arr, func(i, j int) bool { return (*arr)[i].Less((*arr)[j]) })
		return valued(target), nil

	case "reverse":
		if err := ev.wantArgs(n, 0); err != nil {
			return result{}, err
		}
		for i, j := 0, len(*arr)-1; i < j; i, j = i+1, j-1 {
			(*arr)[i], (*arr)[j] = (*arr)[j], (*arr)[i]
		}
		return valued(target), nil

	case "clear":
		if err := ev.wantArgs(n, 0); err != nil {
			return result{}, err
		}
		*arr = (*arr)[:0]
		return valued(target), nil

	case "place_all":
		if err := ev.wantArgs(n, 2); err != nil {
			return result{}, err
		}
		if args[1].Kind() != value.KindNumber {
			return result{}, errf(n.Line, "Argument Error: place_all() count must be a Number")
		}
		count := int(args[1].Num())
		filled := make([]value.Value, 0, count)
		for i := 0; i < count; i++ {
			filled = append(filled, args[0])
		}
		*arr = filled
		return valued(target), nil
	}

	return result{}, errf(n.Line, "Unknown method: %v", n.Name)
}

func (ev *Evaluator) wantArgs(n *ast.MethodCall, want int) error {
	if len(n.Args) != want {
		return errf(n.Line, "Argument Error: %v() expects %v arguments, but got %v instead",
			n.Name, want, len(n.Args))
	}
	return nil
}

func (ev *Evaluator) evalModule(n *ast.ModuleStmt, group string) (result, error) {
	if setup, ok := ev.registry[n.Name]; ok {
		ev.logf(">", "registering module %v", n.Name)
		if err := setup(ev.Env, ev.Pool); err != nil {
			return result{}, errf(n.Line, "could not register module '%v': %v", n.Name, err)
		}
	} else {
		ev.Env.EnsureGroup(symtab.Global + "." + n.Name)
	}

	mod := value.Module(n.ID, n.Name)
	ev.Env.Define(group, n.ID, mod)
	return valued(mod), nil
}

func (ev *Evaluator) evalDismiss(n *ast.DismissStmt, group string) (result, error) {
	path := symtab.Global + "." + n.Name
	if !ev.Env.HasGroup(path) {
		return result{}, errf(n.Line, "Cannot dismiss unknown module '%v'", n.Name)
	}
	ev.Env.DropGroup(path)
	ev.Env.Erase(symtab.Global, n.ID)
	ev.Env.Erase(group, n.ID)
	return valued(value.Null()), nil
}
