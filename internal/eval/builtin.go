package eval

import (
	"math"
	"strconv"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/value"
)

func (ev *Evaluator) evalBuiltin(n *ast.BuiltinCall, group string) (result, error) {
	args, err := ev.evalArgs(n.Args, group)
	if err != nil {
		return result{}, err
	}

	switch n.Name {
	case "log":
		if len(args) != 1 {
			return result{}, ev.builtinArity(n, 1, len(args))
		}
		args[0].Print(ev.host.Out)
		if _, werr := ev.host.Out.Write([]byte{'\n'}); werr != nil {
			return result{}, errf(n.Line, "log: %v", werr)
		}
		return valued(value.Null()), nil

	case "type":
		if len(args) != 1 {
			return result{}, ev.builtinArity(n, 1, len(args))
		}
		return valued(value.Str(args[0].TypeName())), nil

	case "string":
		if len(args) != 1 {
			return result{}, ev.builtinArity(n, 1, len(args))
		}
		if args[0].Kind() != value.KindNumber {
			return result{}, errf(n.Line, "Type Error: string() expects a Number, but got %v", args[0].TypeName())
		}
		return valued(value.Str(args[0].String())), nil

	case "number":
		if len(args) != 1 {
			return result{}, ev.builtinArity(n, 1, len(args))
		}
		if args[0].Kind() != value.KindString {
			return result{}, errf(n.Line, "Type Error: number() expects a String, but got %v", args[0].TypeName())
		}
		f, perr := strconv.ParseFloat(args[0].Str(), 64)
		if perr != nil {
			f = 0
		}
		return valued(value.Num(f)), nil

	case "sizeof":
		if len(args) != 1 {
			return result{}, ev.builtinArity(n, 1, len(args))
		}
		return valued(value.Num(float64(args[0].ShallowBytes()))), nil

	case "sequence":
		if len(args) != 2 {
			return result{}, ev.builtinArity(n, 2, len(args))
		}
		if args[0].Kind() != value.KindNumber || args[1].Kind() != value.KindNumber {
			return result{}, errf(n.Line, "Type Error: sequence() expects Numbers, but got %v and %v",
				args[0].TypeName(), args[1].TypeName())
		}
		lo := math.Floor(args[0].Num())
		hi := math.Floor(args[1].Num())
		elems := []value.Value{}
		for v := lo; v < hi; v++ {
			elems = append(elems, value.Num(v))
		}
		return valued(value.Array(elems)), nil
	}

	return result{}, errf(n.Line, "Unknown built-in: %v", n.Name)
}

func (ev *Evaluator) builtinArity(n *ast.BuiltinCall, want, got int) error {
	return errf(n.Line, "Argument Error: %v() expects %v arguments, but got %v instead",
		n.Name, want, got)
}
