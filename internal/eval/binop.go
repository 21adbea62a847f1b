package eval

import (
	"math"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

func (ev *Evaluator) evalBinOp(n *ast.BinOp, group string) (result, error) {
	// short-circuit forms never evaluate the right side when the left
	// decides, and canonicalise to 1/0
	switch n.Op {
	case lexer.And:
		lres, err := ev.eval(n.L, group)
		if err != nil {
			return lres, err
		}
		if !lres.val.Truthy() {
			return valued(value.Num(0)), nil
		}
		rres, err := ev.eval(n.R, group)
		if err != nil {
			return rres, err
		}
		return valued(value.Bool(rres.val.Truthy())), nil

	case lexer.Or:
		lres, err := ev.eval(n.L, group)
		if err != nil {
			return lres, err
		}
		if lres.val.Truthy() {
			return valued(value.Num(1)), nil
		}
		rres, err := ev.eval(n.R, group)
		if err != nil {
			return rres, err
		}
		return valued(value.Bool(rres.val.Truthy())), nil
	}

	lres, err := ev.eval(n.L, group)
	if err != nil {
		return lres, err
	}
	rres, err := ev.eval(n.R, group)
	if err != nil {
		return rres, err
	}
	l, r := lres.val, rres.val

	switch n.Op {
	case lexer.Add:
		// + concatenates when either side is a string, and joins arrays
		if l.Kind() == value.KindString || r.Kind() == value.KindString {
			return valued(value.Str(l.String() + r.String())), nil
		}
		if l.Kind() == value.KindArray && r.Kind() == value.KindArray {
			a, b := *l.Arr(), *r.Arr()
			joined := make([]value.Value, 0, len(a)+len(b))
			joined = append(joined, a...)
			joined = append(joined, b...)
			return valued(value.Array(joined)), nil
		}

	case lexer.EqualEqual:
		return valued(value.Bool(l.Equal(r))), nil

	case lexer.NotEqual:
		return valued(value.Bool(!l.Equal(r))), nil
	}

	if l.Kind() != value.KindNumber || r.Kind() != value.KindNumber {
		return result{}, errf(n.Line, "Type Error: unsupported operands %v and %v for %v",
			l.TypeName(), r.TypeName(), n.Op)
	}
	a, b := l.Num(), r.Num()

	switch n.Op {
	case lexer.Add:
		return valued(value.Num(a + b)), nil
	case lexer.Subtract:
		return valued(value.Num(a - b)), nil
	case lexer.Multiply:
		return valued(value.Num(a * b)), nil
	case lexer.Divide:
		if b == 0 {
			return result{}, errf(n.Line, "Division by zero")
		}
		return valued(value.Num(a / b)), nil
	case lexer.FloorDiv:
		if b == 0 {
			return result{}, errf(n.Line, "Division by zero")
		}
		return valued(value.Num(math.Floor(a / b))), nil
	case lexer.Modulo:
		if b == 0 {
			return result{}, errf(n.Line, "Modulo by zero")
		}
		return valued(value.Num(math.Mod(a, b))), nil
	case lexer.Less:
		return valued(value.Bool(a < b)), nil
	case lexer.LessEqual:
		return valued(value.Bool(a <= b)), nil
	case lexer.Greater:
		return valued(value.Bool(a > b)), nil
	case lexer.GreaterEqual:
		return valued(value.Bool(a >= b)), nil
	}

	return result{}, errf(n.Line, "Type Error: unsupported operands %v and %v for %v",
		l.TypeName(), r.TypeName(), n.Op)
}

// evalPostfix implements ++ and -- on a variable reference holding a
// number; the stepped value is written back where the binding lives.
func (ev *Evaluator) evalPostfix(n *ast.Postfix, group string) (result, error) {
	v, ok := n.Operand.(*ast.Var)
	if !ok {
		return result{}, errf(n.Line, "%v requires a variable reference", n.Op)
	}

	cur, found := ev.Env.LookupScoped(v.Scope, group, v.ID)
	if !found {
		return result{}, errf(n.Line, "Variable '%v' not found", v.Name)
	}
	if cur.Kind() != value.KindNumber {
		return result{}, errf(n.Line, "Type Error: %v requires a Number, not %v", n.Op, cur.TypeName())
	}

	step := 1.0
	if n.Op == lexer.Decrement {
		step = -1
	}
	next := value.Num(cur.Num() + step)

	// write back into the group the binding actually resolved in
	target := symtab.Resolve(v.Scope, group)
	if _, ok := ev.Env.Lookup(target, v.ID); !ok {
		target = symtab.Global
	}
	ev.Env.Define(target, v.ID, next)
	return valued(next), nil
}
