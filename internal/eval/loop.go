package eval

import (
	"math"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/value"
)

func (ev *Evaluator) evalWhile(n *ast.WhileStmt, group string) (result, error) {
	var last result
	for {
		cond, err := ev.eval(n.Cond, group)
		if err != nil {
			return cond, err
		}
		if !cond.val.Truthy() {
			break
		}

		res, err := ev.eval(n.Body, group)
		if err != nil {
			return res, err
		}
		switch res.ctl {
		case ctlBreak:
			return valued(last.val), nil
		case ctlContinue:
			continue
		case ctlReturn:
			return res, nil
		}
		last = res
	}
	return valued(last.val), nil
}

// evalRange materialises lo..hi as the inclusive integer-stepped array
// [floor(lo), ..., floor(hi)].
func (ev *Evaluator) evalRange(n *ast.Range, group string) (result, error) {
	lres, err := ev.eval(n.Lo, group)
	if err != nil {
		return lres, err
	}
	hres, err := ev.eval(n.Hi, group)
	if err != nil {
		return hres, err
	}
	if lres.val.Kind() != value.KindNumber || hres.val.Kind() != value.KindNumber {
		return result{}, errf(n.Line, "Type Error: range bounds must be Numbers, not %v and %v",
			lres.val.TypeName(), hres.val.TypeName())
	}

	lo := math.Floor(lres.val.Num())
	hi := math.Floor(hres.val.Num())

	var elems []value.Value
	for v := lo; v <= hi; v++ {
		elems = append(elems, value.Num(v))
	}
	return valued(value.Array(elems)), nil
}

// evalFor runs a through loop. The iterator name is bound in the
// current group for the loop's duration; any prior binding of that name
// is saved and restored on exit.
func (ev *Evaluator) evalFor(n *ast.ForStmt, group string) (result, error) {
	if n.Mode == ast.Unique {
		return result{}, errf(n.Line, "loop mode 'unique' is not supported")
	}

	ires, err := ev.eval(n.Iter, group)
	if err != nil {
		return ires, err
	}
	arr := ires.val.Arr()
	if arr == nil {
		return result{}, errf(n.Line, "Type Error: cannot iterate over %v", ires.val.TypeName())
	}

	iterID := ev.Pool.Intern(n.Name)
	saved, hadPrior := ev.Env.Lookup(group, iterID)
	defer func() {
		if hadPrior {
			ev.Env.Define(group, iterID, saved)
		} else {
			ev.Env.Erase(group, iterID)
		}
	}()

	var last result
	var collected []value.Value

	for _, el := range *arr {
		ev.Env.Define(group, iterID, el)

		res, err := ev.eval(n.Body, group)
		if err != nil {
			return res, err
		}
		switch res.ctl {
		case ctlBreak:
			return ev.forResult(n.Mode, last, collected), nil
		case ctlContinue:
			continue
		case ctlReturn:
			return res, nil
		}
		last = res

		switch n.Mode {
		case ast.Collect:
			collected = append(collected, res.val)
		case ast.Filter:
			if res.val.Truthy() {
				collected = append(collected, el)
			}
		}
	}

	return ev.forResult(n.Mode, last, collected), nil
}

func (ev *Evaluator) forResult(mode ast.ForMode, last result, collected []value.Value) result {
	switch mode {
	case ast.Collect, ast.Filter:
		if collected == nil {
			collected = []value.Value{}
		}
		return valued(value.Array(collected))
	}
	return valued(last.val)
}
