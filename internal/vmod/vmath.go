package vmod

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

var unaryMath = map[string]func(float64) float64{
	"sqrt":    math.Sqrt,
	"abs":     math.Abs,
	"sin":     math.Sin,
	"cos":     math.Cos,
	"tan":     math.Tan,
	"asin":    math.Asin,
	"acos":    math.Acos,
	"atan":    math.Atan,
	"sinh":    math.Sinh,
	"cosh":    math.Cosh,
	"tanh":    math.Tanh,
	"log":     math.Log,
	"log10":   math.Log10,
	"exp":     math.Exp,
	"floor":   math.Floor,
	"ceil":    math.Ceil,
	"round":   math.Round,
	"erf":     math.Erf,
	"erfc":    math.Erfc,
	"tgamma":  math.Gamma,
	"degrees": func(rad float64) float64 { return rad * 180 / math.Pi },
	"radians": func(deg float64) float64 { return deg * math.Pi / 180 },
	"lgamma": func(x float64) float64 {
		lg, _ := math.Lgamma(x)
		return lg
	},
}

var binaryMath = map[string]func(float64, float64) float64{
	"atan2": math.Atan2,
	"pow":   math.Pow,
	"min":   math.Min,
	"max":   math.Max,
	"fmod":  math.Mod,
	"hypot": math.Hypot,
}

// SetupVMath registers the arithmetic module.
func (h *Host) SetupVMath(env *symtab.Container, pool *strpool.Pool) error {
	vmath := moduleTable(env, "vmath")

	for name, f := range unaryMath {
		define(vmath, pool, name, value.Native(unaryNative(name, f)))
	}
	for name, f := range binaryMath {
		define(vmath, pool, name, value.Native(binaryNative(name, f)))
	}
	define(vmath, pool, "clamp", value.Native(clampNative("vmath")))

	defineConst(vmath, pool, "pi", value.Num(math.Pi))
	defineConst(vmath, pool, "e", value.Num(math.E))
	defineConst(vmath, pool, "tau", value.Num(2*math.Pi))
	defineConst(vmath, pool, "phi", value.Num(math.Phi))
	defineConst(vmath, pool, "euler_gamma", value.Num(0.5772156649015329))
	defineConst(vmath, pool, "sqrt2", value.Num(math.Sqrt2))
	defineConst(vmath, pool, "inf", value.Num(math.Inf(1)))
	defineConst(vmath, pool, "nan", value.Num(math.NaN()))
	defineConst(vmath, pool, "version", value.Str(Version))

	return nil
}

func unaryNative(name string, f func(float64) float64) value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Null(), errors.Errorf("vmath.%v() expects 1 argument, but got %v", name, len(args))
		}
		if args[0].Kind() != value.KindNumber {
			return value.Null(), errors.Errorf("vmath.%v() expects a Number, but got %v", name, args[0].TypeName())
		}
		return value.Num(f(args[0].Num())), nil
	}
}

func binaryNative(name string, f func(a, b float64) float64) value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Null(), errors.Errorf("vmath.%v() expects 2 arguments, but got %v", name, len(args))
		}
		if args[0].Kind() != value.KindNumber || args[1].Kind() != value.KindNumber {
			return value.Null(), errors.Errorf("vmath.%v() expects Numbers, but got %v and %v",
				name, args[0].TypeName(), args[1].TypeName())
		}
		return value.Num(f(args[0].Num(), args[1].Num())), nil
	}
}
