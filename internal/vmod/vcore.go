package vmod

import (
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// Version identifies the interpreter build; vcore exposes it.
const Version = "v0.0.1-alpha"

// SetupVCore registers the core host module.
func (h *Host) SetupVCore(env *symtab.Container, pool *strpool.Pool) error {
	vcore := moduleTable(env, "vcore")

	define(vcore, pool, "now", value.Native(func(args []value.Value) (value.Value, error) {
		return value.Num(float64(h.Now().Unix())), nil
	}))

	define(vcore, pool, "sleep", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind() != value.KindNumber {
			return value.Null(), errors.New("vcore.sleep() expects 1 argument (ms)")
		}
		h.Sleep(time.Duration(args[0].Num()) * time.Millisecond)
		return value.Bool(true), nil
	}))

	define(vcore, pool, "platform", value.Native(func(args []value.Value) (value.Value, error) {
		return value.Str(platformName()), nil
	}))

	define(vcore, pool, "random", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return value.Null(), errors.New("vcore.random() expects 2 arguments (min, max)")
		}
		lo, hi := int(args[0].Num()), int(args[1].Num())
		if hi < lo {
			lo, hi = hi, lo
		}
		return value.Num(float64(lo + h.Rand.Intn(hi-lo+1))), nil
	}))

	define(vcore, pool, "input", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) > 0 && args[0].Kind() == value.KindString {
			io.WriteString(h.Out, args[0].Str())
			h.Out.Flush()
		}
		line, err := h.In.ReadString('\n')
		if err != nil && line == "" {
			return value.Null(), nil
		}
		return value.Str(strings.TrimRight(line, "\r\n")), nil
	}))

	define(vcore, pool, "clamp", value.Native(clampNative("vcore")))

	define(vcore, pool, "string", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Null(), errors.Errorf("vcore.string() expects 1 argument, but got %v instead", len(args))
		}
		return value.Str(args[0].String()), nil
	}))

	define(vcore, pool, "number", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Null(), errors.Errorf("vcore.number() expects 1 argument, but got %v instead", len(args))
		}
		return value.Num(toNumber(args[0])), nil
	}))

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "vcore: could not resolve cwd")
	}
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	defineConst(vcore, pool, "version", value.Str(Version))
	defineConst(vcore, pool, "engine", value.Str("vyne-go"))
	defineConst(vcore, pool, "build", value.Str(runtime.Version()))
	defineConst(vcore, pool, "cwd", value.Str(cwd))
	defineConst(vcore, pool, "processor_count", value.Num(float64(runtime.NumCPU())))
	defineConst(vcore, pool, "pid", value.Num(float64(os.Getpid())))
	defineConst(vcore, pool, "memory_usage", value.Num(float64(stats.Alloc)))

	return nil
}

func platformName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Mac OSX"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	}
	return runtime.GOOS
}

func toNumber(v value.Value) float64 {
	switch v.Kind() {
	case value.KindNumber:
		return v.Num()
	case value.KindString:
		f, err := strconv.ParseFloat(v.Str(), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// clampNative is shared by vcore.clamp and vmath.clamp.
func clampNative(mod string) value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 3 {
			return value.Null(), errors.Errorf("%v.clamp() expects 3 arguments (val, min, max), but got %v", mod, len(args))
		}
		v, lo, hi := args[0].Num(), args[1].Num(), args[2].Num()
		if lo > hi {
			lo, hi = hi, lo
		}
		switch {
		case v < lo:
			return value.Num(lo), nil
		case v > hi:
			return value.Num(hi), nil
		}
		return value.Num(v), nil
	}
}
