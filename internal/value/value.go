// Package value implements the runtime's tagged values.
//
// Heap-backed kinds (string, array, function) hold shared pointers so
// that aliasing stays observable: two bindings that looked up the same
// array see each other's mutations. Numbers are plain float64; booleans
// and comparison results are the numbers 1 and 0.
package value

import (
	"fmt"

	"github.com/jcorbin/vyne/internal/ast"
)

// Kind tags a Value.
type Kind int

// Value kinds, in tag-ordinal order (mixed-kind < compares these).
const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindArray
	KindFunction
	KindModule
)

var kindNames = [...]string{"Null", "Number", "String", "Array", "Function", "Module"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// NativeFn is the callable shape native modules register; it receives
// already-evaluated arguments.
type NativeFn func(args []Value) (Value, error)

// FuncData is the shared payload of a function value. A user function
// owns Body; a native function owns Native and ignores Body.
type FuncData struct {
	Params   []uint32
	Body     []ast.Node
	Native   NativeFn
	IsNative bool
}

// ModuleData identifies a registered module by interned id and name.
type ModuleData struct {
	ID   uint32
	Name string
}

// Value is one runtime value. The zero Value is null.
type Value struct {
	kind Kind

	num float64
	str *string
	arr *[]Value
	fn  *FuncData
	mod ModuleData

	readOnly bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Num returns a number value.
func Num(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns 1 for true and 0 for false.
func Bool(b bool) Value {
	if b {
		return Num(1)
	}
	return Num(0)
}

// Str returns a string value owning fresh backing storage.
func Str(s string) Value { return Value{kind: KindString, str: &s} }

// Array wraps elems as an array value sharing the given slice.
func Array(elems []Value) Value { return Value{kind: KindArray, arr: &elems} }

// Func wraps a function payload.
func Func(fn *FuncData) Value { return Value{kind: KindFunction, fn: fn} }

// Native wraps a host callable as a native function value.
func Native(f NativeFn) Value {
	return Value{kind: KindFunction, fn: &FuncData{Native: f, IsNative: true}}
}

// Module returns a module value; module values are read-only.
func Module(id uint32, name string) Value {
	return Value{kind: KindModule, mod: ModuleData{ID: id, Name: name}, readOnly: true}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// TypeName returns the tag name, as the type() builtin reports it.
func (v Value) TypeName() string { return v.kind.String() }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// ReadOnly reports whether assignment over this binding must fail.
func (v Value) ReadOnly() bool { return v.readOnly }

// AsReadOnly returns v with the read-only flag set.
func (v Value) AsReadOnly() Value {
	v.readOnly = true
	return v
}

// Num returns the number payload (0 for other kinds).
func (v Value) Num() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	return 0
}

// Str returns the string payload ("" for other kinds).
func (v Value) Str() string {
	if v.kind == KindString {
		return *v.str
	}
	return ""
}

// Arr returns the shared element slice; mutating through it is visible
// to every holder of the same array. Nil for other kinds.
func (v Value) Arr() *[]Value {
	if v.kind == KindArray {
		return v.arr
	}
	return nil
}

// Fn returns the shared function payload, nil for other kinds.
func (v Value) Fn() *FuncData {
	if v.kind == KindFunction {
		return v.fn
	}
	return nil
}

// Mod returns the module payload (zero for other kinds).
func (v Value) Mod() ModuleData { return v.mod }

// Truthy reports the value's truthiness: non-zero numbers, non-empty
// strings and arrays; functions and modules are truthy; null is not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindNumber:
		return v.num != 0
	case KindString:
		return *v.str != ""
	case KindArray:
		return len(*v.arr) > 0
	}
	return true
}

// Equal implements ==: defined between same-kind values only.
// Numbers compare by IEEE equality, strings bytewise, arrays
// element-wise; functions and modules compare by identity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindNumber:
		return v.num == o.num
	case KindString:
		return *v.str == *o.str
	case KindArray:
		a, b := *v.arr, *o.arr
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		return v.fn == o.fn
	case KindModule:
		return v.mod == o.mod
	}
	return false
}

// Less implements the ordering sort() relies on: numbers by IEEE order,
// strings lexicographically; mixed kinds fall back to tag ordinals.
// Arrays, functions, modules and null admit no ordering among
// themselves.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindNumber:
		return v.num < o.num
	case KindString:
		return *v.str < *o.str
	}
	return false
}
