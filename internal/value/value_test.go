package value

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_stringForms(t *testing.T) {
	for _, tc := range []struct {
		name      string
		val       Value
		wantStr   string
		wantPrint string
	}{
		{"null", Null(), "null", "null"},
		{"integer", Num(7), "7", "7"},
		{"negative", Num(-3), "-3", "-3"},
		{"fraction", Num(3.14), "3.14", "3.14"},
		{"no trailing zeros", Num(2.50), "2.5", "2.5"},
		{"zero", Num(0), "0", "0"},
		{"string", Str("hi"), "hi", `"hi"`},
		{"array", Array([]Value{Num(1), Num(2), Num(3)}), "[1, 2, 3]", "[1, 2, 3]"},
		{"nested array", Array([]Value{Str("a"), Array([]Value{Num(1)})}), `["a", [1]]`, `["a", [1]]`},
		{"function", Native(nil), "<function>", "<function>"},
		{"module", Module(0, "vcore"), "<module 'vcore'>", "<module 'vcore'>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStr, tc.val.String(), "expected concatenation form")
			var sb strings.Builder
			tc.val.Print(&sb)
			assert.Equal(t, tc.wantPrint, sb.String(), "expected print form")
		})
	}
}

func TestValue_truthiness(t *testing.T) {
	assert.False(t, Null().Truthy())
	assert.False(t, Num(0).Truthy())
	assert.True(t, Num(0.5).Truthy())
	assert.True(t, Num(-1).Truthy())
	assert.False(t, Str("").Truthy())
	assert.True(t, Str("x").Truthy())
	assert.False(t, Array(nil).Truthy())
	assert.True(t, Array([]Value{Null()}).Truthy())
	assert.True(t, Native(nil).Truthy())
	assert.True(t, Module(0, "m").Truthy())
}

func TestValue_equality(t *testing.T) {
	fn := Native(nil)
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Num(2).Equal(Num(2)))
	assert.False(t, Num(2).Equal(Num(3)))
	assert.True(t, Str("a").Equal(Str("a")))
	assert.True(t, Array([]Value{Num(1), Str("x")}).Equal(Array([]Value{Num(1), Str("x")})))
	assert.False(t, Array([]Value{Num(1)}).Equal(Array([]Value{Num(1), Num(2)})))
	assert.True(t, fn.Equal(fn), "expected referential function equality")
	assert.False(t, Native(nil).Equal(Native(nil)), "expected distinct functions unequal")

	// mixed kinds never compare equal
	assert.False(t, Num(0).Equal(Null()))
	assert.False(t, Str("1").Equal(Num(1)))
}

func TestValue_ordering(t *testing.T) {
	assert.True(t, Num(1).Less(Num(2)))
	assert.False(t, Num(2).Less(Num(1)))
	assert.True(t, Str("a").Less(Str("b")))

	// mixed kinds order by tag ordinal
	assert.True(t, Null().Less(Num(0)))
	assert.True(t, Num(99).Less(Str("")))

	// arrays admit no ordering among themselves
	assert.False(t, Array(nil).Less(Array([]Value{Num(1)})))
}

func TestValue_aliasing(t *testing.T) {
	a := Array([]Value{Num(1)})
	b := a // a second holder of the same array

	*b.Arr() = append(*b.Arr(), Num(2))
	assert.Equal(t, "[1, 2]", a.String(), "expected mutation visible through both holders")
}

func TestValue_bytes(t *testing.T) {
	assert.Equal(t, 8, Num(42).ShallowBytes())
	assert.Equal(t, 5, Str("hello").ShallowBytes())
	assert.Equal(t, 0, Null().ShallowBytes())
	assert.Equal(t, 0, Module(0, "m").ShallowBytes())

	arr := Array([]Value{Num(1), Str("ab")})
	assert.Equal(t, 8+2, arr.ShallowBytes(), "expected arrays to sum element shallow bytes")

	assert.Equal(t, 8, Num(1).DeepBytes())
	assert.Equal(t, 16+2, Str("ab").DeepBytes())
	assert.Equal(t, 24+(16+8)+(16+16+2), arr.DeepBytes(),
		"expected container overhead plus per-element slots")
}

func TestValue_readOnly(t *testing.T) {
	v := Num(3.14).AsReadOnly()
	assert.True(t, v.ReadOnly())
	assert.False(t, Num(3.14).ReadOnly())
	assert.True(t, Module(0, "m").ReadOnly(), "expected modules born read-only")
}

func TestValue_addr(t *testing.T) {
	assert.Equal(t, "0x0", Null().Addr())
	assert.Equal(t, "0x0", Num(1).Addr())

	s := Str("x")
	assert.NotEqual(t, "0x0", s.Addr())
	assert.Equal(t, s.Addr(), s.Addr(), "expected a stable backing address")

	a := Array(nil)
	b := Array(nil)
	assert.NotEqual(t, a.Addr(), b.Addr(), "expected distinct arrays at distinct addresses")
}
