package vmod

import (
	"github.com/pkg/errors"

	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// per-binding accounting charges for usage(): the interned key plus a
// tagged value slot, in line with the value package's deep byte rules.
const (
	bindKeyBytes  = 4
	bindSlotBytes = 16
)

// SetupVMem registers the memory introspection module. Its natives
// close over the environment so usage() can walk every group.
func (h *Host) SetupVMem(env *symtab.Container, pool *strpool.Pool) error {
	vmem := moduleTable(env, "vmem")

	define(vmem, pool, "address", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Str("0x0"), nil
		}
		return value.Str(args[0].Addr()), nil
	}))

	define(vmem, pool, "usage", value.Native(func(args []value.Value) (value.Value, error) {
		if len(args) > 1 {
			return value.Null(), errors.Errorf("vmem.usage() takes 1 or 0 arguments, but got %v", len(args))
		}
		if len(args) == 1 {
			return value.Num(float64(args[0].DeepBytes())), nil
		}

		total := 0
		for _, group := range env.Groups() {
			total += len(group)
			for _, v := range env.Group(group) {
				total += bindKeyBytes + bindSlotBytes + v.DeepBytes()
			}
		}
		return value.Num(float64(total)), nil
	}))

	return nil
}
