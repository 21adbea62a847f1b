// Package symtab implements the scoped symbol container: group paths
// like "global", "global.math" or synthetic call frames map interned
// ids to runtime values.
package symtab

import (
	"sort"

	"github.com/jcorbin/vyne/internal/value"
)

// Global is the root group; it always exists.
const Global = "global"

// Table maps interned ids to values within one group.
type Table map[uint32]value.Value

// Container holds every group's table.
type Container struct {
	groups map[string]Table
}

// New returns a container with the global group in place.
func New() *Container {
	return &Container{groups: map[string]Table{Global: {}}}
}

// Lookup reads id from exactly the named group.
func (c *Container) Lookup(group string, id uint32) (value.Value, bool) {
	v, ok := c.groups[group][id]
	return v, ok
}

// Define binds id in the named group, materialising the group if
// needed.
func (c *Container) Define(group string, id uint32, v value.Value) {
	table, ok := c.groups[group]
	if !ok {
		table = Table{}
		c.groups[group] = table
	}
	table[id] = v
}

// Erase removes one binding; absent bindings are a no-op.
func (c *Container) Erase(group string, id uint32) {
	delete(c.groups[group], id)
}

// DropGroup removes a whole group; call frames are dropped this way on
// every function exit path.
func (c *Container) DropGroup(group string) {
	if group != Global {
		delete(c.groups, group)
	}
}

// EnsureGroup materialises an empty group if absent, as module
// registration requires.
func (c *Container) EnsureGroup(group string) Table {
	table, ok := c.groups[group]
	if !ok {
		table = Table{}
		c.groups[group] = table
	}
	return table
}

// HasGroup reports whether the group exists.
func (c *Container) HasGroup(group string) bool {
	_, ok := c.groups[group]
	return ok
}

// Group returns the named group's table, nil if absent.
func (c *Container) Group(group string) Table { return c.groups[group] }

// Groups returns all group names in sorted order, for deterministic
// dumps.
func (c *Container) Groups() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the target group for a reference: an explicit scope
// path [a, b] targets "global.a.b"; otherwise the current group stands.
func Resolve(scope []string, current string) string {
	if len(scope) == 0 {
		return current
	}
	target := Global
	for _, g := range scope {
		target += "." + g
	}
	return target
}

// LookupScoped applies the variable resolution rule: the resolved
// target group first, then the global group unless the target was
// already global. The boolean reports whether the id was found at all.
func (c *Container) LookupScoped(scope []string, current string, id uint32) (value.Value, bool) {
	target := Resolve(scope, current)
	if v, ok := c.groups[target][id]; ok {
		return v, true
	}
	if target != Global {
		if v, ok := c.groups[Global][id]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}
