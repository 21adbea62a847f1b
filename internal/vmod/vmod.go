// Package vmod implements the native module registry: vcore, vmath,
// vglib and vmem register host-provided values into the environment
// under "global.<name>" when a `module <name>;` statement runs.
package vmod

import (
	"bufio"
	"io"
	"io/ioutil"
	"math/rand"
	"strings"
	"time"

	"github.com/jcorbin/vyne/internal/flushio"
	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// Setup registers one module's bindings. It must ensure the module's
// group exists and insert values under interned ids; registration is
// idempotent and completes before the module statement's value binds.
type Setup func(env *symtab.Container, pool *strpool.Pool) error

// Host carries the process resources native modules reach for. Tests
// pin Now, Rand and Sleep for determinism.
type Host struct {
	In  *bufio.Reader
	Out flushio.WriteFlusher

	Now   func() time.Time
	Rand  *rand.Rand
	Sleep func(d time.Duration)
}

// NewHost wires a host around the given streams; nil falls back to
// empty input and discarded output.
func NewHost(in io.Reader, out io.Writer) *Host {
	h := &Host{
		Now:   time.Now,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		Sleep: time.Sleep,
	}
	h.SetInput(in)
	h.SetOutput(out)
	return h
}

// SetInput replaces the reader vcore.input consumes.
func (h *Host) SetInput(r io.Reader) {
	if r == nil {
		r = strings.NewReader("")
	}
	h.In = bufio.NewReader(r)
}

// SetOutput replaces the writer log and vglib frames go to.
func (h *Host) SetOutput(w io.Writer) {
	if w == nil {
		w = ioutil.Discard
	}
	h.Out = flushio.NewWriteFlusher(w)
}

// Registry maps module names to their setup functions.
func (h *Host) Registry() map[string]Setup {
	return map[string]Setup{
		"vcore": h.SetupVCore,
		"vmath": h.SetupVMath,
		"vglib": h.SetupVGLib,
		"vmem":  h.SetupVMem,
	}
}

// moduleTable materialises the module's group and hands back its table.
func moduleTable(env *symtab.Container, name string) symtab.Table {
	return env.EnsureGroup(symtab.Global + "." + name)
}

func define(table symtab.Table, pool *strpool.Pool, name string, v value.Value) {
	table[pool.Intern(name)] = v
}

func defineConst(table symtab.Table, pool *strpool.Pool, name string, v value.Value) {
	table[pool.Intern(name)] = v.AsReadOnly()
}
