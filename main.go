/*
Vyne is a small dynamically typed scripting language: variables with
optional type annotations, arrays with range literals, subroutines,
while and three-mode through loops, nested group namespaces, and native
host modules (vcore, vmath, vglib, vmem) attached with `module name;`.

This command runs it two ways. With no arguments it starts a REPL; with
--ast or --bytecode it executes a .vy file through the tree-walking
interpreter or the (partial) bytecode VM. The tree walker is the
normative semantics; the bytecode path carries a minimal expression and
control-flow subset.
*/
package main

import (
	"flag"
	"os"

	"github.com/jcorbin/vyne/internal/eval"
	"github.com/jcorbin/vyne/internal/logio"
)

func main() {
	var (
		astFile  string
		byteFile string
		trace    bool
		dump     bool
	)
	flag.StringVar(&astFile, "ast", "", "execute a .vy file with the tree-walking interpreter")
	flag.StringVar(&byteFile, "bytecode", "", "execute a .vy file with the bytecode VM")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print the environment after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	opts := []eval.Option{
		eval.WithInput(os.Stdin),
		eval.WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, eval.WithLogf(log.Leveledf("TRACE")))
	}
	ev := eval.New(opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer envDumper{ev: ev, out: lw}.dump()
	}

	switch {
	case astFile != "":
		runFile(ev, &log, astFile, false, trace)
	case byteFile != "":
		runFile(ev, &log, byteFile, true, trace)
	default:
		repl(ev)
	}
}
