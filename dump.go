package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/jcorbin/vyne/internal/eval"
	"github.com/jcorbin/vyne/internal/symtab"
)

// envDumper renders every binding in the environment, one line per
// variable, for the REPL's `view tree` command and the -dump flag.
type envDumper struct {
	ev  *eval.Evaluator
	out io.Writer
}

func (dump envDumper) dump() {
	fmt.Fprintf(dump.out, "--- Current Symbol env ---\n")

	any := false
	for _, group := range dump.ev.Env.Groups() {
		table := dump.ev.Env.Group(group)

		ids := make([]uint32, 0, len(table))
		for id := range table {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			any = true
			name := dump.ev.Pool.Get(id)
			if group == symtab.Global {
				fmt.Fprintf(dump.out, "%v = ", name)
			} else {
				fmt.Fprintf(dump.out, "%v.%v = ", group, name)
			}
			table[id].Print(dump.out)
			fmt.Fprintln(dump.out)
		}
	}

	if !any {
		fmt.Fprintf(dump.out, "(no variables defined)\n")
	}
	fmt.Fprintf(dump.out, "-----------------------------\n")
}
