package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jcorbin/vyne/internal/eval"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/panicerr"
	"github.com/jcorbin/vyne/internal/parser"
	"github.com/jcorbin/vyne/internal/vmod"
)

// repl reads statements a line at a time. Errors print and the
// environment survives them; `exit` quits, `view tree` dumps the
// environment, empty lines are ignored.
func repl(ev *eval.Evaluator) {
	out := os.Stdout
	fmt.Fprintf(out, "Vyne Interpreter %v\n", vmod.Version)
	fmt.Fprintf(out, "Type exit to quit.\n\n")

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(out, ">> ")
		if !in.Scan() {
			break
		}
		line := in.Text()

		switch line {
		case "exit":
			return
		case "":
			continue
		case "view tree":
			envDumper{ev: ev, out: out}.dump()
			continue
		}

		prog, err := parser.Parse(lexer.Tokenize(line), ev.Pool)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		err = panicerr.Recover("statement", func() error {
			for _, stmt := range prog.Stmts {
				res, rerr := ev.EvalStmt(stmt)
				if rerr != nil {
					return rerr
				}
				if !res.IsNull() {
					res.Print(out)
					fmt.Fprintln(out)
				}
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
