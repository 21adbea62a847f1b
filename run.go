package main

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/jcorbin/vyne/internal/bytecode"
	"github.com/jcorbin/vyne/internal/eval"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/logio"
	"github.com/jcorbin/vyne/internal/panicerr"
	"github.com/jcorbin/vyne/internal/parser"
)

// exit code 70 marks VM runtime errors, as the original driver did.
const vmRuntimeExitCode = 70

func runFile(ev *eval.Evaluator, log *logio.Logger, name string, useBytecode, trace bool) {
	src, err := readSource(name)
	if err != nil {
		log.ErrorIf(err)
		return
	}

	prog, err := parser.Parse(lexer.Tokenize(src), ev.Pool)
	if err != nil {
		log.Errorf("Compilation Error: %v", err)
		return
	}

	if useBytecode {
		chunk, err := bytecode.Compile(prog)
		if err != nil {
			log.Errorf("Compilation Error: %v", err)
			return
		}
		if trace {
			lw := &logio.Writer{Logf: log.Leveledf("DISASM")}
			chunk.Disassemble(lw, name)
			lw.Close()
		}

		vm := bytecode.New(ev.Env, ev.Pool, os.Stdout)
		err = panicerr.Recover("VM", func() error {
			return vm.Interpret(chunk)
		})
		if err != nil {
			log.Errorf("Runtime Error: %v", err)
			log.SetExitCode(vmRuntimeExitCode)
		}
		return
	}

	err = panicerr.Recover("interpreter", func() error {
		_, rerr := ev.EvalProgram(prog)
		return rerr
	})
	if err != nil {
		log.Errorf("Runtime Error: %v", err)
	}
}

// readSource loads a .vy file; the extension policy lives here in the
// driver, not in the engine.
func readSource(name string) (string, error) {
	if !strings.HasSuffix(name, ".vy") {
		return "", errors.Errorf("file must end in .vy: %v", name)
	}
	src, err := ioutil.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "could not open file %v", name)
	}
	return string(src), nil
}
