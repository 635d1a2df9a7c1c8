// Package driver wires the lexer, parser and executor into a pipeline.
package driver

import (
	"io"
	"strings"

	"github.com/mython-lang/mython/lexer"
	"github.com/mython-lang/mython/parser"
	"github.com/mython-lang/mython/runtime"
)

// Interpreter keeps the global environment and declared classes across
// successive sources, which is what the REPL needs between input batches.
type Interpreter struct {
	globals runtime.Closure
	classes map[string]*runtime.Class
	ctx     runtime.Context
}

func New(out io.Writer) *Interpreter {
	return &Interpreter{
		globals: make(runtime.Closure),
		classes: make(map[string]*runtime.Class),
		ctx:     runtime.NewSimpleContext(out),
	}
}

// Run lexes, parses and executes one source text against the persistent
// global environment.
func (i *Interpreter) Run(source string) error {
	lex, err := lexer.New(strings.NewReader(source))
	if err != nil {
		return err
	}
	p := parser.NewParser(lex)
	for _, cls := range i.classes {
		p.Declare(cls)
	}
	program, err := p.ParseProgram()
	if err != nil {
		return err
	}
	for name, cls := range p.Classes() {
		i.classes[name] = cls
	}
	_, err = program.Execute(i.globals, i.ctx)
	return err
}

// Globals exposes the interpreter's global environment.
func (i *Interpreter) Globals() runtime.Closure {
	return i.globals
}

// RunSource executes a standalone program, writing its output to out.
func RunSource(source string, out io.Writer) error {
	return New(out).Run(source)
}
