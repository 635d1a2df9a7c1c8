package parser_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mython-lang/mython/lexer"
	"github.com/mython-lang/mython/parser"
	"github.com/mython-lang/mython/runtime"
	"github.com/mython-lang/mython/utils"
)

func parse(t *testing.T, source string) (*parser.Parser, error) {
	t.Helper()
	lex, err := lexer.New(strings.NewReader(source))
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", source, err)
	}
	p := parser.NewParser(lex)
	_, err = p.ParseProgram()
	return p, err
}

func TestParseFromTestData(t *testing.T) {
	t.Parallel()

	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	for _, testcase := range utils.ReadTestData(s) {
		if _, err := parse(t, testcase.Input); err != nil {
			t.Errorf("%s returned error: %v", testcase.Label, err)
		}
	}
}

func TestParseRegistersClasses(t *testing.T) {
	t.Parallel()

	p, err := parse(t, "class A:\n  def m():\n    return 1\nclass B(A):\n  def n():\n    return 2\n")
	if err != nil {
		t.Fatal(err)
	}

	classes := p.Classes()
	a, ok := classes["A"]
	if !ok {
		t.Fatal("A is not registered")
	}
	b, ok := classes["B"]
	if !ok {
		t.Fatal("B is not registered")
	}
	if b.GetMethod("m") != a.GetMethod("m") {
		t.Error("B does not inherit A.m")
	}
	if b.GetMethod("n") == nil {
		t.Error("B.n is missing")
	}
}

// Declared classes can be seeded into a fresh parser, the way the REPL
// carries definitions across inputs.
func TestDeclare(t *testing.T) {
	t.Parallel()

	lex, err := lexer.New(strings.NewReader("a = A()\n"))
	if err != nil {
		t.Fatal(err)
	}
	p := parser.NewParser(lex)
	p.Declare(runtime.NewClass("A", nil, nil))
	if _, err := p.ParseProgram(); err != nil {
		t.Errorf("ParseProgram returned error: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	syntaxErrors := []string{
		"x = \n",
		"a.b(1) = 2\n",
		"print 1,\n",
		"def m():\n  return 1\n",
		"x = y(1)\n",
	}
	for _, source := range syntaxErrors {
		var syntaxErr parser.SyntaxError
		if _, err := parse(t, source); !errors.As(err, &syntaxErr) {
			t.Errorf("parse(%q) = %v, want SyntaxError", source, err)
		}
	}

	// Token-level expectation failures surface the lexer's error kind.
	expectErrors := []string{
		"if x\n  y = 1\n",
		"class A\n  def m():\n    return 1\n",
		"x = (1\n",
	}
	for _, source := range expectErrors {
		var lexErr lexer.Error
		if _, err := parse(t, source); !errors.As(err, &lexErr) {
			t.Errorf("parse(%q) = %v, want lexer.Error", source, err)
		}
	}
}
