package ast_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mython-lang/mython/ast"
	"github.com/mython-lang/mython/runtime"
)

func execute(t *testing.T, program ast.Statement) (string, runtime.Closure) {
	t.Helper()
	var out bytes.Buffer
	closure := make(runtime.Closure)
	if _, err := program.Execute(closure, runtime.NewSimpleContext(&out)); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	return out.String(), closure
}

func executeErr(t *testing.T, program ast.Statement) error {
	t.Helper()
	var out bytes.Buffer
	_, err := program.Execute(make(runtime.Closure), runtime.NewSimpleContext(&out))
	if err == nil {
		t.Fatal("Execute did not fail")
	}
	return err
}

func TestAssignmentAndPrint(t *testing.T) {
	t.Parallel()

	program := ast.NewCompound(
		ast.NewAssignment("x", ast.NewNumberConst(2)),
		ast.NewPrint(
			ast.NewVariableValue([]string{"x"}),
			ast.NewNumberConst(3),
			ast.NewStringConst("s"),
			ast.NewNoneConst(),
		),
		ast.NewPrint(),
	)

	output, closure := execute(t, program)
	if diff := cmp.Diff("2 3 s None\n\n", output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if n, ok := runtime.TryAs[*runtime.Number](closure["x"]); !ok || n.GetValue() != 2 {
		t.Error("x is not bound to 2")
	}
}

func TestUndefinedName(t *testing.T) {
	t.Parallel()

	err := executeErr(t, ast.NewVariableValue([]string{"missing"}))
	var runtimeErr runtime.Error
	if !errors.As(err, &runtimeErr) {
		t.Errorf("got %v, want runtime.Error", err)
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		program  ast.Statement
		expected string
	}{
		{ast.NewAdd(ast.NewNumberConst(2), ast.NewNumberConst(3)), "5"},
		{ast.NewAdd(ast.NewStringConst("ab"), ast.NewStringConst("cd")), "abcd"},
		{ast.NewSub(ast.NewNumberConst(2), ast.NewNumberConst(5)), "-3"},
		{ast.NewMult(ast.NewNumberConst(4), ast.NewNumberConst(5)), "20"},
		{ast.NewDiv(ast.NewNumberConst(7), ast.NewNumberConst(2)), "3"},
		{ast.NewNegate(ast.NewNumberConst(9)), "-9"},
		{ast.NewStringify(ast.NewNumberConst(42)), "42"},
		{ast.NewStringify(ast.NewNoneConst()), "None"},
	}

	for _, testcase := range testcases {
		output, _ := execute(t, ast.NewPrint(testcase.program))
		if output != testcase.expected+"\n" {
			t.Errorf("got %q, want %q", output, testcase.expected+"\n")
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	t.Parallel()

	programs := []ast.Statement{
		ast.NewDiv(ast.NewNumberConst(1), ast.NewNumberConst(0)),
		ast.NewAdd(ast.NewNumberConst(1), ast.NewStringConst("x")),
		ast.NewSub(ast.NewStringConst("a"), ast.NewStringConst("b")),
		ast.NewNegate(ast.NewStringConst("a")),
	}

	for _, program := range programs {
		err := executeErr(t, program)
		var runtimeErr runtime.Error
		if !errors.As(err, &runtimeErr) {
			t.Errorf("got %v, want runtime.Error", err)
		}
	}
}

func TestLogic(t *testing.T) {
	t.Parallel()

	boom := ast.NewDiv(ast.NewNumberConst(1), ast.NewNumberConst(0))

	testcases := []struct {
		program  ast.Statement
		expected string
	}{
		{ast.NewAnd(ast.NewNumberConst(1), ast.NewStringConst("x")), "True"},
		{ast.NewAnd(ast.NewNumberConst(0), boom), "False"},
		{ast.NewOr(ast.NewStringConst(""), ast.NewNumberConst(0)), "False"},
		{ast.NewOr(ast.NewNumberConst(2), boom), "True"},
		{ast.NewNot(ast.NewNoneConst()), "True"},
		{ast.NewNot(ast.NewNumberConst(3)), "False"},
	}

	for _, testcase := range testcases {
		output, _ := execute(t, ast.NewPrint(testcase.program))
		if output != testcase.expected+"\n" {
			t.Errorf("got %q, want %q", output, testcase.expected+"\n")
		}
	}
}

func TestIfElse(t *testing.T) {
	t.Parallel()

	branch := func(cond ast.Statement) ast.Statement {
		return ast.NewIfElse(cond,
			ast.NewPrint(ast.NewStringConst("yes")),
			ast.NewPrint(ast.NewStringConst("no")),
		)
	}

	if output, _ := execute(t, branch(ast.NewNumberConst(1))); output != "yes\n" {
		t.Errorf("true branch printed %q", output)
	}
	if output, _ := execute(t, branch(ast.NewStringConst(""))); output != "no\n" {
		t.Errorf("false branch printed %q", output)
	}

	noElse := ast.NewIfElse(ast.NewNumberConst(0), ast.NewPrint(ast.NewStringConst("yes")), nil)
	if output, _ := execute(t, noElse); output != "" {
		t.Errorf("missing else branch printed %q", output)
	}
}

func TestComparisonNode(t *testing.T) {
	t.Parallel()

	program := ast.NewPrint(
		ast.NewComparison(runtime.Less, ast.NewNumberConst(1), ast.NewNumberConst(2)),
		ast.NewComparison(runtime.Equal, ast.NewStringConst("a"), ast.NewStringConst("b")),
	)
	output, _ := execute(t, program)
	if output != "True False\n" {
		t.Errorf("got %q", output)
	}
}

// rectClass builds the equivalent of
//
//	class Rect:
//	  def __init__(w, h):
//	    self.w = w
//	    self.h = h
//	  def area():
//	    return self.w * self.h
func rectClass() *runtime.Class {
	selfField := func(name string) *ast.VariableValue {
		return ast.NewVariableValue([]string{"self", name})
	}
	init := runtime.Method{
		Name:         "__init__",
		FormalParams: []string{"w", "h"},
		Body: ast.NewMethodBody(ast.NewCompound(
			ast.NewFieldAssignment(ast.NewVariableValue([]string{"self"}), "w", ast.NewVariableValue([]string{"w"})),
			ast.NewFieldAssignment(ast.NewVariableValue([]string{"self"}), "h", ast.NewVariableValue([]string{"h"})),
		)),
	}
	area := runtime.Method{
		Name: "area",
		Body: ast.NewMethodBody(
			ast.NewReturn(ast.NewMult(selfField("w"), selfField("h"))),
		),
	}
	return runtime.NewClass("Rect", []runtime.Method{init, area}, nil)
}

func TestClassInstanceLifecycle(t *testing.T) {
	t.Parallel()

	program := ast.NewCompound(
		ast.NewAssignment("r", ast.NewNewInstance(rectClass(), ast.NewNumberConst(2), ast.NewNumberConst(3))),
		ast.NewPrint(ast.NewMethodCall(ast.NewVariableValue([]string{"r"}), "area")),
		ast.NewFieldAssignment(ast.NewVariableValue([]string{"r"}), "w", ast.NewNumberConst(10)),
		ast.NewPrint(ast.NewVariableValue([]string{"r", "w"}), ast.NewVariableValue([]string{"r", "h"})),
		ast.NewPrint(ast.NewMethodCall(ast.NewVariableValue([]string{"r"}), "area")),
	)

	output, _ := execute(t, program)
	if diff := cmp.Diff("6\n10 3\n30\n", output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMethodBodyWithoutReturnYieldsNone(t *testing.T) {
	t.Parallel()

	cls := runtime.NewClass("A", []runtime.Method{{
		Name: "noop",
		Body: ast.NewMethodBody(ast.NewCompound()),
	}}, nil)

	program := ast.NewCompound(
		ast.NewAssignment("a", ast.NewNewInstance(cls)),
		ast.NewPrint(ast.NewMethodCall(ast.NewVariableValue([]string{"a"}), "noop")),
	)
	output, _ := execute(t, program)
	if output != "None\n" {
		t.Errorf("got %q", output)
	}
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	t.Parallel()

	// def pick(): if self.flag: return 1 ... return 2
	body := ast.NewMethodBody(ast.NewCompound(
		ast.NewIfElse(
			ast.NewVariableValue([]string{"self", "flag"}),
			ast.NewReturn(ast.NewNumberConst(1)),
			nil,
		),
		ast.NewReturn(ast.NewNumberConst(2)),
	))
	cls := runtime.NewClass("A", []runtime.Method{{Name: "pick", Body: body}}, nil)

	program := ast.NewCompound(
		ast.NewAssignment("a", ast.NewNewInstance(cls)),
		ast.NewFieldAssignment(ast.NewVariableValue([]string{"a"}), "flag", ast.NewBoolConst(true)),
		ast.NewPrint(ast.NewMethodCall(ast.NewVariableValue([]string{"a"}), "pick")),
		ast.NewFieldAssignment(ast.NewVariableValue([]string{"a"}), "flag", ast.NewBoolConst(false)),
		ast.NewPrint(ast.NewMethodCall(ast.NewVariableValue([]string{"a"}), "pick")),
	)

	output, _ := execute(t, program)
	if diff := cmp.Diff("1\n2\n", output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNewInstanceWithoutMatchingInit(t *testing.T) {
	t.Parallel()

	plain := runtime.NewClass("Plain", nil, nil)
	if _, closure := execute(t, ast.NewAssignment("p", ast.NewNewInstance(plain))); closure["p"].Empty() {
		t.Error("instantiation without __init__ failed")
	}

	err := executeErr(t, ast.NewNewInstance(plain, ast.NewNumberConst(1)))
	var runtimeErr runtime.Error
	if !errors.As(err, &runtimeErr) {
		t.Errorf("got %v, want runtime.Error", err)
	}
}

func TestInstanceAdd(t *testing.T) {
	t.Parallel()

	cls := runtime.NewClass("Vec", []runtime.Method{
		{
			Name:         "__init__",
			FormalParams: []string{"v"},
			Body: ast.NewMethodBody(
				ast.NewFieldAssignment(ast.NewVariableValue([]string{"self"}), "v", ast.NewVariableValue([]string{"v"})),
			),
		},
		{
			Name:         "__add__",
			FormalParams: []string{"other"},
			Body: ast.NewMethodBody(
				ast.NewReturn(ast.NewAdd(ast.NewVariableValue([]string{"self", "v"}), ast.NewVariableValue([]string{"other"}))),
			),
		},
	}, nil)

	program := ast.NewCompound(
		ast.NewAssignment("a", ast.NewNewInstance(cls, ast.NewNumberConst(40))),
		ast.NewPrint(ast.NewAdd(ast.NewVariableValue([]string{"a"}), ast.NewNumberConst(2))),
	)
	output, _ := execute(t, program)
	if output != "42\n" {
		t.Errorf("got %q", output)
	}
}
