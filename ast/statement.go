package ast

import (
	"errors"
	"io"

	"github.com/mython-lang/mython/runtime"
)

// Compound executes its statements in order and yields None.
type Compound struct {
	statements []Statement
}

func NewCompound(statements ...Statement) *Compound {
	return &Compound{statements: statements}
}

func (c *Compound) Add(stmt Statement) {
	c.statements = append(c.statements, stmt)
}

func (c *Compound) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	for _, stmt := range c.statements {
		if _, err := stmt.Execute(closure, ctx); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.None(), nil
}

// Assignment binds a name in the innermost closure.
type Assignment struct {
	name string
	expr Statement
}

func NewAssignment(name string, expr Statement) *Assignment {
	return &Assignment{name: name, expr: expr}
}

func (a *Assignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	value, err := a.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	closure[a.name] = value
	return value, nil
}

// FieldAssignment writes a field of a class instance: `a.b.c = expr`.
type FieldAssignment struct {
	object *VariableValue
	field  string
	expr   Statement
}

func NewFieldAssignment(object *VariableValue, field string, expr Statement) *FieldAssignment {
	return &FieldAssignment{object: object, field: field, expr: expr}
}

func (f *FieldAssignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	object, err := f.object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	instance, ok := runtime.TryAs[*runtime.ClassInstance](object)
	if !ok {
		return runtime.None(), errorf("cannot assign field %s of a non-instance value", f.field)
	}
	value, err := f.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	instance.Fields()[f.field] = value
	return value, nil
}

// Print writes its arguments space-separated, with a trailing newline, to
// the context's output sink. With no arguments it prints an empty line.
type Print struct {
	args []Statement
}

func NewPrint(args ...Statement) *Print {
	return &Print{args: args}
}

func (p *Print) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	out := ctx.Output()
	for i, arg := range p.args {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return runtime.None(), err
			}
		}
		value, err := arg.Execute(closure, ctx)
		if err != nil {
			return runtime.None(), err
		}
		if err := runtime.PrintValue(value, out, ctx); err != nil {
			return runtime.None(), err
		}
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

// returnSignal unwinds the enclosing MethodBody. It travels as an error so
// every intermediate node releases control without special cases.
type returnSignal struct {
	value runtime.ObjectHolder
}

func (*returnSignal) Error() string {
	return "return outside of a method body"
}

// Return yields a value from the enclosing method body.
type Return struct {
	expr Statement
}

func NewReturn(expr Statement) *Return {
	return &Return{expr: expr}
}

func (r *Return) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	value, err := r.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), &returnSignal{value: value}
}

// MethodBody wraps the compiled body of a method. It catches the return
// signal; a body that runs to the end yields None.
type MethodBody struct {
	body Statement
}

func NewMethodBody(body Statement) *MethodBody {
	return &MethodBody{body: body}
}

func (m *MethodBody) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	_, err := m.body.Execute(closure, ctx)
	var ret *returnSignal
	if errors.As(err, &ret) {
		return ret.value, nil
	}
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

// IfElse chooses a branch by the truthiness of its condition. The else
// branch may be nil.
type IfElse struct {
	condition Statement
	ifBody    Statement
	elseBody  Statement
}

func NewIfElse(condition, ifBody, elseBody Statement) *IfElse {
	return &IfElse{condition: condition, ifBody: ifBody, elseBody: elseBody}
}

func (i *IfElse) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	condition, err := i.condition.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(condition) {
		return i.ifBody.Execute(closure, ctx)
	}
	if i.elseBody != nil {
		return i.elseBody.Execute(closure, ctx)
	}
	return runtime.None(), nil
}

// ClassDefinition binds a class under its own name.
type ClassDefinition struct {
	cls runtime.ObjectHolder
}

func NewClassDefinition(cls runtime.ObjectHolder) *ClassDefinition {
	return &ClassDefinition{cls: cls}
}

func (c *ClassDefinition) Execute(closure runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	class := c.cls.MustGet().(*runtime.Class)
	closure[class.GetName()] = c.cls
	return c.cls, nil
}
