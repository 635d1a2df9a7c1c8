package ast

import (
	"bytes"
	"strings"

	"github.com/mython-lang/mython/runtime"
)

// Constant yields a fixed value.
type Constant struct {
	value runtime.ObjectHolder
}

func NewConstant(value runtime.ObjectHolder) *Constant {
	return &Constant{value: value}
}

func NewNumberConst(value int) *Constant {
	return NewConstant(runtime.Own(runtime.NewNumber(value)))
}

func NewStringConst(value string) *Constant {
	return NewConstant(runtime.Own(runtime.NewString(value)))
}

func NewBoolConst(value bool) *Constant {
	return NewConstant(runtime.Own(runtime.NewBool(value)))
}

func NewNoneConst() *Constant {
	return NewConstant(runtime.None())
}

func (c *Constant) Execute(_ runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	return c.value, nil
}

// VariableValue reads a dotted chain of names: a plain variable, or a
// variable followed by instance field accesses.
type VariableValue struct {
	chain []string
}

func NewVariableValue(chain []string) *VariableValue {
	return &VariableValue{chain: chain}
}

func (v *VariableValue) Chain() []string {
	return v.chain
}

func (v *VariableValue) Execute(closure runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	value, ok := closure[v.chain[0]]
	if !ok {
		return runtime.None(), errorf("name %s is not defined", v.chain[0])
	}
	for _, field := range v.chain[1:] {
		instance, ok := runtime.TryAs[*runtime.ClassInstance](value)
		if !ok {
			return runtime.None(), errorf("field access %s on a non-instance value", field)
		}
		value, ok = instance.Fields()[field]
		if !ok {
			return runtime.None(), errorf("instance of %s has no field %s",
				instance.Class().GetName(), field)
		}
	}
	return value, nil
}

func (v *VariableValue) String() string {
	return strings.Join(v.chain, ".")
}

type binary struct {
	lhs Statement
	rhs Statement
}

func (b binary) operands(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, runtime.ObjectHolder, error) {
	lhs, err := b.lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	rhs, err := b.rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	return lhs, rhs, nil
}

// Add sums numbers, concatenates strings, and defers to the left
// operand's __add__ of arity one for class instances.
type Add struct {
	binary
}

func NewAdd(lhs, rhs Statement) *Add {
	return &Add{binary{lhs: lhs, rhs: rhs}}
}

func (a *Add) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := a.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if l, ok := runtime.TryAs[*runtime.Number](lhs); ok {
		if r, ok := runtime.TryAs[*runtime.Number](rhs); ok {
			return runtime.Own(runtime.NewNumber(l.GetValue() + r.GetValue())), nil
		}
	}
	if l, ok := runtime.TryAs[*runtime.String](lhs); ok {
		if r, ok := runtime.TryAs[*runtime.String](rhs); ok {
			return runtime.Own(runtime.NewString(l.GetValue() + r.GetValue())), nil
		}
	}
	if l, ok := runtime.TryAs[*runtime.ClassInstance](lhs); ok && l.HasMethod("__add__", 1) {
		return l.Call("__add__", []runtime.ObjectHolder{rhs}, ctx)
	}
	return runtime.None(), errorf("unsupported operand types for +")
}

type Sub struct {
	binary
}

func NewSub(lhs, rhs Statement) *Sub {
	return &Sub{binary{lhs: lhs, rhs: rhs}}
}

func (s *Sub) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := s.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	l, r, err := numberOperands(lhs, rhs, "-")
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewNumber(l - r)), nil
}

type Mult struct {
	binary
}

func NewMult(lhs, rhs Statement) *Mult {
	return &Mult{binary{lhs: lhs, rhs: rhs}}
}

func (m *Mult) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := m.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	l, r, err := numberOperands(lhs, rhs, "*")
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewNumber(l * r)), nil
}

// Div is integer division; dividing by zero is a runtime error.
type Div struct {
	binary
}

func NewDiv(lhs, rhs Statement) *Div {
	return &Div{binary{lhs: lhs, rhs: rhs}}
}

func (d *Div) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := d.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	l, r, err := numberOperands(lhs, rhs, "/")
	if err != nil {
		return runtime.None(), err
	}
	if r == 0 {
		return runtime.None(), errorf("division by zero")
	}
	return runtime.Own(runtime.NewNumber(l / r)), nil
}

func numberOperands(lhs, rhs runtime.ObjectHolder, op string) (int, int, error) {
	l, ok := runtime.TryAs[*runtime.Number](lhs)
	if !ok {
		return 0, 0, errorf("unsupported operand types for %s", op)
	}
	r, ok := runtime.TryAs[*runtime.Number](rhs)
	if !ok {
		return 0, 0, errorf("unsupported operand types for %s", op)
	}
	return l.GetValue(), r.GetValue(), nil
}

// Negate is unary minus on a number.
type Negate struct {
	expr Statement
}

func NewNegate(expr Statement) *Negate {
	return &Negate{expr: expr}
}

func (n *Negate) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	value, err := n.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	number, ok := runtime.TryAs[*runtime.Number](value)
	if !ok {
		return runtime.None(), errorf("unary minus on a non-number value")
	}
	return runtime.Own(runtime.NewNumber(-number.GetValue())), nil
}

// Or yields the boolean disjunction of its operands' truthiness. The
// right operand is not evaluated when the left one is already true.
type Or struct {
	binary
}

func NewOr(lhs, rhs Statement) *Or {
	return &Or{binary{lhs: lhs, rhs: rhs}}
}

func (o *Or) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := o.lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(lhs) {
		return runtime.Own(runtime.NewBool(true)), nil
	}
	rhs, err := o.rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(runtime.IsTrue(rhs))), nil
}

// And yields the boolean conjunction of its operands' truthiness. The
// right operand is not evaluated when the left one is already false.
type And struct {
	binary
}

func NewAnd(lhs, rhs Statement) *And {
	return &And{binary{lhs: lhs, rhs: rhs}}
}

func (a *And) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := a.lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if !runtime.IsTrue(lhs) {
		return runtime.Own(runtime.NewBool(false)), nil
	}
	rhs, err := a.rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(runtime.IsTrue(rhs))), nil
}

type Not struct {
	expr Statement
}

func NewNot(expr Statement) *Not {
	return &Not{expr: expr}
}

func (n *Not) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	value, err := n.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(!runtime.IsTrue(value))), nil
}

// Comparator is one of the comparison free functions of the runtime.
type Comparator func(lhs, rhs runtime.ObjectHolder, ctx runtime.Context) (bool, error)

// Comparison applies a comparator to its operands and yields a Bool.
type Comparison struct {
	comparator Comparator
	binary
}

func NewComparison(comparator Comparator, lhs, rhs Statement) *Comparison {
	return &Comparison{comparator: comparator, binary: binary{lhs: lhs, rhs: rhs}}
}

func (c *Comparison) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := c.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	result, err := c.comparator(lhs, rhs, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(result)), nil
}

// NewInstance instantiates a class and runs a matching __init__, if any.
type NewInstance struct {
	class *runtime.Class
	args  []Statement
}

func NewNewInstance(class *runtime.Class, args ...Statement) *NewInstance {
	return &NewInstance{class: class, args: args}
}

func (n *NewInstance) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	instance := runtime.NewClassInstance(n.class)
	actual, err := executeArgs(n.args, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if instance.HasMethod("__init__", len(actual)) {
		if _, err := instance.Call("__init__", actual, ctx); err != nil {
			return runtime.None(), err
		}
	} else if len(actual) > 0 {
		return runtime.None(), errorf("call of undefined method __init__")
	}
	return runtime.Own(instance), nil
}

// MethodCall invokes a method on the value of an object expression.
type MethodCall struct {
	object Statement
	method string
	args   []Statement
}

func NewMethodCall(object Statement, method string, args ...Statement) *MethodCall {
	return &MethodCall{object: object, method: method, args: args}
}

func (m *MethodCall) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	object, err := m.object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	instance, ok := runtime.TryAs[*runtime.ClassInstance](object)
	if !ok {
		return runtime.None(), errorf("method call %s on a non-instance value", m.method)
	}
	actual, err := executeArgs(m.args, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return instance.Call(m.method, actual, ctx)
}

// Stringify renders its operand the way print would and yields a String.
type Stringify struct {
	expr Statement
}

func NewStringify(expr Statement) *Stringify {
	return &Stringify{expr: expr}
}

func (s *Stringify) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	value, err := s.expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	var buf bytes.Buffer
	if err := runtime.PrintValue(value, &buf, ctx); err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewString(buf.String())), nil
}
