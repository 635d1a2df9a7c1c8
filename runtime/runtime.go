// Package runtime models the dynamic object system of mython: values,
// classes, instances, truthiness, and the binary comparison protocol the
// executor dispatches through.
package runtime

import (
	"fmt"
	"io"
)

// Error reports an ill-typed or ill-arity runtime operation.
type Error struct {
	Msg string
}

func (e Error) Error() string {
	return e.Msg
}

func errorf(format string, args ...any) Error {
	return Error{Msg: fmt.Sprintf(format, args...)}
}

// Context is threaded through every runtime operation that may reach user
// code, carrying the output sink of the running program.
type Context interface {
	Output() io.Writer
}

type SimpleContext struct {
	out io.Writer
}

func NewSimpleContext(out io.Writer) *SimpleContext {
	return &SimpleContext{out: out}
}

func (c *SimpleContext) Output() io.Writer {
	return c.out
}

// Closure maps names to the values bound to them. It backs both instance
// fields and call frames.
type Closure map[string]ObjectHolder

// Object is implemented by every runtime value kind.
type Object interface {
	Print(w io.Writer, ctx Context) error
}

// Executable is the contract of a compiled method body: evaluate against a
// variable binding environment and yield a value.
type Executable interface {
	Execute(closure Closure, ctx Context) (ObjectHolder, error)
}

// ObjectHolder is a shared-ownership handle to a value. The zero holder is
// the None sentinel. Own and Share build the same handle under the Go
// garbage collector; Share documents that the reference does not extend
// the value's logical lifetime, which is how `self` is bound during a
// method call.
type ObjectHolder struct {
	data Object
}

func Own(object Object) ObjectHolder {
	return ObjectHolder{data: object}
}

func Share(object Object) ObjectHolder {
	return ObjectHolder{data: object}
}

func None() ObjectHolder {
	return ObjectHolder{}
}

// Get returns the held object, or nil for the None sentinel.
func (h ObjectHolder) Get() Object {
	return h.data
}

// MustGet returns the held object. Dereferencing an empty holder is a
// programming bug, not a user error.
func (h ObjectHolder) MustGet() Object {
	if h.data == nil {
		panic("dereference of an empty ObjectHolder")
	}
	return h.data
}

func (h ObjectHolder) Empty() bool {
	return h.data == nil
}

// TryAs downcasts the held object to a concrete kind, without copying.
func TryAs[T Object](h ObjectHolder) (T, bool) {
	v, ok := h.data.(T)
	return v, ok
}

// PrintValue writes the printed form of value to w. The None sentinel
// prints as the literal None.
func PrintValue(value ObjectHolder, w io.Writer, ctx Context) error {
	if value.Empty() {
		_, err := io.WriteString(w, "None")
		return err
	}
	return value.Get().Print(w, ctx)
}

// IsTrue reports the truthiness of a value: non-zero numbers, true
// booleans and non-empty strings. Everything else, classes and instances
// included, is falsy.
func IsTrue(value ObjectHolder) bool {
	switch v := value.Get().(type) {
	case *Number:
		return v.GetValue() != 0
	case *Bool:
		return v.GetValue()
	case *String:
		return len(v.GetValue()) != 0
	}
	return false
}

type Number struct {
	value int
}

func NewNumber(value int) *Number {
	return &Number{value: value}
}

func (n *Number) GetValue() int {
	return n.value
}

func (n *Number) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "%d", n.value)
	return err
}

type String struct {
	value string
}

func NewString(value string) *String {
	return &String{value: value}
}

func (s *String) GetValue() string {
	return s.value
}

func (s *String) Print(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, s.value)
	return err
}

type Bool struct {
	value bool
}

func NewBool(value bool) *Bool {
	return &Bool{value: value}
}

func (b *Bool) GetValue() bool {
	return b.value
}

func (b *Bool) Print(w io.Writer, _ Context) error {
	var err error
	if b.value {
		_, err = io.WriteString(w, "True")
	} else {
		_, err = io.WriteString(w, "False")
	}
	return err
}

// Method is a named method of a class. FormalParams excludes the implicit
// receiver.
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Class is a named type with single inheritance. Method resolution is
// flattened into a name-keyed table at construction: the parent's table is
// inserted first, then overridden by own methods, so lookup always finds
// the most-derived method in O(1).
type Class struct {
	name    string
	methods []Method
	parent  *Class
	vtable  map[string]*Method
}

// NewClass builds a class. The parent, if any, must outlive the class and
// every instance of it.
func NewClass(name string, methods []Method, parent *Class) *Class {
	cls := &Class{
		name:    name,
		methods: methods,
		parent:  parent,
		vtable:  make(map[string]*Method),
	}
	if parent != nil {
		for methodName, method := range parent.vtable {
			cls.vtable[methodName] = method
		}
	}
	for i := range cls.methods {
		cls.vtable[cls.methods[i].Name] = &cls.methods[i]
	}
	return cls
}

// GetMethod returns the most-derived method with that name, or nil.
func (c *Class) GetMethod(name string) *Method {
	return c.vtable[name]
}

func (c *Class) GetName() string {
	return c.name
}

func (c *Class) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.name)
	return err
}

// ClassInstance is an instance of a class with its own field environment.
// Fields may be assigned at any time; the class outlives its instances.
type ClassInstance struct {
	cls    *Class
	fields Closure
}

func NewClassInstance(cls *Class) *ClassInstance {
	return &ClassInstance{cls: cls, fields: make(Closure)}
}

func (ci *ClassInstance) Class() *Class {
	return ci.cls
}

func (ci *ClassInstance) Fields() Closure {
	return ci.fields
}

// HasMethod reports whether the class has a method of that name taking
// exactly argCount arguments besides the receiver.
func (ci *ClassInstance) HasMethod(name string, argCount int) bool {
	method := ci.cls.GetMethod(name)
	return method != nil && len(method.FormalParams) == argCount
}

// Call invokes a method on the instance. A fresh frame binds self to the
// receiver and each formal parameter to its actual argument, in order.
func (ci *ClassInstance) Call(name string, actualArgs []ObjectHolder, ctx Context) (ObjectHolder, error) {
	if !ci.HasMethod(name, len(actualArgs)) {
		return None(), errorf("call of undefined method %s", name)
	}
	method := ci.cls.GetMethod(name)
	closure := Closure{"self": Share(ci)}
	for i, param := range method.FormalParams {
		closure[param] = actualArgs[i]
	}
	return method.Body.Execute(closure, ctx)
}

// Print renders the instance through its __str__ method when one of arity
// zero exists, and falls back to the instance address.
func (ci *ClassInstance) Print(w io.Writer, ctx Context) error {
	if ci.HasMethod("__str__", 0) {
		result, err := ci.Call("__str__", nil, ctx)
		if err != nil {
			return err
		}
		return PrintValue(result, w, ctx)
	}
	_, err := fmt.Fprintf(w, "%p", ci)
	return err
}
