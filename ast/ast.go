// Package ast defines the executable program representation. Every node
// implements Statement: executing a node against a variable binding
// environment and an execution context yields a value.
package ast

import (
	"fmt"

	"github.com/mython-lang/mython/runtime"
)

// Statement is an executable program node.
type Statement interface {
	Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error)
}

func errorf(format string, args ...any) error {
	return runtime.Error{Msg: fmt.Sprintf(format, args...)}
}

func executeArgs(args []Statement, closure runtime.Closure, ctx runtime.Context) ([]runtime.ObjectHolder, error) {
	actual := make([]runtime.ObjectHolder, len(args))
	for i, arg := range args {
		value, err := arg.Execute(closure, ctx)
		if err != nil {
			return nil, err
		}
		actual[i] = value
	}
	return actual, nil
}
