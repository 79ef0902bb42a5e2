package lang

import (
	"errors"
	"fmt"
	"sort"
)

// Env implements a lexical environment chain.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame, replacing any previous
// binding there and shadowing bindings of enclosing frames.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign updates an existing binding, searching parents if needed.
// It never creates a binding.
func (e *Env) Assign(name string, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return nil
		}
	}
	return undefinedVariable(name)
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return Value{}, undefinedVariable(name)
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}

// Names returns the bindings of the current frame in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUndefined is wrapped by Get and Assign when no frame binds the name.
var ErrUndefined = errors.New("undefined variable")

func undefinedVariable(name string) error {
	return fmt.Errorf("%w: %s", ErrUndefined, name)
}
