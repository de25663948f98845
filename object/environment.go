package object

import "sort"

// A scope. Lookups fall through to the enclosing scope; assignments never do, so a
// binding in an inner scope shadows rather than overwrites an outer one.
type Environment struct {
	Store map[string]Object
	Ext   *Environment
}

func NewEnvironment() *Environment {
	s := make(map[string]Object)
	return &Environment{Store: s}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Ext = outer
	return env
}

// The scope for one application of a function whose closure is e.
func (e *Environment) Child() *Environment {
	return NewEnclosedEnvironment(e)
}

func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.Store[name]
	if ok || e.Ext == nil {
		return obj, ok
	}
	return e.Ext.Get(name)
}

func (e *Environment) Set(name string, val Object) Object {
	e.Store[name] = val
	return val
}

// The names bound in this scope itself, sorted.
func (e *Environment) Names() []string {
	result := make([]string, 0, len(e.Store))
	for k := range e.Store {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
