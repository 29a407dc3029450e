package runtime

import "github.com/TheComputerNerd88/pseudocode/internal/ast"

// Callable is the capability set shared by Function and Class: something
// invocable with a positional argument list. Actual invocation is performed
// by the evaluator (internal/interp), which type-switches on the concrete
// variant — this mirrors the "tagged variant, match in the evaluator"
// approach spec.md §9 recommends over a virtual-dispatch visitor, and keeps
// this package free of a dependency on the evaluator.
type Callable interface {
	Arity() int
	DisplayName() string
}

// Function is a user-defined function: a reference to its declaration and
// the environment captured at definition time (its closure).
type Function struct {
	Decl    *ast.FunctionStmt
	Closure *Environment
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) DisplayName() string { return "<fn " + f.Decl.Name.Lexeme + ">" }

// Bind returns a copy of f whose closure is env with an additional binding
// to the given instance under "this". Used when a method is retrieved via
// Get outside of construction, so the resulting Callable is a closure over
// its owning instance (spec.md §9's resolution of the `this`-binding open
// question).
func (f *Function) Bind(this *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", InstanceVal(this))
	return &Function{Decl: f.Decl, Closure: env}
}

// Class is a runtime class: its name, optional superclass, and method
// table. Invoking it constructs an Instance and, if a "constructor" method
// is found via the superclass chain, runs it bound to that instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// Arity returns the constructor's arity, or 0 if the class has none.
func (c *Class) Arity() int {
	if ctor, ok := c.FindMethod("constructor"); ok {
		return ctor.Arity()
	}
	return 0
}

func (c *Class) DisplayName() string { return "<class " + c.Name + ">" }

// FindMethod looks up name on this class, then up the superclass chain. The
// first match wins; siblings are never consulted (single inheritance).
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Instance is an object produced by invoking a Class: a reference to its
// class plus a mutable field table.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance allocates a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Get resolves object.name: a field wins over a method of the same name;
// a method found via the class chain is returned as a Value bound to this
// instance (see Function.Bind), so calling it later works without the
// constructor-call-site-only `this` binding spec.md's original source left
// under-specified.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return CallableVal(m.Bind(i)), true
	}
	return Value{}, false
}

// Set assigns a field on the instance, creating it on first assignment.
func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}
