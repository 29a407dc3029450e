package runtime

// Environment is a lexical frame: a name-to-Value mapping plus an optional
// parent frame. Lookups walk from innermost to outermost frame; assignments
// bind in whatever frame originally defined the name. A captured (closure)
// frame outlives the syntactic scope that created it because Functions hold
// a strong reference to it (see Function in callable.go) and nothing in
// this package holds a reference back from an Environment to the Function
// values closing over it, avoiding the Environment<->Callable reference
// cycle spec.md §5 calls out.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates a frame with the given parent, which may be nil for
// the root (global) frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]Value), parent: parent}
}

// Define inserts or overwrites name in the current frame.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = v
}

// Get searches the current frame then parents, returning ok=false on a
// complete miss (the caller raises the "Undefined variable" runtime error).
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Assign updates name in the nearest frame where it is already bound,
// returning ok=false if no frame in the chain defines it.
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Exists reports whether name is reachable anywhere in the frame chain.
func (e *Environment) Exists(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			return true
		}
	}
	return false
}
