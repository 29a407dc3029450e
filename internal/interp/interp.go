// Package interp implements the tree-walking evaluator: it walks the AST
// produced by internal/parser, mutating an internal/runtime environment
// stack, and implements function calls, method dispatch, and class
// instantiation as described in spec.md §4.4.
//
// Control flow for RETURN follows the teacher's own idiom (see
// _examples/daios-ai-msg/interpreter_ops.go's returnSig/rtErr): a short-lived
// panic value caught at the nearest enclosing call site, rather than a
// dedicated sum-type threaded through every evalExpr/execStmt return. Runtime
// errors are reported through the shared diag.Reporter and always abort the
// current top-level run, regardless of the reporter's Mode (there is no
// runtime-level recovery mechanism in this language — only the parser
// synchronizes locally).
package interp

import (
	"fmt"
	"io"

	"github.com/TheComputerNerd88/pseudocode/internal/ast"
	"github.com/TheComputerNerd88/pseudocode/internal/diag"
	"github.com/TheComputerNerd88/pseudocode/internal/runtime"
	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

// returnSignal carries a RETURN statement's value up to the nearest
// enclosing function call.
type returnSignal struct {
	Value runtime.Value
}

// Interpreter executes a list of statements against a persistent global
// environment. Reusing one Interpreter across multiple Run calls (as the
// REPL host does) makes top-level definitions and assignments persist
// across runs, the same way original_source's runRepl accumulates state
// line by line.
type Interpreter struct {
	Global *runtime.Environment
	report *diag.Reporter
	stdout io.Writer
}

// New constructs an Interpreter with an empty global environment. report is
// the shared diagnostic sink; its Phase is expected to be set to
// diag.Runtime by the caller before Run is invoked. stdout receives PRINT
// output.
func New(report *diag.Reporter, stdout io.Writer) *Interpreter {
	return &Interpreter{
		Global: runtime.NewEnvironment(nil),
		report: report,
		stdout: stdout,
	}
}

// SetReporter replaces the diagnostic sink used by subsequent Run calls.
// The REPL host uses this to give each line its own Reporter (so caret
// rendering sees that line's own source) while reusing one Interpreter (and
// its Global environment) across the whole session.
func (ip *Interpreter) SetReporter(report *diag.Reporter) {
	ip.report = report
}

// Run executes stmts against the interpreter's global environment. It
// returns a non-nil error (always a diag.Aborted value) if a runtime error
// terminated evaluation early; the diagnostic has already been printed by
// the reporter by the time Run returns.
func (ip *Interpreter) Run(stmts []ast.Stmt) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch sig := r.(type) {
		case diag.Aborted:
			err = sig
		case returnSignal:
			// A RETURN outside any function call simply ends the run.
		default:
			panic(r)
		}
	}()

	ip.execBlock(stmts, ip.Global)
	return nil
}

// runtimeErr reports a Runtime diagnostic at tok and unconditionally aborts
// the current run (independent of the reporter's Mode, since this language
// has no runtime-level recovery construct).
func (ip *Interpreter) runtimeErr(tok token.Token, msg string) {
	length := tok.Length
	if length < 1 {
		length = 1
	}
	ip.report.Report(diag.RuntimeError, tok.Line, tok.Column, length, msg)
	panic(diag.Aborted{})
}

// execBlock runs stmts in env directly, with no implicit child frame —
// blocks in this language are flat (spec.md §4.4, IfStmt/WhileStmt note).
func (ip *Interpreter) execBlock(stmts []ast.Stmt, env *runtime.Environment) {
	for _, s := range stmts {
		ip.execStmt(s, env)
	}
}

func (ip *Interpreter) execStmt(s ast.Stmt, env *runtime.Environment) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		ip.evalExpr(n.Expr, env)

	case *ast.PrintStmt:
		v := ip.evalExpr(n.Expr, env)
		fmt.Fprintln(ip.stdout, v.Display())

	case *ast.ReturnStmt:
		value := runtime.Null
		if n.Value != nil {
			value = ip.evalExpr(n.Value, env)
		}
		panic(returnSignal{Value: value})

	case *ast.IfStmt:
		if ip.evalExpr(n.Cond, env).Truthy() {
			ip.execBlock(n.ThenBlock, env)
		} else if n.ElseBlock != nil {
			ip.execBlock(n.ElseBlock, env)
		}

	case *ast.WhileStmt:
		for ip.evalExpr(n.Cond, env).Truthy() {
			ip.execBlock(n.Body, env)
		}

	case *ast.FunctionStmt:
		fn := &runtime.Function{Decl: n, Closure: env}
		env.Define(n.Name.Lexeme, runtime.CallableVal(fn))

	case *ast.ClassStmt:
		ip.execClassStmt(n, env)

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execClassStmt builds a runtime.Class from a ClassStmt: resolving the
// optional superclass, building the method table (each method a Function
// closing over the current environment, or a child environment binding
// "super" to the superclass when one exists), and defining the class under
// its name.
func (ip *Interpreter) execClassStmt(n *ast.ClassStmt, env *runtime.Environment) {
	var superclass *runtime.Class
	if n.Superclass != nil {
		supVal, ok := env.Get(n.Superclass.Lexeme)
		if !ok {
			ip.runtimeErr(*n.Superclass, "Undefined variable '"+n.Superclass.Lexeme+"'.")
		}
		sc, ok := asClass(supVal)
		if !ok {
			ip.runtimeErr(*n.Superclass, "Superclass must be a class.")
		}
		superclass = sc
	}

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", runtime.CallableVal(superclass))
	}

	methods := make(map[string]*runtime.Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = &runtime.Function{Decl: m, Closure: methodEnv}
	}

	class := &runtime.Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Define(n.Name.Lexeme, runtime.CallableVal(class))
}

func asClass(v runtime.Value) (*runtime.Class, bool) {
	if v.Tag != runtime.TagCallable {
		return nil, false
	}
	c, ok := v.Data.(runtime.Callable).(*runtime.Class)
	return c, ok
}
