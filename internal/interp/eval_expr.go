package interp

import (
	"fmt"
	"strconv"

	"github.com/TheComputerNerd88/pseudocode/internal/ast"
	"github.com/TheComputerNerd88/pseudocode/internal/runtime"
	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

func (ip *Interpreter) evalExpr(e ast.Expr, env *runtime.Environment) runtime.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return ip.evalLiteral(n)
	case *ast.Variable:
		v, ok := env.Get(n.Name.Lexeme)
		if !ok {
			ip.runtimeErr(n.Name, "Undefined variable '"+n.Name.Lexeme+"'.")
		}
		return v
	case *ast.Assign:
		return ip.evalAssign(n, env)
	case *ast.Binary:
		return ip.evalBinary(n, env)
	case *ast.Call:
		return ip.evalCall(n, env)
	case *ast.Get:
		return ip.evalGet(n, env)
	case *ast.ArrayAccess:
		return ip.evalArrayAccess(n, env)
	case *ast.ArrayLit:
		return ip.evalArrayLit(n, env)
	case *ast.New:
		return ip.evalNew(n, env)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

// evalLiteral parses a scanned literal token's lexeme into a runtime Value.
// Integer and float literals share one numeric representation (spec.md §4.4).
func (ip *Interpreter) evalLiteral(n *ast.Literal) runtime.Value {
	switch n.Token.Kind {
	case token.INTEGER, token.FLOAT:
		f, err := strconv.ParseFloat(n.Token.Lexeme, 64)
		if err != nil {
			// The lexer emits only digit runs (optionally with one fractional
			// part), so this is reached only by a literal too large for a
			// float64, which ParseFloat rejects with a range error.
			ip.runtimeErr(n.Token, "Invalid numeric literal '"+n.Token.Lexeme+"'.")
		}
		return runtime.Number(f)
	case token.STRING:
		return runtime.String(n.Token.Lexeme)
	case token.TRUE:
		return runtime.Boolean(true)
	case token.FALSE:
		return runtime.Boolean(false)
	default:
		panic(fmt.Sprintf("interp: unhandled literal kind %v", n.Token.Kind))
	}
}

// evalAssign implements target = value for each of the three target shapes
// the parser permits. Assigning to a bare Variable that is not yet reachable
// defines it in the current frame; otherwise it rebinds in the frame that
// already owns it (spec.md §4.4's implicit-declaration rule).
func (ip *Interpreter) evalAssign(n *ast.Assign, env *runtime.Environment) runtime.Value {
	val := ip.evalExpr(n.Value, env)

	switch target := n.Target.(type) {
	case *ast.Variable:
		if env.Exists(target.Name.Lexeme) {
			env.Assign(target.Name.Lexeme, val)
		} else {
			env.Define(target.Name.Lexeme, val)
		}

	case *ast.Get:
		objVal := ip.evalExpr(target.Object, env)
		if objVal.Tag != runtime.TagInstance {
			ip.runtimeErr(target.Name, "Only instances have fields.")
		}
		objVal.Data.(*runtime.Instance).Set(target.Name.Lexeme, val)

	case *ast.ArrayAccess:
		arr, idx := ip.resolveArrayAccess(target, env)
		arr.Elements[idx] = val

	default:
		panic(fmt.Sprintf("interp: unhandled assignment target %T", n.Target))
	}

	return val
}

func (ip *Interpreter) evalBinary(n *ast.Binary, env *runtime.Environment) runtime.Value {
	left := ip.evalExpr(n.Left, env)
	right := ip.evalExpr(n.Right, env)

	switch n.Op.Kind {
	case token.PLUS:
		if left.Tag == runtime.TagNumber && right.Tag == runtime.TagNumber {
			return runtime.Number(left.Data.(float64) + right.Data.(float64))
		}
		if left.Tag == runtime.TagString && right.Tag == runtime.TagString {
			return runtime.String(left.Data.(string) + right.Data.(string))
		}
		ip.runtimeErr(n.Op, "Operands of '+' must be two numbers or two strings.")

	case token.MINUS:
		l, r := ip.requireNumbers(n.Op, left, right, "-")
		return runtime.Number(l - r)

	case token.STAR:
		l, r := ip.requireNumbers(n.Op, left, right, "*")
		return runtime.Number(l * r)

	case token.SLASH:
		l, r := ip.requireNumbers(n.Op, left, right, "/")
		if r == 0 {
			ip.runtimeErr(n.Op, "Division by zero.")
		}
		return runtime.Number(l / r)

	case token.LESS:
		l, r := ip.requireNumbers(n.Op, left, right, "<")
		return runtime.Boolean(l < r)

	case token.LESS_EQ:
		l, r := ip.requireNumbers(n.Op, left, right, "<=")
		return runtime.Boolean(l <= r)

	case token.GREATER:
		l, r := ip.requireNumbers(n.Op, left, right, ">")
		return runtime.Boolean(l > r)

	case token.GREATER_EQ:
		l, r := ip.requireNumbers(n.Op, left, right, ">=")
		return runtime.Boolean(l >= r)

	case token.EQ:
		return runtime.Boolean(left.Equals(right))

	case token.IN:
		if right.Tag != runtime.TagArray {
			ip.runtimeErr(n.Op, "Right operand of 'IN' must be an array.")
		}
		for _, el := range right.Data.(*runtime.Array).Elements {
			if el.Equals(left) {
				return runtime.Boolean(true)
			}
		}
		return runtime.Boolean(false)

	default:
		panic(fmt.Sprintf("interp: unhandled binary operator %v", n.Op.Kind))
	}

	panic("unreachable")
}

func (ip *Interpreter) requireNumbers(op token.Token, left, right runtime.Value, symbol string) (float64, float64) {
	if left.Tag != runtime.TagNumber || right.Tag != runtime.TagNumber {
		ip.runtimeErr(op, "Operands of '"+symbol+"' must be numbers.")
	}
	return left.Data.(float64), right.Data.(float64)
}

func (ip *Interpreter) evalCall(n *ast.Call, env *runtime.Environment) runtime.Value {
	calleeVal := ip.evalExpr(n.Callee, env)
	if calleeVal.Tag != runtime.TagCallable {
		ip.runtimeErr(n.Paren, "Can only call functions and classes.")
	}
	callee := calleeVal.Data.(runtime.Callable)

	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.evalExpr(a, env)
	}

	if len(args) != callee.Arity() {
		ip.runtimeErr(n.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
	}

	switch fn := callee.(type) {
	case *runtime.Function:
		return ip.invokeFunction(fn, args)
	case *runtime.Class:
		return ip.instantiate(fn, args)
	default:
		panic(fmt.Sprintf("interp: unhandled callable type %T", callee))
	}
}

// invokeFunction runs fn's body in a fresh frame bound to its closure, with
// parameters defined from args. A RETURN anywhere in the body unwinds here
// via returnSignal; falling off the end of the body returns Null.
func (ip *Interpreter) invokeFunction(fn *runtime.Function, args []runtime.Value) (result runtime.Value) {
	callEnv := runtime.NewEnvironment(fn.Closure)
	for i, p := range fn.Decl.Params {
		callEnv.Define(p.Lexeme, args[i])
	}

	result = runtime.Null
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			sig, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			result = sig.Value
		}()
		ip.execBlock(fn.Decl.Body, callEnv)
	}()
	return result
}

// instantiate allocates a new Instance and, if class (or a superclass)
// defines a "constructor" method, runs it bound to that instance.
func (ip *Interpreter) instantiate(class *runtime.Class, args []runtime.Value) runtime.Value {
	inst := runtime.NewInstance(class)
	if ctor, ok := class.FindMethod("constructor"); ok {
		ip.invokeFunction(ctor.Bind(inst), args)
	}
	return runtime.InstanceVal(inst)
}

func (ip *Interpreter) evalGet(n *ast.Get, env *runtime.Environment) runtime.Value {
	objVal := ip.evalExpr(n.Object, env)
	if objVal.Tag != runtime.TagInstance {
		ip.runtimeErr(n.Name, "Only instances have properties.")
	}
	v, ok := objVal.Data.(*runtime.Instance).Get(n.Name.Lexeme)
	if !ok {
		ip.runtimeErr(n.Name, "Undefined property '"+n.Name.Lexeme+"'.")
	}
	return v
}

// resolveArrayAccess evaluates the array and index operands of an
// ArrayAccess target shared by both read (evalArrayAccess) and write
// (evalAssign) paths, checking operand kinds and bounds.
func (ip *Interpreter) resolveArrayAccess(n *ast.ArrayAccess, env *runtime.Environment) (*runtime.Array, int) {
	arrVal := ip.evalExpr(n.Array, env)
	if arrVal.Tag != runtime.TagArray {
		ip.runtimeErr(n.Bracket, "Only arrays support indexing.")
	}
	idxVal := ip.evalExpr(n.Index, env)
	if idxVal.Tag != runtime.TagNumber {
		ip.runtimeErr(n.Bracket, "Array index must be a number.")
	}
	arr := arrVal.Data.(*runtime.Array)
	idx := int(idxVal.Data.(float64))
	if idx < 0 || idx >= len(arr.Elements) {
		ip.runtimeErr(n.Bracket, "Index out of bounds.")
	}
	return arr, idx
}

func (ip *Interpreter) evalArrayAccess(n *ast.ArrayAccess, env *runtime.Environment) runtime.Value {
	arr, idx := ip.resolveArrayAccess(n, env)
	return arr.Elements[idx]
}

func (ip *Interpreter) evalArrayLit(n *ast.ArrayLit, env *runtime.Environment) runtime.Value {
	elems := make([]runtime.Value, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = ip.evalExpr(e, env)
	}
	return runtime.ArrayVal(&runtime.Array{Elements: elems})
}

func (ip *Interpreter) evalNew(n *ast.New, env *runtime.Environment) runtime.Value {
	classVal, ok := env.Get(n.ClassName.Lexeme)
	if !ok {
		ip.runtimeErr(n.ClassName, "Undefined variable '"+n.ClassName.Lexeme+"'.")
	}
	class, ok := asClass(classVal)
	if !ok {
		ip.runtimeErr(n.ClassName, "Can only instantiate classes.")
	}

	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.evalExpr(a, env)
	}
	if len(args) != class.Arity() {
		ip.runtimeErr(n.Keyword, fmt.Sprintf("Expected %d arguments but got %d.", class.Arity(), len(args)))
	}

	return ip.instantiate(class, args)
}
