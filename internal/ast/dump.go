package ast

import (
	"fmt"
	"strings"

	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

// Dump renders stmts as an indented tree, used by the host's --debug-parse
// flag. It is a debugging aid only; it has no bearing on evaluation.
func Dump(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		dumpStmt(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	switch n := s.(type) {
	case *ExpressionStmt:
		indent(b, depth)
		b.WriteString("ExpressionStmt\n")
		dumpExpr(b, n.Expr, depth+1)
	case *PrintStmt:
		indent(b, depth)
		b.WriteString("PrintStmt\n")
		dumpExpr(b, n.Expr, depth+1)
	case *ReturnStmt:
		indent(b, depth)
		b.WriteString("ReturnStmt\n")
		if n.Value != nil {
			dumpExpr(b, n.Value, depth+1)
		}
	case *IfStmt:
		indent(b, depth)
		b.WriteString("IfStmt\n")
		dumpExpr(b, n.Cond, depth+1)
		indent(b, depth+1)
		b.WriteString("Then:\n")
		for _, st := range n.ThenBlock {
			dumpStmt(b, st, depth+2)
		}
		if n.ElseBlock != nil {
			indent(b, depth+1)
			b.WriteString("Else:\n")
			for _, st := range n.ElseBlock {
				dumpStmt(b, st, depth+2)
			}
		}
	case *WhileStmt:
		indent(b, depth)
		b.WriteString("WhileStmt\n")
		dumpExpr(b, n.Cond, depth+1)
		for _, st := range n.Body {
			dumpStmt(b, st, depth+1)
		}
	case *FunctionStmt:
		indent(b, depth)
		fmt.Fprintf(b, "FunctionStmt %s(%s)\n", n.Name.Lexeme, joinParamNames(n.Params))
		for _, st := range n.Body {
			dumpStmt(b, st, depth+1)
		}
	case *ClassStmt:
		indent(b, depth)
		if n.Superclass != nil {
			fmt.Fprintf(b, "ClassStmt %s inherits %s\n", n.Name.Lexeme, n.Superclass.Lexeme)
		} else {
			fmt.Fprintf(b, "ClassStmt %s\n", n.Name.Lexeme)
		}
		for _, m := range n.Methods {
			dumpStmt(b, m, depth+1)
		}
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch n := e.(type) {
	case *Literal:
		fmt.Fprintf(b, "Literal %s\n", n.Token.Lexeme)
	case *Variable:
		fmt.Fprintf(b, "Variable %s\n", n.Name.Lexeme)
	case *Assign:
		b.WriteString("Assign\n")
		dumpExpr(b, n.Target, depth+1)
		dumpExpr(b, n.Value, depth+1)
	case *Binary:
		fmt.Fprintf(b, "Binary %s\n", n.Op.Lexeme)
		dumpExpr(b, n.Left, depth+1)
		dumpExpr(b, n.Right, depth+1)
	case *Call:
		b.WriteString("Call\n")
		dumpExpr(b, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpr(b, a, depth+1)
		}
	case *Get:
		fmt.Fprintf(b, "Get .%s\n", n.Name.Lexeme)
		dumpExpr(b, n.Object, depth+1)
	case *ArrayAccess:
		b.WriteString("ArrayAccess\n")
		dumpExpr(b, n.Array, depth+1)
		dumpExpr(b, n.Index, depth+1)
	case *ArrayLit:
		b.WriteString("ArrayLit\n")
		for _, el := range n.Elements {
			dumpExpr(b, el, depth+1)
		}
	case *New:
		fmt.Fprintf(b, "New %s\n", n.ClassName.Lexeme)
		for _, a := range n.Args {
			dumpExpr(b, a, depth+1)
		}
	default:
		fmt.Fprintf(b, "<unknown expr %T>\n", e)
	}
}

func joinParamNames(params []token.Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, ", ")
}
