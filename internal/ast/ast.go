// Package ast defines the SCSA Pseudocode abstract syntax tree: tagged node
// types for expressions and statements. Trees are immutable once built and
// each node exclusively owns its children (the tree is acyclic).
//
// Design note: the original source (see _examples/original_source) dispatches
// through a C++ visitor. In Go a sum-type-by-interface plus a type switch in
// the evaluator plays the same role without the visitor boilerplate — this
// mirrors the "tagged variant, match in the evaluator" guidance for systems
// languages and is how the example interpreters in this pack's retrieval set
// (e.g. metaphox-ren-lang/ast) shape their own node hierarchies too.
package ast

import "github.com/TheComputerNerd88/pseudocode/internal/token"

// Expr is any expression node. Pos returns the token that best locates the
// expression in source, used by the evaluator to report runtime errors.
type Expr interface {
	exprNode()
	Pos() token.Token
}

// Stmt is any top-level or block statement node.
type Stmt interface {
	stmtNode()
}

// ---- Expressions ----

// Literal holds a scanned literal token (STRING, INTEGER, FLOAT, TRUE,
// FALSE) whose runtime value the evaluator parses from the token's lexeme.
type Literal struct {
	Token token.Token
}

func (*Literal) exprNode()          {}
func (l *Literal) Pos() token.Token { return l.Token }

// Variable is a bare identifier reference.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode()          {}
func (v *Variable) Pos() token.Token { return v.Name }

// Assign is `target = value`. Target is restricted by the parser to
// Variable, Get, or ArrayAccess.
type Assign struct {
	Target Expr
	Value  Expr
	Equals token.Token // position of '='
}

func (*Assign) exprNode()          {}
func (a *Assign) Pos() token.Token { return a.Equals }

// Binary is `left Op right` for arithmetic, comparison, equality, and IN.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Binary) exprNode()          {}
func (b *Binary) Pos() token.Token { return b.Op }

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Paren  token.Token // the '(' that opened the argument list
}

func (*Call) exprNode()          {}
func (c *Call) Pos() token.Token { return c.Paren }

// Get is `object.name`, a field or method read.
type Get struct {
	Object Expr
	Name   token.Token
}

func (*Get) exprNode()          {}
func (g *Get) Pos() token.Token { return g.Name }

// ArrayAccess is `array[index]`.
type ArrayAccess struct {
	Array   Expr
	Index   Expr
	Bracket token.Token // the '[' position
}

func (*ArrayAccess) exprNode()          {}
func (a *ArrayAccess) Pos() token.Token { return a.Bracket }

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Elements []Expr
	Bracket  token.Token
}

func (*ArrayLit) exprNode()          {}
func (a *ArrayLit) Pos() token.Token { return a.Bracket }

// New is `NEW ClassName(args...)`.
type New struct {
	ClassName token.Token
	Args      []Expr
	Keyword   token.Token // the NEW token
}

func (*New) exprNode()          {}
func (n *New) Pos() token.Token { return n.Keyword }

// ---- Statements ----

// ExpressionStmt evaluates Expr and discards the result.
type ExpressionStmt struct {
	Expr Expr
}

func (*ExpressionStmt) stmtNode() {}

// PrintStmt evaluates Expr and writes its display form.
type PrintStmt struct {
	Expr    Expr
	Keyword token.Token
}

func (*PrintStmt) stmtNode() {}

// ReturnStmt evaluates the optional Value (nil if absent) and unwinds the
// enclosing call.
type ReturnStmt struct {
	Value   Expr // may be nil
	Keyword token.Token
}

func (*ReturnStmt) stmtNode() {}

// IfStmt runs ThenBlock if Cond is truthy, else ElseBlock (which may be nil).
type IfStmt struct {
	Cond      Expr
	ThenBlock []Stmt
	ElseBlock []Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt runs Body repeatedly while Cond is truthy.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (*WhileStmt) stmtNode() {}

// FunctionStmt declares a named function (or a class method).
type FunctionStmt struct {
	Name       token.Token
	Params     []token.Token
	Body       []Stmt
}

func (*FunctionStmt) stmtNode() {}

// ClassStmt declares a class with an optional superclass name and methods.
type ClassStmt struct {
	Name         token.Token
	Superclass   *token.Token // nil if no INHERITS clause
	Methods      []*FunctionStmt
}

func (*ClassStmt) stmtNode() {}
