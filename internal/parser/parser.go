// Package parser turns a token.Token stream into a sequence of top-level
// ast.Stmt nodes using a Pratt-style expression parser fused with a
// recursive-descent statement/declaration parser, following the same
// error-then-panic-then-recover shape the teacher interpreter's parser.go
// uses for its own recursive descent. A single pos index tracks the
// current token.
package parser

import (
	"fmt"

	"github.com/TheComputerNerd88/pseudocode/internal/ast"
	"github.com/TheComputerNerd88/pseudocode/internal/diag"
	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

// Precedence levels, lowest to highest, per spec.md §4.2.
const (
	precNone = iota
	precAssignment
	precEquality
	precComparison
	precTerm
	precFactor
	precCall
)

// infixPrecedence returns the binding power of kind as an infix/postfix
// operator, or precNone if kind never starts an infix form.
func infixPrecedence(kind token.Kind) int {
	switch kind {
	case token.ASSIGN:
		return precAssignment
	case token.EQ:
		return precEquality
	case token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ, token.IN:
		return precComparison
	case token.PLUS, token.MINUS:
		return precTerm
	case token.STAR, token.SLASH:
		return precFactor
	case token.LPAREN, token.DOT, token.LBRACKET:
		return precCall
	default:
		return precNone
	}
}

// parseSignal unwinds the parser's call stack back to the nearest
// declaration() frame after a hard syntax error has already been reported.
// It is recovered exactly once per failed declaration; if the diagnostic
// reporter is in Abort mode, Report itself panics with diag.Aborted first
// and this signal is never raised.
type parseSignal struct{}

// Parser consumes a token stream and builds top-level statements.
type Parser struct {
	tokens []token.Token
	pos    int
	report *diag.Reporter
}

// New constructs a Parser over tokens. report is the shared diagnostic sink;
// its Phase is expected to already be set to diag.Parsing by the caller.
func New(tokens []token.Token, report *diag.Reporter) *Parser {
	return &Parser{tokens: tokens, report: report}
}

// ParseProgram parses the entire token stream into top-level statements.
// A declaration that fails to parse contributes no statement (it is
// dropped after synchronize() skips to the next safe point).
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ---- token cursor helpers ----

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) previous() token.Token { return p.tokens[p.pos-1] }

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) match(kinds ...token.Kind) bool {
	if p.checkAny(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	return token.Token{}
}

// errorAt reports a hard syntax error at tok and unwinds to the nearest
// declaration() frame (unless the reporter is in Abort mode, in which case
// Report itself aborts the whole pipeline).
func (p *Parser) errorAt(tok token.Token, msg string) {
	p.report.Report(diag.Syntax, tok.Line, tok.Column, caretLength(tok), msg)
	panic(parseSignal{})
}

// warnMismatch reports a syntax error that does not require synchronize:
// used for a mismatched trailing END name, where parsing has already
// recovered a structurally complete node.
func (p *Parser) warnMismatch(tok token.Token, msg string) {
	p.report.Report(diag.Syntax, tok.Line, tok.Column, caretLength(tok), msg)
}

func caretLength(tok token.Token) int {
	if tok.Length < 1 {
		return 1
	}
	return tok.Length
}

// synchronize consumes tokens until after an END, or until the next token
// starts a new top-level construct, per spec.md §4.2.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.checkAny(token.CLASS, token.FUNCTION, token.IF, token.WHILE, token.PRINT, token.RETURN) {
			return
		}
		if p.advance().Kind == token.END {
			return
		}
	}
}

// ---- declarations ----

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseSignal); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUNCTION):
		return p.functionDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expected class name")

	var superclass *token.Token
	if p.match(token.INHERITS) {
		sup := p.consume(token.IDENTIFIER, "Expected superclass name after 'INHERITS'")
		superclass = &sup
	}

	if p.match(token.ATTRIBUTES) {
		p.match(token.COLON)
		for p.check(token.IDENTIFIER) {
			p.advance()
			p.match(token.COMMA)
		}
	}

	var methods []*ast.FunctionStmt
	if p.match(token.METHODS) {
		p.match(token.COLON)
		for p.match(token.FUNCTION) {
			methods = append(methods, p.functionDeclaration())
		}
	}

	p.consume(token.END, "Expected 'END' to close class '"+name.Lexeme+"'")
	endName := p.consume(token.IDENTIFIER, "Expected class name after 'END'")
	if endName.Lexeme != name.Lexeme {
		p.warnMismatch(endName, fmt.Sprintf("Mismatched 'END' name: expected '%s', got '%s'", name.Lexeme, endName.Lexeme))
	}

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// functionDeclaration parses `name ( param, ... ) stmt* END name`, the
// FUNCTION keyword itself having already been consumed by the caller (the
// top-level declaration loop, or classDeclaration's method loop).
func (p *Parser) functionDeclaration() *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "Expected function name")
	p.consume(token.LPAREN, "Expected '(' after function name")

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.consume(token.IDENTIFIER, "Expected parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expected ')' after parameters")

	body := p.blockStatements()

	p.consume(token.END, "Expected 'END' to close function '"+name.Lexeme+"'")
	endName := p.consume(token.IDENTIFIER, "Expected function name after 'END'")
	if endName.Lexeme != name.Lexeme {
		p.warnMismatch(endName, fmt.Sprintf("Mismatched 'END' name: expected '%s', got '%s'", name.Lexeme, endName.Lexeme))
	}

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// ---- statements ----

// blockStatements parses statements until a block-terminating token: END,
// ELSE, or end-of-input.
func (p *Parser) blockStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.checkAny(token.END, token.ELSE) && !p.atEnd() {
		if s := p.blockStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// blockStatement parses one statement inside a block, recovering locally on
// a syntax error the same way declaration() does. In Abort mode Report has
// already aborted the pipeline before this recovery could run; in Continue
// mode the offending statement is simply dropped.
func (p *Parser) blockStatement() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseSignal); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.statement()
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.FUNCTION):
		// A nested function declaration inside a block.
		return p.functionDeclaration()
	case p.check(token.FOR):
		tok := p.advance()
		p.errorAt(tok, "FOR loops are not supported")
		return nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() ast.Stmt {
	cond := p.expression()
	p.consume(token.THEN, "Expected 'THEN' after IF condition")
	thenBlock := p.blockStatements()

	var elseBlock []ast.Stmt
	if p.match(token.ELSE) {
		elseBlock = p.blockStatements()
	}

	p.consume(token.END, "Expected 'END' to close IF")
	p.consume(token.IF, "Expected 'IF' after 'END'")

	return &ast.IfStmt{Cond: cond, ThenBlock: thenBlock, ElseBlock: elseBlock}
}

func (p *Parser) whileStatement() ast.Stmt {
	cond := p.expression()
	body := p.blockStatements()

	p.consume(token.END, "Expected 'END' to close WHILE")
	p.consume(token.WHILE, "Expected 'WHILE' after 'END'")

	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LPAREN, "Expected '(' after PRINT")
	expr := p.expression()
	p.consume(token.RPAREN, "Expected ')' after PRINT expression")
	return &ast.PrintStmt{Expr: expr, Keyword: keyword}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.checkAny(token.END, token.ELSE) && !p.atEnd() {
		value = p.expression()
	}
	return &ast.ReturnStmt{Value: value, Keyword: keyword}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	return &ast.ExpressionStmt{Expr: expr}
}

// ---- expressions (Pratt precedence climbing) ----

func (p *Parser) expression() ast.Expr {
	return p.parsePrecedence(precAssignment)
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expr {
	left := p.parsePrefix()

	for {
		prec := infixPrecedence(p.peek().Kind)
		if prec == precNone || prec < minPrec {
			break
		}

		switch p.peek().Kind {
		case token.ASSIGN:
			left = p.finishAssign(left)
		case token.LPAREN:
			left = p.finishCall(left)
		case token.DOT:
			left = p.finishGet(left)
		case token.LBRACKET:
			left = p.finishIndex(left)
		default:
			left = p.finishBinary(left, prec)
		}
	}

	return left
}

func (p *Parser) finishBinary(left ast.Expr, prec int) ast.Expr {
	op := p.advance()
	right := p.parsePrecedence(prec + 1) // left-associative
	return &ast.Binary{Left: left, Op: op, Right: right}
}

func (p *Parser) finishAssign(left ast.Expr) ast.Expr {
	eq := p.advance()
	switch left.(type) {
	case *ast.Variable, *ast.Get, *ast.ArrayAccess:
	default:
		p.errorAt(eq, "Invalid assignment target")
	}
	// Right-associative: parse the right side at Assignment precedence so
	// `a = b = c` groups as `a = (b = c)`.
	value := p.parsePrecedence(precAssignment)
	return &ast.Assign{Target: left, Value: value, Equals: eq}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	paren := p.advance()
	args := p.parseArgList(token.RPAREN, "Expected ')' after arguments")
	return &ast.Call{Callee: callee, Args: args, Paren: paren}
}

func (p *Parser) finishGet(object ast.Expr) ast.Expr {
	p.advance() // consume '.'
	name := p.consume(token.IDENTIFIER, "Expected property name after '.'")
	return &ast.Get{Object: object, Name: name}
}

func (p *Parser) finishIndex(array ast.Expr) ast.Expr {
	bracket := p.advance() // consume '['
	index := p.expression()
	p.consume(token.RBRACKET, "Expected ']' after index expression")
	return &ast.ArrayAccess{Array: array, Index: index, Bracket: bracket}
}

// parseArgList parses a comma-separated expression list terminated by
// closing, consuming closing itself before returning.
func (p *Parser) parseArgList(closing token.Kind, closeMsg string) []ast.Expr {
	var args []ast.Expr
	if !p.check(closing) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(closing, closeMsg)
	return args
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.IDENTIFIER:
		p.advance()
		return &ast.Variable{Name: tok}
	case token.INTEGER, token.FLOAT, token.STRING, token.TRUE, token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok}
	case token.LPAREN:
		p.advance()
		inner := p.expression()
		p.consume(token.RPAREN, "Expected ')' after expression")
		return inner
	case token.LBRACKET:
		return p.arrayLiteral()
	case token.NEW:
		return p.newExpr()
	case token.MINUS:
		p.advance()
		zero := ast.Literal{Token: token.Token{Kind: token.INTEGER, Lexeme: "0", Line: tok.Line, Column: tok.Column, Length: 1}}
		rhs := p.parsePrecedence(precCall)
		return &ast.Binary{Left: &zero, Op: tok, Right: rhs}
	}

	p.errorAt(tok, "Expected expression")
	return nil
}

func (p *Parser) arrayLiteral() ast.Expr {
	bracket := p.advance() // consume '['
	elements := p.parseArgList(token.RBRACKET, "Expected ']' after array elements")
	return &ast.ArrayLit{Elements: elements, Bracket: bracket}
}

func (p *Parser) newExpr() ast.Expr {
	keyword := p.advance() // consume NEW
	className := p.consume(token.IDENTIFIER, "Expected class name after 'NEW'")
	p.consume(token.LPAREN, "Expected '(' after class name")
	args := p.parseArgList(token.RPAREN, "Expected ')' after constructor arguments")
	return &ast.New{ClassName: className, Args: args, Keyword: keyword}
}
