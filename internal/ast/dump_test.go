package ast

import (
	"strings"
	"testing"

	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

func TestDump_FunctionStmtShowsNameAndParams(t *testing.T) {
	fn := &FunctionStmt{
		Name: token.Token{Lexeme: "add"},
		Params: []token.Token{
			{Lexeme: "a"},
			{Lexeme: "b"},
		},
		Body: []Stmt{
			&ReturnStmt{Value: &Variable{Name: token.Token{Lexeme: "a"}}},
		},
	}

	got := Dump([]Stmt{fn})
	if !strings.Contains(got, "FunctionStmt add(a, b)") {
		t.Fatalf("dump missing function signature:\n%s", got)
	}
	if !strings.Contains(got, "ReturnStmt") || !strings.Contains(got, "Variable a") {
		t.Fatalf("dump missing return/variable nodes:\n%s", got)
	}
}

func TestDump_ClassStmtShowsSuperclass(t *testing.T) {
	super := token.Token{Lexeme: "Animal"}
	class := &ClassStmt{Name: token.Token{Lexeme: "Dog"}, Superclass: &super}

	got := Dump([]Stmt{class})
	if !strings.Contains(got, "ClassStmt Dog inherits Animal") {
		t.Fatalf("dump missing inheritance clause:\n%s", got)
	}
}
