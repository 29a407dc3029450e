package lexer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/TheComputerNerd88/pseudocode/internal/diag"
	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	var out strings.Builder
	report := diag.New(src, "", &out)
	l := New(src, report)
	toks := l.Tokenize()
	if report.HasErrors() {
		t.Fatalf("unexpected lex errors for %q:\n%s", src, out.String())
	}
	return toks
}

func kindsWithoutEOF(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		out = append(out, tk.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want []token.Kind) []token.Token {
	t.Helper()
	got := scan(t, src)
	gotKinds := kindsWithoutEOF(got)
	if !reflect.DeepEqual(gotKinds, want) {
		t.Fatalf("\nsource:\n%s\nwant: %v\ngot:  %v", src, want, gotKinds)
	}
	return got
}

func TestLexer_ClassHeader(t *testing.T) {
	src := `CLASS Animal INHERITS Creature ATTRIBUTES name, sound METHODS`
	wantKinds(t, src, []token.Kind{
		token.CLASS, token.IDENTIFIER, token.INHERITS, token.IDENTIFIER,
		token.ATTRIBUTES, token.IDENTIFIER, token.COMMA, token.IDENTIFIER,
		token.METHODS,
	})
}

func TestLexer_FunctionCallAndArithmetic(t *testing.T) {
	src := `result = add(1, 2.5) * -3`
	wantKinds(t, src, []token.Kind{
		token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER, token.LPAREN,
		token.INTEGER, token.COMMA, token.FLOAT, token.RPAREN,
		token.STAR, token.MINUS, token.INTEGER,
	})
}

func TestLexer_Comparisons(t *testing.T) {
	src := `a == b a <= b a >= b a < b a > b`
	wantKinds(t, src, []token.Kind{
		token.IDENTIFIER, token.EQ, token.IDENTIFIER,
		token.IDENTIFIER, token.LESS_EQ, token.IDENTIFIER,
		token.IDENTIFIER, token.GREATER_EQ, token.IDENTIFIER,
		token.IDENTIFIER, token.LESS, token.IDENTIFIER,
		token.IDENTIFIER, token.GREATER, token.IDENTIFIER,
	})
}

func TestLexer_StringLiteral(t *testing.T) {
	toks := scan(t, `"hello, world"`)
	if toks[0].Kind != token.STRING || toks[0].Lexeme != "hello, world" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexer_CommentsAreSkipped(t *testing.T) {
	src := "x = 1 # a trailing comment\n// another style\ny = 2"
	wantKinds(t, src, []token.Kind{
		token.IDENTIFIER, token.ASSIGN, token.INTEGER,
		token.IDENTIFIER, token.ASSIGN, token.INTEGER,
	})
}

func TestLexer_KeywordAliasesAreCaseSensitive(t *testing.T) {
	// "Attributes" and "new" are recognized aliases; "Print" is not a keyword.
	toks := scan(t, `Attributes new Print`)
	want := []token.Kind{token.ATTRIBUTES, token.NEW, token.IDENTIFIER}
	if !reflect.DeepEqual(kindsWithoutEOF(toks), want) {
		t.Fatalf("got %v, want %v", kindsWithoutEOF(toks), want)
	}
}

func TestLexer_UnterminatedStringReportsError(t *testing.T) {
	var out strings.Builder
	src := `"never closed`
	report := diag.New(src, "", &out)
	report.Mode = diag.Continue
	New(src, report).Tokenize()
	if !report.HasErrors() {
		t.Fatalf("expected an unterminated-string diagnostic")
	}
}

func TestLexer_IllegalCharacterReportsError(t *testing.T) {
	var out strings.Builder
	src := `x = @`
	report := diag.New(src, "", &out)
	report.Mode = diag.Continue
	New(src, report).Tokenize()
	if !report.HasErrors() {
		t.Fatalf("expected an illegal-character diagnostic")
	}
}
