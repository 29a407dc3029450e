package interp

import (
	"strings"
	"testing"

	"github.com/TheComputerNerd88/pseudocode/internal/diag"
	"github.com/TheComputerNerd88/pseudocode/internal/lexer"
	"github.com/TheComputerNerd88/pseudocode/internal/parser"
)

// run lexes, parses, and interprets src, returning stdout and whether any
// diagnostic (of any phase) was reported.
func run(t *testing.T, src string) (stdout string, hadError bool) {
	t.Helper()
	var errOut, out strings.Builder
	report := diag.New(src, "", &errOut)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(diag.Aborted); ok {
				hadError = true
				stdout = out.String()
				return
			}
			panic(r)
		}
	}()

	report.Phase = diag.Lexing
	toks := lexer.New(src, report).Tokenize()

	report.Phase = diag.Parsing
	stmts := parser.New(toks, report).ParseProgram()
	if report.HasErrors() {
		return out.String(), true
	}

	report.Phase = diag.Runtime
	ip := New(report, &out)
	if err := ip.Run(stmts); err != nil {
		return out.String(), true
	}
	return out.String(), false
}

func TestInterp_ArithmeticPrecedence(t *testing.T) {
	out, hadError := run(t, `PRINT(1 + 2 * 3)`)
	if hadError || out != "7\n" {
		t.Fatalf("got (%q, %v), want (\"7\\n\", false)", out, hadError)
	}
}

func TestInterp_WhileLoop(t *testing.T) {
	out, hadError := run(t, `
x = 10
WHILE x > 0
    x = x - 1
END WHILE
PRINT(x)`)
	if hadError || out != "0\n" {
		t.Fatalf("got (%q, %v), want (\"0\\n\", false)", out, hadError)
	}
}

func TestInterp_FunctionCallAndReturn(t *testing.T) {
	out, hadError := run(t, `
FUNCTION make(n)
    RETURN n * n
END make
PRINT(make(5))`)
	if hadError || out != "25\n" {
		t.Fatalf("got (%q, %v), want (\"25\\n\", false)", out, hadError)
	}
}

func TestInterp_ArrayIdentityThroughAssignment(t *testing.T) {
	out, hadError := run(t, `
a = [1, 2, 3]
b = a
b[1] = 99
PRINT(a[1])`)
	if hadError || out != "99\n" {
		t.Fatalf("got (%q, %v), want (\"99\\n\", false)", out, hadError)
	}
}

func TestInterp_ClassConstructorAndMethod(t *testing.T) {
	out, hadError := run(t, `
CLASS Point
ATTRIBUTES x y
METHODS
    FUNCTION constructor(a, b)
        this.x = a
        this.y = b
    END constructor
    FUNCTION sum()
        RETURN this.x + this.y
    END sum
END Point
p = NEW Point(3, 4)
PRINT(p.sum())`)
	if hadError || out != "7\n" {
		t.Fatalf("got (%q, %v), want (\"7\\n\", false)", out, hadError)
	}
}

func TestInterp_MembershipOperator(t *testing.T) {
	out, hadError := run(t, `
IF 2 IN [1, 2, 3] THEN
    PRINT("yes")
ELSE
    PRINT("no")
END IF`)
	if hadError || out != "yes\n" {
		t.Fatalf("got (%q, %v), want (\"yes\\n\", false)", out, hadError)
	}
}

func TestInterp_ClosureCapturesLiveFrameNotSnapshot(t *testing.T) {
	out, hadError := run(t, `
FUNCTION makeCounter()
    n = 0
    FUNCTION increment()
        n = n + 1
        RETURN n
    END increment
    RETURN increment
END makeCounter
counter = makeCounter()
PRINT(counter())
PRINT(counter())
PRINT(counter())`)
	if hadError || out != "1\n2\n3\n" {
		t.Fatalf("got (%q, %v), want (\"1\\n2\\n3\\n\", false)", out, hadError)
	}
}

func TestInterp_SingleInheritanceMethodResolution(t *testing.T) {
	out, hadError := run(t, `
CLASS Animal
METHODS
    FUNCTION speak()
        RETURN "..."
    END speak
END Animal
CLASS Dog INHERITS Animal
METHODS
    FUNCTION speak()
        RETURN "Woof"
    END speak
END Dog
d = NEW Dog()
PRINT(d.speak())`)
	if hadError || out != "Woof\n" {
		t.Fatalf("got (%q, %v), want (\"Woof\\n\", false)", out, hadError)
	}
}

func TestInterp_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, hadError := run(t, `PRINT(1 / 0)`)
	if !hadError {
		t.Fatalf("expected a division-by-zero runtime error")
	}
}

func TestInterp_OutOfBoundsIndexIsRuntimeError(t *testing.T) {
	_, hadError := run(t, `a = [1, 2] PRINT(a[5])`)
	if !hadError {
		t.Fatalf("expected an out-of-bounds runtime error")
	}
}

func TestInterp_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, hadError := run(t, `PRINT(neverDefined)`)
	if !hadError {
		t.Fatalf("expected an undefined-variable runtime error")
	}
}

func TestInterp_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, hadError := run(t, `x = 1 PRINT(x())`)
	if !hadError {
		t.Fatalf("expected a non-callable runtime error")
	}
}

func TestInterp_WrongArgumentCountIsRuntimeError(t *testing.T) {
	_, hadError := run(t, `
FUNCTION add(a, b)
    RETURN a + b
END add
PRINT(add(1))`)
	if !hadError {
		t.Fatalf("expected a wrong-argument-count runtime error")
	}
}

func TestInterp_NumberDisplayOmitsTrailingZeros(t *testing.T) {
	out, hadError := run(t, `PRINT(3.0)`)
	if hadError || out != "3\n" {
		t.Fatalf("got (%q, %v), want (\"3\\n\", false)", out, hadError)
	}
}
