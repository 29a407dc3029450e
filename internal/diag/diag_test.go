package diag

import (
	"strings"
	"testing"
)

func TestReporter_AbortModePanicsAborted(t *testing.T) {
	var out strings.Builder
	r := New("x = 1\n", "test.scsa", &out)
	r.Mode = Abort

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("expected a panic in Abort mode")
		}
		if _, ok := rec.(Aborted); !ok {
			t.Fatalf("expected panic value of type Aborted, got %T", rec)
		}
	}()
	r.Report(Syntax, 1, 0, 1, "boom")
}

func TestReporter_ContinueModeReturnsNormally(t *testing.T) {
	var out strings.Builder
	r := New("x = 1\n", "test.scsa", &out)
	r.Mode = Continue

	r.Report(Syntax, 1, 0, 1, "boom")
	if !r.HasErrors() {
		t.Fatalf("expected the diagnostic to be recorded")
	}
	if len(r.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(r.Diagnostics()))
	}
}

func TestReporter_RenderIncludesPhaseAndMessage(t *testing.T) {
	var out strings.Builder
	r := New("PRINT x\n", "test.scsa", &out)
	r.Mode = Continue
	r.Phase = Runtime

	r.Report(RuntimeError, 1, 6, 1, "Undefined variable 'x'.")

	got := out.String()
	for _, want := range []string{"[Runtime]", "test.scsa:1:6", "Runtime error: Undefined variable 'x'."} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, got)
		}
	}
}

func TestReporter_CaretAlignsUnderTabs(t *testing.T) {
	var out strings.Builder
	src := "\tx = 1\n"
	r := New(src, "", &out)
	r.Mode = Continue

	r.Report(Syntax, 1, 1, 1, "oops")

	got := out.String()
	// The pointer line must echo the literal tab at column 0 before the caret,
	// so it lines up under a variable-width terminal tab stop.
	if !strings.Contains(got, "| \t^") {
		t.Fatalf("expected tab-aligned caret, got:\n%s", got)
	}
}

func TestReporter_FallsBackToLineColumnWithoutFileName(t *testing.T) {
	var out strings.Builder
	r := New("x\n", "", &out)
	r.Mode = Continue
	r.Report(Syntax, 1, 0, 1, "boom")

	if !strings.Contains(out.String(), "line 1, column 0") {
		t.Fatalf("expected line/column fallback header, got:\n%s", out.String())
	}
}
