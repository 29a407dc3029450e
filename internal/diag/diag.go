// Package diag implements the interpreter's diagnostic reporter: the single
// sink that every pipeline stage (lexer, parser, evaluator) reports through.
// It formats a caret-underlined snippet of source and, by default, aborts
// the current pipeline invocation via a recoverable panic that the host
// catches at the top level.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Phase identifies which pipeline stage is currently reporting, so the
// reporter can label diagnostics correctly. The active reporter's phase is
// set externally (by the host) before each stage begins.
type Phase int

const (
	Lexing Phase = iota
	Parsing
	Runtime
)

func (p Phase) String() string {
	switch p {
	case Lexing:
		return "Lexing"
	case Parsing:
		return "Parsing"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Kind is the diagnostic taxonomy from spec.md §7. Type is reserved for a
// future static checker and is currently never produced by this core, but
// the label exists so a host embedding can use it without changing the API.
type Kind int

const (
	Syntax Kind = iota
	Type
	RuntimeError
)

func (k Kind) label() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Type:
		return "Type"
	case RuntimeError:
		return "Runtime"
	default:
		return "Error"
	}
}

// Diagnostic is one reported problem, fully resolved against its source.
type Diagnostic struct {
	Kind    Kind
	Phase   Phase
	Line    int
	Column  int
	Length  int
	Message string
}

// Mode controls whether Report aborts the pipeline (Abort, the default) or
// merely records the diagnostic and returns so a caller like the parser's
// synchronize routine can keep going (Continue).
type Mode int

const (
	Abort Mode = iota
	Continue
)

// Aborted is the recoverable panic value Report raises in Abort mode. The
// host recovers it at the top level of runFile/runRepl; it carries no data
// beyond marking that a diagnostic already did the reporting.
type Aborted struct{}

func (Aborted) Error() string { return "pipeline aborted by diagnostic" }

// Reporter is the shared diagnostic sink. One instance is constructed per
// top-level run and threaded through the lexer, parser, and evaluator, with
// its Phase updated before each stage starts.
type Reporter struct {
	Phase    Phase
	FileName string
	Mode     Mode

	out   io.Writer
	lines []string

	diagnostics []Diagnostic
}

// New constructs a Reporter over source, splitting it into lines for later
// context rendering. fileName may be empty; out receives formatted output
// (typically os.Stderr).
func New(source, fileName string, out io.Writer) *Reporter {
	return &Reporter{
		FileName: fileName,
		out:      out,
		lines:    strings.Split(source, "\n"),
	}
}

// Diagnostics returns every diagnostic reported so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool { return len(r.diagnostics) > 0 }

// Report formats and emits one diagnostic. In Abort mode (the default) it
// then panics with Aborted, terminating the current pipeline invocation; the
// top-level host recovers that panic. In Continue mode it returns normally
// so the caller can attempt local recovery (the parser's synchronize).
func (r *Reporter) Report(kind Kind, line, column, length int, message string) {
	d := Diagnostic{Kind: kind, Phase: r.Phase, Line: line, Column: column, Length: length, Message: message}
	r.diagnostics = append(r.diagnostics, d)
	fmt.Fprint(r.out, r.render(d))
	if r.Mode == Abort {
		panic(Aborted{})
	}
}

// render builds the multi-line formatted block described in spec.md §4.5:
// a phase header, a file/line/column locator, up to two lines of preceding
// context, the offending line, a caret underline of length characters
// aligned with column (tabs in the source are echoed as tabs so the caret
// lines up under a variable-width terminal tab stop), the kind and message,
// and one trailing context line if available.
func (r *Reporter) render(d Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]", d.Phase)
	if r.FileName != "" {
		fmt.Fprintf(&b, " %s:%d:%d", r.FileName, d.Line, d.Column)
	} else {
		fmt.Fprintf(&b, " line %d, column %d", d.Line, d.Column)
	}
	b.WriteByte('\n')

	lineIdx := d.Line - 1
	if lineIdx >= 0 && lineIdx < len(r.lines) {
		for i := lineIdx - 2; i < lineIdx; i++ {
			if i >= 0 {
				fmt.Fprintf(&b, "  %4d | %s\n", i+1, r.lines[i])
			}
		}

		offending := r.lines[lineIdx]
		fmt.Fprintf(&b, "  %4d | %s\n", d.Line, offending)

		pad := make([]byte, 0, d.Column)
		for i := 0; i < d.Column; i++ {
			if i < len(offending) && offending[i] == '\t' {
				pad = append(pad, '\t')
			} else {
				pad = append(pad, ' ')
			}
		}
		caretLen := d.Length
		if caretLen < 1 {
			caretLen = 1
		}
		fmt.Fprintf(&b, "       | %s%s\n", pad, strings.Repeat("^", caretLen))

		if lineIdx+1 < len(r.lines) {
			fmt.Fprintf(&b, "  %4d | %s\n", d.Line+1, r.lines[lineIdx+1])
		}
	}

	fmt.Fprintf(&b, "%s error: %s\n\n", d.Kind.label(), d.Message)
	return b.String()
}
