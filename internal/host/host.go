// Package host wires the core pipeline (lexer, parser, interpreter) to the
// command line: file execution, the REPL, debug dumps, and the ambient
// concerns (config, logging, color) that spec.md §1 keeps out of the core.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/TheComputerNerd88/pseudocode/internal/ast"
	"github.com/TheComputerNerd88/pseudocode/internal/config"
	"github.com/TheComputerNerd88/pseudocode/internal/diag"
	"github.com/TheComputerNerd88/pseudocode/internal/interp"
	"github.com/TheComputerNerd88/pseudocode/internal/lexer"
	"github.com/TheComputerNerd88/pseudocode/internal/parser"
	"github.com/TheComputerNerd88/pseudocode/internal/token"
)

var log = commonlog.GetLogger("pseudocode.host")

// Options carries the effective settings for a host invocation: the CLI
// flags layered over .pseudocoderc (flags win — see SPEC_FULL.md's
// Configuration section).
type Options struct {
	DebugTokens bool
	DebugParse  bool
	Color       string // "auto" | "always" | "never", overrides config
	Verbosity   int    // number of -v flags
}

// Resolve merges cfg (loaded from .pseudocoderc) with CLI-set fields in
// opts, CLI taking precedence wherever opts carries a non-zero override.
func Resolve(cfg config.Config, opts Options) Options {
	if opts.Color == "" {
		opts.Color = cfg.Repl.Color
	}
	if !opts.DebugTokens {
		opts.DebugTokens = cfg.Debug.Tokens
	}
	if !opts.DebugParse {
		opts.DebugParse = cfg.Debug.Parse
	}
	return opts
}

// RunFile lexes, parses, and interprets the contents of path, printing any
// diagnostic to stderr. It returns the process exit code (0 or 1), matching
// the original host's Pseudocode::runFile contract.
func RunFile(path string, opts Options) int {
	configureLogging(opts.Verbosity)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scsa: cannot read %s: %v\n", path, err)
		return 1
	}

	runID := uuid.New()
	log.Infof("run %s: executing %s", runID, path)

	if ok := runOnce(string(source), path, opts, os.Stdout, runID); !ok {
		return 1
	}
	return 0
}

// RunRepl starts an interactive read-eval-print loop over stdin, one line
// per run; a construct spanning several lines is not joined. The prompt is
// always "scsa> ". A diagnostic on one line never exits the
// process (SPEC_FULL.md, supplemented feature 5) — it is printed and the
// loop continues, exactly like original_source's runRepl always returning 0.
func RunRepl(opts Options) int {
	configureLogging(opts.Verbosity)
	log.Info("REPL session starting")

	prompt := "scsa> "
	ip := interp.New(diag.New("", "", os.Stdout), os.Stdout)

	scanner := bufio.NewScanner(os.Stdin)
	colorOn := colorChoice(opts.Color)

	for {
		fmt.Fprint(os.Stdout, paint(colorOn, prompt, promptColor))
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		runID := uuid.New()
		log.Debugf("run %s: REPL line", runID)
		runOnceWithInterpreter(ip, line, "", opts, os.Stdout, runID)
	}

	log.Info("REPL session ending")
	return 0
}

// runOnce lexes, parses, and interprets source in a freshly constructed
// Interpreter (file-execution mode: no state survives between invocations).
// It returns false if any diagnostic aborted the run.
func runOnce(source, fileName string, opts Options, out io.Writer, runID uuid.UUID) bool {
	report := diag.New(source, fileName, os.Stderr)
	ip := interp.New(report, out)
	return runOnceWithInterpreter(ip, source, fileName, opts, out, runID)
}

// runOnceWithInterpreter runs one lex/parse/interpret cycle against an
// existing Interpreter, so the REPL can share state across successive lines
// while RunFile still gets an isolated one. Each call builds its own
// diag.Reporter over source and hands it to ip via SetReporter.
func runOnceWithInterpreter(ip *interp.Interpreter, source, fileName string, opts Options, out io.Writer, runID uuid.UUID) (ok bool) {
	report := diag.New(source, fileName, os.Stderr)

	defer func() {
		if r := recover(); r != nil {
			if _, aborted := r.(diag.Aborted); aborted {
				ok = false
				return
			}
			panic(r)
		}
	}()

	report.Phase = diag.Lexing
	lx := lexer.New(source, report)
	tokens := lx.Tokenize()
	if opts.DebugTokens {
		dumpTokens(out, runID, tokens)
	}

	report.Phase = diag.Parsing
	ps := parser.New(tokens, report)
	stmts := ps.ParseProgram()
	if opts.DebugParse {
		fmt.Fprintf(out, "--- AST (run %s) ---\n%s\n", runID, ast.Dump(stmts))
	}
	if report.HasErrors() {
		return false
	}

	report.Phase = diag.Runtime
	ip.SetReporter(report)
	if err := ip.Run(stmts); err != nil {
		return false
	}
	return true
}

func dumpTokens(out io.Writer, runID uuid.UUID, tokens []token.Token) {
	fmt.Fprintf(out, "--- tokens (run %s) ---\n", runID)
	fmt.Fprintf(out, "%-14s %-20s LINE\n", "KIND", "LEXEME")
	fmt.Fprintln(out, strings.Repeat("-", 48))
	for _, t := range tokens {
		if t.Kind == token.EOF {
			break
		}
		lexeme := t.Lexeme
		if lexeme == "" {
			lexeme = "N/A"
		}
		fmt.Fprintf(out, "%-14s %-20s %d\n", t.Kind, lexeme, t.Line)
	}
}

func configureLogging(verbosity int) {
	commonlog.SetMaxLevel(logLevelFor(verbosity))
}

func logLevelFor(verbosity int) commonlog.Level {
	switch {
	case verbosity >= 2:
		return commonlog.Debug
	case verbosity == 1:
		return commonlog.Info
	default:
		return commonlog.Notice
	}
}
