// Command pseudocode is the SCSA Pseudocode interpreter's command-line
// front end: it resolves .pseudocoderc, parses flags, and dispatches to
// internal/host to either run a .scsa file or start the REPL, mirroring
// original_source/src/main.hpp's argument handling.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/TheComputerNerd88/pseudocode/internal/config"
	"github.com/TheComputerNerd88/pseudocode/internal/host"
)

func usage() {
	fmt.Println("Usage: scsa [--debug-tokens] [--debug-parse] [-v|-vv] [script.scsa]")
	fmt.Println("Options:")
	fmt.Println("  --debug-tokens   Print token table after lexing")
	fmt.Println("  --debug-parse    Print AST after parsing")
	fmt.Println("  -v, -vv          Increase host log verbosity")
	fmt.Println("If no script is provided, an interactive REPL is started.")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		usage()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scsa: config error: %v\n", err)
		return 1
	}

	var opts host.Options
	var scriptPath string

	for _, arg := range args {
		switch {
		case arg == "--debug-tokens":
			opts.DebugTokens = true
		case arg == "--debug-parse":
			opts.DebugParse = true
		case arg == "-v":
			opts.Verbosity = 1
		case arg == "-vv":
			opts.Verbosity = 2
		default:
			if !strings.HasSuffix(arg, ".scsa") {
				usage()
				return 1
			}
			scriptPath = arg
		}
	}

	opts = host.Resolve(cfg, opts)

	if scriptPath != "" {
		return host.RunFile(scriptPath, opts)
	}
	return host.RunRepl(opts)
}
