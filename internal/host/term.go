package host

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// promptColor is the REPL prompt's accent color when coloring is enabled.
var promptColor = termenv.ANSICyan

// colorChoice resolves the effective color policy from the config's
// "auto"|"always"|"never" setting, NO_COLOR (https://no-color.org), and
// whether stdout is actually a terminal — the Go-idiomatic analogue of the
// original host's Windows-only ENABLE_VIRTUAL_TERMINAL_PROCESSING branch,
// generalized to every platform termenv supports.
func colorChoice(setting string) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default: // "auto" or unset
		return isatty.IsTerminal(os.Stdout.Fd()) && termenv.ColorProfile() != termenv.Ascii
	}
}

// paint returns s styled with fg when enabled is true, unstyled otherwise.
func paint(enabled bool, s string, fg termenv.Color) string {
	if !enabled {
		return s
	}
	return termenv.String(s).Foreground(fg).String()
}
