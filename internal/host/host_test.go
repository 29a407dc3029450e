package host

import (
	"testing"

	"github.com/tliron/commonlog"

	"github.com/TheComputerNerd88/pseudocode/internal/config"
)

func TestResolve_CLIFlagsOverrideConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Repl.Color = "never"
	cfg.Debug.Tokens = true
	cfg.Debug.Parse = true

	got := Resolve(cfg, Options{Color: "always"})
	if got.Color != "always" {
		t.Errorf("Color = %q, want CLI override %q", got.Color, "always")
	}
	if !got.DebugTokens || !got.DebugParse {
		t.Errorf("expected config debug flags to carry through when CLI didn't set them, got %+v", got)
	}
}

func TestResolve_FallsBackToConfigWhenCLIUnset(t *testing.T) {
	cfg := config.Defaults()
	cfg.Repl.Color = "always"

	got := Resolve(cfg, Options{})
	if got.Color != "always" {
		t.Errorf("Color = %q, want config value %q", got.Color, "always")
	}
}

func TestLogLevelFor(t *testing.T) {
	cases := []struct {
		verbosity int
		want      commonlog.Level
	}{
		{0, commonlog.Notice},
		{1, commonlog.Info},
		{2, commonlog.Debug},
		{3, commonlog.Debug},
	}
	for _, c := range cases {
		if got := logLevelFor(c.verbosity); got != c.want {
			t.Errorf("logLevelFor(%d) = %v, want %v", c.verbosity, got, c.want)
		}
	}
}
