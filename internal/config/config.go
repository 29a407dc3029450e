// Package config loads the optional .pseudocoderc file that customizes the
// host's color behavior and default debug flags. The repl.prompt key is
// parsed into Config, but the host's REPL prints a fixed prompt. It never
// affects the core (lexer/parser/interp/diag) packages, which take no
// configuration of their own.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the parsed form of .pseudocoderc. The zero value leaves Prompt
// and Color empty; Defaults returns the populated default settings.
type Config struct {
	Repl struct {
		Prompt string `toml:"prompt"`
		Color  string `toml:"color"` // "auto" | "always" | "never"
	} `toml:"repl"`
	Debug struct {
		Tokens bool `toml:"tokens"`
		Parse  bool `toml:"parse"`
	} `toml:"debug"`
}

// Defaults returns the configuration used when no .pseudocoderc is found.
func Defaults() Config {
	var c Config
	c.Repl.Prompt = "scsa> "
	c.Repl.Color = "auto"
	return c
}

// Load resolves .pseudocoderc via $PSEUDOCODE_CONFIG, then ./.pseudocoderc,
// then $HOME/.pseudocoderc, returning Defaults() unchanged if none exist.
// A $PSEUDOCODE_CONFIG naming a missing file, or a malformed file that does
// exist, is a hard error — silence is reserved for "no file found", not
// "pointed at a file that is not there" or "found an unreadable one".
func Load() (Config, error) {
	cfg := Defaults()

	if p := os.Getenv("PSEUDOCODE_CONFIG"); p != "" && !fileExists(p) {
		return cfg, fmt.Errorf("PSEUDOCODE_CONFIG names %q, which is not a readable file", p)
	}

	path, ok := resolvePath()
	if !ok {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolvePath() (string, bool) {
	if p := os.Getenv("PSEUDOCODE_CONFIG"); p != "" {
		if fileExists(p) {
			return p, true
		}
		return "", false
	}
	if fileExists("./.pseudocoderc") {
		return "./.pseudocoderc", true
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".pseudocoderc")
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
