// Package logging provides the zerolog diagnostic channel used for workflow
// and server logs.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Config controls logger construction
type Config struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Debug  bool   `koanf:"debug" json:"debug" yaml:"debug"`
	Output string `koanf:"output" json:"output" yaml:"output"`
	// Pretty forces the human-readable console writer; when false it is
	// chosen automatically for terminals
	Pretty bool `koanf:"pretty" json:"pretty" yaml:"pretty"`
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// New builds a logger from cfg and installs it as the global zerolog logger.
// Output "stdout" selects stdout; anything else (including empty) writes to
// stderr so command output stays clean.
func New(cfg Config) (zerolog.Logger, error) {
	out := os.Stderr
	if cfg.Output == "stdout" {
		out = os.Stdout
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	var w io.Writer = out
	if cfg.Pretty || term.IsTerminal(int(out.Fd())) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := NewWithWriter(w, level)
	log.Logger = logger
	return logger, nil
}

// NewWithWriter builds a JSON logger on w at the given level
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Nop returns a disabled logger
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
