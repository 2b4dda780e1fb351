package log

import (
	"io"
	"os"
	"time"

	"github.com/denchenko/dash/internal/config"
	"github.com/rs/zerolog"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[zerolog.Logger](NewLoggerFromConfig),
)

// New creates a console logger writing to w at the given level.
// An unknown level falls back to warn.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// NewLoggerFromConfig creates the process logger on stderr (for DI).
func NewLoggerFromConfig(i do.Injector) (zerolog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return New(os.Stderr, cfg.LogLevel), nil
}
