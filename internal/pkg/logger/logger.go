package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type Options struct {
	Debug bool
	// Format is "json", "console" or "auto" (console on a terminal).
	Format string
	Output io.Writer
}

func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	console := opts.Format == "console"
	if opts.Format == "auto" || opts.Format == "" {
		if f, ok := out.(*os.File); ok {
			console = isatty.IsTerminal(f.Fd())
		}
	}
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// InterceptorLogger adapts zerolog to the go-grpc-middleware logging interface.
func InterceptorLogger(l zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l := l.With().Fields(fields).Logger()

		switch lvl {
		case logging.LevelDebug:
			l.Debug().Msg(msg)
		case logging.LevelInfo:
			l.Info().Msg(msg)
		case logging.LevelWarn:
			l.Warn().Msg(msg)
		case logging.LevelError:
			l.Error().Msg(msg)
		default:
			l.Error().Msg(fmt.Sprintf("unknown level %v: %s", lvl, msg))
		}
	})
}
