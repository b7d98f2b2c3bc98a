package middleware

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Skryldev/image-upscaler/core"
)

// NewLogger constructs a zerolog.Logger with sane defaults for the CLI.
// Console output is human-readable; levels parse per zerolog conventions
// with an info fallback for unknown names.
func NewLogger(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if console {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}

// ZerologLogger adapts a zerolog.Logger to core.Logger.
type ZerologLogger struct {
	log zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger { return &ZerologLogger{log: l} }

func (z *ZerologLogger) Debug(msg string, fields ...interface{}) {
	z.emit(z.log.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...interface{}) {
	z.emit(z.log.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...interface{}) {
	z.emit(z.log.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, fields ...interface{}) {
	z.emit(z.log.Error(), msg, fields)
}

func (z *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}

var _ core.Logger = (*ZerologLogger)(nil)
