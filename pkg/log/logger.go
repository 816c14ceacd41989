// Package log configures structured logging for dummyreg. It sets up a JSON
// slog handler that knows how to pull stack traces out of cockroachdb/errors
// values, and bridges the errors package's warning system onto zerolog.
package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	dummyregerrors "github.com/goecon/dummyreg/pkg/errors"
)

// SetupLogger installs the default slog logger for the library.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name into a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// BridgeWarnings routes the errors package's warnings through a zerolog
// logger. Warnings implementing zerolog.LogObjectMarshaler are logged with
// their structured fields.
func BridgeWarnings(logger zerolog.Logger) {
	dummyregerrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(marshaler)
		}
		ev.Msg(warning.Error())
	})
}
