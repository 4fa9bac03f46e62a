package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDKey = "request_id"
)

var (
	level  = new(slog.LevelVar)
	output io.Writer = os.Stdout
)

type Logger struct {
	*slog.Logger
}

type requestIDCtxKey struct{}

// ContextWithRequestID stores the request ID so loggers further down the call chain can pick it up.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDCtxKey{}).(string)
	return requestID
}

// SetLevel changes the level of every logger built by this package, including ones built earlier.
func SetLevel(levelName string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(levelName))); err != nil {
		return fmt.Errorf("unknown log level %q", levelName)
	}
	level.Set(l)
	return nil
}

func SetOutput(w io.Writer) {
	output = w
}

func BuildLogger() *Logger {
	logger := Logger{Logger: slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))}
	return &logger
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	logger := BuildLogger()
	modifiedLogger := Logger{Logger: logger.With("path", ctx.Request.URL.Path)}
	if requestID := ctx.GetString(RequestIDKey); requestID != "" {
		modifiedLogger = Logger{Logger: modifiedLogger.With(RequestIDKey, requestID)}
	}
	return &modifiedLogger
}

func (l *Logger) WithError(err error) *Logger {
	modifiedLogger := Logger{Logger: l.With("error", err.Error())}
	return &modifiedLogger
}

// ForContext adds the request ID carried by ctx, if any.
func (l *Logger) ForContext(ctx context.Context) *Logger {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		return l
	}
	modifiedLogger := Logger{Logger: l.With(RequestIDKey, requestID)}
	return &modifiedLogger
}

func (l *Logger) WithAttrs(args ...any) *Logger {
	modifiedLogger := Logger{Logger: l.With(args...)}
	return &modifiedLogger
}
