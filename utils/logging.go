package utils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type ContextKey int

const (
	ContextKeyLogger ContextKey = iota
)

// NewLogger builds the application logger. "json" is meant for production log collectors,
// "text" prints one compact line per record for local development.
func NewLogger(format string) *slog.Logger {
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			ReplaceAttr: GCPLoggerAttributeReplacer,
		}))
	case "text-raw":
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	default:
		return slog.New(NewLocalDevHandler(os.Stderr))
	}
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

// LoggerFromContext never returns nil: without a stored logger, the default slog logger is used.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found || logger == nil {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithLogger := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctxWithLogger)
	}
}

func GCPLoggerAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	// Rename "msg" to "message" so that stackdriver logging can parse it as the main message
	if a.Key == slog.MessageKey {
		a.Key = "message"
		return a
	}

	if a.Key == slog.LevelKey {
		a.Key = "severity"
		level, _ := a.Value.Any().(slog.Level)

		switch {
		case level < slog.LevelInfo:
			a.Value = slog.StringValue("DEBUG")
		case level < slog.LevelWarn:
			a.Value = slog.StringValue("INFO")
		case level < slog.LevelError:
			a.Value = slog.StringValue("WARNING")
		default:
			a.Value = slog.StringValue("ERROR")
		}
	}

	return a
}

// LocalDevHandler prints the time, level and message in front of the text encoded attributes.
type LocalDevHandler struct {
	internalHandler slog.Handler

	mu *sync.Mutex
	w  io.Writer
}

func NewLocalDevHandler(w io.Writer) *LocalDevHandler {
	opts := slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return &LocalDevHandler{
		w:               w,
		mu:              &sync.Mutex{},
		internalHandler: slog.NewTextHandler(w, &opts),
	}
}

func (h *LocalDevHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.internalHandler.Enabled(ctx, level)
}

func (h *LocalDevHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(r.Time.Format(time.RFC3339))
	buf.WriteString(" ")
	buf.WriteString(r.Level.String())
	buf.WriteString(" ")
	buf.WriteString(r.Message)
	buf.WriteString(" ")

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.w.Write(buf.Bytes()); err != nil {
		return err
	}

	return h.internalHandler.Handle(ctx, r)
}

func (h *LocalDevHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LocalDevHandler{
		w:               h.w,
		mu:              h.mu,
		internalHandler: h.internalHandler.WithAttrs(attrs),
	}
}

func (h *LocalDevHandler) WithGroup(name string) slog.Handler {
	return &LocalDevHandler{
		w:               h.w,
		mu:              h.mu,
		internalHandler: h.internalHandler.WithGroup(name),
	}
}
