package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type config struct {
	logger     *slog.Logger
	ignorePath []string

	defaultLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

type LoggerOption func(*config)

func WithIgnorePath(s []string) LoggerOption {
	return func(c *config) {
		c.ignorePath = s
	}
}

// WithRequestLoggingLevel sets the level of successful requests: "all" logs them at info level,
// anything else at debug level.
func WithRequestLoggingLevel(level string) LoggerOption {
	return func(c *config) {
		if strings.EqualFold(level, "all") {
			c.defaultLevel = slog.LevelInfo
		} else {
			c.defaultLevel = slog.LevelDebug
		}
	}
}

// NewLogging logs one line per request, at a level depending on the response status.
func NewLogging(logger *slog.Logger, options ...LoggerOption) gin.HandlerFunc {
	l := &config{
		logger:           logger,
		defaultLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}

	for _, option := range options {
		option(l)
	}

	ignore := make(map[string]struct{}, len(l.ignorePath))
	for _, path := range l.ignorePath {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := ignore[c.Request.URL.Path]; ok {
			return
		}

		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		dataLength := max(c.Writer.Size(), 0)

		level := l.defaultLevel
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			level = l.clientErrorLevel
		}
		if status >= http.StatusInternalServerError {
			level = l.serverErrorLevel
		}

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", latency),
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("data_length", dataLength),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if c.Errors != nil {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}
		l.logger.LogAttrs(c.Request.Context(), level,
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}
