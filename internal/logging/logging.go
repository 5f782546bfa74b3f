// Package logging provides runtime.Logger implementations for code running outside Nakama.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
)

// slogLogger adapts a *slog.Logger to the printf-style runtime.Logger interface.
type slogLogger struct {
	l      *slog.Logger
	fields map[string]interface{}
}

// NewSlog returns a runtime.Logger writing text records to w at the given level.
func NewSlog(level string, w io.Writer) runtime.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &slogLogger{l: slog.New(h), fields: map[string]interface{}{}}
}

// ParseLevel maps a config level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *slogLogger) log(level slog.Level, format string, v ...interface{}) {
	if !s.l.Enabled(context.Background(), level) {
		return
	}
	s.l.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (s *slogLogger) Debug(format string, v ...interface{}) { s.log(slog.LevelDebug, format, v...) }
func (s *slogLogger) Info(format string, v ...interface{})  { s.log(slog.LevelInfo, format, v...) }
func (s *slogLogger) Warn(format string, v ...interface{})  { s.log(slog.LevelWarn, format, v...) }
func (s *slogLogger) Error(format string, v ...interface{}) { s.log(slog.LevelError, format, v...) }

func (s *slogLogger) WithField(key string, v interface{}) runtime.Logger {
	return s.WithFields(map[string]interface{}{key: v})
}

func (s *slogLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(s.fields)+len(fields))
	for k, v := range s.fields {
		merged[k] = v
	}
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		merged[k] = v
		args = append(args, k, v)
	}
	return &slogLogger{l: s.l.With(args...), fields: merged}
}

func (s *slogLogger) Fields() map[string]interface{} {
	return s.fields
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() runtime.Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{})                     {}
func (nopLogger) Info(string, ...interface{})                      {}
func (nopLogger) Warn(string, ...interface{})                      {}
func (nopLogger) Error(string, ...interface{})                     {}
func (nopLogger) WithField(string, interface{}) runtime.Logger     { return nopLogger{} }
func (nopLogger) WithFields(map[string]interface{}) runtime.Logger { return nopLogger{} }
func (nopLogger) Fields() map[string]interface{}                   { return map[string]interface{}{} }
