// logger.go defines the logging capability consumed by the processor.
//
// Separated from imports.go for the same reason as fs.go: the processor
// reports policy violations and I/O failures through this interface rather
// than writing anywhere itself, so embedders decide where diagnostics go
// (stderr for the CLI, stderr-slog for the MCP server, a recorder in tests).

package imports

import (
	"fmt"
	"log/slog"
)

// Logger receives structured warnings and errors from the processor.
// Policy violations (unsupported type, disallowed path, cycle, depth) are
// warnings; file-system failures are errors.
type Logger interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// slogLogger adapts log/slog to the Logger capability, tagging every record
// with the originating component.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger returns a Logger backed by l (or slog.Default when nil).
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l.With("component", "imports")}
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Errorf(format string, args ...any) {
	s.l.Error(fmt.Sprintf(format, args...))
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.l.Debug(fmt.Sprintf(format, args...))
}
