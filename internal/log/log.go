// Package log provides centralised audit logging for mdctx operations.
// Logs are stored in ~/.mdctx/log/mdctx-log.db and track all CLI commands
// and MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("expand:expand", "expand").
//		Author(cmd.Author()).
//		Path(file).
//		Imports(result.Directives).
//		Write(err)
//
//	log.Event("expand:check", "check").
//		Author(cmd.Author()).
//		Path(file).
//		Detail("directives", len(report)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "expand:expand",
// "core:config", "mcp:expand".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "expand:expand", "mcp:expand"
	Author string // who performed the action
	Action string // verb: expand, check, diff, config, etc.
	Path   string // input: root file the operation targeted

	// Output fields - populated after operation succeeds
	ResolvedPath string // output: absolute root file path
	Imports      int    // output: import directives encountered
	Failures     int    // output: directives replaced with failure markers

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "expand:expand")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:expand", "mcp:check")
//
// The action describes what operation was performed:
//   - "expand", "check", "diff", "preview", "config", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the root file this operation targeted, as the user wrote it.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Resolved sets the absolute root file path (output).
//
// Use when the actual path differs from input, such as after relative paths
// are absolutised.
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// Imports sets how many import directives the operation encountered (output).
func (b *Builder) Imports(n int) *Builder {
	b.entry.Imports = n
	return b
}

// Failures sets how many directives were replaced with failure markers (output).
func (b *Builder) Failures(n int) *Builder {
	b.entry.Failures = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// depth limits, allowlist overrides, directive counts, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	r, err := expand.Run(w, file, opts)
//	log.Event("expand:expand", "expand").Path(file).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute base directory being expanded from.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
