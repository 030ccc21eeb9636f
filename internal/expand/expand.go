// Package expand drives import expansion for the CLI and MCP surfaces.
//
// It owns the glue the core deliberately leaves out: reading the root file,
// anchoring the base directory, seeding the traversal state, and shaping
// results for text or JSON output. The expansion itself is entirely
// internal/imports.
package expand

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/mdctx/internal/imports"
	"github.com/jpl-au/mdctx/internal/scope"
)

// Stdin is the file argument that selects standard input. Stdin content has
// no backing file, so the base directory is the working directory and no
// self-import cycle seed exists.
const Stdin = "-"

// Options configures an expand operation.
type Options struct {
	NoImports   bool               // Skip directive processing entirely
	MaxDepth    int                // Recursion ceiling (0 = default)
	AllowedDirs []string           // Allowlist override (absolute dirs)
	ExtraDirs   []string           // Absolute dirs appended to the default allowlist
	Logger      imports.Logger     // Diagnostics sink (nil = slog)
	FS          imports.FileAccess // File access (nil = OS filesystem)
	Input       io.Reader          // Source for Stdin (nil = os.Stdin)
}

// Result contains the outcome of an expand operation.
type Result struct {
	Path       string `json:"path"`       // Absolute root file path ("-" for stdin)
	Content    string `json:"content"`    // Expanded content
	Directives int    `json:"directives"` // Import directives seen at the top level
}

// Run expands the import directives in file and writes the result to w.
func Run(w io.Writer, file string, opts Options) (Result, error) {
	var result Result

	content, base, root, err := load(file, opts)
	if err != nil {
		return result, err
	}

	result.Path = file
	if root != "" {
		result.Path = root
	}
	result.Directives = len(imports.Directives(content))
	result.Content = content

	// Directive-free content needs no traversal state at all.
	if !opts.NoImports && imports.HasDirectives(content) {
		proc := &imports.Processor{
			FS:          opts.FS,
			Log:         opts.Logger,
			AllowedDirs: opts.AllowedDirs,
			ExtraDirs:   opts.ExtraDirs,
		}

		st := imports.NewState()
		if opts.MaxDepth > 0 {
			st.MaxDepth = opts.MaxDepth
		}
		if root != "" {
			// The root file can never be re-imported into itself.
			st.CurrentFile = root
			st.Processed[root] = struct{}{}
		}

		result.Content = proc.Process(content, base, true, st)
	}

	fmt.Fprint(w, result.Content)
	return result, nil
}

// Failures counts the failure markers present in expanded content. Used for
// audit logging and for surfacing a non-zero exit from strict CLI runs.
func Failures(content string) int {
	return strings.Count(content, "<!-- Import failed:") +
		strings.Count(content, "<!-- Circular import detected:")
}

// load reads the root content and determines the base directory.
// root is empty when the content is not backed by a file (stdin).
func load(file string, opts Options) (content, base, root string, err error) {
	if file == Stdin {
		in := opts.Input
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return "", "", "", fmt.Errorf("reading stdin: %w", err)
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", "", "", err
		}
		return string(b), wd, "", nil
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return "", "", "", fmt.Errorf("resolving %s: %w", file, err)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return "", "", "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(b), filepath.Dir(abs), abs, nil
}

// Directive statuses reported by Check.
const (
	StatusOK          = "ok"
	StatusUnsupported = "unsupported"
	StatusDenied      = "denied"
	StatusMissing     = "missing"
	StatusCycle       = "cycle"
)

// Directive describes the disposition of one top-level import directive.
type Directive struct {
	Path     string `json:"path"`               // Literal path as written
	Resolved string `json:"resolved,omitempty"` // Absolute target (when resolvable)
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

// Check reports how each top-level directive in file would be handled,
// without inlining anything. It applies the same gate order as the
// processor: extension, allowlist, cycle, existence.
func Check(w io.Writer, file string, opts Options) ([]Directive, error) {
	content, base, root, err := load(file, opts)
	if err != nil {
		return nil, err
	}

	fs := opts.FS
	if fs == nil {
		fs = imports.OSFileAccess()
	}

	dirs := opts.AllowedDirs
	if dirs == nil {
		dirs = append(scope.AllowedDirs(base), opts.ExtraDirs...)
	}

	var report []Directive
	for _, ref := range imports.Directives(content) {
		d := Directive{Path: ref}
		switch {
		case !strings.HasSuffix(ref, ".md"):
			d.Status = StatusUnsupported
			d.Detail = "only .md files are supported"
		case !scope.Allowed(ref, base, dirs):
			d.Status = StatusDenied
			if filepath.IsAbs(ref) {
				d.Detail = "absolute paths not allowed"
			} else {
				d.Detail = "outside allowed directories"
			}
		default:
			d.Resolved = imports.Resolve(ref, base)
			if d.Resolved == root {
				d.Status = StatusCycle
				d.Detail = "imports the file being expanded"
			} else if err := fs.Exists(d.Resolved); err != nil {
				d.Status = StatusMissing
				d.Detail = err.Error()
			} else {
				d.Status = StatusOK
			}
		}
		report = append(report, d)

		fmt.Fprintf(w, "%-12s %s", d.Status, d.Path)
		if d.Detail != "" {
			fmt.Fprintf(w, " (%s)", d.Detail)
		}
		fmt.Fprintln(w)
	}

	return report, nil
}
