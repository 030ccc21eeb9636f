// Package imports expands @file.md import directives embedded in markdown
// content, recursively inlining the referenced files.
//
// A directive is an @ followed by a run of non-whitespace characters, e.g.
// "See @docs/style.md for conventions". Each directive is replaced in place
// with the imported file's content (itself recursively expanded) wrapped in
// marker comments, or with an inline failure marker when the import cannot
// be satisfied. Expansion never fails as a whole: the content always comes
// back complete, possibly degraded, because context files must remain usable
// even when some imports are broken.
//
// Security boundary (enforced before any file access):
//   - only .md files may be imported
//   - targets must resolve inside the allowlist computed by internal/scope
//     (the base directory and its ancestors, never the filesystem root)
//   - recursion depth is capped and previously inlined files are never
//     re-inlined in the same chain
//
// File access and diagnostics are injected capabilities (FileAccess, Logger),
// so the processor itself performs no direct I/O beyond what it is handed.
package imports

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jpl-au/mdctx/internal/scope"
)

// directiveRe matches an import directive: @ followed by the maximal run of
// non-whitespace characters.
var directiveRe = regexp.MustCompile(`@(\S+)`)

// Processor expands import directives. The zero value is usable: it reads
// from the OS filesystem, logs via slog, and computes the allowlist from
// each base directory.
type Processor struct {
	// FS is the file-access capability. Nil means the real filesystem.
	FS FileAccess

	// Log receives warnings (policy violations) and errors (I/O failures).
	// Nil means slog to the default handler.
	Log Logger

	// AllowedDirs overrides the computed allowlist when non-nil. Entries
	// must be absolute directories. Used by callers that want a fixed
	// boundary regardless of where imported files live.
	AllowedDirs []string

	// ExtraDirs extends the computed allowlist at every recursion level.
	// Entries must be absolute directories. Ignored when AllowedDirs is set.
	ExtraDirs []string
}

func (p *Processor) fs() FileAccess {
	if p.FS != nil {
		return p.FS
	}
	return osFileAccess{}
}

func (p *Processor) log() Logger {
	if p.Log != nil {
		return p.Log
	}
	return NewSlogLogger(nil)
}

// Process returns content with all import directives replaced according to
// their outcome. baseDir anchors relative targets and (unless AllowedDirs is
// set) the allowlist. When enabled is false the content is returned untouched
// with no scan at all - imports are an opt-in feature. A nil st starts a
// fresh traversal with the default depth limit.
//
// Process never returns an error; failed directives become inline markers
// and are reported through the Logger capability.
func (p *Processor) Process(content, baseDir string, enabled bool, st *State) string {
	if !enabled {
		return content
	}
	if st == nil {
		st = NewState()
	}

	// The depth check gates the whole pass, not individual directives:
	// content at the limit is returned verbatim.
	if st.Depth >= st.MaxDepth {
		p.log().Warnf("maximum import depth reached (%d), not processing imports in %s",
			st.MaxDepth, displayFile(st))
		return content
	}

	dirs := p.AllowedDirs
	if dirs == nil {
		dirs = append(scope.AllowedDirs(baseDir), p.ExtraDirs...)
	}

	// ReplaceAllStringFunc visits matches left to right, one at a time, so
	// reads happen in document order and each directive observes completion
	// of the previous one.
	return directiveRe.ReplaceAllStringFunc(content, func(m string) string {
		return p.expand(m[1:], baseDir, dirs, st)
	})
}

// expand resolves a single directive and returns its replacement text.
// ref is the literal path as written after the @; failure markers and import
// markers always echo it, never the resolved absolute path.
func (p *Processor) expand(ref, baseDir string, dirs []string, st *State) string {
	// Only markdown files may be imported. Checked before any path
	// resolution so unsupported targets never trigger file access.
	if !strings.HasSuffix(ref, ".md") {
		p.log().Warnf("unsupported import %q: only .md files are supported", ref)
		return "<!-- Import failed: " + ref + " - Only .md files are supported -->"
	}

	if !scope.Allowed(ref, baseDir, dirs) {
		if filepath.IsAbs(ref) {
			p.log().Warnf("absolute import %q not allowed", ref)
			return "<!-- Import failed: " + ref + " - Absolute paths not allowed -->"
		}
		p.log().Warnf("import %q resolves outside the allowed directories", ref)
		return "<!-- Import failed: " + ref + " - Path not allowed -->"
	}

	resolved := Resolve(ref, baseDir)

	if st.visited(resolved) {
		p.log().Warnf("circular import of %q (resolved %s)", ref, resolved)
		return "<!-- Circular import detected: " + ref + " -->"
	}

	if err := p.fs().Exists(resolved); err != nil {
		p.log().Errorf("import %q: %v", ref, err)
		return "<!-- Import failed: " + ref + " - " + err.Error() + " -->"
	}

	content, err := p.fs().Read(resolved)
	if err != nil {
		p.log().Errorf("import %q: %v", ref, err)
		return "<!-- Import failed: " + ref + " - " + err.Error() + " -->"
	}

	// Recurse with the imported file's own directory as the new base, so
	// its relative imports resolve the way they would if it were the root.
	processed := p.Process(content, filepath.Dir(resolved), true, st.child(resolved))

	return "<!-- Imported from: " + ref + " -->\n" +
		processed +
		"\n<!-- End of import from: " + ref + " -->"
}

// Resolve returns the cleaned absolute path for an import target: absolute
// targets are used as-is, relative ones are anchored at baseDir.
func Resolve(ref, baseDir string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(baseDir, ref)
}

// HasDirectives reports whether content contains at least one import
// directive. Cheaper than Process for callers that only need to know.
func HasDirectives(content string) bool {
	return directiveRe.MatchString(content)
}

// Directives returns the literal paths of all directives in content, in
// document order. Used by the check command and MCP tools to report
// dispositions without inlining anything.
func Directives(content string) []string {
	var refs []string
	for _, m := range directiveRe.FindAllStringSubmatch(content, -1) {
		refs = append(refs, m[1])
	}
	return refs
}

func displayFile(st *State) string {
	if st.CurrentFile == "" {
		return "inline content"
	}
	return st.CurrentFile
}
