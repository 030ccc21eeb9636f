package imports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFS is an in-memory FileAccess keyed by absolute path.
// It records reads so tests can assert that rejected directives never
// touch the filesystem.
type fakeFS struct {
	files map[string]string
	reads []string
}

func (f *fakeFS) Exists(path string) error {
	if _, ok := f.files[path]; !ok {
		return fmt.Errorf("stat %s: no such file or directory", path)
	}
	return nil
}

func (f *fakeFS) Read(path string) (string, error) {
	f.reads = append(f.reads, path)
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: no such file or directory", path)
	}
	return content, nil
}

// recorder captures processor diagnostics.
type recorder struct {
	warns  []string
	errors []string
	debugs []string
}

func (r *recorder) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Debugf(format string, args ...any) {
	r.debugs = append(r.debugs, fmt.Sprintf(format, args...))
}

func newProcessor(files map[string]string) (*Processor, *fakeFS, *recorder) {
	fs := &fakeFS{files: files}
	rec := &recorder{}
	return &Processor{FS: fs, Log: rec}, fs, rec
}

func TestProcess_Disabled(t *testing.T) {
	p, fs, _ := newProcessor(map[string]string{"/base/a.md": "A"})

	content := "Content @a.md more"
	got := p.Process(content, "/base", false, nil)

	assert.Equal(t, content, got, "disabled processing must be a pure passthrough")
	assert.Empty(t, fs.reads, "disabled processing must not read files")
}

func TestProcess_NoDirectives(t *testing.T) {
	p, _, rec := newProcessor(nil)

	content := "# Heading\n\nPlain markdown without imports.\n"
	got := p.Process(content, "/base", true, nil)

	assert.Equal(t, content, got)
	assert.Empty(t, rec.warns)
	assert.Empty(t, rec.errors)
}

func TestProcess_BasicImport(t *testing.T) {
	p, _, _ := newProcessor(map[string]string{
		"/base/notes.md": "Imported notes",
	})

	got := p.Process("Before @notes.md after", "/base", true, nil)

	want := "Before <!-- Imported from: notes.md -->\n" +
		"Imported notes\n" +
		"<!-- End of import from: notes.md --> after"
	assert.Equal(t, want, got)
}

func TestProcess_UnsupportedExtension(t *testing.T) {
	p, fs, rec := newProcessor(map[string]string{
		"/base/script.txt": "should never be read",
	})

	got := p.Process("See @script.txt here", "/base", true, nil)

	assert.Equal(t, "See <!-- Import failed: script.txt - Only .md files are supported --> here", got)
	assert.Empty(t, fs.reads, "unsupported types must not trigger file access")
	require.Len(t, rec.warns, 1)
	assert.Contains(t, rec.warns[0], "only .md files are supported")
}

func TestProcess_AbsolutePathDenied(t *testing.T) {
	p, fs, rec := newProcessor(map[string]string{
		"/x/file.md": "outside",
	})

	got := p.Process("Content @/x/file.md more", "/base", true, nil)

	assert.Equal(t, "Content <!-- Import failed: /x/file.md - Absolute paths not allowed --> more", got)
	assert.Empty(t, fs.reads)
	require.Len(t, rec.warns, 1)
}

func TestProcess_AbsolutePathInsideAllowlist(t *testing.T) {
	p, _, _ := newProcessor(map[string]string{
		"/base/docs/file.md": "inside",
	})

	got := p.Process("@/base/docs/file.md", "/base/docs", true, nil)

	want := "<!-- Imported from: /base/docs/file.md -->\n" +
		"inside\n" +
		"<!-- End of import from: /base/docs/file.md -->"
	assert.Equal(t, want, got)
}

func TestProcess_RelativeOutsideAllowlist(t *testing.T) {
	p := &Processor{
		FS:          &fakeFS{files: map[string]string{"/etc/passwd.md": "nope"}},
		Log:         &recorder{},
		AllowedDirs: []string{"/base"},
	}

	got := p.Process("@../../etc/passwd.md", "/base", true, nil)

	assert.Equal(t, "<!-- Import failed: ../../etc/passwd.md - Path not allowed -->", got)
}

func TestProcess_ExtraDirs(t *testing.T) {
	p := &Processor{
		FS:        &fakeFS{files: map[string]string{"/shared/common.md": "shared"}},
		Log:       &recorder{},
		ExtraDirs: []string{"/shared"},
	}

	got := p.Process("@../shared/common.md", "/base", true, nil)

	want := "<!-- Imported from: ../shared/common.md -->\nshared\n<!-- End of import from: ../shared/common.md -->"
	assert.Equal(t, want, got)
}

func TestProcess_URLScheme(t *testing.T) {
	p, fs, _ := newProcessor(nil)

	got := p.Process("@https://example.com/notes.md", "/base", true, nil)

	assert.Equal(t, "<!-- Import failed: https://example.com/notes.md - Path not allowed -->", got)
	assert.Empty(t, fs.reads)
}

func TestProcess_MissingFile(t *testing.T) {
	p, _, rec := newProcessor(nil)

	got := p.Process("@./missing.md", "/base", true, nil)

	assert.Equal(t, "<!-- Import failed: ./missing.md - stat /base/missing.md: no such file or directory -->", got)
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "no such file or directory")
}

func TestProcess_DepthLimit(t *testing.T) {
	p, fs, rec := newProcessor(map[string]string{
		"/base/deep.md": "deep content",
	})

	st := NewState()
	st.MaxDepth = 1
	st.Depth = 1

	content := "Content @./deep.md more"
	got := p.Process(content, "/base", true, st)

	assert.Equal(t, content, got, "content at the depth limit is returned verbatim")
	assert.Empty(t, fs.reads)
	require.Len(t, rec.warns, 1)
	assert.Contains(t, rec.warns[0], "maximum import depth reached")
}

func TestProcess_DepthLimitCutsChain(t *testing.T) {
	// a -> b -> c with MaxDepth 2: b is read and inlined, but b's content
	// sits at the limit, so its own directive survives untouched and c is
	// never read.
	p, fs, rec := newProcessor(map[string]string{
		"/base/a.md": "A @b.md",
		"/base/b.md": "B @c.md",
		"/base/c.md": "C",
	})

	st := NewState()
	st.MaxDepth = 2

	got := p.Process("@a.md", "/base", true, st)

	assert.Contains(t, got, "<!-- Imported from: a.md -->")
	assert.Contains(t, got, "<!-- Imported from: b.md -->")
	assert.Contains(t, got, "B @c.md")
	assert.NotContains(t, got, "Imported from: c.md")
	assert.NotContains(t, fs.reads, "/base/c.md")
	require.NotEmpty(t, rec.warns)
	assert.Contains(t, rec.warns[len(rec.warns)-1], "maximum import depth reached")
}

func TestProcess_CircularSelfImport(t *testing.T) {
	p, _, rec := newProcessor(map[string]string{
		"/base/self.md": "self",
	})

	st := NewState()
	st.CurrentFile = "/base/self.md"

	got := p.Process("loop @./self.md end", "/base", true, st)

	assert.Equal(t, "loop <!-- Circular import detected: ./self.md --> end", got)
	require.Len(t, rec.warns, 1)
	assert.Contains(t, rec.warns[0], "circular import")
}

func TestProcess_CircularChain(t *testing.T) {
	// a imports b, b imports a again
	p, _, _ := newProcessor(map[string]string{
		"/base/a.md": "A @b.md",
		"/base/b.md": "B @a.md",
	})

	got := p.Process("@a.md", "/base", true, nil)

	assert.Contains(t, got, "<!-- Imported from: a.md -->")
	assert.Contains(t, got, "<!-- Imported from: b.md -->")
	assert.Contains(t, got, "<!-- Circular import detected: a.md -->")
}

func TestProcess_Nested(t *testing.T) {
	p, _, _ := newProcessor(map[string]string{
		"/base/a.md": "A-top @b.md A-bottom",
		"/base/b.md": "B-content",
	})

	got := p.Process("Root @a.md end", "/base", true, nil)

	want := "Root <!-- Imported from: a.md -->\n" +
		"A-top <!-- Imported from: b.md -->\n" +
		"B-content\n" +
		"<!-- End of import from: b.md --> A-bottom\n" +
		"<!-- End of import from: a.md --> end"
	assert.Equal(t, want, got)
}

func TestProcess_NestedBaseDirFollowsFile(t *testing.T) {
	// Imports inside a nested file resolve relative to that file's own
	// directory, not the root base directory.
	p, _, _ := newProcessor(map[string]string{
		"/base/sub/inner.md": "inner @leaf.md",
		"/base/sub/leaf.md":  "leaf",
	})

	got := p.Process("@sub/inner.md", "/base", true, nil)

	assert.Contains(t, got, "leaf")
	assert.NotContains(t, got, "Import failed")
}

func TestProcess_SiblingsAreIndependent(t *testing.T) {
	// The same file imported twice by sibling directives is inlined twice:
	// one branch's visited set must not leak into the other.
	p, fs, _ := newProcessor(map[string]string{
		"/base/shared.md": "shared",
	})

	got := p.Process("@shared.md and @shared.md", "/base", true, nil)

	assert.NotContains(t, got, "Circular import")
	assert.Len(t, fs.reads, 2)
}

func TestProcess_AncestorImport(t *testing.T) {
	// Parent-directory imports are inside the allowlist by construction.
	p, _, _ := newProcessor(map[string]string{
		"/a/shared.md": "shared from parent",
	})

	got := p.Process("@../shared.md", "/a/b", true, nil)

	assert.Contains(t, got, "shared from parent")
	assert.NotContains(t, got, "Import failed")
}

func TestDirectives(t *testing.T) {
	refs := Directives("start @one.md middle @two.txt @/abs/three.md end")
	assert.Equal(t, []string{"one.md", "two.txt", "/abs/three.md"}, refs)

	assert.Nil(t, Directives("no imports here"))
	assert.True(t, HasDirectives("see @x.md"))
	assert.False(t, HasDirectives("plain"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/base/a.md", Resolve("a.md", "/base"))
	assert.Equal(t, "/base/a.md", Resolve("./a.md", "/base"))
	assert.Equal(t, "/a/shared.md", Resolve("../shared.md", "/a/b"))
	assert.Equal(t, "/x/y.md", Resolve("/x/y.md", "/base"))
}
