// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> expansion -> filesystem. The binary is built
// once and run against real fixture trees, because the security boundary
// (allowed directories, relative resolution) only means anything against a
// real filesystem layout.
//
// HOME is pointed at each test's temp directory so global config and the
// audit log never touch the developer's real ~/.mdctx.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the mdctx binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "mdctx-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "mdctx"
		if os.PathSeparator == '\\' {
			binaryName = "mdctx.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary working directory for fixture files.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	return &testEnv{t: t, dir: dir, binary: binary}
}

// write creates a fixture file under the environment directory,
// creating parent directories as needed. Returns the absolute path.
func (e *testEnv) write(rel, content string) string {
	e.t.Helper()

	p := filepath.Join(e.dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		e.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// run executes mdctx with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("mdctx %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes mdctx and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.dir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes mdctx with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.dir)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("mdctx %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain the given string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
