// fs.go defines the file-access capability consumed by the processor.
//
// Separated from imports.go to isolate the only effectful dependency of the
// package. The processor never touches the filesystem directly - it goes
// through this interface, so tests substitute an in-memory implementation
// and get fully deterministic expansion.

package imports

import "os"

// FileAccess is the file-system capability the processor depends on.
// Implementations must accept absolute paths.
type FileAccess interface {
	// Exists returns nil if path exists and is accessible, otherwise an
	// error describing why (not found, permission, ...).
	Exists(path string) error

	// Read returns the text content of the file at path.
	Read(path string) (string, error)
}

// OSFileAccess returns the FileAccess used when none is injected: the real
// filesystem via os.Stat and os.ReadFile.
func OSFileAccess() FileAccess {
	return osFileAccess{}
}

// osFileAccess reads from the real filesystem.
type osFileAccess struct{}

func (osFileAccess) Exists(path string) error {
	_, err := os.Stat(path)
	return err
}

func (osFileAccess) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
