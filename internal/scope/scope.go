// Package scope decides which directories an import directive may resolve into.
//
// Every import target passes through this package before any file access.
// The allowlist for a base directory is the directory itself plus each of its
// ancestors, stopping before the filesystem root. Allowing ancestors lets a
// context file reference siblings and shared files higher in the tree
// (e.g. @../shared/style.md) while still refusing anything outside it.
//
// Security: the filesystem root is never part of an allowlist - an entry of
// "/" would match every absolute path and make the check meaningless.
// Containment is segment-aware: "/allowed" does not contain "/allowed2/x".
//
// Both functions are pure path algebra. No I/O, no error returns.
package scope

import (
	"path/filepath"
	"regexp"
	"strings"
)

// schemeRe matches URL-style scheme prefixes (http://, https://, file://, ...).
// Imports must be local filesystem paths.
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// AllowedDirs returns the ordered allowlist for a base directory: the base
// itself first, then each successive parent up to (and excluding) the
// filesystem root.
//
// Examples:
//   - "/a/b/c/d" -> ["/a/b/c/d", "/a/b/c", "/a/b", "/a"]
//   - "/a" -> ["/a"]
//   - "/" -> nil
func AllowedDirs(base string) []string {
	base = filepath.Clean(base)

	var dirs []string
	for dir := base; ; {
		parent := filepath.Dir(dir)
		if parent == dir {
			// dir is the root; the root is never allowed
			break
		}
		dirs = append(dirs, dir)
		dir = parent
	}
	return dirs
}

// Allowed reports whether candidate may be imported given the allowlist.
//
// URL-scheme inputs are always refused. Relative candidates are resolved
// against base. The resolved path is permitted iff it equals, or is a
// segment-boundary descendant of, at least one allowed directory.
func Allowed(candidate, base string, dirs []string) bool {
	if schemeRe.MatchString(candidate) {
		return false
	}

	var resolved string
	if filepath.IsAbs(candidate) {
		resolved = filepath.Clean(candidate)
	} else {
		resolved = filepath.Join(base, candidate)
	}

	for _, dir := range dirs {
		if contains(dir, resolved) {
			return true
		}
	}
	return false
}

// contains reports whether path is dir or a descendant of dir.
// The prefix match requires the next character after dir to be a path
// separator, so "/allowed" never matches "/allowed2/x".
func contains(dir, path string) bool {
	dir = strings.TrimSuffix(filepath.Clean(dir), string(filepath.Separator))
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
