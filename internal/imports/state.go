// state.go defines the traversal state threaded through recursive expansion.
//
// Separated from imports.go to isolate the bookkeeping that guarantees
// termination (depth ceiling) and cycle detection (visited set).
//
// Design: State is never mutated in place across recursive calls. Each
// descent derives a fresh value with a copied visited set, so sibling
// directives in the same file cannot see each other's additions - only what
// their common ancestor already recorded. This keeps branches independent
// and makes the processor trivially testable.

package imports

// DefaultMaxDepth is the recursion ceiling used when a State is created
// without an explicit limit.
const DefaultMaxDepth = 10

// State carries recursion bookkeeping through nested import expansion.
type State struct {
	// Processed holds absolute paths already inlined in the current
	// ancestor chain. A path present here is never re-inlined.
	Processed map[string]struct{}

	// MaxDepth is the recursion ceiling, fixed for the whole traversal.
	MaxDepth int

	// Depth is 0 at the root call and increments by one per descent.
	Depth int

	// CurrentFile is the absolute path of the file whose content is being
	// expanded. Empty at the root when expanding caller-supplied content
	// that is not backed by a file.
	CurrentFile string
}

// NewState returns a root state with the default depth limit.
func NewState() *State {
	return &State{
		Processed: make(map[string]struct{}),
		MaxDepth:  DefaultMaxDepth,
	}
}

// child derives the state for expanding the file at path: depth incremented,
// current file updated, and the visited set extended with path. The parent's
// set is copied, not shared.
func (s *State) child(path string) *State {
	processed := make(map[string]struct{}, len(s.Processed)+1)
	for p := range s.Processed {
		processed[p] = struct{}{}
	}
	processed[path] = struct{}{}

	return &State{
		Processed:   processed,
		MaxDepth:    s.MaxDepth,
		Depth:       s.Depth + 1,
		CurrentFile: path,
	}
}

// visited reports whether path is the file currently being expanded or has
// already been inlined somewhere in the ancestor chain.
func (s *State) visited(path string) bool {
	if path == s.CurrentFile && path != "" {
		return true
	}
	_, ok := s.Processed[path]
	return ok
}
