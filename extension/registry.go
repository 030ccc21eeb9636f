// registry.go holds the global extension registry.
//
// Extensions self-register from init(), before main() runs. The registry
// lives apart from extension.go so this file owns the shared state and its
// locking, nothing else. Registration order is preserved: command ordering
// in the CLI follows it and must be deterministic across runs.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // registration order
)

// Register adds an extension to the registry. Called from init() in each
// extension package, normally reached through the blank imports in
// extension/all.
//
// A duplicate name panics rather than returning an error. Registration
// runs at init time, so a clash is a programmer mistake and should stop
// the binary immediately, the same convention database/sql.Register uses.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns the extension registered under name, or nil.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the registered extension names, in order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}
