// templates/views.go
package templates

import (
	"io/fs"
	"sync"
)

// Set is one package's embedded templates.
type Set struct {
	// Name is for logging only. The set named "shared" holds the layout and
	// is parsed into every page.
	Name string
	// FS is the embedded filesystem.
	FS fs.FS
	// Patterns are glob patterns within FS, e.g. "templates/*.gohtml".
	Patterns []string
}

var (
	registryMu sync.RWMutex
	registry   []Set
)

// Register records s for the next Boot. Usually called from init().
func Register(s Set) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, s)
}

// All returns the registered sets.
func All() []Set {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Set, len(registry))
	copy(out, registry)
	return out
}

// Reset clears the registry; for tests.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}
