package cookiejar

import "net/http"

// MemoryValueStore is the ValueStore counterpart to MemoryStore: a
// single-slot in-memory value, used by tests and by deployments that don't
// wire per-browser cookies. Since it has no per-request client identity to
// key on, it holds exactly one value shared process-wide; it exists for
// symmetry with MemoryStore and is not suitable for a multi-user deployment.
type MemoryValueStore struct {
	value   string
	present bool
}

// NewMemoryValueStore builds an empty MemoryValueStore.
func NewMemoryValueStore() *MemoryValueStore {
	return &MemoryValueStore{}
}

// Put stores value. persistent and w are unused: this backend has no
// cookie semantics to distinguish session-scoped from persistent storage.
func (s *MemoryValueStore) Put(_ http.ResponseWriter, value string, _ bool) error {
	s.value = value
	s.present = true
	return nil
}

// Read returns the stored value, if any. r is unused.
func (s *MemoryValueStore) Read(_ *http.Request) (string, bool) {
	return s.value, s.present
}

// Clear removes the stored value. w is unused.
func (s *MemoryValueStore) Clear(_ http.ResponseWriter) {
	s.value = ""
	s.present = false
}
