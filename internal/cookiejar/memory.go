package cookiejar

import (
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore is a MessageStore[T] backend for tests and for deployments
// that don't wire per-browser cookies. It is bounded: a runaway number of
// abandoned flows cannot grow memory without bound. An evicted entry
// behaves exactly like an unknown id (spec.md section 7 "Unknown signInId
// cookie").
type MemoryStore[T any] struct {
	cache *lru.Cache[string, T]
}

// NewMemoryStore builds a MemoryStore bounded at size entries.
func NewMemoryStore[T any](size int) *MemoryStore[T] {
	cache, err := lru.New[string, T](size)
	if err != nil {
		// Only returned for size <= 0, which is a programmer error.
		panic(err)
	}
	return &MemoryStore[T]{cache: cache}
}

// Put stores value under id. w is unused: this backend has no cookie to
// write.
func (s *MemoryStore[T]) Put(_ http.ResponseWriter, id string, value T) error {
	s.cache.Add(id, value)
	return nil
}

// Read returns the value stored under id, if present.
func (s *MemoryStore[T]) Read(_ *http.Request, id string) (T, bool) {
	return s.cache.Get(id)
}

// Clear removes the value stored under id. w is unused.
func (s *MemoryStore[T]) Clear(_ http.ResponseWriter, id string) {
	s.cache.Remove(id)
}
