package store

// HashIndex is a unique index keyed by K (spec.md §4.1: "one unique hash
// index" per entity type, used for id lookups, auth-token lookups, and
// name uniqueness checks).
type HashIndex[K comparable, V any] struct {
	byKey map[K]V
}

// NewHashIndex builds an empty unique hash index.
func NewHashIndex[K comparable, V any]() *HashIndex[K, V] {
	return &HashIndex[K, V]{byKey: make(map[K]V)}
}

// Get looks up the value stored under k.
func (h *HashIndex[K, V]) Get(k K) (V, bool) {
	v, ok := h.byKey[k]
	return v, ok
}

// Contains reports whether k is present.
func (h *HashIndex[K, V]) Contains(k K) bool {
	_, ok := h.byKey[k]
	return ok
}

// Put inserts or overwrites the entry for k. Returns false if k was already
// present and the caller expected uniqueness to be enforced by the caller
// (HashIndex itself does not reject duplicates; ALREADY_EXISTS is a
// repository-level validation concern, spec.md §4.7).
func (h *HashIndex[K, V]) Put(k K, v V) {
	h.byKey[k] = v
}

// Remove deletes the entry for k.
func (h *HashIndex[K, V]) Remove(k K) {
	delete(h.byKey, k)
}

// Len returns the number of entries.
func (h *HashIndex[K, V]) Len() int { return len(h.byKey) }

// Values returns all stored values in unspecified order.
func (h *HashIndex[K, V]) Values() []V {
	out := make([]V, 0, len(h.byKey))
	for _, v := range h.byKey {
		out = append(out, v)
	}
	return out
}

// Clear empties the index.
func (h *HashIndex[K, V]) Clear() {
	h.byKey = make(map[K]V)
}
