// Package store implements the generic multi-index container described in
// spec.md §4.1: one unique hash index plus a small fixed set of
// ranked/ordered secondary indices per entity type, with the
// prepare/commit protocol for keeping them consistent as fields mutate,
// and a process-wide batch-insert mode that suspends secondary index
// maintenance for bulk loads.
//
// No pack repository ships a B-tree / ordered multi-index container for
// Go, so RankedIndex is backed by a key-sorted slice (binary search for
// lookup, linear shift for insert/remove) — the simplest idiomatic choice
// for the bounded-size, not-insert-heavy-at-steady-state collections this
// core manages (DESIGN.md records this as the justified stdlib-only part).
package store

import "sort"

// RankedIndex is a secondary index ordered by a key derived from each
// entry's value. It supports the operations spec.md §4.1 requires: nth(k),
// index_of, and the prepare/commit update pair.
type RankedIndex[V any, K any] struct {
	keyOf func(V) K
	less  func(a, b K) bool
	items []V
}

// NewRankedIndex builds an empty ranked index. keyOf reads the current sort
// key from a value; less defines the index's ascending order.
func NewRankedIndex[V any, K any](keyOf func(V) K, less func(a, b K) bool) *RankedIndex[V, K] {
	return &RankedIndex[V, K]{keyOf: keyOf, less: less}
}

func (r *RankedIndex[V, K]) searchPos(k K) int {
	return sort.Search(len(r.items), func(i int) bool {
		return !r.less(r.keyOf(r.items[i]), k)
	})
}

// Insert adds v, keyed by keyOf(v), at its sorted position.
func (r *RankedIndex[V, K]) Insert(v V) {
	k := r.keyOf(v)
	pos := r.searchPos(k)
	r.items = append(r.items, v)
	copy(r.items[pos+1:], r.items[pos:])
	r.items[pos] = v
}

// Remove deletes the entry identified by identical(v, item), locating it by
// v's CURRENT key. Call this only before mutating the field the index is
// keyed on (i.e. as the "prepare" half of prepare/commit); see PrepareUpdate.
func (r *RankedIndex[V, K]) Remove(v V, identical func(a, b V) bool) bool {
	k := r.keyOf(v)
	pos := r.searchPos(k)
	for i := pos; i < len(r.items) && !r.less(k, r.keyOf(r.items[i])); i++ {
		if identical(r.items[i], v) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	// Key ties can in principle sort either side of an exact binary-search
	// hit for a float/NaN-like key; fall back to a full scan so Remove
	// never silently diverges from Insert.
	for i, item := range r.items {
		if identical(item, v) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Nth returns the 0-based k-th entry in ascending order.
func (r *RankedIndex[V, K]) Nth(k int) (V, bool) {
	var zero V
	if k < 0 || k >= len(r.items) {
		return zero, false
	}
	return r.items[k], true
}

// IndexOf returns the 0-based rank of the entry identified by identical(v,
// item), or -1 if absent. Used by DiscussionThread.RankOf to compute a
// message's page position.
func (r *RankedIndex[V, K]) IndexOf(v V, identical func(a, b V) bool) int {
	k := r.keyOf(v)
	pos := r.searchPos(k)
	for i := pos; i < len(r.items) && !r.less(k, r.keyOf(r.items[i])); i++ {
		if identical(r.items[i], v) {
			return i
		}
	}
	for i, item := range r.items {
		if identical(item, v) {
			return i
		}
	}
	return -1
}

// FindEqual reports whether any entry's key is neither less than nor
// greater than k (i.e. equal under less), returning the first such entry.
// Used by ranked indices that also serve as a uniqueness check (spec.md
// §4.1: User/DiscussionTag names are "unique, ranked").
func (r *RankedIndex[V, K]) FindEqual(k K) (V, bool) {
	var zero V
	pos := r.searchPos(k)
	if pos < len(r.items) && !r.less(k, r.keyOf(r.items[pos])) {
		return r.items[pos], true
	}
	return zero, false
}

// Len returns the number of entries.
func (r *RankedIndex[V, K]) Len() int { return len(r.items) }

// All returns the entries in ascending order. Callers must not mutate the
// returned slice; it aliases the index's backing array.
func (r *RankedIndex[V, K]) All() []V { return r.items }

// Descending returns a new slice with entries in descending order.
func (r *RankedIndex[V, K]) Descending() []V {
	out := make([]V, len(r.items))
	for i, v := range r.items {
		out[len(r.items)-1-i] = v
	}
	return out
}

// Rebuild replaces the index contents from scratch, re-sorting by the
// current keyOf of every item. Used to exit batch-insert mode (spec.md
// §4.1: "on batch end, each collection rebuilds its secondary indices from
// the primary in one pass").
func (r *RankedIndex[V, K]) Rebuild(values []V) {
	r.items = append(r.items[:0], values...)
	sort.SliceStable(r.items, func(i, j int) bool {
		return r.less(r.keyOf(r.items[i]), r.keyOf(r.items[j]))
	})
}

// Clear empties the index.
func (r *RankedIndex[V, K]) Clear() { r.items = r.items[:0] }
