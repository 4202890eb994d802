package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id  int
	key int
}

func sameItem(a, b *item) bool { return a == b }

func newTestIndex() *RankedIndex[*item, int] {
	return NewRankedIndex(func(v *item) int { return v.key }, func(a, b int) bool { return a < b })
}

func TestRankedIndexOrdersByKey(t *testing.T) {
	idx := newTestIndex()
	a := &item{id: 1, key: 30}
	b := &item{id: 2, key: 10}
	c := &item{id: 3, key: 20}
	idx.Insert(a)
	idx.Insert(b)
	idx.Insert(c)

	require.Equal(t, 3, idx.Len())
	nth0, _ := idx.Nth(0)
	nth1, _ := idx.Nth(1)
	nth2, _ := idx.Nth(2)
	assert.Equal(t, b, nth0)
	assert.Equal(t, c, nth1)
	assert.Equal(t, a, nth2)
}

func TestRankedIndexIndexOf(t *testing.T) {
	idx := newTestIndex()
	a := &item{id: 1, key: 5}
	b := &item{id: 2, key: 15}
	idx.Insert(a)
	idx.Insert(b)

	assert.Equal(t, 0, idx.IndexOf(a, sameItem))
	assert.Equal(t, 1, idx.IndexOf(b, sameItem))
}

func TestRankedIndexPrepareCommitUpdate(t *testing.T) {
	idx := newTestIndex()
	a := &item{id: 1, key: 5}
	b := &item{id: 2, key: 15}
	idx.Insert(a)
	idx.Insert(b)

	// prepare: remove using OLD key
	require.True(t, idx.Remove(a, sameItem))
	// mutate field
	a.key = 100
	// commit: reinsert using NEW key
	idx.Insert(a)

	nth0, _ := idx.Nth(0)
	nth1, _ := idx.Nth(1)
	assert.Equal(t, b, nth0)
	assert.Equal(t, a, nth1)
}

func TestRankedIndexRebuildMatchesFromScratch(t *testing.T) {
	values := []*item{{id: 1, key: 9}, {id: 2, key: 1}, {id: 3, key: 5}}

	fresh := newTestIndex()
	for _, v := range values {
		fresh.Insert(v)
	}

	rebuilt := newTestIndex()
	rebuilt.Rebuild(values)

	assert.Equal(t, fresh.All(), rebuilt.All())
}

func TestHashIndexUniqueness(t *testing.T) {
	h := NewHashIndex[string, int]()
	h.Put("alice", 1)
	assert.True(t, h.Contains("alice"))
	v, ok := h.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	h.Remove("alice")
	assert.False(t, h.Contains("alice"))
}

func TestBatchModeRebuildsOnStop(t *testing.T) {
	idx := newTestIndex()
	var bm BatchMode
	values := []*item{{id: 1, key: 3}, {id: 2, key: 1}}
	bm.OnRebuild(func() { idx.Rebuild(values) })

	bm.Start()
	assert.True(t, bm.Suspended())
	bm.Stop()
	assert.False(t, bm.Suspended())

	nth0, _ := idx.Nth(0)
	assert.Equal(t, values[1], nth0)
}

func TestRefCountedThreadsUnion(t *testing.T) {
	r := NewRefCountedThreads[int]()
	assert.True(t, r.AddRef(1, 3))
	assert.False(t, r.AddRef(1, 4)) // second category referencing the same thread
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, 4, r.TotalMessages())

	assert.False(t, r.RemoveRef(1)) // still one ref left
	assert.True(t, r.RemoveRef(1))  // last ref removed
	assert.Equal(t, 0, r.Count())
}
