package entitycollection

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameMessage(a, b *model.DiscussionThreadMessage) bool { return a == b }

// Messages is the DiscussionThreadMessage sub-collection: a global unique
// id index plus a global created-ascending ranked index (spec.md §4.1).
// Per-thread page position is computed via DiscussionThread.RankOf,
// which ranks only within the owning thread.
type Messages struct {
	byID      *store.HashIndex[ids.Id, *model.DiscussionThreadMessage]
	byCreated *store.RankedIndex[*model.DiscussionThreadMessage, ids.Timestamp]

	batch store.BatchMode
}

// NewMessages builds an empty Messages collection.
func NewMessages() *Messages {
	c := &Messages{
		byID: store.NewHashIndex[ids.Id, *model.DiscussionThreadMessage](),
		byCreated: store.NewRankedIndex(
			func(m *model.DiscussionThreadMessage) ids.Timestamp { return m.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
	}
	c.batch.OnRebuild(func() { c.byCreated.Rebuild(c.byID.Values()) })
	return c
}

// Add inserts m. Vote-score changes do not affect this collection's
// indices, so no notification hook is installed here; no vote-score
// ranking of messages is kept.
func (c *Messages) Add(m *model.DiscussionThreadMessage) error {
	if c.byID.Contains(m.ID) {
		return ErrAlreadyExists
	}
	c.byID.Put(m.ID, m)
	if !c.batch.Suspended() {
		c.byCreated.Insert(m)
	}
	return nil
}

// Remove deletes the message with id, if present.
func (c *Messages) Remove(id ids.Id) (*model.DiscussionThreadMessage, bool) {
	m, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byCreated.Remove(m, sameMessage)
	return m, true
}

// Get looks up a message by id, regardless of thread.
func (c *Messages) Get(id ids.Id) (*model.DiscussionThreadMessage, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Messages) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of messages across all threads.
func (c *Messages) Count() int { return c.byID.Len() }

// ByCreated returns all messages ordered by creation time ascending.
func (c *Messages) ByCreated() []*model.DiscussionThreadMessage { return c.byCreated.All() }

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Messages) StartBatch() { c.batch.Start() }
func (c *Messages) StopBatch()  { c.batch.Stop() }
