package entitycollection

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameComment(a, b *model.MessageComment) bool { return a == b }

// Comments is the MessageComment sub-collection: id and created, per
// spec.md §4.1.
type Comments struct {
	byID      *store.HashIndex[ids.Id, *model.MessageComment]
	byCreated *store.RankedIndex[*model.MessageComment, ids.Timestamp]

	batch store.BatchMode
}

// NewComments builds an empty Comments collection.
func NewComments() *Comments {
	c := &Comments{
		byID: store.NewHashIndex[ids.Id, *model.MessageComment](),
		byCreated: store.NewRankedIndex(
			func(m *model.MessageComment) ids.Timestamp { return m.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
	}
	c.batch.OnRebuild(func() { c.byCreated.Rebuild(c.byID.Values()) })
	return c
}

// Add inserts a comment.
func (c *Comments) Add(m *model.MessageComment) error {
	if c.byID.Contains(m.ID) {
		return ErrAlreadyExists
	}
	c.byID.Put(m.ID, m)
	if !c.batch.Suspended() {
		c.byCreated.Insert(m)
	}
	return nil
}

// Remove deletes the comment with id, if present.
func (c *Comments) Remove(id ids.Id) (*model.MessageComment, bool) {
	m, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byCreated.Remove(m, sameComment)
	return m, true
}

// Get looks up a comment by id.
func (c *Comments) Get(id ids.Id) (*model.MessageComment, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Comments) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of comments.
func (c *Comments) Count() int { return c.byID.Len() }

// ByCreated returns comments ordered by creation time ascending.
func (c *Comments) ByCreated() []*model.MessageComment { return c.byCreated.All() }

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Comments) StartBatch() { c.batch.Start() }
func (c *Comments) StopBatch()  { c.batch.Stop() }
