package entitycollection

import (
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameTag(a, b *model.DiscussionTag) bool { return a == b }

// Tags is the DiscussionTag sub-collection, indexed by id, name (unique,
// collation-aware) and threadCount. No messageCount index is kept.
type Tags struct {
	collator *collation.Collator

	byID *store.HashIndex[ids.Id, *model.DiscussionTag]

	byName         *store.RankedIndex[*model.DiscussionTag, string]
	byThreadCount  *store.RankedIndex[*model.DiscussionTag, int]

	batch store.BatchMode
}

// NewTags builds an empty Tags collection.
func NewTags(collator *collation.Collator) *Tags {
	c := &Tags{
		collator: collator,
		byID:     store.NewHashIndex[ids.Id, *model.DiscussionTag](),
		byName: store.NewRankedIndex(
			func(t *model.DiscussionTag) string { return t.Name() },
			collator.Less,
		),
		byThreadCount: store.NewRankedIndex(
			func(t *model.DiscussionTag) int { return t.ThreadCount() },
			func(a, b int) bool { return a > b },
		),
	}
	c.batch.OnRebuild(func() { c.byName.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byThreadCount.Rebuild(c.byID.Values()) })
	return c
}

// NameExists reports whether name collides, under collation, with an
// existing tag's name.
func (c *Tags) NameExists(name string) bool {
	_, ok := c.byName.FindEqual(name)
	return ok
}

// Add inserts t.
func (c *Tags) Add(t *model.DiscussionTag) error {
	if c.byID.Contains(t.ID) {
		return ErrAlreadyExists
	}
	if c.NameExists(t.Name()) {
		return ErrAlreadyExists
	}
	t.InstallNotifications(&model.DiscussionTagNotifications{
		OnPrepareUpdateName: func(t *model.DiscussionTag) {
			if !c.batch.Suspended() {
				c.byName.Remove(t, sameTag)
			}
		},
		OnUpdateName: func(t *model.DiscussionTag) {
			if !c.batch.Suspended() {
				c.byName.Insert(t)
			}
		},
		OnPrepareUpdateThreadCount: func(t *model.DiscussionTag) {
			if !c.batch.Suspended() {
				c.byThreadCount.Remove(t, sameTag)
			}
		},
		OnUpdateThreadCount: func(t *model.DiscussionTag) {
			if !c.batch.Suspended() {
				c.byThreadCount.Insert(t)
			}
		},
	})
	c.byID.Put(t.ID, t)
	if c.batch.Suspended() {
		return nil
	}
	c.byName.Insert(t)
	c.byThreadCount.Insert(t)
	return nil
}

// Remove deletes the tag with id, if present.
func (c *Tags) Remove(id ids.Id) (*model.DiscussionTag, bool) {
	t, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byName.Remove(t, sameTag)
	c.byThreadCount.Remove(t, sameTag)
	return t, true
}

// Get looks up a tag by id.
func (c *Tags) Get(id ids.Id) (*model.DiscussionTag, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Tags) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of tags.
func (c *Tags) Count() int { return c.byID.Len() }

// ByName returns tags ordered by name ascending.
func (c *Tags) ByName() []*model.DiscussionTag { return c.byName.All() }

// ByThreadCount returns tags ordered by thread count descending.
func (c *Tags) ByThreadCount() []*model.DiscussionTag { return c.byThreadCount.All() }

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Tags) StartBatch() { c.batch.Start() }
func (c *Tags) StopBatch()  { c.batch.Stop() }
