package entitycollection

import (
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameThread(a, b *model.DiscussionThread) bool { return a == b }

// Threads is the DiscussionThread (main) sub-collection (spec.md §4.1).
type Threads struct {
	collator *collation.Collator

	byID *store.HashIndex[ids.Id, *model.DiscussionThread]

	byName                *store.RankedIndex[*model.DiscussionThread, string]
	byCreated             *store.RankedIndex[*model.DiscussionThread, ids.Timestamp]
	byLastUpdated         *store.RankedIndex[*model.DiscussionThread, ids.Timestamp]
	byLatestMessageCreated *store.RankedIndex[*model.DiscussionThread, ids.Timestamp]
	byMessageCount        *store.RankedIndex[*model.DiscussionThread, int]
	byPinDisplayOrder     *store.RankedIndex[*model.DiscussionThread, int]

	batch store.BatchMode
}

// NewThreads builds an empty Threads collection.
func NewThreads(collator *collation.Collator) *Threads {
	c := &Threads{
		collator: collator,
		byID:     store.NewHashIndex[ids.Id, *model.DiscussionThread](),
		byName: store.NewRankedIndex(
			func(t *model.DiscussionThread) string { return t.Name() },
			collator.Less,
		),
		byCreated: store.NewRankedIndex(
			func(t *model.DiscussionThread) ids.Timestamp { return t.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byLastUpdated: store.NewRankedIndex(
			func(t *model.DiscussionThread) ids.Timestamp { return t.LastUpdated() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byLatestMessageCreated: store.NewRankedIndex(
			func(t *model.DiscussionThread) ids.Timestamp { return t.LatestMessageCreated() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byMessageCount: store.NewRankedIndex(
			func(t *model.DiscussionThread) int { return t.MessageCount() },
			func(a, b int) bool { return a < b },
		),
		byPinDisplayOrder: store.NewRankedIndex(
			func(t *model.DiscussionThread) int { return t.PinDisplayOrder() },
			func(a, b int) bool { return a < b },
		),
	}
	c.batch.OnRebuild(func() { c.byName.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byCreated.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byLastUpdated.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byLatestMessageCreated.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byMessageCount.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byPinDisplayOrder.Rebuild(c.byID.Values()) })
	return c
}

// Add inserts t, wiring change-notification hooks to this collection's
// indices.
func (c *Threads) Add(t *model.DiscussionThread) error {
	if c.byID.Contains(t.ID) {
		return ErrAlreadyExists
	}
	c.installNotifications(t)
	c.byID.Put(t.ID, t)
	if c.batch.Suspended() {
		return nil
	}
	c.byName.Insert(t)
	c.byCreated.Insert(t)
	c.byLastUpdated.Insert(t)
	c.byLatestMessageCreated.Insert(t)
	c.byMessageCount.Insert(t)
	c.byPinDisplayOrder.Insert(t)
	return nil
}

func (c *Threads) installNotifications(t *model.DiscussionThread) {
	t.InstallNotifications(&model.DiscussionThreadNotifications{
		OnPrepareUpdateName: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byName.Remove(t, sameThread)
			}
		},
		OnUpdateName: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byName.Insert(t)
			}
		},
		OnPrepareUpdateLastUpdated: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byLastUpdated.Remove(t, sameThread)
			}
		},
		OnUpdateLastUpdated: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byLastUpdated.Insert(t)
			}
		},
		OnPrepareUpdateMessageCount: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byMessageCount.Remove(t, sameThread)
			}
		},
		OnUpdateMessageCount: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byMessageCount.Insert(t)
			}
		},
		OnPrepareUpdatePinDisplayOrder: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byPinDisplayOrder.Remove(t, sameThread)
			}
		},
		OnUpdatePinDisplayOrder: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byPinDisplayOrder.Insert(t)
			}
		},
		OnPrepareUpdateLatestMessage: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byLatestMessageCreated.Remove(t, sameThread)
			}
		},
		OnUpdateLatestMessage: func(t *model.DiscussionThread) {
			if !c.batch.Suspended() {
				c.byLatestMessageCreated.Insert(t)
			}
		},
	})
}

// Remove deletes the thread with id, if present.
func (c *Threads) Remove(id ids.Id) (*model.DiscussionThread, bool) {
	t, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byName.Remove(t, sameThread)
	c.byCreated.Remove(t, sameThread)
	c.byLastUpdated.Remove(t, sameThread)
	c.byLatestMessageCreated.Remove(t, sameThread)
	c.byMessageCount.Remove(t, sameThread)
	c.byPinDisplayOrder.Remove(t, sameThread)
	return t, true
}

// Get looks up a thread by id.
func (c *Threads) Get(id ids.Id) (*model.DiscussionThread, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Threads) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of threads.
func (c *Threads) Count() int { return c.byID.Len() }

// ByName/ByCreated/ByLastUpdated/ByLatestMessageCreated/ByMessageCount
// return threads in ascending order of the named key.
func (c *Threads) ByName() []*model.DiscussionThread { return c.byName.All() }
func (c *Threads) ByCreated() []*model.DiscussionThread { return c.byCreated.All() }
func (c *Threads) ByLastUpdated() []*model.DiscussionThread { return c.byLastUpdated.All() }
func (c *Threads) ByLatestMessageCreated() []*model.DiscussionThread {
	return c.byLatestMessageCreated.All()
}
func (c *Threads) ByMessageCount() []*model.DiscussionThread { return c.byMessageCount.All() }

// Pinned returns threads with a nonzero pinDisplayOrder, ascending.
func (c *Threads) Pinned() []*model.DiscussionThread {
	all := c.byPinDisplayOrder.All()
	out := make([]*model.DiscussionThread, 0, len(all))
	for _, t := range all {
		if t.IsPinned() {
			out = append(out, t)
		}
	}
	return out
}

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Threads) StartBatch() { c.batch.Start() }
func (c *Threads) StopBatch()  { c.batch.Stop() }
