package entitycollection

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameCategory(a, b *model.DiscussionCategory) bool { return a == b }

// Categories is the DiscussionCategory sub-collection, indexed by id, name
// and displayOrder. No messageCount index is kept, and displayOrder is
// ranked on its own, without a root-before-child priority. Category totals
// (totalThreads/totalMessages) live on each model.DiscussionCategory
// itself as a store.RefCountedThreads; neither this collection nor the
// helpers in collection.go add or remove references in it.
type Categories struct {
	byID *store.HashIndex[ids.Id, *model.DiscussionCategory]

	byName         *store.RankedIndex[*model.DiscussionCategory, string]
	byDisplayOrder *store.RankedIndex[*model.DiscussionCategory, int]

	batch store.BatchMode
}

// NewCategories builds an empty Categories collection.
func NewCategories() *Categories {
	c := &Categories{
		byID: store.NewHashIndex[ids.Id, *model.DiscussionCategory](),
		byName: store.NewRankedIndex(
			func(c *model.DiscussionCategory) string { return c.Name() },
			func(a, b string) bool { return a < b },
		),
		byDisplayOrder: store.NewRankedIndex(
			func(c *model.DiscussionCategory) int { return c.DisplayOrder() },
			func(a, b int) bool { return a < b },
		),
	}
	c.batch.OnRebuild(func() { c.byName.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byDisplayOrder.Rebuild(c.byID.Values()) })
	return c
}

// Add inserts cat.
func (c *Categories) Add(cat *model.DiscussionCategory) error {
	if c.byID.Contains(cat.ID) {
		return ErrAlreadyExists
	}
	cat.InstallNotifications(&model.DiscussionCategoryNotifications{
		OnPrepareUpdateName: func(cat *model.DiscussionCategory) {
			if !c.batch.Suspended() {
				c.byName.Remove(cat, sameCategory)
			}
		},
		OnUpdateName: func(cat *model.DiscussionCategory) {
			if !c.batch.Suspended() {
				c.byName.Insert(cat)
			}
		},
		OnPrepareUpdateDisplayOrder: func(cat *model.DiscussionCategory) {
			if !c.batch.Suspended() {
				c.byDisplayOrder.Remove(cat, sameCategory)
			}
		},
		OnUpdateDisplayOrder: func(cat *model.DiscussionCategory) {
			if !c.batch.Suspended() {
				c.byDisplayOrder.Insert(cat)
			}
		},
	})
	c.byID.Put(cat.ID, cat)
	if c.batch.Suspended() {
		return nil
	}
	c.byName.Insert(cat)
	c.byDisplayOrder.Insert(cat)
	return nil
}

// Remove deletes the category with id, if present. Caller is responsible
// for detaching it from its parent/children first (collection.go).
func (c *Categories) Remove(id ids.Id) (*model.DiscussionCategory, bool) {
	cat, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byName.Remove(cat, sameCategory)
	c.byDisplayOrder.Remove(cat, sameCategory)
	return cat, true
}

// Get looks up a category by id.
func (c *Categories) Get(id ids.Id) (*model.DiscussionCategory, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Categories) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of categories.
func (c *Categories) Count() int { return c.byID.Len() }

// ByName returns categories ordered by name ascending.
func (c *Categories) ByName() []*model.DiscussionCategory { return c.byName.All() }

// ByDisplayOrder returns categories ordered by display order ascending.
func (c *Categories) ByDisplayOrder() []*model.DiscussionCategory { return c.byDisplayOrder.All() }

// IsAncestor reports whether candidate is an ancestor of cat, walking the
// parent chain. Used to reject cyclic reparenting (spec.md invariant 6).
func IsAncestor(candidate, cat *model.DiscussionCategory) bool {
	for p := cat.Parent(); p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Categories) StartBatch() { c.batch.Start() }
func (c *Categories) StopBatch()  { c.batch.Stop() }
