package entitycollection

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameAttachment(a, b *model.Attachment) bool { return a == b }

// Attachments is the Attachment sub-collection: id, created, name, size,
// approvedAndCreated (spec.md §4.1), plus a total-size accumulator kept
// at the collection level.
type Attachments struct {
	byID *store.HashIndex[ids.Id, *model.Attachment]

	byCreated          *store.RankedIndex[*model.Attachment, ids.Timestamp]
	byName             *store.RankedIndex[*model.Attachment, string]
	bySize             *store.RankedIndex[*model.Attachment, int64]
	byApprovedAndCreated *store.RankedIndex[*model.Attachment, int64]

	totalSize int64

	batch store.BatchMode
}

// NewAttachments builds an empty Attachments collection.
func NewAttachments() *Attachments {
	c := &Attachments{
		byID: store.NewHashIndex[ids.Id, *model.Attachment](),
		byCreated: store.NewRankedIndex(
			func(a *model.Attachment) ids.Timestamp { return a.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byName: store.NewRankedIndex(
			func(a *model.Attachment) string { return a.Name() },
			func(a, b string) bool { return a < b },
		),
		bySize: store.NewRankedIndex(
			func(a *model.Attachment) int64 { return a.Size() },
			func(a, b int64) bool { return a < b },
		),
		byApprovedAndCreated: store.NewRankedIndex(
			func(a *model.Attachment) int64 { return a.ApprovedAndCreated() },
			func(a, b int64) bool { return a > b },
		),
	}
	c.batch.OnRebuild(func() { c.byCreated.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byName.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.bySize.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byApprovedAndCreated.Rebuild(c.byID.Values()) })
	return c
}

// Add inserts a, wiring its change-notification hooks and bumping the
// total-size accumulator.
func (c *Attachments) Add(a *model.Attachment) error {
	if c.byID.Contains(a.ID) {
		return ErrAlreadyExists
	}
	a.InstallNotifications(&model.AttachmentNotifications{
		OnPrepareUpdateName: func(a *model.Attachment) {
			if !c.batch.Suspended() {
				c.byName.Remove(a, sameAttachment)
			}
		},
		OnUpdateName: func(a *model.Attachment) {
			if !c.batch.Suspended() {
				c.byName.Insert(a)
			}
		},
		OnPrepareUpdateSize: func(a *model.Attachment) {
			c.totalSize -= a.Size()
			if !c.batch.Suspended() {
				c.bySize.Remove(a, sameAttachment)
			}
		},
		OnUpdateSize: func(a *model.Attachment) {
			c.totalSize += a.Size()
			if !c.batch.Suspended() {
				c.bySize.Insert(a)
			}
		},
		OnPrepareUpdateApprovedAndCreated: func(a *model.Attachment) {
			if !c.batch.Suspended() {
				c.byApprovedAndCreated.Remove(a, sameAttachment)
			}
		},
		OnUpdateApprovedAndCreated: func(a *model.Attachment) {
			if !c.batch.Suspended() {
				c.byApprovedAndCreated.Insert(a)
			}
		},
	})
	c.byID.Put(a.ID, a)
	c.totalSize += a.Size()
	if c.batch.Suspended() {
		return nil
	}
	c.byCreated.Insert(a)
	c.byName.Insert(a)
	c.bySize.Insert(a)
	c.byApprovedAndCreated.Insert(a)
	return nil
}

// Remove deletes the attachment with id, if present, and shrinks the
// total-size accumulator.
func (c *Attachments) Remove(id ids.Id) (*model.Attachment, bool) {
	a, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	c.byCreated.Remove(a, sameAttachment)
	c.byName.Remove(a, sameAttachment)
	c.bySize.Remove(a, sameAttachment)
	c.byApprovedAndCreated.Remove(a, sameAttachment)
	c.totalSize -= a.Size()
	return a, true
}

// Get looks up an attachment by id.
func (c *Attachments) Get(id ids.Id) (*model.Attachment, bool) { return c.byID.Get(id) }

// Contains reports whether id is present.
func (c *Attachments) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of attachments.
func (c *Attachments) Count() int { return c.byID.Len() }

// TotalSize returns the summed size of all attachments.
func (c *Attachments) TotalSize() int64 { return c.totalSize }

// ByCreated/ByName/BySize return attachments ordered ascending by the
// named key. ByApprovedAndCreated orders by that key descending, so the
// positive keys of unapproved items come first (spec.md §4.1).
func (c *Attachments) ByCreated() []*model.Attachment { return c.byCreated.All() }
func (c *Attachments) ByName() []*model.Attachment    { return c.byName.All() }
func (c *Attachments) BySize() []*model.Attachment    { return c.bySize.All() }
func (c *Attachments) ByApprovedAndCreated() []*model.Attachment {
	return c.byApprovedAndCreated.All()
}

// StartBatch/StopBatch delegate to the collection's batch-insert mode.
func (c *Attachments) StartBatch() { c.batch.Start() }
func (c *Attachments) StopBatch()  { c.batch.Stop() }
