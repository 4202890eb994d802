package entitycollection

import (
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func sameUser(a, b *model.User) bool { return a == b }

// Users is the User sub-collection: one unique id index, one unique auth
// index, and five ranked indices (spec.md §4.1).
type Users struct {
	collator *collation.Collator

	byID   *store.HashIndex[ids.Id, *model.User]
	byAuth *store.HashIndex[string, *model.User]

	byName         *store.RankedIndex[*model.User, string]
	byCreated      *store.RankedIndex[*model.User, ids.Timestamp]
	byLastSeen     *store.RankedIndex[*model.User, ids.Timestamp]
	byThreadCount  *store.RankedIndex[*model.User, int]
	byMessageCount *store.RankedIndex[*model.User, int]

	batch store.BatchMode
}

// NewUsers builds an empty Users collection using collator for
// collation-aware name ordering and uniqueness.
func NewUsers(collator *collation.Collator) *Users {
	c := &Users{
		collator: collator,
		byID:     store.NewHashIndex[ids.Id, *model.User](),
		byAuth:   store.NewHashIndex[string, *model.User](),
		byName: store.NewRankedIndex(
			func(u *model.User) string { return u.Name() },
			collator.Less,
		),
		byCreated: store.NewRankedIndex(
			func(u *model.User) ids.Timestamp { return u.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byLastSeen: store.NewRankedIndex(
			func(u *model.User) ids.Timestamp { return u.LastSeen() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		byThreadCount: store.NewRankedIndex(
			func(u *model.User) int { return u.OwnThreadCount() },
			func(a, b int) bool { return a > b },
		),
		byMessageCount: store.NewRankedIndex(
			func(u *model.User) int { return u.OwnMessageCount() },
			func(a, b int) bool { return a > b },
		),
	}
	c.batch.OnRebuild(func() { c.byName.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byCreated.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byLastSeen.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byThreadCount.Rebuild(c.byID.Values()) })
	c.batch.OnRebuild(func() { c.byMessageCount.Rebuild(c.byID.Values()) })
	return c
}

// NameExists reports whether name collides, under collation, with an
// existing user's name.
func (c *Users) NameExists(name string) bool {
	_, ok := c.byName.FindEqual(name)
	return ok
}

// Add inserts u, wiring its change-notification hooks to this
// collection's indices. Fails if the id, auth token, or name already
// exists.
func (c *Users) Add(u *model.User) error {
	if c.byID.Contains(u.ID) {
		return ErrAlreadyExists
	}
	if u.Auth() != "" && c.byAuth.Contains(u.Auth()) {
		return ErrAlreadyExists
	}
	if c.NameExists(u.Name()) {
		return ErrAlreadyExists
	}

	c.installNotifications(u)

	c.byID.Put(u.ID, u)
	if u.Auth() != "" {
		c.byAuth.Put(u.Auth(), u)
	}
	if c.batch.Suspended() {
		return nil
	}
	c.byName.Insert(u)
	c.byCreated.Insert(u)
	c.byLastSeen.Insert(u)
	c.byThreadCount.Insert(u)
	c.byMessageCount.Insert(u)
	return nil
}

func (c *Users) installNotifications(u *model.User) {
	u.InstallNotifications(&model.UserNotifications{
		OnPrepareUpdateName: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byName.Remove(u, sameUser)
			}
		},
		OnUpdateName: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byName.Insert(u)
			}
		},
		OnPrepareUpdateAuth: func(u *model.User) {
			if u.Auth() != "" {
				c.byAuth.Remove(u.Auth())
			}
		},
		OnUpdateAuth: func(u *model.User) {
			if u.Auth() != "" {
				c.byAuth.Put(u.Auth(), u)
			}
		},
		OnPrepareUpdateLastSeen: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byLastSeen.Remove(u, sameUser)
			}
		},
		OnUpdateLastSeen: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byLastSeen.Insert(u)
			}
		},
		OnPrepareUpdateThreadCount: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byThreadCount.Remove(u, sameUser)
			}
		},
		OnUpdateThreadCount: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byThreadCount.Insert(u)
			}
		},
		OnPrepareUpdateMessageCount: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byMessageCount.Remove(u, sameUser)
			}
		},
		OnUpdateMessageCount: func(u *model.User) {
			if !c.batch.Suspended() {
				c.byMessageCount.Insert(u)
			}
		},
	})
}

// Remove deletes the user with id, if present.
func (c *Users) Remove(id ids.Id) (*model.User, bool) {
	u, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	if u.Auth() != "" {
		c.byAuth.Remove(u.Auth())
	}
	c.byName.Remove(u, sameUser)
	c.byCreated.Remove(u, sameUser)
	c.byLastSeen.Remove(u, sameUser)
	c.byThreadCount.Remove(u, sameUser)
	c.byMessageCount.Remove(u, sameUser)
	return u, true
}

// Get looks up a user by id.
func (c *Users) Get(id ids.Id) (*model.User, bool) { return c.byID.Get(id) }

// GetByAuth looks up a user by auth token.
func (c *Users) GetByAuth(auth string) (*model.User, bool) { return c.byAuth.Get(auth) }

// Contains reports whether id is present.
func (c *Users) Contains(id ids.Id) bool { return c.byID.Contains(id) }

// Count returns the number of users.
func (c *Users) Count() int { return c.byID.Len() }

// ByName returns users ordered by name ascending (collation-aware).
func (c *Users) ByName() []*model.User { return c.byName.All() }

// ByCreated returns users ordered by creation time ascending.
func (c *Users) ByCreated() []*model.User { return c.byCreated.All() }

// ByLastSeen returns users ordered by last-seen ascending.
func (c *Users) ByLastSeen() []*model.User { return c.byLastSeen.All() }

// ByThreadCount returns users ordered by own-thread count descending.
func (c *Users) ByThreadCount() []*model.User { return c.byThreadCount.All() }

// ByMessageCount returns users ordered by own-message count descending.
func (c *Users) ByMessageCount() []*model.User { return c.byMessageCount.All() }

// StartBatch/StopBatch delegate to the collection's batch-insert mode
// (spec.md §4.1).
func (c *Users) StartBatch() { c.batch.Start() }
func (c *Users) StopBatch()  { c.batch.Stop() }
