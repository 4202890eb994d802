package entitycollection

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/store"
)

func samePrivateMessage(a, b *model.PrivateMessage) bool { return a == b }

// PrivateMessages holds all private messages plus per-user sent/received
// views ordered by creation time, ascending (spec.md §3.2).
type PrivateMessages struct {
	byID *store.HashIndex[ids.Id, *model.PrivateMessage]

	bySource      map[ids.Id]*store.RankedIndex[*model.PrivateMessage, ids.Timestamp]
	byDestination map[ids.Id]*store.RankedIndex[*model.PrivateMessage, ids.Timestamp]
}

// NewPrivateMessages builds an empty PrivateMessages collection.
func NewPrivateMessages() *PrivateMessages {
	return &PrivateMessages{
		byID:          store.NewHashIndex[ids.Id, *model.PrivateMessage](),
		bySource:      map[ids.Id]*store.RankedIndex[*model.PrivateMessage, ids.Timestamp]{},
		byDestination: map[ids.Id]*store.RankedIndex[*model.PrivateMessage, ids.Timestamp]{},
	}
}

func newPerUserIndex() *store.RankedIndex[*model.PrivateMessage, ids.Timestamp] {
	return store.NewRankedIndex(
		func(m *model.PrivateMessage) ids.Timestamp { return m.Created() },
		func(a, b ids.Timestamp) bool { return a < b },
	)
}

// Add inserts m into the global index and its sender/recipient views.
func (c *PrivateMessages) Add(m *model.PrivateMessage) error {
	if c.byID.Contains(m.ID) {
		return ErrAlreadyExists
	}
	c.byID.Put(m.ID, m)

	if _, ok := c.bySource[m.Source()]; !ok {
		c.bySource[m.Source()] = newPerUserIndex()
	}
	c.bySource[m.Source()].Insert(m)

	if _, ok := c.byDestination[m.Destination()]; !ok {
		c.byDestination[m.Destination()] = newPerUserIndex()
	}
	c.byDestination[m.Destination()].Insert(m)
	return nil
}

// Remove deletes the private message with id, if present.
func (c *PrivateMessages) Remove(id ids.Id) (*model.PrivateMessage, bool) {
	m, ok := c.byID.Get(id)
	if !ok {
		return nil, false
	}
	c.byID.Remove(id)
	if idx, ok := c.bySource[m.Source()]; ok {
		idx.Remove(m, samePrivateMessage)
	}
	if idx, ok := c.byDestination[m.Destination()]; ok {
		idx.Remove(m, samePrivateMessage)
	}
	return m, true
}

// Get looks up a private message by id.
func (c *PrivateMessages) Get(id ids.Id) (*model.PrivateMessage, bool) { return c.byID.Get(id) }

// Sent returns userID's sent messages ordered by creation time ascending.
func (c *PrivateMessages) Sent(userID ids.Id) []*model.PrivateMessage {
	if idx, ok := c.bySource[userID]; ok {
		return idx.All()
	}
	return nil
}

// Received returns userID's received messages ordered by creation time
// ascending.
func (c *PrivateMessages) Received(userID ids.Id) []*model.PrivateMessage {
	if idx, ok := c.byDestination[userID]; ok {
		return idx.All()
	}
	return nil
}

// Count returns the number of private messages.
func (c *PrivateMessages) Count() int { return c.byID.Len() }

// RemoveAllInvolving drops every private message sent or received by
// userID, used when a user account is deleted.
func (c *PrivateMessages) RemoveAllInvolving(userID ids.Id) {
	for _, m := range append(append([]*model.PrivateMessage{}, c.Sent(userID)...), c.Received(userID)...) {
		c.Remove(m.ID)
	}
	delete(c.bySource, userID)
	delete(c.byDestination, userID)
}
