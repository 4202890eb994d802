package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/privilege"
	"github.com/chirino/forumcore/internal/store"
)

// DiscussionThreadNotifications hooks the thread's indexed fields: name,
// created, lastUpdated, messageCount, latestMessageCreated, pinDisplayOrder
// (spec.md §4.1).
type DiscussionThreadNotifications struct {
	OnPrepareUpdateName             func(*DiscussionThread)
	OnUpdateName                    func(*DiscussionThread)
	OnPrepareUpdateLastUpdated      func(*DiscussionThread)
	OnUpdateLastUpdated             func(*DiscussionThread)
	OnPrepareUpdateMessageCount     func(*DiscussionThread)
	OnUpdateMessageCount            func(*DiscussionThread)
	OnPrepareUpdatePinDisplayOrder  func(*DiscussionThread)
	OnUpdatePinDisplayOrder         func(*DiscussionThread)
	OnPrepareUpdateLatestMessage    func(*DiscussionThread)
	OnUpdateLatestMessage           func(*DiscussionThread)
}

// DiscussionThread is a titled, ordered sequence of messages (spec.md §3.2).
type DiscussionThread struct {
	ID ids.Id

	notify *DiscussionThreadNotifications

	name string

	createdBy       ids.Id
	created         ids.Timestamp
	creationDetails ids.VisitDetails

	lastUpdated           ids.Timestamp
	latestMessageCreated  ids.Timestamp
	latestVisibleChange   ids.Timestamp

	approved bool

	pinDisplayOrder int // 0 = not pinned

	visitorCount     int64 // atomic, not index-participating
	messages         *store.RankedIndex[entity.Pointer[DiscussionThreadMessage], ids.Timestamp]
	messagesByID     map[ids.Id]entity.Pointer[DiscussionThreadMessage]

	tags map[ids.Id]entity.Pointer[DiscussionTag]

	subscribedUsers map[ids.Id]entity.Pointer[User]

	content string // full concatenated content, built lazily for full-text matching

	// Required holds this thread's own required-privilege thresholds for
	// thread- and message-scoped privileges (spec.md §4.4: "a thread has
	// thread + message stores").
	Required privilege.ThreadScoped
}

// NewDiscussionThread constructs an empty thread created by createdBy.
func NewDiscussionThread(id ids.Id, name string, createdBy ids.Id, created ids.Timestamp, details ids.VisitDetails) *DiscussionThread {
	return &DiscussionThread{
		ID:              id,
		name:            name,
		createdBy:       createdBy,
		created:         created,
		creationDetails: details,
		approved:        true, // spec.md §3.2: approved by default unless the forum requires moderation
		lastUpdated:     created,
		messages: store.NewRankedIndex(
			func(m entity.Pointer[DiscussionThreadMessage]) ids.Timestamp { return m.Created() },
			func(a, b ids.Timestamp) bool { return a < b },
		),
		messagesByID:    map[ids.Id]entity.Pointer[DiscussionThreadMessage]{},
		tags:            map[ids.Id]entity.Pointer[DiscussionTag]{},
		subscribedUsers: map[ids.Id]entity.Pointer[User]{},
	}
}

// InstallNotifications wires the owning collection's callbacks.
func (t *DiscussionThread) InstallNotifications(n *DiscussionThreadNotifications) { t.notify = n }

// Name returns the thread's title.
func (t *DiscussionThread) Name() string { return t.name }

// SetName updates the title, bracketed by the name index's prepare/commit.
func (t *DiscussionThread) SetName(name string) {
	if t.notify != nil && t.notify.OnPrepareUpdateName != nil {
		t.notify.OnPrepareUpdateName(t)
	}
	t.name = name
	if t.notify != nil && t.notify.OnUpdateName != nil {
		t.notify.OnUpdateName(t)
	}
}

// CreatedBy returns the id of the thread's creator.
func (t *DiscussionThread) CreatedBy() ids.Id { return t.createdBy }

// Created / CreationDetails report creation provenance.
func (t *DiscussionThread) Created() ids.Timestamp            { return t.created }
func (t *DiscussionThread) CreationDetails() ids.VisitDetails { return t.creationDetails }

// Approved reports whether the thread has cleared moderation. Unapproved
// threads are hidden from serialization/listing unless the viewer holds
// ThreadViewUnapproved or created the thread.
func (t *DiscussionThread) Approved() bool     { return t.approved }
func (t *DiscussionThread) SetApproved(v bool) { t.approved = v }

// LastUpdated returns the most recent content-affecting change timestamp.
func (t *DiscussionThread) LastUpdated() ids.Timestamp { return t.lastUpdated }

// SetLastUpdated bumps lastUpdated, bracketed by its ranked index's
// prepare/commit.
func (t *DiscussionThread) SetLastUpdated(ts ids.Timestamp) {
	if t.notify != nil && t.notify.OnPrepareUpdateLastUpdated != nil {
		t.notify.OnPrepareUpdateLastUpdated(t)
	}
	t.lastUpdated = ts
	if t.notify != nil && t.notify.OnUpdateLastUpdated != nil {
		t.notify.OnUpdateLastUpdated(t)
	}
}

// LatestMessageCreated returns the creation timestamp of the thread's most
// recent message, or zero if the thread has none.
func (t *DiscussionThread) LatestMessageCreated() ids.Timestamp { return t.latestMessageCreated }

// LatestVisibleChange returns the timestamp of the latest change visible
// to ordinary readers (edits, new messages; excludes moderation-only
// changes).
func (t *DiscussionThread) LatestVisibleChange() ids.Timestamp { return t.latestVisibleChange }
func (t *DiscussionThread) SetLatestVisibleChange(ts ids.Timestamp) { t.latestVisibleChange = ts }

// PinDisplayOrder returns the thread's pin ordering key; 0 means unpinned.
func (t *DiscussionThread) PinDisplayOrder() int { return t.pinDisplayOrder }

// SetPinDisplayOrder updates the pin key, bracketed by its ranked index's
// prepare/commit.
func (t *DiscussionThread) SetPinDisplayOrder(order int) {
	if t.notify != nil && t.notify.OnPrepareUpdatePinDisplayOrder != nil {
		t.notify.OnPrepareUpdatePinDisplayOrder(t)
	}
	t.pinDisplayOrder = order
	if t.notify != nil && t.notify.OnUpdatePinDisplayOrder != nil {
		t.notify.OnUpdatePinDisplayOrder(t)
	}
}

// IsPinned reports whether the thread carries a nonzero pin order.
func (t *DiscussionThread) IsPinned() bool { return t.pinDisplayOrder != 0 }

// MessageCount is the ranked-index key for message count.
func (t *DiscussionThread) MessageCount() int { return t.messages.Len() }

// AddVisitor increments the non-indexed visitor counter.
func (t *DiscussionThread) AddVisitor() { t.visitorCount++ }

// VisitorCount returns the running visitor counter.
func (t *DiscussionThread) VisitorCount() int64 { return t.visitorCount }

// AddMessage inserts a message into the thread's time-ordered index and
// id map, bracketed by the messageCount ranked index's prepare/commit.
// Also bumps latestMessageCreated if the new message is the most recent,
// and sets lastUpdated to the new message's creation time.
func (t *DiscussionThread) AddMessage(ptr entity.Pointer[DiscussionThreadMessage]) {
	if t.notify != nil && t.notify.OnPrepareUpdateMessageCount != nil {
		t.notify.OnPrepareUpdateMessageCount(t)
	}
	t.messages.Insert(ptr)
	t.messagesByID[ptr.ID] = ptr
	if t.notify != nil && t.notify.OnUpdateMessageCount != nil {
		t.notify.OnUpdateMessageCount(t)
	}
	if ptr.Created() >= t.latestMessageCreated {
		if t.notify != nil && t.notify.OnPrepareUpdateLatestMessage != nil {
			t.notify.OnPrepareUpdateLatestMessage(t)
		}
		t.latestMessageCreated = ptr.Created()
		if t.notify != nil && t.notify.OnUpdateLatestMessage != nil {
			t.notify.OnUpdateLatestMessage(t)
		}
	}
	t.SetLastUpdated(ptr.Created())
}

// RemoveMessage removes a message from the thread. The caller recomputes
// latestMessageCreated afterward if the removed message held that value.
func (t *DiscussionThread) RemoveMessage(ptr entity.Pointer[DiscussionThreadMessage]) bool {
	if _, ok := t.messagesByID[ptr.ID]; !ok {
		return false
	}
	if t.notify != nil && t.notify.OnPrepareUpdateMessageCount != nil {
		t.notify.OnPrepareUpdateMessageCount(t)
	}
	same := func(a, b entity.Pointer[DiscussionThreadMessage]) bool { return a == b }
	t.messages.Remove(ptr, same)
	delete(t.messagesByID, ptr.ID)
	if t.notify != nil && t.notify.OnUpdateMessageCount != nil {
		t.notify.OnUpdateMessageCount(t)
	}
	return true
}

// RecomputeLatestMessageCreated scans the message index for the newest
// remaining message; called after removing the thread's most recent
// message.
func (t *DiscussionThread) RecomputeLatestMessageCreated() {
	n := t.messages.Len()
	if n == 0 {
		t.latestMessageCreated = ids.Unset
		return
	}
	latest, _ := t.messages.Nth(n - 1)
	t.latestMessageCreated = latest.Created()
}

// Messages returns the thread's messages ordered by creation time ascending.
func (t *DiscussionThread) Messages() []entity.Pointer[DiscussionThreadMessage] { return t.messages.All() }

// RankOf returns the 0-based position of ptr within this thread's
// created-ascending message order, from which the page a message lives
// on can be computed (spec.md §4.1).
func (t *DiscussionThread) RankOf(ptr entity.Pointer[DiscussionThreadMessage]) int {
	return t.messages.IndexOf(ptr, func(a, b entity.Pointer[DiscussionThreadMessage]) bool { return a == b })
}

// MessageByID looks up a message within this thread.
func (t *DiscussionThread) MessageByID(id ids.Id) (entity.Pointer[DiscussionThreadMessage], bool) {
	m, ok := t.messagesByID[id]
	return m, ok
}

// Tags returns the thread's attached tags.
func (t *DiscussionThread) Tags() map[ids.Id]entity.Pointer[DiscussionTag] { return t.tags }

// AddTag/RemoveTag maintain the thread's tag set. Callers are responsible
// for also updating the tag's own thread set and category totals.
func (t *DiscussionThread) AddTag(ptr entity.Pointer[DiscussionTag], id ids.Id) { t.tags[id] = ptr }
func (t *DiscussionThread) RemoveTag(id ids.Id)                                  { delete(t.tags, id) }
func (t *DiscussionThread) HasTag(id ids.Id) bool {
	_, ok := t.tags[id]
	return ok
}

// SubscribedUsers returns the set of users subscribed to this thread.
func (t *DiscussionThread) SubscribedUsers() map[ids.Id]entity.Pointer[User] { return t.subscribedUsers }

// AddSubscriber/RemoveSubscriber maintain the subscriber set.
func (t *DiscussionThread) AddSubscriber(ptr entity.Pointer[User], id ids.Id) { t.subscribedUsers[id] = ptr }
func (t *DiscussionThread) RemoveSubscriber(id ids.Id)                        { delete(t.subscribedUsers, id) }
