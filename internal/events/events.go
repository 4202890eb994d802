// Package events implements the observer fan-out MemoryRepository.h calls
// ObserverCollection (spec.md §6, "Observer events"): every command notifies
// a fixed set of callbacks, split into a read side and a write side, so
// downstream consumers (the replication journal, metrics) can subscribe
// without the core importing them.
package events

import (
	"sync"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// Context carries the per-command request state every event callback
// receives, generalizing the original's PerformedByType plus the
// thread-local request context (spec.md §5 "Thread-local state").
type Context struct {
	CurrentUser *model.User
	CurrentTime ids.Timestamp
	IPAddress   [16]byte
	UserAgent   string
}

// ReadEvents is notified after a read-only command completes
// successfully. Implementations must not block or mutate state; they run
// synchronously inside the command that fired them.
type ReadEvents interface {
	OnGetEntitiesCount(ctx Context)
	OnGetUsers(ctx Context)
	OnGetUserByID(ctx Context, id ids.Id)
	OnGetUserByName(ctx Context, name string)
	OnGetDiscussionThreads(ctx Context)
	OnGetDiscussionThreadByID(ctx Context, id ids.Id)
	OnGetDiscussionThreadsOfUser(ctx Context, user *model.User)
	OnGetDiscussionTags(ctx Context)
	OnGetDiscussionCategories(ctx Context)
}

// WriteEvents is notified after a mutating command commits successfully.
// Implementations receive the post-mutation entity so they can observe
// its final state (e.g. the journal serializes it, metrics count it).
type WriteEvents interface {
	OnAddNewUser(ctx Context, newUser *model.User)
	OnChangeUser(ctx Context, user *model.User)
	OnDeleteUser(ctx Context, deletedUserID ids.Id)

	OnAddNewDiscussionThread(ctx Context, newThread *model.DiscussionThread)
	OnChangeDiscussionThread(ctx Context, thread *model.DiscussionThread)
	OnDeleteDiscussionThread(ctx Context, deletedThreadID ids.Id)
	OnMergeDiscussionThreads(ctx Context, from, into *model.DiscussionThread)

	OnAddNewDiscussionMessage(ctx Context, newMessage *model.DiscussionThreadMessage)
	OnChangeDiscussionMessage(ctx Context, message *model.DiscussionThreadMessage)
	OnDeleteDiscussionMessage(ctx Context, deletedMessageID ids.Id)
	OnDiscussionMessageVoted(ctx Context, message *model.DiscussionThreadMessage, voterID ids.Id, up bool)

	OnAddNewMessageComment(ctx Context, newComment *model.MessageComment)
	OnMessageCommentSolved(ctx Context, comment *model.MessageComment)

	OnSendPrivateMessage(ctx Context, newMessage *model.PrivateMessage)

	OnAddNewDiscussionTag(ctx Context, newTag *model.DiscussionTag)
	OnChangeDiscussionTag(ctx Context, tag *model.DiscussionTag)
	OnDeleteDiscussionTag(ctx Context, deletedTagID ids.Id)

	OnAddNewDiscussionCategory(ctx Context, newCategory *model.DiscussionCategory)
	OnChangeDiscussionCategory(ctx Context, category *model.DiscussionCategory)
	OnDeleteDiscussionCategory(ctx Context, deletedCategoryID ids.Id)

	OnPrivilegeAssigned(ctx Context, entityID ids.Id, targetUserID ids.Id, privilegeValue ids.PrivilegeValue)
}

// Bus fans out to every subscribed ReadEvents/WriteEvents observer,
// grounded on ObserverCollection.h's thread-safe add/remove/notify. Add
// and Remove take the same interface value passed in, matched by
// identity (spec.md does not require an unsubscribe token).
type Bus struct {
	mu      sync.RWMutex
	readers []ReadEvents
	writers []WriteEvents
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// AddReadObserver subscribes o to read events.
func (b *Bus) AddReadObserver(o ReadEvents) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readers = append(b.readers, o)
}

// AddWriteObserver subscribes o to write events.
func (b *Bus) AddWriteObserver(o WriteEvents) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writers = append(b.writers, o)
}

// RemoveReadObserver unsubscribes o, matched by identity. A no-op if o
// was never subscribed.
func (b *Bus) RemoveReadObserver(o ReadEvents) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.readers {
		if r == o {
			b.readers = append(b.readers[:i], b.readers[i+1:]...)
			return
		}
	}
}

// RemoveWriteObserver unsubscribes o, matched by identity.
func (b *Bus) RemoveWriteObserver(o WriteEvents) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, w := range b.writers {
		if w == o {
			b.writers = append(b.writers[:i], b.writers[i+1:]...)
			return
		}
	}
}

func (b *Bus) snapshot() (readers []ReadEvents, writers []WriteEvents) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	readers = append(readers, b.readers...)
	writers = append(writers, b.writers...)
	return
}

// Readers reports the subscribed ReadEvents, in subscription order, for
// callers that need to fan out a read notification themselves.
func (b *Bus) Readers() []ReadEvents {
	r, _ := b.snapshot()
	return r
}

// Writers reports the subscribed WriteEvents, in subscription order.
func (b *Bus) Writers() []WriteEvents {
	_, w := b.snapshot()
	return w
}
