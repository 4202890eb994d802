// Package model defines the forum's domain entities (spec.md §3.2): plain
// structs whose setters bracket every indexed field mutation with the
// prepare/commit notification pair described in spec.md §4.2. Each
// entity's owning collection installs its notification callbacks at
// construction time; direct field assignment is never exposed outside
// this package, so a setter call is the only sanctioned mutation path.
package model

import (
	"sync"

	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
)

// UserNotifications are the change-notification hooks a UserCollection
// installs on every User it owns, one prepare/commit pair per indexed
// field (spec.md §4.2).
type UserNotifications struct {
	OnPrepareUpdateName         func(*User)
	OnUpdateName                func(*User)
	OnPrepareUpdateAuth         func(*User)
	OnUpdateAuth                func(*User)
	OnPrepareUpdateLastSeen     func(*User)
	OnUpdateLastSeen            func(*User)
	OnPrepareUpdateThreadCount  func(*User)
	OnUpdateThreadCount         func(*User)
	OnPrepareUpdateMessageCount func(*User)
	OnUpdateMessageCount        func(*User)
}

// VoteHistoryCapacity is the bounded ring size for received-vote and
// received-quote history (spec.md §3.2: "bounded ring of 64").
const VoteHistoryCapacity = 64

// VoteHistoryEntry records one vote received by a user's message, used to
// populate the bounded ring.
type VoteHistoryEntry struct {
	MessageID ids.Id
	VoterID   ids.Id
	At        ids.Timestamp
	Up        bool
}

// QuoteHistoryEntry records one quote of a user's message by another.
type QuoteHistoryEntry struct {
	MessageID   ids.Id
	QuotedByID  ids.Id
	At          ids.Timestamp
}

// User is the forum's account entity (spec.md §3.2).
type User struct {
	ID ids.Id

	notify *UserNotifications

	name string
	auth string // empty = no auth token set

	created         ids.Timestamp
	creationDetails ids.VisitDetails

	info      string
	title     string
	signature string
	logo      []byte

	lastSeen ids.Timestamp

	receivedUpVotes   int
	receivedDownVotes int

	ownThreads  map[ids.Id]entity.Pointer[DiscussionThread]
	ownMessages map[ids.Id]entity.Pointer[DiscussionThreadMessage]
	ownComments map[ids.Id]entity.Pointer[MessageComment]

	subscribedThreads map[ids.Id]entity.Pointer[DiscussionThread]
	votedMessages     map[ids.Id]bool // true = up, false = down

	voteHistory  []VoteHistoryEntry // bounded ring, most recent last
	quoteHistory []QuoteHistoryEntry

	voteHistoryNotRead        int64 // atomic, not index-participating (spec.md §5)
	quotesHistoryNotRead      int64 // atomic
	voteHistoryLastRetrieved  int64 // atomic timestamp
	showInOnlineUsers         int32 // atomic bool (0/1)

	pageMu               sync.Mutex // spin-lock surrogate for the hot read path (spec.md §5)
	latestThreadPageVisited map[ids.Id]int
}

// NewUser constructs a user with no auth token and empty collections. The
// repository's commands and its direct-write path call it, then add the
// result to the entity collection.
func NewUser(id ids.Id, name string, created ids.Timestamp, details ids.VisitDetails) *User {
	return &User{
		ID:                      id,
		name:                    name,
		created:                 created,
		creationDetails:         details,
		ownThreads:              map[ids.Id]entity.Pointer[DiscussionThread]{},
		ownMessages:             map[ids.Id]entity.Pointer[DiscussionThreadMessage]{},
		ownComments:             map[ids.Id]entity.Pointer[MessageComment]{},
		subscribedThreads:       map[ids.Id]entity.Pointer[DiscussionThread]{},
		votedMessages:           map[ids.Id]bool{},
		latestThreadPageVisited: map[ids.Id]int{},
	}
}

// InstallNotifications wires the owning collection's callbacks. Called
// once when the collection adds the user.
func (u *User) InstallNotifications(n *UserNotifications) { u.notify = n }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// SetName updates the name, bracketed by the name index's prepare/commit.
func (u *User) SetName(name string) {
	if u.notify != nil && u.notify.OnPrepareUpdateName != nil {
		u.notify.OnPrepareUpdateName(u)
	}
	u.name = name
	if u.notify != nil && u.notify.OnUpdateName != nil {
		u.notify.OnUpdateName(u)
	}
}

// Auth returns the user's auth token, or "" if unset.
func (u *User) Auth() string { return u.auth }

// SetAuth updates the auth token, bracketed by the auth index's prepare/commit.
func (u *User) SetAuth(auth string) {
	if u.notify != nil && u.notify.OnPrepareUpdateAuth != nil {
		u.notify.OnPrepareUpdateAuth(u)
	}
	u.auth = auth
	if u.notify != nil && u.notify.OnUpdateAuth != nil {
		u.notify.OnUpdateAuth(u)
	}
}

// Created returns the account creation timestamp.
func (u *User) Created() ids.Timestamp { return u.created }

// CreationDetails returns the recorded VisitDetails at account creation.
func (u *User) CreationDetails() ids.VisitDetails { return u.creationDetails }

// LastSeen returns the last-seen timestamp.
func (u *User) LastSeen() ids.Timestamp { return u.lastSeen }

// SetLastSeen bumps last-seen, bracketed by its index's prepare/commit.
func (u *User) SetLastSeen(t ids.Timestamp) {
	if t <= u.lastSeen {
		return
	}
	if u.notify != nil && u.notify.OnPrepareUpdateLastSeen != nil {
		u.notify.OnPrepareUpdateLastSeen(u)
	}
	u.lastSeen = t
	if u.notify != nil && u.notify.OnUpdateLastSeen != nil {
		u.notify.OnUpdateLastSeen(u)
	}
}

// Info, Title, Signature, Logo are opaque bounded strings/bytes (spec.md §3.2).
func (u *User) Info() string      { return u.info }
func (u *User) SetInfo(v string)  { u.info = v }
func (u *User) Title() string     { return u.title }
func (u *User) SetTitle(v string) { u.title = v }
func (u *User) Signature() string { return u.signature }
func (u *User) SetSignature(v string) { u.signature = v }
func (u *User) Logo() []byte      { return u.logo }
func (u *User) SetLogo(v []byte)  { u.logo = v }

// ReceivedUpVotes and ReceivedDownVotes are the counters maintained as the
// user's messages are voted on.
func (u *User) ReceivedUpVotes() int   { return u.receivedUpVotes }
func (u *User) ReceivedDownVotes() int { return u.receivedDownVotes }

// AddReceivedUpVote/AddReceivedDownVote adjust vote counters by delta
// (positive to add, negative to undo); not index-participating.
func (u *User) AddReceivedUpVote(delta int)   { u.receivedUpVotes += delta }
func (u *User) AddReceivedDownVote(delta int) { u.receivedDownVotes += delta }

// OwnThreadCount / OwnMessageCount are the ranked-index keys for
// threadCount/messageCount (descending, spec.md §4.1).
func (u *User) OwnThreadCount() int  { return len(u.ownThreads) }
func (u *User) OwnMessageCount() int { return len(u.ownMessages) }

// AddOwnThread/RemoveOwnThread maintain the user's own-thread set,
// bracketed by the threadCount ranked index's prepare/commit.
func (u *User) AddOwnThread(ptr entity.Pointer[DiscussionThread], threadID ids.Id) {
	if u.notify != nil && u.notify.OnPrepareUpdateThreadCount != nil {
		u.notify.OnPrepareUpdateThreadCount(u)
	}
	u.ownThreads[threadID] = ptr
	if u.notify != nil && u.notify.OnUpdateThreadCount != nil {
		u.notify.OnUpdateThreadCount(u)
	}
}

func (u *User) RemoveOwnThread(threadID ids.Id) {
	if _, ok := u.ownThreads[threadID]; !ok {
		return
	}
	if u.notify != nil && u.notify.OnPrepareUpdateThreadCount != nil {
		u.notify.OnPrepareUpdateThreadCount(u)
	}
	delete(u.ownThreads, threadID)
	if u.notify != nil && u.notify.OnUpdateThreadCount != nil {
		u.notify.OnUpdateThreadCount(u)
	}
}

// OwnThreads returns the set of threads this user created.
func (u *User) OwnThreads() map[ids.Id]entity.Pointer[DiscussionThread] { return u.ownThreads }

// AddOwnMessage/RemoveOwnMessage maintain the user's own-message set,
// bracketed by the messageCount ranked index's prepare/commit.
func (u *User) AddOwnMessage(ptr entity.Pointer[DiscussionThreadMessage], id ids.Id) {
	if u.notify != nil && u.notify.OnPrepareUpdateMessageCount != nil {
		u.notify.OnPrepareUpdateMessageCount(u)
	}
	u.ownMessages[id] = ptr
	if u.notify != nil && u.notify.OnUpdateMessageCount != nil {
		u.notify.OnUpdateMessageCount(u)
	}
}

func (u *User) RemoveOwnMessage(id ids.Id) {
	if _, ok := u.ownMessages[id]; !ok {
		return
	}
	if u.notify != nil && u.notify.OnPrepareUpdateMessageCount != nil {
		u.notify.OnPrepareUpdateMessageCount(u)
	}
	delete(u.ownMessages, id)
	if u.notify != nil && u.notify.OnUpdateMessageCount != nil {
		u.notify.OnUpdateMessageCount(u)
	}
}

// OwnMessages returns the set of messages this user created.
func (u *User) OwnMessages() map[ids.Id]entity.Pointer[DiscussionThreadMessage] { return u.ownMessages }

// AddOwnComment/RemoveOwnComment maintain the user's own-comment set (not
// separately indexed, so no prepare/commit bracket is needed).
func (u *User) AddOwnComment(ptr entity.Pointer[MessageComment], id ids.Id) { u.ownComments[id] = ptr }
func (u *User) RemoveOwnComment(id ids.Id)                                  { delete(u.ownComments, id) }

// OwnComments returns the set of comments this user created.
func (u *User) OwnComments() map[ids.Id]entity.Pointer[MessageComment] { return u.ownComments }

// SubscribedThreads / Subscribe / Unsubscribe track thread subscriptions.
func (u *User) SubscribedThreads() map[ids.Id]entity.Pointer[DiscussionThread] {
	return u.subscribedThreads
}
func (u *User) Subscribe(ptr entity.Pointer[DiscussionThread], threadID ids.Id) {
	u.subscribedThreads[threadID] = ptr
}
func (u *User) Unsubscribe(threadID ids.Id) { delete(u.subscribedThreads, threadID) }
func (u *User) IsSubscribed(threadID ids.Id) bool {
	_, ok := u.subscribedThreads[threadID]
	return ok
}

// VoteState reports whether the user voted a message up, down, or not at
// all (spec.md invariant 5).
type VoteState int

const (
	VoteNone VoteState = iota
	VoteUp
	VoteDown
)

// VoteStateFor returns this user's current vote on messageID.
func (u *User) VoteStateFor(messageID ids.Id) VoteState {
	up, ok := u.votedMessages[messageID]
	if !ok {
		return VoteNone
	}
	if up {
		return VoteUp
	}
	return VoteDown
}

// SetVoteState records (or clears, with VoteNone) this user's vote on a message.
func (u *User) SetVoteState(messageID ids.Id, state VoteState) {
	switch state {
	case VoteNone:
		delete(u.votedMessages, messageID)
	case VoteUp:
		u.votedMessages[messageID] = true
	case VoteDown:
		u.votedMessages[messageID] = false
	}
}

// RecordReceivedVote appends to the bounded vote-history ring (spec.md §3.2).
func (u *User) RecordReceivedVote(e VoteHistoryEntry) {
	u.voteHistory = appendBounded(u.voteHistory, e, VoteHistoryCapacity)
	u.voteHistoryNotRead++
}

// VoteHistory returns the bounded vote-history ring, oldest first.
func (u *User) VoteHistory() []VoteHistoryEntry { return u.voteHistory }

// RecordReceivedQuote appends to the bounded quote-history ring.
func (u *User) RecordReceivedQuote(e QuoteHistoryEntry) {
	u.quoteHistory = appendBounded(u.quoteHistory, e, VoteHistoryCapacity)
	u.quotesHistoryNotRead++
}

// QuoteHistory returns the bounded quote-history ring, oldest first.
func (u *User) QuoteHistory() []QuoteHistoryEntry { return u.quoteHistory }

func appendBounded[T any](ring []T, v T, capacity int) []T {
	ring = append(ring, v)
	if len(ring) > capacity {
		ring = ring[len(ring)-capacity:]
	}
	return ring
}

// LatestPageVisited returns the last page number this user viewed for
// threadID, guarded by a per-user lock rather than the global store lock
// (spec.md §5, the hot "get thread by id" read path).
func (u *User) LatestPageVisited(threadID ids.Id) (int, bool) {
	u.pageMu.Lock()
	defer u.pageMu.Unlock()
	page, ok := u.latestThreadPageVisited[threadID]
	return page, ok
}

// SetLatestPageVisited records the page number visited for threadID.
func (u *User) SetLatestPageVisited(threadID ids.Id, page int) {
	u.pageMu.Lock()
	defer u.pageMu.Unlock()
	u.latestThreadPageVisited[threadID] = page
}
