package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
)

// DiscussionThreadMessageNotifications hooks changes to the message's
// up/down vote counters. The entity collection installs no such hooks,
// and no vote-score index is kept.
type DiscussionThreadMessageNotifications struct {
	OnPrepareUpdateVoteScore func(*DiscussionThreadMessage)
	OnUpdateVoteScore        func(*DiscussionThreadMessage)
}

// MessageVote records a single up/down vote cast on a message.
type MessageVote struct {
	UserID ids.Id
	At     ids.Timestamp
	Up     bool
}

// DiscussionThreadMessage is one post within a thread (spec.md §3.2).
type DiscussionThreadMessage struct {
	ID ids.Id

	notify *DiscussionThreadMessageNotifications

	content     ids.StringView
	lastUpdated ids.Timestamp
	lastUpdatedBy ids.Id
	lastUpdateReason string

	createdBy       ids.Id
	created         ids.Timestamp
	creationDetails ids.VisitDetails

	parentThread entity.Pointer[DiscussionThread]

	upVotes   map[ids.Id]MessageVote
	downVotes map[ids.Id]MessageVote

	comments map[ids.Id]entity.Pointer[MessageComment]

	attachments map[ids.Id]entity.Pointer[Attachment]

	solvedCommentID ids.Id // empty = no comment accepted as solution

	approved bool

	ipAddress [16]byte
}

// NewDiscussionThreadMessage constructs a message with no votes or comments.
func NewDiscussionThreadMessage(
	id ids.Id,
	content ids.StringView,
	createdBy ids.Id,
	created ids.Timestamp,
	details ids.VisitDetails,
	parentThread entity.Pointer[DiscussionThread],
) *DiscussionThreadMessage {
	return &DiscussionThreadMessage{
		ID:              id,
		content:         content,
		createdBy:       createdBy,
		created:         created,
		creationDetails: details,
		parentThread:    parentThread,
		lastUpdated:     created,
		upVotes:         map[ids.Id]MessageVote{},
		downVotes:       map[ids.Id]MessageVote{},
		comments:        map[ids.Id]entity.Pointer[MessageComment]{},
		attachments:     map[ids.Id]entity.Pointer[Attachment]{},
		approved:        true, // spec.md §3.2: approved by default unless the forum requires moderation
	}
}

// InstallNotifications wires the owning collection's callbacks.
func (m *DiscussionThreadMessage) InstallNotifications(n *DiscussionThreadMessageNotifications) {
	m.notify = n
}

// Content returns a materialized copy of the message body.
func (m *DiscussionThreadMessage) Content() string { return m.content.String() }

// ContentView returns the non-owning view over the message body, used by
// callers that only need length or a sub-slice (spec.md §4.3
// getMessageContentPointer).
func (m *DiscussionThreadMessage) ContentView() ids.StringView { return m.content }

// SetContent replaces the message body and records the edit. Vote/score
// indices are unaffected by content edits, so no notification bracket is
// required here.
func (m *DiscussionThreadMessage) SetContent(content ids.StringView, editedBy ids.Id, editedAt ids.Timestamp, reason string) {
	m.content = content
	m.lastUpdated = editedAt
	m.lastUpdatedBy = editedBy
	m.lastUpdateReason = reason
}

// LastUpdated / LastUpdatedBy / LastUpdateReason report the most recent edit.
func (m *DiscussionThreadMessage) LastUpdated() ids.Timestamp    { return m.lastUpdated }
func (m *DiscussionThreadMessage) LastUpdatedBy() ids.Id         { return m.lastUpdatedBy }
func (m *DiscussionThreadMessage) LastUpdateReason() string      { return m.lastUpdateReason }

// CreatedBy returns the id of the message's author.
func (m *DiscussionThreadMessage) CreatedBy() ids.Id { return m.createdBy }

// Created / CreationDetails report creation provenance.
func (m *DiscussionThreadMessage) Created() ids.Timestamp            { return m.created }
func (m *DiscussionThreadMessage) CreationDetails() ids.VisitDetails { return m.creationDetails }

// ParentThread returns the thread this message belongs to.
func (m *DiscussionThreadMessage) ParentThread() entity.Pointer[DiscussionThread] { return m.parentThread }

// SetParentThread reassigns the message to a different thread, used by
// the moveDiscussionThreadMessage operation (spec.md §4.3). The caller is
// responsible for removing/reinserting the message in both threads'
// ranked indices.
func (m *DiscussionThreadMessage) SetParentThread(t entity.Pointer[DiscussionThread]) { m.parentThread = t }

// UpVoteCount / DownVoteCount are the vote-score ranked index's inputs.
func (m *DiscussionThreadMessage) UpVoteCount() int   { return len(m.upVotes) }
func (m *DiscussionThreadMessage) DownVoteCount() int { return len(m.downVotes) }

// Score returns upVotes - downVotes, the "best scored" ranking key.
func (m *DiscussionThreadMessage) Score() int { return len(m.upVotes) - len(m.downVotes) }

// VoteUp/VoteDown/RemoveVote adjust a user's vote, bracketed by the
// OnPrepareUpdateVoteScore/OnUpdateVoteScore hooks. The caller has already
// resolved whether an existing opposite vote must be cleared first
// (spec.md invariant 5).
func (m *DiscussionThreadMessage) VoteUp(userID ids.Id, at ids.Timestamp) {
	if m.notify != nil && m.notify.OnPrepareUpdateVoteScore != nil {
		m.notify.OnPrepareUpdateVoteScore(m)
	}
	delete(m.downVotes, userID)
	m.upVotes[userID] = MessageVote{UserID: userID, At: at, Up: true}
	if m.notify != nil && m.notify.OnUpdateVoteScore != nil {
		m.notify.OnUpdateVoteScore(m)
	}
}

func (m *DiscussionThreadMessage) VoteDown(userID ids.Id, at ids.Timestamp) {
	if m.notify != nil && m.notify.OnPrepareUpdateVoteScore != nil {
		m.notify.OnPrepareUpdateVoteScore(m)
	}
	delete(m.upVotes, userID)
	m.downVotes[userID] = MessageVote{UserID: userID, At: at, Up: false}
	if m.notify != nil && m.notify.OnUpdateVoteScore != nil {
		m.notify.OnUpdateVoteScore(m)
	}
}

func (m *DiscussionThreadMessage) RemoveVote(userID ids.Id) {
	_, up := m.upVotes[userID]
	_, down := m.downVotes[userID]
	if !up && !down {
		return
	}
	if m.notify != nil && m.notify.OnPrepareUpdateVoteScore != nil {
		m.notify.OnPrepareUpdateVoteScore(m)
	}
	delete(m.upVotes, userID)
	delete(m.downVotes, userID)
	if m.notify != nil && m.notify.OnUpdateVoteScore != nil {
		m.notify.OnUpdateVoteScore(m)
	}
}

// VoteOf reports a user's current vote state on this message.
func (m *DiscussionThreadMessage) VoteOf(userID ids.Id) VoteState {
	if _, ok := m.upVotes[userID]; ok {
		return VoteUp
	}
	if _, ok := m.downVotes[userID]; ok {
		return VoteDown
	}
	return VoteNone
}

// VoteAt returns the timestamp a user's existing vote on this message was
// cast at, used to enforce the reset-vote window (spec.md invariant 5).
func (m *DiscussionThreadMessage) VoteAt(userID ids.Id) (ids.Timestamp, bool) {
	if v, ok := m.upVotes[userID]; ok {
		return v.At, true
	}
	if v, ok := m.downVotes[userID]; ok {
		return v.At, true
	}
	return 0, false
}

// UpVotes / DownVotes expose the raw vote maps for serialization
// (subject to the VIEW_VOTES privilege filter, spec.md §4.8).
func (m *DiscussionThreadMessage) UpVotes() map[ids.Id]MessageVote   { return m.upVotes }
func (m *DiscussionThreadMessage) DownVotes() map[ids.Id]MessageVote { return m.downVotes }

// Comments returns the message's comments.
func (m *DiscussionThreadMessage) Comments() map[ids.Id]entity.Pointer[MessageComment] { return m.comments }

// AddComment/RemoveComment maintain the comment set.
func (m *DiscussionThreadMessage) AddComment(ptr entity.Pointer[MessageComment], id ids.Id) {
	m.comments[id] = ptr
}
func (m *DiscussionThreadMessage) RemoveComment(id ids.Id) { delete(m.comments, id) }

// SolvedCommentID / SetSolved record which comment (if any) is accepted
// as the solution.
func (m *DiscussionThreadMessage) SolvedCommentID() ids.Id { return m.solvedCommentID }
func (m *DiscussionThreadMessage) SetSolved(commentID ids.Id) { m.solvedCommentID = commentID }

// Approved reports whether the message is visible to ordinary readers
// (spec.md §3.2 moderation state).
func (m *DiscussionThreadMessage) Approved() bool   { return m.approved }
func (m *DiscussionThreadMessage) SetApproved(v bool) { m.approved = v }

// Attachments returns the set of attachments linked to this message.
func (m *DiscussionThreadMessage) Attachments() map[ids.Id]entity.Pointer[Attachment] { return m.attachments }

// AddAttachment/RemoveAttachment maintain the message's attachment set.
// Callers are responsible for keeping the attachment's own reverse
// message set in sync.
func (m *DiscussionThreadMessage) AddAttachment(ptr entity.Pointer[Attachment], id ids.Id) {
	m.attachments[id] = ptr
}
func (m *DiscussionThreadMessage) RemoveAttachment(id ids.Id) { delete(m.attachments, id) }

// IPAddress / SetIPAddress record the message's originating address,
// subject to the VIEW_IP_ADDRESS privilege filter.
func (m *DiscussionThreadMessage) IPAddress() [16]byte      { return m.ipAddress }
func (m *DiscussionThreadMessage) SetIPAddress(ip [16]byte) { m.ipAddress = ip }
