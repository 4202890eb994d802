package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
)

// AttachmentNotifications hooks the attachment's indexed fields: name,
// size, and the signed approvedAndCreated composite (spec.md §4.1).
type AttachmentNotifications struct {
	OnPrepareUpdateName              func(*Attachment)
	OnUpdateName                     func(*Attachment)
	OnPrepareUpdateSize              func(*Attachment)
	OnUpdateSize                     func(*Attachment)
	OnPrepareUpdateApprovedAndCreated func(*Attachment)
	OnUpdateApprovedAndCreated        func(*Attachment)
}

// Attachment is an uploaded file referenced from zero or more messages
// (spec.md §3.2).
type Attachment struct {
	ID ids.Id

	notify *AttachmentNotifications

	name string
	size int64

	createdBy       ids.Id
	created         ids.Timestamp
	creationDetails ids.VisitDetails

	approved bool

	messages map[ids.Id]entity.Pointer[DiscussionThreadMessage]

	nrOfGetRequests int64 // atomic, not index-participating (spec.md §5)
}

// NewAttachment constructs an unapproved attachment with no message
// references.
func NewAttachment(id ids.Id, name string, size int64, createdBy ids.Id, created ids.Timestamp, details ids.VisitDetails) *Attachment {
	return &Attachment{
		ID:              id,
		name:            name,
		size:            size,
		createdBy:       createdBy,
		created:         created,
		creationDetails: details,
		messages:        map[ids.Id]entity.Pointer[DiscussionThreadMessage]{},
	}
}

// InstallNotifications wires the owning collection's callbacks.
func (a *Attachment) InstallNotifications(n *AttachmentNotifications) { a.notify = n }

// Name returns the attachment's display name.
func (a *Attachment) Name() string { return a.name }

// SetName updates the name, bracketed by the name index's prepare/commit.
func (a *Attachment) SetName(name string) {
	if a.notify != nil && a.notify.OnPrepareUpdateName != nil {
		a.notify.OnPrepareUpdateName(a)
	}
	a.name = name
	if a.notify != nil && a.notify.OnUpdateName != nil {
		a.notify.OnUpdateName(a)
	}
}

// Size returns the attachment's byte size.
func (a *Attachment) Size() int64 { return a.size }

// SetSize updates the size, bracketed by the size index's prepare/commit.
// The caller is responsible for adjusting the collection-level
// total-size accumulator by the delta.
func (a *Attachment) SetSize(size int64) {
	if a.notify != nil && a.notify.OnPrepareUpdateSize != nil {
		a.notify.OnPrepareUpdateSize(a)
	}
	a.size = size
	if a.notify != nil && a.notify.OnUpdateSize != nil {
		a.notify.OnUpdateSize(a)
	}
}

// CreatedBy returns the id of the uploader.
func (a *Attachment) CreatedBy() ids.Id { return a.createdBy }

// Created / CreationDetails report creation provenance.
func (a *Attachment) Created() ids.Timestamp            { return a.created }
func (a *Attachment) CreationDetails() ids.VisitDetails { return a.creationDetails }

// Approved reports the attachment's moderation state.
func (a *Attachment) Approved() bool { return a.approved }

// ApprovedAndCreated is the signed composite ranking key described in
// spec.md §4.1: negative created if approved, positive if not, so
// not-yet-approved items sort first under the owning collection's
// descending order.
func (a *Attachment) ApprovedAndCreated() int64 {
	if a.approved {
		return -int64(a.created)
	}
	return int64(a.created)
}

// SetApproved flips the approval flag, bracketed by the
// approvedAndCreated index's prepare/commit since the sign of its key
// changes.
func (a *Attachment) SetApproved(v bool) {
	if a.approved == v {
		return
	}
	if a.notify != nil && a.notify.OnPrepareUpdateApprovedAndCreated != nil {
		a.notify.OnPrepareUpdateApprovedAndCreated(a)
	}
	a.approved = v
	if a.notify != nil && a.notify.OnUpdateApprovedAndCreated != nil {
		a.notify.OnUpdateApprovedAndCreated(a)
	}
}

// Messages returns the set of messages referencing this attachment.
func (a *Attachment) Messages() map[ids.Id]entity.Pointer[DiscussionThreadMessage] { return a.messages }

// AddMessage/RemoveMessage maintain the reverse-lookup message set; not
// index-participating, so no prepare/commit bracket is needed.
func (a *Attachment) AddMessage(ptr entity.Pointer[DiscussionThreadMessage], id ids.Id) {
	a.messages[id] = ptr
}
func (a *Attachment) RemoveMessage(id ids.Id) { delete(a.messages, id) }

// RecordGetRequest increments the non-indexed download counter.
func (a *Attachment) RecordGetRequest() { a.nrOfGetRequests++ }

// GetRequestCount returns the running download counter.
func (a *Attachment) GetRequestCount() int64 { return a.nrOfGetRequests }
