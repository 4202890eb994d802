package model

import "github.com/chirino/forumcore/internal/ids"

// PrivateMessage is a direct message between two users (spec.md §3.2). It
// carries no index-participating fields beyond its id, so it needs no
// change-notification hooks; the source/destination inboxes it appears in
// are maintained by internal/entitycollection as plain ranked-by-created
// per-user lists.
type PrivateMessage struct {
	ID ids.Id

	source      ids.Id
	destination ids.Id

	created ids.Timestamp
	content string
}

// NewPrivateMessage constructs a private message from source to destination.
func NewPrivateMessage(id, source, destination ids.Id, created ids.Timestamp, content string) *PrivateMessage {
	return &PrivateMessage{
		ID:          id,
		source:      source,
		destination: destination,
		created:     created,
		content:     content,
	}
}

// Source returns the sender's id.
func (p *PrivateMessage) Source() ids.Id { return p.source }

// Destination returns the recipient's id.
func (p *PrivateMessage) Destination() ids.Id { return p.destination }

// Created returns the send timestamp.
func (p *PrivateMessage) Created() ids.Timestamp { return p.created }

// Content returns the message body.
func (p *PrivateMessage) Content() string { return p.content }
