package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
)

// MessageComment is a short remark attached to a DiscussionThreadMessage
// (spec.md §3.2), not itself commentable or votable. It carries no
// secondary-index participating fields, so it needs no notification hooks.
type MessageComment struct {
	ID ids.Id

	content string

	createdBy       ids.Id
	created         ids.Timestamp
	creationDetails ids.VisitDetails

	parentMessage entity.Pointer[DiscussionThreadMessage]

	solved bool
}

// NewMessageComment constructs a comment attached to parentMessage.
func NewMessageComment(
	id ids.Id,
	content string,
	createdBy ids.Id,
	created ids.Timestamp,
	details ids.VisitDetails,
	parentMessage entity.Pointer[DiscussionThreadMessage],
) *MessageComment {
	return &MessageComment{
		ID:              id,
		content:         content,
		createdBy:       createdBy,
		created:         created,
		creationDetails: details,
		parentMessage:   parentMessage,
	}
}

// Content / SetContent hold the comment body.
func (c *MessageComment) Content() string    { return c.content }
func (c *MessageComment) SetContent(v string) { c.content = v }

// CreatedBy returns the id of the comment's author.
func (c *MessageComment) CreatedBy() ids.Id { return c.createdBy }

// Created / CreationDetails report creation provenance.
func (c *MessageComment) Created() ids.Timestamp            { return c.created }
func (c *MessageComment) CreationDetails() ids.VisitDetails { return c.creationDetails }

// ParentMessage returns the message this comment is attached to.
func (c *MessageComment) ParentMessage() entity.Pointer[DiscussionThreadMessage] { return c.parentMessage }

// Solved reports whether this comment is marked as the accepted solution
// for its parent message.
func (c *MessageComment) Solved() bool    { return c.solved }
func (c *MessageComment) SetSolved(v bool) { c.solved = v }
