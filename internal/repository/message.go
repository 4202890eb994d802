package repository

import (
	"time"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// AddNewDiscussionMessage posts content into thread.
func (r *Repository) AddNewDiscussionMessage(ctx RequestContext, thread *model.DiscussionThread, content string) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if s := r.Messages.AddNewDiscussionMessageInThread(ctx.CurrentUser, thread, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if content == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		id := r.IDGen.NewId()
		m := model.NewDiscussionThreadMessage(id, ids.NewStringView(content), ctx.CurrentUser.ID, ctx.Now,
			ids.VisitDetails{IP: ctx.IPAddress, UserAgent: ctx.UserAgent}, thread)
		m.SetIPAddress(ctx.IPAddress)
		if err := ec.Messages.Add(m); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		thread.AddMessage(m)
		ctx.CurrentUser.AddOwnMessage(m, id)
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewDiscussionMessage(ctx.eventsContext(), m)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// ChangeDiscussionThreadMessageContent edits a message's body.
func (r *Repository) ChangeDiscussionThreadMessageContent(ctx RequestContext, m *model.DiscussionThreadMessage, content, reason string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.ChangeDiscussionThreadMessageContent(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if content == "" {
		return InvalidParameters
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		m.SetContent(ids.NewStringView(content), ctx.CurrentUser.ID, ctx.Now, reason)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionMessage(ctx.eventsContext(), m)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// DeleteDiscussionMessage removes a message.
func (r *Repository) DeleteDiscussionMessage(ctx RequestContext, m *model.DiscussionThreadMessage) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.DeleteDiscussionMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteMessage(m.ID) {
			status = NotFound
			return
		}
		for _, w := range r.Events.Writers() {
			w.OnDeleteDiscussionMessage(ctx.eventsContext(), m.ID)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// UpVoteDiscussionThreadMessage casts the acting user's vote as up. A
// user who already holds any vote on the message (up or down) has no
// effect: a vote must be reset before it can be recast in the other
// direction (spec.md invariant 5 "a user holds at most one vote per
// message").
func (r *Repository) UpVoteDiscussionThreadMessage(ctx RequestContext, m *model.DiscussionThreadMessage) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.UpVoteDiscussionThreadMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if state := ctx.CurrentUser.VoteStateFor(m.ID); state != model.VoteNone {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		m.VoteUp(ctx.CurrentUser.ID, ctx.Now)
		ctx.CurrentUser.SetVoteState(m.ID, model.VoteUp)
		if creator, ok := ec.Users.Get(m.CreatedBy()); ok {
			creator.AddReceivedUpVote(1)
		}
		for _, w := range r.Events.Writers() {
			w.OnDiscussionMessageVoted(ctx.eventsContext(), m, ctx.CurrentUser.ID, true)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// DownVoteDiscussionThreadMessage mirrors UpVoteDiscussionThreadMessage.
func (r *Repository) DownVoteDiscussionThreadMessage(ctx RequestContext, m *model.DiscussionThreadMessage) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.DownVoteDiscussionThreadMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if state := ctx.CurrentUser.VoteStateFor(m.ID); state != model.VoteNone {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		m.VoteDown(ctx.CurrentUser.ID, ctx.Now)
		ctx.CurrentUser.SetVoteState(m.ID, model.VoteDown)
		if creator, ok := ec.Users.Get(m.CreatedBy()); ok {
			creator.AddReceivedDownVote(1)
		}
		for _, w := range r.Events.Writers() {
			w.OnDiscussionMessageVoted(ctx.eventsContext(), m, ctx.CurrentUser.ID, false)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// ResetVoteDiscussionThreadMessage clears the acting user's prior vote,
// but only within ResetVoteExpiresIn of when that vote was cast (spec.md
// §3.3 invariant 5): past the window the vote stands and reset is
// NotAllowed.
func (r *Repository) ResetVoteDiscussionThreadMessage(ctx RequestContext, m *model.DiscussionThreadMessage) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.ResetVoteDiscussionThreadMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if ctx.CurrentUser.VoteStateFor(m.ID) == model.VoteNone {
		return NoEffect
	}
	votedAt, ok := m.VoteAt(ctx.CurrentUser.ID)
	if ok && ctx.Now > votedAt+ids.Timestamp(r.ResetVoteExpiresIn/time.Second) {
		return NotAllowed
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		m.RemoveVote(ctx.CurrentUser.ID)
		ctx.CurrentUser.SetVoteState(m.ID, model.VoteNone)
	})
	r.touchLastSeen(ctx)
	return OK
}
