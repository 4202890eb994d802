package repository

import (
	"sort"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// AddMessageComment attaches a comment to m.
func (r *Repository) AddMessageComment(ctx RequestContext, m *model.DiscussionThreadMessage, content string) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if s := r.Messages.AddCommentToDiscussionThreadMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if content == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		id := r.IDGen.NewId()
		c := model.NewMessageComment(id, content, ctx.CurrentUser.ID, ctx.Now,
			ids.VisitDetails{IP: ctx.IPAddress, UserAgent: ctx.UserAgent}, m)
		if err := ec.Comments.Add(c); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		m.AddComment(c, id)
		ctx.CurrentUser.AddOwnComment(c, id)
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewMessageComment(ctx.eventsContext(), c)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// SolveMessageComment marks comment as the accepted solution for its
// parent message, replacing any previously accepted comment. Marking an
// already-solved comment is a no-op.
func (r *Repository) SolveMessageComment(ctx RequestContext, m *model.DiscussionThreadMessage, comment *model.MessageComment) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.SetMessageCommentToSolved(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if m.SolvedCommentID() == comment.ID {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		m.SetSolved(comment.ID)
		comment.SetSolved(true)
		for _, w := range r.Events.Writers() {
			w.OnMessageCommentSolved(ctx.eventsContext(), comment)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// GetMessageComments lists m's comments ordered by creation time.
func (r *Repository) GetMessageComments(ctx RequestContext, m *model.DiscussionThreadMessage) (Status, []*model.MessageComment) {
	if ctx.CurrentUser == nil {
		return Unauthorized, nil
	}
	if s := r.Messages.GetMessageCommentsOfDiscussionThreadMessage(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), nil
	}
	comments := make([]*model.MessageComment, 0, len(m.Comments()))
	for _, c := range m.Comments() {
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created() < comments[j].Created() })
	r.touchLastSeen(ctx)
	return OK, comments
}
