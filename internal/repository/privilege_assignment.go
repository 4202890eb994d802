package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// assign grants value/duration to userID on entityID within store, or
// revokes any existing grant when value carries no value.
func assign[P comparable](store *privilege.Store[P], entityID, userID ids.Id, p P, value ids.PrivilegeValue, now ids.Timestamp, duration ids.PrivilegeDuration) {
	if !value.Ok {
		store.Revoke(entityID, userID, p)
		return
	}
	store.Grant(entityID, userID, p, value, now, duration)
}

// AssignDiscussionThreadMessagePrivilege grants or revokes targetUser's
// value for privilege p on m. value.Ok false revokes.
func (r *Repository) AssignDiscussionThreadMessagePrivilege(ctx RequestContext, m *model.DiscussionThreadMessage, targetUser *model.User, p privilege.MessagePrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Messages.AssignDiscussionThreadMessagePrivilege(ctx.CurrentUser, m, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		assign(ec.Grants.Message, m.ID, targetUser.ID, p, value, ctx.Now, duration)
		for _, w := range r.Events.Writers() {
			w.OnPrivilegeAssigned(ctx.eventsContext(), m.ID, targetUser.ID, value)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// AssignDiscussionThreadPrivilege grants or revokes targetUser's value
// for privilege p on t.
func (r *Repository) AssignDiscussionThreadPrivilege(ctx RequestContext, t *model.DiscussionThread, targetUser *model.User, p privilege.ThreadPrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Threads.AssignDiscussionThreadPrivilege(ctx.CurrentUser, t, targetUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		assign(ec.Grants.Thread, t.ID, targetUser.ID, p, value, ctx.Now, duration)
		for _, w := range r.Events.Writers() {
			w.OnPrivilegeAssigned(ctx.eventsContext(), t.ID, targetUser.ID, value)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// AssignDiscussionTagPrivilege grants or revokes targetUser's value for
// privilege p on tag.
func (r *Repository) AssignDiscussionTagPrivilege(ctx RequestContext, tag *model.DiscussionTag, targetUser *model.User, p privilege.TagPrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.AssignDiscussionTagPrivilege(ctx.CurrentUser, tag, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		assign(ec.Grants.Tag, tag.ID, targetUser.ID, p, value, ctx.Now, duration)
		for _, w := range r.Events.Writers() {
			w.OnPrivilegeAssigned(ctx.eventsContext(), tag.ID, targetUser.ID, value)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// AssignDiscussionCategoryPrivilege grants or revokes targetUser's value
// for privilege p on cat.
func (r *Repository) AssignDiscussionCategoryPrivilege(ctx RequestContext, cat *model.DiscussionCategory, targetUser *model.User, p privilege.CategoryPrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.AssignDiscussionCategoryPrivilege(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		assign(ec.Grants.Category, cat.ID, targetUser.ID, p, value, ctx.Now, duration)
		for _, w := range r.Events.Writers() {
			w.OnPrivilegeAssigned(ctx.eventsContext(), cat.ID, targetUser.ID, value)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// AssignForumWidePrivilege grants or revokes targetUser's forum-wide
// value for privilege p, checked via ForumWideAuthorization rather than
// any single-entity façade.
func (r *Repository) AssignForumWidePrivilege(ctx RequestContext, targetUser *model.User, p privilege.ForumWidePrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.ForumWide.AssignForumWidePrivilege(ctx.CurrentUser, targetUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		assign(ec.Grants.ForumWide, authz.ForumWideEntityID, targetUser.ID, p, value, ctx.Now, duration)
		for _, w := range r.Events.Writers() {
			w.OnPrivilegeAssigned(ctx.eventsContext(), authz.ForumWideEntityID, targetUser.ID, value)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}
