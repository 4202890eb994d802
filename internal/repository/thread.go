package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// AddNewDiscussionThread creates a thread with the given name, attaching
// every tag id found in the collection (unknown ids are skipped rather
// than failing the whole command, matching the original's best-effort
// tag attachment at creation time).
func (r *Repository) AddNewDiscussionThread(ctx RequestContext, name string, tagIDs []ids.Id) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if s := r.Threads.AddNewDiscussionThread(ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if name == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		id := r.IDGen.NewId()
		t := model.NewDiscussionThread(id, name, ctx.CurrentUser.ID, ctx.Now, ids.VisitDetails{IP: ctx.IPAddress, UserAgent: ctx.UserAgent})
		if err := ec.Threads.Add(t); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		for _, tagID := range tagIDs {
			if tag, ok := ec.Tags.Get(tagID); ok {
				t.AddTag(tag, tagID)
				tag.AddThread(t, id)
			}
		}
		ctx.CurrentUser.AddOwnThread(t, id)
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewDiscussionThread(ctx.eventsContext(), t)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// GetDiscussionThreadByID looks up a thread, applying no visibility
// filtering itself — the caller consults internal/serialize's
// Restriction before emitting the result.
func (r *Repository) GetDiscussionThreadByID(ctx RequestContext, id ids.Id) (Status, *model.DiscussionThread) {
	var result *model.DiscussionThread
	r.Guard.Read(func(ec *entitycollection.EntityCollection) {
		result, _ = ec.Threads.Get(id)
		if result != nil {
			result.AddVisitor()
		}
	})
	r.touchLastSeen(ctx)
	if result == nil {
		return NotFound, nil
	}
	return OK, result
}

// ChangeDiscussionThreadName renames a thread.
func (r *Repository) ChangeDiscussionThreadName(ctx RequestContext, t *model.DiscussionThread, name string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Threads.ChangeDiscussionThreadName(ctx.CurrentUser, t, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if name == "" {
		return InvalidParameters
	}
	if name == t.Name() {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		t.SetName(name)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionThread(ctx.eventsContext(), t)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// DeleteDiscussionThread removes a thread and cascades to its content.
func (r *Repository) DeleteDiscussionThread(ctx RequestContext, t *model.DiscussionThread) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Threads.DeleteDiscussionThread(ctx.CurrentUser, t, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteThread(t.ID) {
			status = NotFound
			return
		}
		for _, w := range r.Events.Writers() {
			w.OnDeleteDiscussionThread(ctx.eventsContext(), t.ID)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// SubscribeToDiscussionThread subscribes the acting user to t.
func (r *Repository) SubscribeToDiscussionThread(ctx RequestContext, t *model.DiscussionThread) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Threads.SubscribeToDiscussionThread(ctx.CurrentUser, t, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if ctx.CurrentUser.IsSubscribed(t.ID) {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		t.AddSubscriber(ctx.CurrentUser, ctx.CurrentUser.ID)
		ctx.CurrentUser.Subscribe(t, t.ID)
	})
	r.touchLastSeen(ctx)
	return OK
}

// UnsubscribeFromDiscussionThread removes the acting user's subscription.
func (r *Repository) UnsubscribeFromDiscussionThread(ctx RequestContext, t *model.DiscussionThread) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Threads.UnsubscribeFromDiscussionThread(ctx.CurrentUser, t, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if !ctx.CurrentUser.IsSubscribed(t.ID) {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		t.RemoveSubscriber(ctx.CurrentUser.ID)
		ctx.CurrentUser.Unsubscribe(t.ID)
	})
	r.touchLastSeen(ctx)
	return OK
}
