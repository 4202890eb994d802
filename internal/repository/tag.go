package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// AddNewDiscussionTag creates a tag.
func (r *Repository) AddNewDiscussionTag(ctx RequestContext, name string) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if s := r.Tags.AddNewDiscussionTag(ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if name == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if ec.Tags.NameExists(name) {
			status = AlreadyExists
			return
		}
		id := r.IDGen.NewId()
		tag := model.NewDiscussionTag(id, name, ctx.Now, ids.VisitDetails{IP: ctx.IPAddress, UserAgent: ctx.UserAgent})
		if err := ec.Tags.Add(tag); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewDiscussionTag(ctx.eventsContext(), tag)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// AddDiscussionTagToThread attaches tag to thread. Already-attached is a
// no-op rather than an error (spec.md invariant: a thread's tag set is a
// set, not a multiset).
func (r *Repository) AddDiscussionTagToThread(ctx RequestContext, thread *model.DiscussionThread, tag *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.AddDiscussionTagToThread(ctx.CurrentUser, tag, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if s := r.Threads.ChangeDiscussionThreadName(ctx.CurrentUser, thread, ctx.Now); s == authz.Throttled {
		return Throttled
	}
	if thread.HasTag(tag.ID) {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		thread.AddTag(tag, tag.ID)
		tag.AddThread(thread, thread.ID)
	})
	r.touchLastSeen(ctx)
	return OK
}

// RemoveDiscussionTagFromThread detaches tag from thread.
func (r *Repository) RemoveDiscussionTagFromThread(ctx RequestContext, thread *model.DiscussionThread, tag *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if !thread.HasTag(tag.ID) {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		thread.RemoveTag(tag.ID)
		tag.RemoveThread(thread.ID)
	})
	r.touchLastSeen(ctx)
	return OK
}

// ChangeDiscussionTagName renames tag.
func (r *Repository) ChangeDiscussionTagName(ctx RequestContext, tag *model.DiscussionTag, name string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.ChangeDiscussionTagName(ctx.CurrentUser, tag, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if name == "" {
		return InvalidParameters
	}
	if name == tag.Name() {
		return NoEffect
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if ec.Tags.NameExists(name) {
			status = AlreadyExists
			return
		}
		tag.SetName(name)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionTag(ctx.eventsContext(), tag)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// ChangeDiscussionTagUIBlob replaces tag's opaque UI blob.
func (r *Repository) ChangeDiscussionTagUIBlob(ctx RequestContext, tag *model.DiscussionTag, blob string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.ChangeDiscussionTagUiBlob(ctx.CurrentUser, tag, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		tag.SetUIBlob(blob)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionTag(ctx.eventsContext(), tag)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// DeleteDiscussionTag removes tag, detaching it from every thread that
// carried it.
func (r *Repository) DeleteDiscussionTag(ctx RequestContext, tag *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.DeleteDiscussionTag(ctx.CurrentUser, tag, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteTag(tag.ID) {
			status = NotFound
			return
		}
		for _, w := range r.Events.Writers() {
			w.OnDeleteDiscussionTag(ctx.eventsContext(), tag.ID)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// MergeDiscussionTags folds from into into: every thread carrying from
// gains into (if it doesn't already have it) and loses from, then from
// is deleted.
func (r *Repository) MergeDiscussionTags(ctx RequestContext, from, into *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Tags.MergeDiscussionTags(ctx.CurrentUser, from, into, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if from.ID == into.ID {
		return InvalidParameters
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		for threadID, threadPtr := range from.Threads() {
			if !threadPtr.HasTag(into.ID) {
				threadPtr.AddTag(into, into.ID)
				into.AddThread(threadPtr, threadID)
			}
			threadPtr.RemoveTag(from.ID)
		}
		ec.DeleteTag(from.ID)
		for _, w := range r.Events.Writers() {
			w.OnDeleteDiscussionTag(ctx.eventsContext(), from.ID)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}
