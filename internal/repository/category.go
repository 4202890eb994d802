package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// AddNewDiscussionCategory creates a category, optionally nested under
// parent.
func (r *Repository) AddNewDiscussionCategory(ctx RequestContext, name string, parent *model.DiscussionCategory) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if s := r.Categories.AddNewDiscussionCategory(ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if name == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		id := r.IDGen.NewId()
		cat := model.NewDiscussionCategory(id, name, ctx.Now, ids.VisitDetails{IP: ctx.IPAddress, UserAgent: ctx.UserAgent})
		if err := ec.Categories.Add(cat); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		if parent != nil {
			cat.SetParent(parent)
			parent.AddChild(cat, id)
		}
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// ChangeDiscussionCategoryName renames cat.
func (r *Repository) ChangeDiscussionCategoryName(ctx RequestContext, cat *model.DiscussionCategory, name string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.ChangeDiscussionCategoryName(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if name == "" {
		return InvalidParameters
	}
	if name == cat.Name() {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		cat.SetName(name)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// ChangeDiscussionCategoryDescription replaces cat's description.
func (r *Repository) ChangeDiscussionCategoryDescription(ctx RequestContext, cat *model.DiscussionCategory, description string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.ChangeDiscussionCategoryDescription(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if description == cat.Description() {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		cat.SetDescription(description)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// ChangeDiscussionCategoryDisplayOrder updates cat's sort position among
// its siblings.
func (r *Repository) ChangeDiscussionCategoryDisplayOrder(ctx RequestContext, cat *model.DiscussionCategory, order int) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.ChangeDiscussionCategoryDisplayOrder(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if order == cat.DisplayOrder() {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		cat.SetDisplayOrder(order)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// ChangeDiscussionCategoryParent reparents cat under newParent, or to the
// root if newParent is nil. Reparenting a category under its own
// descendant is rejected as a circular reference.
func (r *Repository) ChangeDiscussionCategoryParent(ctx RequestContext, cat, newParent *model.DiscussionCategory) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.ChangeDiscussionCategoryParent(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if newParent != nil {
		for p := newParent; p != nil; p = parentOf(p) {
			if p.ID == cat.ID {
				return CircularReferenceNotAllowed
			}
		}
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if old := cat.Parent(); old != nil {
			old.RemoveChild(cat.ID)
		}
		cat.SetParent(newParent)
		if newParent != nil {
			newParent.AddChild(cat, cat.ID)
		}
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

func parentOf(c *model.DiscussionCategory) *model.DiscussionCategory {
	return c.Parent()
}

// DeleteDiscussionCategory removes cat, detaching it from its parent and
// orphaning its children to the root.
func (r *Repository) DeleteDiscussionCategory(ctx RequestContext, cat *model.DiscussionCategory) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.DeleteDiscussionCategory(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteCategory(cat.ID) {
			status = NotFound
			return
		}
		for _, w := range r.Events.Writers() {
			w.OnDeleteDiscussionCategory(ctx.eventsContext(), cat.ID)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// AddDiscussionTagToCategory attaches tag to cat.
func (r *Repository) AddDiscussionTagToCategory(ctx RequestContext, cat *model.DiscussionCategory, tag *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.AddDiscussionTagToCategory(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if _, ok := cat.Tags()[tag.ID]; ok {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		cat.AddTag(tag, tag.ID)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}

// RemoveDiscussionTagFromCategory detaches tag from cat.
func (r *Repository) RemoveDiscussionTagFromCategory(ctx RequestContext, cat *model.DiscussionCategory, tag *model.DiscussionTag) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Categories.RemoveDiscussionTagFromCategory(ctx.CurrentUser, cat, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if _, ok := cat.Tags()[tag.ID]; !ok {
		return NoEffect
	}
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		cat.RemoveTag(tag.ID)
		for _, w := range r.Events.Writers() {
			w.OnChangeDiscussionCategory(ctx.eventsContext(), cat)
		}
	})
	r.touchLastSeen(ctx)
	return OK
}
