package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// DirectWrite exposes the replay-only construction path used when a
// snapshot is loaded back into an empty entity collection: no
// authorization check, no throttle accounting, no field validation, and
// no observer notification (the snapshot itself is the record of what
// happened). Every method takes the ids and timestamps recorded at
// original-write time instead of generating them, so replay reproduces
// the exact same entity graph. A record referencing a parent that isn't
// present yet returns NotFound without mutating anything.
type DirectWrite struct {
	r *Repository
}

// DirectWrite returns the replay-only command surface for r.
func (r *Repository) DirectWrite() DirectWrite { return DirectWrite{r: r} }

// AddUser inserts a user with a previously-assigned id and creation time.
func (d DirectWrite) AddUser(id ids.Id, name, auth string, created ids.Timestamp, details ids.VisitDetails) (Status, *model.User) {
	var u *model.User
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		u = model.NewUser(id, name, created, details)
		u.SetAuth(auth)
		if err := ec.Users.Add(u); err != nil {
			status = statusFromEntityCollectionError(err)
			u = nil
		}
	})
	return status, u
}

// DeleteUser removes the user with id, cascading the same way the
// authorized command does.
func (d DirectWrite) DeleteUser(id ids.Id) Status {
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteUser(id) {
			status = NotFound
		}
	})
	return status
}

// AddDiscussionThread inserts a thread and attaches its initial tags.
func (d DirectWrite) AddDiscussionThread(id ids.Id, name string, createdBy ids.Id, created ids.Timestamp, details ids.VisitDetails, tagIDs []ids.Id) (Status, *model.DiscussionThread) {
	var t *model.DiscussionThread
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		creator, ok := ec.Users.Get(createdBy)
		if !ok {
			status = NotFound
			return
		}
		t = model.NewDiscussionThread(id, name, createdBy, created, details)
		if err := ec.Threads.Add(t); err != nil {
			status = statusFromEntityCollectionError(err)
			t = nil
			return
		}
		for _, tagID := range tagIDs {
			if tag, ok := ec.Tags.Get(tagID); ok {
				t.AddTag(tag, tagID)
				tag.AddThread(t, id)
			}
		}
		creator.AddOwnThread(t, id)
	})
	return status, t
}

// AddDiscussionMessage inserts a message into an already-replayed thread.
func (d DirectWrite) AddDiscussionMessage(id ids.Id, threadID ids.Id, content string, createdBy ids.Id, created ids.Timestamp, details ids.VisitDetails) (Status, *model.DiscussionThreadMessage) {
	var m *model.DiscussionThreadMessage
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		thread, ok := ec.Threads.Get(threadID)
		if !ok {
			status = NotFound
			return
		}
		creator, ok := ec.Users.Get(createdBy)
		if !ok {
			status = NotFound
			return
		}
		m = model.NewDiscussionThreadMessage(id, ids.NewStringView(content), createdBy, created, details, thread)
		m.SetIPAddress(details.IP)
		if err := ec.Messages.Add(m); err != nil {
			status = statusFromEntityCollectionError(err)
			m = nil
			return
		}
		thread.AddMessage(m)
		creator.AddOwnMessage(m, id)
	})
	return status, m
}

// AddDiscussionTag inserts a tag with a previously-assigned id.
func (d DirectWrite) AddDiscussionTag(id ids.Id, name string, created ids.Timestamp, details ids.VisitDetails) (Status, *model.DiscussionTag) {
	var t *model.DiscussionTag
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		t = model.NewDiscussionTag(id, name, created, details)
		if err := ec.Tags.Add(t); err != nil {
			status = statusFromEntityCollectionError(err)
			t = nil
		}
	})
	return status, t
}

// AddDiscussionCategory inserts a category and, if parentID is non-empty,
// attaches it under its already-replayed parent.
func (d DirectWrite) AddDiscussionCategory(id ids.Id, name string, created ids.Timestamp, details ids.VisitDetails, parentID ids.Id) (Status, *model.DiscussionCategory) {
	var cat *model.DiscussionCategory
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		var parent *model.DiscussionCategory
		if parentID != ids.Empty {
			p, ok := ec.Categories.Get(parentID)
			if !ok {
				status = NotFound
				return
			}
			parent = p
		}
		cat = model.NewDiscussionCategory(id, name, created, details)
		if err := ec.Categories.Add(cat); err != nil {
			status = statusFromEntityCollectionError(err)
			cat = nil
			return
		}
		if parent != nil {
			cat.SetParent(parent)
			parent.AddChild(cat, id)
		}
	})
	return status, cat
}

// AssignForumWidePrivilege applies a forum-wide grant without running the
// granting user's own privilege check, the same shortcut the authorized
// assignment command takes once that check has passed.
func (d DirectWrite) AssignForumWidePrivilege(target ids.Id, p privilege.ForumWidePrivilege, value ids.PrivilegeValue, duration ids.PrivilegeDuration, now ids.Timestamp) Status {
	status := OK
	d.r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if _, ok := ec.Users.Get(target); !ok {
			status = NotFound
			return
		}
		assign(ec.Grants.ForumWide, authz.ForumWideEntityID, target, p, value, now, duration)
	})
	return status
}
