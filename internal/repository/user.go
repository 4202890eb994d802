package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

func statusFromEntityCollectionError(err error) Status {
	switch err {
	case nil:
		return OK
	case entitycollection.ErrAlreadyExists:
		return AlreadyExists
	case entitycollection.ErrNotFound:
		return NotFound
	case entitycollection.ErrCircularReference:
		return CircularReferenceNotAllowed
	default:
		return InvalidParameters
	}
}

// AddNewUser registers a new account, authorized as an anonymous
// visitor unless the forum requires an existing user to add users
// (spec.md §3.1 "Registration").
func (r *Repository) AddNewUser(ctx RequestContext, name, auth string, details ids.VisitDetails) (Status, ids.Id) {
	actor := ctx.CurrentUser
	if actor == nil {
		actor = &model.User{ID: ids.Empty}
	}
	if s := r.Users.AddNewUser(actor, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ids.Empty
	}
	if name == "" {
		return InvalidParameters, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if auth != "" {
			for _, u := range ec.Users.ByName() {
				if u.Auth() == auth {
					status = UserWithSameAuthAlreadyExists
					return
				}
			}
		}
		if ec.Users.NameExists(name) {
			status = AlreadyExists
			return
		}
		id := r.IDGen.NewId()
		u := model.NewUser(id, name, ctx.Now, details)
		u.SetAuth(auth)
		if err := ec.Users.Add(u); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnAddNewUser(ctx.eventsContext(), u)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// GetUserByID looks up a user. It applies no authorization check.
func (r *Repository) GetUserByID(ctx RequestContext, id ids.Id) (Status, *model.User) {
	var result *model.User
	r.Guard.Read(func(ec *entitycollection.EntityCollection) {
		result, _ = ec.Users.Get(id)
	})
	r.touchLastSeen(ctx)
	if result == nil {
		return NotFound, nil
	}
	return OK, result
}

// ChangeOwnUserName renames the acting user.
func (r *Repository) ChangeOwnUserName(ctx RequestContext, name string) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Users.ChangeUserName(ctx.CurrentUser, ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	if name == "" {
		return InvalidParameters
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if ec.Users.NameExists(name) {
			status = AlreadyExists
			return
		}
		ctx.CurrentUser.SetName(name)
		for _, w := range r.Events.Writers() {
			w.OnChangeUser(ctx.eventsContext(), ctx.CurrentUser)
		}
	})
	r.touchLastSeen(ctx)
	return status
}

// DeleteUser removes target's account and cascades to their content
// (spec.md §3.4).
func (r *Repository) DeleteUser(ctx RequestContext, target *model.User) Status {
	if ctx.CurrentUser == nil {
		return Unauthorized
	}
	if s := r.Users.DeleteUser(ctx.CurrentUser, target, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s)
	}
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		if !ec.DeleteUser(target.ID) {
			status = NotFound
			return
		}
		for _, w := range r.Events.Writers() {
			w.OnDeleteUser(ctx.eventsContext(), target.ID)
		}
	})
	r.touchLastSeen(ctx)
	return status
}
