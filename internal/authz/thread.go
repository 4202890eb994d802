package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// ThreadAuthorization answers the per-command authorization questions for
// discussion-thread commands, grounded on IDiscussionThreadAuthorization.
type ThreadAuthorization struct{ *Authorizer }

func (a ThreadAuthorization) check(currentUser *model.User, now ids.Timestamp, t *model.DiscussionThread, p privilege.ThreadPrivilege) Status {
	allowed, _ := ResolveThreadPrivilege(a.EC.Grants, a.EC.ForumWide, t, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

func (a ThreadAuthorization) forumWide(currentUser *model.User, now ids.Timestamp, p privilege.ForumWidePrivilege) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// AddNewDiscussionThread authorizes creating a new thread.
func (a ThreadAuthorization) AddNewDiscussionThread(currentUser *model.User, now ids.Timestamp) Status {
	if s := a.forumWide(currentUser, now, privilege.ForumAddDiscussionThread); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, NewContent, now)
}

// ChangeDiscussionThreadName authorizes renaming a thread.
func (a ThreadAuthorization) ChangeDiscussionThreadName(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, t, privilege.ThreadChangeName); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, EditContent, now)
}

// ChangeDiscussionThreadPinDisplayOrder authorizes re-pinning a thread.
func (a ThreadAuthorization) ChangeDiscussionThreadPinDisplayOrder(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	return a.check(currentUser, now, t, privilege.ThreadChangePinDisplayOrder)
}

// DeleteDiscussionThread authorizes deleting a thread.
func (a ThreadAuthorization) DeleteDiscussionThread(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	return a.check(currentUser, now, t, privilege.ThreadDelete)
}

// MergeDiscussionThreads authorizes merging one thread into another; both
// sides must allow MERGE.
func (a ThreadAuthorization) MergeDiscussionThreads(currentUser *model.User, from, into *model.DiscussionThread, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, from, privilege.ThreadMerge); s != OK {
		return s
	}
	return a.check(currentUser, now, into, privilege.ThreadMerge)
}

// SubscribeToDiscussionThread authorizes subscribing the current user.
func (a ThreadAuthorization) SubscribeToDiscussionThread(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, t, privilege.ThreadSubscribe); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, Subscribe, now)
}

// UnsubscribeFromDiscussionThread authorizes unsubscribing the current user.
func (a ThreadAuthorization) UnsubscribeFromDiscussionThread(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	return a.check(currentUser, now, t, privilege.ThreadUnsubscribe)
}

// GetDiscussionThreadSubscribedUsers authorizes listing a thread's subscribers.
func (a ThreadAuthorization) GetDiscussionThreadSubscribedUsers(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	return a.check(currentUser, now, t, privilege.ThreadGetSubscribedUsers)
}

// AssignDiscussionThreadPrivilege authorizes granting/revoking a
// thread-scoped privilege to targetUser.
func (a ThreadAuthorization) AssignDiscussionThreadPrivilege(currentUser *model.User, t *model.DiscussionThread, targetUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, t, privilege.ThreadAdjustPrivilege)
}
