package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// UserAuthorization answers the per-command authorization questions for
// user management commands, grounded on IUserAuthorization
// (Authorization.h).
type UserAuthorization struct{ *Authorizer }

func (a UserAuthorization) forumWide(currentUser *model.User, now ids.Timestamp, p privilege.ForumWidePrivilege) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// GetUsers authorizes listing/paginating every user.
func (a UserAuthorization) GetUsers(currentUser *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumGetAllUsers)
}

// AddNewUser authorizes account creation; throttled under NewContent.
func (a UserAuthorization) AddNewUser(currentUser *model.User, now ids.Timestamp) Status {
	if s := a.forumWide(currentUser, now, privilege.ForumAddUser); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, NewContent, now)
}

// ChangeUserName authorizes renaming target; self-renames use the "own"
// privilege, renaming someone else requires the "any" privilege.
func (a UserAuthorization) ChangeUserName(currentUser, target *model.User, now ids.Timestamp) Status {
	p := privilege.ForumChangeAnyUserName
	if currentUser.ID == target.ID {
		p = privilege.ForumChangeOwnUserName
	}
	if s := a.forumWide(currentUser, now, p); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, EditContent, now)
}

// ChangeUserInfo authorizes editing a user's free-form info/title/
// signature/logo fields.
func (a UserAuthorization) ChangeUserInfo(currentUser, target *model.User, now ids.Timestamp) Status {
	p := privilege.ForumChangeAnyUserInfo
	if currentUser.ID == target.ID {
		p = privilege.ForumChangeOwnUserInfo
	}
	if s := a.forumWide(currentUser, now, p); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, EditContent, now)
}

// DeleteUser authorizes removing a user account (always "any", there is
// no self-delete privilege distinction in the original).
func (a UserAuthorization) DeleteUser(currentUser, target *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumDeleteAnyUser)
}

// GetUserAssignedPrivileges authorizes viewing which privileges have been
// granted to target.
func (a UserAuthorization) GetUserAssignedPrivileges(currentUser, target *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumViewUserAssignedPrivileges)
}

// AssignForumWidePrivilege authorizes a privilege grant/revoke targeting
// a user at forum-wide scope.
func (a UserAuthorization) AssignForumWidePrivilege(currentUser, target *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}
