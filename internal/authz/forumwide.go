package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// ForumWideAuthorization answers the per-command authorization questions
// that don't scope to a single entity: adjusting required-privilege
// thresholds, adjusting the default grant for new content, and querying
// assigned/required privileges, grounded on IForumWideAuthorization.
type ForumWideAuthorization struct{ *Authorizer }

func (a ForumWideAuthorization) check(currentUser *model.User, now ids.Timestamp, p privilege.ForumWidePrivilege) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// UpdateDiscussionThreadMessagePrivilege authorizes changing a
// message-scoped required-privilege threshold.
func (a ForumWideAuthorization) UpdateDiscussionThreadMessagePrivilege(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// UpdateDiscussionThreadPrivilege authorizes changing a thread-scoped
// required-privilege threshold.
func (a ForumWideAuthorization) UpdateDiscussionThreadPrivilege(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// UpdateDiscussionTagPrivilege authorizes changing a tag-scoped
// required-privilege threshold.
func (a ForumWideAuthorization) UpdateDiscussionTagPrivilege(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// UpdateDiscussionCategoryPrivilege authorizes changing a
// category-scoped required-privilege threshold.
func (a ForumWideAuthorization) UpdateDiscussionCategoryPrivilege(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// UpdateForumWidePrivilege authorizes changing a forum-wide
// required-privilege threshold.
func (a ForumWideAuthorization) UpdateForumWidePrivilege(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// UpdateForumWideDefaultPrivilegeLevel authorizes changing one of the
// forum's default grants: the logged-in-user baseline, or the default
// grant applied to the creator of a new thread/message.
func (a ForumWideAuthorization) UpdateForumWideDefaultPrivilegeLevel(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// GetForumWideRequiredPrivileges authorizes viewing the forum-wide
// required-privilege thresholds.
func (a ForumWideAuthorization) GetForumWideRequiredPrivileges(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumViewForumWideRequiredPrivileges)
}

// GetForumWideAssignedPrivileges authorizes viewing every forum-wide
// privilege grant currently in effect.
func (a ForumWideAuthorization) GetForumWideAssignedPrivileges(currentUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumViewForumWideAssignedPrivileges)
}

// GetUserAssignedPrivileges authorizes viewing the privileges granted to
// targetUser across every scope.
func (a ForumWideAuthorization) GetUserAssignedPrivileges(currentUser, targetUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumViewUserAssignedPrivileges)
}

// AssignForumWidePrivilege authorizes granting/revoking a forum-wide
// privilege to targetUser.
func (a ForumWideAuthorization) AssignForumWidePrivilege(currentUser, targetUser *model.User, now ids.Timestamp) Status {
	return a.check(currentUser, now, privilege.ForumAdjustForumWidePrivilege)
}

// StatisticsAuthorization answers the authorization question for the
// forum's aggregate entity-count report, grounded on
// IStatisticsAuthorization.
type StatisticsAuthorization struct{ *Authorizer }

// GetEntitiesCount authorizes the entity-count statistics report.
func (a StatisticsAuthorization) GetEntitiesCount(currentUser *model.User, now ids.Timestamp) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), privilege.ForumGetEntitiesCount)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// MetricsAuthorization answers the authorization question for the
// server-version/build metrics report, grounded on IMetricsAuthorization.
type MetricsAuthorization struct{ *Authorizer }

// GetVersion authorizes the version/build metrics report.
func (a MetricsAuthorization) GetVersion(currentUser *model.User, now ids.Timestamp) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), privilege.ForumGetVersion)
	if !allowed {
		return NotAllowed
	}
	return OK
}
