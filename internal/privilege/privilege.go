// Package privilege implements the forum's authorization primitives
// (spec.md §4.4-§4.5): the per-scope required-privilege thresholds, the
// granted-privilege store with expiry, and the scope-chain resolution
// algorithm that turns a (user, target, privilege) query into an
// allow/deny decision.
package privilege

import "github.com/chirino/forumcore/internal/ids"

// MessagePrivilege enumerates the actions gated per message, grounded on
// AuthorizationPrivileges.h's DiscussionThreadMessagePrivilege.
type MessagePrivilege int

const (
	MessageView MessagePrivilege = iota
	MessageViewRequiredPrivileges
	MessageViewAssignedPrivileges
	MessageViewCreatorUser
	MessageViewIPAddress
	MessageViewVotes
	MessageUpVote
	MessageDownVote
	MessageResetVote
	MessageAddComment
	MessageSetCommentToSolved
	MessageGetComments
	MessageChangeContent
	MessageDelete
	MessageMove
	MessageAdjustPrivilege
	// MessageViewUnapproved and MessageViewUnapprovedAttachment gate
	// visibility of not-yet-approved messages/attachments respectively,
	// grounded on AuthorizationGrantedPrivilegeStore.h's
	// checkMessageAllowViewApproval/isAllowedToViewAttachment (spec.md
	// §3.2 "Thread approval"/§6 "Serialization restriction").
	MessageViewUnapproved
	MessageViewUnapprovedAttachment
	messageCount
)

// ThreadPrivilege enumerates per-thread actions.
type ThreadPrivilege int

const (
	ThreadView ThreadPrivilege = iota
	ThreadViewRequiredPrivileges
	ThreadViewAssignedPrivileges
	ThreadGetSubscribedUsers
	ThreadSubscribe
	ThreadUnsubscribe
	ThreadAddMessage
	ThreadChangeName
	ThreadChangePinDisplayOrder
	ThreadAddTag
	ThreadRemoveTag
	ThreadDelete
	ThreadMerge
	ThreadAdjustPrivilege
	// ThreadViewUnapproved gates visibility of not-yet-approved threads,
	// grounded on AuthorizationGrantedPrivilegeStore.h's
	// checkThreadAllowViewApproval (spec.md §3.2 "Thread approval").
	ThreadViewUnapproved
	threadCount
)

// TagPrivilege enumerates per-tag actions.
type TagPrivilege int

const (
	TagView TagPrivilege = iota
	TagViewRequiredPrivileges
	TagViewAssignedPrivileges
	TagGetDiscussionThreads
	TagChangeName
	TagChangeUIBlob
	TagDelete
	TagMerge
	TagAdjustPrivilege
	tagCount
)

// CategoryPrivilege enumerates per-category actions.
type CategoryPrivilege int

const (
	CategoryView CategoryPrivilege = iota
	CategoryViewRequiredPrivileges
	CategoryViewAssignedPrivileges
	CategoryGetDiscussionThreads
	CategoryChangeName
	CategoryChangeDescription
	CategoryChangeParent
	CategoryChangeDisplayOrder
	CategoryAddTag
	CategoryRemoveTag
	CategoryDelete
	CategoryAdjustPrivilege
	categoryCount
)

// ForumWidePrivilege enumerates forum-wide actions not scoped to any
// single entity.
type ForumWidePrivilege int

const (
	ForumAddUser ForumWidePrivilege = iota
	ForumGetEntitiesCount
	ForumGetVersion
	ForumGetAllUsers
	ForumGetUserInfo
	ForumGetDiscussionThreadsOfUser
	ForumGetDiscussionThreadMessagesOfUser
	ForumGetSubscribedDiscussionThreadsOfUser
	ForumGetAllDiscussionCategories
	ForumGetDiscussionCategoriesFromRoot
	ForumGetAllDiscussionTags
	ForumGetAllDiscussionThreads
	ForumGetAllMessageComments
	ForumGetMessageCommentsOfUser
	ForumAddDiscussionCategory
	ForumAddDiscussionTag
	ForumAddDiscussionThread
	ForumChangeOwnUserName
	ForumChangeOwnUserInfo
	ForumChangeAnyUserName
	ForumChangeAnyUserInfo
	ForumDeleteAnyUser
	ForumViewForumWideRequiredPrivileges
	ForumViewForumWideAssignedPrivileges
	ForumViewUserAssignedPrivileges
	ForumAdjustForumWidePrivilege
	ForumChangeOwnUserTitle
	ForumChangeAnyUserTitle
	ForumChangeOwnUserSignature
	ForumChangeAnyUserSignature
	ForumChangeOwnUserLogo
	ForumChangeAnyUserLogo
	ForumDeleteOwnUserLogo
	ForumDeleteAnyUserLogo
	ForumNoThrottling
	forumCount
)

// calculatePrivilegeExpires resolves a grant's absolute expiry timestamp
// (spec.md §4.5, Supplemented Features resolving Open Question 2 against
// original_source/AuthorizationPrivileges.h): a zero duration means
// unlimited; a duration at least half the max representable value is
// first reduced by start to avoid signed overflow in start+duration,
// matching the original's calculatePrivilegeExpires exactly.
func calculatePrivilegeExpires(start ids.Timestamp, duration ids.PrivilegeDuration) ids.Timestamp {
	if duration == ids.UnlimitedDuration {
		return ids.Unset
	}
	const maxHalf = ids.PrivilegeDuration(1<<62 - 1)
	if duration >= maxHalf {
		duration -= ids.PrivilegeDuration(start)
	}
	return start + ids.Timestamp(duration)
}
