package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// TagAuthorization answers the per-command authorization questions for
// discussion-tag commands, grounded on IDiscussionTagAuthorization.
type TagAuthorization struct{ *Authorizer }

func (a TagAuthorization) check(currentUser *model.User, now ids.Timestamp, tag *model.DiscussionTag, p privilege.TagPrivilege) Status {
	allowed, _ := ResolveTagPrivilege(a.EC.Grants, a.EC.ForumWide, tag, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

func (a TagAuthorization) forumWide(currentUser *model.User, now ids.Timestamp, p privilege.ForumWidePrivilege) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// AddNewDiscussionTag authorizes creating a tag.
func (a TagAuthorization) AddNewDiscussionTag(currentUser *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumAddDiscussionTag)
}

// ChangeDiscussionTagName authorizes renaming a tag.
func (a TagAuthorization) ChangeDiscussionTagName(currentUser *model.User, tag *model.DiscussionTag, now ids.Timestamp) Status {
	return a.check(currentUser, now, tag, privilege.TagChangeName)
}

// ChangeDiscussionTagUiBlob authorizes changing a tag's opaque UI blob.
func (a TagAuthorization) ChangeDiscussionTagUiBlob(currentUser *model.User, tag *model.DiscussionTag, now ids.Timestamp) Status {
	return a.check(currentUser, now, tag, privilege.TagChangeUIBlob)
}

// DeleteDiscussionTag authorizes deleting a tag.
func (a TagAuthorization) DeleteDiscussionTag(currentUser *model.User, tag *model.DiscussionTag, now ids.Timestamp) Status {
	return a.check(currentUser, now, tag, privilege.TagDelete)
}

// AddDiscussionTagToThread authorizes attaching tag to thread; checked
// against the tag (the thread side is covered by ThreadAuthorization when
// the command also needs ADD_TAG on the thread).
func (a TagAuthorization) AddDiscussionTagToThread(currentUser *model.User, tag *model.DiscussionTag, now ids.Timestamp) Status {
	return a.check(currentUser, now, tag, privilege.TagGetDiscussionThreads)
}

// MergeDiscussionTags authorizes merging one tag into another.
func (a TagAuthorization) MergeDiscussionTags(currentUser *model.User, from, into *model.DiscussionTag, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, from, privilege.TagMerge); s != OK {
		return s
	}
	return a.check(currentUser, now, into, privilege.TagMerge)
}

// AssignDiscussionTagPrivilege authorizes granting/revoking a tag-scoped
// privilege.
func (a TagAuthorization) AssignDiscussionTagPrivilege(currentUser *model.User, tag *model.DiscussionTag, now ids.Timestamp) Status {
	return a.check(currentUser, now, tag, privilege.TagAdjustPrivilege)
}

// CategoryAuthorization answers the per-command authorization questions
// for discussion-category commands, grounded on
// IDiscussionCategoryAuthorization.
type CategoryAuthorization struct{ *Authorizer }

func (a CategoryAuthorization) check(currentUser *model.User, now ids.Timestamp, cat *model.DiscussionCategory, p privilege.CategoryPrivilege) Status {
	allowed, _ := ResolveCategoryPrivilege(a.EC.Grants, a.EC.ForumWide, cat, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

func (a CategoryAuthorization) forumWide(currentUser *model.User, now ids.Timestamp, p privilege.ForumWidePrivilege) Status {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// AddNewDiscussionCategory authorizes creating a category.
func (a CategoryAuthorization) AddNewDiscussionCategory(currentUser *model.User, now ids.Timestamp) Status {
	return a.forumWide(currentUser, now, privilege.ForumAddDiscussionCategory)
}

// ChangeDiscussionCategoryName authorizes renaming a category.
func (a CategoryAuthorization) ChangeDiscussionCategoryName(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryChangeName)
}

// ChangeDiscussionCategoryDescription authorizes editing a category's
// description.
func (a CategoryAuthorization) ChangeDiscussionCategoryDescription(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryChangeDescription)
}

// ChangeDiscussionCategoryParent authorizes reparenting a category.
func (a CategoryAuthorization) ChangeDiscussionCategoryParent(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryChangeParent)
}

// ChangeDiscussionCategoryDisplayOrder authorizes reordering a category
// among its siblings.
func (a CategoryAuthorization) ChangeDiscussionCategoryDisplayOrder(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryChangeDisplayOrder)
}

// DeleteDiscussionCategory authorizes deleting a category.
func (a CategoryAuthorization) DeleteDiscussionCategory(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryDelete)
}

// AddDiscussionTagToCategory authorizes attaching a tag to a category.
func (a CategoryAuthorization) AddDiscussionTagToCategory(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryAddTag)
}

// RemoveDiscussionTagFromCategory authorizes detaching a tag from a
// category.
func (a CategoryAuthorization) RemoveDiscussionTagFromCategory(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryRemoveTag)
}

// AssignDiscussionCategoryPrivilege authorizes granting/revoking a
// category-scoped privilege.
func (a CategoryAuthorization) AssignDiscussionCategoryPrivilege(currentUser *model.User, cat *model.DiscussionCategory, now ids.Timestamp) Status {
	return a.check(currentUser, now, cat, privilege.CategoryAdjustPrivilege)
}
