package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// ForumWideEntityID is the sentinel id under which forum-wide grants and
// fallback required-privilege thresholds are stored in every per-scope
// Store (spec.md §4.5: forum-wide is always the outermost link in every
// chain). There is exactly one forum, so the distinguished empty id
// doubles as its identity without risk of colliding with a real user,
// thread, tag, category, or message id in the same store.
var ForumWideEntityID = ids.Empty

// ResolveMessagePrivilege walks the message's full scope chain (message
// -> parent thread -> thread's tags -> forum-wide) and reports whether p
// is allowed for userID (spec.md §4.5).
func ResolveMessagePrivilege(grants *privilege.GrantedPrivilegeStore, forumWide *privilege.ForumWideStore, m *model.DiscussionThreadMessage, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, p privilege.MessagePrivilege) (bool, int) {
	thread := m.ParentThread()

	chain := []ids.Id{m.ID}
	if thread != nil {
		chain = append(chain, thread.ID)
		for tagID := range thread.Tags() {
			chain = append(chain, tagID)
		}
	}
	chain = append(chain, ForumWideEntityID)

	required := func(i int) (ids.PrivilegeValue, bool) {
		switch {
		case i == 0:
			return ids.NoPrivilegeValue, false // a message carries no required-privilege store of its own
		case thread != nil && chain[i] == thread.ID:
			v := thread.Required.Message.Get(p)
			return v, v.Ok
		case chain[i] == ForumWideEntityID:
			v := forumWide.Message.Get(p)
			return v, v.Ok
		default:
			if tag, ok := lookupTag(thread, chain[i]); ok {
				v := tag.Required.Message.Get(p)
				return v, v.Ok
			}
			return ids.NoPrivilegeValue, false
		}
	}
	return privilege.Resolve(grants.Message, chain, userID, now, defaultPositive, required, p)
}

func lookupTag(thread *model.DiscussionThread, id ids.Id) (*model.DiscussionTag, bool) {
	if thread == nil {
		return nil, false
	}
	t, ok := thread.Tags()[id]
	return t, ok
}

// ResolveThreadPrivilege walks the thread's scope chain (thread ->
// thread's tags -> forum-wide).
func ResolveThreadPrivilege(grants *privilege.GrantedPrivilegeStore, forumWide *privilege.ForumWideStore, t *model.DiscussionThread, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, p privilege.ThreadPrivilege) (bool, int) {
	chain := []ids.Id{t.ID}
	for tagID := range t.Tags() {
		chain = append(chain, tagID)
	}
	chain = append(chain, ForumWideEntityID)

	required := func(i int) (ids.PrivilegeValue, bool) {
		switch {
		case chain[i] == t.ID:
			v := t.Required.Thread.Get(p)
			return v, v.Ok
		case chain[i] == ForumWideEntityID:
			v := forumWide.Thread.Get(p)
			return v, v.Ok
		default:
			if tag, ok := t.Tags()[chain[i]]; ok {
				v := tag.Required.Thread.Get(p)
				return v, v.Ok
			}
			return ids.NoPrivilegeValue, false
		}
	}
	return privilege.Resolve(grants.Thread, chain, userID, now, defaultPositive, required, p)
}

// ResolveTagPrivilege walks the tag's scope chain (tag -> forum-wide).
func ResolveTagPrivilege(grants *privilege.GrantedPrivilegeStore, forumWide *privilege.ForumWideStore, tag *model.DiscussionTag, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, p privilege.TagPrivilege) (bool, int) {
	chain := []ids.Id{tag.ID, ForumWideEntityID}
	required := func(i int) (ids.PrivilegeValue, bool) {
		if chain[i] == tag.ID {
			v := tag.Required.Tag.Get(p)
			return v, v.Ok
		}
		v := forumWide.Tag.Get(p)
		return v, v.Ok
	}
	return privilege.Resolve(grants.Tag, chain, userID, now, defaultPositive, required, p)
}

// ResolveCategoryPrivilege walks the category's scope chain (category ->
// each ancestor category -> forum-wide).
func ResolveCategoryPrivilege(grants *privilege.GrantedPrivilegeStore, forumWide *privilege.ForumWideStore, cat *model.DiscussionCategory, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, p privilege.CategoryPrivilege) (bool, int) {
	var ancestors []*model.DiscussionCategory
	chain := []ids.Id{cat.ID}
	for c := cat.Parent(); c != nil; c = c.Parent() {
		ancestors = append(ancestors, c)
		chain = append(chain, c.ID)
	}
	chain = append(chain, ForumWideEntityID)

	required := func(i int) (ids.PrivilegeValue, bool) {
		if chain[i] == cat.ID {
			v := cat.Required.Category.Get(p)
			return v, v.Ok
		}
		if chain[i] == ForumWideEntityID {
			v := forumWide.Category.Get(p)
			return v, v.Ok
		}
		for _, a := range ancestors {
			if a.ID == chain[i] {
				v := a.Required.Category.Get(p)
				return v, v.Ok
			}
		}
		return ids.NoPrivilegeValue, false
	}
	return privilege.Resolve(grants.Category, chain, userID, now, defaultPositive, required, p)
}

// ResolveForumWidePrivilege checks a forum-wide privilege, the
// chain-of-one base case (spec.md §4.5: "ForumWide -> forum-wide only").
func ResolveForumWidePrivilege(grants *privilege.GrantedPrivilegeStore, forumWide *privilege.ForumWideStore, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, p privilege.ForumWidePrivilege) (bool, int) {
	chain := []ids.Id{ForumWideEntityID}
	required := func(i int) (ids.PrivilegeValue, bool) {
		v := forumWide.ForumWide.Get(p)
		return v, v.Ok
	}
	return privilege.Resolve(grants.ForumWide, chain, userID, now, defaultPositive, required, p)
}
