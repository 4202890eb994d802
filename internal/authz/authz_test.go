package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

func newTestCollection() *entitycollection.EntityCollection {
	return entitycollection.New(collation.New("en"))
}

func mustAddUser(t *testing.T, ec *entitycollection.EntityCollection, idByte byte, name string) *model.User {
	t.Helper()
	u := model.NewUser(ids.Id{idByte}, name, ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Users.Add(u))
	return u
}

func mustAddThread(t *testing.T, ec *entitycollection.EntityCollection, idByte byte, name string, creator *model.User) *model.DiscussionThread {
	t.Helper()
	th := model.NewDiscussionThread(ids.Id{idByte}, name, creator.ID, ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Threads.Add(th))
	creator.AddOwnThread(th, th.ID)
	return th
}

func mustAddMessage(t *testing.T, ec *entitycollection.EntityCollection, idByte byte, content string, creator *model.User, thread *model.DiscussionThread, at ids.Timestamp) *model.DiscussionThreadMessage {
	t.Helper()
	m := model.NewDiscussionThreadMessage(ids.Id{idByte}, ids.NewStringView(content), creator.ID, at, ids.VisitDetails{}, thread)
	require.NoError(t, ec.Messages.Add(m))
	thread.AddMessage(m)
	creator.AddOwnMessage(m, m.ID)
	return m
}

func newAuthorizer(ec *entitycollection.EntityCollection) *Authorizer {
	limits := [bucketCount]Limit{
		NewContent:     {MaxCount: 2, PeriodSeconds: 60},
		EditContent:    {MaxCount: 0, PeriodSeconds: 60},
		EditPrivileges: {MaxCount: 0, PeriodSeconds: 60},
		Vote:           {MaxCount: 1, PeriodSeconds: 60},
		Subscribe:      {MaxCount: 0, PeriodSeconds: 60},
	}
	return NewAuthorizer(ec, limits)
}

func TestMessageAuthorizationDeniesVoteWithoutGrant(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")
	voter := mustAddUser(t, ec, 2, "bob")
	th := mustAddThread(t, ec, 3, "thread", author)
	m := mustAddMessage(t, ec, 4, "hello", author, th, ids.Now())

	a := MessageAuthorization{newAuthorizer(ec)}
	status := a.UpVoteDiscussionThreadMessage(voter, m, ids.Now())
	assert.Equal(t, NotAllowed, status)
}

func TestMessageAuthorizationRejectsSelfVoteEvenWithGrant(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")
	th := mustAddThread(t, ec, 2, "thread", author)
	m := mustAddMessage(t, ec, 3, "hello", author, th, ids.Now())

	now := ids.Now()
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))
	ec.Grants.Message.Grant(m.ID, author.ID, privilege.MessageUpVote, ids.SomePrivilegeValue(100), now, ids.UnlimitedDuration)

	a := MessageAuthorization{newAuthorizer(ec)}
	status := a.UpVoteDiscussionThreadMessage(author, m, now)
	assert.Equal(t, NotAllowed, status)
}

func TestMessageAuthorizationAllowsVoteOnceGrantedAndThrottlesSecondVote(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")
	voter := mustAddUser(t, ec, 2, "bob")
	th := mustAddThread(t, ec, 3, "thread", author)
	m1 := mustAddMessage(t, ec, 4, "hello", author, th, ids.Now())
	m2 := mustAddMessage(t, ec, 5, "world", author, th, ids.Now())

	now := ids.Now()
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))
	ec.Grants.Message.Grant(th.ID, voter.ID, privilege.MessageUpVote, ids.SomePrivilegeValue(1), now, ids.UnlimitedDuration)

	a := MessageAuthorization{newAuthorizer(ec)}
	status := a.UpVoteDiscussionThreadMessage(voter, m1, now)
	require.Equal(t, OK, status)

	status = a.UpVoteDiscussionThreadMessage(voter, m2, now)
	assert.Equal(t, Throttled, status)
}

func TestThreadLevelGrantAppliesToAllMessagesInThread(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")
	moderator := mustAddUser(t, ec, 2, "mod")
	th := mustAddThread(t, ec, 3, "thread", author)
	m := mustAddMessage(t, ec, 4, "hello", author, th, ids.Now())

	now := ids.Now()
	ec.ForumWide.Message.Set(privilege.MessageDelete, ids.SomePrivilegeValue(1))
	ec.Grants.Message.Grant(th.ID, moderator.ID, privilege.MessageDelete, ids.SomePrivilegeValue(100), now, ids.UnlimitedDuration)

	a := MessageAuthorization{newAuthorizer(ec)}
	status := a.DeleteDiscussionMessage(moderator, m, now)
	assert.Equal(t, OK, status)
}

func TestTagLevelGrantShadowedByMoreSpecificThreadRequirement(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")
	other := mustAddUser(t, ec, 2, "carl")
	th := mustAddThread(t, ec, 3, "thread", author)
	tag := model.NewDiscussionTag(ids.Id{4}, "go", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Tags.Add(tag))
	tag.AddThread(th, th.ID)
	th.AddTag(tag, tag.ID)

	now := ids.Now()
	tag.Required.Thread.Set(privilege.ThreadChangeName, ids.SomePrivilegeValue(10))
	th.Required.Thread.Set(privilege.ThreadChangeName, ids.SomePrivilegeValue(50))
	ec.Grants.Thread.Grant(tag.ID, other.ID, privilege.ThreadChangeName, ids.SomePrivilegeValue(20), now, ids.UnlimitedDuration)

	a := ThreadAuthorization{newAuthorizer(ec)}
	status := a.ChangeDiscussionThreadName(other, th, now)
	assert.Equal(t, NotAllowed, status)

	ec.Grants.Thread.Grant(th.ID, other.ID, privilege.ThreadChangeName, ids.SomePrivilegeValue(60), now, ids.UnlimitedDuration)
	status = a.ChangeDiscussionThreadName(other, th, now)
	assert.Equal(t, OK, status)
}

func TestCategoryAuthorizationInheritsParentRequirement(t *testing.T) {
	ec := newTestCollection()
	moderator := mustAddUser(t, ec, 1, "mod")
	root := model.NewDiscussionCategory(ids.Id{2}, "root", ids.Now(), ids.VisitDetails{})
	child := model.NewDiscussionCategory(ids.Id{3}, "child", ids.Now(), ids.VisitDetails{})
	child.SetParent(root)
	require.NoError(t, ec.Categories.Add(root))
	require.NoError(t, ec.Categories.Add(child))

	now := ids.Now()
	root.Required.Category.Set(privilege.CategoryDelete, ids.SomePrivilegeValue(10))
	ec.Grants.Category.Grant(child.ID, moderator.ID, privilege.CategoryDelete, ids.SomePrivilegeValue(20), now, ids.UnlimitedDuration)

	a := CategoryAuthorization{newAuthorizer(ec)}
	status := a.DeleteDiscussionCategory(moderator, child, now)
	assert.Equal(t, OK, status)
}

func TestNoThrottlingPrivilegeBypassesThrottleBucket(t *testing.T) {
	ec := newTestCollection()
	author := mustAddUser(t, ec, 1, "alice")

	now := ids.Now()
	ec.ForumWide.ForumWide.Set(privilege.ForumNoThrottling, ids.SomePrivilegeValue(1))
	ec.Grants.ForumWide.Grant(ForumWideEntityID, author.ID, privilege.ForumNoThrottling, ids.SomePrivilegeValue(10), now, ids.UnlimitedDuration)

	a := ThreadAuthorization{newAuthorizer(ec)}
	for i := 0; i < 5; i++ {
		status := a.AddNewDiscussionThread(author, now)
		require.Equal(t, OK, status)
	}
}

func TestForumWideAuthorizationGatesEntitiesCountReport(t *testing.T) {
	ec := newTestCollection()
	viewer := mustAddUser(t, ec, 1, "alice")

	now := ids.Now()
	a := StatisticsAuthorization{newAuthorizer(ec)}
	assert.Equal(t, NotAllowed, a.GetEntitiesCount(viewer, now))

	ec.ForumWide.ForumWide.Set(privilege.ForumGetEntitiesCount, ids.SomePrivilegeValue(1))
	ec.Grants.ForumWide.Grant(ForumWideEntityID, viewer.ID, privilege.ForumGetEntitiesCount, ids.SomePrivilegeValue(5), now, ids.UnlimitedDuration)
	assert.Equal(t, OK, a.GetEntitiesCount(viewer, now))
}
