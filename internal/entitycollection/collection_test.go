package entitycollection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

func newTestCollection() *EntityCollection {
	return New(collation.New("en"))
}

func mustAddUser(t *testing.T, ec *EntityCollection, idByte byte, name string) *model.User {
	t.Helper()
	u := model.NewUser(ids.Id{idByte}, name, ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Users.Add(u))
	return u
}

func mustAddThread(t *testing.T, ec *EntityCollection, idByte byte, name string, creator *model.User) *model.DiscussionThread {
	t.Helper()
	th := model.NewDiscussionThread(ids.Id{idByte}, name, creator.ID, ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Threads.Add(th))
	creator.AddOwnThread(th, th.ID)
	return th
}

func mustAddMessage(t *testing.T, ec *EntityCollection, idByte byte, content string, creator *model.User, thread *model.DiscussionThread, at ids.Timestamp) *model.DiscussionThreadMessage {
	t.Helper()
	m := model.NewDiscussionThreadMessage(ids.Id{idByte}, ids.NewStringView(content), creator.ID, at, ids.VisitDetails{}, thread)
	require.NoError(t, ec.Messages.Add(m))
	thread.AddMessage(m)
	creator.AddOwnMessage(m, m.ID)
	return m
}

func TestUsersNameUniquenessRejectsCollationEqualNames(t *testing.T) {
	ec := newTestCollection()
	mustAddUser(t, ec, 1, "Alice")

	dup := model.NewUser(ids.Id{2}, "ALICE", ids.Now(), ids.VisitDetails{})
	err := ec.Users.Add(dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestDeleteThreadCascadesMessagesAndTags(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "alice")
	th := mustAddThread(t, ec, 2, "thread", u)
	m := mustAddMessage(t, ec, 3, "hello", u, th, ids.Timestamp(100))

	tag := model.NewDiscussionTag(ids.Id{4}, "go", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Tags.Add(tag))
	tag.AddThread(th, th.ID)
	th.AddTag(tag, tag.ID)

	require.True(t, ec.DeleteThread(th.ID))

	assert.False(t, ec.Threads.Contains(th.ID))
	assert.False(t, ec.Messages.Contains(m.ID))
	assert.Equal(t, 0, u.OwnThreadCount())
	assert.Equal(t, 0, u.OwnMessageCount())
	assert.Equal(t, 0, tag.ThreadCount())
}

func TestDeleteUserCascadesOwnThreadsAndMessages(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "bob")
	th := mustAddThread(t, ec, 2, "thread", u)
	mustAddMessage(t, ec, 3, "hi", u, th, ids.Timestamp(50))

	require.True(t, ec.DeleteUser(u.ID))

	assert.False(t, ec.Users.Contains(u.ID))
	assert.False(t, ec.Threads.Contains(th.ID))
	assert.Equal(t, 0, ec.Messages.Count())
}

func TestMoveDiscussionThreadMessagePreservesVotes(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "carol")
	voter := mustAddUser(t, ec, 9, "dave")
	src := mustAddThread(t, ec, 2, "src", u)
	dst := mustAddThread(t, ec, 3, "dst", u)
	m := mustAddMessage(t, ec, 4, "body", u, src, ids.Timestamp(10))
	m.VoteUp(voter.ID, ids.Now())

	require.True(t, ec.MoveDiscussionThreadMessage(m.ID, dst.ID))

	assert.Equal(t, 0, src.MessageCount())
	assert.Equal(t, 1, dst.MessageCount())
	assert.Equal(t, dst, m.ParentThread())
	assert.Equal(t, model.VoteUp, m.VoteOf(voter.ID))
}

func TestMergeDiscussionThreadsMovesMessagesAndDeletesSource(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "eve")
	src := mustAddThread(t, ec, 2, "src", u)
	dst := mustAddThread(t, ec, 3, "dst", u)
	mustAddMessage(t, ec, 4, "a", u, src, ids.Timestamp(1))
	mustAddMessage(t, ec, 5, "b", u, src, ids.Timestamp(2))

	require.True(t, ec.MergeDiscussionThreads(src.ID, dst.ID))

	assert.False(t, ec.Threads.Contains(src.ID))
	assert.Equal(t, 2, dst.MessageCount())
}

func TestMergeDiscussionTagsReassignsThreadsAndDeletesSource(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "frank")
	th := mustAddThread(t, ec, 2, "thread", u)

	source := model.NewDiscussionTag(ids.Id{3}, "golang", ids.Now(), ids.VisitDetails{})
	dest := model.NewDiscussionTag(ids.Id{4}, "go", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Tags.Add(source))
	require.NoError(t, ec.Tags.Add(dest))
	source.AddThread(th, th.ID)
	th.AddTag(source, source.ID)

	require.True(t, ec.MergeDiscussionTags(source.ID, dest.ID))

	assert.False(t, ec.Tags.Contains(source.ID))
	assert.True(t, dest.HasThread(th.ID))
	assert.True(t, th.HasTag(dest.ID))
	assert.False(t, th.HasTag(source.ID))
}

func TestReparentCategoryRejectsCycle(t *testing.T) {
	ec := newTestCollection()
	root := model.NewDiscussionCategory(ids.Id{1}, "root", ids.Now(), ids.VisitDetails{})
	child := model.NewDiscussionCategory(ids.Id{2}, "child", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Categories.Add(root))
	require.NoError(t, ec.Categories.Add(child))
	require.NoError(t, ec.ReparentCategory(child.ID, root.ID))

	err := ec.ReparentCategory(root.ID, child.ID)
	assert.ErrorIs(t, err, ErrCircularReference)
}

func TestCategoryTotalThreadsCountsSharedThreadOnce(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "gail")
	th := mustAddThread(t, ec, 2, "thread", u)
	mustAddMessage(t, ec, 3, "a", u, th, ids.Timestamp(1))
	mustAddMessage(t, ec, 4, "b", u, th, ids.Timestamp(2))

	cat := model.NewDiscussionCategory(ids.Id{5}, "category", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Categories.Add(cat))

	tagA := model.NewDiscussionTag(ids.Id{6}, "a", ids.Now(), ids.VisitDetails{})
	tagB := model.NewDiscussionTag(ids.Id{7}, "b", ids.Now(), ids.VisitDetails{})
	require.NoError(t, ec.Tags.Add(tagA))
	require.NoError(t, ec.Tags.Add(tagB))
	tagA.AddThread(th, th.ID)
	tagB.AddThread(th, th.ID)
	cat.AddTag(tagA, tagA.ID)
	cat.AddTag(tagB, tagB.ID)

	// Both tags reference the same thread; the category union counts it once.
	assert.True(t, cat.TotalThreads().AddRef(th.ID, th.MessageCount()))
	assert.False(t, cat.TotalThreads().AddRef(th.ID, th.MessageCount()))
	assert.Equal(t, 1, cat.TotalThreadCount())
	assert.Equal(t, 2, cat.TotalMessageCount())
}

func TestDeleteThreadRevokesGrantsOnIt(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "hank")
	moderator := mustAddUser(t, ec, 2, "iris")
	th := mustAddThread(t, ec, 3, "thread", u)

	ec.Grants.Thread.Grant(th.ID, moderator.ID, 0 /* ThreadView */, ids.SomePrivilegeValue(100), ids.Now(), ids.UnlimitedDuration)
	require.True(t, ec.DeleteThread(th.ID))

	_, ok := ec.Grants.Thread.Get(th.ID, moderator.ID, 0, ids.Now())
	assert.False(t, ok)
}

func TestDeleteUserRevokesEveryGrantTheyHold(t *testing.T) {
	ec := newTestCollection()
	u := mustAddUser(t, ec, 1, "jane")
	th := mustAddThread(t, ec, 2, "thread", u)

	ec.Grants.Thread.Grant(th.ID, u.ID, 0 /* ThreadView */, ids.SomePrivilegeValue(10), ids.Now(), ids.UnlimitedDuration)
	require.True(t, ec.DeleteUser(u.ID))

	_, ok := ec.Grants.Thread.Get(th.ID, u.ID, 0, ids.Now())
	assert.False(t, ok)
}

func TestBatchInsertRebuildsIndicesOnStop(t *testing.T) {
	ec := newTestCollection()
	ec.StartBatchInsert()
	u1 := model.NewUser(ids.Id{1}, "zed", ids.Timestamp(100), ids.VisitDetails{})
	u2 := model.NewUser(ids.Id{2}, "amy", ids.Timestamp(50), ids.VisitDetails{})
	require.NoError(t, ec.Users.Add(u1))
	require.NoError(t, ec.Users.Add(u2))
	ec.StopBatchInsert()

	byCreated := ec.Users.ByCreated()
	require.Len(t, byCreated, 2)
	assert.Equal(t, u2, byCreated[0])
	assert.Equal(t, u1, byCreated[1])
}
