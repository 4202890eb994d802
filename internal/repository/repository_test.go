package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// sequentialIDs hands out deterministic ids so tests can assert on the
// exact id a command returns.
type sequentialIDs struct{ next byte }

func (s *sequentialIDs) NewId() ids.Id {
	s.next++
	return ids.Id{s.next}
}

func newTestRepository() (*Repository, *entitycollection.EntityCollection) {
	ec := entitycollection.New(collation.New("en"))
	limits := [5]authz.Limit{
		authz.NewContent:     {MaxCount: 100, PeriodSeconds: 60},
		authz.EditContent:    {MaxCount: 100, PeriodSeconds: 60},
		authz.EditPrivileges: {MaxCount: 100, PeriodSeconds: 60},
		authz.Vote:           {MaxCount: 100, PeriodSeconds: 60},
		authz.Subscribe:      {MaxCount: 100, PeriodSeconds: 60},
	}
	az := authz.NewAuthorizer(ec, limits)
	repo := New(ec, az, events.NewBus(), &sequentialIDs{})
	return repo, ec
}

func grantForumWideDefault(ec *entitycollection.EntityCollection, positive int) {
	ec.ForumWide.DefaultLevelForLoggedInUser = ids.SomePrivilegeValue(positive)
}

func TestAddNewUserThenAddNewThreadAndMessage(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	status, uid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "token-a", ids.VisitDetails{})
	require.Equal(t, OK, status)
	author, ok := ec.Users.Get(uid)
	require.True(t, ok)
	assert.Equal(t, "alice", author.Name())

	ctx := RequestContext{CurrentUser: author, Now: ids.Now()}
	status, tid := repo.AddNewDiscussionThread(ctx, "hello world", nil)
	require.Equal(t, OK, status)
	thread, ok := ec.Threads.Get(tid)
	require.True(t, ok)

	status, mid := repo.AddNewDiscussionMessage(ctx, thread, "first post")
	require.Equal(t, OK, status)
	msg, ok := ec.Messages.Get(mid)
	require.True(t, ok)
	assert.Equal(t, author.ID, msg.CreatedBy())
}

func TestAddNewUserRejectsDuplicateName(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	status, _ := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	require.Equal(t, OK, status)

	status, _ = repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t2", ids.VisitDetails{})
	assert.Equal(t, AlreadyExists, status)
}

func TestUpVoteDiscussionThreadMessageIsNoEffectWhenAlreadyUpvoted(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	voter, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)
	_, mid := repo.AddNewDiscussionMessage(authorCtx, thread, "content")
	msg, _ := ec.Messages.Get(mid)

	voterCtx := RequestContext{CurrentUser: voter, Now: ids.Now()}
	status := repo.UpVoteDiscussionThreadMessage(voterCtx, msg)
	require.Equal(t, OK, status)

	status = repo.UpVoteDiscussionThreadMessage(voterCtx, msg)
	assert.Equal(t, NoEffect, status)
	assert.Equal(t, 1, msg.UpVoteCount())
}

func TestDownVoteThenUpVoteIsNoEffectWithoutResettingFirst(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))
	ec.ForumWide.Message.Set(privilege.MessageDownVote, ids.SomePrivilegeValue(1))

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	voter, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)
	_, mid := repo.AddNewDiscussionMessage(authorCtx, thread, "content")
	msg, _ := ec.Messages.Get(mid)

	voterCtx := RequestContext{CurrentUser: voter, Now: ids.Now()}
	require.Equal(t, OK, repo.DownVoteDiscussionThreadMessage(voterCtx, msg))

	status := repo.UpVoteDiscussionThreadMessage(voterCtx, msg)
	assert.Equal(t, NoEffect, status)
	assert.Equal(t, 0, msg.UpVoteCount())
	assert.Equal(t, 1, msg.DownVoteCount())
	assert.Equal(t, 0, author.ReceivedUpVotes())
	assert.Equal(t, 1, author.ReceivedDownVotes())
}

func TestResetVoteWithinWindowSucceeds(t *testing.T) {
	repo, ec := newTestRepository()
	repo.ResetVoteExpiresIn = 600 * time.Second
	grantForumWideDefault(ec, 1)
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))
	ec.ForumWide.Message.Set(privilege.MessageResetVote, ids.SomePrivilegeValue(1))

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	voter, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)
	_, mid := repo.AddNewDiscussionMessage(authorCtx, thread, "content")
	msg, _ := ec.Messages.Get(mid)

	voteAt := ids.Timestamp(100)
	require.Equal(t, OK, repo.UpVoteDiscussionThreadMessage(RequestContext{CurrentUser: voter, Now: voteAt}, msg))

	status := repo.ResetVoteDiscussionThreadMessage(RequestContext{CurrentUser: voter, Now: voteAt + 550}, msg)
	assert.Equal(t, OK, status)
	assert.Equal(t, model.VoteNone, voter.VoteStateFor(mid))
}

func TestResetVotePastWindowIsNotAllowed(t *testing.T) {
	repo, ec := newTestRepository()
	repo.ResetVoteExpiresIn = 600 * time.Second
	grantForumWideDefault(ec, 1)
	ec.ForumWide.Message.Set(privilege.MessageUpVote, ids.SomePrivilegeValue(1))
	ec.ForumWide.Message.Set(privilege.MessageResetVote, ids.SomePrivilegeValue(1))

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	voter, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)
	_, mid := repo.AddNewDiscussionMessage(authorCtx, thread, "content")
	msg, _ := ec.Messages.Get(mid)

	voteAt := ids.Timestamp(100)
	require.Equal(t, OK, repo.UpVoteDiscussionThreadMessage(RequestContext{CurrentUser: voter, Now: voteAt}, msg))

	status := repo.ResetVoteDiscussionThreadMessage(RequestContext{CurrentUser: voter, Now: voteAt + 601}, msg)
	assert.Equal(t, NotAllowed, status)
	assert.Equal(t, model.VoteUp, voter.VoteStateFor(mid))
}

func TestDeleteUserCascadesOwnThreads(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, modID := repo.AddNewUser(RequestContext{Now: ids.Now()}, "mod", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	moderator, _ := ec.Users.Get(modID)
	ec.Grants.ForumWide.Grant(authz.ForumWideEntityID, moderator.ID, privilege.ForumDeleteAnyUser, ids.SomePrivilegeValue(1), ids.Now(), ids.UnlimitedDuration)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)

	status := repo.DeleteUser(RequestContext{CurrentUser: moderator, Now: ids.Now()}, author)
	require.Equal(t, OK, status)
	_, ok := ec.Users.Get(author.ID)
	assert.False(t, ok)
	_, ok = ec.Threads.Get(thread.ID)
	assert.False(t, ok)
}

func TestAddNewDiscussionTagThenAttachToThread(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	ctx := RequestContext{CurrentUser: author, Now: ids.Now()}

	status, tagID := repo.AddNewDiscussionTag(ctx, "go")
	require.Equal(t, OK, status)
	tag, _ := ec.Tags.Get(tagID)

	_, tid := repo.AddNewDiscussionThread(ctx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)

	status = repo.AddDiscussionTagToThread(ctx, thread, tag)
	require.Equal(t, OK, status)
	assert.True(t, thread.HasTag(tag.ID))

	status = repo.AddDiscussionTagToThread(ctx, thread, tag)
	assert.Equal(t, NoEffect, status)
}

func TestAddNewDiscussionCategoryWithParent(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	ctx := RequestContext{CurrentUser: author, Now: ids.Now()}

	status, rootID := repo.AddNewDiscussionCategory(ctx, "root", nil)
	require.Equal(t, OK, status)
	root, _ := ec.Categories.Get(rootID)

	status, childID := repo.AddNewDiscussionCategory(ctx, "child", root)
	require.Equal(t, OK, status)
	child, _ := ec.Categories.Get(childID)
	assert.Equal(t, root, child.Parent())

	status = repo.ChangeDiscussionCategoryParent(ctx, root, child)
	assert.Equal(t, CircularReferenceNotAllowed, status)
}

func TestGetEntitiesCountReportsCollectionSizes(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	ctx := RequestContext{CurrentUser: author, Now: ids.Now()}
	repo.AddNewDiscussionThread(ctx, "thread", nil)

	status, counts := repo.GetEntitiesCount(ctx)
	require.Equal(t, OK, status)
	assert.Equal(t, 1, counts.Users)
	assert.Equal(t, 1, counts.Threads)
}

func TestAddMessageCommentThenSolveAndList(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	commenter, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	_, tid := repo.AddNewDiscussionThread(authorCtx, "thread", nil)
	thread, _ := ec.Threads.Get(tid)
	_, mid := repo.AddNewDiscussionMessage(authorCtx, thread, "content")
	msg, _ := ec.Messages.Get(mid)

	commenterCtx := RequestContext{CurrentUser: commenter, Now: ids.Now()}
	status, cid := repo.AddMessageComment(commenterCtx, msg, "have you tried turning it off and on again?")
	require.Equal(t, OK, status)
	comment, ok := ec.Comments.Get(cid)
	require.True(t, ok)
	assert.Equal(t, commenter.ID, comment.CreatedBy())
	assert.False(t, comment.Solved())

	status = repo.SolveMessageComment(authorCtx, msg, comment)
	require.Equal(t, OK, status)
	assert.True(t, comment.Solved())
	assert.Equal(t, comment.ID, msg.SolvedCommentID())

	status = repo.SolveMessageComment(authorCtx, msg, comment)
	assert.Equal(t, NoEffect, status)

	status, comments := repo.GetMessageComments(commenterCtx, msg)
	require.Equal(t, OK, status)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestSendPrivateMessageRejectsMessagingSelf(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	ctx := RequestContext{CurrentUser: author, Now: ids.Now()}

	status, _ := repo.SendPrivateMessage(ctx, author, "hi me")
	assert.Equal(t, NotAllowed, status)
}

func TestSendPrivateMessageAppearsInSentAndReceived(t *testing.T) {
	repo, ec := newTestRepository()
	grantForumWideDefault(ec, 1)

	_, aid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "alice", "t1", ids.VisitDetails{})
	_, bid := repo.AddNewUser(RequestContext{Now: ids.Now()}, "bob", "t2", ids.VisitDetails{})
	author, _ := ec.Users.Get(aid)
	recipient, _ := ec.Users.Get(bid)

	authorCtx := RequestContext{CurrentUser: author, Now: ids.Now()}
	status, pmid := repo.SendPrivateMessage(authorCtx, recipient, "hey bob")
	require.Equal(t, OK, status)

	status, sent := repo.GetSentPrivateMessages(authorCtx)
	require.Equal(t, OK, status)
	require.Len(t, sent, 1)
	assert.Equal(t, pmid, sent[0].ID)

	recipientCtx := RequestContext{CurrentUser: recipient, Now: ids.Now()}
	status, received := repo.GetReceivedPrivateMessages(recipientCtx)
	require.Equal(t, OK, status)
	require.Len(t, received, 1)
	assert.Equal(t, pmid, received[0].ID)
}

