package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/ids"
)

func TestUserSetNameFiresPrepareCommitInOrder(t *testing.T) {
	u := NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	var order []string
	u.InstallNotifications(&UserNotifications{
		OnPrepareUpdateName: func(*User) { order = append(order, "prepare") },
		OnUpdateName:        func(*User) { order = append(order, "commit") },
	})

	u.SetName("alicia")

	assert.Equal(t, "alicia", u.Name())
	assert.Equal(t, []string{"prepare", "commit"}, order)
}

func TestUserOwnThreadCountTracksAddRemove(t *testing.T) {
	u := NewUser(ids.Id{1}, "bob", ids.Now(), ids.VisitDetails{})
	thread := NewDiscussionThread(ids.Id{2}, "t", u.ID, ids.Now(), ids.VisitDetails{})

	u.AddOwnThread(thread, thread.ID)
	assert.Equal(t, 1, u.OwnThreadCount())

	u.RemoveOwnThread(thread.ID)
	assert.Equal(t, 0, u.OwnThreadCount())
}

func TestUserVoteHistoryRingIsBounded(t *testing.T) {
	u := NewUser(ids.Id{1}, "carol", ids.Now(), ids.VisitDetails{})
	for i := 0; i < VoteHistoryCapacity+10; i++ {
		u.RecordReceivedVote(VoteHistoryEntry{MessageID: ids.Id{byte(i)}})
	}
	assert.Len(t, u.VoteHistory(), VoteHistoryCapacity)
}

func TestDiscussionThreadAddMessageUpdatesMessageCountAndLatest(t *testing.T) {
	creator := ids.Id{1}
	thread := NewDiscussionThread(ids.Id{2}, "thread", creator, ids.Timestamp(100), ids.VisitDetails{})

	var countBumped bool
	thread.InstallNotifications(&DiscussionThreadNotifications{
		OnUpdateMessageCount: func(*DiscussionThread) { countBumped = true },
	})

	m1 := NewDiscussionThreadMessage(ids.Id{3}, ids.NewStringView("hello"), creator, ids.Timestamp(100), ids.VisitDetails{}, thread)
	m2 := NewDiscussionThreadMessage(ids.Id{4}, ids.NewStringView("world"), creator, ids.Timestamp(200), ids.VisitDetails{}, thread)

	thread.AddMessage(m1)
	thread.AddMessage(m2)

	assert.True(t, countBumped)
	assert.Equal(t, 2, thread.MessageCount())
	assert.Equal(t, ids.Timestamp(200), thread.LatestMessageCreated())

	ordered := thread.Messages()
	require.Len(t, ordered, 2)
	assert.Equal(t, m1, ordered[0])
	assert.Equal(t, m2, ordered[1])
}

func TestDiscussionThreadRemoveMessageRecomputesLatest(t *testing.T) {
	creator := ids.Id{1}
	thread := NewDiscussionThread(ids.Id{2}, "thread", creator, ids.Timestamp(100), ids.VisitDetails{})
	m1 := NewDiscussionThreadMessage(ids.Id{3}, ids.NewStringView("a"), creator, ids.Timestamp(100), ids.VisitDetails{}, thread)
	m2 := NewDiscussionThreadMessage(ids.Id{4}, ids.NewStringView("b"), creator, ids.Timestamp(200), ids.VisitDetails{}, thread)
	thread.AddMessage(m1)
	thread.AddMessage(m2)

	require.True(t, thread.RemoveMessage(m2))
	thread.RecomputeLatestMessageCreated()

	assert.Equal(t, 1, thread.MessageCount())
	assert.Equal(t, ids.Timestamp(100), thread.LatestMessageCreated())
}

func TestMessageVoteUpDownIsExclusive(t *testing.T) {
	creator := ids.Id{1}
	thread := NewDiscussionThread(ids.Id{9}, "t", creator, ids.Now(), ids.VisitDetails{})
	msg := NewDiscussionThreadMessage(ids.Id{2}, ids.NewStringView("body"), creator, ids.Now(), ids.VisitDetails{}, thread)

	voter := ids.Id{3}
	msg.VoteUp(voter, ids.Now())
	assert.Equal(t, VoteUp, msg.VoteOf(voter))
	assert.Equal(t, 1, msg.Score())

	msg.VoteDown(voter, ids.Now())
	assert.Equal(t, VoteDown, msg.VoteOf(voter))
	assert.Equal(t, -1, msg.Score())
	assert.Equal(t, 0, msg.UpVoteCount())

	msg.RemoveVote(voter)
	assert.Equal(t, VoteNone, msg.VoteOf(voter))
	assert.Equal(t, 0, msg.Score())
}

func TestAttachmentApprovedAndCreatedSignFlips(t *testing.T) {
	a := NewAttachment(ids.Id{1}, "file.png", 1024, ids.Id{2}, ids.Timestamp(500), ids.VisitDetails{})
	assert.Equal(t, int64(500), a.ApprovedAndCreated()) // unapproved: positive

	var braketed bool
	a.InstallNotifications(&AttachmentNotifications{
		OnPrepareUpdateApprovedAndCreated: func(*Attachment) { braketed = true },
	})
	a.SetApproved(true)

	assert.True(t, braketed)
	assert.Equal(t, int64(-500), a.ApprovedAndCreated()) // approved: negative
}

func TestDiscussionCategoryTotalThreadsUnionsAcrossTags(t *testing.T) {
	cat := NewDiscussionCategory(ids.Id{1}, "category", ids.Now(), ids.VisitDetails{})

	threadID := ids.Id{5}
	assert.True(t, cat.TotalThreads().AddRef(threadID, 3))
	assert.False(t, cat.TotalThreads().AddRef(threadID, 4)) // second tag referencing same thread

	assert.Equal(t, 1, cat.TotalThreadCount())
	assert.Equal(t, 4, cat.TotalMessageCount())
}

func TestDiscussionTagThreadCountTracksMembership(t *testing.T) {
	tag := NewDiscussionTag(ids.Id{1}, "go", ids.Now(), ids.VisitDetails{})
	thread := NewDiscussionThread(ids.Id{2}, "t", ids.Id{3}, ids.Now(), ids.VisitDetails{})

	tag.AddThread(thread, thread.ID)
	assert.Equal(t, 1, tag.ThreadCount())
	assert.True(t, tag.HasThread(thread.ID))

	tag.RemoveThread(thread.ID)
	assert.Equal(t, 0, tag.ThreadCount())
}
