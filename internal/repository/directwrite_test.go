package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/privilege"
)

func TestDirectWriteBuildsGraphWithoutAuthorization(t *testing.T) {
	repo, ec := newTestRepository()
	dw := repo.DirectWrite()

	userID := ids.Id{1}
	status, u := dw.AddUser(userID, "alice", "auth-token", ids.Timestamp(1000), ids.VisitDetails{})
	require.Equal(t, OK, status)
	require.NotNil(t, u)
	assert.Equal(t, 1, ec.Users.Count())

	tagID := ids.Id{2}
	status, tag := dw.AddDiscussionTag(tagID, "golang", ids.Timestamp(1001), ids.VisitDetails{})
	require.Equal(t, OK, status)
	require.NotNil(t, tag)

	threadID := ids.Id{3}
	status, thread := dw.AddDiscussionThread(threadID, "hello world", userID, ids.Timestamp(1002), ids.VisitDetails{}, []ids.Id{tagID})
	require.Equal(t, OK, status)
	require.NotNil(t, thread)
	assert.Len(t, thread.Tags(), 1)

	msgID := ids.Id{4}
	status, msg := dw.AddDiscussionMessage(msgID, threadID, "first post", userID, ids.Timestamp(1003), ids.VisitDetails{})
	require.Equal(t, OK, status)
	require.NotNil(t, msg)
	assert.Equal(t, "first post", msg.Content())
	assert.Equal(t, 1, ec.Messages.Count())

	catID := ids.Id{5}
	status, cat := dw.AddDiscussionCategory(catID, "general", ids.Timestamp(1004), ids.VisitDetails{}, ids.Empty)
	require.Equal(t, OK, status)
	require.NotNil(t, cat)

	childID := ids.Id{6}
	status, child := dw.AddDiscussionCategory(childID, "subforum", ids.Timestamp(1005), ids.VisitDetails{}, catID)
	require.Equal(t, OK, status)
	require.NotNil(t, child)
	assert.Equal(t, cat, child.Parent())
}

func TestDirectWriteRejectsUnknownParent(t *testing.T) {
	repo, _ := newTestRepository()
	dw := repo.DirectWrite()

	status, thread := dw.AddDiscussionThread(ids.Id{1}, "orphan", ids.Id{99}, ids.Timestamp(1), ids.VisitDetails{}, nil)
	assert.Equal(t, NotFound, status)
	assert.Nil(t, thread)

	status, msg := dw.AddDiscussionMessage(ids.Id{2}, ids.Id{99}, "content", ids.Id{1}, ids.Timestamp(1), ids.VisitDetails{})
	assert.Equal(t, NotFound, status)
	assert.Nil(t, msg)
}

func TestDirectWriteAssignForumWidePrivilege(t *testing.T) {
	repo, ec := newTestRepository()
	dw := repo.DirectWrite()

	_, _ = dw.AddUser(ids.Id{1}, "bob", "", ids.Timestamp(1), ids.VisitDetails{})

	status := dw.AssignForumWidePrivilege(ids.Id{1}, privilege.ForumAddUser, ids.SomePrivilegeValue(1), ids.UnlimitedDuration, ids.Timestamp(2))
	require.Equal(t, OK, status)

	value, ok := ec.Grants.ForumWide.Get(authz.ForumWideEntityID, ids.Id{1}, privilege.ForumAddUser, ids.Timestamp(2))
	require.True(t, ok)
	assert.Equal(t, int16(1), value.Value)
}
