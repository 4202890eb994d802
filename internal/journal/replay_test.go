package journal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/repository"
)

func newReplayTarget() (*repository.Repository, *entitycollection.EntityCollection) {
	ec := entitycollection.New(collation.New("en"))
	az := authz.NewAuthorizer(ec, [5]authz.Limit{})
	repo := repository.New(ec, az, events.NewBus(), ids.UUIDGenerator{})
	return repo, ec
}

func TestReplayAppliesRecordsInOrder(t *testing.T) {
	repo, ec := newReplayTarget()

	userID := "00000000-0000-0000-0000-000000000001"
	threadID := "00000000-0000-0000-0000-000000000002"
	msgID := "00000000-0000-0000-0000-000000000003"

	lines := []Record{
		{Kind: KindUser, ID: userID, Name: "alice", Created: 100},
		{Kind: KindDiscussionThread, ID: threadID, Name: "welcome", CreatedBy: userID, Created: 101},
		{Kind: KindDiscussionMessage, ID: msgID, ParentID: threadID, Content: "hi", CreatedBy: userID, Created: 102},
	}

	var sb strings.Builder
	for _, l := range lines {
		b, err := json.Marshal(l)
		require.NoError(t, err)
		sb.Write(b)
		sb.WriteByte('\n')
	}

	n, err := Replay(repo, strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, ec.Users.Count())
	assert.Equal(t, 1, ec.Threads.Count())
	assert.Equal(t, 1, ec.Messages.Count())
}

func TestReplayStopsAtFirstBadRecord(t *testing.T) {
	repo, _ := newReplayTarget()

	rec := Record{
		Kind:      KindDiscussionMessage,
		ID:        "00000000-0000-0000-0000-000000000001",
		ParentID:  "00000000-0000-0000-0000-000000000099",
		Content:   "orphaned",
		CreatedBy: "00000000-0000-0000-0000-000000000001",
		Created:   1,
	}
	b, err := json.Marshal(rec)
	require.NoError(t, err)

	n, err := Replay(repo, strings.NewReader(string(b)+"\n"))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}
