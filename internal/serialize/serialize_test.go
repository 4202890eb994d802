package serialize

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestJSONSinkProducesValidNestedDocument(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	sink.StartObject()
	sink.PropertyName("name")
	sink.WriteString("alice")
	sink.PropertyName("tags")
	sink.StartArray()
	sink.WriteString("a")
	sink.WriteString("b")
	sink.EndArray()
	sink.PropertyName("active")
	sink.WriteBool(true)
	sink.EndObject()
	require.NoError(t, sink.Flush())

	out := decode(t, &buf)
	require.Equal(t, "alice", out["name"])
	require.Equal(t, []any{"a", "b"}, out["tags"])
	require.Equal(t, true, out["active"])
}

func TestJSONSinkArrayOfObjectsSeparatesElementsWithCommas(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	sink.StartArray()
	for i := 0; i < 3; i++ {
		sink.StartObject()
		sink.PropertyName("n")
		sink.WriteInt64(int64(i))
		sink.EndObject()
	}
	sink.EndArray()
	require.NoError(t, sink.Flush())

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	require.EqualValues(t, 2, out[2]["n"])
}

func TestWriteMessageHidesCreatorWhenRestrictionDenies(t *testing.T) {
	creator := model.NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	thread := model.NewDiscussionThread(ids.Id{2}, "t", creator.ID, ids.Now(), ids.VisitDetails{})
	msg := model.NewDiscussionThreadMessage(ids.Id{3}, ids.NewStringView("hello"), creator.ID, ids.Now(), ids.VisitDetails{}, thread)

	var forumWide privilege.ForumWideStore
	// Viewer is neither the creator nor granted VIEW_CREATOR_USER, and
	// the forum-wide threshold of 2 is above the viewer's baseline of 1.
	forumWide.Message.Set(privilege.MessageViewCreatorUser, ids.SomePrivilegeValue(2))

	restriction := Restriction{
		Grants:          privilege.NewGrantedPrivilegeStore(),
		ForumWide:       &forumWide,
		UserID:          ids.Id{9},
		Now:             ids.Now(),
		DefaultPositive: ids.SomePrivilegeValue(1),
	}

	resolveUser := func(id ids.Id) (*model.User, bool) { return creator, true }

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	WriteMessage(sink, msg, restriction, resolveUser)
	require.NoError(t, sink.Flush())

	out := decode(t, &buf)
	require.NotContains(t, out, "createdBy")
	require.Equal(t, "hello", out["content"])
}

func TestWriteMessageShowsScoreInsteadOfVoteListsWhenVotesHidden(t *testing.T) {
	creator := model.NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	thread := model.NewDiscussionThread(ids.Id{2}, "t", creator.ID, ids.Now(), ids.VisitDetails{})
	msg := model.NewDiscussionThreadMessage(ids.Id{3}, ids.NewStringView("hi"), creator.ID, ids.Now(), ids.VisitDetails{}, thread)
	msg.VoteUp(ids.Id{4}, ids.Now())

	var forumWide privilege.ForumWideStore
	forumWide.Message.Set(privilege.MessageViewVotes, ids.SomePrivilegeValue(-1))

	restriction := Restriction{
		Grants:          privilege.NewGrantedPrivilegeStore(),
		ForumWide:       &forumWide,
		UserID:          ids.Id{9},
		Now:             ids.Now(),
		DefaultPositive: ids.SomePrivilegeValue(1),
	}
	resolveUser := func(id ids.Id) (*model.User, bool) { return creator, true }

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	WriteMessage(sink, msg, restriction, resolveUser)
	require.NoError(t, sink.Flush())

	out := decode(t, &buf)
	require.NotContains(t, out, "upVotes")
	require.EqualValues(t, 1, out["score"])
}

func TestCanViewThreadAllowsCreatorEvenWhenUnapprovedAndDenied(t *testing.T) {
	creator := model.NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	thread := model.NewDiscussionThread(ids.Id{2}, "t", creator.ID, ids.Now(), ids.VisitDetails{})
	thread.SetApproved(false)

	var forumWide privilege.ForumWideStore
	restriction := Restriction{
		Grants:          privilege.NewGrantedPrivilegeStore(),
		ForumWide:       &forumWide,
		UserID:          creator.ID,
		Now:             ids.Now(),
		DefaultPositive: ids.SomePrivilegeValue(1),
	}

	require.True(t, restriction.CanViewThread(thread))
}

func TestCanViewThreadDeniesStrangerWhenUnapprovedAndNoGrant(t *testing.T) {
	creator := model.NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	thread := model.NewDiscussionThread(ids.Id{2}, "t", creator.ID, ids.Now(), ids.VisitDetails{})
	thread.SetApproved(false)

	var forumWide privilege.ForumWideStore
	restriction := Restriction{
		Grants:          privilege.NewGrantedPrivilegeStore(),
		ForumWide:       &forumWide,
		UserID:          ids.Id{9},
		Now:             ids.Now(),
		DefaultPositive: ids.SomePrivilegeValue(1),
	}

	require.False(t, restriction.CanViewThread(thread))
}

func TestCanViewAttachmentAllowsUploaderRegardlessOfApproval(t *testing.T) {
	att := model.NewAttachment(ids.Id{5}, "file.png", 1024, ids.Id{1}, ids.Now(), ids.VisitDetails{})

	var forumWide privilege.ForumWideStore
	restriction := Restriction{
		Grants:          privilege.NewGrantedPrivilegeStore(),
		ForumWide:       &forumWide,
		UserID:          ids.Id{1},
		Now:             ids.Now(),
		DefaultPositive: ids.SomePrivilegeValue(1),
	}

	require.True(t, CanViewAttachment(att, restriction))
}

func TestWriteCategoryListsTagAndChildReferences(t *testing.T) {
	cat := model.NewDiscussionCategory(ids.Id{6}, "general", ids.Now(), ids.VisitDetails{})
	tag := model.NewDiscussionTag(ids.Id{7}, "announcements", ids.Now(), ids.VisitDetails{})
	cat.AddTag(tag, tag.ID)

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	WriteCategory(sink, cat)
	require.NoError(t, sink.Flush())

	out := decode(t, &buf)
	require.Equal(t, "general", out["name"])
	tags, ok := out["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 1)
	require.Equal(t, tag.ID.String(), tags[0])
}
