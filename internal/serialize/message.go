package serialize

import (
	"net"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// UserResolver looks up a user by id for entities that only store a
// createdBy ids.Id (not an entity.Pointer[User]) — messages, threads,
// and attachments all reference their creator this way.
type UserResolver func(ids.Id) (*model.User, bool)

// WriteMessage emits a thread message, hiding fields the restriction
// denies (spec.md §6 "Serialization restriction"): the creator if
// CanViewCreator denies, votes if CanViewVotes denies, the originating
// IP/user-agent if CanViewIPAddress denies. A message the restriction's
// CanViewMessage denies entirely is the caller's responsibility to skip
// before calling WriteMessage.
func WriteMessage(s Sink, m *model.DiscussionThreadMessage, r Restriction, resolveUser UserResolver) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(m.ID.String())
	s.PropertyName("content")
	s.WriteString(m.Content())
	s.PropertyName("created")
	s.WriteInt64(int64(m.Created()))
	if lu := m.LastUpdated(); lu != ids.Unset {
		s.PropertyName("lastUpdated")
		s.WriteInt64(int64(lu))
	}
	s.PropertyName("approved")
	s.WriteBool(m.Approved())

	if r.CanViewCreator(m) {
		if u, ok := resolveUser(m.CreatedBy()); ok {
			s.PropertyName("createdBy")
			writeUserReference(s, u)
		}
	}

	if r.CanViewIPAddress(m) {
		ip := m.IPAddress()
		s.PropertyName("ip")
		s.WriteString(net.IP(ip[:]).String())
	}

	if r.CanViewVotes(m) {
		s.PropertyName("upVotes")
		writeVoteList(s, m.UpVotes())
		s.PropertyName("downVotes")
		writeVoteList(s, m.DownVotes())
	} else {
		s.PropertyName("score")
		s.WriteInt64(int64(m.Score()))
	}

	s.PropertyName("commentCount")
	s.WriteInt64(int64(len(m.Comments())))
	if solved := m.SolvedCommentID(); !solved.IsEmpty() {
		s.PropertyName("solvedCommentId")
		s.WriteString(solved.String())
	}

	writeAttachmentRefs(s, m, r)

	s.EndObject()
}

func writeVoteList(s Sink, votes map[ids.Id]model.MessageVote) {
	s.StartArray()
	for _, v := range votes {
		s.StartObject()
		s.PropertyName("userId")
		s.WriteString(v.UserID.String())
		s.PropertyName("at")
		s.WriteInt64(int64(v.At))
		s.EndObject()
	}
	s.EndArray()
}

// writeAttachmentRefs lists the ids of attachments the requester may
// see, per spec.md §6: owner, attachment creator, approved, or holds
// VIEW_UNAPPROVED_ATTACHMENT.
func writeAttachmentRefs(s Sink, m *model.DiscussionThreadMessage, r Restriction) {
	s.PropertyName("attachments")
	s.StartArray()
	for id, a := range m.Attachments() {
		if a.Approved() || a.CreatedBy() == r.UserID || r.CanViewUnapprovedAttachment(m) {
			s.WriteString(id.String())
		}
	}
	s.EndArray()
}
