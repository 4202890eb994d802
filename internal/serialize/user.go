package serialize

import "github.com/chirino/forumcore/internal/model"

// WriteUser emits a user's public fields, grounded on
// EntitySerialization.h's stream-operator style for User. The caller
// decides whether u is reached directly (full detail) or only as
// another entity's creator reference (name/id handled separately by
// that caller); WriteUser always writes full detail.
func WriteUser(s Sink, u *model.User) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(u.ID.String())
	s.PropertyName("name")
	s.WriteString(u.Name())
	s.PropertyName("created")
	s.WriteInt64(int64(u.Created()))
	s.PropertyName("lastSeen")
	s.WriteInt64(int64(u.LastSeen()))
	if info := u.Info(); info != "" {
		s.PropertyName("info")
		s.WriteString(info)
	}
	if title := u.Title(); title != "" {
		s.PropertyName("title")
		s.WriteString(title)
	}
	if sig := u.Signature(); sig != "" {
		s.PropertyName("signature")
		s.WriteString(sig)
	}
	s.PropertyName("ownThreadCount")
	s.WriteInt64(int64(u.OwnThreadCount()))
	s.PropertyName("ownMessageCount")
	s.WriteInt64(int64(u.OwnMessageCount()))
	s.PropertyName("receivedUpVotes")
	s.WriteInt64(int64(u.ReceivedUpVotes()))
	s.PropertyName("receivedDownVotes")
	s.WriteInt64(int64(u.ReceivedDownVotes()))
	s.EndObject()
}

// writeUserReference emits just enough of a user for another entity to
// reference as its creator, omitting the vote/activity counters a full
// WriteUser includes.
func writeUserReference(s Sink, u *model.User) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(u.ID.String())
	s.PropertyName("name")
	s.WriteString(u.Name())
	s.EndObject()
}
