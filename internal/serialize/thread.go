package serialize

import "github.com/chirino/forumcore/internal/model"

// WriteThread emits a thread's listing-level fields plus its messages.
// Messages the restriction denies are skipped entirely rather than
// written with fields hidden, since an invisible message shouldn't even
// reveal that it exists (spec.md §6).
func WriteThread(s Sink, t *model.DiscussionThread, r Restriction, resolveUser UserResolver, includeMessages bool) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(t.ID.String())
	s.PropertyName("name")
	s.WriteString(t.Name())
	s.PropertyName("created")
	s.WriteInt64(int64(t.Created()))
	s.PropertyName("lastUpdated")
	s.WriteInt64(int64(t.LastUpdated()))
	s.PropertyName("approved")
	s.WriteBool(t.Approved())
	s.PropertyName("messageCount")
	s.WriteInt64(int64(t.MessageCount()))
	s.PropertyName("visitorCount")
	s.WriteInt64(t.VisitorCount())
	if order := t.PinDisplayOrder(); order != 0 {
		s.PropertyName("pinDisplayOrder")
		s.WriteInt64(int64(order))
	}

	if u, ok := resolveUser(t.CreatedBy()); ok {
		s.PropertyName("createdBy")
		writeUserReference(s, u)
	}

	s.PropertyName("tags")
	s.StartArray()
	for id := range t.Tags() {
		s.WriteString(id.String())
	}
	s.EndArray()

	if includeMessages {
		s.PropertyName("messages")
		s.StartArray()
		for _, m := range t.Messages() {
			if !r.CanViewMessage(m) {
				continue
			}
			WriteMessage(s, m, r, resolveUser)
		}
		s.EndArray()
	}

	s.EndObject()
}

// WriteThreadSummary emits the compact listing form used for a page of
// threads (spec.md §3.2 "Listing"): no message bodies, just the thread's
// own indexed fields.
func WriteThreadSummary(s Sink, t *model.DiscussionThread, resolveUser UserResolver) {
	WriteThread(s, t, Restriction{}, resolveUser, false)
}
