package serialize

import "github.com/chirino/forumcore/internal/model"

// WriteTag emits a discussion tag's listing fields.
func WriteTag(s Sink, t *model.DiscussionTag) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(t.ID.String())
	s.PropertyName("name")
	s.WriteString(t.Name())
	if blob := t.UIBlob(); blob != "" {
		s.PropertyName("uiBlob")
		s.WriteString(blob)
	}
	s.PropertyName("created")
	s.WriteInt64(int64(t.Created()))
	s.PropertyName("threadCount")
	s.WriteInt64(int64(t.ThreadCount()))
	s.EndObject()
}
