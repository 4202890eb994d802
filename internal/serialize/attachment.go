package serialize

import "github.com/chirino/forumcore/internal/model"

// CanViewAttachment reports whether the requester may see a's existence
// and metadata at all (spec.md §6): the owner, the uploader, anyone once
// it's approved, or a holder of VIEW_UNAPPROVED_ATTACHMENT evaluated
// against any message referencing it.
func CanViewAttachment(a *model.Attachment, r Restriction) bool {
	if a.Approved() || a.CreatedBy() == r.UserID {
		return true
	}
	for _, m := range a.Messages() {
		if r.CanViewUnapprovedAttachment(m) {
			return true
		}
	}
	return false
}

// WriteAttachment emits an attachment's metadata. The caller is
// responsible for calling CanViewAttachment first.
func WriteAttachment(s Sink, a *model.Attachment, resolveUser UserResolver) {
	s.StartObject()
	s.PropertyName("id")
	s.WriteString(a.ID.String())
	s.PropertyName("name")
	s.WriteString(a.Name())
	s.PropertyName("size")
	s.WriteInt64(a.Size())
	s.PropertyName("created")
	s.WriteInt64(int64(a.Created()))
	s.PropertyName("approved")
	s.WriteBool(a.Approved())
	if u, ok := resolveUser(a.CreatedBy()); ok {
		s.PropertyName("createdBy")
		writeUserReference(s, u)
	}
	s.EndObject()
}
