package serialize

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// Restriction is the per-request visibility filter a serializer consults
// before writing a field, grounded on spec.md §6 "Serialization
// restriction". It reuses internal/authz's scope-chain resolution (the
// same machinery that gates commands) rather than re-deriving chains
// here, so a privilege grant is honored identically whether it is being
// checked to allow an action or to allow viewing a field.
type Restriction struct {
	Grants    *privilege.GrantedPrivilegeStore
	ForumWide *privilege.ForumWideStore
	UserID    ids.Id
	Now       ids.Timestamp
	// DefaultPositive seeds the positive accumulator the same way
	// internal/authz does: 0 for the anonymous user, the forum's
	// logged-in baseline otherwise.
	DefaultPositive ids.PrivilegeValue
}

func (r Restriction) messageAllowed(m *model.DiscussionThreadMessage, p privilege.MessagePrivilege) bool {
	allowed, _ := authz.ResolveMessagePrivilege(r.Grants, r.ForumWide, m, r.UserID, r.Now, r.DefaultPositive, p)
	return allowed
}

// CanViewCreator reports whether the requester may see m's author.
func (r Restriction) CanViewCreator(m *model.DiscussionThreadMessage) bool {
	return r.messageAllowed(m, privilege.MessageViewCreatorUser)
}

// CanViewVotes reports whether the requester may see m's vote lists.
func (r Restriction) CanViewVotes(m *model.DiscussionThreadMessage) bool {
	return r.messageAllowed(m, privilege.MessageViewVotes)
}

// CanViewIPAddress reports whether the requester may see m's originating
// IP/user-agent.
func (r Restriction) CanViewIPAddress(m *model.DiscussionThreadMessage) bool {
	return r.messageAllowed(m, privilege.MessageViewIPAddress)
}

// CanViewComments reports whether the requester may list m's comments.
func (r Restriction) CanViewComments(m *model.DiscussionThreadMessage) bool {
	return r.messageAllowed(m, privilege.MessageGetComments)
}

// CanViewMessage reports whether the requester may see m at all: the
// creator always may, regardless of approval state; otherwise both the
// base VIEW privilege and (if unapproved) VIEW_UNAPPROVED must allow it.
func (r Restriction) CanViewMessage(m *model.DiscussionThreadMessage) bool {
	if m.CreatedBy() == r.UserID {
		return true
	}
	if !r.messageAllowed(m, privilege.MessageView) {
		return false
	}
	if m.Approved() {
		return true
	}
	return r.messageAllowed(m, privilege.MessageViewUnapproved)
}

// CanViewUnapprovedAttachment reports whether the requester may see an
// unapproved attachment belonging to m regardless of approval state.
func (r Restriction) CanViewUnapprovedAttachment(m *model.DiscussionThreadMessage) bool {
	return r.messageAllowed(m, privilege.MessageViewUnapprovedAttachment)
}

// CanViewThread reports whether the requester may see t at all: the
// creator always may; otherwise VIEW must allow it, and if t is
// unapproved VIEW_UNAPPROVED must allow it too.
func (r Restriction) CanViewThread(t *model.DiscussionThread) bool {
	if t.CreatedBy() == r.UserID {
		return true
	}
	allowed, _ := authz.ResolveThreadPrivilege(r.Grants, r.ForumWide, t, r.UserID, r.Now, r.DefaultPositive, privilege.ThreadView)
	if !allowed {
		return false
	}
	if t.Approved() {
		return true
	}
	allowed, _ = authz.ResolveThreadPrivilege(r.Grants, r.ForumWide, t, r.UserID, r.Now, r.DefaultPositive, privilege.ThreadViewUnapproved)
	return allowed
}
