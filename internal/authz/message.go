package authz

import (
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// MessageAuthorization answers the per-command authorization questions
// for discussion-thread-message and comment commands, grounded on
// IDiscussionThreadMessageAuthorization.
type MessageAuthorization struct{ *Authorizer }

func (a MessageAuthorization) check(currentUser *model.User, now ids.Timestamp, m *model.DiscussionThreadMessage, p privilege.MessagePrivilege) Status {
	allowed, _ := ResolveMessagePrivilege(a.EC.Grants, a.EC.ForumWide, m, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

func (a MessageAuthorization) threadCheck(currentUser *model.User, now ids.Timestamp, t *model.DiscussionThread, p privilege.ThreadPrivilege) Status {
	allowed, _ := ResolveThreadPrivilege(a.EC.Grants, a.EC.ForumWide, t, currentUser.ID, now, a.defaultPositive(currentUser), p)
	if !allowed {
		return NotAllowed
	}
	return OK
}

// AddNewDiscussionMessageInThread authorizes posting into thread,
// throttled under NewContent.
func (a MessageAuthorization) AddNewDiscussionMessageInThread(currentUser *model.User, t *model.DiscussionThread, now ids.Timestamp) Status {
	if s := a.threadCheck(currentUser, now, t, privilege.ThreadAddMessage); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, NewContent, now)
}

// ChangeDiscussionThreadMessageContent authorizes editing a message body.
func (a MessageAuthorization) ChangeDiscussionThreadMessageContent(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, m, privilege.MessageChangeContent); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, EditContent, now)
}

// DeleteDiscussionMessage authorizes deleting a message.
func (a MessageAuthorization) DeleteDiscussionMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	return a.check(currentUser, now, m, privilege.MessageDelete)
}

// MoveDiscussionThreadMessage authorizes moving a message to another
// thread; the message must allow MOVE and the destination thread must
// allow ADD_MESSAGE.
func (a MessageAuthorization) MoveDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, into *model.DiscussionThread, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, m, privilege.MessageMove); s != OK {
		return s
	}
	return a.threadCheck(currentUser, now, into, privilege.ThreadAddMessage)
}

// UpVoteDiscussionThreadMessage authorizes an up-vote; a user may never
// vote on their own message (spec.md invariant 5).
func (a MessageAuthorization) UpVoteDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	if currentUser.ID == m.CreatedBy() {
		return NotAllowed
	}
	if s := a.check(currentUser, now, m, privilege.MessageUpVote); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, Vote, now)
}

// DownVoteDiscussionThreadMessage authorizes a down-vote; same
// self-vote restriction as UpVote.
func (a MessageAuthorization) DownVoteDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	if currentUser.ID == m.CreatedBy() {
		return NotAllowed
	}
	if s := a.check(currentUser, now, m, privilege.MessageDownVote); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, Vote, now)
}

// ResetVoteDiscussionThreadMessage authorizes clearing a prior vote.
func (a MessageAuthorization) ResetVoteDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	return a.check(currentUser, now, m, privilege.MessageResetVote)
}

// AddCommentToDiscussionThreadMessage authorizes commenting on a message.
func (a MessageAuthorization) AddCommentToDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	if s := a.check(currentUser, now, m, privilege.MessageAddComment); s != OK {
		return s
	}
	return a.checkThrottle(currentUser, NewContent, now)
}

// SetMessageCommentToSolved authorizes marking a comment as the accepted
// solution.
func (a MessageAuthorization) SetMessageCommentToSolved(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	return a.check(currentUser, now, m, privilege.MessageSetCommentToSolved)
}

// GetMessageCommentsOfDiscussionThreadMessage authorizes listing a
// message's comments.
func (a MessageAuthorization) GetMessageCommentsOfDiscussionThreadMessage(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	return a.check(currentUser, now, m, privilege.MessageGetComments)
}

// AssignDiscussionThreadMessagePrivilege authorizes granting/revoking a
// message-scoped privilege.
func (a MessageAuthorization) AssignDiscussionThreadMessagePrivilege(currentUser *model.User, m *model.DiscussionThreadMessage, now ids.Timestamp) Status {
	return a.check(currentUser, now, m, privilege.MessageAdjustPrivilege)
}
