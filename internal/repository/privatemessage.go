package repository

import (
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// SendPrivateMessage delivers content from the acting user to destination.
// The original interface (Repository.h) gates private messages by
// recipient existence alone, with no privilege check of its own, so this
// mirrors that: any authenticated user may message any other user.
func (r *Repository) SendPrivateMessage(ctx RequestContext, destination *model.User, content string) (Status, ids.Id) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ids.Empty
	}
	if content == "" {
		return InvalidParameters, ids.Empty
	}
	if destination.ID == ctx.CurrentUser.ID {
		return NotAllowed, ids.Empty
	}

	var newID ids.Id
	status := OK
	r.Guard.Write(func(ec *entitycollection.EntityCollection) {
		id := r.IDGen.NewId()
		pm := model.NewPrivateMessage(id, ctx.CurrentUser.ID, destination.ID, ctx.Now, content)
		if err := ec.PrivateMessages.Add(pm); err != nil {
			status = statusFromEntityCollectionError(err)
			return
		}
		newID = id
		for _, w := range r.Events.Writers() {
			w.OnSendPrivateMessage(ctx.eventsContext(), pm)
		}
	})
	r.touchLastSeen(ctx)
	return status, newID
}

// GetSentPrivateMessages lists private messages the acting user sent,
// ordered by creation time ascending.
func (r *Repository) GetSentPrivateMessages(ctx RequestContext) (Status, []*model.PrivateMessage) {
	if ctx.CurrentUser == nil {
		return Unauthorized, nil
	}
	var sent []*model.PrivateMessage
	r.Guard.Read(func(ec *entitycollection.EntityCollection) {
		sent = ec.PrivateMessages.Sent(ctx.CurrentUser.ID)
	})
	r.touchLastSeen(ctx)
	return OK, sent
}

// GetReceivedPrivateMessages lists private messages the acting user
// received, ordered by creation time ascending.
func (r *Repository) GetReceivedPrivateMessages(ctx RequestContext) (Status, []*model.PrivateMessage) {
	if ctx.CurrentUser == nil {
		return Unauthorized, nil
	}
	var received []*model.PrivateMessage
	r.Guard.Read(func(ec *entitycollection.EntityCollection) {
		received = ec.PrivateMessages.Received(ctx.CurrentUser.ID)
	})
	r.touchLastSeen(ctx)
	return OK, received
}
