package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

type recordingWriteObserver struct {
	addedUsers []*model.User
}

func (r *recordingWriteObserver) OnAddNewUser(ctx Context, newUser *model.User) {
	r.addedUsers = append(r.addedUsers, newUser)
}
func (r *recordingWriteObserver) OnChangeUser(ctx Context, user *model.User)          {}
func (r *recordingWriteObserver) OnDeleteUser(ctx Context, deletedUserID ids.Id)      {}
func (r *recordingWriteObserver) OnAddNewDiscussionThread(ctx Context, newThread *model.DiscussionThread)   {}
func (r *recordingWriteObserver) OnChangeDiscussionThread(ctx Context, thread *model.DiscussionThread)      {}
func (r *recordingWriteObserver) OnDeleteDiscussionThread(ctx Context, deletedThreadID ids.Id)              {}
func (r *recordingWriteObserver) OnMergeDiscussionThreads(ctx Context, from, into *model.DiscussionThread)  {}
func (r *recordingWriteObserver) OnAddNewDiscussionMessage(ctx Context, newMessage *model.DiscussionThreadMessage) {
}
func (r *recordingWriteObserver) OnChangeDiscussionMessage(ctx Context, message *model.DiscussionThreadMessage) {
}
func (r *recordingWriteObserver) OnDeleteDiscussionMessage(ctx Context, deletedMessageID ids.Id) {}
func (r *recordingWriteObserver) OnDiscussionMessageVoted(ctx Context, message *model.DiscussionThreadMessage, voterID ids.Id, up bool) {
}
func (r *recordingWriteObserver) OnAddNewDiscussionTag(ctx Context, newTag *model.DiscussionTag)    {}
func (r *recordingWriteObserver) OnChangeDiscussionTag(ctx Context, tag *model.DiscussionTag)       {}
func (r *recordingWriteObserver) OnDeleteDiscussionTag(ctx Context, deletedTagID ids.Id)            {}
func (r *recordingWriteObserver) OnAddNewDiscussionCategory(ctx Context, newCategory *model.DiscussionCategory) {
}
func (r *recordingWriteObserver) OnChangeDiscussionCategory(ctx Context, category *model.DiscussionCategory) {
}
func (r *recordingWriteObserver) OnDeleteDiscussionCategory(ctx Context, deletedCategoryID ids.Id) {}
func (r *recordingWriteObserver) OnPrivilegeAssigned(ctx Context, entityID, targetUserID ids.Id, privilegeValue ids.PrivilegeValue) {
}

func TestBusFansOutWriteEventsToEverySubscriber(t *testing.T) {
	bus := NewBus()
	a := &recordingWriteObserver{}
	b := &recordingWriteObserver{}
	bus.AddWriteObserver(a)
	bus.AddWriteObserver(b)

	u := model.NewUser(ids.Id{1}, "alice", ids.Now(), ids.VisitDetails{})
	ctx := Context{CurrentTime: ids.Now()}
	for _, w := range bus.Writers() {
		w.OnAddNewUser(ctx, u)
	}

	require.Len(t, a.addedUsers, 1)
	require.Len(t, b.addedUsers, 1)
	assert.Same(t, u, a.addedUsers[0])
}

func TestBusRemoveObserverStopsFutureNotifications(t *testing.T) {
	bus := NewBus()
	a := &recordingWriteObserver{}
	bus.AddWriteObserver(a)
	bus.RemoveWriteObserver(a)

	assert.Empty(t, bus.Writers())
}
