package privilege

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/chirino/forumcore/internal/ids"
)

func newID(t *testing.T) ids.Id {
	t.Helper()
	return ids.Id(uuid.New())
}

func TestCalculatePrivilegeExpiresUnlimited(t *testing.T) {
	got := calculatePrivilegeExpires(ids.Timestamp(1000), ids.UnlimitedDuration)
	assert.Equal(t, ids.Unset, got)
}

func TestCalculatePrivilegeExpiresOrdinaryDuration(t *testing.T) {
	got := calculatePrivilegeExpires(ids.Timestamp(1000), ids.PrivilegeDuration(60))
	assert.Equal(t, ids.Timestamp(1060), got)
}

func TestCalculatePrivilegeExpiresReducesNearOverflowDuration(t *testing.T) {
	const maxHalf = ids.PrivilegeDuration(1<<62 - 1)
	start := ids.Timestamp(1000)
	got := calculatePrivilegeExpires(start, maxHalf)
	assert.Equal(t, start+ids.Timestamp(maxHalf-ids.PrivilegeDuration(start)), got)
}

func TestStoreGrantZeroValueRevokes(t *testing.T) {
	s := NewStore[MessagePrivilege]()
	entity, user := newID(t), newID(t)
	s.Grant(entity, user, MessageView, ids.SomePrivilegeValue(10), ids.Timestamp(1), ids.UnlimitedDuration)
	_, ok := s.Get(entity, user, MessageView, ids.Timestamp(2))
	assert.True(t, ok)

	s.Grant(entity, user, MessageView, ids.NoPrivilegeValue, ids.Timestamp(3), ids.UnlimitedDuration)
	_, ok = s.Get(entity, user, MessageView, ids.Timestamp(4))
	assert.False(t, ok)
}

func TestStoreGrantExpires(t *testing.T) {
	s := NewStore[MessagePrivilege]()
	entity, user := newID(t), newID(t)
	s.Grant(entity, user, MessageUpVote, ids.SomePrivilegeValue(5), ids.Timestamp(100), ids.PrivilegeDuration(10))

	v, ok := s.Get(entity, user, MessageUpVote, ids.Timestamp(109))
	assert.True(t, ok)
	assert.Equal(t, int16(5), v.Value)

	_, ok = s.Get(entity, user, MessageUpVote, ids.Timestamp(110))
	assert.False(t, ok)
}

func TestStoreForEntityAndForUserListNonExpiredGrants(t *testing.T) {
	s := NewStore[ThreadPrivilege]()
	entity, userA, userB := newID(t), newID(t), newID(t)
	s.Grant(entity, userA, ThreadSubscribe, ids.SomePrivilegeValue(1), ids.Timestamp(1), ids.UnlimitedDuration)
	s.Grant(entity, userB, ThreadSubscribe, ids.SomePrivilegeValue(2), ids.Timestamp(1), ids.UnlimitedDuration)

	assert.Len(t, s.ForEntity(entity, ids.Timestamp(2)), 2)
	assert.Len(t, s.ForUser(userA, ids.Timestamp(2)), 1)
}

func TestStoreRevokeAllDropsEveryPrivilegeForUserOnEntity(t *testing.T) {
	s := NewStore[MessagePrivilege]()
	entity, user := newID(t), newID(t)
	s.Grant(entity, user, MessageView, ids.SomePrivilegeValue(1), ids.Timestamp(1), ids.UnlimitedDuration)
	s.Grant(entity, user, MessageDelete, ids.SomePrivilegeValue(1), ids.Timestamp(1), ids.UnlimitedDuration)

	s.RevokeAll(entity, user)

	_, ok := s.Get(entity, user, MessageView, ids.Timestamp(2))
	assert.False(t, ok)
	_, ok = s.Get(entity, user, MessageDelete, ids.Timestamp(2))
	assert.False(t, ok)
}

// TestResolvePrivilegeInheritanceAcrossTagAndThreadScopes reproduces the
// VIEW_VOTES inheritance scenario: a +50 grant at tag scope clears a
// thread-level required value of 40, until a -20 grant at thread scope
// drags the effective value back under the threshold.
func TestResolvePrivilegeInheritanceAcrossTagAndThreadScopes(t *testing.T) {
	store := NewStore[MessagePrivilege]()
	message, thread, tag, forumWide := newID(t), newID(t), newID(t), newID(t)
	u3 := newID(t)
	chain := []ids.Id{message, thread, tag, forumWide}
	now := ids.Timestamp(1000)

	required := func(i int) (ids.PrivilegeValue, bool) {
		if chain[i] == thread {
			return ids.SomePrivilegeValue(40), true
		}
		return ids.NoPrivilegeValue, false
	}

	store.Grant(tag, u3, MessageViewVotes, ids.SomePrivilegeValue(50), now, ids.UnlimitedDuration)
	allowed, effective := Resolve(store, chain, u3, now, ids.NoPrivilegeValue, required, MessageViewVotes)
	assert.True(t, allowed)
	assert.Equal(t, 50, effective)

	store.Grant(thread, u3, MessageViewVotes, ids.SomePrivilegeValue(-20), now, ids.UnlimitedDuration)
	allowed, effective = Resolve(store, chain, u3, now, ids.NoPrivilegeValue, required, MessageViewVotes)
	assert.False(t, allowed)
	assert.Equal(t, 30, effective)
}

func TestResolveInnerRequiredThresholdShadowsOuter(t *testing.T) {
	store := NewStore[ThreadPrivilege]()
	thread, tag, forumWide := newID(t), newID(t), newID(t)
	user := newID(t)
	chain := []ids.Id{thread, tag, forumWide}
	now := ids.Timestamp(1)

	required := func(i int) (ids.PrivilegeValue, bool) {
		switch chain[i] {
		case tag:
			return ids.SomePrivilegeValue(5), true
		case forumWide:
			return ids.SomePrivilegeValue(100), true
		}
		return ids.NoPrivilegeValue, false
	}

	store.Grant(thread, user, ThreadSubscribe, ids.SomePrivilegeValue(10), now, ids.UnlimitedDuration)
	allowed, _ := Resolve(store, chain, user, now, ids.NoPrivilegeValue, required, ThreadSubscribe)
	assert.True(t, allowed, "tag-level threshold of 5 should shadow forum-wide's 100")
}

func TestResolveDefaultPositiveSeedsLoggedInUserBaseline(t *testing.T) {
	store := NewStore[ForumWidePrivilege]()
	forumWide := newID(t)
	user := newID(t)
	chain := []ids.Id{forumWide}
	now := ids.Timestamp(1)

	required := func(i int) (ids.PrivilegeValue, bool) { return ids.SomePrivilegeValue(1), true }

	allowed, effective := Resolve(store, chain, user, now, ids.SomePrivilegeValue(1), required, ForumAddDiscussionThread)
	assert.True(t, allowed)
	assert.Equal(t, 1, effective)
}

func TestComputeDiscussionThreadMessageVisibilityAllowedSharesThreadLevelAccumulation(t *testing.T) {
	store := NewStore[MessagePrivilege]()
	thread, tag, forumWide := newID(t), newID(t), newID(t)
	msgAllowed, msgDenied := newID(t), newID(t)
	user := newID(t)
	now := ids.Timestamp(10)

	threadChain := []ids.Id{thread, tag, forumWide}
	required := func(i int, p MessagePrivilege) (ids.PrivilegeValue, bool) {
		if p == MessageViewVotes && threadChain[i] == thread {
			return ids.SomePrivilegeValue(40), true
		}
		return ids.NoPrivilegeValue, false
	}

	store.Grant(tag, user, MessageViewVotes, ids.SomePrivilegeValue(50), now, ids.UnlimitedDuration)
	store.Grant(msgDenied, user, MessageViewVotes, ids.SomePrivilegeValue(-15), now, ids.UnlimitedDuration)

	result := ComputeDiscussionThreadMessageVisibilityAllowed(store, threadChain, []ids.Id{msgAllowed, msgDenied}, user, now, ids.NoPrivilegeValue, required)

	assert.True(t, result[msgAllowed].ViewVotes, "inherits tag grant with nothing message-local to drag it down")
	assert.False(t, result[msgDenied].ViewVotes, "message-local -15 drags 50 down to 35, below the 40 threshold")
}
