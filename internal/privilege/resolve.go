package privilege

import "github.com/chirino/forumcore/internal/ids"

// RequiredLookup returns the required-privilege threshold configured at
// chain position i, and whether one is set there at all. Resolve walks
// the chain from innermost (index 0) outward and uses the first entry
// with ok==true, so an inner scope's explicit threshold shadows an outer
// one (spec.md §4.5).
type RequiredLookup func(i int) (value ids.PrivilegeValue, ok bool)

// Resolve runs the scope-chain resolution algorithm (spec.md §4.5) for a
// single privilege of a single user against a chain of entity ids ordered
// innermost-first (e.g. a message's chain is [message, thread, tag...,
// tag..., forumWide]). It accumulates the maximum granted positive value
// and the minimum granted negative value across every non-expired grant
// in the chain, then compares their sum against the first configured
// required threshold found walking the same chain.
func Resolve[P comparable](store *Store[P], chain []ids.Id, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, required RequiredLookup, p P) (allowed bool, effective int) {
	positive := int16(0)
	if defaultPositive.Ok {
		positive = defaultPositive.Value
	}
	negative := int16(0)
	for _, entityID := range chain {
		v, ok := store.Get(entityID, userID, p, now)
		if !ok {
			continue
		}
		if v.Value > positive {
			positive = v.Value
		}
		if v.Value < negative {
			negative = v.Value
		}
	}

	var requiredValue int16
	for i := range chain {
		if v, ok := required(i); ok {
			requiredValue = v.Value
			break
		}
	}

	effective = int(positive) + int(negative)
	return effective >= int(requiredValue), effective
}

// visibilityPrivileges are the message-scoped privileges the batched
// thread visibility check evaluates per item (spec.md §4.5).
var visibilityPrivileges = [...]MessagePrivilege{
	MessageView,
	MessageViewCreatorUser,
	MessageViewVotes,
	MessageViewIPAddress,
	MessageGetComments,
}

// MessageVisibility reports, for one message, whether each batched
// privilege is allowed.
type MessageVisibility struct {
	View            bool
	ViewCreatorUser bool
	ViewVotes       bool
	ViewIPAddress   bool
	GetComments     bool
}

// threadLevelAccumulation is the part of the scope-chain sum that is the
// same for every message in a thread: the thread itself, its tags, and
// forum-wide (spec.md §4.5, "compute thread-level positive/negative/
// required once").
type threadLevelAccumulation struct {
	positive [len(visibilityPrivileges)]int16
	negative [len(visibilityPrivileges)]int16
	required [len(visibilityPrivileges)]int16
}

// ThreadLevelRequiredLookup resolves the required-privilege threshold for
// p at one position of a thread-rooted chain: index 0 is the thread
// itself, the following indices are its tags, and the last is
// forum-wide.
type ThreadLevelRequiredLookup func(i int, p MessagePrivilege) (ids.PrivilegeValue, bool)

func computeThreadLevelAccumulation(store *Store[MessagePrivilege], threadChain []ids.Id, userID ids.Id, now ids.Timestamp, defaultPositive ids.PrivilegeValue, required ThreadLevelRequiredLookup) threadLevelAccumulation {
	var acc threadLevelAccumulation
	for i, p := range visibilityPrivileges {
		positive := int16(0)
		if defaultPositive.Ok {
			positive = defaultPositive.Value
		}
		negative := int16(0)
		for _, entityID := range threadChain {
			v, ok := store.Get(entityID, userID, p, now)
			if !ok {
				continue
			}
			if v.Value > positive {
				positive = v.Value
			}
			if v.Value < negative {
				negative = v.Value
			}
		}
		acc.positive[i] = positive
		acc.negative[i] = negative

		var requiredValue int16
		for j := range threadChain {
			if v, ok := required(j, p); ok {
				requiredValue = v.Value
				break
			}
		}
		acc.required[i] = requiredValue
	}
	return acc
}

// ComputeDiscussionThreadMessageVisibilityAllowed computes the five
// message-scoped visibility privileges for every message in
// messageIDs, sharing one thread-level accumulation pass across the
// whole batch so each message only costs a single per-message grant
// lookup per privilege (spec.md §4.5: "blend per-message grants in O(1)
// per item").
func ComputeDiscussionThreadMessageVisibilityAllowed(
	store *Store[MessagePrivilege],
	threadChain []ids.Id,
	messageIDs []ids.Id,
	userID ids.Id,
	now ids.Timestamp,
	defaultPositive ids.PrivilegeValue,
	required ThreadLevelRequiredLookup,
) map[ids.Id]MessageVisibility {
	acc := computeThreadLevelAccumulation(store, threadChain, userID, now, defaultPositive, required)

	out := make(map[ids.Id]MessageVisibility, len(messageIDs))
	for _, messageID := range messageIDs {
		var mv MessageVisibility
		results := make([]bool, len(visibilityPrivileges))
		for i, p := range visibilityPrivileges {
			positive := acc.positive[i]
			negative := acc.negative[i]
			if v, ok := store.Get(messageID, userID, p, now); ok {
				if v.Value > positive {
					positive = v.Value
				}
				if v.Value < negative {
					negative = v.Value
				}
			}
			effective := int(positive) + int(negative)
			results[i] = effective >= int(acc.required[i])
		}
		mv.View = results[0]
		mv.ViewCreatorUser = results[1]
		mv.ViewVotes = results[2]
		mv.ViewIPAddress = results[3]
		mv.GetComments = results[4]
		out[messageID] = mv
	}
	return out
}
