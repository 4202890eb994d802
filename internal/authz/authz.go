// Package authz implements the forum's per-command authorization façade
// (spec.md §4.6): one canDoY-style method per command, each resolving the
// relevant privilege via internal/privilege's scope-chain walk and, for
// mutating commands, checking the actor's throttle bucket. A user holding
// the NO_THROTTLING forum-wide privilege bypasses throttling entirely,
// grounded on Authorization.h/MemoryRepositoryAuthorization.h.
package authz

import (
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// Status mirrors AuthorizationStatus: OK, NOT_ALLOWED, or THROTTLED.
type Status int

const (
	OK Status = iota
	NotAllowed
	Throttled
)

// Authorizer bundles the state every per-kind façade needs: the entity
// collection (for its granted-privilege and forum-wide stores) and the
// shared throttler.
type Authorizer struct {
	EC        *entitycollection.EntityCollection
	Throttle  *Throttler
}

// NewAuthorizer builds an Authorizer over ec with the given throttle
// limits.
func NewAuthorizer(ec *entitycollection.EntityCollection, limits [bucketCount]Limit) *Authorizer {
	return &Authorizer{EC: ec, Throttle: NewThrottler(limits)}
}

// noThrottling reports whether currentUser holds the forum-wide
// NO_THROTTLING privilege, bypassing every throttle bucket.
func (a *Authorizer) noThrottling(currentUser *model.User, now ids.Timestamp) bool {
	allowed, _ := ResolveForumWidePrivilege(a.EC.Grants, a.EC.ForumWide, currentUser.ID, now, a.EC.ForumWide.DefaultLevelForLoggedInUser, privilege.ForumNoThrottling)
	return allowed
}

// checkThrottle applies bucket's limit to currentUser unless they hold
// NO_THROTTLING.
func (a *Authorizer) checkThrottle(currentUser *model.User, bucket Bucket, now ids.Timestamp) Status {
	if a.noThrottling(currentUser, now) {
		return OK
	}
	if !a.Throttle.Allow(bucket, currentUser.ID, now) {
		return Throttled
	}
	return OK
}

// defaultPositive returns the positive-accumulator seed for a user: 0 for
// the anonymous user, the configured logged-in baseline otherwise
// (spec.md §4.5 step 1).
func (a *Authorizer) defaultPositive(currentUser *model.User) ids.PrivilegeValue {
	if currentUser == nil || currentUser.ID.IsEmpty() {
		return ids.NoPrivilegeValue
	}
	return a.EC.ForumWide.DefaultLevelForLoggedInUser
}
