package privilege

import (
	"sync"

	"github.com/chirino/forumcore/internal/ids"
)

// Grant is one assigned privilege value, valid from GrantedAt until
// ExpiresAt (ids.Unset meaning "never").
type Grant struct {
	Value     ids.PrivilegeValue
	GrantedAt ids.Timestamp
	ExpiresAt ids.Timestamp
}

func (g Grant) expired(now ids.Timestamp) bool {
	return g.ExpiresAt != ids.Unset && g.ExpiresAt <= now
}

// Entry is one row returned by Store.ForUser / Store.ForEntity, pairing a
// grant with the ids that key it.
type Entry[P comparable] struct {
	EntityID  ids.Id
	UserID    ids.Id
	Privilege P
	Grant     Grant
}

// Store holds every (entityID, userID, privilege) -> Grant assignment for
// one scope (message/thread/tag/category/forum-wide), grounded on
// AuthorizationGrantedPrivilegeStore.h's multi_index container indexed on
// (userId,entityId), userId, and entityId. The outer two map levels give
// O(1) (entityID,userID) lookup, the hot path for resolution; ForUser and
// ForEntity satisfy the listing commands by scanning, which is acceptable
// off the per-item resolution path.
type Store[P comparable] struct {
	mu     sync.RWMutex
	grants map[ids.Id]map[ids.Id]map[P]Grant // entityID -> userID -> privilege -> grant
}

// NewStore returns an empty Store.
func NewStore[P comparable]() *Store[P] {
	return &Store[P]{grants: map[ids.Id]map[ids.Id]map[P]Grant{}}
}

// Grant assigns value to (entityID, userID, p), expiring after duration
// from now (ids.UnlimitedDuration never expires). A value of
// ids.NoPrivilegeValue, or a value of 0, revokes any existing grant
// instead (spec.md §4.5: "value==0 removes").
func (s *Store[P]) Grant(entityID, userID ids.Id, p P, value ids.PrivilegeValue, now ids.Timestamp, duration ids.PrivilegeDuration) {
	if !value.Ok || value.Value == 0 {
		s.Revoke(entityID, userID, p)
		return
	}
	expiresAt := calculatePrivilegeExpires(now, duration)

	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.grants[entityID]
	if !ok {
		byUser = map[ids.Id]map[P]Grant{}
		s.grants[entityID] = byUser
	}
	byPriv, ok := byUser[userID]
	if !ok {
		byPriv = map[P]Grant{}
		byUser[userID] = byPriv
	}
	byPriv[p] = Grant{Value: value, GrantedAt: now, ExpiresAt: expiresAt}
}

// Revoke removes any grant of p to userID on entityID.
func (s *Store[P]) Revoke(entityID, userID ids.Id, p P) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.grants[entityID]
	if !ok {
		return
	}
	byPriv, ok := byUser[userID]
	if !ok {
		return
	}
	delete(byPriv, p)
	if len(byPriv) == 0 {
		delete(byUser, userID)
	}
	if len(byUser) == 0 {
		delete(s.grants, entityID)
	}
}

// RevokeAll drops every grant held by userID on entityID, across all
// privileges of this scope. Used when an entity or user is deleted.
func (s *Store[P]) RevokeAll(entityID, userID ids.Id) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.grants[entityID]
	if !ok {
		return
	}
	delete(byUser, userID)
	if len(byUser) == 0 {
		delete(s.grants, entityID)
	}
}

// RevokeEntity drops every grant on entityID, for every user. Used when
// the entity itself is deleted.
func (s *Store[P]) RevokeEntity(entityID ids.Id) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, entityID)
}

// RevokeUserEverywhere drops every grant held by userID, on any entity of
// this scope. Used when the user itself is deleted.
func (s *Store[P]) RevokeUserEverywhere(userID ids.Id) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for entityID, byUser := range s.grants {
		delete(byUser, userID)
		if len(byUser) == 0 {
			delete(s.grants, entityID)
		}
	}
}

// Get returns the non-expired grant of p to userID on entityID, if any.
func (s *Store[P]) Get(entityID, userID ids.Id, p P, now ids.Timestamp) (ids.PrivilegeValue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byUser, ok := s.grants[entityID]
	if !ok {
		return ids.NoPrivilegeValue, false
	}
	byPriv, ok := byUser[userID]
	if !ok {
		return ids.NoPrivilegeValue, false
	}
	g, ok := byPriv[p]
	if !ok || g.expired(now) {
		return ids.NoPrivilegeValue, false
	}
	return g.Value, true
}

// ForEntity lists every non-expired grant on entityID, across every user
// and privilege ("view assigned privileges" commands).
func (s *Store[P]) ForEntity(entityID ids.Id, now ids.Timestamp) []Entry[P] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byUser, ok := s.grants[entityID]
	if !ok {
		return nil
	}
	var out []Entry[P]
	for userID, byPriv := range byUser {
		for p, g := range byPriv {
			if g.expired(now) {
				continue
			}
			out = append(out, Entry[P]{EntityID: entityID, UserID: userID, Privilege: p, Grant: g})
		}
	}
	return out
}

// ForUser lists every non-expired grant assigned to userID, across every
// entity and privilege of this scope ("view user assigned privileges").
func (s *Store[P]) ForUser(userID ids.Id, now ids.Timestamp) []Entry[P] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry[P]
	for entityID, byUser := range s.grants {
		byPriv, ok := byUser[userID]
		if !ok {
			continue
		}
		for p, g := range byPriv {
			if g.expired(now) {
				continue
			}
			out = append(out, Entry[P]{EntityID: entityID, UserID: userID, Privilege: p, Grant: g})
		}
	}
	return out
}

// GrantedPrivilegeStore composes the five independent grant stores, one
// per target kind (spec.md §4.5).
type GrantedPrivilegeStore struct {
	Message   *Store[MessagePrivilege]
	Thread    *Store[ThreadPrivilege]
	Tag       *Store[TagPrivilege]
	Category  *Store[CategoryPrivilege]
	ForumWide *Store[ForumWidePrivilege]
}

// RevokeUserEverywhere drops every grant held by userID across all five
// scopes. Called when the user itself is deleted.
func (g *GrantedPrivilegeStore) RevokeUserEverywhere(userID ids.Id) {
	g.Message.RevokeUserEverywhere(userID)
	g.Thread.RevokeUserEverywhere(userID)
	g.Tag.RevokeUserEverywhere(userID)
	g.Category.RevokeUserEverywhere(userID)
	g.ForumWide.RevokeUserEverywhere(userID)
}

// NewGrantedPrivilegeStore returns an empty GrantedPrivilegeStore.
func NewGrantedPrivilegeStore() *GrantedPrivilegeStore {
	return &GrantedPrivilegeStore{
		Message:   NewStore[MessagePrivilege](),
		Thread:    NewStore[ThreadPrivilege](),
		Tag:       NewStore[TagPrivilege](),
		Category:  NewStore[CategoryPrivilege](),
		ForumWide: NewStore[ForumWidePrivilege](),
	}
}
