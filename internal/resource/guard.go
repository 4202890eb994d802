// Package resource implements the reader-writer coordination boundary
// around an EntityCollection (spec.md §5, §9 "Reader-writer lock with
// deferred last-seen update pattern"): reads run concurrently, writes are
// serialized, and a last-seen bump discovered during a read is queued and
// applied under a fresh write lock once the read completes rather than
// upgrading the lock in place, grounded on MemoryRepository.h's
// ResourceGuard<EntityCollection> plus PerformedByWithLastSeenUpdateGuard.
package resource

import (
	"sync"

	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
)

// pendingLastSeen is one queued "bump this user's last-seen to at-least
// this timestamp" side effect discovered during a read transaction.
type pendingLastSeen struct {
	userID ids.Id
	at     ids.Timestamp
}

// Guard serializes access to a single EntityCollection. Reads may run
// concurrently with each other; writes are exclusive. A read transaction
// may call Defer to queue a side effect that is only safe to apply under
// a write lock; Guard runs every queued deferral in one short write
// transaction immediately after the read transaction that queued it
// returns, so callers never need to hand-roll lock upgrades.
type Guard struct {
	mu sync.RWMutex
	ec *entitycollection.EntityCollection

	pendingMu sync.Mutex
	pending   []pendingLastSeen
}

// New wraps ec in a Guard.
func New(ec *entitycollection.EntityCollection) *Guard {
	return &Guard{ec: ec}
}

// Read runs fn with a shared read lock held, then flushes any last-seen
// bumps fn queued via Defer under a fresh write lock.
func (g *Guard) Read(fn func(ec *entitycollection.EntityCollection)) {
	g.mu.RLock()
	fn(g.ec)
	g.mu.RUnlock()

	g.flushPending()
}

// Write runs fn with the exclusive write lock held. fn may also call
// Defer (e.g. a command that both mutates and happens to touch
// last-seen); those deferrals are flushed after fn returns and the write
// lock is released, just as with Read.
func (g *Guard) Write(fn func(ec *entitycollection.EntityCollection)) {
	g.mu.Lock()
	fn(g.ec)
	g.mu.Unlock()

	g.flushPending()
}

// BatchInsert runs fn with the write lock held and the collection's
// index maintenance suspended for the duration, resuming (and rebuilding
// every secondary index in one pass) before the lock is released
// (spec.md §4.1, §8 "Round-trip").
func (g *Guard) BatchInsert(fn func(ec *entitycollection.EntityCollection)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ec.StartBatchInsert()
	defer g.ec.StopBatchInsert()

	fn(g.ec)
}

// Defer queues a last-seen bump for userID to at, to be applied under a
// fresh write lock once the calling transaction completes. Calling this
// from within Write is harmless but redundant — prefer bumping directly
// via User.SetLastSeen when a write lock is already held.
func (g *Guard) Defer(userID ids.Id, at ids.Timestamp) {
	g.pendingMu.Lock()
	g.pending = append(g.pending, pendingLastSeen{userID: userID, at: at})
	g.pendingMu.Unlock()
}

// flushPending drains the queued last-seen bumps (if any) under one
// write transaction. Multiple bumps for the same user collapse to the
// single latest timestamp, since SetLastSeen is idempotent-forward: it
// is always safe to apply, and later bumps dominate earlier ones.
func (g *Guard) flushPending() {
	g.pendingMu.Lock()
	if len(g.pending) == 0 {
		g.pendingMu.Unlock()
		return
	}
	batch := g.pending
	g.pending = nil
	g.pendingMu.Unlock()

	latest := make(map[ids.Id]ids.Timestamp, len(batch))
	for _, p := range batch {
		if p.at > latest[p.userID] {
			latest[p.userID] = p.at
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for userID, at := range latest {
		u, ok := g.ec.Users.Get(userID)
		if !ok {
			continue
		}
		if at > u.LastSeen() {
			u.SetLastSeen(at)
		}
	}
}
