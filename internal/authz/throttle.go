package authz

import (
	"sync"

	"github.com/chirino/forumcore/internal/ids"
)

// Bucket names one of the rate-limited action classes (spec.md §4.6).
type Bucket int

const (
	NewContent Bucket = iota
	EditContent
	EditPrivileges
	Vote
	Subscribe
	bucketCount
)

// Limit configures a bucket's sliding window: at most MaxCount actions
// per PeriodSeconds.
type Limit struct {
	MaxCount      int
	PeriodSeconds int64
}

// Throttler tracks a sliding window of recent actions per (bucket, user)
// and reports whether a new one is allowed, grounded on
// MemoryRepositoryAuthorization.h's per-action throttling (spec.md §4.6).
// A user holding the NO_THROTTLING forum-wide privilege bypasses this
// entirely; callers check that first.
type Throttler struct {
	mu      sync.Mutex
	limits  [bucketCount]Limit
	windows [bucketCount]map[ids.Id][]ids.Timestamp
}

// NewThrottler builds a Throttler with limits configured per bucket.
// A zero Limit (MaxCount == 0) disables throttling for that bucket.
func NewThrottler(limits [bucketCount]Limit) *Throttler {
	t := &Throttler{limits: limits}
	for i := range t.windows {
		t.windows[i] = map[ids.Id][]ids.Timestamp{}
	}
	return t
}

// Allow records one action for (bucket, userID) at now and reports
// whether it is within the configured limit. Expired entries are pruned
// from the window on every call, so memory use is bounded by active users
// times their bucket's MaxCount.
func (t *Throttler) Allow(bucket Bucket, userID ids.Id, now ids.Timestamp) bool {
	limit := t.limits[bucket]
	if limit.MaxCount <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	window := t.windows[bucket][userID]
	cutoff := now - ids.Timestamp(limit.PeriodSeconds)
	kept := window[:0]
	for _, ts := range window {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit.MaxCount {
		t.windows[bucket][userID] = kept
		return false
	}

	kept = append(kept, now)
	t.windows[bucket][userID] = kept
	return true
}
