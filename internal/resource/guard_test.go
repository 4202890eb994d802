package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

func newTestGuard(t *testing.T) (*Guard, *model.User) {
	t.Helper()
	ec := entitycollection.New(collation.New("en"))
	u := model.NewUser(ids.Id{1}, "alice", ids.Timestamp(1), ids.VisitDetails{})
	require.NoError(t, ec.Users.Add(u))
	return New(ec), u
}

func TestReadDeferredLastSeenAppliesAfterReadReturns(t *testing.T) {
	g, u := newTestGuard(t)

	g.Read(func(ec *entitycollection.EntityCollection) {
		found, ok := ec.Users.Get(u.ID)
		require.True(t, ok)
		assert.Equal(t, ids.Timestamp(1), found.LastSeen())
		g.Defer(u.ID, ids.Timestamp(42))
	})

	assert.Equal(t, ids.Timestamp(42), u.LastSeen())
}

func TestDeferredLastSeenNeverMovesBackward(t *testing.T) {
	g, u := newTestGuard(t)

	g.Read(func(ec *entitycollection.EntityCollection) {
		g.Defer(u.ID, ids.Timestamp(100))
	})
	require.Equal(t, ids.Timestamp(100), u.LastSeen())

	g.Read(func(ec *entitycollection.EntityCollection) {
		g.Defer(u.ID, ids.Timestamp(5))
	})
	assert.Equal(t, ids.Timestamp(100), u.LastSeen())
}

func TestMultipleDeferralsForSameUserCollapseToLatest(t *testing.T) {
	g, u := newTestGuard(t)

	g.Read(func(ec *entitycollection.EntityCollection) {
		g.Defer(u.ID, ids.Timestamp(10))
		g.Defer(u.ID, ids.Timestamp(30))
		g.Defer(u.ID, ids.Timestamp(20))
	})

	assert.Equal(t, ids.Timestamp(30), u.LastSeen())
}

func TestWriteMutatesCollectionUnderExclusiveLock(t *testing.T) {
	g, u := newTestGuard(t)

	g.Write(func(ec *entitycollection.EntityCollection) {
		th := model.NewDiscussionThread(ids.Id{2}, "thread", u.ID, ids.Now(), ids.VisitDetails{})
		require.NoError(t, ec.Threads.Add(th))
	})

	g.Read(func(ec *entitycollection.EntityCollection) {
		assert.True(t, ec.Threads.Contains(ids.Id{2}))
	})
}

func TestBatchInsertSuspendsAndRebuildsIndices(t *testing.T) {
	g, u := newTestGuard(t)

	g.BatchInsert(func(ec *entitycollection.EntityCollection) {
		for i := byte(2); i < 5; i++ {
			th := model.NewDiscussionThread(ids.Id{i}, "thread", u.ID, ids.Now(), ids.VisitDetails{})
			require.NoError(t, ec.Threads.Add(th))
		}
	})

	g.Read(func(ec *entitycollection.EntityCollection) {
		assert.Len(t, ec.Threads.ByName(), 3)
	})
}

func TestConcurrentReadsAndWritesDoNotRace(t *testing.T) {
	g, u := newTestGuard(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			g.Read(func(ec *entitycollection.EntityCollection) {
				g.Defer(u.ID, ids.Timestamp(n))
			})
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, int(u.LastSeen()), 0)
}
