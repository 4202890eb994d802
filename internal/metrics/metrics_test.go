package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

func TestObserverCountsCommandsAndVotes(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := New(reg)

	u := model.NewUser(ids.Id{1}, "alice", ids.Timestamp(1), ids.VisitDetails{})
	o.OnAddNewUser(events.Context{}, u)
	o.OnAddNewUser(events.Context{}, u)
	assert.Equal(t, float64(2), testutil.ToFloat64(o.commandsTotal.WithLabelValues("add_new_user")))

	msg := &model.DiscussionThreadMessage{}
	o.OnDiscussionMessageVoted(events.Context{}, msg, ids.Id{2}, true)
	o.OnDiscussionMessageVoted(events.Context{}, msg, ids.Id{3}, false)
	assert.Equal(t, float64(1), testutil.ToFloat64(o.votesTotal.WithLabelValues("up")))
	assert.Equal(t, float64(1), testutil.ToFloat64(o.votesTotal.WithLabelValues("down")))
}

func TestObserverCountsPrivilegeGrants(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := New(reg)

	o.OnPrivilegeAssigned(events.Context{}, ids.Id{1}, ids.Id{2}, ids.SomePrivilegeValue(1))
	assert.Equal(t, float64(1), testutil.ToFloat64(o.privilegeGrants))
}

func TestRecordThrottleRejectionByBucket(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := New(reg)

	o.RecordThrottleRejection(authz.Vote)
	o.RecordThrottleRejection(authz.Vote)
	o.RecordThrottleRejection(authz.NewContent)

	assert.Equal(t, float64(2), testutil.ToFloat64(o.throttleRejections.WithLabelValues("vote")))
	assert.Equal(t, float64(1), testutil.ToFloat64(o.throttleRejections.WithLabelValues("new_content")))
}

func TestBucketNameUnknown(t *testing.T) {
	assert.Equal(t, "unknown", bucketName(authz.Bucket(99)))
}
