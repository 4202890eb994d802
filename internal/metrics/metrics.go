// Package metrics subscribes to internal/events as a WriteEvents/ReadEvents
// observer and exposes what it sees as Prometheus counters, the same way
// the original's ObserverCollection lets downstream consumers (journal,
// metrics) watch commands without the core importing them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
)

// Observer counts commands and votes as they are fired, and counts
// throttle rejections reported through RecordThrottleRejection. It implements both
// events.ReadEvents and events.WriteEvents so it can subscribe to a Bus
// directly.
type Observer struct {
	commandsTotal      *prometheus.CounterVec
	votesTotal         *prometheus.CounterVec
	privilegeGrants    prometheus.Counter
	throttleRejections *prometheus.CounterVec
}

// New registers the observer's metrics under reg and returns it ready to
// subscribe to an events.Bus.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		commandsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "forumcore_commands_total",
			Help: "Count of repository commands fired, by command name.",
		}, []string{"command"}),
		votesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "forumcore_message_votes_total",
			Help: "Count of message votes, by direction.",
		}, []string{"direction"}),
		privilegeGrants: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "forumcore_privilege_grants_total",
			Help: "Count of privilege assignments (including revocations).",
		}),
		throttleRejections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "forumcore_throttle_rejections_total",
			Help: "Count of commands rejected by the per-user throttle, by bucket.",
		}, []string{"bucket"}),
	}
	return o
}

// RecordThrottleRejection counts one throttle denial for bucket. It is not
// part of the events.WriteEvents interface, since throttling happens
// before a command would fire one, and the authz throttle check does not
// call it itself.
func (o *Observer) RecordThrottleRejection(bucket authz.Bucket) {
	o.throttleRejections.WithLabelValues(bucketName(bucket)).Inc()
}

func bucketName(b authz.Bucket) string {
	switch b {
	case authz.NewContent:
		return "new_content"
	case authz.EditContent:
		return "edit_content"
	case authz.EditPrivileges:
		return "edit_privileges"
	case authz.Vote:
		return "vote"
	case authz.Subscribe:
		return "subscribe"
	default:
		return "unknown"
	}
}

func (o *Observer) inc(command string) { o.commandsTotal.WithLabelValues(command).Inc() }

// --- events.ReadEvents ---

func (o *Observer) OnGetEntitiesCount(events.Context)                      { o.inc("get_entities_count") }
func (o *Observer) OnGetUsers(events.Context)                              { o.inc("get_users") }
func (o *Observer) OnGetUserByID(events.Context, ids.Id)                   { o.inc("get_user_by_id") }
func (o *Observer) OnGetUserByName(events.Context, string)                 { o.inc("get_user_by_name") }
func (o *Observer) OnGetDiscussionThreads(events.Context)                  { o.inc("get_discussion_threads") }
func (o *Observer) OnGetDiscussionThreadByID(events.Context, ids.Id)       { o.inc("get_discussion_thread_by_id") }
func (o *Observer) OnGetDiscussionThreadsOfUser(events.Context, *model.User) {
	o.inc("get_discussion_threads_of_user")
}
func (o *Observer) OnGetDiscussionTags(events.Context)       { o.inc("get_discussion_tags") }
func (o *Observer) OnGetDiscussionCategories(events.Context) { o.inc("get_discussion_categories") }

// --- events.WriteEvents ---

func (o *Observer) OnAddNewUser(events.Context, *model.User)    { o.inc("add_new_user") }
func (o *Observer) OnChangeUser(events.Context, *model.User)    { o.inc("change_user") }
func (o *Observer) OnDeleteUser(events.Context, ids.Id)         { o.inc("delete_user") }

func (o *Observer) OnAddNewDiscussionThread(events.Context, *model.DiscussionThread) {
	o.inc("add_new_discussion_thread")
}
func (o *Observer) OnChangeDiscussionThread(events.Context, *model.DiscussionThread) {
	o.inc("change_discussion_thread")
}
func (o *Observer) OnDeleteDiscussionThread(events.Context, ids.Id) { o.inc("delete_discussion_thread") }
func (o *Observer) OnMergeDiscussionThreads(events.Context, *model.DiscussionThread, *model.DiscussionThread) {
	o.inc("merge_discussion_threads")
}

func (o *Observer) OnAddNewDiscussionMessage(events.Context, *model.DiscussionThreadMessage) {
	o.inc("add_new_discussion_message")
}
func (o *Observer) OnChangeDiscussionMessage(events.Context, *model.DiscussionThreadMessage) {
	o.inc("change_discussion_message")
}
func (o *Observer) OnDeleteDiscussionMessage(events.Context, ids.Id) { o.inc("delete_discussion_message") }
func (o *Observer) OnDiscussionMessageVoted(_ events.Context, _ *model.DiscussionThreadMessage, _ ids.Id, up bool) {
	o.inc("discussion_message_voted")
	if up {
		o.votesTotal.WithLabelValues("up").Inc()
	} else {
		o.votesTotal.WithLabelValues("down").Inc()
	}
}

func (o *Observer) OnAddNewMessageComment(events.Context, *model.MessageComment) { o.inc("add_new_message_comment") }
func (o *Observer) OnMessageCommentSolved(events.Context, *model.MessageComment) { o.inc("message_comment_solved") }

func (o *Observer) OnSendPrivateMessage(events.Context, *model.PrivateMessage) { o.inc("send_private_message") }

func (o *Observer) OnAddNewDiscussionTag(events.Context, *model.DiscussionTag) { o.inc("add_new_discussion_tag") }
func (o *Observer) OnChangeDiscussionTag(events.Context, *model.DiscussionTag) { o.inc("change_discussion_tag") }
func (o *Observer) OnDeleteDiscussionTag(events.Context, ids.Id)               { o.inc("delete_discussion_tag") }

func (o *Observer) OnAddNewDiscussionCategory(events.Context, *model.DiscussionCategory) {
	o.inc("add_new_discussion_category")
}
func (o *Observer) OnChangeDiscussionCategory(events.Context, *model.DiscussionCategory) {
	o.inc("change_discussion_category")
}
func (o *Observer) OnDeleteDiscussionCategory(events.Context, ids.Id) { o.inc("delete_discussion_category") }

func (o *Observer) OnPrivilegeAssigned(events.Context, ids.Id, ids.Id, ids.PrivilegeValue) {
	o.inc("privilege_assigned")
	o.privilegeGrants.Inc()
}
