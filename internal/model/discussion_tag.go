package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/privilege"
)

// DiscussionTagNotifications mirrors UserNotifications for the fields
// DiscussionTag exposes to secondary indices (spec.md §4.1: name, thread
// count, message count).
type DiscussionTagNotifications struct {
	OnPrepareUpdateName         func(*DiscussionTag)
	OnUpdateName                func(*DiscussionTag)
	OnPrepareUpdateThreadCount  func(*DiscussionTag)
	OnUpdateThreadCount         func(*DiscussionTag)
	OnPrepareUpdateMessageCount func(*DiscussionTag)
	OnUpdateMessageCount        func(*DiscussionTag)
}

// DiscussionTag labels a set of threads (spec.md §3.2).
type DiscussionTag struct {
	ID ids.Id

	notify *DiscussionTagNotifications

	name    string
	uiBlob  string // ui color / style, opaque to the core

	created         ids.Timestamp
	creationDetails ids.VisitDetails

	threads map[ids.Id]entity.Pointer[DiscussionThread]

	// Required holds this tag's own required-privilege thresholds for
	// tag-, thread-, and message-scoped privileges (spec.md §4.4: "a tag
	// has tag + thread + message stores").
	Required privilege.TagScoped
}

// NewDiscussionTag constructs an empty tag.
func NewDiscussionTag(id ids.Id, name string, created ids.Timestamp, details ids.VisitDetails) *DiscussionTag {
	return &DiscussionTag{
		ID:              id,
		name:            name,
		created:         created,
		creationDetails: details,
		threads:         map[ids.Id]entity.Pointer[DiscussionThread]{},
	}
}

// InstallNotifications wires the owning collection's callbacks.
func (t *DiscussionTag) InstallNotifications(n *DiscussionTagNotifications) { t.notify = n }

// Name returns the tag's display name.
func (t *DiscussionTag) Name() string { return t.name }

// SetName updates the name, bracketed by the name index's prepare/commit.
func (t *DiscussionTag) SetName(name string) {
	if t.notify != nil && t.notify.OnPrepareUpdateName != nil {
		t.notify.OnPrepareUpdateName(t)
	}
	t.name = name
	if t.notify != nil && t.notify.OnUpdateName != nil {
		t.notify.OnUpdateName(t)
	}
}

// UIBlob / SetUIBlob store opaque UI metadata (e.g. a color swatch) the
// core does not interpret.
func (t *DiscussionTag) UIBlob() string     { return t.uiBlob }
func (t *DiscussionTag) SetUIBlob(v string) { t.uiBlob = v }

// Created / CreationDetails report creation provenance.
func (t *DiscussionTag) Created() ids.Timestamp          { return t.created }
func (t *DiscussionTag) CreationDetails() ids.VisitDetails { return t.creationDetails }

// ThreadCount is the ranked-index key for a tag's thread count.
func (t *DiscussionTag) ThreadCount() int { return len(t.threads) }

// MessageCount sums message counts across the tag's threads; maintained
// by the owning collection via RefCountedThreads elsewhere, exposed here
// for read paths that only have the tag in hand.
func (t *DiscussionTag) MessageCount(messageCountOf func(threadID ids.Id) int) int {
	total := 0
	for id := range t.threads {
		total += messageCountOf(id)
	}
	return total
}

// AddThread/RemoveThread maintain the tag's thread set, bracketed by the
// threadCount ranked index's prepare/commit.
func (t *DiscussionTag) AddThread(ptr entity.Pointer[DiscussionThread], threadID ids.Id) {
	if t.notify != nil && t.notify.OnPrepareUpdateThreadCount != nil {
		t.notify.OnPrepareUpdateThreadCount(t)
	}
	t.threads[threadID] = ptr
	if t.notify != nil && t.notify.OnUpdateThreadCount != nil {
		t.notify.OnUpdateThreadCount(t)
	}
}

func (t *DiscussionTag) RemoveThread(threadID ids.Id) {
	if _, ok := t.threads[threadID]; !ok {
		return
	}
	if t.notify != nil && t.notify.OnPrepareUpdateThreadCount != nil {
		t.notify.OnPrepareUpdateThreadCount(t)
	}
	delete(t.threads, threadID)
	if t.notify != nil && t.notify.OnUpdateThreadCount != nil {
		t.notify.OnUpdateThreadCount(t)
	}
}

// Threads returns the tag's thread set.
func (t *DiscussionTag) Threads() map[ids.Id]entity.Pointer[DiscussionThread] { return t.threads }

// HasThread reports whether threadID carries this tag.
func (t *DiscussionTag) HasThread(threadID ids.Id) bool {
	_, ok := t.threads[threadID]
	return ok
}
