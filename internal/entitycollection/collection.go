package entitycollection

import (
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

// EntityCollection aggregates one sub-collection per entity kind and
// implements the operations that span more than one of them: cascade
// delete, thread/tag merges, message moves, and the batch-insert toggle
// (spec.md §4.3). It also owns the two privilege structures that do not
// belong to any single entity: the forum-wide required-privilege store
// and the granted-privilege store shared by every scope (spec.md §4.4-§4.5).
type EntityCollection struct {
	Users           *Users
	Threads         *Threads
	Messages        *Messages
	Comments        *Comments
	Tags            *Tags
	Categories      *Categories
	Attachments     *Attachments
	PrivateMessages *PrivateMessages

	ForumWide *privilege.ForumWideStore
	Grants    *privilege.GrantedPrivilegeStore
}

// New builds an empty EntityCollection using collator for every
// collation-aware name index.
func New(collator *collation.Collator) *EntityCollection {
	return &EntityCollection{
		Users:           NewUsers(collator),
		Threads:         NewThreads(collator),
		Messages:        NewMessages(),
		Comments:        NewComments(),
		Tags:            NewTags(collator),
		Categories:      NewCategories(),
		Attachments:     NewAttachments(),
		PrivateMessages: NewPrivateMessages(),
		ForumWide:       &privilege.ForumWideStore{},
		Grants:          privilege.NewGrantedPrivilegeStore(),
	}
}

func keysOf[K comparable, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// StartBatchInsert suspends secondary-index maintenance across every
// sub-collection (spec.md §4.1). The caller (ResourceGuard) is
// responsible for holding the write lock for the whole batch.
func (ec *EntityCollection) StartBatchInsert() {
	ec.Users.StartBatch()
	ec.Threads.StartBatch()
	ec.Messages.StartBatch()
	ec.Comments.StartBatch()
	ec.Tags.StartBatch()
	ec.Categories.StartBatch()
	ec.Attachments.StartBatch()
}

// StopBatchInsert resumes maintenance and rebuilds every secondary index
// from its primary store in one pass.
func (ec *EntityCollection) StopBatchInsert() {
	ec.Users.StopBatch()
	ec.Threads.StopBatch()
	ec.Messages.StopBatch()
	ec.Comments.StopBatch()
	ec.Tags.StopBatch()
	ec.Categories.StopBatch()
	ec.Attachments.StopBatch()
}

// GetMessageContentPointer returns a non-owning view over a message's
// content, for callers that only need to slice or measure it without
// materializing a copy (spec.md §4.3).
func (ec *EntityCollection) GetMessageContentPointer(messageID ids.Id) (ids.StringView, bool) {
	m, ok := ec.Messages.Get(messageID)
	if !ok {
		return ids.StringView{}, false
	}
	return m.ContentView(), true
}

// DeleteComment removes a comment and detaches it from its parent
// message and author.
func (ec *EntityCollection) DeleteComment(commentID ids.Id) bool {
	c, ok := ec.Comments.Get(commentID)
	if !ok {
		return false
	}
	if parent := c.ParentMessage(); parent != nil {
		parent.RemoveComment(commentID)
		if parent.SolvedCommentID() == commentID {
			parent.SetSolved(ids.Empty)
		}
	}
	if author, ok := ec.Users.Get(c.CreatedBy()); ok {
		author.RemoveOwnComment(commentID)
	}
	ec.Comments.Remove(commentID)
	return true
}

// DeleteAttachment removes an attachment and detaches it from every
// message that referenced it (spec.md §3.4: "removing an attachment only
// removes its membership in message attachment sets").
func (ec *EntityCollection) DeleteAttachment(attachmentID ids.Id) bool {
	a, ok := ec.Attachments.Get(attachmentID)
	if !ok {
		return false
	}
	for _, m := range a.Messages() {
		m.RemoveAttachment(attachmentID)
	}
	ec.Attachments.Remove(attachmentID)
	return true
}

// deleteMessage removes a message, its comments, its attachment
// back-references, and its creator's own-message entry. If
// removeFromThread is false the caller is already deleting the parent
// thread wholesale and will remove it from the Threads collection
// itself, so the thread's own message index is left untouched here
// (spec.md §3.4: suppress redundant back-removal from an
// already-being-deleted owner).
func (ec *EntityCollection) deleteMessage(m *model.DiscussionThreadMessage, removeFromThread bool) {
	for _, commentID := range keysOf(m.Comments()) {
		ec.DeleteComment(commentID)
	}
	for attachmentID := range m.Attachments() {
		if a, ok := ec.Attachments.Get(attachmentID); ok {
			a.RemoveMessage(m.ID)
		}
	}
	if author, ok := ec.Users.Get(m.CreatedBy()); ok {
		author.RemoveOwnMessage(m.ID)
	}
	if removeFromThread {
		if t := m.ParentThread(); t != nil {
			wasLatest := t.LatestMessageCreated() == m.Created()
			t.RemoveMessage(m)
			if wasLatest {
				t.RecomputeLatestMessageCreated()
			}
		}
	}
	ec.Grants.Message.RevokeEntity(m.ID)
	ec.Messages.Remove(m.ID)
}

// DeleteMessage removes a single message without deleting its thread.
func (ec *EntityCollection) DeleteMessage(messageID ids.Id) bool {
	m, ok := ec.Messages.Get(messageID)
	if !ok {
		return false
	}
	ec.deleteMessage(m, true)
	return true
}

// DeleteThread removes a thread and cascades to its messages (spec.md
// §3.4).
func (ec *EntityCollection) DeleteThread(threadID ids.Id) bool {
	t, ok := ec.Threads.Get(threadID)
	if !ok {
		return false
	}
	for _, m := range append([]*model.DiscussionThreadMessage{}, t.Messages()...) {
		ec.deleteMessage(m, false)
	}
	for _, tagID := range keysOf(t.Tags()) {
		if tag, ok := ec.Tags.Get(tagID); ok {
			tag.RemoveThread(threadID)
		}
	}
	if creator, ok := ec.Users.Get(t.CreatedBy()); ok {
		creator.RemoveOwnThread(threadID)
	}
	for _, userID := range keysOf(t.SubscribedUsers()) {
		if u, ok := ec.Users.Get(userID); ok {
			u.Unsubscribe(threadID)
		}
	}
	ec.Grants.Thread.RevokeEntity(threadID)
	ec.Threads.Remove(threadID)
	return true
}

// DeleteUser removes a user and cascades to their own threads and
// messages (spec.md §3.4).
func (ec *EntityCollection) DeleteUser(userID ids.Id) bool {
	u, ok := ec.Users.Get(userID)
	if !ok {
		return false
	}
	for _, threadID := range keysOf(u.OwnThreads()) {
		ec.DeleteThread(threadID)
	}
	for _, messageID := range keysOf(u.OwnMessages()) {
		ec.DeleteMessage(messageID)
	}
	for _, commentID := range keysOf(u.OwnComments()) {
		ec.DeleteComment(commentID)
	}
	ec.PrivateMessages.RemoveAllInvolving(userID)
	for _, threadID := range keysOf(u.SubscribedThreads()) {
		if t, ok := ec.Threads.Get(threadID); ok {
			t.RemoveSubscriber(userID)
		}
	}
	ec.Grants.RevokeUserEverywhere(userID)
	ec.Users.Remove(userID)
	return true
}

// MoveDiscussionThreadMessage reassigns a message to a different thread,
// preserving its votes (spec.md SUPPLEMENTED FEATURES: vote-move
// preserves votes, resolving Open Question 3 against original_source).
// The message's created timestamp and content are unchanged, so its
// position in the destination thread's ranked index is determined purely
// by that timestamp.
func (ec *EntityCollection) MoveDiscussionThreadMessage(messageID, destinationThreadID ids.Id) bool {
	m, ok := ec.Messages.Get(messageID)
	if !ok {
		return false
	}
	dest, ok := ec.Threads.Get(destinationThreadID)
	if !ok {
		return false
	}
	source := m.ParentThread()
	if source == dest {
		return true
	}
	if source != nil {
		wasLatest := source.LatestMessageCreated() == m.Created()
		source.RemoveMessage(m)
		if wasLatest {
			source.RecomputeLatestMessageCreated()
		}
	}
	m.SetParentThread(dest)
	dest.AddMessage(m)
	return true
}

// MergeDiscussionThreads moves every message from source into
// destination and deletes source (spec.md §4.3 mergeDiscussionThreads).
func (ec *EntityCollection) MergeDiscussionThreads(sourceThreadID, destinationThreadID ids.Id) bool {
	source, ok := ec.Threads.Get(sourceThreadID)
	if !ok {
		return false
	}
	if _, ok := ec.Threads.Get(destinationThreadID); !ok {
		return false
	}
	for _, m := range append([]*model.DiscussionThreadMessage{}, source.Messages()...) {
		ec.MoveDiscussionThreadMessage(m.ID, destinationThreadID)
	}
	return ec.DeleteThread(sourceThreadID)
}

// MergeDiscussionTags reassigns every thread tagged with source to also
// carry destination, then deletes source (spec.md §4.3
// mergeDiscussionTags).
func (ec *EntityCollection) MergeDiscussionTags(sourceTagID, destinationTagID ids.Id) bool {
	source, ok := ec.Tags.Get(sourceTagID)
	if !ok {
		return false
	}
	dest, ok := ec.Tags.Get(destinationTagID)
	if !ok {
		return false
	}
	for threadID, ptr := range source.Threads() {
		if !dest.HasThread(threadID) {
			dest.AddThread(ptr, threadID)
			ptr.AddTag(dest, destinationTagID)
		}
		ptr.RemoveTag(sourceTagID)
	}
	return ec.deleteTag(sourceTagID)
}

func (ec *EntityCollection) deleteTag(tagID ids.Id) bool {
	t, ok := ec.Tags.Get(tagID)
	if !ok {
		return false
	}
	for threadID := range t.Threads() {
		if thread, ok := ec.Threads.Get(threadID); ok {
			thread.RemoveTag(tagID)
		}
	}
	for _, cat := range ec.Categories.ByName() {
		cat.RemoveTag(tagID)
	}
	ec.Grants.Tag.RevokeEntity(tagID)
	ec.Tags.Remove(tagID)
	return true
}

// DeleteTag removes a tag from every thread that carries it and from any
// category it is attached to.
func (ec *EntityCollection) DeleteTag(tagID ids.Id) bool { return ec.deleteTag(tagID) }

// ReparentCategory moves cat under newParent, rejecting the change if it
// would create a cycle (spec.md invariant 6).
func (ec *EntityCollection) ReparentCategory(categoryID, newParentID ids.Id) error {
	cat, ok := ec.Categories.Get(categoryID)
	if !ok {
		return ErrNotFound
	}
	if newParentID.IsEmpty() {
		if old := cat.Parent(); old != nil {
			old.RemoveChild(categoryID)
		}
		cat.SetParent(nil)
		return nil
	}
	newParent, ok := ec.Categories.Get(newParentID)
	if !ok {
		return ErrNotFound
	}
	if newParent == cat || IsAncestor(cat, newParent) {
		return ErrCircularReference
	}
	if old := cat.Parent(); old != nil {
		old.RemoveChild(categoryID)
	}
	cat.SetParent(newParent)
	newParent.AddChild(cat, categoryID)
	return nil
}

// DeleteCategory detaches cat from its parent and children (children
// become root categories) and removes it.
func (ec *EntityCollection) DeleteCategory(categoryID ids.Id) bool {
	cat, ok := ec.Categories.Get(categoryID)
	if !ok {
		return false
	}
	if parent := cat.Parent(); parent != nil {
		parent.RemoveChild(categoryID)
	}
	for _, childID := range keysOf(cat.Children()) {
		if child, ok := ec.Categories.Get(childID); ok {
			child.SetParent(nil)
		}
	}
	for tagID := range cat.Tags() {
		cat.RemoveTag(tagID)
	}
	ec.Grants.Category.RevokeEntity(categoryID)
	ec.Categories.Remove(categoryID)
	return true
}
