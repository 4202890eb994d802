package privilege

import "github.com/chirino/forumcore/internal/ids"

// MessageRequiredStore holds the required-privilege threshold for each
// MessagePrivilege at one scope (spec.md §4.4). The zero value means
// every threshold is ids.NoPrivilegeValue ("fall through to the next
// scope").
type MessageRequiredStore struct {
	values [messageCount]ids.PrivilegeValue
}

func (s *MessageRequiredStore) Get(p MessagePrivilege) ids.PrivilegeValue { return s.values[p] }
func (s *MessageRequiredStore) Set(p MessagePrivilege, v ids.PrivilegeValue) { s.values[p] = v }

// ThreadRequiredStore holds the required-privilege threshold for each
// ThreadPrivilege at one scope.
type ThreadRequiredStore struct {
	values [threadCount]ids.PrivilegeValue
}

func (s *ThreadRequiredStore) Get(p ThreadPrivilege) ids.PrivilegeValue { return s.values[p] }
func (s *ThreadRequiredStore) Set(p ThreadPrivilege, v ids.PrivilegeValue) { s.values[p] = v }

// TagRequiredStore holds the required-privilege threshold for each
// TagPrivilege at one scope.
type TagRequiredStore struct {
	values [tagCount]ids.PrivilegeValue
}

func (s *TagRequiredStore) Get(p TagPrivilege) ids.PrivilegeValue { return s.values[p] }
func (s *TagRequiredStore) Set(p TagPrivilege, v ids.PrivilegeValue) { s.values[p] = v }

// CategoryRequiredStore holds the required-privilege threshold for each
// CategoryPrivilege at one scope.
type CategoryRequiredStore struct {
	values [categoryCount]ids.PrivilegeValue
}

func (s *CategoryRequiredStore) Get(p CategoryPrivilege) ids.PrivilegeValue { return s.values[p] }
func (s *CategoryRequiredStore) Set(p CategoryPrivilege, v ids.PrivilegeValue) { s.values[p] = v }

// DefaultGrant bundles a privilege value with the duration it is granted
// for, used for "new user creating a thread" / "new user posting a
// message" (spec.md §4.4).
type DefaultGrant struct {
	Value    ids.PrivilegeValue
	Duration ids.PrivilegeDuration
}

// ThreadScoped composes the thread + message required-privilege stores a
// DiscussionThread entity owns (spec.md §4.4: "a thread has thread +
// message stores").
type ThreadScoped struct {
	Thread  ThreadRequiredStore
	Message MessageRequiredStore
}

// TagScoped composes the tag + thread + message stores a DiscussionTag
// entity owns.
type TagScoped struct {
	Tag     TagRequiredStore
	Thread  ThreadRequiredStore
	Message MessageRequiredStore
}

// CategoryScoped wraps the category store a DiscussionCategory owns.
type CategoryScoped struct {
	Category CategoryRequiredStore
}

// ForumWideStore composes every scope's required-privilege store plus the
// default grants issued to a newly-registered user (spec.md §4.4).
type ForumWideStore struct {
	ForumWide ForumWideRequiredStore
	Category  CategoryRequiredStore
	Tag       TagRequiredStore
	Thread    ThreadRequiredStore
	Message   MessageRequiredStore

	// DefaultLevelForLoggedInUser seeds the resolution algorithm's
	// positive accumulator for any authenticated (non-anonymous) user
	// (spec.md §4.5 step 1).
	DefaultLevelForLoggedInUser ids.PrivilegeValue

	NewThreadDefault  DefaultGrant
	NewMessageDefault DefaultGrant
}

// ForumWideRequiredStore holds the required-privilege threshold for each
// ForumWidePrivilege.
type ForumWideRequiredStore struct {
	values [forumCount]ids.PrivilegeValue
}

func (s *ForumWideRequiredStore) Get(p ForumWidePrivilege) ids.PrivilegeValue { return s.values[p] }
func (s *ForumWideRequiredStore) Set(p ForumWidePrivilege, v ids.PrivilegeValue) {
	s.values[p] = v
}
