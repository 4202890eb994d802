// Package ids defines the small value types shared across the forum core:
// stable entity identifiers, seconds-since-epoch timestamps, non-owning
// string views, and the signed privilege value/duration primitives used by
// the authorization subsystem.
package ids

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Id is a 128-bit identifier, compared bytewise. The zero value is Empty,
// the distinguished "anonymous" / "no parent" id.
type Id uuid.UUID

// Empty is the distinguished id meaning "anonymous user" or "no parent".
var Empty Id

// IsEmpty reports whether id is the distinguished empty id.
func (id Id) IsEmpty() bool { return id == Empty }

// String renders the id in canonical UUID form.
func (id Id) String() string { return uuid.UUID(id).String() }

// Compare orders two ids bytewise; used by ranked/ordered indices that
// tie-break on id after a primary sort key.
func Compare(a, b Id) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Generator creates new ids. UUID generation strategy is an external
// collaborator's concern (spec.md §1); the core only depends on this
// interface so it can be swapped or replayed deterministically in tests.
type Generator interface {
	NewId() Id
}

// UUIDGenerator generates random (v4) ids via google/uuid.
type UUIDGenerator struct{}

// NewId returns a fresh random id.
func (UUIDGenerator) NewId() Id { return Id(uuid.New()) }

// ParseId parses a canonical UUID string into an Id.
func ParseId(s string) (Id, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Empty, err
	}
	return Id(u), nil
}

// Timestamp is seconds since a fixed epoch (Unix epoch here). Zero means
// "unset".
type Timestamp int64

// Unset is the zero timestamp, meaning "never set".
const Unset Timestamp = 0

// Now returns the current time as a Timestamp. Commands should prefer the
// current time carried on their RequestContext over calling this directly,
// so that a single transaction observes one consistent "now".
func Now() Timestamp { return Timestamp(time.Now().Unix()) }

// FromTime converts a time.Time to a Timestamp.
func FromTime(t time.Time) Timestamp { return Timestamp(t.Unix()) }

// Time converts a Timestamp back to a time.Time (UTC).
func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

// StringView is a non-owning slice of a string, used where content may
// point into a journal-backed buffer rather than own its bytes (spec.md
// §3.2, DiscussionThreadMessage.content).
type StringView struct {
	source *string
	offset int
	length int
}

// NewStringView creates a view over the entirety of an owned string.
func NewStringView(s string) StringView {
	return StringView{source: &s, offset: 0, length: len(s)}
}

// SliceStringView creates a view over [offset, offset+length) of a shared
// backing string without copying, mirroring EntityCollection's
// getMessageContentPointer operation (spec.md §4.3).
func SliceStringView(backing *string, offset, length int) StringView {
	return StringView{source: backing, offset: offset, length: length}
}

// String materializes the view's contents. Called only at serialization
// time; the view itself never copies.
func (v StringView) String() string {
	if v.source == nil {
		return ""
	}
	return (*v.source)[v.offset : v.offset+v.length]
}

// Len returns the byte length of the view.
func (v StringView) Len() int { return v.length }

// VisitDetails records who made a request: a fixed-size IP slot and a
// bounded user-agent string (spec.md §3.1).
type VisitDetails struct {
	IP        [16]byte
	UserAgent string
}

// MaxPrivilegeValue and MinPrivilegeValue bound PrivilegeValue per spec.md §3.1.
const (
	MaxPrivilegeValue = 32000
	MinPrivilegeValue = -32000
)

// PrivilegeValue is an optional signed 16-bit privilege weight. The zero
// value (Ok=false) means "not set" ("None" in spec.md §3.1) and must fall
// through to the next scope during resolution.
type PrivilegeValue struct {
	Value int16
	Ok    bool
}

// NoPrivilegeValue is the "not set" sentinel.
var NoPrivilegeValue = PrivilegeValue{}

// SomePrivilegeValue wraps v as a set PrivilegeValue, clamping to the legal range.
func SomePrivilegeValue(v int) PrivilegeValue {
	if v > MaxPrivilegeValue {
		v = MaxPrivilegeValue
	}
	if v < MinPrivilegeValue {
		v = MinPrivilegeValue
	}
	return PrivilegeValue{Value: int16(v), Ok: true}
}

// PrivilegeDuration is a signed-seconds duration; 0 means unlimited.
type PrivilegeDuration int64

// UnlimitedDuration is the sentinel meaning "does not expire".
const UnlimitedDuration PrivilegeDuration = 0

// TrimmedEqualFold reports whether a and b are equal once both are
// whitespace-trimmed and case-folded. Used only for quick sentinel checks;
// real name comparison goes through internal/collation.
func TrimmedEqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
