// Package journal defines the line-delimited JSON record format a
// snapshot file replays through internal/repository.DirectWrite. The
// on-disk journal/snapshot format itself is an external collaborator's
// concern; this package only fixes the shape this build's replay tool
// understands, one JSON object per line, oldest first.
package journal

import (
	"github.com/chirino/forumcore/internal/ids"
)

// Kind discriminates the entity a Record creates.
type Kind string

const (
	KindUser               Kind = "user"
	KindDiscussionThread   Kind = "thread"
	KindDiscussionMessage  Kind = "message"
	KindDiscussionTag      Kind = "tag"
	KindDiscussionCategory Kind = "category"
	KindPrivilegeGrant     Kind = "privilege_grant"
)

// Record is one replayable line. Ids are canonical UUID strings, matching
// the convention the HTTP edge uses at its JSON boundary. Only the fields
// relevant to Kind are populated; the rest are left zero.
type Record struct {
	Kind Kind `json:"kind"`

	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Content   string        `json:"content,omitempty"`
	Auth      string        `json:"auth,omitempty"`
	CreatedBy string        `json:"createdBy,omitempty"`
	Created   ids.Timestamp `json:"created"`

	ParentID string   `json:"parentId,omitempty"`
	TagIDs   []string `json:"tagIds,omitempty"`

	TargetID string `json:"targetId,omitempty"`
	// Privilege is the per-kind privilege enum value, interpreted
	// against ForumWidePrivilege for KindPrivilegeGrant.
	Privilege int   `json:"privilege,omitempty"`
	Value     int16 `json:"value,omitempty"`
	Duration  int64 `json:"durationSeconds,omitempty"`

	UserAgent string `json:"userAgent,omitempty"`
}

func (r Record) visitDetails() ids.VisitDetails {
	return ids.VisitDetails{UserAgent: r.UserAgent}
}

func parseID(s string) (ids.Id, error) {
	if s == "" {
		return ids.Empty, nil
	}
	return ids.ParseId(s)
}

func parseIDs(ss []string) ([]ids.Id, error) {
	out := make([]ids.Id, 0, len(ss))
	for _, s := range ss {
		id, err := ids.ParseId(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
