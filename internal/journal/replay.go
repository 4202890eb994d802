package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/privilege"
	"github.com/chirino/forumcore/internal/repository"
)

// Replay decodes one JSON record per line from r and applies each, in
// order, through repo's direct-write surface. It stops at the first
// record that fails and returns its one-based line number and error; on
// success it returns the number of lines read.
func Replay(repo *repository.Repository, r io.Reader) (int, error) {
	dw := repo.DirectWrite()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for scanner.Scan() {
		raw := scanner.Bytes()
		line++
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return line, fmt.Errorf("line %d: decode: %w", line, err)
		}
		if err := applyRecord(dw, rec); err != nil {
			return line, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return line, err
	}
	return line, nil
}

func applyRecord(dw repository.DirectWrite, rec Record) error {
	id, err := parseID(rec.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	createdBy, err := parseID(rec.CreatedBy)
	if err != nil {
		return fmt.Errorf("createdBy: %w", err)
	}
	parentID, err := parseID(rec.ParentID)
	if err != nil {
		return fmt.Errorf("parentId: %w", err)
	}

	switch rec.Kind {
	case KindUser:
		status, _ := dw.AddUser(id, rec.Name, rec.Auth, rec.Created, rec.visitDetails())
		return statusErr(status)
	case KindDiscussionThread:
		tagIDs, err := parseIDs(rec.TagIDs)
		if err != nil {
			return fmt.Errorf("tagIds: %w", err)
		}
		status, _ := dw.AddDiscussionThread(id, rec.Name, createdBy, rec.Created, rec.visitDetails(), tagIDs)
		return statusErr(status)
	case KindDiscussionMessage:
		status, _ := dw.AddDiscussionMessage(id, parentID, rec.Content, createdBy, rec.Created, rec.visitDetails())
		return statusErr(status)
	case KindDiscussionTag:
		status, _ := dw.AddDiscussionTag(id, rec.Name, rec.Created, rec.visitDetails())
		return statusErr(status)
	case KindDiscussionCategory:
		status, _ := dw.AddDiscussionCategory(id, rec.Name, rec.Created, rec.visitDetails(), parentID)
		return statusErr(status)
	case KindPrivilegeGrant:
		target, err := parseID(rec.TargetID)
		if err != nil {
			return fmt.Errorf("targetId: %w", err)
		}
		value := ids.NoPrivilegeValue
		if rec.Value != 0 {
			value = ids.SomePrivilegeValue(int(rec.Value))
		}
		duration := ids.UnlimitedDuration
		if rec.Duration > 0 {
			duration = ids.PrivilegeDuration(rec.Duration)
		}
		status := dw.AssignForumWidePrivilege(target, privilege.ForumWidePrivilege(rec.Privilege), value, duration, rec.Created)
		return statusErr(status)
	default:
		return fmt.Errorf("unknown record kind %q", rec.Kind)
	}
}

func statusErr(status repository.Status) error {
	if status == repository.OK {
		return nil
	}
	return fmt.Errorf("rejected: status %d", status)
}
