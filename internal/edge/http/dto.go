package http

import "github.com/chirino/forumcore/internal/model"

type userDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Created         int64  `json:"created"`
	LastSeen        int64  `json:"lastSeen"`
	Info            string `json:"info,omitempty"`
	Title           string `json:"title,omitempty"`
	Signature       string `json:"signature,omitempty"`
	ThreadCount     int    `json:"threadCount"`
	MessageCount    int    `json:"messageCount"`
	ReceivedUpVotes int    `json:"receivedUpVotes"`
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{
		ID:              u.ID.String(),
		Name:            u.Name(),
		Created:         int64(u.Created()),
		LastSeen:        int64(u.LastSeen()),
		Info:            u.Info(),
		Title:           u.Title(),
		Signature:       u.Signature(),
		ThreadCount:     u.OwnThreadCount(),
		MessageCount:    u.OwnMessageCount(),
		ReceivedUpVotes: u.ReceivedUpVotes(),
	}
}

type threadDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CreatedBy    string   `json:"createdBy"`
	Created      int64    `json:"created"`
	LastUpdated  int64    `json:"lastUpdated"`
	MessageCount int      `json:"messageCount"`
	Pinned       bool      `json:"pinned"`
	TagIDs       []string `json:"tagIds"`
}

func toThreadDTO(t *model.DiscussionThread) threadDTO {
	tagIDs := make([]string, 0, len(t.Tags()))
	for id := range t.Tags() {
		tagIDs = append(tagIDs, id.String())
	}
	return threadDTO{
		ID:           t.ID.String(),
		Name:         t.Name(),
		CreatedBy:    t.CreatedBy().String(),
		Created:      int64(t.Created()),
		LastUpdated:  int64(t.LastUpdated()),
		MessageCount: t.MessageCount(),
		Pinned:       t.IsPinned(),
		TagIDs:       tagIDs,
	}
}

type messageDTO struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	CreatedBy string `json:"createdBy"`
	Created   int64  `json:"created"`
	Content   string `json:"content"`
	UpVotes   int    `json:"upVotes"`
	DownVotes int    `json:"downVotes"`
	Score     int    `json:"score"`
}

func toMessageDTO(m *model.DiscussionThreadMessage) messageDTO {
	return messageDTO{
		ID:        m.ID.String(),
		ThreadID:  m.ParentThread().ID.String(),
		CreatedBy: m.CreatedBy().String(),
		Created:   int64(m.Created()),
		Content:   m.Content(),
		UpVotes:   m.UpVoteCount(),
		DownVotes: m.DownVoteCount(),
		Score:     m.Score(),
	}
}

type tagDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UIBlob      string `json:"uiBlob,omitempty"`
	ThreadCount int    `json:"threadCount"`
}

func toTagDTO(t *model.DiscussionTag) tagDTO {
	return tagDTO{
		ID:          t.ID.String(),
		Name:        t.Name(),
		UIBlob:      t.UIBlob(),
		ThreadCount: t.ThreadCount(),
	}
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DisplayOrder int   `json:"displayOrder"`
	ParentID    string `json:"parentId,omitempty"`
}

func toCategoryDTO(cat *model.DiscussionCategory) categoryDTO {
	dto := categoryDTO{
		ID:           cat.ID.String(),
		Name:         cat.Name(),
		Description:  cat.Description(),
		DisplayOrder: cat.DisplayOrder(),
	}
	if p := cat.Parent(); p != nil {
		dto.ParentID = p.ID.String()
	}
	return dto
}
