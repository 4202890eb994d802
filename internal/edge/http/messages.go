package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type createMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (d Deps) createMessage(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, id := d.Repo.AddNewDiscussionMessage(d.requestContext(c), t, req.Content)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	m, _ := d.EC.Messages.Get(id)
	c.JSON(http.StatusCreated, toMessageDTO(m))
}

func (d Deps) listThreadMessages(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	msgs := t.Messages()
	out := make([]messageDTO, 0, len(msgs))
	for _, ptr := range msgs {
		out = append(out, toMessageDTO(ptr))
	}
	c.JSON(http.StatusOK, out)
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Reason  string `json:"reason"`
}

func (d Deps) editMessage(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionThreadMessageContent(d.requestContext(c), m, req.Content, req.Reason)
	writeStatus(c, status)
}

func (d Deps) deleteMessage(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.DeleteDiscussionMessage(d.requestContext(c), m)
	writeStatus(c, status)
}

func (d Deps) upVoteMessage(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.UpVoteDiscussionThreadMessage(d.requestContext(c), m)
	writeStatus(c, status)
}

func (d Deps) downVoteMessage(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.DownVoteDiscussionThreadMessage(d.requestContext(c), m)
	writeStatus(c, status)
}

func (d Deps) resetVoteMessage(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.ResetVoteDiscussionThreadMessage(d.requestContext(c), m)
	writeStatus(c, status)
}

func (d Deps) messageFromParam(c *gin.Context) (*model.DiscussionThreadMessage, bool) {
	id, ok := parseIDParam(c, "messageId")
	if !ok {
		return nil, false
	}
	m, found := d.EC.Messages.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return m, true
}
