package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type privateMessageDTO struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Created     int64  `json:"created"`
	Content     string `json:"content"`
}

func toPrivateMessageDTO(pm *model.PrivateMessage) privateMessageDTO {
	return privateMessageDTO{
		ID:          pm.ID.String(),
		Source:      pm.Source().String(),
		Destination: pm.Destination().String(),
		Created:     int64(pm.Created()),
		Content:     pm.Content(),
	}
}

type sendPrivateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (d Deps) sendPrivateMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	destination, found := d.EC.Users.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req sendPrivateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, _ := d.Repo.SendPrivateMessage(d.requestContext(c), destination, req.Content)
	writeStatus(c, status)
}

func (d Deps) listSentPrivateMessages(c *gin.Context) {
	status, msgs := d.Repo.GetSentPrivateMessages(d.requestContext(c))
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	out := make([]privateMessageDTO, 0, len(msgs))
	for _, pm := range msgs {
		out = append(out, toPrivateMessageDTO(pm))
	}
	c.JSON(http.StatusOK, out)
}

func (d Deps) listReceivedPrivateMessages(c *gin.Context) {
	status, msgs := d.Repo.GetReceivedPrivateMessages(d.requestContext(c))
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	out := make([]privateMessageDTO, 0, len(msgs))
	for _, pm := range msgs {
		out = append(out, toPrivateMessageDTO(pm))
	}
	c.JSON(http.StatusOK, out)
}
