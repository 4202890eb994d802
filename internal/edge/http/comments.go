package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type commentDTO struct {
	ID        string `json:"id"`
	MessageID string `json:"messageId"`
	CreatedBy string `json:"createdBy"`
	Created   int64  `json:"created"`
	Content   string `json:"content"`
	Solved    bool   `json:"solved"`
}

func toCommentDTO(c *model.MessageComment) commentDTO {
	return commentDTO{
		ID:        c.ID.String(),
		MessageID: c.ParentMessage().ID.String(),
		CreatedBy: c.CreatedBy().String(),
		Created:   int64(c.Created()),
		Content:   c.Content(),
		Solved:    c.Solved(),
	}
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (d Deps) addMessageComment(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, id := d.Repo.AddMessageComment(d.requestContext(c), m, req.Content)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	comment, _ := d.EC.Comments.Get(id)
	c.JSON(http.StatusCreated, toCommentDTO(comment))
}

func (d Deps) listMessageComments(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	status, comments := d.Repo.GetMessageComments(d.requestContext(c), m)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	out := make([]commentDTO, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentDTO(comment))
	}
	c.JSON(http.StatusOK, out)
}

func (d Deps) solveMessageComment(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	comment, found := d.EC.Comments.Get(commentID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	status := d.Repo.SolveMessageComment(d.requestContext(c), m, comment)
	writeStatus(c, status)
}
