package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type createThreadRequest struct {
	Name   string   `json:"name" binding:"required"`
	TagIDs []string `json:"tagIds"`
}

func (d Deps) createThread(c *gin.Context) {
	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tagIDs := make([]ids.Id, 0, len(req.TagIDs))
	for _, raw := range req.TagIDs {
		id, err := ids.ParseId(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id: " + raw})
			return
		}
		tagIDs = append(tagIDs, id)
	}
	status, id := d.Repo.AddNewDiscussionThread(d.requestContext(c), req.Name, tagIDs)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	t, _ := d.EC.Threads.Get(id)
	c.JSON(http.StatusCreated, toThreadDTO(t))
}

func (d Deps) getThread(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, t := d.Repo.GetDiscussionThreadByID(d.requestContext(c), id)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	c.JSON(http.StatusOK, toThreadDTO(t))
}

func (d Deps) listThreads(c *gin.Context) {
	threads := d.EC.Threads.ByLastUpdated()
	out := make([]threadDTO, 0, len(threads))
	for _, t := range threads {
		out = append(out, toThreadDTO(t))
	}
	c.JSON(http.StatusOK, out)
}

type renameThreadRequest struct {
	Name string `json:"name" binding:"required"`
}

func (d Deps) renameThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	var req renameThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionThreadName(d.requestContext(c), t, req.Name)
	writeStatus(c, status)
}

func (d Deps) deleteThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.DeleteDiscussionThread(d.requestContext(c), t)
	writeStatus(c, status)
}

func (d Deps) subscribeThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.SubscribeToDiscussionThread(d.requestContext(c), t)
	writeStatus(c, status)
}

func (d Deps) unsubscribeThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.UnsubscribeFromDiscussionThread(d.requestContext(c), t)
	writeStatus(c, status)
}

func (d Deps) threadFromParam(c *gin.Context) (*model.DiscussionThread, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	t, found := d.EC.Threads.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return t, true
}
