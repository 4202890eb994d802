package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/repository"
)

type entityCountsDTO struct {
	Users       int `json:"users"`
	Threads     int `json:"threads"`
	Messages    int `json:"messages"`
	Tags        int `json:"tags"`
	Categories  int `json:"categories"`
	Attachments int `json:"attachments"`
}

func (d Deps) getEntitiesCount(c *gin.Context) {
	status, counts := d.Repo.GetEntitiesCount(d.requestContext(c))
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	c.JSON(http.StatusOK, entityCountsDTO{
		Users:       counts.Users,
		Threads:     counts.Threads,
		Messages:    counts.Messages,
		Tags:        counts.Tags,
		Categories:  counts.Categories,
		Attachments: counts.Attachments,
	})
}

func (d Deps) getVersion(c *gin.Context) {
	status, version := d.Repo.GetVersion(d.requestContext(c), d.Version)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": version})
}
