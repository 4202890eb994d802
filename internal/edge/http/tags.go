package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (d Deps) createTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, id := d.Repo.AddNewDiscussionTag(d.requestContext(c), req.Name)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	tag, _ := d.EC.Tags.Get(id)
	c.JSON(http.StatusCreated, toTagDTO(tag))
}

func (d Deps) listTags(c *gin.Context) {
	tags := d.EC.Tags.ByName()
	out := make([]tagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagDTO(t))
	}
	c.JSON(http.StatusOK, out)
}

type renameTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (d Deps) renameTag(c *gin.Context) {
	tag, ok := d.tagFromParam(c)
	if !ok {
		return
	}
	var req renameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionTagName(d.requestContext(c), tag, req.Name)
	writeStatus(c, status)
}

type changeTagUIBlobRequest struct {
	UIBlob string `json:"uiBlob"`
}

func (d Deps) changeTagUIBlob(c *gin.Context) {
	tag, ok := d.tagFromParam(c)
	if !ok {
		return
	}
	var req changeTagUIBlobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionTagUIBlob(d.requestContext(c), tag, req.UIBlob)
	writeStatus(c, status)
}

func (d Deps) deleteTag(c *gin.Context) {
	tag, ok := d.tagFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.DeleteDiscussionTag(d.requestContext(c), tag)
	writeStatus(c, status)
}

type mergeTagsRequest struct {
	IntoTagID string `json:"intoTagId" binding:"required"`
}

func (d Deps) mergeTags(c *gin.Context) {
	from, ok := d.tagFromParam(c)
	if !ok {
		return
	}
	var req mergeTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	intoID, err := ids.ParseId(req.IntoTagID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intoTagId"})
		return
	}
	into, found := d.EC.Tags.Get(intoID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "into tag not found"})
		return
	}
	status := d.Repo.MergeDiscussionTags(d.requestContext(c), from, into)
	writeStatus(c, status)
}

func (d Deps) attachTagToThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	tag, ok := d.tagFromParamName(c, "tagId")
	if !ok {
		return
	}
	status := d.Repo.AddDiscussionTagToThread(d.requestContext(c), t, tag)
	writeStatus(c, status)
}

func (d Deps) detachTagFromThread(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	tag, ok := d.tagFromParamName(c, "tagId")
	if !ok {
		return
	}
	status := d.Repo.RemoveDiscussionTagFromThread(d.requestContext(c), t, tag)
	writeStatus(c, status)
}

func (d Deps) tagFromParam(c *gin.Context) (*model.DiscussionTag, bool) {
	return d.tagFromParamName(c, "id")
}

func (d Deps) tagFromParamName(c *gin.Context, name string) (*model.DiscussionTag, bool) {
	id, ok := parseIDParam(c, name)
	if !ok {
		return nil, false
	}
	tag, found := d.EC.Tags.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return tag, true
}
