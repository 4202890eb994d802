package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
)

type createCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parentId"`
}

func (d Deps) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var parent *model.DiscussionCategory
	if req.ParentID != "" {
		var ok bool
		parent, ok = d.categoryByRawID(c, req.ParentID)
		if !ok {
			return
		}
	}
	status, id := d.Repo.AddNewDiscussionCategory(d.requestContext(c), req.Name, parent)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	cat, _ := d.EC.Categories.Get(id)
	c.JSON(http.StatusCreated, toCategoryDTO(cat))
}

func (d Deps) listCategories(c *gin.Context) {
	cats := d.EC.Categories.ByDisplayOrder()
	out := make([]categoryDTO, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryDTO(cat))
	}
	c.JSON(http.StatusOK, out)
}

type renameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (d Deps) renameCategory(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	var req renameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionCategoryName(d.requestContext(c), cat, req.Name)
	writeStatus(c, status)
}

type changeCategoryDescriptionRequest struct {
	Description string `json:"description"`
}

func (d Deps) changeCategoryDescription(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	var req changeCategoryDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionCategoryDescription(d.requestContext(c), cat, req.Description)
	writeStatus(c, status)
}

type changeCategoryDisplayOrderRequest struct {
	DisplayOrder int `json:"displayOrder"`
}

func (d Deps) changeCategoryDisplayOrder(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	var req changeCategoryDisplayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeDiscussionCategoryDisplayOrder(d.requestContext(c), cat, req.DisplayOrder)
	writeStatus(c, status)
}

type changeCategoryParentRequest struct {
	ParentID string `json:"parentId" binding:"required"`
}

func (d Deps) changeCategoryParent(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	var req changeCategoryParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newParent, ok := d.categoryByRawID(c, req.ParentID)
	if !ok {
		return
	}
	status := d.Repo.ChangeDiscussionCategoryParent(d.requestContext(c), cat, newParent)
	writeStatus(c, status)
}

func (d Deps) deleteCategory(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	status := d.Repo.DeleteDiscussionCategory(d.requestContext(c), cat)
	writeStatus(c, status)
}

func (d Deps) attachTagToCategory(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	tag, ok := d.tagFromParamName(c, "tagId")
	if !ok {
		return
	}
	status := d.Repo.AddDiscussionTagToCategory(d.requestContext(c), cat, tag)
	writeStatus(c, status)
}

func (d Deps) detachTagFromCategory(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	tag, ok := d.tagFromParamName(c, "tagId")
	if !ok {
		return
	}
	status := d.Repo.RemoveDiscussionTagFromCategory(d.requestContext(c), cat, tag)
	writeStatus(c, status)
}

func (d Deps) categoryFromParam(c *gin.Context) (*model.DiscussionCategory, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	cat, found := d.EC.Categories.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return cat, true
}

func (d Deps) categoryByRawID(c *gin.Context, raw string) (*model.DiscussionCategory, bool) {
	id, err := parseRawID(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parentId"})
		return nil, false
	}
	cat, found := d.EC.Categories.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "parent category not found"})
		return nil, false
	}
	return cat, true
}
