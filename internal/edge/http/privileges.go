package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/privilege"
)

type assignPrivilegeRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Value    int16  `json:"value"`
	Duration int64  `json:"durationSeconds"`
	Revoke   bool   `json:"revoke"`
}

func (d Deps) assignPrivilegeValue(req assignPrivilegeRequest) (ids.PrivilegeValue, ids.PrivilegeDuration) {
	if req.Revoke {
		return ids.NoPrivilegeValue, ids.UnlimitedDuration
	}
	duration := ids.UnlimitedDuration
	if req.Duration > 0 {
		duration = ids.PrivilegeDuration(req.Duration)
	}
	return ids.SomePrivilegeValue(int(req.Value)), duration
}

func (d Deps) assignMessagePrivilege(c *gin.Context) {
	m, ok := d.messageFromParam(c)
	if !ok {
		return
	}
	priv, ok := parsePrivilegeParam[privilege.MessagePrivilege](c)
	if !ok {
		return
	}
	var req assignPrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, ok := d.userByRawID(c, req.UserID)
	if !ok {
		return
	}
	value, duration := d.assignPrivilegeValue(req)
	status := d.Repo.AssignDiscussionThreadMessagePrivilege(d.requestContext(c), m, target, priv, value, duration)
	writeStatus(c, status)
}

func (d Deps) assignThreadPrivilege(c *gin.Context) {
	t, ok := d.threadFromParam(c)
	if !ok {
		return
	}
	priv, ok := parsePrivilegeParam[privilege.ThreadPrivilege](c)
	if !ok {
		return
	}
	var req assignPrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, ok := d.userByRawID(c, req.UserID)
	if !ok {
		return
	}
	value, duration := d.assignPrivilegeValue(req)
	status := d.Repo.AssignDiscussionThreadPrivilege(d.requestContext(c), t, target, priv, value, duration)
	writeStatus(c, status)
}

func (d Deps) assignTagPrivilege(c *gin.Context) {
	tag, ok := d.tagFromParam(c)
	if !ok {
		return
	}
	priv, ok := parsePrivilegeParam[privilege.TagPrivilege](c)
	if !ok {
		return
	}
	var req assignPrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, ok := d.userByRawID(c, req.UserID)
	if !ok {
		return
	}
	value, duration := d.assignPrivilegeValue(req)
	status := d.Repo.AssignDiscussionTagPrivilege(d.requestContext(c), tag, target, priv, value, duration)
	writeStatus(c, status)
}

func (d Deps) assignCategoryPrivilege(c *gin.Context) {
	cat, ok := d.categoryFromParam(c)
	if !ok {
		return
	}
	priv, ok := parsePrivilegeParam[privilege.CategoryPrivilege](c)
	if !ok {
		return
	}
	var req assignPrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, ok := d.userByRawID(c, req.UserID)
	if !ok {
		return
	}
	value, duration := d.assignPrivilegeValue(req)
	status := d.Repo.AssignDiscussionCategoryPrivilege(d.requestContext(c), cat, target, priv, value, duration)
	writeStatus(c, status)
}

func (d Deps) assignForumWidePrivilege(c *gin.Context) {
	priv, ok := parsePrivilegeParam[privilege.ForumWidePrivilege](c)
	if !ok {
		return
	}
	var req assignPrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, ok := d.userByRawID(c, req.UserID)
	if !ok {
		return
	}
	value, duration := d.assignPrivilegeValue(req)
	status := d.Repo.AssignForumWidePrivilege(d.requestContext(c), target, priv, value, duration)
	writeStatus(c, status)
}

func (d Deps) userByRawID(c *gin.Context, raw string) (*model.User, bool) {
	id, err := parseRawID(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return nil, false
	}
	u, found := d.EC.Users.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "target user not found"})
		return nil, false
	}
	return u, true
}

// parsePrivilegeParam decodes the :privilege path segment into one of the
// per-kind privilege enums, all of which are plain ints under the hood.
func parsePrivilegeParam[P ~int](c *gin.Context) (P, bool) {
	raw := c.Param("privilege")
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid privilege"})
		return P(0), false
	}
	return P(n), true
}
