package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/repository"
)

type registerUserRequest struct {
	Name string `json:"name" binding:"required"`
	Auth string `json:"auth" binding:"required"`
}

func (d Deps) registerUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, id := d.Repo.AddNewUser(d.requestContext(c), req.Name, req.Auth, visitDetails(c))
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	u, _ := d.EC.Users.Get(id)
	c.JSON(http.StatusCreated, toUserDTO(u))
}

func (d Deps) getUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, u := d.Repo.GetUserByID(d.requestContext(c), id)
	if status != repository.OK {
		writeStatus(c, status)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(u))
}

type renameUserRequest struct {
	Name string `json:"name" binding:"required"`
}

func (d Deps) renameCurrentUser(c *gin.Context) {
	var req renameUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := d.Repo.ChangeOwnUserName(d.requestContext(c), req.Name)
	writeStatus(c, status)
}

func (d Deps) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	target, found := d.EC.Users.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	status := d.Repo.DeleteUser(d.requestContext(c), target)
	writeStatus(c, status)
}

func visitDetails(c *gin.Context) ids.VisitDetails {
	var ip [16]byte
	if host := c.ClientIP(); host != "" {
		copy(ip[:], []byte(host))
	}
	return ids.VisitDetails{IP: ip, UserAgent: c.Request.UserAgent()}
}
