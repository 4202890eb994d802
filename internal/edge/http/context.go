// Package http mounts a gin router that translates REST requests into
// internal/repository command calls, grounded on the teacher's
// internal/plugin/route/* handler style (gin.Context in, JSON out, auth
// middleware resolves identity before the handler body runs).
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/repository"
	"github.com/chirino/forumcore/internal/security"
)

// Deps bundles what every route handler needs: the command surface, a
// direct read handle on the collection for id/name lookups the
// repository doesn't expose as commands, and the version string.
type Deps struct {
	Repo    *repository.Repository
	EC      *entitycollection.EntityCollection
	Version string
}

// currentUser resolves the gin context's authenticated identity (set by
// security.AuthMiddleware) to a *model.User. Returns nil for anonymous
// or not-yet-registered callers; repository commands treat a nil
// CurrentUser as Unauthorized themselves.
func (d Deps) currentUser(c *gin.Context) *model.User {
	userID := security.GetUserID(c)
	if userID == "" {
		return nil
	}
	u, ok := d.EC.Users.GetByAuth(userID)
	if !ok {
		return nil
	}
	return u
}

func (d Deps) requestContext(c *gin.Context) repository.RequestContext {
	var ip [16]byte
	if host := c.ClientIP(); host != "" {
		copy(ip[:], []byte(host))
	}
	return repository.RequestContext{
		CurrentUser: d.currentUser(c),
		Now:         ids.Now(),
		IPAddress:   ip,
		UserAgent:   c.Request.UserAgent(),
	}
}

func parseIDParam(c *gin.Context, name string) (ids.Id, bool) {
	raw := c.Param(name)
	id, err := ids.ParseId(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + name})
		return ids.Id{}, false
	}
	return id, true
}

func parseRawID(raw string) (ids.Id, error) {
	return ids.ParseId(raw)
}

// writeStatus maps a repository.Status to an HTTP response. Call sites
// that also produce a payload on OK should check the status themselves
// and only fall back to this for the error path.
func writeStatus(c *gin.Context, status repository.Status) {
	switch status {
	case repository.OK, repository.NoEffect:
		c.Status(http.StatusNoContent)
	case repository.Unauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case repository.NotAllowed:
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case repository.Throttled:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "throttled"})
	case repository.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case repository.AlreadyExists:
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case repository.InvalidParameters:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters"})
	case repository.CircularReferenceNotAllowed:
		c.JSON(http.StatusBadRequest, gin.H{"error": "would create a circular reference"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
