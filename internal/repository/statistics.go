package repository

import (
	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
)

// EntityCounts is the aggregate report returned by GetEntitiesCount.
type EntityCounts struct {
	Users       int
	Threads     int
	Messages    int
	Tags        int
	Categories  int
	Attachments int
}

// GetEntitiesCount reports how many of each entity kind the collection
// holds.
func (r *Repository) GetEntitiesCount(ctx RequestContext) (Status, EntityCounts) {
	if ctx.CurrentUser == nil {
		return Unauthorized, EntityCounts{}
	}
	if s := r.Statistics.GetEntitiesCount(ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), EntityCounts{}
	}
	var counts EntityCounts
	r.Guard.Read(func(ec *entitycollection.EntityCollection) {
		counts = EntityCounts{
			Users:       ec.Users.Count(),
			Threads:     ec.Threads.Count(),
			Messages:    ec.Messages.Count(),
			Tags:        ec.Tags.Count(),
			Categories:  ec.Categories.Count(),
			Attachments: ec.Attachments.Count(),
		}
	})
	r.touchLastSeen(ctx)
	return OK, counts
}

// GetVersion reports the running build's version string.
func (r *Repository) GetVersion(ctx RequestContext, version string) (Status, string) {
	if ctx.CurrentUser == nil {
		return Unauthorized, ""
	}
	if s := r.Metrics.GetVersion(ctx.CurrentUser, ctx.Now); s != authz.OK {
		return authzToRepoStatus(s), ""
	}
	r.touchLastSeen(ctx)
	return OK, version
}
