// Package repository implements the forum's command surface (spec.md §7
// "Commands"): one method per user-facing operation, each following the
// same shape as MemoryRepository.cpp's command methods — resolve the
// acting user and bump their last-seen time, authorize via internal/authz,
// mutate or read via a internal/resource.Guard-protected EntityCollection,
// fan out through internal/events, and hand back a Status plus whatever
// payload the caller needs to serialize.
package repository

import (
	"time"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/model"
	"github.com/chirino/forumcore/internal/resource"
)

// Status mirrors StatusCode (spec.md §7): the outcome of a single
// command, returned alongside whatever payload the command produces.
type Status int

const (
	OK Status = iota
	InvalidParameters
	ValueTooLong
	ValueTooShort
	AlreadyExists
	NotFound
	NoEffect
	CircularReferenceNotAllowed
	NotAllowed
	NotUpdatedSinceLastCheck
	Unauthorized
	Throttled
	UserWithSameAuthAlreadyExists
)

// RequestContext carries the per-command actor and request metadata,
// threaded explicitly through every command method instead of kept
// ambient (spec.md §5 "Thread-local state").
type RequestContext struct {
	CurrentUser *model.User
	Now         ids.Timestamp
	IPAddress   [16]byte
	UserAgent   string
}

func (c RequestContext) eventsContext() events.Context {
	return events.Context{CurrentUser: c.CurrentUser, CurrentTime: c.Now, IPAddress: c.IPAddress, UserAgent: c.UserAgent}
}

// currentUserID returns the acting user's id, or the anonymous sentinel
// if the request carries no authenticated user.
func (c RequestContext) currentUserID() ids.Id {
	if c.CurrentUser == nil {
		return ids.Empty
	}
	return c.CurrentUser.ID
}

// Repository bundles every collaborator a command needs: the guarded
// entity collection, the authorization façades, the observer bus, and an
// id generator (spec.md §1's external-collaborator boundary for
// randomness).
type Repository struct {
	Guard   *resource.Guard
	EC      *entitycollection.EntityCollection
	Authz   *authz.Authorizer
	Events  *events.Bus
	IDGen   ids.Generator

	// ResetVoteExpiresIn bounds how long after casting a vote a user may
	// reset it (spec.md §3.3 invariant 5). Defaulted by New and
	// overridable by the caller from config.Config.ResetVoteExpiresIn.
	ResetVoteExpiresIn time.Duration

	Users      authz.UserAuthorization
	Threads    authz.ThreadAuthorization
	Messages   authz.MessageAuthorization
	Tags       authz.TagAuthorization
	Categories authz.CategoryAuthorization
	ForumWide  authz.ForumWideAuthorization
	Statistics authz.StatisticsAuthorization
	Metrics    authz.MetricsAuthorization
}

// New builds a Repository over ec, wiring every per-kind authorization
// façade to the same Authorizer.
func New(ec *entitycollection.EntityCollection, az *authz.Authorizer, bus *events.Bus, idGen ids.Generator) *Repository {
	return &Repository{
		Guard:    resource.New(ec),
		EC:       ec,
		Authz:    az,
		Events:   bus,
		IDGen:    idGen,
		ResetVoteExpiresIn: 5 * time.Minute,
		Users:      authz.UserAuthorization{Authorizer: az},
		Threads:    authz.ThreadAuthorization{Authorizer: az},
		Messages:   authz.MessageAuthorization{Authorizer: az},
		Tags:       authz.TagAuthorization{Authorizer: az},
		Categories: authz.CategoryAuthorization{Authorizer: az},
		ForumWide:  authz.ForumWideAuthorization{Authorizer: az},
		Statistics: authz.StatisticsAuthorization{Authorizer: az},
		Metrics:    authz.MetricsAuthorization{Authorizer: az},
	}
}

// touchLastSeen defers a last-seen bump for the acting user, collapsed
// and applied by the Guard once the current read/write completes
// (spec.md §9's ResourceGuard redesign note).
func (r *Repository) touchLastSeen(ctx RequestContext) {
	if ctx.CurrentUser == nil {
		return
	}
	r.Guard.Defer(ctx.CurrentUser.ID, ctx.Now)
}
