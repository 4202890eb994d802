package repository

import "github.com/chirino/forumcore/internal/authz"

// authzToRepoStatus translates an authz.Status (OK/NotAllowed/Throttled)
// into the command-level Status every repository method returns.
func authzToRepoStatus(s authz.Status) Status {
	switch s {
	case authz.OK:
		return OK
	case authz.Throttled:
		return Throttled
	default:
		return NotAllowed
	}
}
