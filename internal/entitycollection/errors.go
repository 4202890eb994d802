// Package entitycollection implements the aggregate "EntityCollection"
// described in spec.md §4.3: one sub-collection per entity kind, each
// pairing a primary id-keyed HashIndex with the secondary ranked/hash
// indices spec.md §4.1 requires, plus the cascade-delete and
// thread-move operations that span more than one sub-collection.
package entitycollection

import "errors"

// ErrAlreadyExists is returned by Add when an id, auth token, or
// collation-equal name collides with an existing entry (spec.md
// invariants 7-8).
var ErrAlreadyExists = errors.New("entitycollection: already exists")

// ErrNotFound is returned by operations that require an existing entry.
var ErrNotFound = errors.New("entitycollection: not found")

// ErrCircularReference is returned when reparenting a category would
// create a cycle (spec.md invariant 6).
var ErrCircularReference = errors.New("entitycollection: circular reference not allowed")
