package model

import (
	"github.com/chirino/forumcore/internal/entity"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/privilege"
	"github.com/chirino/forumcore/internal/store"
)

// DiscussionCategoryNotifications mirrors the other entities' hook
// structs for the category's indexed fields (spec.md §4.1: name,
// displayOrder, totalThreadCount/totalMessageCount unioned over
// descendants per invariant 4).
type DiscussionCategoryNotifications struct {
	OnPrepareUpdateName         func(*DiscussionCategory)
	OnUpdateName                func(*DiscussionCategory)
	OnPrepareUpdateDisplayOrder func(*DiscussionCategory)
	OnUpdateDisplayOrder        func(*DiscussionCategory)
}

// DiscussionCategory groups tags into a navigable tree (spec.md §3.2).
type DiscussionCategory struct {
	ID ids.Id

	notify *DiscussionCategoryNotifications

	name         string
	description  string
	displayOrder int

	parent   entity.Pointer[DiscussionCategory]
	children map[ids.Id]entity.Pointer[DiscussionCategory]

	tags map[ids.Id]entity.Pointer[DiscussionTag]

	created         ids.Timestamp
	creationDetails ids.VisitDetails

	// totalThreads unions this category's tags' threads with every
	// descendant category's union, ref-counted so a thread shared by two
	// tags in the same category tree is counted once (invariant 4).
	totalThreads *store.RefCountedThreads[ids.Id]

	// Required holds this category's own required-privilege thresholds
	// (spec.md §4.4: "a category has category store").
	Required privilege.CategoryScoped
}

// NewDiscussionCategory constructs an empty, parentless category.
func NewDiscussionCategory(id ids.Id, name string, created ids.Timestamp, details ids.VisitDetails) *DiscussionCategory {
	return &DiscussionCategory{
		ID:              id,
		name:            name,
		created:         created,
		creationDetails: details,
		children:        map[ids.Id]entity.Pointer[DiscussionCategory]{},
		tags:            map[ids.Id]entity.Pointer[DiscussionTag]{},
		totalThreads:    store.NewRefCountedThreads[ids.Id](),
	}
}

// InstallNotifications wires the owning collection's callbacks.
func (c *DiscussionCategory) InstallNotifications(n *DiscussionCategoryNotifications) { c.notify = n }

// Name returns the category's display name.
func (c *DiscussionCategory) Name() string { return c.name }

// SetName updates the name, bracketed by the name index's prepare/commit.
func (c *DiscussionCategory) SetName(name string) {
	if c.notify != nil && c.notify.OnPrepareUpdateName != nil {
		c.notify.OnPrepareUpdateName(c)
	}
	c.name = name
	if c.notify != nil && c.notify.OnUpdateName != nil {
		c.notify.OnUpdateName(c)
	}
}

// Description / SetDescription hold free-form category text.
func (c *DiscussionCategory) Description() string     { return c.description }
func (c *DiscussionCategory) SetDescription(v string) { c.description = v }

// DisplayOrder returns the category's sibling ordering key.
func (c *DiscussionCategory) DisplayOrder() int { return c.displayOrder }

// SetDisplayOrder updates the ordering key, bracketed by its ranked
// index's prepare/commit.
func (c *DiscussionCategory) SetDisplayOrder(order int) {
	if c.notify != nil && c.notify.OnPrepareUpdateDisplayOrder != nil {
		c.notify.OnPrepareUpdateDisplayOrder(c)
	}
	c.displayOrder = order
	if c.notify != nil && c.notify.OnUpdateDisplayOrder != nil {
		c.notify.OnUpdateDisplayOrder(c)
	}
}

// Parent returns the category's parent, or nil for a root category.
func (c *DiscussionCategory) Parent() entity.Pointer[DiscussionCategory] { return c.parent }

// SetParent reassigns the category's parent. The caller (entitycollection)
// is responsible for updating both the old and new parent's children sets
// and for rebuilding the totalThreads union along the affected paths.
func (c *DiscussionCategory) SetParent(parent entity.Pointer[DiscussionCategory]) { c.parent = parent }

// Children returns the category's direct child categories.
func (c *DiscussionCategory) Children() map[ids.Id]entity.Pointer[DiscussionCategory] { return c.children }

// AddChild/RemoveChild maintain the direct-children set.
func (c *DiscussionCategory) AddChild(ptr entity.Pointer[DiscussionCategory], id ids.Id) {
	c.children[id] = ptr
}
func (c *DiscussionCategory) RemoveChild(id ids.Id) { delete(c.children, id) }

// Tags returns the tags directly attached to this category.
func (c *DiscussionCategory) Tags() map[ids.Id]entity.Pointer[DiscussionTag] { return c.tags }

// AddTag/RemoveTag maintain the category's direct tag set. Union
// maintenance over totalThreads is the caller's responsibility, since it
// requires walking the tag's thread set.
func (c *DiscussionCategory) AddTag(ptr entity.Pointer[DiscussionTag], id ids.Id) { c.tags[id] = ptr }
func (c *DiscussionCategory) RemoveTag(id ids.Id)                                  { delete(c.tags, id) }

// Created / CreationDetails report creation provenance.
func (c *DiscussionCategory) Created() ids.Timestamp            { return c.created }
func (c *DiscussionCategory) CreationDetails() ids.VisitDetails { return c.creationDetails }

// TotalThreads is the ref-counted union backing totalThreadCount and
// totalMessageCount (invariant 4).
func (c *DiscussionCategory) TotalThreads() *store.RefCountedThreads[ids.Id] { return c.totalThreads }

// TotalThreadCount returns the number of distinct threads reachable
// through this category's tags or any descendant category's tags.
func (c *DiscussionCategory) TotalThreadCount() int { return c.totalThreads.Count() }

// TotalMessageCount returns the summed message count over the same union.
func (c *DiscussionCategory) TotalMessageCount() int { return c.totalThreads.TotalMessages() }
