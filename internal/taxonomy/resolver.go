// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

// DefaultMaxDepth bounds the number of parent lookups per resolve.
const DefaultMaxDepth = 32

// ErrMaxDepthExceeded is returned when the ancestor walk needs more parent
// lookups than allowed, which usually means a misconfigured taxonomy.
var ErrMaxDepthExceeded = errors.New("category ancestor chain exceeds max depth")

// CategoryStore reads category records.
type CategoryStore interface {
	// FindByParent returns the categories whose parent is parentID.
	FindByParent(ctx context.Context, parentID int64) (*CategorySet, error)
	// FindByIDs returns the categories matching ids.
	FindByIDs(ctx context.Context, ids []int64) (*CategorySet, error)
}

// TitleLookup returns the display title of a category in the given locale.
// A missing record yields an empty title.
type TitleLookup interface {
	Title(ctx context.Context, categoryID int64, locale models.Locale) (string, error)
}

// SubjectCategoryResolver returns the ids of the categories assigned directly
// to a subject record.
type SubjectCategoryResolver interface {
	AssignedCategoryIDs(ctx context.Context, subject models.Subject) ([]int64, error)
}

// Resolver computes category titles for subjects. It is safe for concurrent
// use as long as its collaborators are.
type Resolver struct {
	store    CategoryStore
	titles   TitleLookup
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the parent lookup bound. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewResolver returns a Resolver reading from store and titles.
func NewResolver(store CategoryStore, titles TitleLookup, opts ...Option) *Resolver {
	r := &Resolver{store: store, titles: titles, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render resolves the categories assigned to subject.
func (r *Resolver) Render(ctx context.Context, subjects SubjectCategoryResolver, subject models.Subject, cfg Config, locale models.Locale) (Result, error) {
	assigned, err := subjects.AssignedCategoryIDs(ctx, subject)
	if err != nil {
		return Result{}, err
	}
	return r.Resolve(ctx, cfg, assigned, locale)
}

// Resolve returns the titles of the base categories that are assigned, or
// are ancestors of categories assigned, to a subject. Collaborator errors are
// returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, cfg Config, assigned []int64, locale models.Locale) (Result, error) {
	result := Result{Multi: cfg.MultiValue, Glue: cfg.Glue()}

	base, err := r.store.FindByParent(ctx, cfg.BaseID)
	if err != nil {
		return Result{}, err
	}
	resolved, err := ResolveAncestors(ctx, r.store, assigned, r.maxDepth)
	if err != nil {
		return Result{}, err
	}

	for _, c := range Intersect(FilterBase(base, cfg.FilterIDs, cfg.ExcludeIDs), resolved) {
		title, err := r.titles.Title(ctx, c.ID, locale)
		if err != nil {
			return Result{}, err
		}
		title = strings.TrimSpace(title)
		if cfg.RemoveEmptyValues && title == "" {
			continue
		}
		result.Values = append(result.Values, title)
	}
	return result, nil
}

// ResolveAncestors returns the categories identified by ids together with all
// of their ancestors. Parent ids are looked up level by level; ids already
// resolved or already queried are never looked up again, so the walk ends on
// cyclic data too. More than maxDepth parent lookups yield ErrMaxDepthExceeded.
func ResolveAncestors(ctx context.Context, store CategoryStore, ids []int64, maxDepth int) (*CategorySet, error) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	resolved := NewCategorySet()
	queried := make(map[int64]struct{})

	pending := uniqueIDs(ids, queried)
	if len(pending) == 0 {
		return resolved, nil
	}
	batch, err := store.FindByIDs(ctx, pending)
	if err != nil {
		return nil, err
	}
	frontier := resolved.Merge(batch)

	for depth := 0; ; depth++ {
		var parents []int64
		for _, c := range frontier {
			if c.ParentID == models.NoParent || resolved.Has(c.ParentID) {
				continue
			}
			parents = append(parents, c.ParentID)
		}
		parents = uniqueIDs(parents, queried)
		if len(parents) == 0 {
			return resolved, nil
		}
		if depth >= maxDepth {
			return nil, fmt.Errorf("%w (%d)", ErrMaxDepthExceeded, maxDepth)
		}

		batch, err := store.FindByIDs(ctx, parents)
		if err != nil {
			return nil, err
		}
		frontier = resolved.Merge(batch)
	}
}

// FilterBase keeps the base categories that are not excluded and, when
// filterIDs is non-empty, are listed in filterIDs.
func FilterBase(base *CategorySet, filterIDs, excludeIDs []int64) *CategorySet {
	if len(filterIDs) == 0 && len(excludeIDs) == 0 {
		return base
	}
	filter := idSet(filterIDs)
	exclude := idSet(excludeIDs)

	out := NewCategorySet()
	for _, c := range base.Categories() {
		if _, ok := exclude[c.ID]; ok {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[c.ID]; !ok {
				continue
			}
		}
		out.Add(c)
	}
	return out
}

// Intersect returns the categories of base whose id is also in resolved,
// in base order.
func Intersect(base, resolved *CategorySet) []models.Category {
	var out []models.Category
	for _, c := range base.Categories() {
		if resolved.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// uniqueIDs returns the ids not yet in seen, in order, and marks them seen.
func uniqueIDs(ids []int64, seen map[int64]struct{}) []int64 {
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
