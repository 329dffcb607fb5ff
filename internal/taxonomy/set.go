// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy resolves the categories of a subject record against a
// configured set of base categories. It walks the parent links of the
// subject's categories up to the roots, filters the children of the base
// category, intersects both and renders the resulting titles.
//
// The package performs reads only and keeps no state between calls; the
// category store and title lookup are supplied by the caller.
package taxonomy

import "github.com/hofhaeckerei/solr-utility/internal/models"

// CategorySet is an insertion-ordered set of categories keyed by id.
// The first category added for an id wins; later adds are ignored.
type CategorySet struct {
	ids  []int64
	byID map[int64]models.Category
}

// NewCategorySet returns a set holding cats in the given order.
func NewCategorySet(cats ...models.Category) *CategorySet {
	s := &CategorySet{byID: make(map[int64]models.Category, len(cats))}
	for _, c := range cats {
		s.Add(c)
	}
	return s
}

// Add inserts c unless its id is already present. It reports whether c was added.
func (s *CategorySet) Add(c models.Category) bool {
	if s.byID == nil {
		s.byID = make(map[int64]models.Category)
	}
	if _, ok := s.byID[c.ID]; ok {
		return false
	}
	s.byID[c.ID] = c
	s.ids = append(s.ids, c.ID)
	return true
}

// Merge adds every category of other and returns the ones that were new.
func (s *CategorySet) Merge(other *CategorySet) []models.Category {
	var added []models.Category
	for _, c := range other.Categories() {
		if s.Add(c) {
			added = append(added, c)
		}
	}
	return added
}

// Has reports whether id is in the set.
func (s *CategorySet) Has(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of categories in the set.
func (s *CategorySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the ids in insertion order.
func (s *CategorySet) IDs() []int64 {
	if s == nil {
		return nil
	}
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Categories returns the categories in insertion order.
func (s *CategorySet) Categories() []models.Category {
	if s == nil {
		return nil
	}
	out := make([]models.Category, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.byID[id])
	}
	return out
}
