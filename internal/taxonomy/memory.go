// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

// MemoryStore is an in-memory CategoryStore, TitleLookup and
// SubjectCategoryResolver. Categories are returned in the order they were added.
type MemoryStore struct {
	mu          sync.RWMutex
	categories  []models.Category // default-language rows
	overlays    map[int64]map[int]string
	assignments map[models.Subject][]int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		overlays:    make(map[int64]map[int]string),
		assignments: make(map[models.Subject][]int64),
	}
}

// Fixture is the YAML document read by LoadFixture.
//
//	categories:
//	  - {uid: 10, title: Products}
//	  - {uid: 1, parent: 10, title: Shoes}
//	  - {uid: 101, l10n_parent: 1, sys_language_uid: 1, title: Schuhe}
//	assignments:
//	  "pages:3": [1]
type Fixture struct {
	Categories  []models.Category  `yaml:"categories"`
	Assignments map[string][]int64 `yaml:"assignments"`
}

// LoadFixture reads a YAML fixture into a new MemoryStore.
func LoadFixture(r io.Reader) (*MemoryStore, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	s := NewMemoryStore()
	for _, c := range f.Categories {
		s.Add(c)
	}
	for ref, ids := range f.Assignments {
		subject, err := models.ParseSubject(ref)
		if err != nil {
			return nil, fmt.Errorf("decode fixture: %w", err)
		}
		s.Assign(subject, ids...)
	}
	return s, nil
}

// Add stores a category. Rows with a language and an l10n parent are kept
// as title overlays of their parent.
func (s *MemoryStore) Add(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.LanguageID > 0 && c.L10nParent != 0 {
		if s.overlays[c.L10nParent] == nil {
			s.overlays[c.L10nParent] = make(map[int]string)
		}
		s.overlays[c.L10nParent][c.LanguageID] = c.Title
		return
	}
	s.categories = append(s.categories, c)
}

// Assign appends category ids to a subject.
func (s *MemoryStore) Assign(subject models.Subject, ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[subject] = append(s.assignments[subject], ids...)
}

// FindByParent implements CategoryStore.
func (s *MemoryStore) FindByParent(_ context.Context, parentID int64) (*CategorySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := NewCategorySet()
	for _, c := range s.categories {
		if c.ParentID == parentID {
			set.Add(c)
		}
	}
	return set, nil
}

// FindByIDs implements CategoryStore.
func (s *MemoryStore) FindByIDs(_ context.Context, ids []int64) (*CategorySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := idSet(ids)
	set := NewCategorySet()
	for _, c := range s.categories {
		if _, ok := want[c.ID]; ok {
			set.Add(c)
		}
	}
	return set, nil
}

// Title implements TitleLookup.
func (s *MemoryStore) Title(_ context.Context, categoryID int64, locale models.Locale) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if locale.LanguageID > 0 {
		if title, ok := s.overlays[categoryID][locale.LanguageID]; ok {
			return title, nil
		}
	}
	for _, c := range s.categories {
		if c.ID == categoryID {
			return c.Title, nil
		}
	}
	return "", nil
}

// AssignedCategoryIDs implements SubjectCategoryResolver.
func (s *MemoryStore) AssignedCategoryIDs(_ context.Context, subject models.Subject) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.assignments[subject]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}
