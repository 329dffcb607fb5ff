// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package indexing decides which access groups and languages a record is
// indexed with. The host maps the selected languages to search connections.
package indexing

import (
	"context"
	"slices"

	"github.com/hofhaeckerei/solr-utility/internal/models"
)

// Policy customizes how an index item is indexed.
type Policy interface {
	// FilterAccessGroups returns the access groups the item is indexed with in
	// language. An empty result denies indexing in that language.
	FilterAccessGroups(ctx context.Context, item models.IndexItem, language int, groups []string) ([]string, error)

	// SelectLanguages returns the subset of configured languages the item is
	// indexed into, in configured order.
	SelectLanguages(ctx context.Context, item models.IndexItem, configured []int) ([]int, error)
}

// DefaultPolicy passes access groups through unchanged and indexes an item
// into its own language only. Items of all languages go to every configured
// language.
type DefaultPolicy struct{}

var _ Policy = DefaultPolicy{}

// FilterAccessGroups returns groups unchanged.
func (DefaultPolicy) FilterAccessGroups(_ context.Context, _ models.IndexItem, _ int, groups []string) ([]string, error) {
	return groups, nil
}

// SelectLanguages returns the item's own language when it is configured.
func (DefaultPolicy) SelectLanguages(_ context.Context, item models.IndexItem, configured []int) ([]int, error) {
	return defaultLanguages(item, configured), nil
}

func defaultLanguages(item models.IndexItem, configured []int) []int {
	if item.HasLanguage && item.RecordLanguage == models.AllLanguages {
		return slices.Clone(configured)
	}
	language := 0
	if item.HasLanguage {
		language = item.RecordLanguage
	}
	return intersect(configured, []int{language})
}

// Passthrough leaves both access groups and languages unchanged. Policies
// that only decide one of the two embed it so they do not narrow the other
// inside a Chain.
type Passthrough struct{}

var _ Policy = Passthrough{}

// FilterAccessGroups returns groups unchanged.
func (Passthrough) FilterAccessGroups(_ context.Context, _ models.IndexItem, _ int, groups []string) ([]string, error) {
	return groups, nil
}

// SelectLanguages returns a copy of configured.
func (Passthrough) SelectLanguages(_ context.Context, _ models.IndexItem, configured []int) ([]int, error) {
	return slices.Clone(configured), nil
}

// intersect returns the entries of configured that are in wanted, keeping the
// order of configured and dropping duplicates.
func intersect(configured, wanted []int) []int {
	result := []int{}
	for _, lang := range configured {
		if slices.Contains(wanted, lang) && !slices.Contains(result, lang) {
			result = append(result, lang)
		}
	}
	return result
}

// chain applies its policies in order.
type chain []Policy

// Chain composes policies left to right. Each policy receives the groups or
// languages returned by the previous one. An empty chain behaves like
// DefaultPolicy.
func Chain(policies ...Policy) Policy {
	if len(policies) == 0 {
		return DefaultPolicy{}
	}
	if len(policies) == 1 {
		return policies[0]
	}
	return chain(policies)
}

func (c chain) FilterAccessGroups(ctx context.Context, item models.IndexItem, language int, groups []string) ([]string, error) {
	var err error
	for _, p := range c {
		groups, err = p.FilterAccessGroups(ctx, item, language, groups)
		if err != nil {
			return nil, err
		}
		if len(groups) == 0 {
			return []string{}, nil
		}
	}
	return groups, nil
}

func (c chain) SelectLanguages(ctx context.Context, item models.IndexItem, configured []int) ([]int, error) {
	var err error
	for _, p := range c {
		configured, err = p.SelectLanguages(ctx, item, configured)
		if err != nil {
			return nil, err
		}
	}
	return configured, nil
}
