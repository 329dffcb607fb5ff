// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// NoParent is the parent value of a root category.
const NoParent int64 = 0

// Category represents a node of the sys_category taxonomy.
// Translated rows point at their default-language record through L10nParent.
type Category struct {
	ID         int64  `json:"uid" yaml:"uid"`
	PID        int64  `json:"pid" yaml:"pid"`
	ParentID   int64  `json:"parent" yaml:"parent"`
	Title      string `json:"title" yaml:"title"`
	LanguageID int    `json:"sys_language_uid" yaml:"sys_language_uid"`
	L10nParent int64  `json:"l10n_parent" yaml:"l10n_parent"`
	Sorting    int    `json:"sorting" yaml:"sorting"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == NoParent
}

// CategoryNode is a category with its nested children, as returned by
// tree queries.
type CategoryNode struct {
	Category
	Depth    int            `json:"depth"`
	Children []CategoryNode `json:"children,omitempty"`
}
