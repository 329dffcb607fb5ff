// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Subject identifies the record whose categories are resolved, e.g. a page.
// Its string form is "table:uid", the same shape the CMS uses for current records.
type Subject struct {
	Table string `json:"table"`
	UID   int64  `json:"uid"`
}

// String returns the "table:uid" form.
func (s Subject) String() string {
	return s.Table + ":" + strconv.FormatInt(s.UID, 10)
}

// ParseSubject parses a "table:uid" reference.
func ParseSubject(ref string) (Subject, error) {
	table, id, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok || table == "" {
		return Subject{}, fmt.Errorf("invalid subject %q: want table:uid", ref)
	}
	uid, err := strconv.ParseInt(id, 10, 64)
	if err != nil || uid < 0 {
		return Subject{}, fmt.Errorf("invalid subject %q: uid must be a non-negative integer", ref)
	}
	return Subject{Table: table, UID: uid}, nil
}

// Locale carries the language used for title overlays. LanguageID 0 is the
// default language.
type Locale struct {
	LanguageID int `json:"language"`
}

// AllLanguages marks records that apply to every language.
const AllLanguages = -1
