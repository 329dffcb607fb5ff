// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"strconv"
	"strings"
)

// DefaultGlue joins single-value results when no glue is configured.
const DefaultGlue = ", "

// Config controls one resolve call. A fresh Config is built per render.
type Config struct {
	// BaseID is the category whose direct children form the base set.
	BaseID int64 `json:"baseId"`

	// FilterIDs restricts the base set when non-empty.
	FilterIDs []int64 `json:"filterIds,omitempty"`

	// ExcludeIDs removes ids from the base set. Exclude wins over filter.
	ExcludeIDs []int64 `json:"excludeIds,omitempty"`

	RemoveEmptyValues bool   `json:"removeEmptyValues"`
	MultiValue        bool   `json:"multiValue"`
	SingleValueGlue   string `json:"singleValueGlue"`
}

// DefaultConfig returns the defaults of the category content object.
func DefaultConfig() Config {
	return Config{
		RemoveEmptyValues: true,
		MultiValue:        true,
		SingleValueGlue:   DefaultGlue,
	}
}

// Glue returns the configured glue, falling back to DefaultGlue.
func (c Config) Glue() string {
	if c.SingleValueGlue == "" {
		return DefaultGlue
	}
	return c.SingleValueGlue
}

// ParseConfig builds a Config from a string configuration map, starting from
// DefaultConfig. Malformed values never fail: a non-numeric baseId becomes 0
// and non-numeric list entries are dropped.
func ParseConfig(values map[string]string) Config {
	cfg := DefaultConfig()

	if v, ok := values["baseId"]; ok {
		cfg.BaseID = parseID(v)
	}
	if v, ok := values["filterIds"]; ok {
		cfg.FilterIDs = ParseIDList(v)
	}
	if v, ok := values["excludeIds"]; ok {
		cfg.ExcludeIDs = ParseIDList(v)
	}
	if v, ok := values["removeEmptyValues"]; ok {
		cfg.RemoveEmptyValues = parseFlag(v)
	}
	if v, ok := values["multiValue"]; ok {
		cfg.MultiValue = parseFlag(v)
	}
	if v, ok := values["singleValueGlue"]; ok {
		cfg.SingleValueGlue = v
	}
	return cfg
}

// ParseIDList splits a comma separated id list, skipping blank and
// non-numeric entries.
func ParseIDList(v string) []int64 {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parseID(v string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// parseFlag treats "", "0" and "false" as off and anything else as on.
func parseFlag(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}
