// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"encoding/json"
	"strings"
)

// Result holds the rendered titles of one resolve call.
type Result struct {
	Values []string
	Multi  bool
	Glue   string
}

// List returns the titles, never nil.
func (r Result) List() []string {
	if r.Values == nil {
		return []string{}
	}
	return r.Values
}

// String renders the result the way it is stored in an index field: the
// joined titles for single-value results, the JSON list for multi-value ones.
func (r Result) String() string {
	if !r.Multi {
		glue := r.Glue
		if glue == "" {
			glue = DefaultGlue
		}
		return strings.Join(r.Values, glue)
	}
	b, err := json.Marshal(r.List())
	if err != nil {
		return "[]"
	}
	return string(b)
}

// MarshalJSON encodes single-value results as a JSON string and multi-value
// results as a JSON array.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Multi {
		return json.Marshal(r.List())
	}
	return json.Marshal(r.String())
}
