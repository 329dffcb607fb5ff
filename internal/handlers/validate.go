// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"unicode/utf8"

	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// Validation limits for request inputs.
const (
	maxBatchSubjects = 100
	maxIDListLen     = 1_000
	maxGlueLen       = 32
	maxTableLen      = 64
	maxBodyBytes     = 1 << 20
)

// validateTable checks a table name from the URL. Table names are lower-case
// identifiers as used by the CMS.
func validateTable(table string) string {
	if table == "" {
		return "table is required"
	}
	if len(table) > maxTableLen {
		return fmt.Sprintf("table is too long (max %d characters)", maxTableLen)
	}
	for _, c := range table {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
			return "table may only contain a-z, 0-9 and _"
		}
	}
	return ""
}

// validateConfig checks the size of a resolve configuration.
func validateConfig(cfg taxonomy.Config) string {
	if len(cfg.FilterIDs) > maxIDListLen {
		return fmt.Sprintf("filterIds is too long (max %d ids)", maxIDListLen)
	}
	if len(cfg.ExcludeIDs) > maxIDListLen {
		return fmt.Sprintf("excludeIds is too long (max %d ids)", maxIDListLen)
	}
	if utf8.RuneCountInString(cfg.SingleValueGlue) > maxGlueLen {
		return fmt.Sprintf("singleValueGlue is too long (max %d characters)", maxGlueLen)
	}
	return ""
}

// validateBatch checks a batch resolve request and returns the first error found.
func validateBatch(req batchRequest) string {
	if len(req.Subjects) == 0 {
		return "subjects is required"
	}
	if len(req.Subjects) > maxBatchSubjects {
		return fmt.Sprintf("too many subjects (max %d)", maxBatchSubjects)
	}
	if req.Lang < 0 {
		return "lang must not be negative"
	}
	return validateConfig(req.Config)
}
