// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// IndexItem is a search index queue entry as seen by indexing policies.
type IndexItem struct {
	Type        string `json:"type"` // table name of the record
	RecordUID   int64  `json:"record_uid"`
	RootPageUID int64  `json:"root_page_uid"`

	// RecordLanguage is the record's language field value. HasLanguage is
	// false when the table is not translatable.
	RecordLanguage int  `json:"record_language"`
	HasLanguage    bool `json:"has_language"`
}

// Subject returns the item's record as a Subject.
func (i IndexItem) Subject() Subject {
	return Subject{Table: i.Type, UID: i.RecordUID}
}
