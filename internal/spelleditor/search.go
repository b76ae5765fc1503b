// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package spelleditor

import (
	"strconv"
	"strings"
)

// searchableReferences names the reference-table fields the UI offers
// a numeric-prefix search box for.
var searchableReferences = map[string]string{
	"SpellIconID":  "SpellIcon",
	"ActiveIconID": "SpellIcon",
	"SpellVisual1": "SpellVisual",
	"SpellVisual2": "SpellVisual",
}

// ReferenceHit is one candidate row returned by SearchReferences.
type ReferenceHit struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// SearchReferences looks up rows in the field's reference table whose
// id or display name starts with query (case-insensitive), backed by
// the already-resolved lookup maps built from the field's DBC.
func SearchReferences(field string, lookups map[string]map[uint32]string, query string) ([]ReferenceHit, error) {
	refTable, ok := searchableReferences[field]
	if !ok {
		return nil, errUnsearchableField(field)
	}
	table, ok := lookups[refTable]
	if !ok {
		return nil, nil
	}

	query = strings.TrimSpace(strings.ToLower(query))
	var hits []ReferenceHit
	for id, name := range table {
		display := name
		if display == "" {
			display = "Icon " + strconv.FormatUint(uint64(id), 10)
		}
		if matchesQuery(id, display, query) {
			hits = append(hits, ReferenceHit{ID: id, Name: display})
		}
	}
	return hits, nil
}

func matchesQuery(id uint32, display, query string) bool {
	if query == "" {
		return true
	}
	if strings.HasPrefix(strconv.FormatUint(uint64(id), 10), query) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(display), query)
}

func errUnsearchableField(field string) error {
	return &unsearchableFieldError{field: field}
}

type unsearchableFieldError struct{ field string }

func (e *unsearchableFieldError) Error() string {
	return "spelleditor: field " + e.field + " has no reference table"
}
