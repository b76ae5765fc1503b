// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package spelleditor

import (
	"context"
	"fmt"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/index"
	"github.com/surrealabs/sdbeditor/wdbc"
)

// minCustomID is the floor for synthesized spell ids, to stay well
// clear of Blizzard's own id space.
const minCustomID = 900000

// suggestFreeIDMargin is subtracted from the current max id in the
// floor term of suggestFreeID's formula; the result is never below
// maxID+1.
const suggestFreeIDMargin = 50000

// Patch applies a field-name -> value map to spellID's SQL mirror
// entry, skipping unknown field names.
func (e *Editor) Patch(ctx context.Context, spellID uint32, fields map[string]wdbc.Value) error {
	if !isEditable(fields) {
		return apperr.Validation("no editable fields in patch")
	}
	return e.Mirror.Patch(ctx, spellID, fields)
}

func isEditable(fields map[string]wdbc.Value) bool {
	if len(fields) == 0 {
		return false
	}
	known := knownMirrorColumns()
	for name := range fields {
		if known[columnName(name)] {
			return true
		}
	}
	return false
}

// SuggestFreeID returns an unused spell id above both the DBC's
// highest id and the mirror table's highest id, biased toward the
// custom-id range: max(max(existingId)+1, max(maxId-50000, 900000)).
func (e *Editor) SuggestFreeID(ctx context.Context) (uint32, error) {
	res, err := e.Store.Read(e.SpellDBC, editstore.SourceAuto)
	if err != nil {
		return 0, err
	}

	var maxID uint32
	for _, row := range res.Records {
		if len(row) > 0 && row[0].U32 > maxID {
			maxID = row[0].U32
		}
	}

	mirrorMax, err := e.Mirror.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	if mirrorMax > maxID {
		maxID = mirrorMax
	}

	return suggestFreeID(maxID), nil
}

// suggestFreeID is the pure id-selection formula:
// max(maxID+1, max(maxID-suggestFreeIDMargin, minCustomID)).
func suggestFreeID(maxID uint32) uint32 {
	floor := uint32(minCustomID)
	if maxID > suggestFreeIDMargin && maxID-suggestFreeIDMargin > floor {
		floor = maxID - suggestFreeIDMargin
	}
	if maxID+1 > floor {
		floor = maxID + 1
	}
	return floor
}

// CreateFromTemplate clones templateID's Spell.dbc row under newID in
// the SQL mirror, then applies patch on top, all as one logical
// operation. newID must not already exist in the
// mirror.
func (e *Editor) CreateFromTemplate(ctx context.Context, templateID, newID uint32, patch map[string]wdbc.Value, icons index.SpellIconIndex) (*SpellView, error) {
	_, exists, err := e.Mirror.Overrides(ctx, newID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(fmt.Sprintf("spell %d already exists in the mirror", newID))
	}

	res, err := e.Store.Read(e.SpellDBC, editstore.SourceAuto)
	if err != nil {
		return nil, err
	}
	row, ok := findByID(res.Records, templateID)
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("template spell %d not found", templateID))
	}

	seed := map[string]wdbc.Value{}
	for _, section := range Sections() {
		for _, name := range editableFields[section] {
			if name == "ID" {
				continue
			}
			seed[name] = cellByName(res.FieldDefs, row, name)
		}
	}
	for name, v := range patch {
		seed[name] = v
	}

	if err := e.Mirror.Patch(ctx, newID, seed); err != nil {
		return nil, err
	}

	return e.Read(ctx, newID, icons)
}
