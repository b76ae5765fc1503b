// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package spelleditor implements the Spell Editor: a
// whitelisted, sectioned projection of Spell.dbc's 234 fields plus a
// SQL mirror that overrides the DBC on read, so a running game server
// picks up edits without restart.
package spelleditor

import (
	"context"
	"fmt"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/index"
	"github.com/surrealabs/sdbeditor/wdbc"
)

// Section names one group of editable fields.
type Section string

const (
	SectionSelectSpell  Section = "selectSpell"
	SectionBase         Section = "base"
	SectionTargetsProcs Section = "targetsProcs"
	SectionEffects      Section = "effects"
	SectionItems        Section = "items"
	SectionFlags        Section = "flags"
	SectionIcon         Section = "icon"
	SectionVisual       Section = "visual"
)

// editableFields maps each section to the Spell.dbc field names it
// exposes for editing. Field names must match wdbc/schema's
// registerSpell layout.
var editableFields = map[Section][]string{
	SectionSelectSpell: {"ID", "SpellName", "SpellNameSubtext"},
	SectionBase:        {"SpellDescription", "SpellAuraDescription", "CastingTimeIndex", "DurationIndex", "RangeIndex", "Speed", "StackAmount"},
	SectionTargetsProcs: {
		"EffectImplicitTargetA_1", "EffectImplicitTargetA_2", "EffectImplicitTargetA_3",
		"EffectImplicitTargetB_1", "EffectImplicitTargetB_2", "EffectImplicitTargetB_3",
		"RequiredAuraVicinity", "MinFactionID", "MinReputation",
	},
	SectionEffects: {
		"Effect_1", "Effect_2", "Effect_3",
		"EffectBasePoints_1", "EffectBasePoints_2", "EffectBasePoints_3",
		"EffectDieSides_1", "EffectDieSides_2", "EffectDieSides_3",
		"EffectMechanic_1", "EffectMechanic_2", "EffectMechanic_3",
	},
	SectionItems:  {"EquippedItemClass", "EquippedItemSubClassMask", "EquippedItemInventoryTypeMask"},
	SectionFlags:  {"Attributes_1", "Attributes_2", "Attributes_3", "DmgClass", "PreventionType"},
	SectionIcon:   {"SpellIconID", "ActiveIconID"},
	SectionVisual: {"SpellVisual1", "SpellVisual2", "SpellMissileID"},
}

// Sections returns the ordered section list.
func Sections() []Section {
	return []Section{
		SectionSelectSpell, SectionBase, SectionTargetsProcs, SectionEffects,
		SectionItems, SectionFlags, SectionIcon, SectionVisual,
	}
}

// SpellView is read()'s shaped output.
type SpellView struct {
	ID              uint32                             `json:"id"`
	Name            string                             `json:"name"`
	Rank            string                             `json:"rank"`
	Description     string                             `json:"description"`
	ToolTip         string                             `json:"toolTip"`
	SpellIconID     uint32                             `json:"spellIconId"`
	Icon            string                             `json:"icon"`
	Editable        map[Section]map[string]wdbc.Value  `json:"editable"`
	ReferenceTables map[string]map[uint32]string        `json:"referenceTables"`
	CustomSpell     bool                               `json:"customSpell"`
}

// Editor is the Spell Editor, composing the Edit Store (DBC source of
// truth for unedited spells) with a SQL mirror (source of truth once a
// spell has been patched).
type Editor struct {
	Store    *editstore.Store
	Mirror   *Mirror
	SpellDBC string // e.g. "Spell.dbc"
}

// New returns an Editor backed by store and a SQL mirror.
func New(store *editstore.Store, mirror *Mirror) *Editor {
	return &Editor{Store: store, Mirror: mirror, SpellDBC: "Spell.dbc"}
}

// Read returns the sectioned projection for spellID, with the SQL
// mirror's touched columns overriding the DBC row.
func (e *Editor) Read(ctx context.Context, spellID uint32, icons index.SpellIconIndex) (*SpellView, error) {
	res, err := e.Store.Read(e.SpellDBC, editstore.SourceAuto)
	if err != nil {
		return nil, err
	}

	row, hasDBCRow := findByID(res.Records, spellID)

	overrides, custom, err := e.Mirror.Overrides(ctx, spellID)
	if err != nil {
		return nil, err
	}
	if !hasDBCRow && !custom {
		return nil, apperr.NotFound(fmt.Sprintf("spell %d not found", spellID))
	}

	view := &SpellView{
		ID:              spellID,
		Editable:        map[Section]map[string]wdbc.Value{},
		ReferenceTables: res.Lookups,
		CustomSpell:     custom,
	}

	for _, section := range Sections() {
		fields := map[string]wdbc.Value{}
		for _, name := range editableFields[section] {
			v := cellByName(res.FieldDefs, row, name)
			if override, ok := overrides[name]; ok {
				v = override
			}
			fields[name] = v
		}
		view.Editable[section] = fields
	}

	view.Name = view.Editable[SectionSelectSpell]["SpellName"].Str
	view.Rank = view.Editable[SectionSelectSpell]["SpellNameSubtext"].Str
	view.Description = view.Editable[SectionBase]["SpellDescription"].Str
	view.ToolTip = view.Editable[SectionBase]["SpellAuraDescription"].Str
	view.SpellIconID = view.Editable[SectionIcon]["SpellIconID"].U32
	view.Icon = icons.Icons[spellID]

	return view, nil
}

func findByID(rows []wdbc.Row, id uint32) (wdbc.Row, bool) {
	for _, row := range rows {
		if len(row) > 0 && row[0].U32 == id {
			return row, true
		}
	}
	return nil, false
}

func cellByName(fields []wdbc.FieldDef, row wdbc.Row, name string) wdbc.Value {
	for i, fd := range fields {
		if fd.Name == name && i < len(row) {
			return row[i]
		}
	}
	return wdbc.Value{}
}
