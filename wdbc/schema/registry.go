// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package schema

import (
	"sort"

	"github.com/surrealabs/sdbeditor/wdbc"
)

// registry is the process-wide, immutable table-name -> schema map.
// Populated once at package init from the table builders below.
var registry = map[string]*Schema{}

func register(table string, fields []wdbc.FieldDef) {
	registry[table] = &Schema{Table: table, fields: fields}
}

// Lookup returns the registered schema for table, or nil if none exists.
// A nil return is not an error: wdbc.Read degrades to all-uint32 fields
// when given a nil schema.
func Lookup(table string) *Schema {
	return registry[table]
}

// Tables returns the sorted set of table names with a registered schema.
func Tables() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LookupSource names, for one referenceable table, which file and which
// field index holds the display name used to resolve a foreign key.
type LookupSource struct {
	File       string
	NameField  int // index into that table's Fields()
}

// LookupSources maps a referenceable table name to where its display
// name lives. The Edit Store (internal/editstore) uses this to build a
// flat {refTable: {id: name}} map per read request.
var LookupSources = map[string]LookupSource{
	"SpellIcon":    {File: "SpellIcon.dbc", NameField: 1},
	"Spell":        {File: "Spell.dbc", NameField: 1},
	"ChrClasses":   {File: "ChrClasses.dbc", NameField: 4},
	"ChrRaces":     {File: "ChrRaces.dbc", NameField: 15},
	"Faction":      {File: "Faction.dbc", NameField: 23},
	"Map":          {File: "Map.dbc", NameField: 5},
	"Achievement":  {File: "Achievement.dbc", NameField: 9},
	"SkillLine":    {File: "SkillLine.dbc", NameField: 3},
	"Talent":       {File: "Talent.dbc", NameField: 0},
	"TalentTab":    {File: "TalentTab.dbc", NameField: 1},
	"SpellVisual":  {File: "SpellVisual.dbc", NameField: 0},
}

func init() {
	registerCore()
}
