// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"path"
	"strings"

	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

// SpellIconIndex maps spellId -> normalized icon base name, built by
// joining Spell.dbc.SpellIconID (field 133, byte offset 532 — see
// wdbc/schema.tables.go's registerSpell) against SpellIcon.dbc.IconPath.
type SpellIconIndex struct {
	Versioned
	Icons map[uint32]string `json:"icons"`
}

// BuildSpellIconIndex reads spellPath and spellIconPath via the WDBC
// codec and computes the spellId -> iconBaseName join. Rows whose
// SpellIconID has no matching SpellIcon row are omitted.
func BuildSpellIconIndex(spellPath, spellIconPath string) (SpellIconIndex, error) {
	spellSchema := schema.Lookup("Spell")
	iconSchema := schema.Lookup("SpellIcon")

	spells, err := wdbc.Read(spellPath, spellSchema)
	if err != nil {
		return SpellIconIndex{}, err
	}
	icons, err := wdbc.Read(spellIconPath, iconSchema)
	if err != nil {
		return SpellIconIndex{}, err
	}

	iconFields := iconSchema.Fields()
	idField, pathField := fieldIndexOf(iconFields, "ID"), fieldIndexOf(iconFields, "IconPath")
	iconByID := make(map[uint32]string, len(icons.Rows))
	for _, row := range icons.Rows {
		if idField < 0 || pathField < 0 || idField >= len(row) || pathField >= len(row) {
			continue
		}
		iconByID[row[idField].U32] = normalizeIconPath(row[pathField].Str)
	}

	spellFields := spellSchema.Fields()
	spellIDField := fieldIndexOf(spellFields, "ID")
	iconIDField := fieldIndexOf(spellFields, "SpellIconID")

	out := make(map[uint32]string)
	for _, row := range spells.Rows {
		if spellIDField < 0 || iconIDField < 0 || iconIDField >= len(row) {
			continue
		}
		iconID := row[iconIDField].U32
		name, ok := iconByID[iconID]
		if !ok {
			continue
		}
		out[row[spellIDField].U32] = name
	}

	return SpellIconIndex{Versioned: Versioned{Version: version}, Icons: out}, nil
}

func fieldIndexOf(fields []wdbc.FieldDef, name string) int {
	for i, fd := range fields {
		if fd.Name == name {
			return i
		}
	}
	return -1
}

// normalizeIconPath applies the icon-path normalization: backslashes
// to forward slashes, strip leading directory, strip extension,
// lowercase.
func normalizeIconPath(raw string) string {
	s := strings.ReplaceAll(raw, `\`, "/")
	s = path.Base(s)
	s = strings.TrimSuffix(s, path.Ext(s))
	return strings.ToLower(s)
}
