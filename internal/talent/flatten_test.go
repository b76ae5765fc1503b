// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/index"
	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

func buildRow(t *testing.T, table string, values map[string]wdbc.Value) wdbc.Row {
	t.Helper()
	fields := schema.Lookup(table).Fields()
	row := make(wdbc.Row, len(fields))
	for i, fd := range fields {
		row[i] = values[fd.Name]
	}
	return row
}

func writeTable(t *testing.T, dir, file, table string, rows []wdbc.Row) {
	t.Helper()
	fields := schema.Lookup(table).Fields()
	data, err := wdbc.Encode(fields, rows)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), data, 0o644))
}

func TestFlattenForClass_FiltersByClassMaskAndJoinsIcons(t *testing.T) {
	root := t.TempDir()
	baseDir := filepath.Join(root, "base-dbc")

	// classID 1 (warrior) -> bit 0 -> mask 0x1.
	tab := buildRow(t, "TalentTab", map[string]wdbc.Value{
		"ID":        {U32: 100},
		"Name":      {Str: "Arms"},
		"ClassMask": {U32: 0x1},
	})
	otherClassTab := buildRow(t, "TalentTab", map[string]wdbc.Value{
		"ID":        {U32: 200},
		"Name":      {Str: "Holy"},
		"ClassMask": {U32: 0x2},
	})
	writeTable(t, baseDir, "TalentTab.dbc", "TalentTab", []wdbc.Row{tab, otherClassTab})

	matching := buildRow(t, "Talent", map[string]wdbc.Value{
		"ID":         {U32: 1},
		"TalentTab":  {U32: 100},
		"Row":        {U32: 0},
		"Col":        {U32: 0},
		"RankID_1":   {U32: 500},
	})
	nonMatching := buildRow(t, "Talent", map[string]wdbc.Value{
		"ID":        {U32: 2},
		"TalentTab": {U32: 200},
		"Row":       {U32: 0},
		"Col":       {U32: 0},
	})
	writeTable(t, baseDir, "Talent.dbc", "Talent", []wdbc.Row{matching, nonMatching})

	store := editstore.New(baseDir, filepath.Join(root, "export-dbc"), filepath.Join(root, "backups"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "export-dbc"), 0o755))

	icons := index.SpellIconIndex{Icons: map[uint32]string{500: "spell_fire_fireball"}}
	sprites := index.SpriteMap{Classes: map[string]map[string]index.Point{
		"warrior": {"spell_fire_fireball": {X: 0, Y: 0}},
	}}

	flat, err := FlattenForClass(store, 1, icons, sprites)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, uint32(1), flat[0].ID)
	assert.Equal(t, "Arms", flat[0].TabName)
	assert.Equal(t, "spell_fire_fireball", flat[0].Icon)
	require.NotNil(t, flat[0].Sprite)
	assert.Equal(t, 0, flat[0].Sprite.X)
}

func TestFlattenForClass_UnknownClassIDErrors(t *testing.T) {
	root := t.TempDir()
	store := editstore.New(filepath.Join(root, "base-dbc"), filepath.Join(root, "export-dbc"), filepath.Join(root, "backups"))
	_, err := FlattenForClass(store, 999, index.SpellIconIndex{}, index.SpriteMap{})
	assert.Error(t, err)
}
