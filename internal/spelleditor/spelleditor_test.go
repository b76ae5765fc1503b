// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package spelleditor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surrealabs/sdbeditor/wdbc"
)

func TestColumnName_ResolvesAliasBothWays(t *testing.T) {
	assert.Equal(t, "SpellName0", columnName("SpellName"))
	assert.Equal(t, "MaxLevel", columnName("MaximumLevel"))
	assert.Equal(t, "DmgClass", columnName("DmgClass"))
}

func TestKnownMirrorColumns_IncludesAliasedAndPlainNames(t *testing.T) {
	known := knownMirrorColumns()
	assert.True(t, known["SpellName0"])
	assert.True(t, known["MaxLevel"])
	assert.True(t, known["DmgClass"])
	assert.False(t, known["NotARealField"])
}

func TestFindByID_ReturnsMatchingRow(t *testing.T) {
	rows := []wdbc.Row{
		{{U32: 1}, {Str: "One"}},
		{{U32: 2}, {Str: "Two"}},
	}
	row, ok := findByID(rows, 2)
	assert.True(t, ok)
	assert.Equal(t, "Two", row[1].Str)

	_, ok = findByID(rows, 99)
	assert.False(t, ok)
}

func TestCellByName_ReturnsZeroValueWhenFieldMissing(t *testing.T) {
	fields := []wdbc.FieldDef{{Name: "ID", Type: wdbc.FieldUint32}}
	row := wdbc.Row{{U32: 1}}
	assert.Equal(t, wdbc.Value{}, cellByName(fields, row, "NoSuchField"))
}

func TestCellByName_ReturnsZeroValueWhenRowEmpty(t *testing.T) {
	fields := []wdbc.FieldDef{{Name: "ID", Type: wdbc.FieldUint32}}
	assert.Equal(t, wdbc.Value{}, cellByName(fields, nil, "ID"))
}

func TestSuggestFreeID_BelowMargin_UsesCustomIDFloor(t *testing.T) {
	assert.Equal(t, uint32(minCustomID), suggestFreeID(100))
}

func TestSuggestFreeID_AboveMargin_FollowsMaxIDPlusOne(t *testing.T) {
	assert.Equal(t, uint32(1000001), suggestFreeID(1000000))
}

func TestSuggestFreeID_ExactlyAtFloorBoundary(t *testing.T) {
	assert.Equal(t, uint32(minCustomID+1), suggestFreeID(minCustomID))
}

func TestMatchesQuery_EmptyQueryMatchesEverything(t *testing.T) {
	assert.True(t, matchesQuery(42, "Fireball", ""))
}

func TestMatchesQuery_MatchesByIDPrefix(t *testing.T) {
	assert.True(t, matchesQuery(1234, "Anything", "12"))
	assert.False(t, matchesQuery(1234, "Anything", "34"))
}

func TestMatchesQuery_MatchesByNamePrefixCaseInsensitive(t *testing.T) {
	assert.True(t, matchesQuery(1, "Fireball", "fire"))
	assert.False(t, matchesQuery(1, "Fireball", "ball"))
}

func TestSearchReferences_UnknownFieldErrors(t *testing.T) {
	_, err := SearchReferences("NotSearchable", nil, "")
	assert.Error(t, err)
}

func TestSearchReferences_FiltersByQuery(t *testing.T) {
	lookups := map[string]map[uint32]string{
		"SpellIcon": {1: "Fireball", 2: "Frostbolt", 3: ""},
	}
	hits, err := SearchReferences("SpellIconID", lookups, "fro")
	assert.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, uint32(2), hits[0].ID)
}

func TestSearchReferences_MissingLookupTableReturnsEmpty(t *testing.T) {
	hits, err := SearchReferences("SpellIconID", map[string]map[uint32]string{}, "")
	assert.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIsEditable_RejectsEmptyOrUnknownFields(t *testing.T) {
	assert.False(t, isEditable(nil))
	assert.False(t, isEditable(map[string]wdbc.Value{"Bogus": {}}))
	assert.True(t, isEditable(map[string]wdbc.Value{"DmgClass": {}}))
}
