// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepack_ForcesLowestIDToPositionZero(t *testing.T) {
	talents := []TalentNode{
		{ID: 50, Name: "B", Row: 0, Col: 0},
		{ID: 10, Name: "A", Row: 0, Col: 1},
	}
	repacked, _ := Repack("WARRIOR", 1, talents)
	require.Len(t, repacked, 2)
	assert.Equal(t, uint32(10), repacked[0].ID)
}

func TestRepack_PacksColumnsUnderLegacyCap(t *testing.T) {
	talents := make([]TalentNode, 6)
	for i := range talents {
		talents[i] = TalentNode{ID: uint32(i + 1), Name: "T", Row: 0, Col: i}
	}
	repacked, _ := Repack("MAGE", 1, talents)
	for _, rt := range repacked {
		assert.Less(t, rt.PackedCol, legacyMaxColumns)
	}
	assert.Equal(t, 0, repacked[0].PackedRow)
	assert.Equal(t, 1, repacked[4].PackedRow)
}

func TestRepack_CoordTableMapsOriginalDisplayCoords(t *testing.T) {
	talents := []TalentNode{{ID: 1, Name: "A", Row: 3, Col: 2}}
	_, coords := Repack("PRIEST", 2, talents)
	key := CoordKey{ClassToken: "PRIEST", TabNumber: 2, TalentIndex: 0}
	require.Contains(t, coords, key)
	assert.Equal(t, 3, coords[key].Row)
	assert.Equal(t, 2, coords[key].Col)
}
