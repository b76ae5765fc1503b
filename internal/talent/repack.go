// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import "sort"

// legacyMaxColumns is the 3.3.5a client's hardcoded talent-UI column
// cap.
const legacyMaxColumns = 4

// RepackedTalent is one talent after column-packing, carrying both
// its packed DBC coordinates and its original authored coordinates.
type RepackedTalent struct {
	ID         uint32
	DisplayRow int
	DisplayCol int
	PackedRow  int
	PackedCol  int
}

// CoordKey addresses one Lua coordinate-table entry:
// (classToken, tabNumber, talentIndex) -> (displayRow, displayCol).
type CoordKey struct {
	ClassToken  string
	TabNumber   int
	TalentIndex int
}

// Repack implements the legacy DBC-repack pipeline preserved for
// reference. It is never invoked from the live deploy path — the
// transport layer answers its HTTP route with 410 Gone — but the
// algorithm itself is complete: sort by (row, col), force the
// lowest-id talent to position 0, pack into `legacyMaxColumns` columns
// row-major, and emit the parallel display-coordinate table.
func Repack(classToken string, tabNumber int, talents []TalentNode) ([]RepackedTalent, map[CoordKey]struct{ Row, Col int }) {
	ordered := make([]TalentNode, len(talents))
	copy(ordered, talents)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	if len(ordered) > 0 {
		lowest := 0
		for i, t := range ordered {
			if t.ID < ordered[lowest].ID {
				lowest = i
			}
		}
		ordered[0], ordered[lowest] = ordered[lowest], ordered[0]
	}

	repacked := make([]RepackedTalent, len(ordered))
	coords := map[CoordKey]struct{ Row, Col int }{}
	for i, t := range ordered {
		packedRow := i / legacyMaxColumns
		packedCol := i % legacyMaxColumns
		repacked[i] = RepackedTalent{
			ID:         t.ID,
			DisplayRow: t.Row,
			DisplayCol: t.Col,
			PackedRow:  packedRow,
			PackedCol:  packedCol,
		}
		coords[CoordKey{ClassToken: classToken, TabNumber: tabNumber, TalentIndex: i}] = struct{ Row, Col int }{Row: t.Row, Col: t.Col}
	}
	return repacked, coords
}
