// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"fmt"
	"strings"

	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/index"
	"github.com/surrealabs/sdbeditor/wdbc"
)

// FlatTalent is one row of GET /api/talents/:class's response: a
// Talent.dbc entry joined against its tab and its sprite-atlas tile
// position.
type FlatTalent struct {
	ID      uint32       `json:"id"`
	TabID   uint32       `json:"tabId"`
	TabName string       `json:"tabName"`
	Row     uint32       `json:"row"`
	Col     uint32       `json:"col"`
	RankIDs []uint32     `json:"rankIds"`
	Icon    string       `json:"icon,omitempty"`
	Sprite  *index.Point `json:"sprite,omitempty"`
}

// FlattenForClass reads Talent.dbc and TalentTab.dbc from store,
// filters to the talents reachable by classID's class mask, and joins
// in icon names and sprite-atlas tile coordinates.
func FlattenForClass(store *editstore.Store, classID int, icons index.SpellIconIndex, sprites index.SpriteMap) ([]FlatTalent, error) {
	token, ok := index.ClassToken(classID)
	if !ok {
		return nil, fmt.Errorf("talent: class id %d has no class token", classID)
	}

	talentRes, err := store.Read("Talent.dbc", editstore.SourceAuto)
	if err != nil {
		return nil, err
	}
	tabRes, err := store.Read("TalentTab.dbc", editstore.SourceAuto)
	if err != nil {
		return nil, err
	}

	tabFields := tabRes.FieldDefs
	tabIDField := fieldIndexOf(tabFields, "ID")
	classMaskField := fieldIndexOf(tabFields, "ClassMask")
	nameField := fieldIndexOf(tabFields, "Name")

	type tabInfo struct {
		name      string
		classMask uint32
	}
	tabs := map[uint32]tabInfo{}
	for _, row := range tabRes.Records {
		if tabIDField < 0 || classMaskField < 0 {
			continue
		}
		info := tabInfo{classMask: row[classMaskField].U32}
		if nameField >= 0 {
			info.name = row[nameField].Str
		}
		tabs[row[tabIDField].U32] = info
	}

	talentFields := talentRes.FieldDefs
	idField := fieldIndexOf(talentFields, "ID")
	tabRefField := fieldIndexOf(talentFields, "TalentTab")
	rowField := fieldIndexOf(talentFields, "Row")
	colField := fieldIndexOf(talentFields, "Col")
	rankFields := rankFieldIndices(talentFields)

	positions := sprites.Classes[token]

	var out []FlatTalent
	for _, row := range talentRes.Records {
		if tabRefField < 0 {
			continue
		}
		tabID := row[tabRefField].U32
		tab, ok := tabs[tabID]
		if !ok || tab.classMask&(1<<uint(classID-1)) == 0 {
			continue
		}

		ft := FlatTalent{
			TabID:   tabID,
			TabName: tab.name,
		}
		if idField >= 0 {
			ft.ID = row[idField].U32
		}
		if rowField >= 0 {
			ft.Row = row[rowField].U32
		}
		if colField >= 0 {
			ft.Col = row[colField].U32
		}
		for _, rf := range rankFields {
			if v := row[rf].U32; v != 0 {
				ft.RankIDs = append(ft.RankIDs, v)
				if ft.Icon == "" {
					if icon, ok := icons.Icons[v]; ok {
						ft.Icon = icon
						if pt, ok := positions[strings.ToLower(icon)]; ok {
							p := pt
							ft.Sprite = &p
						}
					}
				}
			}
		}
		out = append(out, ft)
	}
	return out, nil
}

func fieldIndexOf(fields []wdbc.FieldDef, name string) int {
	for i, fd := range fields {
		if fd.Name == name {
			return i
		}
	}
	return -1
}
