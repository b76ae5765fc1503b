// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package talent

import (
	"sort"
	"strconv"
)

// syntheticIDBase keeps fallback ids well clear of any real spell or
// talent id range.
const syntheticIDBase = 9_000_000

// Tree is the canonical, tabIdx-keyed normalization of one class's
// talent-config.json entry, ready for deterministic Lua emission.
type Tree struct {
	ClassID   int          `json:"classId"`
	ClassName string       `json:"className"`
	Tabs      map[int]Tab  `json:"tabs"`
	ClassTree []TalentNode `json:"classTree,omitempty"`
}

// Tab is one normalized talent tab (1..5), sorted by (row, col).
type Tab struct {
	TabIdx  int          `json:"tabIdx"`
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Talents []TalentNode `json:"talents"`
}

// Normalize builds a sorted, id-complete Tree per class from the
// authored config.
func Normalize(cfg Config) (map[int]Tree, error) {
	out := map[int]Tree{}
	classIDs := make([]string, 0, len(cfg.Classes))
	for id := range cfg.Classes {
		classIDs = append(classIDs, id)
	}
	sort.Strings(classIDs)

	nextSynthetic := uint32(syntheticIDBase)
	for _, idStr := range classIDs {
		classID, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, errInvalidClassID(idStr)
		}
		class := cfg.Classes[idStr]

		tabs := map[int]Tab{}
		for i, spec := range class.Specs {
			tabIdx := i + 1
			talents := make([]TalentNode, len(spec.Talents))
			copy(talents, spec.Talents)
			sortTalents(talents)
			for j := range talents {
				if talents[j].ID == 0 {
					talents[j].ID = nextSynthetic
					nextSynthetic++
				}
			}
			tabs[tabIdx] = Tab{
				TabIdx:  tabIdx,
				Name:    spec.Name,
				Rows:    spec.Rows,
				Cols:    spec.Cols,
				Talents: talents,
			}
		}

		classTree := make([]TalentNode, len(class.ClassTree))
		copy(classTree, class.ClassTree)
		sortTalents(classTree)
		for j := range classTree {
			if classTree[j].ID == 0 {
				classTree[j].ID = nextSynthetic
				nextSynthetic++
			}
		}

		out[classID] = Tree{
			ClassID:   classID,
			ClassName: class.ClassName,
			Tabs:      tabs,
			ClassTree: classTree,
		}
	}
	return out, nil
}

// sortTalents orders talents deterministically by (row, col, name),
// the ordering Lua emission relies on for byte-stable output.
func sortTalents(talents []TalentNode) {
	sort.Slice(talents, func(i, j int) bool {
		a, b := talents[i], talents[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Name < b.Name
	})
}

type invalidClassIDError struct{ id string }

func (e *invalidClassIDError) Error() string {
	return "talent: invalid class id key " + strconv.Quote(e.id)
}

func errInvalidClassID(id string) error { return &invalidClassIDError{id: id} }
