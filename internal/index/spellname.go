// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

// SpellNameEntry is one spell-name index record.
type SpellNameEntry struct {
	Name     string `json:"name"`
	IconName string `json:"iconName"`
}

// SpellNameIndex maps spellId -> {name, iconName}, with the
// score-ranked field preference list recorded for lookup fallback.
type SpellNameIndex struct {
	Versioned
	Names           map[uint32]SpellNameEntry `json:"names"`
	PreferredFields []int                     `json:"preferredFields"`
}

const sampleCap = 4000

var (
	noisyPattern     = regexp.MustCompile(`[${}<>\[\]]`)
	blocklistPattern = regexp.MustCompile(`(?i)spell editor|tooltip|<mult>`)
)

// isLikelySpellName is the per-value filter for plausible spell names.
func isLikelySpellName(s string) bool {
	if len(s) < 2 || len(s) > 80 {
		return false
	}
	if !containsLetter(s) {
		return false
	}
	if noisyPattern.MatchString(s) {
		return false
	}
	if blocklistPattern.MatchString(s) {
		return false
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func isNoisy(s string) bool {
	return noisyPattern.MatchString(s) || len(s) > 90
}

// BuildSpellNameIndex reads spellPath via the WDBC codec, scores every
// string-typed field as a spell-name candidate over a sample of at most
// sampleCap rows, and builds spellId -> {name, iconName} using the
// best-scoring field per row (falling through the ranked field list
// when the top field's value doesn't pass isLikelySpellName).
func BuildSpellNameIndex(spellPath string, icons SpellIconIndex) (SpellNameIndex, error) {
	spellSchema := schema.Lookup("Spell")
	table, err := wdbc.Read(spellPath, spellSchema)
	if err != nil {
		return SpellNameIndex{}, err
	}

	fields := spellSchema.Fields()
	idField := fieldIndexOf(fields, "ID")

	sample := table.Rows
	if len(sample) > sampleCap {
		sample = sample[:sampleCap]
	}

	candidates := stringFieldCandidates(fields)
	scores := make(map[int]int, len(candidates))
	for _, fi := range candidates {
		scores[fi] = scoreField(fields[fi].Name, sample, fi)
	}

	preferred := rankFields(candidates, scores)

	names := make(map[uint32]SpellNameEntry, len(table.Rows))
	for _, row := range table.Rows {
		if idField < 0 || idField >= len(row) {
			continue
		}
		id := row[idField].U32
		name := bestName(row, preferred, id)
		iconName := icons.Icons[id]
		names[id] = SpellNameEntry{Name: name, IconName: iconName}
	}

	return SpellNameIndex{
		Versioned:       Versioned{Version: version},
		Names:           names,
		PreferredFields: preferred,
	}, nil
}

func stringFieldCandidates(fields []wdbc.FieldDef) []int {
	var out []int
	for i, fd := range fields {
		if fd.Type == wdbc.FieldString {
			out = append(out, i)
		}
	}
	return out
}

// scoreField computes score = 3*likely + nonEmpty - 2*noisy, plus a
// +25/+15 bonus when the field name is literally SpellName or
// SpellName_*.
func scoreField(name string, rows []wdbc.Row, fieldIdx int) int {
	var likely, nonEmpty, noisy int
	for _, row := range rows {
		if fieldIdx >= len(row) {
			continue
		}
		v := row[fieldIdx].Str
		if v == "" {
			continue
		}
		nonEmpty++
		if isLikelySpellName(v) {
			likely++
		}
		if isNoisy(v) {
			noisy++
		}
	}
	score := 3*likely + nonEmpty - 2*noisy
	if name == "SpellName" {
		score += 25
	} else if strings.HasPrefix(name, "SpellName_") {
		score += 15
	}
	return score
}

func rankFields(candidates []int, scores map[int]int) []int {
	ranked := make([]int, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool { return scores[ranked[i]] > scores[ranked[j]] })
	return ranked
}

// bestName iterates the preferred field list in order, returning the
// first value that passes isLikelySpellName, else a synthetic
// "Spell <id>" fallback.
func bestName(row wdbc.Row, preferred []int, id uint32) string {
	for _, fi := range preferred {
		if fi >= len(row) {
			continue
		}
		v := row[fi].Str
		if isLikelySpellName(v) {
			return v
		}
	}
	return fmt.Sprintf("Spell %d", id)
}
