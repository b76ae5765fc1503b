// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package schema is the process-wide, immutable registry of named field
// layouts for WDBC tables. It is the thin parameterizing
// layer over the wdbc codec: the codec knows how to read bytes given a
// field list, and this package is where table-specific field lists live.
package schema

import (
	"strconv"

	"github.com/surrealabs/sdbeditor/wdbc"
)

// Schema is an ordered, named field layout for one table. It satisfies
// wdbc.Schema.
type Schema struct {
	Table  string
	fields []wdbc.FieldDef
}

// Fields returns the ordered field descriptors. Satisfies wdbc.Schema.
func (s *Schema) Fields() []wdbc.FieldDef { return s.fields }

// locales is the fixed 16-slot order WDBC 3.3.5a locale-string blocks use.
// Index 0 (enUS) is the only non-hidden slot.
var locales = []string{
	"enUS", "koKR", "frFR", "deDE", "enCN", "zhCN", "enTW", "zhTW",
	"esES", "esMX", "ruRU", "ptPT", "unk1", "unk2", "itIT", "unk3",
}

// LocString expands a single display-name concept into the 17 consecutive
// fields 3.3.5a uses to carry it: one visible enUS slot, fifteen hidden
// locale slots, and a trailing flags field.
func LocString(name string) []wdbc.FieldDef {
	out := make([]wdbc.FieldDef, 0, 17)
	for i, loc := range locales {
		out = append(out, wdbc.FieldDef{
			Name:   localeFieldName(name, i),
			Type:   wdbc.FieldString,
			Hidden: i != 0,
			Locale: loc,
		})
	}
	out = append(out, wdbc.FieldDef{Name: name + "_Flags", Type: wdbc.FieldFlags, Hidden: true})
	return out
}

func localeFieldName(name string, i int) string {
	if i == 0 {
		return name
	}
	return name + "_" + locales[i]
}

// ArrayField expands a repeated column into base_1..base_N indexed
// fields, all sharing one type.
func ArrayField(base string, t wdbc.FieldType, count int) []wdbc.FieldDef {
	out := make([]wdbc.FieldDef, count)
	for i := 0; i < count; i++ {
		out[i] = wdbc.FieldDef{Name: base + "_" + strconv.Itoa(i+1), Type: t}
	}
	return out
}
