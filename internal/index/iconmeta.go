// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

// IconMetaEntry is one row of icon-manifest.json: per-icon
// display metadata joining the icon-list with the thumbnail directory
// and SpellIcon.dbc.
type IconMetaEntry struct {
	Name          string `json:"name"`
	HasThumbnail  bool   `json:"hasThumbnail"`
	InDBC         bool   `json:"inDbc"`
	DBCID         uint32 `json:"dbcId,omitempty"`
}

// IconManifest is icon-manifest.json: the per-icon record set, rebuilt
// whenever icon-list.json or SpellIcon.dbc changes.
type IconManifest struct {
	Versioned
	Icons []IconMetaEntry `json:"icons"`
}

// BuildIconManifest joins an already-built IconList against the
// thumbnail directory (hasThumbnail) and SpellIcon.dbc (inDbc/dbcId).
func BuildIconManifest(list IconList, thumbnailDir, spellIconPath string) (IconManifest, error) {
	iconSchema := schema.Lookup("SpellIcon")
	table, err := wdbc.Read(spellIconPath, iconSchema)
	if err != nil {
		return IconManifest{}, err
	}
	fields := iconSchema.Fields()
	idField, pathField := fieldIndexOf(fields, "ID"), fieldIndexOf(fields, "IconPath")

	dbcByName := make(map[string]uint32, len(table.Rows))
	for _, row := range table.Rows {
		if idField < 0 || pathField < 0 || idField >= len(row) || pathField >= len(row) {
			continue
		}
		dbcByName[normalizeIconPath(row[pathField].Str)] = row[idField].U32
	}

	entries := make([]IconMetaEntry, 0, len(list.Files))
	for _, file := range list.Files {
		base := strings.TrimSuffix(file, filepath.Ext(file))
		entry := IconMetaEntry{Name: base}

		thumbPath := filepath.Join(thumbnailDir, base+".png")
		if info, err := os.Stat(thumbPath); err == nil && info.Size() > 0 {
			entry.HasThumbnail = true
		}
		if id, ok := dbcByName[strings.ToLower(base)]; ok {
			entry.InDBC = true
			entry.DBCID = id
		}
		entries = append(entries, entry)
	}

	return IconManifest{Versioned: Versioned{Version: version}, Icons: entries}, nil
}
