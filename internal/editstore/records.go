// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package editstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

// AddRecordResult is addRecord()'s output.
type AddRecordResult struct {
	ID       uint32 `json:"id"`
	Position int    `json:"position"`
}

// AddRecord auto-assigns ID = max(existing ID)+1 in row's first field
// and appends it.
func (s *Store) AddRecord(ctx context.Context, file string, row wdbc.Row) (*AddRecordResult, error) {
	res, err := s.Read(file, SourceAuto)
	if err != nil {
		return nil, err
	}

	var maxID uint32
	for _, r := range res.Records {
		if len(r) > 0 && r[0].U32 > maxID {
			maxID = r[0].U32
		}
	}
	newID := maxID + 1
	if len(row) > 0 {
		row[0] = wdbc.Value{U32: newID}
	}

	records := append(append([]wdbc.Row{}, res.Records...), row)
	if _, err := s.Save(ctx, file, res.FieldDefs, records); err != nil {
		return nil, err
	}

	return &AddRecordResult{ID: newID, Position: len(records) - 1}, nil
}

// DeleteRecordResult is deleteRecord()'s output.
type DeleteRecordResult struct {
	Remaining int `json:"remaining"`
}

// DeleteRecord removes the row whose first field equals id, compacting
// the record block.
func (s *Store) DeleteRecord(ctx context.Context, file string, id uint32) (*DeleteRecordResult, error) {
	res, err := s.Read(file, SourceAuto)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, r := range res.Records {
		if len(r) > 0 && r[0].U32 == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("id not found")
	}

	remaining := make([]wdbc.Row, 0, len(res.Records)-1)
	remaining = append(remaining, res.Records[:idx]...)
	remaining = append(remaining, res.Records[idx+1:]...)

	if _, err := s.Save(ctx, file, res.FieldDefs, remaining); err != nil {
		return nil, err
	}

	return &DeleteRecordResult{Remaining: len(remaining)}, nil
}

// Diff compares the base copy of file against its export copy,
// wrapping wdbc.CompareFiles.
func (s *Store) Diff(file string) (*wdbc.Diff, error) {
	basePath := filepath.Join(s.BaseDir, file)
	exportPath := filepath.Join(s.ExportDir, file)
	if _, err := os.Stat(basePath); err != nil {
		return nil, apperr.NotFound("file missing: " + file)
	}
	if _, err := os.Stat(exportPath); err != nil {
		return nil, apperr.NotFound("file missing: " + file)
	}

	sch := schemaOrNil(schema.Lookup(tableNameFromFile(file)))
	return wdbc.CompareFiles(basePath, exportPath, sch)
}
