// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package editstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/wdbc"
)

// ExportCSV writes the effective copy of file as CSV, one header row of
// field names followed by one row per record, string cells quoted
// where needed by encoding/csv itself.
func (s *Store) ExportCSV(file string, w io.Writer) error {
	res, err := s.Read(file, SourceAuto)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(res.FieldDefs))
	for i, fd := range res.FieldDefs {
		header[i] = fd.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range res.Records {
		record := make([]string, len(res.FieldDefs))
		for i, fd := range res.FieldDefs {
			if i < len(row) {
				record[i] = cellToCSV(fd.Type, row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV replaces file's export copy with the parsed contents of r,
// applying the write-side coercion rules below. The header row's names
// are matched by name against the effective copy's fieldDefs (the
// registered schema when there is one); columns that match no field are
// ignored, and fields with no column are written as zero values.
func (s *Store) ImportCSV(ctx context.Context, file string, r io.Reader) (*SaveResult, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid csv: %v", err))
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("missing payload")
	}

	existing, err := s.Read(file, SourceAuto)
	if err != nil {
		return nil, err
	}

	header := rows[0]
	fieldByCol := make([]int, len(header))
	for i, name := range header {
		fieldByCol[i] = fieldIndexOf(existing.FieldDefs, name)
	}

	records := make([]wdbc.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(wdbc.Row, len(existing.FieldDefs))
		for i, fi := range fieldByCol {
			if fi < 0 || i >= len(raw) {
				continue
			}
			row[fi] = coerceCell(existing.FieldDefs[fi].Type, raw[i])
		}
		records = append(records, row)
	}

	return s.Save(ctx, file, existing.FieldDefs, records)
}

func fieldDefByName(fields []wdbc.FieldDef, name string) wdbc.FieldDef {
	for _, fd := range fields {
		if fd.Name == name {
			return fd
		}
	}
	return wdbc.FieldDef{Name: name, Type: wdbc.FieldUint32}
}

func cellToCSV(t wdbc.FieldType, v wdbc.Value) string {
	switch t {
	case wdbc.FieldInt32:
		return strconv.FormatInt(int64(v.I32), 10)
	case wdbc.FieldFloat:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case wdbc.FieldString:
		return v.Str
	default:
		return strconv.FormatUint(uint64(v.U32), 10)
	}
}

// coerceCell applies the write coercion rules: float accepts
// numeric input defaulting to 0, int32 truncates to 32-bit signed,
// uint32/flags truncate to 32-bit unsigned (negatives wrap), string is
// stringified with surrounding whitespace trimmed and null -> empty.
func coerceCell(t wdbc.FieldType, raw string) wdbc.Value {
	trimmed := strings.TrimSpace(raw)
	switch t {
	case wdbc.FieldInt32:
		n, _ := strconv.ParseInt(trimmed, 10, 64)
		return wdbc.Value{I32: int32(n)}
	case wdbc.FieldFloat:
		f, _ := strconv.ParseFloat(trimmed, 32)
		return wdbc.Value{F32: float32(f)}
	case wdbc.FieldString:
		if trimmed == "null" {
			return wdbc.Value{Str: ""}
		}
		return wdbc.Value{Str: trimmed}
	default:
		n, _ := strconv.ParseInt(trimmed, 10, 64)
		return wdbc.Value{U32: uint32(n)}
	}
}
