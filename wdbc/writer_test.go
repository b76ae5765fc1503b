// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package wdbc

import (
	"path/filepath"
	"testing"
)

func TestEncode_MissingPayload(t *testing.T) {
	if _, err := Encode(nil, nil); err != ErrMissingPayload {
		t.Fatalf("err = %v, want ErrMissingPayload", err)
	}
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "export", "Spell.dbc")

	fields := []FieldDef{{Name: "ID", Type: FieldUint32}}
	rows := []Row{{{U32: 1}}}

	if err := Write(path, fields, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	table, err := Read(path, staticSchema{fields})
	if err != nil {
		t.Fatalf("Read back: %v", err)
	}
	if table.Rows[0][0].U32 != 1 {
		t.Fatalf("Rows[0][0] = %+v, want U32=1", table.Rows[0][0])
	}
}

func TestEncode_SizeInvariant(t *testing.T) {
	fields := []FieldDef{{Name: "ID", Type: FieldUint32}, {Name: "Name", Type: FieldString}}
	rows := []Row{{{U32: 1}, {Str: "alpha"}}, {{U32: 2}, {Str: "beta"}}}

	buf, err := Encode(fields, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	table, err := ReadBytes(buf, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}

	wantSize := HeaderSize +
		len(rows)*len(fields)*FieldSize +
		int(table.Header.StringBlockSize)
	if len(buf) != wantSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), wantSize)
	}
}

func TestRoundTrip_ReadWriteReadIsStable(t *testing.T) {
	fields := sampleFields()
	rows := []Row{
		{{U32: 10}, {Str: "Pyroblast"}, {I32: -1}, {F32: 3.14}},
		{{U32: 11}, {Str: ""}, {I32: 1}, {F32: 0}},
	}

	first, err := Encode(fields, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	table, err := ReadBytes(first, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	second, err := Encode(table.Fields, table.Rows)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	table2, err := ReadBytes(second, staticSchema{fields})
	if err != nil {
		t.Fatalf("re-ReadBytes: %v", err)
	}
	for i := range rows {
		for j := range fields {
			if table.Rows[i][j] != table2.Rows[i][j] {
				t.Fatalf("round trip mismatch at row %d field %d", i, j)
			}
		}
	}
}
