// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package wdbc

import (
	"testing"
)

func sampleFields() []FieldDef {
	return []FieldDef{
		{Name: "ID", Type: FieldUint32},
		{Name: "Name", Type: FieldString},
		{Name: "Delta", Type: FieldInt32},
		{Name: "Scale", Type: FieldFloat},
	}
}

func TestReadBytes_RoundTripsKnownSchema(t *testing.T) {
	fields := sampleFields()
	rows := []Row{
		{{U32: 1}, {Str: "Fireball"}, {I32: -5}, {F32: 1.5}},
		{{U32: 2}, {Str: ""}, {I32: 0}, {F32: 0}},
		{{U32: 3}, {Str: "Fireball"}, {I32: 7}, {F32: -2.25}},
	}

	buf, err := Encode(fields, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	table, err := ReadBytes(buf, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}

	if table.Header.RecordCount != uint32(len(rows)) {
		t.Fatalf("RecordCount = %d, want %d", table.Header.RecordCount, len(rows))
	}
	for i, row := range rows {
		for j := range fields {
			if table.Rows[i][j] != row[j] {
				t.Fatalf("row %d field %d = %+v, want %+v", i, j, table.Rows[i][j], row[j])
			}
		}
	}
}

func TestReadBytes_InternedStringsShareOffset(t *testing.T) {
	fields := sampleFields()
	rows := []Row{
		{{U32: 1}, {Str: "Fireball"}, {}, {}},
		{{U32: 2}, {Str: "Fireball"}, {}, {}},
	}
	buf, err := Encode(fields, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Both records should reference the same string-block offset: the
	// second cell (the string field) of record 0 and of record 1 must
	// be bit-identical.
	recordSize := int(FieldSize) * len(fields)
	off0 := HeaderSize + FieldSize
	off1 := HeaderSize + recordSize + FieldSize
	for k := 0; k < FieldSize; k++ {
		if buf[off0+k] != buf[off1+k] {
			t.Fatalf("duplicate strings were not interned to the same offset")
		}
	}
}

func TestReadBytes_InvalidMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "XXXX")
	if _, err := ReadBytes(buf, nil); err != ErrInvalidMagic {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestReadBytes_TruncatedFile(t *testing.T) {
	buf := []byte{'W', 'D', 'B', 'C'}
	if _, err := ReadBytes(buf, nil); err != ErrTruncatedFile {
		t.Fatalf("err = %v, want ErrTruncatedFile", err)
	}
}

func TestReadBytes_EmptyTable(t *testing.T) {
	fields := sampleFields()
	buf, err := Encode(fields, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	table, err := ReadBytes(buf, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if table.Header.StringBlockSize != 1 {
		t.Fatalf("StringBlockSize = %d, want 1 (single leading NUL)", table.Header.StringBlockSize)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("len(Rows) = %d, want 0", len(table.Rows))
	}
}

func TestReadBytes_FieldCountAboveSchema(t *testing.T) {
	fields := sampleFields()
	extra := append(append([]FieldDef{}, fields...), FieldDef{Name: "Unused", Type: FieldUint32})
	rows := []Row{{{U32: 1}, {Str: "x"}, {I32: 1}, {F32: 1}, {U32: 99}}}
	buf, err := Encode(extra, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Decode using only the shorter, registered schema: the codec must
	// synthesize Field_4 for the trailing column.
	table, err := ReadBytes(buf, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(table.Fields) != 5 {
		t.Fatalf("len(Fields) = %d, want 5", len(table.Fields))
	}
	if table.Fields[4].Name != "Field_4" {
		t.Fatalf("Fields[4].Name = %q, want Field_4", table.Fields[4].Name)
	}
	if table.Rows[0][4].U32 != 99 {
		t.Fatalf("Rows[0][4] = %+v, want U32=99", table.Rows[0][4])
	}
}

func TestReadBytes_FieldCountBelowSchema(t *testing.T) {
	fields := sampleFields()[:2] // file only has ID, Name
	rows := []Row{{{U32: 1}, {Str: "x"}}}
	buf, err := Encode(fields, rows)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Decoding under the full (longer) schema must still succeed; the
	// registered schema covers more fields than the file actually has.
	table, err := ReadBytes(buf, staticSchema{sampleFields()})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(table.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2 (file's own fieldCount governs)", len(table.Fields))
	}
}

func TestReadBytes_OutOfRangeStringOffsetDecodesEmpty(t *testing.T) {
	fields := []FieldDef{{Name: "Name", Type: FieldString}}
	buf, err := Encode(fields, []Row{{{U32: 0}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Corrupt the single record's cell to an out-of-range offset.
	buf[HeaderSize] = 0xFF
	buf[HeaderSize+1] = 0xFF
	table, err := ReadBytes(buf, staticSchema{fields})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if table.Rows[0][0].Str != "" {
		t.Fatalf("Str = %q, want empty for out-of-range offset", table.Rows[0][0].Str)
	}
}

type staticSchema struct{ fields []FieldDef }

func (s staticSchema) Fields() []FieldDef { return s.fields }
