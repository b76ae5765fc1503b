// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package wdbc

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"strconv"
)

// Schema is the minimal view the codec needs from the schema registry: an
// ordered field list. wdbc/schema.Schema satisfies this directly.
type Schema interface {
	Fields() []FieldDef
}

// Read parses the WDBC file at path using schema to type the leading
// fields. When schema is nil, or when the file's fieldCount exceeds what
// schema covers, the remaining trailing fields are synthesized as
// Field_N : uint32.
func Read(path string, schema Schema) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data, schema)
}

// ReadBytes parses an in-memory WDBC buffer. See Read.
func ReadBytes(data []byte, schema Schema) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncatedFile
	}

	var hdr Header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != Magic {
		return nil, ErrInvalidMagic
	}

	recordsSize := uint64(hdr.RecordCount) * uint64(hdr.RecordSize)
	wantSize := uint64(HeaderSize) + recordsSize + uint64(hdr.StringBlockSize)
	if uint64(len(data)) < wantSize {
		return nil, ErrTruncatedFile
	}

	fields := resolveFields(schema, hdr.FieldCount)

	recordsStart := HeaderSize
	stringBlockStart := recordsStart + int(recordsSize)
	stringBlock := data[stringBlockStart : stringBlockStart+int(hdr.StringBlockSize)]

	rows := make([]Row, 0, hdr.RecordCount)
	for r := uint32(0); r < hdr.RecordCount; r++ {
		rowOff := recordsStart + int(r)*int(hdr.RecordSize)
		row := make(Row, len(fields))
		for i, fd := range fields {
			cellOff := rowOff + i*FieldSize
			if cellOff+FieldSize > len(data) {
				// Schema claims more fields than the record actually has
				// room for; leave the remainder zero-valued rather than
				// erroring, matching the codec's "never throws for bad
				// data" contract.
				break
			}
			raw := binary.LittleEndian.Uint32(data[cellOff:])
			row[i] = decodeCell(fd.Type, raw, stringBlock)
		}
		rows = append(rows, row)
	}

	return &Table{Header: hdr, Fields: fields, Rows: rows}, nil
}

// resolveFields applies schema to the leading fieldCount fields and
// synthesizes Field_N : uint32 descriptors for the rest.
func resolveFields(schema Schema, fieldCount uint32) []FieldDef {
	var known []FieldDef
	if schema != nil {
		known = schema.Fields()
	}

	fields := make([]FieldDef, fieldCount)
	for i := uint32(0); i < fieldCount; i++ {
		if int(i) < len(known) {
			fields[i] = known[i]
			continue
		}
		fields[i] = FieldDef{Name: syntheticFieldName(i), Type: FieldUint32}
	}
	return fields
}

func syntheticFieldName(i uint32) string {
	return "Field_" + strconv.FormatUint(uint64(i), 10)
}

// decodeCell materializes one raw little-endian uint32 cell into a typed
// Value. String cells resolve their stored byte offset against
// stringBlock; an out-of-range offset decodes to the empty string rather
// than erroring.
func decodeCell(t FieldType, raw uint32, stringBlock []byte) Value {
	switch t {
	case FieldInt32:
		return Value{I32: int32(raw)}
	case FieldFloat:
		return Value{F32: math.Float32frombits(raw)}
	case FieldString:
		return Value{Str: stringAtOffset(stringBlock, raw)}
	default: // FieldUint32, FieldFlags
		return Value{U32: raw}
	}
}

// stringAtOffset reads a NUL-terminated string starting at offset within
// block. offset 0, or any offset outside the block, yields "".
func stringAtOffset(block []byte, offset uint32) string {
	if offset == 0 || int(offset) >= len(block) {
		return ""
	}
	end := int(offset)
	for end < len(block) && block[end] != 0 {
		end++
	}
	return string(block[offset:end])
}
