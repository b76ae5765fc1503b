// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package wdbc

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
)

// Write serializes fields/rows into the WDBC binary format and writes it
// to path, creating parent directories as needed. See Encode for the
// interning algorithm.
func Write(path string, fields []FieldDef, rows []Row) error {
	buf, err := Encode(fields, rows)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Encode serializes fields/rows into a WDBC byte buffer without touching
// the filesystem.
//
// Algorithm:
//  1. walk all string cells, interning each distinct value in first-seen
//     order after a leading NUL; the empty string is always offset 0.
//  2. compute the string block size as the sum of interned string
//     lengths+1, plus 1 for the leading NUL.
//  3. allocate one buffer sized header + records + string block.
//  4. emit header, then records (string cells carry their interned
//     offset), then the string block.
func Encode(fields []FieldDef, rows []Row) ([]byte, error) {
	if len(fields) == 0 && len(rows) == 0 {
		return nil, ErrMissingPayload
	}

	offsets, stringBlock := internStrings(fields, rows)

	recordSize := uint32(len(fields)) * FieldSize
	recordsSize := uint64(len(rows)) * uint64(recordSize)
	total := uint64(HeaderSize) + recordsSize + uint64(len(stringBlock))

	buf := make([]byte, total)

	hdr := Header{
		Magic:           Magic,
		RecordCount:     uint32(len(rows)),
		FieldCount:      uint32(len(fields)),
		RecordSize:      recordSize,
		StringBlockSize: uint32(len(stringBlock)),
	}
	hw := bytes.NewBuffer(buf[:0])
	if err := binary.Write(hw, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	recordsStart := HeaderSize
	for r, row := range rows {
		rowOff := recordsStart + r*int(recordSize)
		for i, fd := range fields {
			cellOff := rowOff + i*FieldSize
			var raw uint32
			if i < len(row) {
				raw = encodeCell(fd.Type, row[i], offsets)
			}
			binary.LittleEndian.PutUint32(buf[cellOff:], raw)
		}
	}

	copy(buf[recordsStart+int(recordsSize):], stringBlock)
	return buf, nil
}

// internStrings builds the value->offset map for every string-typed cell
// across all rows, and emits the serialized string block (leading NUL
// plus one NUL-terminated copy of each distinct non-empty string, in
// first-seen order).
func internStrings(fields []FieldDef, rows []Row) (map[string]uint32, []byte) {
	offsets := map[string]uint32{"": 0}
	block := []byte{0}

	for _, row := range rows {
		for i, fd := range fields {
			if fd.Type != FieldString || i >= len(row) {
				continue
			}
			s := row[i].Str
			if _, ok := offsets[s]; ok {
				continue
			}
			offsets[s] = uint32(len(block))
			block = append(block, []byte(s)...)
			block = append(block, 0)
		}
	}
	return offsets, block
}

func encodeCell(t FieldType, v Value, offsets map[string]uint32) uint32 {
	switch t {
	case FieldInt32:
		return uint32(v.I32)
	case FieldFloat:
		return math.Float32bits(v.F32)
	case FieldString:
		return offsets[v.Str]
	default: // FieldUint32, FieldFlags
		return v.U32
	}
}
