// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package wdbc implements a reader/writer for Blizzard's WDBC client
// database format: a fixed 20-byte header, a row-oriented record block
// of uniform 4-byte fields, and a trailing interned string block
// addressed by byte offset.
package wdbc

import "errors"

// Magic is the 4-byte signature every WDBC file starts with: ASCII "WDBC".
var Magic = [4]byte{'W', 'D', 'B', 'C'}

// HeaderSize is the fixed size, in bytes, of the WDBC header region.
const HeaderSize = 20

// FieldSize is the width, in bytes, of every field in scope for this codec.
// All tables handled here have recordSize == fieldCount*FieldSize.
const FieldSize = 4

// Errors returned by Read/Write/Diff. These are sentinel values so callers
// can match with errors.Is; none of them carry file contents.
var (
	// ErrInvalidMagic is returned when the first four bytes of a file are
	// not the WDBC signature.
	ErrInvalidMagic = errors.New("wdbc: invalid magic")

	// ErrTruncatedFile is returned when a file is shorter than its own
	// header declares (header + records + string block).
	ErrTruncatedFile = errors.New("wdbc: truncated file")

	// ErrOutsideBoundary is returned by the low-level readers when an
	// offset/length pair would read past the end of the buffer.
	ErrOutsideBoundary = errors.New("wdbc: read outside file boundary")

	// ErrMissingPayload is returned by Write when neither fields nor
	// records are supplied.
	ErrMissingPayload = errors.New("wdbc: missing payload")
)

// FieldType is the type tag of a single WDBC field.
type FieldType int

const (
	// FieldUint32 is an unsigned 32-bit integer field.
	FieldUint32 FieldType = iota
	// FieldInt32 is a signed, two's-complement 32-bit integer field.
	FieldInt32
	// FieldFloat is an IEEE-754 single-precision float field.
	FieldFloat
	// FieldString is a byte-offset-into-the-string-block field.
	FieldString
	// FieldFlags is a bitfield, stored identically to FieldUint32 but
	// tagged separately so schema consumers can render it differently.
	FieldFlags
)

// FieldDef describes one column of a table.
type FieldDef struct {
	Name   string
	Type   FieldType
	Ref    string // optional foreign-key hint: name of the referenced table
	Hidden bool   // true for locale-duplicate slots a UI should not surface
	Locale string // optional locale tag (enUS, koKR, ...)
}

// Header is the raw 20-byte WDBC header.
type Header struct {
	Magic            [4]byte
	RecordCount      uint32
	FieldCount       uint32
	RecordSize       uint32
	StringBlockSize  uint32
}

// Value is a single decoded cell. Exactly one of the typed accessors is
// meaningful, according to the FieldDef.Type it was decoded under.
type Value struct {
	U32 uint32
	I32 int32
	F32 float32
	Str string
}

// Row is one decoded record: one Value per field, in schema order.
type Row []Value

// Table is the fully decoded, in-memory form of a WDBC file.
type Table struct {
	Header Header
	Fields []FieldDef
	Rows   []Row
}

// RecordSize returns fieldCount*FieldSize, the declared per-row byte width.
func (t *Table) RecordSize() uint32 {
	return uint32(len(t.Fields)) * FieldSize
}
