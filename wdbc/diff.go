// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package wdbc

import "fmt"

// RowDiff describes one row-level change keyed on the first field
// (conventionally ID).
type RowDiff struct {
	Key string
	Old Row
	New Row
}

// Diff is the result of comparing two tables keyed on their first field.
type Diff struct {
	Modified []RowDiff
	Added    []Row
	Removed  []Row
}

// CompareFiles loads the two named WDBC files under schema and diffs them.
// It fails if either file is missing; schema is used for both sides (the
// left-hand schema governs field-by-field comparison).
func CompareFiles(leftPath, rightPath string, schema Schema) (*Diff, error) {
	left, err := Read(leftPath, schema)
	if err != nil {
		return nil, fmt.Errorf("wdbc: diff: read %s: %w", leftPath, err)
	}
	right, err := Read(rightPath, schema)
	if err != nil {
		return nil, fmt.Errorf("wdbc: diff: read %s: %w", rightPath, err)
	}
	return CompareTables(left, right), nil
}

// CompareTables diffs two already-decoded tables keyed on their first
// field. Row comparison is field-by-field using left's field list; if the
// two rows have different lengths, fields beyond the shorter one compare
// as "undefined" and always count as a difference.
func CompareTables(left, right *Table) *Diff {
	leftByKey := indexByFirstField(left.Rows)
	rightByKey := indexByFirstField(right.Rows)

	d := &Diff{}
	for key, lrow := range leftByKey {
		rrow, ok := rightByKey[key]
		if !ok {
			d.Removed = append(d.Removed, lrow)
			continue
		}
		if !rowsEqual(lrow, rrow) {
			d.Modified = append(d.Modified, RowDiff{Key: key, Old: lrow, New: rrow})
		}
	}
	for key, rrow := range rightByKey {
		if _, ok := leftByKey[key]; !ok {
			d.Added = append(d.Added, rrow)
		}
	}
	return d
}

func indexByFirstField(rows []Row) map[string]Row {
	out := make(map[string]Row, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out[cellKey(row[0])] = row
	}
	return out
}

func cellKey(v Value) string {
	if v.Str != "" {
		return v.Str
	}
	return fmt.Sprintf("%d", v.U32)
}

func rowsEqual(a, b Row) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) {
			return false // one side is "undefined" here: always a diff
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
