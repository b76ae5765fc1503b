// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package spelleditor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/surrealabs/sdbeditor/wdbc"
)

// columnAlias maps an editable-field name to the SQL mirror's column
// name where they differ (SpellName->SpellName0, MaximumLevel->MaxLevel).
var columnAlias = map[string]string{
	"SpellName":        "SpellName0",
	"MaximumLevel":     "MaxLevel",
	"SpellNameSubtext": "Rank0",
}

func columnName(field string) string {
	if col, ok := columnAlias[field]; ok {
		return col
	}
	return field
}

// fieldName is the inverse of columnName.
func fieldName(col string) string {
	for field, alias := range columnAlias {
		if alias == col {
			return field
		}
	}
	return col
}

// Mirror is the `spell` side-table in an auxiliary MySQL database
//: the source of truth for any field a patch has
// touched, overriding the DBC on read so a running game server picks
// up changes without restart.
type Mirror struct {
	db *sql.DB
}

// OpenMirror connects to the mirror database. dsn is a standard
// go-sql-driver/mysql DSN (user:pass@tcp(host:port)/dbname).
func OpenMirror(dsn string) (*Mirror, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("spelleditor: open mirror: %w", err)
	}
	return &Mirror{db: db}, nil
}

// Close releases the underlying connection pool.
func (m *Mirror) Close() error { return m.db.Close() }

// Overrides returns the touched-column overrides for spellID and
// whether a mirror row exists at all (customSpell).
func (m *Mirror) Overrides(ctx context.Context, spellID uint32) (map[string]wdbc.Value, bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT * FROM spell WHERE ID = ?`, spellID)
	if err != nil {
		return nil, false, wrapMirrorErr("query overrides", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, false, wrapMirrorErr("read columns", err)
	}
	if !rows.Next() {
		return map[string]wdbc.Value{}, false, nil
	}

	scanDest := make([]interface{}, len(cols))
	rawVals := make([]sql.RawBytes, len(cols))
	for i := range rawVals {
		scanDest[i] = &rawVals[i]
	}
	if err := rows.Scan(scanDest...); err != nil {
		return nil, false, wrapMirrorErr("scan row", err)
	}

	out := map[string]wdbc.Value{}
	for i, col := range cols {
		if col == "ID" || rawVals[i] == nil {
			continue
		}
		out[fieldName(col)] = parseMirrorValue(string(rawVals[i]))
	}
	return out, true, nil
}

// parseMirrorValue guesses a Value shape from a TEXT-stored mirror
// column: integer-looking strings decode as U32, everything else as Str.
func parseMirrorValue(raw string) wdbc.Value {
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return wdbc.Value{U32: uint32(n)}
	}
	return wdbc.Value{Str: raw}
}

// Patch applies touched fields to spellID: UPDATE if a row exists,
// INSERT otherwise. Unknown field names are silently
// skipped.
func (m *Mirror) Patch(ctx context.Context, spellID uint32, fields map[string]wdbc.Value) error {
	known := knownMirrorColumns()
	cols := make([]string, 0, len(fields))
	vals := make([]interface{}, 0, len(fields))
	for name, v := range fields {
		col := columnName(name)
		if !known[col] {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, mirrorScalar(v))
	}
	if len(cols) == 0 {
		return nil
	}

	exists, err := m.rowExists(ctx, spellID)
	if err != nil {
		return err
	}

	if exists {
		set := make([]string, len(cols))
		for i, c := range cols {
			set[i] = c + " = ?"
		}
		query := fmt.Sprintf("UPDATE spell SET %s WHERE ID = ?", strings.Join(set, ", "))
		_, err := m.db.ExecContext(ctx, query, append(vals, spellID)...)
		return wrapMirrorErr("update spell", err)
	}

	placeholders := make([]string, len(cols)+1)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	columns := append([]string{"ID"}, cols...)
	query := fmt.Sprintf("INSERT INTO spell (%s) VALUES (%s)", strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	_, err = m.db.ExecContext(ctx, query, append([]interface{}{spellID}, vals...)...)
	return wrapMirrorErr("insert spell", err)
}

// MaxID returns the highest ID currently stored in the mirror, or 0 if
// the table is empty.
func (m *Mirror) MaxID(ctx context.Context) (uint32, error) {
	var maxID sql.NullInt64
	err := m.db.QueryRowContext(ctx, `SELECT MAX(ID) FROM spell`).Scan(&maxID)
	if err != nil {
		return 0, wrapMirrorErr("max id", err)
	}
	if !maxID.Valid {
		return 0, nil
	}
	return uint32(maxID.Int64), nil
}

func (m *Mirror) rowExists(ctx context.Context, spellID uint32) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spell WHERE ID = ?`, spellID).Scan(&count)
	if err != nil {
		return false, wrapMirrorErr("check existing row", err)
	}
	return count > 0, nil
}

func mirrorScalar(v wdbc.Value) interface{} {
	switch {
	case v.Str != "":
		return v.Str
	case v.I32 != 0:
		return v.I32
	case v.F32 != 0:
		return v.F32
	default:
		return v.U32
	}
}

func knownMirrorColumns() map[string]bool {
	out := map[string]bool{}
	for _, section := range Sections() {
		for _, f := range editableFields[section] {
			out[columnName(f)] = true
		}
	}
	return out
}

var errNotFound = errors.New("spelleditor: not found")

func wrapMirrorErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, errNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
