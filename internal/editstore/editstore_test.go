// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package editstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealabs/sdbeditor/wdbc"
)

func testFields() []wdbc.FieldDef {
	return []wdbc.FieldDef{
		{Name: "ID", Type: wdbc.FieldUint32},
		{Name: "Name", Type: wdbc.FieldString},
	}
}

func writeTestDBC(t *testing.T, dir, name string, rows []wdbc.Row) {
	t.Helper()
	data, err := wdbc.Encode(testFields(), rows)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func newTestStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	root := t.TempDir()
	baseDir := filepath.Join(root, "base-dbc")
	exportDir := filepath.Join(root, "export-dbc")
	backupDir := filepath.Join(root, "backups")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))
	require.NoError(t, os.MkdirAll(exportDir, 0o755))
	return New(baseDir, exportDir, backupDir), baseDir, exportDir
}

func TestRead_PrefersExportOverBase(t *testing.T) {
	store, baseDir, exportDir := newTestStore(t)
	writeTestDBC(t, baseDir, "SpellIcon.dbc", []wdbc.Row{{{U32: 1}, {Str: "FromBase"}}})
	writeTestDBC(t, exportDir, "SpellIcon.dbc", []wdbc.Row{{{U32: 1}, {Str: "FromExport"}}})

	res, err := store.Read("SpellIcon.dbc", SourceAuto)
	require.NoError(t, err)
	assert.Equal(t, "FromExport", res.Records[0][1].Str)
}

func TestRead_FallsBackToBaseWhenNoExport(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "FromBase"}}})

	res, err := store.Read("Test.dbc", SourceAuto)
	require.NoError(t, err)
	assert.Equal(t, "FromBase", res.Records[0][1].Str)
}

func TestRead_FileNotFound(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Read("Missing.dbc", SourceAuto)
	assert.Error(t, err)
}

func TestCopyToCustom_CopiesBaseIntoExport(t *testing.T) {
	store, baseDir, exportDir := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "Base"}}})

	require.NoError(t, store.CopyToCustom("Test.dbc"))
	assert.FileExists(t, filepath.Join(exportDir, "Test.dbc"))
}

func TestCopyToCustom_BaseMissing(t *testing.T) {
	store, _, _ := newTestStore(t)
	err := store.CopyToCustom("Nope.dbc")
	assert.Error(t, err)
}

func TestSave_RejectsNonDBCExtension(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Save(context.Background(), "Test.txt", testFields(), []wdbc.Row{{{U32: 1}, {Str: "x"}}})
	assert.Error(t, err)
}

func TestSave_RejectsMissingPayload(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.Save(context.Background(), "Test.dbc", nil, nil)
	assert.Error(t, err)
}

func TestSave_CreatesBakSiblingOnFirstEdit(t *testing.T) {
	store, baseDir, exportDir := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "Base"}}})

	_, err := store.Save(context.Background(), "Test.dbc", testFields(), []wdbc.Row{{{U32: 1}, {Str: "Edited"}}})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(exportDir, "Test.dbc.bak"))
}

func TestSave_WritesDailyBackupSnapshot(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "Base"}}})

	_, err := store.Save(context.Background(), "Test.dbc", testFields(), []wdbc.Row{{{U32: 1}, {Str: "Edited"}}})
	require.NoError(t, err)

	entries, err := os.ReadDir(store.BackupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddRecord_AssignsMaxPlusOne(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{
		{{U32: 5}, {Str: "Five"}},
		{{U32: 12}, {Str: "Twelve"}},
	})

	res, err := store.AddRecord(context.Background(), "Test.dbc", wdbc.Row{{}, {Str: "New"}})
	require.NoError(t, err)
	assert.Equal(t, uint32(13), res.ID)
	assert.Equal(t, 2, res.Position)
}

func TestDeleteRecord_CompactsAndReportsRemaining(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{
		{{U32: 1}, {Str: "One"}},
		{{U32: 2}, {Str: "Two"}},
		{{U32: 3}, {Str: "Three"}},
	})

	res, err := store.DeleteRecord(context.Background(), "Test.dbc", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	after, err := store.Read("Test.dbc", SourceAuto)
	require.NoError(t, err)
	assert.Len(t, after.Records, 2)
	for _, row := range after.Records {
		assert.NotEqual(t, uint32(2), row[0].U32)
	}
}

func TestDeleteRecord_IdNotFound(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "One"}}})

	_, err := store.DeleteRecord(context.Background(), "Test.dbc", 999)
	assert.Error(t, err)
}

func TestList_ReportsHasBaseAndHasExport(t *testing.T) {
	store, baseDir, exportDir := newTestStore(t)
	writeTestDBC(t, baseDir, "OnlyBase.dbc", []wdbc.Row{{{U32: 1}, {Str: "x"}}})
	writeTestDBC(t, exportDir, "OnlyExport.dbc", []wdbc.Row{{{U32: 1}, {Str: "y"}}})

	statuses, err := store.List()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byName := map[string]FileStatus{}
	for _, s := range statuses {
		byName[s.Name] = s
	}
	assert.True(t, byName["OnlyBase.dbc"].HasBase)
	assert.False(t, byName["OnlyBase.dbc"].HasExport)
	assert.True(t, byName["OnlyExport.dbc"].HasExport)
	assert.False(t, byName["OnlyExport.dbc"].HasBase)
}

func TestDiff_ReportsModifiedRows(t *testing.T) {
	store, baseDir, exportDir := newTestStore(t)
	writeTestDBC(t, baseDir, "SpellIcon.dbc", []wdbc.Row{{{U32: 1}, {Str: "Old"}}})
	writeTestDBC(t, exportDir, "SpellIcon.dbc", []wdbc.Row{{{U32: 1}, {Str: "New"}}})

	d, err := store.Diff("SpellIcon.dbc")
	require.NoError(t, err)
	assert.Len(t, d.Modified, 1)
}

func TestDiff_FileMissingOnOneSide(t *testing.T) {
	store, baseDir, _ := newTestStore(t)
	writeTestDBC(t, baseDir, "Test.dbc", []wdbc.Row{{{U32: 1}, {Str: "Old"}}})

	_, err := store.Diff("Test.dbc")
	assert.Error(t, err)
}
