// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/wdbc"
)

func testFields() []wdbc.FieldDef {
	return []wdbc.FieldDef{
		{Name: "ID", Type: wdbc.FieldUint32},
		{Name: "Name", Type: wdbc.FieldString},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	baseDir := filepath.Join(root, "base-dbc")
	exportDir := filepath.Join(root, "export-dbc")
	backupDir := filepath.Join(root, "backups")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))
	require.NoError(t, os.MkdirAll(exportDir, 0o755))

	data, err := wdbc.Encode(testFields(), []wdbc.Row{{{U32: 1}, {Str: "Frostbolt"}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "SpellIcon.dbc"), data, 0o644))

	return &Server{
		Store: editstore.New(baseDir, exportDir, backupDir),
		Log:   applog.New("dbcapi-test"),
	}
}

func TestHandleList_ReturnsKnownFiles(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/dbc/list", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SpellIcon.dbc")
}

func TestHandleRead_RoundTripsRecords(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/dbc/read/SpellIcon.dbc", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frostbolt")
}

func TestHandleRead_UnknownFileIsNotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/dbc/read/DoesNotExist.dbc", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleTalentRepackGone_Answers410(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/talents/repack", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestHandleUpdateManifest_AcceptsAndReturnsImmediately(t *testing.T) {
	s := newTestServer(t)
	s.IconDir = t.TempDir()
	s.SpellDBC = "SpellIcon.dbc"
	s.SpellIconDBC = "SpellIcon.dbc"
	s.TalentDBC = "SpellIcon.dbc"
	s.TalentTabDBC = "SpellIcon.dbc"
	s.ThumbnailDir = t.TempDir()
	s.SpriteOutDir = t.TempDir()

	req := httptest.NewRequest(http.MethodPost, "/api/update-manifest", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}
