// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package dbcapi implements the Data API: DBC listing/read/write/diff/
// CSV, the Spell Editor surface, the talent-tree surface, and a
// manifest-rebuild trigger, all served over chi.
package dbcapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/internal/index"
	"github.com/surrealabs/sdbeditor/internal/spelleditor"
	"github.com/surrealabs/sdbeditor/internal/talent"
	"github.com/surrealabs/sdbeditor/internal/thumbnail"
)

// Indices is the set of derived indices a running server keeps warm in
// memory and rebuilds via Server.RebuildIndices.
type Indices struct {
	Icons      index.SpellIconIndex
	SpellNames index.SpellNameIndex
	IconList   index.IconList
	IconMeta   index.IconManifest
	Sprites    index.SpriteMap
}

// Server wires the Edit Store, Spell Editor, Talent pipeline, and
// Thumbnail Engine into one HTTP surface.
type Server struct {
	Store       *editstore.Store
	SpellEditor *spelleditor.Editor
	Thumbnails  *thumbnail.Engine
	Log         *applog.Logger

	// IconDecoder feeds RebuildIndices' sprite atlases; TalentSourceDir
	// and TalentRuntimeDir are where talent deploys write the Lua
	// global. TalentConfigPath is not read by Server.
	IconDecoder      index.IconDecoder
	IconDir          string
	ThumbnailDir     string
	SpellDBC         string
	SpellIconDBC     string
	TalentDBC        string
	TalentTabDBC     string
	SpriteOutDir     string
	TalentConfigPath string
	TalentSourceDir  string
	TalentRuntimeDir string

	mu  sync.RWMutex
	idx Indices
}

// SetIndices installs the currently active derived indices, replacing
// whatever Router handlers were reading before.
func (s *Server) SetIndices(idx Indices) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
}

func (s *Server) indices() Indices {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Router builds the chi.Router for the Data API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(s.Log.HTTPMiddleware)
	r.Use(s.Log.Recoverer)

	r.Get("/api/dbc/list", s.handleList)
	r.Get("/api/dbc/read/{filename}", s.handleRead)
	r.Post("/api/dbc/save/{filename}", s.handleSave)
	r.Get("/api/dbc/diff/{filename}", s.handleDiff)
	r.Get("/api/dbc/export-csv/{filename}", s.handleExportCSV)
	r.Post("/api/dbc/import-csv/{filename}", s.handleImportCSV)

	r.Get("/api/spells/{id}", s.handleSpellRead)
	r.Put("/api/spells/{id}/edit", s.handleSpellEdit)
	r.Post("/api/spells/create-from-template", s.handleSpellCreateFromTemplate)
	r.Get("/api/spell-search", s.handleSpellSearch)

	r.Get("/api/talents/{class}", s.handleTalentsForClass)
	r.Post("/api/talent-config/deploy", s.handleTalentDeploy)
	r.Post("/api/talents/repack", s.handleTalentRepackGone)

	r.Post("/api/update-manifest", s.handleUpdateManifest)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := appErrOf(err); ok {
		writeJSON(w, appErr.HTTPStatus(), map[string]string{"error": appErr.PublicMessage()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// normalizeAndDeploy normalizes cfg and writes the Lua global to
// TalentSourceDir and TalentRuntimeDir, split out to keep
// handleTalentDeploy short.
func (s *Server) normalizeAndDeploy(cfg talent.Config) (map[int]talent.Tree, error) {
	trees, err := talent.Normalize(cfg)
	if err != nil {
		return nil, err
	}
	if err := talent.Deploy(trees, s.TalentSourceDir, s.TalentRuntimeDir); err != nil {
		return nil, err
	}
	return trees, nil
}
