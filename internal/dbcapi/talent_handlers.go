// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/talent"
)

func (s *Server) handleTalentsForClass(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "class")
	classID, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, apperr.Validation("class must be a ChrClasses.dbc id"))
		return
	}

	idx := s.indices()
	flat, err := talent.FlattenForClass(s.Store, classID, idx.Icons, idx.Sprites)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flat)
}

func (s *Server) handleTalentDeploy(w http.ResponseWriter, r *http.Request) {
	var cfg talent.Config
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, apperr.Validation("malformed talent-config.json body"))
		return
	}

	trees, err := s.normalizeAndDeploy(cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"classesDeployed": len(trees)})
}

// handleTalentRepackGone answers the legacy DBC-repack route: the
// algorithm survives in internal/talent/repack.go but is never invoked
// from a live request.
func (s *Server) handleTalentRepackGone(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusGone, map[string]string{"error": "legacy talent repack is retired; use /api/talent-config/deploy"})
}
