// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/wdbc"
)

func parseSpellID(r *http.Request) (uint32, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validation("id must be a positive integer")
	}
	return uint32(id), nil
}

func (s *Server) handleSpellRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseSpellID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := s.SpellEditor.Read(r.Context(), id, s.indices().Icons)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSpellEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseSpellID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var fields map[string]wdbc.Value
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, apperr.Validation("malformed request body"))
		return
	}
	if err := s.SpellEditor.Patch(r.Context(), id, fields); err != nil {
		writeError(w, err)
		return
	}
	view, err := s.SpellEditor.Read(r.Context(), id, s.indices().Icons)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type createFromTemplateRequest struct {
	TemplateID uint32                `json:"templateId"`
	NewID      *uint32               `json:"newId,omitempty"`
	Patch      map[string]wdbc.Value `json:"patch"`
}

func (s *Server) handleSpellCreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req createFromTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("malformed request body"))
		return
	}

	newID := req.NewID
	if newID == nil {
		suggested, err := s.SpellEditor.SuggestFreeID(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		newID = &suggested
	}

	view, err := s.SpellEditor.CreateFromTemplate(r.Context(), req.TemplateID, *newID, req.Patch, s.indices().Icons)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// spellSearchHit is one /api/spell-search result row.
type spellSearchHit struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	Icon string `json:"iconName"`
}

const defaultSpellSearchLimit = 50

func (s *Server) handleSpellSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := defaultSpellSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	names := s.indices().SpellNames.Names
	hits := make([]spellSearchHit, 0, limit)
	ids := make([]uint32, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if len(hits) >= limit {
			break
		}
		entry := names[id]
		if !matchesSpellQuery(id, entry.Name, query) {
			continue
		}
		hits = append(hits, spellSearchHit{ID: id, Name: entry.Name, Icon: entry.IconName})
	}
	writeJSON(w, http.StatusOK, hits)
}

func matchesSpellQuery(id uint32, name, query string) bool {
	if query == "" {
		return true
	}
	if strings.HasPrefix(strconv.FormatUint(uint64(id), 10), query) {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
