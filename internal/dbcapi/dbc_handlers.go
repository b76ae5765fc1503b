// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dbcapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/editstore"
	"github.com/surrealabs/sdbeditor/wdbc"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.Store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) sourceParam(r *http.Request) editstore.Source {
	switch r.URL.Query().Get("source") {
	case "base":
		return editstore.SourceBase
	case "export":
		return editstore.SourceExport
	default:
		return editstore.SourceAuto
	}
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	res, err := s.Store.Read(filename, s.sourceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type saveRequest struct {
	FieldDefs []wdbc.FieldDef `json:"fieldDefs"`
	Records   []wdbc.Row      `json:"records"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, apperr.Validation("malformed request body"))
		return
	}
	res, err := s.Store.Save(r.Context(), filename, req.FieldDefs, req.Records)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	diff, err := s.Store.Diff(filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+".csv\"")
	if err := s.Store.ExportCSV(filename, w); err != nil {
		writeError(w, err)
		return
	}
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	res, err := s.Store.ImportCSV(r.Context(), filename, r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
