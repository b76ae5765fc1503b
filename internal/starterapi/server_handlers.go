// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package starterapi

import (
	"net/http"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/supervisor"
)

func (s *Server) handleServersStatus(w http.ResponseWriter, r *http.Request) {
	out := make(map[supervisor.Service]*supervisor.StatusResult, len(supervisor.Services()))
	for _, svc := range supervisor.Services() {
		status, err := s.Supervisor.Status(svc)
		if err != nil {
			writeError(w, err)
			return
		}
		out[svc] = status
	}
	writeJSON(w, http.StatusOK, out)
}

type serviceRequest struct {
	Service supervisor.Service `json:"service"`
}

func decodeServiceRequest(r *http.Request) (supervisor.Service, error) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", apperr.Validation("malformed request body")
	}
	for _, svc := range supervisor.Services() {
		if svc == req.Service {
			return req.Service, nil
		}
	}
	return "", apperr.Validation("service must be one of auth, world, armory")
}

func (s *Server) handleServerStart(w http.ResponseWriter, r *http.Request) {
	svc, err := decodeServiceRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pid, err := s.Supervisor.Start(svc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pid": pid})
}

func (s *Server) handleServerStop(w http.ResponseWriter, r *http.Request) {
	svc, err := decodeServiceRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Supervisor.Stop(svc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (s *Server) handleServerRestart(w http.ResponseWriter, r *http.Request) {
	svc, err := decodeServiceRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pid, err := s.Supervisor.Restart(svc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pid": pid})
}
