// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package starterapi implements the Supervisor API: account login and
// signup, and gated process control over the auth/world/armory game
// server binaries, served over chi.
package starterapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/auth"
	"github.com/surrealabs/sdbeditor/internal/supervisor"
)

// Server wires account auth and the process supervisor into one HTTP
// surface.
type Server struct {
	Auth          *auth.Service
	Supervisor    *supervisor.Supervisor
	Log           *applog.Logger
	AdminMinLevel int
}

// Router builds the chi.Router for the Supervisor API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(s.Log.HTTPMiddleware)
	r.Use(s.Log.Recoverer)

	r.Post("/api/starter/login", s.handleLogin)
	r.Post("/api/starter/signup", s.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/api/starter/servers/status", s.handleServersStatus)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/api/starter/servers/start", s.handleServerStart)
			r.Post("/api/starter/servers/stop", s.handleServerStop)
			r.Post("/api/starter/servers/restart", s.handleServerRestart)
		})
	})

	return r
}

type sessionKey struct{}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, apperr.Unauthorized("missing bearer token"))
			return
		}
		session, err := s.Auth.Authorize(token)
		if err != nil {
			writeError(w, err)
			return
		}
		ctx := withSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFrom(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("missing session"))
			return
		}
		if err := auth.RequireGMLevel(session, s.AdminMinLevel); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := apperr.As(err); ok {
		writeJSON(w, appErr.HTTPStatus(), map[string]string{"error": appErr.PublicMessage()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
