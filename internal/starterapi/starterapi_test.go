// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package starterapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealabs/sdbeditor/internal/applog"
	"github.com/surrealabs/sdbeditor/internal/auth"
	"github.com/surrealabs/sdbeditor/internal/config"
	"github.com/surrealabs/sdbeditor/internal/supervisor"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tokens, err := auth.NewTokenStore()
	require.NoError(t, err)

	sv := supervisor.New(config.SupervisorPaths{})

	return &Server{
		Auth:          &auth.Service{Tokens: tokens},
		Supervisor:    sv,
		Log:           applog.New("starterapi-test"),
		AdminMinLevel: 3,
	}
}

func bearerRequest(method, target string, body interface{}, token string) *http.Request {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestServersStatus_RequiresBearerToken(t *testing.T) {
	s := newTestServer(t)
	req := bearerRequest(http.MethodGet, "/api/starter/servers/status", nil, "")
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServersStatus_AcceptsValidToken(t *testing.T) {
	s := newTestServer(t)
	token, err := s.Auth.Tokens.Issue(1, 0)
	require.NoError(t, err)

	req := bearerRequest(http.MethodGet, "/api/starter/servers/status", nil, token)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerStart_RejectsBelowAdminLevel(t *testing.T) {
	s := newTestServer(t)
	token, err := s.Auth.Tokens.Issue(1, 1)
	require.NoError(t, err)

	req := bearerRequest(http.MethodPost, "/api/starter/servers/start", map[string]string{"service": "auth"}, token)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServerStart_RejectsUnknownService(t *testing.T) {
	s := newTestServer(t)
	token, err := s.Auth.Tokens.Issue(1, 5)
	require.NoError(t, err)

	req := bearerRequest(http.MethodPost, "/api/starter/servers/start", map[string]string{"service": "bogus"}, token)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServerStop_AllowsAdminLevel(t *testing.T) {
	s := newTestServer(t)
	token, err := s.Auth.Tokens.Issue(1, 5)
	require.NoError(t, err)

	req := bearerRequest(http.MethodPost, "/api/starter/servers/stop", map[string]string{"service": "world"}, token)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
