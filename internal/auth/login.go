// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/surrealabs/sdbeditor/internal/apperr"
)

// Service composes the account database and the token store into the
// login/signup flow.
type Service struct {
	Accounts *Accounts
	Tokens   *TokenStore
}

// NewService wires an Accounts connection to a fresh TokenStore.
func NewService(accounts *Accounts) (*Service, error) {
	tokens, err := NewTokenStore()
	if err != nil {
		return nil, err
	}
	return &Service{Accounts: accounts, Tokens: tokens}, nil
}

// LoginResult is what a successful login returns to the caller.
type LoginResult struct {
	Token   string `json:"token"`
	GMLevel int    `json:"gmLevel"`
}

// Login verifies (username, password) against the account database
// and, on success, issues a bearer token. An unknown username or a
// verifier mismatch both return Unauthorized; there is no fallback
// that accepts a mismatched verifier.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	creds, err := s.Accounts.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, apperr.Internal("account lookup failed", err)
	}

	if !VerifyCredentials(username, password, creds.Salt, creds.Verifier) {
		return nil, apperr.Unauthorized("invalid username or password")
	}

	gmLevel, err := s.Accounts.GMLevel(ctx, creds.ID)
	if err != nil {
		return nil, apperr.Internal("gm level lookup failed", err)
	}

	token, err := s.Tokens.Issue(creds.ID, gmLevel)
	if err != nil {
		return nil, apperr.Internal("token issue failed", err)
	}
	return &LoginResult{Token: token, GMLevel: gmLevel}, nil
}

// Signup validates and creates a new account.
func (s *Service) Signup(ctx context.Context, username, password, email string) error {
	return s.Accounts.Signup(ctx, username, password, email)
}

// Authorize resolves a bearer token to its session, or Unauthorized
// if the token is missing, expired, or revoked.
func (s *Service) Authorize(token string) (Session, error) {
	session, ok := s.Tokens.Lookup(token)
	if !ok {
		return Session{}, apperr.Unauthorized("missing or expired token")
	}
	return session, nil
}

// RequireGMLevel returns Forbidden if session's GM level is below min.
func RequireGMLevel(session Session, min int) error {
	if session.GMLevel < min {
		return apperr.Forbidden("insufficient privilege level", nil)
	}
	return nil
}
