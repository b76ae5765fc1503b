// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package auth

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenTTL is how long a bearer token remains valid after issue.
const TokenTTL = 30 * time.Minute

// Session is what a bearer token resolves to.
type Session struct {
	UserID    uint32
	GMLevel   int
	ExpiresAt time.Time
}

type claims struct {
	UserID  uint32 `json:"uid"`
	GMLevel int    `json:"gml"`
	jwt.RegisteredClaims
}

// TokenStore issues and validates bearer tokens. Each token is a
// signed JWT carrying its own expiry and claims, keyed to this
// process's signing key so a token never outlives the process that
// issued it; a small revocation set lets Revoke invalidate a token
// before its natural expiry.
type TokenStore struct {
	mu         sync.Mutex
	revoked    map[string]time.Time
	signingKey []byte
}

// NewTokenStore returns an empty store with a freshly generated
// signing key.
func NewTokenStore() (*TokenStore, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("auth: generate signing key: %w", err)
	}
	return &TokenStore{revoked: map[string]time.Time{}, signingKey: key}, nil
}

// Issue signs and returns a bearer token for userID at gmLevel.
func (s *TokenStore) Issue(userID uint32, gmLevel int) (string, error) {
	now := time.Now()
	c := claims{
		UserID:  userID,
		GMLevel: gmLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Lookup validates token's signature and expiry and returns the
// session it encodes. A token is valid iff its signature checks out,
// it is unexpired, and it has not been Revoked.
func (s *TokenStore) Lookup(token string) (Session, bool) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, false
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return Session{}, false
	}

	s.mu.Lock()
	s.purgeExpiredRevocations()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return Session{}, false
	}

	return Session{UserID: c.UserID, GMLevel: c.GMLevel, ExpiresAt: c.ExpiresAt.Time}, true
}

// Revoke invalidates token before its natural expiry, if it is
// otherwise well-formed.
func (s *TokenStore) Revoke(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &claims{})
	if err != nil {
		return
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[c.ID] = c.ExpiresAt.Time
}

// purgeExpiredRevocations drops revocation entries for tokens that
// would now fail on expiry alone, keeping the set from growing
// without bound. Caller must hold s.mu.
func (s *TokenStore) purgeExpiredRevocations() {
	now := time.Now()
	for jti, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, jti)
		}
	}
}
