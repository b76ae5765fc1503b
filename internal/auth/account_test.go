// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		email    string
		wantErr  bool
	}{
		{"valid", "Player1", "Passw0rd", "player1@example.com", false},
		{"username too short", "ab", "Passw0rd", "a@b.com", true},
		{"username too long", "abcdefghijklmnopq", "Passw0rd", "a@b.com", true},
		{"username with symbol", "bad-name", "Passw0rd", "a@b.com", true},
		{"password too short", "Player1", "abc", "a@b.com", true},
		{"password too long", "Player1", "abcdefghijklmnopq", "a@b.com", true},
		{"invalid email no at", "Player1", "Passw0rd", "not-an-email", true},
		{"invalid email no domain", "Player1", "Passw0rd", "a@b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.username, tt.password, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
