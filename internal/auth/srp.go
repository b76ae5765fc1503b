// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package auth implements SRP-6 credential verification, signup
// validation, and an in-memory bearer-token store for the game
// server's account database.
package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"math/big"
	"strings"
)

// srpN is Blizzard's 32-byte SRP-6 safety prime, big-endian.
var srpN = bigFromHex("894B645E89E1535BBDAD5B8B290650530801B18EBFBF5E8FAB3C82872A3E9BB7")

// srpG is the generator Blizzard's account system uses.
const srpG = 7

func bigFromHex(hex string) *big.Int {
	n := new(big.Int)
	n.SetString(hex, 16)
	return n
}

// ComputeVerifier returns (x, v) for the WoW account SRP-6 scheme:
//
//	x = SHA1(salt || SHA1("USERNAME:PASSWORD"))
//	v = g^x mod N
//
// salt must be 32 bytes. Username/password are case-normalized to
// uppercase, matching the WoW account system's own convention.
func ComputeVerifier(username, password string, salt []byte) (x *big.Int, v []byte) {
	credHash := sha1.Sum([]byte(strings.ToUpper(username) + ":" + strings.ToUpper(password)))

	h := sha1.New()
	h.Write(salt)
	h.Write(credHash[:])
	xBytes := h.Sum(nil)

	x = new(big.Int).SetBytes(xBytes)
	vInt := new(big.Int).Exp(big.NewInt(srpG), x, srpN)

	// The wire/DB format is little-endian; vInt.Bytes() is big-endian,
	// so the result must be reversed.
	vBig := vInt.Bytes()
	v = make([]byte, 32)
	copy(v[32-len(vBig):], vBig)
	reverse(v)
	return x, v
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// GenerateSalt returns a cryptographically random 32-byte salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// VerifyCredentials recomputes the verifier from (username, password,
// salt) and compares it to storedVerifier in constant time. Both
// salt and storedVerifier are little-endian, 32 bytes, as stored in
// the account database.
func VerifyCredentials(username, password string, salt, storedVerifier []byte) bool {
	if len(storedVerifier) != 32 {
		return false
	}
	_, computed := ComputeVerifier(username, password, salt)
	return subtle.ConstantTimeCompare(computed, storedVerifier) == 1
}
