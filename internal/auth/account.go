// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"

	"github.com/surrealabs/sdbeditor/internal/apperr"
)

// Accounts wraps the realm's account database: `account` (credentials)
// and `account_access` (GM level grants per account, per realm).
type Accounts struct {
	db *sql.DB
}

// OpenAccounts connects to the account database given a
// go-sql-driver/mysql DSN. The game server and this tool often start
// at the same time, so the initial ping retries with backoff instead
// of failing on the first refused connection.
func OpenAccounts(dsn string) (*Accounts, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("auth: open account db: %w", err)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	if err := backoff.Retry(db.Ping, policy); err != nil {
		db.Close()
		return nil, fmt.Errorf("auth: ping account db: %w", err)
	}

	return &Accounts{db: db}, nil
}

// Close releases the underlying connection pool.
func (a *Accounts) Close() error { return a.db.Close() }

// Credentials is one account's SRP-6 login material.
type Credentials struct {
	ID       uint32
	Salt     []byte
	Verifier []byte
}

// Lookup loads {id, salt, verifier} for username, or sql.ErrNoRows if
// no such account exists.
func (a *Accounts) Lookup(ctx context.Context, username string) (*Credentials, error) {
	var c Credentials
	err := a.db.QueryRowContext(ctx,
		`SELECT id, salt, verifier FROM account WHERE username = ?`, username,
	).Scan(&c.ID, &c.Salt, &c.Verifier)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GMLevel returns the maximum gmlevel across every account_access row
// for accountID.
func (a *Accounts) GMLevel(ctx context.Context, accountID uint32) (int, error) {
	var level sql.NullInt64
	err := a.db.QueryRowContext(ctx,
		`SELECT MAX(gmlevel) FROM account_access WHERE id = ?`, accountID,
	).Scan(&level)
	if err != nil {
		return 0, err
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]{3,16}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateSignup checks username (3-16 alphanumeric), password (4-16
// chars), and email against the account system's signup rules.
func ValidateSignup(username, password, email string) error {
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("username must be 3-16 alphanumeric characters")
	}
	if len(password) < 4 || len(password) > 16 {
		return apperr.Validation("password must be 4-16 characters")
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("invalid email address")
	}
	return nil
}

// Signup creates a new account. Database errors — including duplicate
// username/email — always surface as a generic Forbidden: the caller
// never sees the underlying SQL error or schema detail.
func (a *Accounts) Signup(ctx context.Context, username, password, email string) error {
	if err := ValidateSignup(username, password, email); err != nil {
		return err
	}

	var count int
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM account WHERE username = ? OR email = ?`, username, email,
	).Scan(&count)
	if err != nil {
		return apperr.Forbidden("unable to create account", err)
	}
	if count > 0 {
		return apperr.Forbidden("unable to create account", errDuplicateAccount)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return apperr.Forbidden("unable to create account", err)
	}
	_, verifier := ComputeVerifier(username, password, salt)

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO account (username, salt, verifier, email, joindate, expansion) VALUES (?, ?, ?, ?, ?, 2)`,
		username, salt, verifier, email, time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return apperr.Forbidden("unable to create account", err)
	}
	return nil
}

var errDuplicateAccount = errors.New("auth: username or email already registered")
