// Package session implements the client's persistent session cache: the
// access token and the cached user identity, stored as two key-value rows
// in a local sqlite database and mirrored in memory.
//
// The store performs no validation of the token — an expired credential is
// only discovered when the API answers 401.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pressly/goose/v3"

	"github.com/mkalinina/salonbook/internal/client/models"
	"github.com/mkalinina/salonbook/internal/client/session/migrations"
	"github.com/mkalinina/salonbook/internal/dbx"

	_ "modernc.org/sqlite"
)

const (
	keyAccessToken = "access_token"
	keyUser        = "user"
)

// Store is the session cache. All methods are synchronous; the value of a
// getter reflects the last successful setter in this process plus whatever
// the database held at Open time.
type Store struct {
	db       *sql.DB
	token    string
	identity *models.UserIdentity
}

// Open opens (creating if needed) the session database at dsn, applies the
// schema migration, and loads the cached entries into memory.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Credential returns the cached access token, or "" when logged out.
func (s *Store) Credential() string {
	return s.token
}

// SetCredential persists the access token and updates the mirror.
func (s *Store) SetCredential(ctx context.Context, token string) error {
	if err := s.set(ctx, s.db, keyAccessToken, []byte(token)); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Identity returns the cached user identity, or nil if none is stored.
func (s *Store) Identity() *models.UserIdentity {
	return s.identity
}

// SetIdentity persists the user identity record and updates the mirror.
func (s *Store) SetIdentity(ctx context.Context, u *models.UserIdentity) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.set(ctx, s.db, keyUser, data); err != nil {
		return err
	}
	s.identity = u
	return nil
}

// SetLogin stores the token and identity together in one transaction, the
// shape of a successful sign-in.
func (s *Store) SetLogin(ctx context.Context, token string, u *models.UserIdentity) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyAccessToken, []byte(token)); err != nil {
			return err
		}
		return s.set(ctx, tx, keyUser, data)
	})
	if err != nil {
		return err
	}

	s.token = token
	s.identity = u
	return nil
}

// Clear wipes the whole cache, persistent and in-memory. Used on logout.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.token = ""
	s.identity = nil
	return nil
}

// DisplayName returns a best-effort name for the signed-in user: the cached
// identity's username, else the token's "sub" claim (decoded without any
// verification, for display only), else "".
func (s *Store) DisplayName() string {
	if s.identity != nil && s.identity.Username != "" {
		return s.identity.Username
	}
	if s.token != "" {
		return tokenSubject(s.token)
	}
	return ""
}

func tokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func (s *Store) load(ctx context.Context) error {
	if raw, err := s.get(ctx, keyAccessToken); err != nil {
		return err
	} else if raw != nil {
		s.token = string(raw)
	}

	raw, err := s.get(ctx, keyUser)
	if err != nil {
		return err
	}
	if raw != nil {
		var u models.UserIdentity
		if err := json.Unmarshal(raw, &u); err == nil {
			s.identity = &u
		}
		// A corrupt identity record is display data only; ignore it.
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}
