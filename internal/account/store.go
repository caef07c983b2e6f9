package account

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/hypertroq/internal/models"
)

// TokenStore persists auth tokens across restarts.
type TokenStore interface {
	Load() (models.AuthTokens, bool, error)
	Save(models.AuthTokens) error
	Clear() error
}

// CredentialDB stores the current auth tokens in a local SQLite database so
// a restarted gateway does not force a fresh login.
type CredentialDB struct {
	db *sql.DB
}

// OpenCredentialDB opens (or creates) the SQLite credential database at path.
func OpenCredentialDB(path string) (*CredentialDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating credentials dir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening credentials db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS credentials (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		access_token  TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		token_type    TEXT NOT NULL,
		updated_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating credentials table: %w", err)
	}

	return &CredentialDB{db: db}, nil
}

// Load returns the stored tokens, or ok=false when none were saved.
func (c *CredentialDB) Load() (models.AuthTokens, bool, error) {
	var t models.AuthTokens
	err := c.db.QueryRow(
		`SELECT access_token, refresh_token, token_type FROM credentials WHERE id = 1`,
	).Scan(&t.AccessToken, &t.RefreshToken, &t.TokenType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AuthTokens{}, false, nil
	}
	if err != nil {
		return models.AuthTokens{}, false, err
	}
	return t, true, nil
}

// Save stores the tokens, replacing any previous set.
func (c *CredentialDB) Save(t models.AuthTokens) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO credentials (id, access_token, refresh_token, token_type) VALUES (1, ?, ?, ?)`,
		t.AccessToken, t.RefreshToken, t.TokenType,
	)
	return err
}

// Clear removes the stored tokens.
func (c *CredentialDB) Clear() error {
	_, err := c.db.Exec(`DELETE FROM credentials WHERE id = 1`)
	return err
}

// Close closes the credential database.
func (c *CredentialDB) Close() error {
	return c.db.Close()
}
