package data

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
)

// Session keys, mirroring what the platform's web client keeps in browser
// local storage.
const (
	KeyAccess          = "access"
	KeyRefresh         = "refresh"
	KeyIsAuthenticated = "isAuthenticated"
	KeyDeviceID        = "deviceId"
)

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS session (
			key VARCHAR PRIMARY KEY,
			value VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			story_id INTEGER PRIMARY KEY,
			episode_id INTEGER NOT NULL,
			message_id INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// Repository is the local persistence layer: the session key/value table
// (token storage) and an offline cache of reading progress.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Get returns the stored value for key, or "" when absent.
func (r *Repository) Get(key string) string {
	var value string
	err := r.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (r *Repository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`,
		key, value,
	)
	return err
}

func (r *Repository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}

// ClearSession removes the authentication keys but leaves the device id and
// cached progress in place.
func (r *Repository) ClearSession() error {
	_, err := r.db.Exec(
		`DELETE FROM session WHERE key IN (?, ?, ?)`,
		KeyAccess, KeyRefresh, KeyIsAuthenticated,
	)
	return err
}

// DeviceID returns a stable identifier for this installation, generating and
// persisting one on first use.
func (r *Repository) DeviceID() string {
	if id := r.Get(KeyDeviceID); id != "" {
		return id
	}
	id := uuid.NewString()
	if err := r.Set(KeyDeviceID, id); err != nil {
		return id
	}
	return id
}

func (r *Repository) SaveProgress(p Progress) error {
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO progress (story_id, episode_id, message_id, updated_at)
		 VALUES (?, ?, ?, ?)`,
		p.Story, p.Episode, p.Message, time.Now(),
	)
	return err
}

func (r *Repository) GetProgress(storyID int) (*Progress, error) {
	p := &Progress{Story: storyID}
	err := r.db.QueryRow(
		`SELECT episode_id, message_id FROM progress WHERE story_id = ?`,
		storyID,
	).Scan(&p.Episode, &p.Message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) ListProgress() ([]Progress, error) {
	rows, err := r.db.Query(
		`SELECT story_id, episode_id, message_id FROM progress ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.Story, &p.Episode, &p.Message); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
