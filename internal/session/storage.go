package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// UserIDStorage persists the single selected-user-id slot across restarts.
// Only the session Store writes through it.
type UserIDStorage interface {
	Load() (*int64, error)
	Save(userID int64) error
	Clear() error
}

const currentUserKey = "current_user_id"

// SQLiteStorage keeps the slot in an embedded SQLite file, the demo's
// equivalent of the browser's localStorage key.
type SQLiteStorage struct {
	conn *sql.DB
}

// OpenStorage creates or opens the session database at the given path.
func OpenStorage(dbPath string) (*SQLiteStorage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS session_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}

	return &SQLiteStorage{conn: conn}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.conn.Close()
}

// Load returns the persisted user id, or nil when none is stored. A value
// that does not parse as an integer is treated as absent and cleared.
func (s *SQLiteStorage) Load() (*int64, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM session_state WHERE key = ?", currentUserKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading persisted user id: %w", err)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		_ = s.Clear()
		return nil, nil
	}
	return &id, nil
}

func (s *SQLiteStorage) Save(userID int64) error {
	_, err := s.conn.Exec(
		"INSERT INTO session_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		currentUserKey, strconv.FormatInt(userID, 10),
	)
	if err != nil {
		return fmt.Errorf("persisting user id: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear() error {
	_, err := s.conn.Exec("DELETE FROM session_state WHERE key = ?", currentUserKey)
	if err != nil {
		return fmt.Errorf("clearing persisted user id: %w", err)
	}
	return nil
}
