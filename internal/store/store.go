// Package store provides SQLite-backed session persistence for datasmith.
//
// Sessions follow the same wholesale-replacement model as the in-memory
// datasets: saving always overwrites the previous snapshot, so restoring a
// session yields exactly the last saved state and nothing in between.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/datasmith/datasmith/internal/models"
	"github.com/datasmith/datasmith/internal/rules"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store provides access to the datasmith session database.
type Store struct {
	db *sql.DB
}

// Session is one named editing session.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// WAL keeps the UI responsive while autosaves run
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer at a time
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS datasets (
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		columns TEXT NOT NULL,
		rows TEXT NOT NULL,
		PRIMARY KEY (session_id, kind),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE TABLE IF NOT EXISTS rule_sets (
		session_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE TABLE IF NOT EXISTS weight_sets (
		session_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_datasets_session ON datasets(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// --- Session Operations ---

// OpenSession returns the session with the given name, creating it when it
// does not exist yet.
func (s *Store) OpenSession(name string) (*Session, error) {
	existing, err := s.getSessionByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Name, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *Store) getSessionByName(name string) (*Session, error) {
	sess := &Session{}
	err := s.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM sessions WHERE name = ?`,
		name,
	).Scan(&sess.ID, &sess.Name, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return sess, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *Store) ListSessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at, updated_at FROM sessions ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and all of its snapshots.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM datasets WHERE session_id = ?`,
		`DELETE FROM rule_sets WHERE session_id = ?`,
		`DELETE FROM weight_sets WHERE session_id = ?`,
		`DELETE FROM sessions WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	return tx.Commit()
}

// --- Snapshot Operations ---

// SaveDataset replaces the stored snapshot for the dataset's kind.
func (s *Store) SaveDataset(sessionID string, ds *models.Dataset) error {
	columns, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("marshal columns: %w", err)
	}
	rowData, err := json.Marshal(ds.Rows)
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO datasets (session_id, kind, columns, rows) VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id, kind) DO UPDATE SET columns = excluded.columns, rows = excluded.rows`,
		sessionID, string(ds.Kind), string(columns), string(rowData),
	)
	if err != nil {
		return fmt.Errorf("upsert dataset: %w", err)
	}
	return s.touch(sessionID)
}

// LoadDataset returns the stored snapshot for a kind, or nil when the
// session has none.
func (s *Store) LoadDataset(sessionID string, kind models.DatasetKind) (*models.Dataset, error) {
	var columns, rowData string
	err := s.db.QueryRow(
		`SELECT columns, rows FROM datasets WHERE session_id = ? AND kind = ?`,
		sessionID, string(kind),
	).Scan(&columns, &rowData)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}

	ds := &models.Dataset{Kind: kind}
	if err := json.Unmarshal([]byte(columns), &ds.Columns); err != nil {
		return nil, fmt.Errorf("unmarshal columns: %w", err)
	}
	if err := json.Unmarshal([]byte(rowData), &ds.Rows); err != nil {
		return nil, fmt.Errorf("unmarshal rows: %w", err)
	}
	return ds, nil
}

// SaveRules replaces the session's rule list.
func (s *Store) SaveRules(sessionID string, list []rules.Rule) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO rule_sets (session_id, payload) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload`,
		sessionID, string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert rules: %w", err)
	}
	return s.touch(sessionID)
}

// LoadRules returns the session's rule list, empty when none was saved.
func (s *Store) LoadRules(sessionID string) ([]rules.Rule, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM rule_sets WHERE session_id = ?`,
		sessionID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}

	var list []rules.Rule
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	return list, nil
}

// SaveWeights replaces the session's prioritization weights.
func (s *Store) SaveWeights(sessionID string, w rules.Weights) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO weight_sets (session_id, payload) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload`,
		sessionID, string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert weights: %w", err)
	}
	return s.touch(sessionID)
}

// LoadWeights returns the session's weights, or the defaults when none
// were saved.
func (s *Store) LoadWeights(sessionID string) (rules.Weights, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM weight_sets WHERE session_id = ?`,
		sessionID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return rules.DefaultWeights(), nil
	}
	if err != nil {
		return rules.Weights{}, fmt.Errorf("query weights: %w", err)
	}

	var w rules.Weights
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return rules.Weights{}, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}

// touch bumps the session's updated_at.
func (s *Store) touch(sessionID string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID,
	)
	return err
}
