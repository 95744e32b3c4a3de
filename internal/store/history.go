// Package store persists a journal of past calculations. The calculators
// themselves are stateless; the journal is a presentation-layer
// convenience written after a result is produced.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded calculation.
type Entry struct {
	ID         int64           `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Calculator string          `json:"calculator"`
	Inputs     json.RawMessage `json:"inputs"`
	Result     json.RawMessage `json:"result"`
}

// HistoryStore records calculations in SQLite.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (or creates) the history database at dbPath.
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return store, nil
}

func (s *HistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		calculator TEXT NOT NULL,
		inputs TEXT NOT NULL,
		result TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calculations_timestamp ON calculations(timestamp);
	CREATE INDEX IF NOT EXISTS idx_calculations_calculator ON calculations(calculator);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one calculation. Inputs and result are marshalled to JSON.
func (s *HistoryStore) Record(calculator string, inputs, result interface{}) error {
	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO calculations (timestamp, calculator, inputs, result) VALUES (?, ?, ?, ?)`,
		time.Now().UTC(), calculator, string(inputsJSON), string(resultJSON),
	)
	return err
}

// List returns the most recent entries, newest first. A non-empty
// calculator filters by calculator name.
func (s *HistoryStore) List(calculator string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, timestamp, calculator, inputs, result FROM calculations`
	args := []interface{}{}
	if calculator != "" {
		query += ` WHERE calculator = ?`
		args = append(args, calculator)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var inputs, result string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Calculator, &inputs, &result); err != nil {
			return nil, err
		}
		e.Inputs = json.RawMessage(inputs)
		e.Result = json.RawMessage(result)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the cutoff and returns the count removed.
func (s *HistoryStore) Prune(olderThan time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM calculations WHERE timestamp < ?`, olderThan.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
