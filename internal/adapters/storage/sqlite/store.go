package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/weekwise/weekwise-api/internal/domain"
)

// Fixed-width layout so lexical ordering of the stored text matches
// chronological ordering (RFC3339Nano drops trailing zeros and breaks
// that property).
const timeLayout = "2006-01-02 15:04:05.000000000"

const schema = `
CREATE TABLE IF NOT EXISTS analysis_records (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	kind          TEXT NOT NULL,
	summary       TEXT NOT NULL,
	fallback_mode INTEGER NOT NULL,
	payload       TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_records_user
	ON analysis_records (user_id, created_at);
`

// Store is a file-backed AnalysisStore on SQLite, for single-node
// deployments that want persistence without a cloud dependency.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file (and its directory) if needed and
// applies the schema.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) AppendRecord(ctx context.Context, record *domain.AnalysisRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_records (id, user_id, kind, summary, fallback_mode, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(record.ID),
		string(record.UserID),
		string(record.Kind),
		record.Summary,
		boolToInt(record.FallbackMode),
		string(record.Payload),
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite AppendRecord: %w", err)
	}
	return nil
}

// ListRecordsByUser returns the user's most recent `limit` records in
// chronological order. limit <= 0 returns all records.
func (s *Store) ListRecordsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		// SQLite treats a negative LIMIT as "no limit".
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, kind, summary, fallback_mode, payload, created_at
		 FROM (
			SELECT * FROM analysis_records
			WHERE user_id = ?
			ORDER BY created_at DESC
			LIMIT ?
		 )
		 ORDER BY created_at ASC`,
		string(userID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite ListRecordsByUser: %w", err)
	}
	defer rows.Close()

	var out []*domain.AnalysisRecord
	for rows.Next() {
		var (
			r         domain.AnalysisRecord
			fallback  int
			payload   string
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Kind, &r.Summary, &fallback, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite ListRecordsByUser: scanning row: %w", err)
		}

		r.FallbackMode = fallback != 0
		r.Payload = json.RawMessage(payload)
		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite ListRecordsByUser: parsing created_at: %w", err)
		}

		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite ListRecordsByUser: %w", err)
	}

	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
