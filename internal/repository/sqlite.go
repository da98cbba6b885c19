package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			age_group TEXT NOT NULL,
			gender TEXT NOT NULL,
			answers TEXT NOT NULL,
			result TEXT,
			auto_intro_sent INTEGER NOT NULL DEFAULT 0,
			notified_for_result INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			auto_intro INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_messages_session_seq ON messages(session_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession creates a new session row.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, created_at, age_group, gender, answers, result, auto_intro_sent, notified_for_result)
		 VALUES (?, ?, ?, ?, ?, NULL, 0, 0)`,
		session.SessionID, session.CreatedAt, session.Demographics.AgeGroup, session.Demographics.Gender, string(answers))
	return err
}

// GetSession retrieves a session by ID. Returns nil when not found.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	var answers string
	var result sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, created_at, age_group, gender, answers, result, auto_intro_sent, notified_for_result
		 FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.CreatedAt,
		&session.Demographics.AgeGroup, &session.Demographics.Gender,
		&answers, &result, &session.AutoIntroSent, &session.NotifiedForResult)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &session.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if result.Valid {
		session.Result = &domain.AssessmentResult{}
		if err := json.Unmarshal([]byte(result.String), session.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}
	return &session, nil
}

// UpdateSession writes the mutable session fields back.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *domain.Session) error {
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	var result sql.NullString
	if session.Result != nil {
		data, err := json.Marshal(session.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		result = sql.NullString{String: string(data), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET age_group = ?, gender = ?, answers = ?, result = ?, auto_intro_sent = ?, notified_for_result = ?
		 WHERE session_id = ?`,
		session.Demographics.AgeGroup, session.Demographics.Gender, string(answers),
		result, session.AutoIntroSent, session.NotifiedForResult, session.SessionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", session.SessionID)
	}
	return nil
}

// ResetSession clears the transcript and restores the session row to its
// freshly created defaults in a single transaction. A partially applied
// reset would leave the transcript referencing a stale result, so all or
// nothing.
func (s *SQLiteStore) ResetSession(ctx context.Context, sessionID string) error {
	fresh := domain.NewAnswers()
	answers, err := json.Marshal(fresh)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET age_group = ?, gender = ?, answers = ?, result = NULL,
		 auto_intro_sent = 0, notified_for_result = 0 WHERE session_id = ?`,
		domain.AnswerSentinel, domain.AnswerSentinel, string(answers), sessionID)
	if err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}

	return tx.Commit()
}

// AppendMessages appends messages in order, assigning consecutive sequence
// numbers inside one transaction.
func (s *SQLiteStore) AppendMessages(ctx context.Context, sessionID string, messages []*domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?`, sessionID).Scan(&next); err != nil {
		return fmt.Errorf("failed to read sequence: %w", err)
	}

	for i, m := range messages {
		m.SessionID = sessionID
		m.Seq = next + int64(i)
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (message_id, session_id, seq, role, content, auto_intro, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.MessageID, m.SessionID, m.Seq, string(m.Role), m.Content, m.AutoIntro, m.CreatedAt); err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
	}

	return tx.Commit()
}

// GetMessages returns up to limit transcript entries in append order.
func (s *SQLiteStore) GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, seq, role, content, auto_intro, created_at
		 FROM messages WHERE session_id = ? ORDER BY seq ASC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// GetRecentMessages returns the newest limit entries in append order. The
// query windows from the tail so the latest turn is always included.
func (s *SQLiteStore) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, seq, role, content, auto_intro, created_at
		 FROM messages WHERE session_id = ? ORDER BY seq DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var role string
		if err := rows.Scan(&m.MessageID, &m.SessionID, &m.Seq, &role, &m.Content, &m.AutoIntro, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// HasAutoIntro reports whether the transcript already contains the seeded
// assessment-summary exchange.
func (s *SQLiteStore) HasAutoIntro(ctx context.Context, sessionID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM messages WHERE session_id = ? AND auto_intro = 1`, sessionID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
