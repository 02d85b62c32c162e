package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trading-journal/internal/domain"
	"trading-journal/internal/storage"
)

// SessionStore implements storage.SessionStore using PostgreSQL.
type SessionStore struct {
	pool *Pool
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(pool *Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SessionStore = (*SessionStore)(nil)

const sessionColumns = "id, date, hour, balance, token, kpi, penalty, created_at, updated_at"

// GetByDateHour retrieves the session for (date, hour). Returns ErrNotFound if none exists.
func (s *SessionStore) GetByDateHour(ctx context.Context, date string, hour int) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE date = $1 AND hour = $2
	`

	sess, err := scanSession(s.pool.QueryRow(ctx, query, date, hour))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get session by date/hour: %w", err)
	}
	return sess, nil
}

// ListByDate retrieves all sessions for a date, ordered by hour ASC.
func (s *SessionStore) ListByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE date = $1
		ORDER BY hour ASC
	`

	rows, err := s.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list sessions by date: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByDatePrefix retrieves all sessions whose date starts with prefix,
// ordered by date ASC then hour ASC.
func (s *SessionStore) ListByDatePrefix(ctx context.Context, prefix string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE date LIKE $1 || '%'
		ORDER BY date ASC, hour ASC
	`

	rows, err := s.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list sessions by date prefix: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListRecent retrieves at most limit sessions ordered by date DESC then hour DESC.
func (s *SessionStore) ListRecent(ctx context.Context, limit int) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		ORDER BY date DESC, hour DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// Upsert stores the session keyed by (date, hour). On conflict every column
// except id is overwritten, created_at included: replace semantics, matching
// the schedule upsert. The stored row is returned with its resolved id.
func (s *SessionStore) Upsert(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	if sess == nil || sess.ID == "" || sess.Date == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date, hour) DO UPDATE SET
			balance    = EXCLUDED.balance,
			token      = EXCLUDED.token,
			kpi        = EXCLUDED.kpi,
			penalty    = EXCLUDED.penalty,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + sessionColumns + `
	`

	stored, err := scanSession(s.pool.QueryRow(ctx, query,
		sess.ID, sess.Date, sess.Hour, sess.Balance, sess.Token,
		sess.KPI, sess.Penalty, sess.CreatedAt, sess.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}
	return stored, nil
}

// UpdateByID overwrites the fields of the session with id sess.ID, keeping
// its original created_at. Returns ErrNotFound if no such session exists,
// and ErrConflict if the target (date, hour) slot is held by another session.
func (s *SessionStore) UpdateByID(ctx context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		UPDATE sessions SET
			date       = $2,
			hour       = $3,
			balance    = $4,
			token      = $5,
			kpi        = $6,
			penalty    = $7,
			updated_at = $8
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		sess.ID, sess.Date, sess.Hour, sess.Balance, sess.Token,
		sess.KPI, sess.Penalty, sess.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("update session by id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanSession scans a single row into a Session.
func scanSession(row pgx.Row) (*domain.Session, error) {
	var sess domain.Session

	err := row.Scan(
		&sess.ID, &sess.Date, &sess.Hour, &sess.Balance, &sess.Token,
		&sess.KPI, &sess.Penalty, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// scanSessions scans multiple rows into a slice of Session.
func scanSessions(rows pgx.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session

	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}

	return sessions, nil
}
