package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
)

// Repository defines persistence operations for session records.
type Repository interface {
	Create(ctx context.Context, session Session) (*Session, error)
	FindValidByToken(ctx context.Context, token string) (*Session, error)
	Renew(ctx context.Context, token string, expiresAt time.Time) (*Session, error)
	Expire(ctx context.Context, token string, by time.Duration) (*Session, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create persists a new session row.
func (r *PGRepository) Create(ctx context.Context, session Session) (*Session, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING token, user_id, expires_at, created_at, updated_at`,
		session.Token, session.UserID, session.ExpiresAt,
	)
	return scanSession(row)
}

// FindValidByToken returns the session only while expires_at is strictly
// in the future.
func (r *PGRepository) FindValidByToken(ctx context.Context, token string) (*Session, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT token, user_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()`,
		token,
	)
	return scanSession(row)
}

// Renew slides the expiry forward, only for sessions still valid.
func (r *PGRepository) Renew(ctx context.Context, token string, expiresAt time.Time) (*Session, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE sessions
		SET expires_at = $2, updated_at = now()
		WHERE token = $1 AND expires_at > now()
		RETURNING token, user_id, expires_at, created_at, updated_at`,
		token, expiresAt,
	)
	return scanSession(row)
}

// Expire subtracts the session lifetime from the current expiry. Since
// no live session expires more than one lifetime from now, the result is
// guaranteed to be in the past without consulting the clock.
func (r *PGRepository) Expire(ctx context.Context, token string, by time.Duration) (*Session, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE sessions
		SET expires_at = expires_at - make_interval(secs => $2), updated_at = now()
		WHERE token = $1
		RETURNING token, user_id, expires_at, created_at, updated_at`,
		token, by.Seconds(),
	)
	return scanSession(row)
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, authz.ErrNoSession
		}
		return nil, err
	}
	return &s, nil
}

var _ Repository = (*PGRepository)(nil)
