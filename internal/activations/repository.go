package activations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for activation tokens.
type Repository interface {
	Create(ctx context.Context, userID int64, expiresAt time.Time) (*Activation, error)
	FindValid(ctx context.Context, id uuid.UUID) (*Activation, error)
	MarkUsed(ctx context.Context, id uuid.UUID) (*Activation, error)
}

const activationColumns = "id, user_id, used, expires_at, created_at, updated_at"

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a fresh token. Old tokens are kept as history.
func (r *PGRepository) Create(ctx context.Context, userID int64, expiresAt time.Time) (*Activation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activations (id, user_id, used, expires_at, created_at, updated_at)
		VALUES ($1, $2, false, $3, now(), now())
		RETURNING `+activationColumns,
		uuid.New(), userID, expiresAt,
	)
	return scanActivation(row)
}

// FindValid returns the token only while unused and unexpired.
func (r *PGRepository) FindValid(ctx context.Context, id uuid.UUID) (*Activation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+activationColumns+`
		FROM activations
		WHERE id = $1 AND used = false AND expires_at > now()`,
		id,
	)
	return scanActivation(row)
}

// MarkUsed consumes the token.
func (r *PGRepository) MarkUsed(ctx context.Context, id uuid.UUID) (*Activation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE activations
		SET used = true, updated_at = now()
		WHERE id = $1 AND used = false
		RETURNING `+activationColumns,
		id,
	)
	return scanActivation(row)
}

func scanActivation(row pgx.Row) (*Activation, error) {
	var a Activation
	err := row.Scan(&a.ID, &a.UserID, &a.Used, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return &a, nil
}

var _ Repository = (*PGRepository)(nil)
