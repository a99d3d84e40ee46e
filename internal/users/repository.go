package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/db"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	Create(ctx context.Context, name, email string, features []string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id int64, name, passwordHash *string) (*User, error)
	SetFeatures(ctx context.Context, id int64, features []string) (*User, error)
	Activate(ctx context.Context, id int64, passwordHash string, features []string) (*User, error)
}

const userColumns = "id, name, email, COALESCE(password_hash, ''), features, created_at, updated_at"

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new account. Uniqueness is guaranteed by the schema;
// violations surface as ErrEmailTaken/ErrNameTaken.
func (r *PGRepository) Create(ctx context.Context, name, email string, features []string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, features, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING `+userColumns,
		name, email, features,
	)
	user, err := scanUser(row)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "users_email_key"):
			return nil, ErrEmailTaken
		case db.IsUniqueViolation(err, "users_name_key"):
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return user, nil
}

// FindByID fetches an account by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail fetches an account by email, case-insensitively.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// FindByName fetches an account by display name, case-insensitively.
func (r *PGRepository) FindByName(ctx context.Context, name string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(name) = lower($1)`, name)
	return scanUser(row)
}

// List returns all accounts ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Features, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile changes name and/or password hash for the account.
func (r *PGRepository) UpdateProfile(ctx context.Context, id int64, name, passwordHash *string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    password_hash = COALESCE($3, password_hash),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, name, passwordHash,
	)
	user, err := scanUser(row)
	if err != nil && db.IsUniqueViolation(err, "users_name_key") {
		return nil, ErrNameTaken
	}
	return user, err
}

// SetFeatures replaces the account's feature set.
func (r *PGRepository) SetFeatures(ctx context.Context, id int64, features []string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET features = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, features,
	)
	return scanUser(row)
}

// Activate stores the first password and swaps in the activated bundle.
func (r *PGRepository) Activate(ctx context.Context, id int64, passwordHash string, features []string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $2, features = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, passwordHash, features,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Features, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ Repository = (*PGRepository)(nil)
