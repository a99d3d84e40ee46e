package team

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for team members.
type Repository interface {
	Create(ctx context.Context, member Member) (*Member, error)
	FindByID(ctx context.Context, id int64) (*Member, error)
	ListActive(ctx context.Context) ([]Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, member Member) (*Member, error)
	Delete(ctx context.Context, id int64) error
}

const memberColumns = "id, name, title, oab_number, bio, photo_url, sort_order, active, created_at, updated_at"

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, member Member) (*Member, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO team_members (name, title, oab_number, bio, photo_url, sort_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING `+memberColumns,
		member.Name, member.Title, member.OABNumber, member.Bio, member.PhotoURL, member.SortOrder, member.Active,
	)
	return scanMember(row)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM team_members WHERE id = $1`, id)
	return scanMember(row)
}

// ListActive returns the members shown publicly, in display order.
func (r *PGRepository) ListActive(ctx context.Context) ([]Member, error) {
	return r.listWhere(ctx, `WHERE active = true`)
}

// List returns every member for the management panel.
func (r *PGRepository) List(ctx context.Context) ([]Member, error) {
	return r.listWhere(ctx, ``)
}

func (r *PGRepository) listWhere(ctx context.Context, where string) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM team_members `+where+` ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Title, &m.OABNumber, &m.Bio, &m.PhotoURL,
			&m.SortOrder, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PGRepository) Update(ctx context.Context, member Member) (*Member, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE team_members
		SET name = $2, title = $3, oab_number = $4, bio = $5, photo_url = $6,
		    sort_order = $7, active = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+memberColumns,
		member.ID, member.Name, member.Title, member.OABNumber, member.Bio,
		member.PhotoURL, member.SortOrder, member.Active,
	)
	return scanMember(row)
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Title, &m.OABNumber, &m.Bio, &m.PhotoURL,
		&m.SortOrder, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

var _ Repository = (*PGRepository)(nil)
