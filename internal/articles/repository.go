package articles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/db"
)

// Repository defines persistence operations for articles and history.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, article Article) (*Article, error)
	FindByID(ctx context.Context, id int64) (*Article, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*Article, error)
	ListPublished(ctx context.Context, limit, offset int) ([]Article, int, error)
	Update(ctx context.Context, article Article) (*Article, error)
	Delete(ctx context.Context, id int64) error
	InsertHistory(ctx context.Context, entries []HistoryEntry) error
	ListHistory(ctx context.Context, articleID int64) ([]HistoryEntry, error)
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const articleColumns = "id, slug, title, subtitle, body, cover_image_url, author_id, published, published_at, created_at, updated_at"

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

// WithTx runs fn with a repository bound to a single transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Create(ctx context.Context, article Article) (*Article, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO articles (slug, title, subtitle, body, cover_image_url, author_id, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING `+articleColumns,
		article.Slug, article.Title, article.Subtitle, article.Body,
		article.CoverImageURL, article.AuthorID, article.Published, article.PublishedAt,
	)
	created, err := scanArticle(row)
	if err != nil {
		if db.IsUniqueViolation(err, "articles_slug_key") {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	return scanArticle(row)
}

func (r *repository) FindPublishedBySlug(ctx context.Context, slug string) (*Article, error) {
	row := r.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1 AND published = true`, slug)
	return scanArticle(row)
}

func (r *repository) ListPublished(ctx context.Context, limit, offset int) ([]Article, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM articles WHERE published = true`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE published = true
		ORDER BY published_at DESC, id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.Subtitle, &a.Body, &a.CoverImageURL,
			&a.AuthorID, &a.Published, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

func (r *repository) Update(ctx context.Context, article Article) (*Article, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE articles
		SET slug = $2, title = $3, subtitle = $4, body = $5, cover_image_url = $6,
		    published = $7, published_at = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+articleColumns,
		article.ID, article.Slug, article.Title, article.Subtitle, article.Body,
		article.CoverImageURL, article.Published, article.PublishedAt,
	)
	updated, err := scanArticle(row)
	if err != nil {
		if db.IsUniqueViolation(err, "articles_slug_key") {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertHistory(ctx context.Context, entries []HistoryEntry) error {
	for _, e := range entries {
		_, err := r.db.Exec(ctx, `
			INSERT INTO article_history (article_id, field, old_value, new_value, changed_by, changed_at)
			VALUES ($1, $2, $3, $4, $5, now())`,
			e.ArticleID, e.Field, e.OldValue, e.NewValue, e.ChangedBy,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ListHistory(ctx context.Context, articleID int64) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, article_id, field, old_value, new_value, changed_by, changed_at
		FROM article_history
		WHERE article_id = $1
		ORDER BY changed_at DESC, id DESC`,
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ArticleID, &e.Field, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Subtitle, &a.Body, &a.CoverImageURL,
		&a.AuthorID, &a.Published, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

var _ Repository = (*repository)(nil)
