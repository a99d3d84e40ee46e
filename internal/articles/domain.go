// Package articles manages blog articles and the field-level edit
// history kept for each of them.
package articles

import (
	"errors"
	"time"
)

// Article is a blog post. Unpublished articles are only visible through
// the management endpoints.
type Article struct {
	ID            int64      `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Subtitle      *string    `json:"subtitle,omitempty"`
	Body          string     `json:"body"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	AuthorID      int64      `json:"author_id"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// trackedFields are the article fields whose edits are recorded, one
// history row per changed field.
const (
	fieldTitle      = "title"
	fieldSubtitle   = "subtitle"
	fieldSlug       = "slug"
	fieldBody       = "body"
	fieldCoverImage = "cover_image_url"
)

// HistoryEntry records one field change on one article.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy int64     `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

var (
	// ErrNotFound indicates no article matches the lookup.
	ErrNotFound = errors.New("articles: not found")
	// ErrSlugTaken indicates the slug is already in use.
	ErrSlugTaken = errors.New("articles: slug already in use")
)
