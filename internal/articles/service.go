package articles

import (
	"context"
	"fmt"
	"time"
)

// Service wraps article business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new article. An omitted slug is derived from the title.
func (s *Service) Create(ctx context.Context, req CreateArticleRequest, authorID int64) (*Article, error) {
	slug := Slugify(req.Title)
	if req.Slug != nil && *req.Slug != "" {
		slug = Slugify(*req.Slug)
	}

	article := Article{
		Slug:          slug,
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Body:          req.Body,
		CoverImageURL: req.CoverImageURL,
		AuthorID:      authorID,
		Published:     req.Published,
	}
	if req.Published {
		now := time.Now()
		article.PublishedAt = &now
	}
	return s.repo.Create(ctx, article)
}

// Get returns an article by id, drafts included.
func (s *Service) Get(ctx context.Context, id int64) (*Article, error) {
	return s.repo.FindByID(ctx, id)
}

// GetPublished returns a published article by slug with its body
// rendered to HTML.
func (s *Service) GetPublished(ctx context.Context, slug string) (*PublicArticle, error) {
	article, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &PublicArticle{Article: *article, BodyHTML: RenderBody(article.Body)}, nil
}

// ListPublished returns published articles, newest first.
func (s *Service) ListPublished(ctx context.Context, page, perPage int) ([]Article, int, error) {
	return s.repo.ListPublished(ctx, perPage, (page-1)*perPage)
}

// Update applies a partial edit. Changes to the five tracked fields are
// recorded in the article's history within the same transaction.
func (s *Service) Update(ctx context.Context, id int64, req UpdateArticleRequest, editorID int64) (*Article, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Subtitle != nil {
		next.Subtitle = req.Subtitle
	}
	if req.Slug != nil && *req.Slug != "" {
		next.Slug = Slugify(*req.Slug)
	}
	if req.Body != nil {
		next.Body = *req.Body
	}
	if req.CoverImageURL != nil {
		next.CoverImageURL = req.CoverImageURL
	}
	if req.Published != nil && *req.Published != next.Published {
		next.Published = *req.Published
		if next.Published {
			now := time.Now()
			next.PublishedAt = &now
		} else {
			next.PublishedAt = nil
		}
	}

	entries := diffTrackedFields(existing, &next, editorID)

	var updated *Article
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		updated, err = repo.Update(ctx, next)
		if err != nil {
			return err
		}
		return repo.InsertHistory(ctx, entries)
	})
	if err != nil {
		return nil, fmt.Errorf("articles: update %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes an article and its history (cascaded by the schema).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// History lists the recorded field changes for an article, newest first.
func (s *Service) History(ctx context.Context, articleID int64) ([]HistoryEntry, error) {
	if _, err := s.repo.FindByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, articleID)
}

// diffTrackedFields compares exactly the five tracked fields and emits
// one history entry per changed field.
func diffTrackedFields(before, after *Article, changedBy int64) []HistoryEntry {
	var entries []HistoryEntry
	record := func(field, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		entries = append(entries, HistoryEntry{
			ArticleID: before.ID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: changedBy,
		})
	}

	record(fieldTitle, before.Title, after.Title)
	record(fieldSubtitle, deref(before.Subtitle), deref(after.Subtitle))
	record(fieldSlug, before.Slug, after.Slug)
	record(fieldBody, before.Body, after.Body)
	record(fieldCoverImage, deref(before.CoverImageURL), deref(after.CoverImageURL))
	return entries
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
