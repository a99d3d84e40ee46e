package articles

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

type fakeArticleRepo struct {
	byID    map[int64]*Article
	history []HistoryEntry
	nextID  int64
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{byID: map[int64]*Article{}, nextID: 1}
}

func (r *fakeArticleRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *fakeArticleRepo) Create(_ context.Context, article Article) (*Article, error) {
	for _, a := range r.byID {
		if a.Slug == article.Slug {
			return nil, ErrSlugTaken
		}
	}
	article.ID = r.nextID
	r.nextID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	r.byID[article.ID] = &article
	return &article, nil
}

func (r *fakeArticleRepo) FindByID(_ context.Context, id int64) (*Article, error) {
	if a, ok := r.byID[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeArticleRepo) FindPublishedBySlug(_ context.Context, slug string) (*Article, error) {
	for _, a := range r.byID {
		if a.Slug == slug && a.Published {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeArticleRepo) ListPublished(_ context.Context, limit, offset int) ([]Article, int, error) {
	var published []Article
	for _, a := range r.byID {
		if a.Published {
			published = append(published, *a)
		}
	}
	sort.Slice(published, func(i, j int) bool { return published[i].ID > published[j].ID })
	total := len(published)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return published[offset:end], total, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article Article) (*Article, error) {
	if _, ok := r.byID[article.ID]; !ok {
		return nil, ErrNotFound
	}
	article.UpdatedAt = time.Now()
	r.byID[article.ID] = &article
	return &article, nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeArticleRepo) InsertHistory(_ context.Context, entries []HistoryEntry) error {
	r.history = append(r.history, entries...)
	return nil
}

func (r *fakeArticleRepo) ListHistory(_ context.Context, articleID int64) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for _, e := range r.history {
		if e.ArticleID == articleID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

var _ Repository = (*fakeArticleRepo)(nil)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)

	article, err := svc.Create(context.Background(), CreateArticleRequest{
		Title: "Revisão de Contrato Imobiliário",
		Body:  "Corpo do artigo.",
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if article.Slug != "revisao-de-contrato-imobiliario" {
		t.Fatalf("slug = %q", article.Slug)
	}
	if article.Published || article.PublishedAt != nil {
		t.Fatal("article must start as a draft unless asked otherwise")
	}
}

func TestCreateHonorsExplicitSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)

	article, err := svc.Create(context.Background(), CreateArticleRequest{
		Title:     "Título qualquer",
		Slug:      strPtr("Slug Escolhido à Mão"),
		Body:      "Corpo.",
		Published: true,
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if article.Slug != "slug-escolhido-a-mao" {
		t.Fatalf("slug = %q", article.Slug)
	}
	if !article.Published || article.PublishedAt == nil {
		t.Fatal("publishing on create must stamp published_at")
	}
}

func TestUpdateRecordsOneHistoryEntryPerChangedField(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateArticleRequest{
		Title:    "Título Original",
		Subtitle: strPtr("Subtítulo original"),
		Body:     "Corpo original.",
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateArticleRequest{
		Title: strPtr("Título Novo"),
		Body:  strPtr("Corpo novo."),
	}, 42)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Título Novo" {
		t.Fatalf("title = %q", updated.Title)
	}

	if len(repo.history) != 2 {
		t.Fatalf("history entries = %d, want 2 (title and body)", len(repo.history))
	}
	byField := map[string]HistoryEntry{}
	for _, e := range repo.history {
		byField[e.Field] = e
	}
	titleEntry, ok := byField["title"]
	if !ok {
		t.Fatal("missing history entry for title")
	}
	if titleEntry.OldValue != "Título Original" || titleEntry.NewValue != "Título Novo" {
		t.Fatalf("title entry %+v", titleEntry)
	}
	if titleEntry.ChangedBy != 42 || titleEntry.ArticleID != created.ID {
		t.Fatalf("title entry attribution %+v", titleEntry)
	}
	if _, ok := byField["body"]; !ok {
		t.Fatal("missing history entry for body")
	}
}

func TestUpdateWithoutChangesRecordsNothing(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateArticleRequest{Title: "Sem Mudanças", Body: "Corpo."}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, UpdateArticleRequest{
		Title: strPtr("Sem Mudanças"),
	}, 42); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(repo.history) != 0 {
		t.Fatalf("history entries = %d, want 0", len(repo.history))
	}
}

func TestUpdatePublishToggleIsNotTracked(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateArticleRequest{Title: "Rascunho", Body: "Corpo."}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.Update(ctx, created.ID, UpdateArticleRequest{Published: boolPtr(true)}, 42)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !published.Published || published.PublishedAt == nil {
		t.Fatal("publishing must stamp published_at")
	}
	if len(repo.history) != 0 {
		t.Fatalf("publish toggles are not tracked fields, got %d entries", len(repo.history))
	}

	unpublished, err := svc.Update(ctx, created.ID, UpdateArticleRequest{Published: boolPtr(false)}, 42)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if unpublished.Published || unpublished.PublishedAt != nil {
		t.Fatal("unpublishing must clear published_at")
	}
}

func TestGetPublishedRendersBody(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateArticleRequest{
		Title:     "Com Markdown",
		Body:      "# Cabeçalho\n\nParágrafo com <script>alert(1)</script>.",
		Published: true,
	}, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	public, err := svc.GetPublished(ctx, "com-markdown")
	if err != nil {
		t.Fatalf("get published: %v", err)
	}
	if !strings.Contains(public.BodyHTML, "<h1>") {
		t.Fatalf("body html %q lacks the rendered heading", public.BodyHTML)
	}
	if strings.Contains(public.BodyHTML, "<script>") {
		t.Fatal("raw html must be escaped")
	}
}

func TestGetPublishedHidesDrafts(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateArticleRequest{Title: "Rascunho Oculto", Body: "Corpo."}, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetPublished(ctx, "rascunho-oculto"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestHistoryRequiresExistingArticle(t *testing.T) {
	svc := NewService(newFakeArticleRepo())
	if _, err := svc.History(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
