package activations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeActivationRepo struct {
	byID map[uuid.UUID]*Activation
}

func newFakeActivationRepo() *fakeActivationRepo {
	return &fakeActivationRepo{byID: map[uuid.UUID]*Activation{}}
}

func (r *fakeActivationRepo) Create(_ context.Context, userID int64, expiresAt time.Time) (*Activation, error) {
	a := &Activation{ID: uuid.New(), UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeActivationRepo) FindValid(_ context.Context, id uuid.UUID) (*Activation, error) {
	a, ok := r.byID[id]
	if !ok || a.Used || !a.ExpiresAt.After(time.Now()) {
		return nil, ErrTokenInvalid
	}
	return a, nil
}

func (r *fakeActivationRepo) MarkUsed(_ context.Context, id uuid.UUID) (*Activation, error) {
	a, ok := r.byID[id]
	if !ok || a.Used {
		return nil, ErrTokenInvalid
	}
	a.Used = true
	return a, nil
}

var _ Repository = (*fakeActivationRepo)(nil)

type fakeAccounts struct {
	activated map[int64]string
}

func (a *fakeAccounts) Activate(_ context.Context, userID int64, password string) error {
	if a.activated == nil {
		a.activated = map[int64]string{}
	}
	a.activated[userID] = password
	return nil
}

type fakeEnqueuer struct {
	to, name, token string
	calls           int
}

func (e *fakeEnqueuer) EnqueueActivationEmail(_ context.Context, to, name, token string) error {
	e.to, e.name, e.token = to, name, token
	e.calls++
	return nil
}

func TestStartActivationQueuesEmail(t *testing.T) {
	repo := newFakeActivationRepo()
	enqueuer := &fakeEnqueuer{}
	svc := NewService(repo, &fakeAccounts{}, enqueuer, 15*time.Minute)

	if err := svc.StartActivation(context.Background(), 5, "Gabriel", "gabriel@example.com"); err != nil {
		t.Fatalf("start activation: %v", err)
	}
	if enqueuer.calls != 1 || enqueuer.to != "gabriel@example.com" || enqueuer.name != "Gabriel" {
		t.Fatalf("email enqueue = %+v", enqueuer)
	}
	id, err := uuid.Parse(enqueuer.token)
	if err != nil {
		t.Fatalf("emailed token %q is not a uuid", enqueuer.token)
	}
	stored, ok := repo.byID[id]
	if !ok {
		t.Fatal("token must be persisted before the email is queued")
	}
	if remaining := time.Until(stored.ExpiresAt); remaining > 15*time.Minute || remaining < 14*time.Minute {
		t.Fatalf("token lifetime off: %v remaining", remaining)
	}
}

func TestGetCollapsesAllInvalidShapes(t *testing.T) {
	repo := newFakeActivationRepo()
	svc := NewService(repo, &fakeAccounts{}, nil, 15*time.Minute)
	ctx := context.Background()

	expired, err := repo.Create(ctx, 5, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	used, err := repo.Create(ctx, 5, time.Now().Add(15*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	used.Used = true

	cases := []struct {
		name, token string
	}{
		{"not a uuid", "nao-é-uuid"},
		{"unknown", uuid.NewString()},
		{"expired", expired.ID.String()},
		{"already used", used.ID.String()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.Get(ctx, c.token); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("err = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestUseActivatesAccountAndConsumesToken(t *testing.T) {
	repo := newFakeActivationRepo()
	accounts := &fakeAccounts{}
	svc := NewService(repo, accounts, nil, 15*time.Minute)
	ctx := context.Background()

	created, err := repo.Create(ctx, 5, time.Now().Add(15*time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	used, err := svc.Use(ctx, created.ID.String(), "senha-segura")
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if !used.Used {
		t.Fatal("token must be marked used")
	}
	if accounts.activated[5] != "senha-segura" {
		t.Fatal("account must be activated with the chosen password")
	}

	if _, err := svc.Use(ctx, created.ID.String(), "outra-senha"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("second use err = %v, want ErrTokenInvalid", err)
	}
	if accounts.activated[5] != "senha-segura" {
		t.Fatal("second use must not re-activate the account")
	}
}
