package users

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
)

type stubAuth struct {
	principal authz.Principal
}

func (a stubAuth) Authenticate(context.Context, string) (authz.Principal, time.Time, error) {
	return a.principal, time.Now().Add(time.Hour), nil
}

func usersServer(t *testing.T, repo *fakeRepo, actor authz.Principal) *httptest.Server {
	t.Helper()

	svc := NewService(repo, &recordingActivator{})
	mw := authz.Middleware{Auth: stubAuth{principal: actor}}
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, mw)

	r := chi.NewRouter()
	handler.MountRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func patchFeatures(t *testing.T, srv *httptest.Server, targetID string, payload string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/users/"+targetID+"/features", strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: authz.SessionCookieName, Value: "token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) (name, message string) {
	t.Helper()
	var body struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Name, body.Message
}

func TestRegisterEndpoint(t *testing.T) {
	repo := newFakeRepo()
	srv := usersServer(t, repo, authz.Principal{})

	resp, err := http.Post(srv.URL+"/users", "application/json",
		strings.NewReader(`{"name":"Gabriel","email":"gabriel@example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(user.Features) != 1 || user.Features[0] != authz.FeatureReadActivationToken {
		t.Fatalf("features = %v", user.Features)
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.add(User{ID: 1, Name: "Gabriel", Email: "gabriel@example.com"})
	srv := usersServer(t, repo, authz.Principal{})

	resp, err := http.Post(srv.URL+"/users", "application/json",
		strings.NewReader(`{"name":"Outro Nome","email":"gabriel@example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if _, message := decodeError(t, resp); message != "O email informado já está sendo usado." {
		t.Fatalf("message = %q", message)
	}
}

func TestSetFeaturesRouteRules(t *testing.T) {
	manager := authz.Principal{UserID: 2, Features: authz.ManagerBundle()}
	admin := authz.Principal{UserID: 1, Features: authz.AdminBundle()}

	seed := func(repo *fakeRepo) {
		repo.add(User{ID: 1, Name: "Admin", Email: "admin@example.com", Features: authz.AdminBundle()})
		repo.add(User{ID: 2, Name: "Gerente", Email: "gerente@example.com", Features: authz.ManagerBundle()})
		repo.add(User{ID: 3, Name: "Comum", Email: "comum@example.com", Features: authz.DefaultBundle()})
	}

	cases := []struct {
		name        string
		actor       authz.Principal
		targetID    string
		payload     string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "manager edits own features",
			actor:       manager,
			targetID:    "2",
			payload:     `{"features":["read:article"]}`,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Você não pode editar suas próprias permissões.",
		},
		{
			name:        "manager edits an admin",
			actor:       manager,
			targetID:    "1",
			payload:     `{"features":["read:article"]}`,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Não é possível editar permissões de um administrador.",
		},
		{
			name:        "manager grants feature management",
			actor:       manager,
			targetID:    "3",
			payload:     `{"features":["update:user:features"]}`,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Apenas administradores podem conceder a permissão de gerenciar permissões.",
		},
		{
			name:       "admin edits a manager",
			actor:      admin,
			targetID:   "2",
			payload:    `{"features":["read:article"]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown target",
			actor:       admin,
			targetID:    "99",
			payload:     `{"features":["read:article"]}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "O usuário informado não foi encontrado no sistema.",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo)
			srv := usersServer(t, repo, c.actor)

			resp := patchFeatures(t, srv, c.targetID, c.payload)
			defer resp.Body.Close()

			if resp.StatusCode != c.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, c.wantStatus)
			}
			if c.wantMessage != "" {
				if _, message := decodeError(t, resp); message != c.wantMessage {
					t.Fatalf("message = %q, want %q", message, c.wantMessage)
				}
			}
		})
	}
}

func TestSetFeaturesRouteForManagerEditsManager(t *testing.T) {
	repo := newFakeRepo()
	repo.add(User{ID: 2, Name: "Gerente", Email: "gerente@example.com", Features: authz.ManagerBundle()})
	repo.add(User{ID: 4, Name: "Outro Gerente", Email: "outro@example.com", Features: authz.ManagerBundle()})
	srv := usersServer(t, repo, authz.Principal{UserID: 2, Features: authz.ManagerBundle()})

	resp := patchFeatures(t, srv, "4", `{"features":["read:article"]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if _, message := decodeError(t, resp); message != "Não é possível editar permissões de um gerente." {
		t.Fatalf("message = %q", message)
	}
}

func TestShowSelfEndpoint(t *testing.T) {
	repo := newFakeRepo()
	repo.add(User{ID: 3, Name: "Comum", Email: "comum@example.com", Features: authz.DefaultBundle()})
	srv := usersServer(t, repo, authz.Principal{UserID: 3, Features: authz.DefaultBundle()})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/user", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: authz.SessionCookieName, Value: "token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != 3 || user.Email != "comum@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestListUsersRequiresFeature(t *testing.T) {
	repo := newFakeRepo()
	srv := usersServer(t, repo, authz.Principal{UserID: 3, Features: authz.DefaultBundle()})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/users", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: authz.SessionCookieName, Value: "token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}
