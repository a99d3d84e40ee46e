package httpx_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

func TestErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.RespondError(rec, slog.New(slog.NewTextHandler(io.Discard, nil)), httpx.NotFound("Não achei.", "Confira o identificador."))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]any{
		"name":        "NotFoundError",
		"message":     "Não achei.",
		"action":      "Confira o identificador.",
		"status_code": float64(http.StatusNotFound),
	}
	for k, v := range want {
		if body[k] != v {
			t.Fatalf("body[%q] = %v, want %v", k, body[k], v)
		}
	}
	if len(body) != len(want) {
		t.Fatalf("body has extra fields: %v", body)
	}
}

func TestCauseStaysOutOfTheBody(t *testing.T) {
	cause := errors.New("pq: connection refused")
	apiErr := httpx.Internal(cause)

	raw, err := json.Marshal(apiErr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, v := range body {
		if s, ok := v.(string); ok && s == cause.Error() {
			t.Fatal("cause leaked into the client body")
		}
	}
	if !errors.Is(apiErr, cause) {
		t.Fatal("cause must survive errors.Is through Unwrap")
	}
}

func TestAsErrorWrapsUnknownErrors(t *testing.T) {
	got := httpx.AsError(errors.New("boom"))
	if got.Name != "InternalServerError" || got.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping %+v", got)
	}

	original := httpx.Validation("", "")
	wrapped := original.WithCause(errors.New("field"))
	if httpx.AsError(wrapped) != wrapped {
		t.Fatal("known errors must pass through unchanged")
	}
	if got := httpx.AsError(wrapped); got.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got.StatusCode)
	}
}

func TestDefaultPortugueseCopy(t *testing.T) {
	if got := httpx.Validation("", "").Message; got != "Um erro de validação ocorreu." {
		t.Fatalf("validation default message = %q", got)
	}
	if got := httpx.Unauthorized("", "").Action; got == "" {
		t.Fatal("unauthorized default action must not be empty")
	}
}
