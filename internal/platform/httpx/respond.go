package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError serializes err using the uniform error body. Internal
// causes are logged server-side and never reach the client.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	apiErr := AsError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", slog.Any("error", err))
	}
	JSON(w, apiErr.StatusCode, apiErr)
}

// DecodeJSON decodes the request body into target, rejecting unknown
// fields and trailing garbage.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return Validation("O corpo da requisição não é um JSON válido.", "Envie um JSON válido e tente novamente.").WithCause(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Validation("O corpo da requisição contém dados além do JSON esperado.", "Envie um único objeto JSON.")
	}
	return nil
}
