// Package httpx provides the HTTP error contract and response helpers.
package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured error returned to API clients. Every rejected
// request serializes to {name, message, action, status_code}.
type Error struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	Action     string `json:"action"`
	StatusCode int    `json:"status_code"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an underlying error kept out of the client response.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// Validation reports malformed or conflicting input.
func Validation(message, action string) *Error {
	if message == "" {
		message = "Um erro de validação ocorreu."
	}
	if action == "" {
		action = "Ajuste os dados enviados e tente novamente."
	}
	return &Error{Name: "ValidationError", Message: message, Action: action, StatusCode: http.StatusBadRequest}
}

// Unauthorized reports a missing or invalid session where one was required.
func Unauthorized(message, action string) *Error {
	if message == "" {
		message = "Usuário não autenticado."
	}
	if action == "" {
		action = "Verifique se você está autenticado com uma sessão ativa e tente novamente."
	}
	return &Error{Name: "UnauthorizedError", Message: message, Action: action, StatusCode: http.StatusUnauthorized}
}

// Forbidden reports a principal lacking permission for the operation.
func Forbidden(message, action string) *Error {
	if message == "" {
		message = "Você não possui permissão para executar esta ação."
	}
	if action == "" {
		action = "Verifique se você possui a permissão necessária."
	}
	return &Error{Name: "ForbiddenError", Message: message, Action: action, StatusCode: http.StatusForbidden}
}

// NotFound reports an absent entity.
func NotFound(message, action string) *Error {
	if message == "" {
		message = "O recurso solicitado não foi encontrado no sistema."
	}
	if action == "" {
		action = "Verifique se os dados enviados estão corretos."
	}
	return &Error{Name: "NotFoundError", Message: message, Action: action, StatusCode: http.StatusNotFound}
}

// Internal wraps an unexpected failure, hiding the cause from the client.
func Internal(err error) *Error {
	return &Error{
		Name:       "InternalServerError",
		Message:    "Um erro interno não esperado aconteceu.",
		Action:     "Entre em contato com o suporte.",
		StatusCode: http.StatusInternalServerError,
		cause:      err,
	}
}

// AsError converts any error into a client-safe *Error.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}
