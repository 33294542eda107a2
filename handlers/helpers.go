package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/bowling-tracker/middleware"
	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
)

type jsonResponse map[string]interface{}

const maxBodyBytes = 1_048_576 // 1MB

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("%w: body contains badly-formed JSON (at character %d)", services.ErrValidationFailed, syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: body contains badly-formed JSON", services.ErrValidationFailed)
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("%w: %s must be a whole number", services.ErrMissingField, unmarshalTypeError.Field)
			}
			return fmt.Errorf("%w: body contains incorrect JSON type (at character %d)", services.ErrValidationFailed, unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: body must not be empty", services.ErrValidationFailed)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("%w: body contains unknown key %s", services.ErrValidationFailed, fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("%w: body must not be larger than %d bytes", services.ErrValidationFailed, maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must only contain a single JSON value", services.ErrValidationFailed)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, message string) {
	env := jsonResponse{"success": false, "message": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		logger.Error("failed to write error response", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logServerError(r, logger, err)
	errorResponse(w, r, logger, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func logServerError(r *http.Request, logger *slog.Logger, err error) {
	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
}

// statusForError maps service errors to HTTP status codes. Unknown errors are 500.
func statusForError(err error) int {
	switch {
	case services.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrStorageNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// mapServiceErrorToHTTP writes the JSON error for err.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		serverErrorResponse(w, r, logger, err)
		return
	}
	errorResponse(w, r, logger, status, userMessage(err))
}

// userMessage is the text shown to the client for a mapped error.
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return http.StatusText(statusForError(err))
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func currentUser(r *http.Request) *models.User {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		// Routes using this are always mounted behind a session middleware.
		panic("handlers: no user in request context")
	}
	return user
}
