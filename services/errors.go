package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации
	ErrValidationFailed      = errors.New("validation failed")
	ErrMissingField          = errors.New("required field is missing")
	ErrInvalidField          = errors.New("field has an invalid value")
	ErrInvalidScore          = errors.New("game score must be between 0 and 300")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrLeagueIndexOutOfRange = errors.New("league index out of range")

	// Конфликты
	ErrDuplicateUsername = errors.New("username already exists")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")

	ErrUserNotFound         = errors.New("user not found")
	ErrStorageNotConfigured = errors.New("export storage is not configured")
)

// IsValidation reports whether err is a client-side input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrLeagueIndexOutOfRange)
}
