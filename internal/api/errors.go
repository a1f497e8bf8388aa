package api

import (
	"errors"
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/service/auth"
	"github.com/rmsato/todoapi/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes
// without leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. Ownership mismatches surface as not-found
	// upstream, so they land here rather than at 403.
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTodoNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// given error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred."

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRevokedToken):
		return "Invalid refresh token."

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token."

	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials."

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found."

	case errors.Is(err, store.ErrTodoNotFound):
		return "Not found."

	case errors.Is(err, store.ErrEmailExists):
		return "A user is already registered with this e-mail address."

	case isDomainValidationError(err):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Invalid request data."

	default:
		return "An unexpected error occurred."
	}
}

// isDomainValidationError reports whether err is one of the entity
// validation sentinels. Their messages are written for end users, so
// they are safe to return verbatim.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrNameTooLong,
		domain.ErrBlankTitle,
		domain.ErrTitleTooLong,
		domain.ErrInvalidPriority,
		domain.ErrInvalidProgress,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// HandleAPIError writes an error response for err. Domain validation
// errors become field-keyed payloads; everything else maps to a detail
// message. overrideMessage replaces the mapped detail when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		shared.RespondWithFieldErrors(w, r, shared.FieldErrors{
			validationErr.Field: {validationErr.Message},
		})
		return
	}

	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), message, err)
}
