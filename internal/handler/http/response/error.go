package response

import (
	"errors"
	"net/http"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/auth"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/profile"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrStoreScopeRequired):
		Forbidden(w, "Store access required")
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
