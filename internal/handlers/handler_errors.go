package handlers

import (
	"errors"
	"net/http"

	"github.com/bizsuite/ledger_app/internal/apperrors"
)

// statusFromError maps application error classes to HTTP status codes.
// Unrecognized errors fall through to 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalanced):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrReferentialIntegrity):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrSchemaMismatch):
		// Degraded but answerable: the caller gets what the ladder could
		// produce plus a warning, never a hard failure.
		return http.StatusOK
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code > 0 {
			return appErr.Code
		}
		return http.StatusInternalServerError
	}
}
