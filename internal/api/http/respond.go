package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/service"
)

const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	ErrCodeLedgerError         = "LEDGER_ERROR"
	ErrCodeRateLimit           = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// respondServiceError maps domain and service errors to the HTTP error
// taxonomy. Unknown errors are logged with context and surfaced as a
// generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidArg *service.InvalidArgumentError
	if errors.As(err, &invalidArg) {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, invalidArg.Error())
		return
	}

	var insufficient *domain.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":            "Otillräckligt antal krediter",
			"code":             ErrCodeInsufficientCredits,
			"current_credits":  insufficient.Current,
			"required_credits": insufficient.Required,
		})
		return
	}

	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) {
		respondError(w, http.StatusBadRequest, ErrCodeLedgerError, ledgerErr.Error())
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
		return
	}

	if errors.Is(err, service.ErrDemoTopupDisabled) {
		respondError(w, http.StatusForbidden, ErrCodeForbidden, "demo top-up is disabled")
		return
	}

	logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
}
