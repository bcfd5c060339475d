package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CheckAccess gates the report UI. It never hard-fails: an anonymous
// caller sees logged-out-no-access, and a backend error degrades to
// no-access so the page still renders a paywall.
func (h *ReportHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	regNr := mux.Vars(r)["regNr"]
	reportType := domain.ReportType(r.URL.Query().Get("type"))
	if reportType == "" {
		reportType = domain.ReportTypeSingle
	}

	ident, loggedIn := IdentityFromContext(r.Context())
	if !loggedIn {
		respondJSON(w, http.StatusOK, &domain.AccessStatus{HasAccess: false, IsLoggedIn: false})
		return
	}

	status, err := h.reportService.CheckAccess(r.Context(), ident.UserID, regNr, reportType)
	if err != nil {
		logger.ErrorContext(r.Context(), "access check failed, degrading to no access",
			"registration_number", regNr, "error", err)
		respondJSON(w, http.StatusOK, &domain.AccessStatus{HasAccess: false, IsLoggedIn: true})
		return
	}

	respondJSON(w, http.StatusOK, status)
}

type unlockRequest struct {
	RegistrationNumber     string `json:"registration_number"`
	ReportType             string `json:"report_type"`
	ComparisonRegistration string `json:"comparison_registration"`
}

func (h *ReportHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}
	reportType := domain.ReportType(req.ReportType)
	if reportType == "" {
		reportType = domain.ReportTypeSingle
	}

	result, err := h.reportService.Unlock(r.Context(), ident.UserID, req.RegistrationNumber, reportType, req.ComparisonRegistration)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if result.AlreadyUnlocked {
		respondJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"already_unlocked": true,
			"message":          "Rapporten är redan upplåst",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"credits_used":      result.CreditsUsed,
		"remaining_credits": result.RemainingCredits,
		"message":           fmt.Sprintf("Rapport upplåst för %d kredit", result.CreditsUsed),
	})
}
