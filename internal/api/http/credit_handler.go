package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/service"
)

type CreditHandler struct {
	creditService service.CreditService
}

func NewCreditHandler(creditService service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// GetBalance returns the user's credit balance, creating the profile on
// first read.
func (h *CreditHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	profile, err := h.creditService.GetBalance(r.Context(), ident)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"credits":   profile.Credits,
		"email":     profile.Email,
		"full_name": profile.FullName,
	})
}

type addDemoCreditsRequest struct {
	Amount int `json:"amount"`
}

func (h *CreditHandler) AddDemoCredits(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req addDemoCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	newBalance, err := h.creditService.AddDemoCredits(r.Context(), ident, req.Amount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"credits_added": req.Amount,
		"new_balance":   newBalance,
		"message":       fmt.Sprintf("%d krediter tillagda", req.Amount),
	})
}

type useCreditsRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	ReferenceID string `json:"reference_id"`
}

func (h *CreditHandler) UseCredits(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req useCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	remaining, err := h.creditService.UseCredits(r.Context(), ident.UserID, req.Amount, req.Description, req.ReferenceID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"credits_used":      req.Amount,
		"remaining_credits": remaining,
	})
}

func (h *CreditHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = service.DefaultTransactionPageSize
	}
	if limit > service.MaxTransactionPageSize {
		limit = service.MaxTransactionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := h.creditService.ListTransactions(r.Context(), ident.UserID, limit, offset)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []domain.CreditTransaction{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// packageView adds the kronor-denominated display fields clients render.
type packageView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	PriceSEK     int64  `json:"price_sek"`
	PriceKr      int64  `json:"price_kr"`
	PriceDisplay string `json:"price_display"`
	Description  string `json:"description"`
}

func (h *CreditHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.creditService.ListPackages(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	views := make([]packageView, 0, len(packages))
	for _, pkg := range packages {
		views = append(views, packageView{
			ID:           pkg.ID,
			Name:         pkg.Name,
			Credits:      pkg.Credits,
			PriceSEK:     pkg.PriceSEK,
			PriceKr:      pkg.PriceSEK / 100,
			PriceDisplay: fmt.Sprintf("%d kr", pkg.PriceSEK/100),
			Description:  pkg.Description,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"packages": views})
}
