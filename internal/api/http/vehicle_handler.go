package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bilio-backend/internal/service"
)

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Lookup proxies the upstream vehicle data provider, passing its JSON
// through untouched.
func (h *VehicleHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lookupType := query.Get("type")
	country := query.Get("country")
	id := query.Get("id")

	if lookupType == "" || country == "" || id == "" {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "type, country and id are required")
		return
	}

	payload, err := h.vehicleService.Lookup(r.Context(), lookupType, country, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *VehicleHandler) HealthScore(w http.ResponseWriter, r *http.Request) {
	regNr := mux.Vars(r)["regNr"]
	if regNr == "" {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "registration number is required")
		return
	}

	result, err := h.vehicleService.HealthScore(r.Context(), regNr)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
