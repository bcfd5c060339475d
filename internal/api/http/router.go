package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups the per-domain handlers the router wires up.
type Handlers struct {
	Credit  *CreditHandler
	Report  *ReportHandler
	Vehicle *VehicleHandler
	Payment *PaymentHandler
}

func NewRouter(mw *Middleware, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(mw.RateLimit)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Credit ledger
	api.Handle("/credits/balance", mw.RequireAuth(http.HandlerFunc(h.Credit.GetBalance))).Methods(http.MethodGet)
	api.Handle("/credits/add-demo", mw.RequireAuth(http.HandlerFunc(h.Credit.AddDemoCredits))).Methods(http.MethodPost)
	api.Handle("/credits/use", mw.RequireAuth(http.HandlerFunc(h.Credit.UseCredits))).Methods(http.MethodPost)
	api.Handle("/credits/transactions", mw.RequireAuth(http.HandlerFunc(h.Credit.ListTransactions))).Methods(http.MethodGet)
	api.HandleFunc("/credits/packages", h.Credit.ListPackages).Methods(http.MethodGet)

	// Report unlocks
	api.Handle("/reports/check-access/{regNr}", mw.OptionalAuth(http.HandlerFunc(h.Report.CheckAccess))).Methods(http.MethodGet)
	api.Handle("/reports/unlock", mw.RequireAuth(http.HandlerFunc(h.Report.Unlock))).Methods(http.MethodPost)

	// Vehicle data
	api.HandleFunc("/vehicle", h.Vehicle.Lookup).Methods(http.MethodGet)
	api.HandleFunc("/vehicle/{regNr}/health", h.Vehicle.HealthScore).Methods(http.MethodGet)

	// Payments
	api.Handle("/payments/checkout", mw.RequireAuth(http.HandlerFunc(h.Payment.CreateCheckout))).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", h.Payment.Webhook).Methods(http.MethodPost)

	return r
}
