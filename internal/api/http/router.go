package http

import (
	"context"
	"net/http"

	"ombrello-backend/internal/security"
	"ombrello-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Rentals   service.RentalService
	Pricing   service.PricingService
	Inventory service.InventoryService
	Vendors   service.VendorService
	Admin     service.AdminService
}

type Handler struct {
	svc Services
	db  Pinger
}

// NewRouter registers every route under its security name.
func NewRouter(svc Services, tokens security.TokenManager, db Pinger) *mux.Router {
	h := &Handler{svc: svc, db: db}
	auth := &authMiddleware{tokenManager: tokens}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, recoveryMiddleware, accessLogMiddleware, auth.Middleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet).Name("health")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/pricing/simple", h.handleSimplePrice).Methods(http.MethodGet).Name("pricing.simple")
	api.HandleFunc("/u/{qr_code}", h.handleResolveQRCode).Methods(http.MethodGet).Name("qr.resolve")

	api.HandleFunc("/rentals/assign", h.handleAssign).Methods(http.MethodPost).Name("rentals.assign")
	api.HandleFunc("/returns", h.handleReturn).Methods(http.MethodPost).Name("rentals.return")
	api.HandleFunc("/rentals/my-active", h.handleMyActiveRentals).Methods(http.MethodGet).Name("rentals.myActive")
	api.HandleFunc("/umbrellas/report-broken", h.handleReportBroken).Methods(http.MethodPost).Name("umbrellas.reportBroken")

	api.HandleFunc("/vendors/locations", h.handleVendorLocations).Methods(http.MethodGet).Name("vendors.locations")
	api.HandleFunc("/vendors/me", h.handleVendorMe).Methods(http.MethodGet).Name("vendors.me")
	api.HandleFunc("/vendors/me/location", h.handleUpdateVendorLocation).Methods(http.MethodPatch).Name("vendors.me.location")
	api.HandleFunc("/vendors/me/earnings/summary", h.handleEarningsSummary).Methods(http.MethodGet).Name("vendors.earnings.summary")
	api.HandleFunc("/vendors/me/earnings/recent", h.handleRecentEarnings).Methods(http.MethodGet).Name("vendors.earnings.recent")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/umbrellas", h.handleCreateUmbrella).Methods(http.MethodPost).Name("admin.umbrellas.create")
	admin.HandleFunc("/umbrellas/bulk", h.handleBulkCreateUmbrellas).Methods(http.MethodPost).Name("admin.umbrellas.bulk")
	admin.HandleFunc("/umbrellas/{code}", h.handleGetUmbrella).Methods(http.MethodGet).Name("admin.umbrellas.get")
	admin.HandleFunc("/umbrellas/{code}", h.handleUpdateUmbrella).Methods(http.MethodPatch).Name("admin.umbrellas.update")
	admin.HandleFunc("/umbrellas/{code}", h.handleRetireUmbrella).Methods(http.MethodDelete).Name("admin.umbrellas.retire")
	admin.HandleFunc("/users/{id}/status", h.handleSetUserStatus).Methods(http.MethodPatch).Name("admin.users.status")
	admin.HandleFunc("/vendors/{id}/status", h.handleSetVendorStatus).Methods(http.MethodPatch).Name("admin.vendors.status")
	admin.HandleFunc("/metrics/summary", h.handleMetricsSummary).Methods(http.MethodGet).Name("admin.metrics.summary")

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
