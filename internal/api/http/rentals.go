package http

import (
	"net/http"

	"ombrello-backend/internal/service"

	"github.com/shopspring/decimal"
)

type assignRequest struct {
	Code     string           `json:"code"`
	UserID   int64            `json:"user_id"`
	Fee      *decimal.Decimal `json:"fee"`
	ShopName string           `json:"shop_name"`
}

type codeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	vendor, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body assignRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req := service.AssignRequest{Code: body.Code, UserID: body.UserID, ShopName: body.ShopName}
	if body.Fee != nil {
		req.Fee = decimal.NewNullDecimal(*body.Fee)
	}

	rental, err := h.svc.Rentals.Assign(r.Context(), vendor.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	vendor, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body codeRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.svc.Rentals.Return(r.Context(), vendor.ID, body.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *Handler) handleMyActiveRentals(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rentals, err := h.svc.Rentals.ListMyActive(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *Handler) handleReportBroken(w http.ResponseWriter, r *http.Request) {
	vendor, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body codeRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	umbrella, err := h.svc.Inventory.ReportBroken(r.Context(), vendor.ID, body.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"code":      umbrella.Code,
		"status":    umbrella.Status,
		"condition": umbrella.Condition,
	})
}
