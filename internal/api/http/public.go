package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) handleSimplePrice(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lng, err := queryFloat(r, "lng")
	if err != nil {
		writeError(w, r, err)
		return
	}

	quote, err := h.svc.Pricing.Quote(r.Context(), lat, lng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (h *Handler) handleResolveQRCode(w http.ResponseWriter, r *http.Request) {
	umbrella, err := h.svc.Inventory.ResolveQRCode(r.Context(), mux.Vars(r)["qr_code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"code":      umbrella.Code,
		"qr_code":   umbrella.QRCode,
		"vendor_id": umbrella.VendorID,
		"shop_name": umbrella.ShopName,
		"status":    umbrella.Status,
	})
}
