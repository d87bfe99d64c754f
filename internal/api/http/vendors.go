package http

import (
	"net/http"
	"strings"
	"time"

	"ombrello-backend/internal/domain"
)

type vendorResponse struct {
	ID            int64            `json:"id"`
	Email         string           `json:"email,omitempty"`
	Telephone     string           `json:"telephone,omitempty"`
	ShopName      string           `json:"shop_name"`
	ShopOwnerName string           `json:"shop_owner_name,omitempty"`
	Status        string           `json:"status"`
	Location      *domain.GeoPoint `json:"location"`
	Address       *string          `json:"address,omitempty"`
}

func newVendorResponse(v *domain.Vendor) vendorResponse {
	return vendorResponse{
		ID:            v.ID,
		Email:         v.Email,
		Telephone:     v.Telephone,
		ShopName:      v.ShopName,
		ShopOwnerName: v.ShopOwnerName,
		Status:        string(v.Status),
		Location:      v.Location(),
		Address:       v.Address,
	}
}

// vendorPin is the public map entry for a vendor.
type vendorPin struct {
	ID       int64           `json:"id"`
	ShopName string          `json:"shop_name"`
	Location domain.GeoPoint `json:"location"`
	Address  *string         `json:"address,omitempty"`
}

type locationRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address *string  `json:"address"`
}

func (h *Handler) handleVendorMe(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vendor, err := h.svc.Vendors.GetProfile(r.Context(), p.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newVendorResponse(vendor))
}

func (h *Handler) handleUpdateVendorLocation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body locationRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.Lat == nil || body.Lng == nil {
		writeError(w, r, domain.InvalidInput("lat and lng are required"))
		return
	}

	vendor, err := h.svc.Vendors.UpdateLocation(r.Context(), p.ID, *body.Lat, *body.Lng, body.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newVendorResponse(vendor))
}

func (h *Handler) handleVendorLocations(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	vendors, err := h.svc.Vendors.ListLocations(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pins := make([]vendorPin, 0, len(vendors))
	for i := range vendors {
		loc := vendors[i].Location()
		if loc == nil {
			continue
		}
		pins = append(pins, vendorPin{
			ID:       vendors[i].ID,
			ShopName: vendors[i].ShopName,
			Location: *loc,
			Address:  vendors[i].Address,
		})
	}
	respondJSON(w, http.StatusOK, pins)
}

func (h *Handler) handleEarningsSummary(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := queryTime(r, "date_from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryTime(r, "date_to")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to = endOfDayIfDate(r.URL.Query().Get("date_to"), to)

	summary, err := h.svc.Vendors.EarningsSummary(r.Context(), p.ID, from, to, r.URL.Query().Get("tz"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// endOfDayIfDate widens a bare YYYY-MM-DD upper bound to the last instant of that day.
func endOfDayIfDate(raw string, t *time.Time) *time.Time {
	if t == nil || len(strings.TrimSpace(raw)) != len(time.DateOnly) {
		return t
	}
	end := t.AddDate(0, 0, 1).Add(-time.Microsecond)
	return &end
}

func (h *Handler) handleRecentEarnings(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	recent, err := h.svc.Vendors.RecentEarnings(r.Context(), p.ID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recent)
}
