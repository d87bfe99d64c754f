package http

import (
	"net/http"
	"strings"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/repository"
	"ombrello-backend/internal/service"

	"github.com/gorilla/mux"
)

type createUmbrellaRequest struct {
	Code      string `json:"code"`
	VendorID  int64  `json:"vendor_id"`
	ShopName  string `json:"shop_name"`
	Status    string `json:"status"`
	Condition string `json:"condition"`
}

type bulkUmbrellasRequest struct {
	VendorID int64  `json:"vendor_id"`
	Count    int    `json:"count"`
	ShopName string `json:"shop_name"`
}

type updateUmbrellaRequest struct {
	Status    *string `json:"status"`
	Condition *string `json:"condition"`
	ShopName  *string `json:"shop_name"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleCreateUmbrella(w http.ResponseWriter, r *http.Request) {
	var body createUmbrellaRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req := service.CreateUmbrellaRequest{Code: body.Code, VendorID: body.VendorID, ShopName: body.ShopName}
	if strings.TrimSpace(body.Status) != "" {
		st, err := domain.ParseUmbrellaStatus(body.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Status = st
	}
	if strings.TrimSpace(body.Condition) != "" {
		c, err := domain.ParseUmbrellaCondition(body.Condition)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.Condition = c
	}

	umbrella, err := h.svc.Inventory.CreateUmbrella(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, umbrella)
}

func (h *Handler) handleBulkCreateUmbrellas(w http.ResponseWriter, r *http.Request) {
	var body bulkUmbrellasRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	umbrellas, err := h.svc.Inventory.CreateUmbrellasForShop(r.Context(), body.VendorID, body.Count, body.ShopName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, umbrellas)
}

func (h *Handler) handleGetUmbrella(w http.ResponseWriter, r *http.Request) {
	umbrella, err := h.svc.Inventory.GetUmbrella(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, umbrella)
}

func (h *Handler) handleUpdateUmbrella(w http.ResponseWriter, r *http.Request) {
	var body updateUmbrellaRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	var upd repository.UmbrellaUpdate
	if body.Status != nil {
		st, err := domain.ParseUmbrellaStatus(*body.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Status = &st
	}
	if body.Condition != nil {
		c, err := domain.ParseUmbrellaCondition(*body.Condition)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Condition = &c
	}
	upd.ShopName = body.ShopName

	umbrella, err := h.svc.Inventory.UpdateUmbrella(r.Context(), mux.Vars(r)["code"], upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, umbrella)
}

func (h *Handler) handleRetireUmbrella(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Inventory.RetireUmbrella(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body statusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParseUserStatus(body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.svc.Admin.SetUserStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) handleSetVendorStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body statusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParseVendorStatus(body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vendor, err := h.svc.Admin.SetVendorStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newVendorResponse(vendor))
}

func (h *Handler) handleMetricsSummary(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "date_from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryDate(r, "date_to")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.svc.Admin.MetricsSummary(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
