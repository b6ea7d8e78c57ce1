package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/api/middleware"
	"github.com/marcinkowskimikolaj/assetly/internal/fx"
	"github.com/marcinkowskimikolaj/assetly/internal/networth"
	"github.com/marcinkowskimikolaj/assetly/internal/sheets"
)

// NetWorthHandler handles snapshots, milestones and subscriptions.
type NetWorthHandler struct {
	svc     *networth.Service
	records sheets.RecordsRepository
	rates   *fx.Rates
	log     zerolog.Logger
}

// NewNetWorthHandler creates a net-worth handler.
func NewNetWorthHandler(svc *networth.Service, records sheets.RecordsRepository, rates *fx.Rates, log zerolog.Logger) *NetWorthHandler {
	return &NetWorthHandler{svc: svc, records: records, rates: rates, log: log}
}

// CaptureSnapshot handles POST /api/networth/snapshots.
func (h *NetWorthHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string  `json:"category"`
		Value    float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Category is required")
		return
	}

	snap, err := h.svc.CaptureSnapshot(r.Context(), req.Category, req.Value)
	if err != nil {
		if errors.Is(err, networth.ErrAlreadyCaptured) {
			middleware.WriteError(w, http.StatusConflict, "Snapshot already captured today")
			return
		}
		h.log.Error().Err(err).Msg("Failed to capture snapshot")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to capture snapshot")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, snap)
}

// GrowthReport handles GET /api/networth/growth?months=6.
func (h *NetWorthHandler) GrowthReport(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))

	report, err := h.svc.GrowthReport(r.Context(), months)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build growth report")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build growth report")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report)
}

// ListMilestones handles GET /api/milestones.
func (h *NetWorthHandler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.svc.Milestones(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list milestones")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list milestones")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"milestones": milestones,
		"count":      len(milestones),
	})
}

// CreateMilestone handles POST /api/milestones.
func (h *NetWorthHandler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string  `json:"category"`
		Target   float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Category is required")
		return
	}

	m, err := h.svc.CreateMilestone(r.Context(), req.Category, req.Target)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, m)
}

// DeleteMilestone handles DELETE /api/milestones/{id}.
func (h *NetWorthHandler) DeleteMilestone(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteMilestone(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete milestone")
		middleware.WriteError(w, http.StatusNotFound, "Milestone not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// ListSubscriptions handles GET /api/subscriptions. The monthly total is
// reported in the base currency.
func (h *NetWorthHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.records.ListSubscriptions(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list subscriptions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list subscriptions")
		return
	}

	var monthlyTotal float64
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		cost, err := h.rates.Convert(sub.MonthlyCost, sub.Currency)
		if err != nil {
			cost = sub.MonthlyCost
		}
		monthlyTotal += cost
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subs,
		"count":         len(subs),
		"monthly_total": monthlyTotal,
		"currency":      h.rates.Base(),
	})
}
