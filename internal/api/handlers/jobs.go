package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/api/middleware"
	"github.com/marcinkowskimikolaj/assetly/internal/jobs"
)

// JobsHandler exposes background job state and manual refresh triggers.
type JobsHandler struct {
	store     jobs.Store
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewJobsHandler creates a jobs handler.
func NewJobsHandler(store jobs.Store, publisher jobs.Publisher, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, publisher: publisher, log: log}
}

// ListJobs handles GET /api/jobs?kind=&status=&limit=.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := jobs.Filter{
		Kind:   jobs.Kind(r.URL.Query().Get("kind")),
		Status: jobs.Status(r.URL.Query().Get("status")),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}

	list, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, id string) {
	job, err := h.store.GetJob(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// EnqueueRefresh handles POST /api/jobs/refresh. The body selects the kind;
// snapshot jobs carry the category and value to record.
func (h *JobsHandler) EnqueueRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind     string  `json:"kind"`
		Category string  `json:"category"`
		Value    float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind := jobs.Kind(req.Kind)
	switch kind {
	case jobs.KindRebuildCache:
	case jobs.KindCaptureSnapshot:
		if req.Category == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Category is required for snapshot jobs")
			return
		}
	default:
		middleware.WriteError(w, http.StatusBadRequest, "Unknown job kind")
		return
	}

	job := &jobs.RefreshJob{Kind: kind, Category: req.Category, Value: req.Value}
	if err := h.publisher.Publish(r.Context(), job); err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to enqueue job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.ID,
		"status": string(job.Status),
	})
}
