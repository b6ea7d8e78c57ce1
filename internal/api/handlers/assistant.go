// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/marcinkowskimikolaj/assetly/internal/api/middleware"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/router"
	"github.com/marcinkowskimikolaj/assetly/internal/logger"
)

// AssistantHandler serves the chat endpoint. It owns the shared aggregate
// cache and one conversation session per session ID. Request logging uses
// the request-scoped logger placed in the context by the middleware chain.
type AssistantHandler struct {
	assistant *assistant.Assistant

	mu       sync.Mutex
	cache    *cache.Cache
	sessions map[string]*router.Session
}

// NewAssistantHandler creates the handler with an initial cache build.
func NewAssistantHandler(a *assistant.Assistant, initial *cache.Cache) *AssistantHandler {
	return &AssistantHandler{
		assistant: a,
		cache:     initial,
		sessions:  make(map[string]*router.Session),
	}
}

// SetCache swaps in a freshly built cache. Existing sessions see the new
// aggregates on their next question.
func (h *AssistantHandler) SetCache(c *cache.Cache) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = c
	for _, sess := range h.sessions {
		sess.Cache = c
	}
}

// Cache returns the current aggregate cache.
func (h *AssistantHandler) Cache() *cache.Cache {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cache
}

func (h *AssistantHandler) session(id string) *router.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[id]
	if !ok {
		sess = router.NewSession(h.cache)
		h.sessions[id] = sess
	}
	return sess
}

// Ask handles POST /api/assistant/ask.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string `json:"query"`
		SessionID string `json:"session_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Query is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	sess := h.session(req.SessionID)

	reply, err := h.assistant.Ask(r.Context(), sess, req.Query)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("Assistant ask failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": req.SessionID,
		"answer":     reply.Answer,
		"plan":       reply.Plan,
		"results":    reply.Results,
		"facts":      reply.Capsule,
	})
}
