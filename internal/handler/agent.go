package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// AgentHandler handles the admin CRUD surface for reader personas.
// Every route requires the agents-admin permission.
type AgentHandler struct {
	agentService services.AgentService
	logger       *slog.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService services.AgentService, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger,
	}
}

// ListAgents retrieves all agents
// GET /api/agents
func (h *AgentHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	if !requireAgentsAdmin(w, r) {
		return
	}

	agents, err := h.agentService.ListAgents(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, agents)
}

// GetAgent retrieves an agent by ID
// GET /api/agents/{id}
func (h *AgentHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	if !requireAgentsAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "agent ID is required")
		return
	}

	agent, err := h.agentService.GetAgent(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, agent)
}

// CreateAgent creates a new agent
// POST /api/agents
func (h *AgentHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	if !requireAgentsAdmin(w, r) {
		return
	}

	var req services.CreateAgentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.agentService.CreateAgent(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, agent)
}

// UpdateAgent partially updates an agent
// PATCH /api/agents/{id}
func (h *AgentHandler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	if !requireAgentsAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "agent ID is required")
		return
	}

	var req services.UpdateAgentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.agentService.UpdateAgent(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, agent)
}

// DeleteAgent removes an agent, preserving its comments as authorless
// DELETE /api/agents/{id}
func (h *AgentHandler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	if !requireAgentsAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "agent ID is required")
		return
	}

	if err := h.agentService.DeleteAgent(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
