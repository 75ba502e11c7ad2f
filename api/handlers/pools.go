package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/openalpha/amm-dex/api/types"
)

// PoolHandler handles pool browsing HTTP requests
type PoolHandler struct {
	service types.PoolService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(service types.PoolService) *PoolHandler {
	return &PoolHandler{service: service}
}

// HandlePools handles /v1/pools endpoint (GET for list, POST for create)
func (h *PoolHandler) HandlePools(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPools(w, r)
	case http.MethodPost:
		h.createPool(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandlePool handles GET /v1/pools/{id}
func (h *PoolHandler) HandlePool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	pool, err := h.service.GetPool(r.Context(), poolID)
	if err != nil {
		writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"pool": pool})
}

// listPools handles GET /v1/pools
func (h *PoolHandler) listPools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &types.ListPoolsRequest{
		Controller: query.Get("controller"),
		Cursor:     query.Get("cursor"),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.service.ListPools(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_pools_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// createPool handles POST /v1/pools
func (h *PoolHandler) createPool(w http.ResponseWriter, r *http.Request) {
	var req types.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	// Get controller from header or body
	if req.Controller == "" {
		req.Controller = r.Header.Get("X-Sender-Address")
	}
	if req.Controller == "" {
		writeError(w, http.StatusBadRequest, "missing_controller", "controller address is required")
		return
	}
	if len(req.Tokens) == 0 {
		writeError(w, http.StatusBadRequest, "missing_tokens", "tokens are required")
		return
	}
	for _, tok := range req.Tokens {
		if tok.Denom == "" || tok.Balance == "" || tok.Weight == "" {
			writeError(w, http.StatusBadRequest, "invalid_token", "every token needs denom, balance and weight")
			return
		}
	}

	resp, err := h.service.CreatePool(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "create_pool_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// errorStatus maps a service error to an HTTP status code
func errorStatus(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
