package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/openalpha/amm-dex/api/types"
)

// ShareHandler handles pool share HTTP requests
type ShareHandler struct {
	service types.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(service types.ShareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// HandleShares handles GET /v1/pools/{id}/shares
func (h *ShareHandler) HandleShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	// Get address from query param or header
	address := r.URL.Query().Get("address")
	if address == "" {
		address = r.Header.Get("X-Sender-Address")
	}
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing_address", "address is required")
		return
	}

	resp, err := h.service.GetShares(r.Context(), poolID, address)
	if err != nil {
		writeError(w, errorStatus(err), "get_shares_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleJoin handles POST /v1/pools/{id}/join
func (h *ShareHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		// continue below
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	var req types.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.Sender == "" {
		req.Sender = r.Header.Get("X-Sender-Address")
	}
	if req.Sender == "" {
		writeError(w, http.StatusBadRequest, "missing_sender", "sender address is required")
		return
	}
	if req.PoolAmountOut == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_amount", "pool_amount_out is required")
		return
	}

	resp, err := h.service.Join(r.Context(), poolID, &req)
	if err != nil {
		writeError(w, errorStatus(err), "join_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleExit handles POST /v1/pools/{id}/exit
func (h *ShareHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		// continue below
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	var req types.ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.Sender == "" {
		req.Sender = r.Header.Get("X-Sender-Address")
	}
	if req.Sender == "" {
		writeError(w, http.StatusBadRequest, "missing_sender", "sender address is required")
		return
	}
	if req.PoolAmountIn == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_amount", "pool_amount_in is required")
		return
	}

	resp, err := h.service.Exit(r.Context(), poolID, &req)
	if err != nil {
		writeError(w, errorStatus(err), "exit_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
