package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/openalpha/amm-dex/api/types"
)

// SwapHandler handles swap and pricing HTTP requests
type SwapHandler struct {
	service types.SwapService
}

// NewSwapHandler creates a new swap handler
func NewSwapHandler(service types.SwapService) *SwapHandler {
	return &SwapHandler{service: service}
}

// HandleSpotPrice handles GET /v1/pools/{id}/spot-price
func (h *SwapHandler) HandleSpotPrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	query := r.URL.Query()
	denomIn := query.Get("denom_in")
	denomOut := query.Get("denom_out")
	if denomIn == "" || denomOut == "" {
		writeError(w, http.StatusBadRequest, "missing_denom", "denom_in and denom_out are required")
		return
	}

	withFee := true
	if feeStr := query.Get("with_fee"); feeStr != "" {
		parsed, err := strconv.ParseBool(feeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_with_fee", "with_fee must be a boolean")
			return
		}
		withFee = parsed
	}

	resp, err := h.service.GetSpotPrice(r.Context(), poolID, denomIn, denomOut, withFee)
	if err != nil {
		writeError(w, errorStatus(err), "spot_price_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleQuote handles GET /v1/pools/{id}/quote
//
// Exactly one of amount_in and amount_out must be provided. The quote is
// computed against current pool state and does not reserve anything.
func (h *SwapHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	poolID := r.Header.Get("X-Pool-ID")
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	query := r.URL.Query()
	req := &types.SwapQuoteRequest{
		PoolID:    poolID,
		DenomIn:   query.Get("denom_in"),
		DenomOut:  query.Get("denom_out"),
		AmountIn:  query.Get("amount_in"),
		AmountOut: query.Get("amount_out"),
	}
	if req.DenomIn == "" || req.DenomOut == "" {
		writeError(w, http.StatusBadRequest, "missing_denom", "denom_in and denom_out are required")
		return
	}

	resp, err := h.service.QuoteSwap(r.Context(), req)
	if err != nil {
		writeError(w, errorStatus(err), "quote_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSwap handles POST /v1/pools/{id}/swap
func (h *SwapHandler) HandleSwap(w http.ResponseWriter, r *http.Request) {
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

	var req types.SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	// Get sender from header or body
	if req.Sender == "" {
		req.Sender = r.Header.Get("X-Sender-Address")
	}
	if req.Sender == "" {
		writeError(w, http.StatusBadRequest, "missing_sender", "sender address is required")
		return
	}
	if req.DenomIn == "" || req.DenomOut == "" {
		writeError(w, http.StatusBadRequest, "missing_denom", "denom_in and denom_out are required")
		return
	}
	if req.AmountIn == "" {
		writeError(w, http.StatusBadRequest, "missing_amount", "amount_in is required")
		return
	}

	resp, err := h.service.Swap(r.Context(), poolID, &req)
	if err != nil {
		writeError(w, errorStatus(err), "swap_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
