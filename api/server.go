package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openalpha/amm-dex/api/handlers"
	"github.com/openalpha/amm-dex/api/middleware"
	"github.com/openalpha/amm-dex/api/types"
	"github.com/openalpha/amm-dex/api/websocket"
	"github.com/openalpha/amm-dex/metrics"
	wptypes "github.com/openalpha/amm-dex/x/weightedpool/types"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config
	mockMode   bool

	// Services
	poolService  types.PoolService
	swapService  types.SwapService
	shareService types.ShareService
	events       types.EventSource

	// Handlers
	poolHandler  *handlers.PoolHandler
	swapHandler  *handlers.SwapHandler
	shareHandler *handlers.ShareHandler

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // For testing purposes
}

// DefaultConfig returns default configuration
// NOTE: MockMode defaults to false (keeper mode) for production safety.
// Use --mock flag explicitly for development/testing with mock data.
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MockMode:     false, // Default to keeper mode - use --mock for development
	}
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	// Create mock service (default for now)
	mockService := NewMockService()

	// Create rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	s := &Server{
		config:       config,
		wsServer:     websocket.NewServer(wsConfig),
		mockMode:     config.MockMode,
		poolService:  mockService,
		swapService:  mockService,
		shareService: mockService,
		events:       mockService,
		rateLimiter:  rateLimiter,
	}

	// Create handlers
	s.poolHandler = handlers.NewPoolHandler(s.poolService)
	s.swapHandler = handlers.NewSwapHandler(s.swapService)
	s.shareHandler = handlers.NewShareHandler(s.shareService)

	return s
}

// NewServerWithServices creates a new API server with custom services
func NewServerWithServices(config *Config, poolSvc types.PoolService, swapSvc types.SwapService, shareSvc types.ShareService, events types.EventSource) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	// Create rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	s := &Server{
		config:       config,
		wsServer:     websocket.NewServer(wsConfig),
		mockMode:     config.MockMode,
		poolService:  poolSvc,
		swapService:  swapSvc,
		shareService: shareSvc,
		events:       events,
		rateLimiter:  rateLimiter,
	}

	// Create handlers
	s.poolHandler = handlers.NewPoolHandler(s.poolService)
	s.swapHandler = handlers.NewSwapHandler(s.swapService)
	s.shareHandler = handlers.NewShareHandler(s.shareService)

	return s
}

// NewServerWithKeeperService creates an API server backed by the real pool keeper
// running against an in-memory store
func NewServerWithKeeperService(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config.MockMode = false

	keeperService := NewKeeperService()

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	// Create rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	s := &Server{
		config:       config,
		wsServer:     websocket.NewServer(wsConfig),
		mockMode:     false,
		poolService:  keeperService,
		swapService:  keeperService,
		shareService: keeperService,
		events:       keeperService,
		rateLimiter:  rateLimiter,
	}

	// Create handlers
	s.poolHandler = handlers.NewPoolHandler(s.poolService)
	s.swapHandler = handlers.NewSwapHandler(s.swapService)
	s.shareHandler = handlers.NewShareHandler(s.shareService)

	return s, nil
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health check (support both /health and /v1/health for compatibility)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Pool parameter limits (read-only)
	mux.HandleFunc("/v1/limits", s.handleLimits)

	// Pool endpoints. The swap limiter only meters POST submissions, so it
	// can wrap the whole subtree.
	poolsHandler := http.Handler(http.HandlerFunc(s.poolHandler.HandlePools))
	poolRoutes := http.Handler(http.HandlerFunc(s.handlePoolRoutes))
	if !s.config.DisableRateLimit {
		swapLimit := middleware.SwapRateLimitMiddleware(s.rateLimiter)
		poolsHandler = swapLimit(poolsHandler)
		poolRoutes = swapLimit(poolRoutes)
	}
	mux.Handle("/v1/pools", poolsHandler)
	mux.Handle("/v1/pools/", poolRoutes)

	// WebSocket
	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain: CORS -> Metrics -> RateLimit -> Handler
	var handler http.Handler
	if s.config.DisableRateLimit {
		handler = corsMiddleware(metricsMiddleware(mux))
	} else {
		handler = corsMiddleware(
			metricsMiddleware(
				middleware.RateLimitMiddleware(s.rateLimiter)(mux),
			),
		)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.wsServer.GetHub().Run()

	// Start pool state broadcaster
	go s.startPoolBroadcaster()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	log.Printf("Pool endpoints enabled: /v1/pools, /v1/pools/{id}/swap, /v1/pools/{id}/join, /v1/pools/{id}/exit")
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	} else {
		log.Printf("Rate limiting enabled: %d req/s per IP", 100)
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "keeper"
	modeDescription := "Using in-memory pool keeper (standalone mode)"
	if s.mockMode {
		mode = "mock"
		modeDescription = "Using mock data for development/testing"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"timestamp":        time.Now().Unix(),
		"mode":             mode,
		"mode_description": modeDescription,
		"warning":          "This API uses in-memory storage. For production, connect to a running chain.",
	})
}

// handleLimits handles GET /v1/limits
func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"min_bound_tokens": wptypes.MinBoundTokens,
		"max_bound_tokens": wptypes.MaxBoundTokens,
		"min_weight":       wptypes.MinWeight.String(),
		"max_weight":       wptypes.MaxWeight.String(),
		"max_total_weight": wptypes.MaxTotalWeight.String(),
		"min_balance":      wptypes.MinBalance.String(),
		"min_swap_fee":     wptypes.MinSwapFee.String(),
		"max_swap_fee":     wptypes.MaxSwapFee.String(),
		"max_in_ratio":     wptypes.MaxInRatio.String(),
		"max_out_ratio":    wptypes.MaxOutRatio.String(),
		"init_pool_supply": wptypes.InitPoolSupply.String(),
		"exit_fee":         wptypes.ExitFee.String(),
	})
}

// handlePoolRoutes handles /v1/pools/{poolId}/* endpoints
func (s *Server) handlePoolRoutes(w http.ResponseWriter, r *http.Request) {
	// Parse path: /v1/pools/{poolId} or /v1/pools/{poolId}/{endpoint}
	path := r.URL.Path[len("/v1/pools/"):]

	// Extract pool ID and endpoint
	poolID := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			poolID = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	if poolID == "" {
		writeError(w, http.StatusBadRequest, "Pool ID required")
		return
	}

	// Set pool ID in request for handler
	r.Header.Set("X-Pool-ID", poolID)

	switch endpoint {
	case "":
		s.poolHandler.HandlePool(w, r)
	case "spot-price":
		s.swapHandler.HandleSpotPrice(w, r)
	case "quote":
		s.swapHandler.HandleQuote(w, r)
	case "swap":
		s.swapHandler.HandleSwap(w, r)
	case "shares":
		s.shareHandler.HandleShares(w, r)
	case "join":
		s.shareHandler.HandleJoin(w, r)
	case "exit":
		s.shareHandler.HandleExit(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Sender-Address")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// WebSocket upgrades need the raw ResponseWriter (http.Hijacker)
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		timer := metrics.NewTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.GetCollector().RecordAPIRequest(
			r.Method,
			normalizeMetricPath(r.URL.Path),
			strconv.Itoa(rec.status),
			timer.ElapsedMs(),
		)
	})
}

// normalizeMetricPath collapses pool IDs out of the path label to keep
// metric cardinality bounded
func normalizeMetricPath(path string) string {
	if !strings.HasPrefix(path, "/v1/pools/") {
		return path
	}
	rest := path[len("/v1/pools/"):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return "/v1/pools/{id}/" + rest[i+1:]
		}
	}
	return "/v1/pools/{id}"
}
