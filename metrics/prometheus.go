package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AmmDEX Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all AmmDEX metrics
type Collector struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	JoinsTotal   *prometheus.CounterVec
	ExitsTotal   *prometheus.CounterVec
	SharesMinted *prometheus.CounterVec
	SharesBurned *prometheus.CounterVec

	// Pool state metrics
	PoolsTotal      prometheus.Gauge
	PoolLiquidity   *prometheus.GaugeVec
	PoolInvariant   *prometheus.GaugeVec
	PoolTotalShares *prometheus.GaugeVec
	SpotPrice       *prometheus.GaugeVec

	// Weight update metrics
	GradualUpdatesActive prometheus.Gauge
	WeightPokesTotal     prometheus.Counter
	EndBlockLatency      prometheus.Histogram
	BlockHeight          prometheus.Gauge

	// WebSocket metrics
	WSConnectionsActive prometheus.Gauge
	WSMessagesTotal     *prometheus.CounterVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	RateLimitHits     *prometheus.CounterVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Swap metrics
	c.SwapsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "swaps",
			Name:      "total",
			Help:      "Total number of swaps executed",
		},
		[]string{"pool_id", "denom_in", "denom_out"},
	)

	c.SwapVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "swaps",
			Name:      "volume",
			Help:      "Total swap volume per token",
		},
		[]string{"pool_id", "denom"},
	)

	// Liquidity metrics
	c.JoinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "liquidity",
			Name:      "joins_total",
			Help:      "Total number of pool joins",
		},
		[]string{"pool_id"},
	)

	c.ExitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "liquidity",
			Name:      "exits_total",
			Help:      "Total number of pool exits",
		},
		[]string{"pool_id"},
	)

	c.SharesMinted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "liquidity",
			Name:      "shares_minted",
			Help:      "Total pool shares minted by joins",
		},
		[]string{"pool_id"},
	)

	c.SharesBurned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "liquidity",
			Name:      "shares_burned",
			Help:      "Total pool shares burned by exits",
		},
		[]string{"pool_id"},
	)

	// Pool state metrics
	c.PoolsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "pools",
			Name:      "total",
			Help:      "Number of pools",
		},
	)

	c.PoolLiquidity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "pools",
			Name:      "liquidity",
			Help:      "Bound token balance per pool",
		},
		[]string{"pool_id", "denom"},
	)

	c.PoolInvariant = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "pools",
			Name:      "invariant",
			Help:      "Weighted product invariant of the pool",
		},
		[]string{"pool_id"},
	)

	c.PoolTotalShares = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "pools",
			Name:      "total_shares",
			Help:      "Outstanding pool shares",
		},
		[]string{"pool_id"},
	)

	c.SpotPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "pools",
			Name:      "spot_price",
			Help:      "Spot price per ordered token pair, swap fee included",
		},
		[]string{"pool_id", "denom_in", "denom_out"},
	)

	// Weight update metrics
	c.GradualUpdatesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "smartpool",
			Name:      "gradual_updates_active",
			Help:      "Number of smart pools with a weight transition in progress",
		},
	)

	c.WeightPokesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "smartpool",
			Name:      "weight_pokes_total",
			Help:      "Total gradual weight pokes applied",
		},
	)

	c.EndBlockLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ammdex",
			Subsystem: "smartpool",
			Name:      "endblock_latency_ms",
			Help:      "Smart pool end blocker latency in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50},
		},
	)

	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total WebSocket broadcasts per channel group",
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ammdex",
			Subsystem: "websocket",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel group",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ammdex",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammdex",
			Subsystem: "api",
			Name:      "rate_limit_hits",
			Help:      "Total rate limit hits",
		},
		[]string{"limit_type"},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Swap metrics
	prometheus.MustRegister(c.SwapsTotal)
	prometheus.MustRegister(c.SwapVolume)

	// Liquidity metrics
	prometheus.MustRegister(c.JoinsTotal)
	prometheus.MustRegister(c.ExitsTotal)
	prometheus.MustRegister(c.SharesMinted)
	prometheus.MustRegister(c.SharesBurned)

	// Pool state metrics
	prometheus.MustRegister(c.PoolsTotal)
	prometheus.MustRegister(c.PoolLiquidity)
	prometheus.MustRegister(c.PoolInvariant)
	prometheus.MustRegister(c.PoolTotalShares)
	prometheus.MustRegister(c.SpotPrice)

	// Weight update metrics
	prometheus.MustRegister(c.GradualUpdatesActive)
	prometheus.MustRegister(c.WeightPokesTotal)
	prometheus.MustRegister(c.EndBlockLatency)
	prometheus.MustRegister(c.BlockHeight)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSSubscriptions)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.RateLimitHits)
}

// ============ Recording Helpers ============

// RecordSwap records an executed swap
func (c *Collector) RecordSwap(poolID, denomIn, denomOut string, amountIn, amountOut float64) {
	c.SwapsTotal.WithLabelValues(poolID, denomIn, denomOut).Inc()
	c.SwapVolume.WithLabelValues(poolID, denomIn).Add(amountIn)
	c.SwapVolume.WithLabelValues(poolID, denomOut).Add(amountOut)
}

// RecordJoin records a pool join
func (c *Collector) RecordJoin(poolID string, shares float64) {
	c.JoinsTotal.WithLabelValues(poolID).Inc()
	c.SharesMinted.WithLabelValues(poolID).Add(shares)
}

// RecordExit records a pool exit
func (c *Collector) RecordExit(poolID string, shares float64) {
	c.ExitsTotal.WithLabelValues(poolID).Inc()
	c.SharesBurned.WithLabelValues(poolID).Add(shares)
}

// SetPoolCount sets the number of pools
func (c *Collector) SetPoolCount(n int) {
	c.PoolsTotal.Set(float64(n))
}

// UpdatePoolLiquidity sets the bound balance gauge for one token
func (c *Collector) UpdatePoolLiquidity(poolID, denom string, balance float64) {
	c.PoolLiquidity.WithLabelValues(poolID, denom).Set(balance)
}

// UpdatePoolInvariant sets the weighted product invariant gauge
func (c *Collector) UpdatePoolInvariant(poolID string, invariant float64) {
	c.PoolInvariant.WithLabelValues(poolID).Set(invariant)
}

// UpdatePoolShares sets the outstanding shares gauge
func (c *Collector) UpdatePoolShares(poolID string, totalShares float64) {
	c.PoolTotalShares.WithLabelValues(poolID).Set(totalShares)
}

// UpdateSpotPrice sets the spot price gauge for one ordered pair
func (c *Collector) UpdateSpotPrice(poolID, denomIn, denomOut string, price float64) {
	c.SpotPrice.WithLabelValues(poolID, denomIn, denomOut).Set(price)
}

// SetGradualUpdatesActive sets the active weight transition gauge
func (c *Collector) SetGradualUpdatesActive(n int) {
	c.GradualUpdatesActive.Set(float64(n))
}

// RecordWeightPokes records gradual weight pokes applied in a block
func (c *Collector) RecordWeightPokes(n int) {
	c.WeightPokesTotal.Add(float64(n))
}

// RecordEndBlock records end blocker execution
func (c *Collector) RecordEndBlock(blockHeight int64, latencyMs float64) {
	c.BlockHeight.Set(float64(blockHeight))
	c.EndBlockLatency.Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// RecordWSMessage records a WebSocket broadcast
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// RecordSubscription records subscription changes per channel group
func (c *Collector) RecordSubscription(channel string, delta int) {
	c.WSSubscriptions.WithLabelValues(channel).Add(float64(delta))
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordRateLimitHit records a rate limit hit
func (c *Collector) RecordRateLimitHit(limitType string) {
	c.RateLimitHits.WithLabelValues(limitType).Inc()
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
