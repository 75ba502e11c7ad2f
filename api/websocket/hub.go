package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openalpha/amm-dex/metrics"
)

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by channel
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Subscription management
	subscriptions map[string]map[*Client]bool // topic -> clients

	// Inbound messages from clients
	broadcast chan []byte

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Message buffers for different channels
	poolBuffer  map[string]*PoolUpdateMessage
	priceBuffer map[string]*SpotPriceMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Configuration
	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	// Update intervals
	PoolsInterval  time.Duration // Default: 1s
	PricesInterval time.Duration // Default: 1s
	SwapsBuffer    int           // Number of swaps to buffer

	// Connection limits
	MaxClientsPerIP  int
	MaxSubscriptions int

	// Rate limiting
	MessageRateLimit int // Messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		PoolsInterval:    time.Second,
		PricesInterval:   time.Second,
		SwapsBuffer:      100,
		MaxClientsPerIP:  10,
		MaxSubscriptions: 50,
		MessageRateLimit: 100,
	}
}

// SubscriptionRequest represents a subscription request
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:       make(map[*Client]bool),
		channels:      make(map[string]map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		broadcast:     make(chan []byte, 256),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan *SubscriptionRequest, 256),
		unsubscribe:   make(chan *SubscriptionRequest, 256),
		poolBuffer:    make(map[string]*PoolUpdateMessage),
		priceBuffer:   make(map[string]*SpotPriceMessage),
		config:        config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	poolTicker := time.NewTicker(h.config.PoolsInterval)
	priceTicker := time.NewTicker(h.config.PricesInterval)

	defer poolTicker.Stop()
	defer priceTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-poolTicker.C:
			h.broadcastPools()

		case <-priceTicker.C:
			h.broadcastPrices()
		}
	}
}

// registerClient adds a new client
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	metrics.GetCollector().RecordWSConnection(1)
}

// unregisterClient removes a client
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		// Remove from all channels
		for channel, clients := range h.channels {
			if _, subscribed := clients[client]; subscribed {
				delete(clients, client)
				metrics.GetCollector().RecordSubscription(channelGroup(channel), -1)
			}
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		// Remove from all subscriptions
		for topic := range h.subscriptions {
			delete(h.subscriptions[topic], client)
		}

		close(client.send)
		metrics.GetCollector().RecordWSConnection(-1)
	}
}

// handleSubscription handles a subscription request
func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	if _, ok := h.channels[channel][client]; !ok {
		h.channels[channel][client] = true
		metrics.GetCollector().RecordSubscription(channelGroup(channel), 1)
	}

	// Send subscription confirmation
	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// handleUnsubscription handles an unsubscription request
func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		if _, subscribed := clients[client]; subscribed {
			delete(clients, client)
			metrics.GetCollector().RecordSubscription(channelGroup(channel), -1)
		}
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	// Send unsubscription confirmation
	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
		Data:    nil,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// broadcastMessage sends a message to all clients in a channel
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client buffer is full, skip
		}
	}
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Make a copy of clients to avoid holding lock during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	metrics.GetCollector().RecordWSMessage(channelGroup(channel))

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
}

// channelGroup reduces a channel name to its prefix for metric labels
func channelGroup(channel string) string {
	for i := 0; i < len(channel); i++ {
		if channel[i] == ':' {
			return channel[:i]
		}
	}
	return channel
}

// ============ Channel-specific broadcasts ============

// UpdatePool updates the pool state buffer for a pool
func (h *Hub) UpdatePool(poolID string, pool *PoolUpdateMessage) {
	h.mu.Lock()
	h.poolBuffer[poolID] = pool
	h.mu.Unlock()
}

// UpdateSpotPrices updates the spot price buffer for a pool
func (h *Hub) UpdateSpotPrices(poolID string, prices *SpotPriceMessage) {
	h.mu.Lock()
	h.priceBuffer[poolID] = prices
	h.mu.Unlock()
}

// broadcastPools broadcasts all buffered pool state updates
func (h *Hub) broadcastPools() {
	h.mu.RLock()
	pools := make(map[string]*PoolUpdateMessage)
	for k, v := range h.poolBuffer {
		pools[k] = v
	}
	h.mu.RUnlock()

	for poolID, pool := range pools {
		channel := "pools:" + poolID
		msg := &WSMessage{
			Type:    "pool",
			Channel: channel,
			Data:    pool,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

// broadcastPrices broadcasts all buffered spot price updates
func (h *Hub) broadcastPrices() {
	h.mu.RLock()
	prices := make(map[string]*SpotPriceMessage)
	for k, v := range h.priceBuffer {
		prices[k] = v
	}
	h.mu.RUnlock()

	for poolID, price := range prices {
		channel := "prices:" + poolID
		msg := &WSMessage{
			Type:    "prices",
			Channel: channel,
			Data:    price,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

// BroadcastSwap broadcasts an executed swap to subscribers
func (h *Hub) BroadcastSwap(poolID string, swap *SwapMessage) {
	channel := "swaps:" + poolID
	msg := &WSMessage{
		Type:    "swap",
		Channel: channel,
		Data:    swap,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastLiquidity broadcasts a join or exit to subscribers
func (h *Hub) BroadcastLiquidity(poolID string, event *LiquidityMessage) {
	channel := "liquidity:" + poolID
	msg := &WSMessage{
		Type:    "liquidity",
		Channel: channel,
		Data:    event,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastShareBalance broadcasts a share balance update to a specific address
func (h *Hub) BroadcastShareBalance(address string, balance *ShareBalanceMessage) {
	channel := "shares:" + address
	msg := &WSMessage{
		Type:    "shares",
		Channel: channel,
		Data:    balance,
	}
	h.BroadcastToChannel(channel, msg)
}

// ============ Message Types ============

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// PoolUpdateMessage represents a pool state update
type PoolUpdateMessage struct {
	PoolID      string      `json:"pool_id"`
	SwapFee     string      `json:"swap_fee"`
	TotalWeight string      `json:"total_weight"`
	TotalShares string      `json:"total_shares"`
	PublicSwap  bool        `json:"public_swap"`
	Finalized   bool        `json:"finalized"`
	Tokens      []PoolToken `json:"tokens"`
	Timestamp   int64       `json:"timestamp"`
}

// PoolToken represents one bound token in a pool update
type PoolToken struct {
	Denom   string `json:"denom"`
	Balance string `json:"balance"`
	Weight  string `json:"weight"`
}

// SpotPriceMessage represents spot prices for all pairs of a pool
type SpotPriceMessage struct {
	PoolID    string      `json:"pool_id"`
	Prices    []PairPrice `json:"prices"`
	Timestamp int64       `json:"timestamp"`
}

// PairPrice represents the spot price of one ordered token pair
type PairPrice struct {
	DenomIn  string `json:"denom_in"`
	DenomOut string `json:"denom_out"`
	Price    string `json:"price"`
}

// SwapMessage represents an executed swap
type SwapMessage struct {
	PoolID         string `json:"pool_id"`
	Sender         string `json:"sender"`
	DenomIn        string `json:"denom_in"`
	AmountIn       string `json:"amount_in"`
	DenomOut       string `json:"denom_out"`
	AmountOut      string `json:"amount_out"`
	SpotPriceAfter string `json:"spot_price_after"`
	Timestamp      int64  `json:"timestamp"`
}

// LiquidityMessage represents a pool join or exit
type LiquidityMessage struct {
	PoolID     string            `json:"pool_id"`
	Provider   string            `json:"provider"`
	Kind       string            `json:"kind"` // "join" or "exit"
	PoolShares string            `json:"pool_shares"`
	Amounts    map[string]string `json:"amounts"`
	Timestamp  int64             `json:"timestamp"`
}

// ShareBalanceMessage represents a share balance update for one address
type ShareBalanceMessage struct {
	PoolID      string `json:"pool_id"`
	Address     string `json:"address"`
	Balance     string `json:"balance"`
	TotalShares string `json:"total_shares"`
	Timestamp   int64  `json:"timestamp"`
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelCount returns the number of active channels
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = generateID()
	}

	address := r.URL.Query().Get("address")
	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, address, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Helper function to get client IP
func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// Generate a simple ID
func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
