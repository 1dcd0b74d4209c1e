package futures

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultReceiveWindow is the venue default staleness tolerance for signed
// requests.
const DefaultReceiveWindow = 5000 * time.Millisecond

// defaultCallRate keeps well inside the futures request-rate limit of 1200
// requests per minute.
const defaultCallRate = rate.Limit(15)

// Client talks to the Binance USD-M futures venue: signed request/response
// calls plus push-based stream monitors. One Client owns its monitor
// registry and credentials; sessions never outlive it.
type Client struct {
	market MarketType
	logger zerolog.Logger

	restBase string
	wsBase   string

	httpClient *http.Client
	limiter    *rate.Limiter

	mu          sync.Mutex
	apiAccess   ApiAccess
	recvWindows map[RestCall]time.Duration

	monitorID atomic.Uint64

	sessMu   sync.Mutex
	sessions map[uint64]*streamSession

	userData *userDataState

	// Keepalive cadence and per-tick retry budget, fixed at construction.
	keepaliveEvery       time.Duration
	keepaliveRetryBudget time.Duration
}

// New creates a client for the given market. The secret key may be empty if
// only unsigned calls and public streams are used.
func New(market MarketType, access ApiAccess, logger zerolog.Logger) *Client {
	windows := make(map[RestCall]time.Duration, len(callPaths))
	for call := range callPaths {
		windows[call] = DefaultReceiveWindow
	}

	return &Client{
		market: market,
		logger: logger.With().Str("component", "FuturesClient").Str("market", market.String()).Logger(),

		restBase: market.restBase(),
		wsBase:   market.wsBase(),

		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(defaultCallRate, 10),

		apiAccess: ApiAccess{
			APIKey:    strings.TrimSpace(access.APIKey),
			SecretKey: strings.TrimSpace(access.SecretKey),
		},
		recvWindows: windows,
		sessions:    make(map[uint64]*streamSession),

		keepaliveEvery:       keepaliveInterval,
		keepaliveRetryBudget: keepaliveMaxElapsed,
	}
}

// SetAPIKeys replaces the credentials. All calls need the API key; the
// secret key is only required for signed calls.
func (c *Client) SetAPIKeys(access ApiAccess) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiAccess = ApiAccess{
		APIKey:    strings.TrimSpace(access.APIKey),
		SecretKey: strings.TrimSpace(access.SecretKey),
	}
}

// SetReceiveWindow overrides the receive window for one call. Other calls
// keep their current windows. The venue ignores the window for ListenKey;
// the entry exists for completeness.
func (c *Client) SetReceiveWindow(call RestCall, window time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recvWindows[call] = window
}

func (c *Client) receiveWindow(call RestCall) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	window, ok := c.recvWindows[call]
	if !ok {
		// Every dispatchable call is seeded at construction; a miss is a
		// programming error in this package, not caller input.
		panic("futures: no receive window entry for call " + call.String())
	}
	return window
}

func (c *Client) access() ApiAccess {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiAccess
}

// Ping measures the round trip of a connectivity check against the venue.
// The duration covers network latency plus exchange processing time.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, _, err := c.sendRest(ctx, CallPing, false, nil)
	if err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Close cancels every monitor, stops the keepalive timer and invalidates
// the listen key. It blocks until all read loops have exited.
func (c *Client) Close() {
	c.CancelMonitors()
	c.stopUserData()
	c.logger.Info().Msg("client closed")
}
