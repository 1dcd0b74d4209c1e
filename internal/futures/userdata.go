package futures

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
)

// keepaliveInterval is well inside the venue's 60 minute listen key expiry.
const keepaliveInterval = 15 * time.Minute

// keepaliveMaxElapsed bounds the retry budget of a single keepalive tick.
const keepaliveMaxElapsed = 30 * time.Second

// UserDataEvent is one event off the user-data stream, projected into
// generic records: order updates carry Order, account updates carry
// Balances and Positions, margin calls carry Positions.
type UserDataEvent struct {
	Type      string
	EventTime int64

	Order     Record
	Balances  []Record
	Positions []Record
}

// UserDataHandler receives user-data events in receipt order.
type UserDataHandler func(UserDataEvent)

// userDataState tracks the single user-data stream and its keepalive
// timer. The listen key is shared by every user-data monitor, so there is
// at most one of these per client.
type userDataState struct {
	mu        sync.Mutex
	listenKey string
	stop      chan struct{}
	stopped   sync.Once

	keepaliveFailures atomic.Int64
}

var (
	orderUpdateKeys = []string{"o.s", "o.c", "o.S", "o.o", "o.f", "o.q", "o.p", "o.ap", "o.sp", "o.x", "o.X", "o.i", "o.l", "o.z", "o.L", "o.T", "o.ps", "o.rp"}
	balanceKeys     = []string{"a", "wb", "cw", "bc"}
	positionKeys    = []string{"s", "pa", "ep", "cr", "up", "mt", "iw", "ps"}
	marginCallKeys  = []string{"s", "ps", "pa", "mt", "iw", "mp", "up", "mm"}
)

// MonitorUserData opens the user-data stream: it creates a listen key,
// connects the stream and starts the keepalive timer that refreshes the
// key. Order, account and margin-call events are delivered to cb in
// receipt order.
func (c *Client) MonitorUserData(cb UserDataHandler) (MonitorToken, error) {
	listenKey, err := c.createListenKey(context.Background())
	if err != nil {
		return MonitorToken{}, err
	}

	token, err := c.createMonitorSession(c.wsBase+"/ws/"+listenKey, func(msg []byte) error {
		event, err := extractUserData(msg)
		if err != nil {
			return err
		}
		if event.Type != "" {
			cb(event)
		}
		return nil
	})
	if err != nil {
		// The key was issued but nothing will keep it alive; release it.
		c.closeListenKey(listenKey)
		return MonitorToken{}, err
	}

	c.startKeepalive(listenKey)
	return token, nil
}

// extractUserData projects a user-data frame into a typed event using the
// per-event key sets. Unknown event types pass through with only the
// envelope fields so callers can observe them.
func extractUserData(msg []byte) (UserDataEvent, error) {
	if !gjson.ValidBytes(msg) {
		return UserDataEvent{}, errMalformedFrame
	}
	root := gjson.ParseBytes(msg)

	event := UserDataEvent{
		Type:      root.Get("e").String(),
		EventTime: root.Get("E").Int(),
	}

	switch event.Type {
	case "ORDER_TRADE_UPDATE":
		event.Order = extractRecord(root, orderUpdateKeys)
	case "ACCOUNT_UPDATE":
		event.Balances = extractElements(root.Get("a.B"), balanceKeys)
		event.Positions = extractElements(root.Get("a.P"), positionKeys)
	case "MARGIN_CALL":
		event.Positions = extractElements(root.Get("p"), marginCallKeys)
	}
	return event, nil
}

// createListenKey requests a fresh listen key.
func (c *Client) createListenKey(ctx context.Context) (string, error) {
	if c.access().APIKey == "" {
		return "", fmt.Errorf("user data stream: %w", ErrAuthConfig)
	}

	status, body, err := c.sendRest(ctx, CallListenKey, true, nil)
	if err != nil {
		return "", err
	}
	if !status.Ok() {
		return "", fmt.Errorf("listen key rejected: %d %s: %w", status.ErrCode, status.ErrMsg, ErrDisconnect)
	}

	var resp listenKeyResponse
	if err := decodeInto(CallListenKey, body, &resp); err != nil {
		return "", err
	}
	return resp.ListenKey, nil
}

// startKeepalive starts the periodic listen key refresh if it is not
// already running.
func (c *Client) startKeepalive(listenKey string) {
	c.mu.Lock()
	if c.userData == nil {
		c.userData = &userDataState{stop: make(chan struct{})}
		go c.keepaliveLoop(c.userData)
	}
	c.userData.mu.Lock()
	c.userData.listenKey = listenKey
	c.userData.mu.Unlock()
	c.mu.Unlock()
}

// keepaliveLoop refreshes the listen key on a fixed interval. A failed tick
// is retried with exponential backoff inside a bounded budget; if the tick
// still fails the fault is logged and the timer keeps running. The stream
// may go stale until the next successful refresh, and callers watching
// KeepaliveFailures can re-establish from scratch.
func (c *Client) keepaliveLoop(state *userDataState) {
	ticker := time.NewTicker(c.keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-state.stop:
			return
		case <-ticker.C:
			state.mu.Lock()
			listenKey := state.listenKey
			state.mu.Unlock()
			if listenKey == "" {
				continue
			}

			policy := backoff.NewExponentialBackOff()
			policy.MaxElapsedTime = c.keepaliveRetryBudget

			err := backoff.Retry(func() error {
				return c.keepAliveListenKey(context.Background(), listenKey)
			}, policy)

			if err != nil {
				failures := state.keepaliveFailures.Add(1)
				c.logger.Error().Err(err).Int64("consecutive_failures", failures).
					Msg("listen key keepalive failed")
			} else {
				state.keepaliveFailures.Store(0)
				c.logger.Debug().Msg("listen key kept alive")
			}
		}
	}
}

// keepAliveListenKey extends the key's validity with a lightweight PUT.
func (c *Client) keepAliveListenKey(ctx context.Context, listenKey string) error {
	status, _, err := c.sendRestMethod(ctx, CallListenKey, http.MethodPut, true, Params{P("listenKey", listenKey)})
	if err != nil {
		return err
	}
	if !status.Ok() {
		return fmt.Errorf("keepalive rejected: %d %s", status.ErrCode, status.ErrMsg)
	}
	return nil
}

// KeepaliveFailures reports consecutive failed keepalive ticks. Prolonged
// failure means the user-data stream should be re-established.
func (c *Client) KeepaliveFailures() int64 {
	c.mu.Lock()
	state := c.userData
	c.mu.Unlock()
	if state == nil {
		return 0
	}
	return state.keepaliveFailures.Load()
}

// stopUserData stops the keepalive timer and invalidates the listen key.
// Best effort: the key expires server-side regardless.
func (c *Client) stopUserData() {
	c.mu.Lock()
	state := c.userData
	c.userData = nil
	c.mu.Unlock()
	if state == nil {
		return
	}

	state.stopped.Do(func() { close(state.stop) })

	state.mu.Lock()
	listenKey := state.listenKey
	state.mu.Unlock()
	if listenKey != "" {
		c.closeListenKey(listenKey)
	}
}

// closeListenKey invalidates a listen key with a best-effort DELETE.
func (c *Client) closeListenKey(listenKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, _, err := c.sendRestMethod(ctx, CallListenKey, http.MethodDelete, true, Params{P("listenKey", listenKey)}); err != nil {
		c.logger.Debug().Err(err).Msg("closing listen key failed")
	}
}
