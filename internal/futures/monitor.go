package futures

import (
	"strings"
)

// MonitorToken identifies one live stream subscription. Ids are issued
// monotonically and never reused within a client's lifetime; the zero token
// is invalid.
type MonitorToken struct {
	ID uint64
}

// IsValid reports whether the token refers to a registration that
// succeeded.
func (t MonitorToken) IsValid() bool {
	return t.ID != 0
}

// createMonitor connects a stream session for the given stream name,
// registers it and starts its read loop feeding the extraction pipeline.
func (c *Client) createMonitor(streamName string, schema Schema, cb RecordHandler) (MonitorToken, error) {
	return c.createMonitorSession(c.wsBase+"/ws/"+streamName, func(msg []byte) error {
		records, err := extractRecords(msg, schema)
		if err != nil {
			return err
		}
		for _, rec := range records {
			// Synchronous on the read goroutine: per-session delivery
			// order is receipt order, with no parallel invocations.
			cb(rec)
		}
		return nil
	})
}

func (c *Client) createMonitorSession(uri string, handle frameHandler) (MonitorToken, error) {
	conn, err := c.connectStream(uri)
	if err != nil {
		return MonitorToken{}, err
	}

	id := c.monitorID.Add(1)
	session := newStreamSession(id, uri, conn, c.logger)

	c.sessMu.Lock()
	c.sessions[id] = session
	c.sessMu.Unlock()

	go session.run(handle)

	c.logger.Info().Uint64("monitor", id).Str("uri", uri).Msg("monitor registered")
	return MonitorToken{ID: id}, nil
}

// CancelMonitor tears down the stream behind the token with a graceful
// close handshake: a close frame is sent and frames already in flight may
// still reach the callback before the read loop unwinds. Unknown or already
// canceled tokens are a no-op. The registry entry is only erased after the
// session's read loop has exited.
func (c *Client) CancelMonitor(token MonitorToken) {
	c.sessMu.Lock()
	session, ok := c.sessions[token.ID]
	c.sessMu.Unlock()
	if !ok {
		return
	}

	session.teardown(false)

	c.sessMu.Lock()
	delete(c.sessions, token.ID)
	c.sessMu.Unlock()

	c.logger.Info().Uint64("monitor", token.ID).Msg("monitor canceled")
}

// CancelMonitors forcibly tears down every registered stream, with no
// close handshake, and blocks until no read loop remains.
func (c *Client) CancelMonitors() {
	c.sessMu.Lock()
	sessions := make([]*streamSession, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.sessions = make(map[uint64]*streamSession)
	c.sessMu.Unlock()

	for _, s := range sessions {
		s.teardown(true)
	}
}

// liveMonitorCount returns the number of registered sessions.
func (c *Client) liveMonitorCount() int {
	c.sessMu.Lock()
	defer c.sessMu.Unlock()
	return len(c.sessions)
}

// --- monitor family ---

// MonitorMarkPrice streams mark price and funding for all symbols, updated
// every second.
func (c *Client) MonitorMarkPrice(cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor("!markPrice@arr@1s", Schema{
		Keys: []string{"e", "E", "s", "p", "i", "P", "r", "T"},
	}, cb)
}

// MonitorMiniTicker streams the rolling mini ticker for all symbols,
// updated every 1000ms.
func (c *Client) MonitorMiniTicker(cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor("!miniTicker@arr", Schema{
		Keys: []string{"e", "E", "s", "c", "o", "h", "l", "v", "q"},
	}, cb)
}

// MonitorKline streams candlesticks for a symbol and interval. Candle
// fields live under the nested "k" object.
func (c *Client) MonitorKline(symbol, interval string, cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor(strings.ToLower(symbol)+"@kline_"+interval, Schema{
		Keys: []string{"e", "E", "s", "k.t", "k.T", "k.i", "k.o", "k.c", "k.h", "k.l", "k.v", "k.n", "k.x", "k.q"},
	}, cb)
}

// MonitorSymbol streams the mini ticker for one symbol.
func (c *Client) MonitorSymbol(symbol string, cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor(strings.ToLower(symbol)+"@miniTicker", Schema{
		Keys: []string{"e", "E", "s", "c", "o", "h", "l", "v", "q"},
	}, cb)
}

// MonitorSymbolBook streams best bid/ask updates for one symbol.
func (c *Client) MonitorSymbolBook(symbol string, cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor(strings.ToLower(symbol)+"@bookTicker", Schema{
		Keys: []string{"u", "s", "b", "B", "a", "A"},
	}, cb)
}

// MonitorAggTrade streams aggregated trades for one symbol.
func (c *Client) MonitorAggTrade(symbol string, cb RecordHandler) (MonitorToken, error) {
	return c.createMonitor(strings.ToLower(symbol)+"@aggTrade", Schema{
		Keys: []string{"e", "E", "s", "a", "p", "q", "f", "l", "T", "m"},
	}, cb)
}
