package futures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// gracefulCloseWait bounds how long a non-forced cancel lets the peer
// acknowledge the close frame before the connection is torn down anyway.
const gracefulCloseWait = 2 * time.Second

// frameHandler processes one inbound text frame on the session's read
// goroutine. Errors are per-frame: the loop keeps reading.
type frameHandler func(msg []byte) error

// streamSession owns one persistent stream connection. Lifecycle is
// Connecting -> Open -> Cancelling -> Closed; the cancellation flag is
// cooperative and observed at read-loop boundaries, so a cancel is seen
// within one message-processing cycle, not instantly.
type streamSession struct {
	id     uint64
	uri    string
	conn   *websocket.Conn
	logger zerolog.Logger

	canceled atomic.Bool
	done     chan struct{} // closed when the read loop has exited
}

// connectStream dials the stream endpoint. A handshake failure is a
// connectivity fault.
func (c *Client) connectStream(uri string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting %s: %v: %w", uri, err, ErrDisconnect)
	}
	return conn, nil
}

func newStreamSession(id uint64, uri string, conn *websocket.Conn, logger zerolog.Logger) *streamSession {
	return &streamSession{
		id:     id,
		uri:    uri,
		conn:   conn,
		logger: logger.With().Uint64("monitor", id).Logger(),
		done:   make(chan struct{}),
	}
}

// run is the session's read loop. While not canceled it blocks for the
// next frame and hands it to the handler; a malformed frame is reported
// and skipped. On cancellation, or a read error, the loop unwinds without
// processing further frames.
func (s *streamSession) run(handle frameHandler) {
	defer close(s.done)

	for !s.canceled.Load() {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.canceled.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			s.logger.Warn().Err(err).Msg("stream read failed, session closing")
			return
		}
		if s.canceled.Load() {
			return
		}

		if err := handle(msg); err != nil {
			s.logger.Warn().Err(err).Msg("dropping frame")
		}
	}
}

// cancel flips the cancellation flag so the read loop unwinds. With forced
// the connection is closed immediately; otherwise a close frame is sent and
// the peer gets a bounded window to finish the handshake before the read
// loop's exit closes things down.
func (s *streamSession) cancel(forced bool) {
	if !s.canceled.CompareAndSwap(false, true) {
		return
	}

	if forced {
		s.conn.Close()
		return
	}

	deadline := time.Now().Add(gracefulCloseWait)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		s.conn.Close()
		return
	}
	s.conn.SetReadDeadline(deadline)
}

// teardown completes cancellation: it waits for the read loop to exit and
// then closes the transport handle. Safe to call more than once.
func (s *streamSession) teardown(forced bool) {
	s.cancel(forced)
	<-s.done
	s.conn.Close()
}
