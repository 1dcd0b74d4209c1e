package futures

import "errors"

// Error taxonomy. Server-side rejections that arrive as a decodable error
// body are never surfaced as Go errors; they come back inside the call's
// result (see CallStatus). The sentinels below cover everything else.
var (
	// ErrAuthConfig means a signed call was attempted without credentials.
	// Returned before any network attempt.
	ErrAuthConfig = errors.New("api credentials not configured")

	// ErrDisconnect marks a transport-level fault: handshake failure,
	// connection reset, or a request canceled mid-flight. The channel is
	// unusable and the caller should re-establish rather than resubmit.
	ErrDisconnect = errors.New("transport disconnected")

	// ErrUnavailable means the operation is not supported on the selected
	// market (e.g. taker buy/sell volume on the testnet).
	ErrUnavailable = errors.New("operation unavailable on this market")
)
