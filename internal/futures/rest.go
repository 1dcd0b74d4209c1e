package futures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	headerAPIKey    = "X-MBX-APIKEY"
	clientSDKHeader = "X-Client-SDK"
	clientSDKName   = "binance-futures-client"
)

// CallStatus carries the HTTP outcome of a REST call. A non-2xx response
// with a decodable error body is a normal, inspectable outcome, never a Go
// error; transport faults are returned as errors wrapping ErrDisconnect.
type CallStatus struct {
	HTTPStatus int
	ErrCode    int
	ErrMsg     string
}

// Ok reports whether the exchange accepted the call.
func (s CallStatus) Ok() bool {
	return s.HTTPStatus >= 200 && s.HTTPStatus < 300
}

// apiError is the exchange's error payload shape.
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// newRequest attaches the fixed headers and resolved path.
func (c *Client) newRequest(ctx context.Context, method, path, query string) (*http.Request, error) {
	url := c.restBase + path
	if query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAPIKey, c.access().APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(clientSDKHeader, clientSDKName)
	return req, nil
}

// sendRest dispatches one logical call with the method mapped in
// callMethods. Listen key refresh and deletion override the method via
// sendRestMethod.
func (c *Client) sendRest(ctx context.Context, call RestCall, signed bool, params Params) (CallStatus, []byte, error) {
	return c.sendRestMethod(ctx, call, callMethods[call], signed, params)
}

// sendRestMethod dispatches one logical call. Behavior:
//   - market does not allow the call: ErrUnavailable, no network attempt
//   - signed call without a secret key: ErrAuthConfig, no network attempt
//   - transport fault or canceled in-flight request: error wrapping
//     ErrDisconnect
//   - any HTTP response: (status, body, nil), and the caller decodes
func (c *Client) sendRestMethod(ctx context.Context, call RestCall, method string, signed bool, params Params) (CallStatus, []byte, error) {
	if !c.market.allows(call) {
		return CallStatus{}, nil, fmt.Errorf("%s on %s market: %w", call, c.market, ErrUnavailable)
	}
	if signed && c.access().SecretKey == "" {
		return CallStatus{}, nil, fmt.Errorf("%s requires signing: %w", call, ErrAuthConfig)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return CallStatus{}, nil, fmt.Errorf("%s: %w", call, ErrDisconnect)
	}

	// The query string is built after the limiter gate so the signing
	// timestamp is as fresh as possible.
	query := c.buildQueryString(params, call, signed)

	req, err := c.newRequest(ctx, method, callPaths[call], query)
	if err != nil {
		return CallStatus{}, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("call", call.String()).Err(err).Msg("transport fault")
		return CallStatus{}, nil, fmt.Errorf("%s: %v: %w", call, err, ErrDisconnect)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CallStatus{}, nil, fmt.Errorf("%s: %v: %w", call, err, ErrDisconnect)
	}

	status := CallStatus{HTTPStatus: resp.StatusCode}
	if !status.Ok() {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			status.ErrCode = apiErr.Code
			status.ErrMsg = apiErr.Msg
		} else {
			status.ErrMsg = string(body)
		}
		c.logger.Debug().
			Str("call", call.String()).
			Int("status", resp.StatusCode).
			Int("code", status.ErrCode).
			Str("msg", status.ErrMsg).
			Msg("exchange rejected call")
	}

	return status, body, nil
}

// decodeInto unmarshals a successful response body, reporting the call name
// on failure. A body that fails to parse is contained to this request.
func decodeInto(call RestCall, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s response: %w", call, err)
	}
	return nil
}
