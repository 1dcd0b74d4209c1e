package futures

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// ApiAccess holds the API key pair. The secret key is only needed for
// signed calls; it is never logged.
type ApiAccess struct {
	APIKey    string
	SecretKey string
}

// Param is one query parameter. Params preserve the order the caller
// supplied them in; the exchange accepts any order and the signature is
// computed over the string exactly as sent, so nothing is re-sorted.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list.
type Params []Param

// P builds a single parameter.
func P(key, value string) Param {
	return Param{Key: key, Value: value}
}

// Get returns the value for key and whether it is present.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// sign computes the hex HMAC-SHA256 signature of payload. Deterministic,
// pure function of its inputs.
func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// encodeParams concatenates key=value pairs in caller order, escaping
// values. A nil list yields an empty string.
func encodeParams(params Params) string {
	var b []byte
	for i, kv := range params {
		if i > 0 {
			b = append(b, '&')
		}
		b = append(b, kv.Key...)
		b = append(b, '=')
		b = append(b, url.QueryEscape(kv.Value)...)
	}
	return string(b)
}

// buildQueryString assembles the query for a call. When signed is true it
// appends recvWindow and a wall-clock timestamp, signs everything built so
// far and appends the signature last. The timestamp is taken here, as close
// to transmission as possible, because the venue rejects requests older
// than recvWindow.
func (c *Client) buildQueryString(params Params, call RestCall, signed bool) string {
	qs := encodeParams(params)
	if !signed {
		return qs
	}

	window := c.receiveWindow(call)
	if qs != "" {
		qs += "&"
	}
	qs += "recvWindow=" + strconv.FormatInt(window.Milliseconds(), 10) +
		"&timestamp=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	return qs + "&signature=" + sign(c.access().SecretKey, qs)
}
