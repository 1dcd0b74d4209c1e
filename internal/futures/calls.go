package futures

import "net/http"

// RestCall identifies a logical REST operation. It keys the path table and
// the per-call receive window configuration.
type RestCall int

const (
	CallNewOrder RestCall = iota
	CallCancelOrder
	CallAllOrders
	CallAccountInfo
	CallAccountBalance
	CallListenKey
	CallKlines
	CallTakerBuySellVolume
	CallExchangeInfo
	CallPing
)

func (c RestCall) String() string {
	switch c {
	case CallNewOrder:
		return "NewOrder"
	case CallCancelOrder:
		return "CancelOrder"
	case CallAllOrders:
		return "AllOrders"
	case CallAccountInfo:
		return "AccountInfo"
	case CallAccountBalance:
		return "AccountBalance"
	case CallListenKey:
		return "ListenKey"
	case CallKlines:
		return "Klines"
	case CallTakerBuySellVolume:
		return "TakerBuySellVolume"
	case CallExchangeInfo:
		return "ExchangeInfo"
	case CallPing:
		return "Ping"
	default:
		return "Unknown"
	}
}

// callPaths resolves each logical call to its endpoint path. Paths are the
// same on live and testnet; only the base URL differs.
var callPaths = map[RestCall]string{
	CallNewOrder:           "/fapi/v1/order",
	CallCancelOrder:        "/fapi/v1/order",
	CallAllOrders:          "/fapi/v1/allOrders",
	CallAccountInfo:        "/fapi/v2/account",
	CallAccountBalance:     "/fapi/v2/balance",
	CallListenKey:          "/fapi/v1/listenKey",
	CallKlines:             "/fapi/v1/klines",
	CallTakerBuySellVolume: "/futures/data/takerlongshortRatio",
	CallExchangeInfo:       "/fapi/v1/exchangeInfo",
	CallPing:               "/fapi/v1/ping",
}

// MarketType selects the live venue or the testnet.
type MarketType int

const (
	MarketLive MarketType = iota
	MarketTest
)

const (
	// FuturesBaseURL is the production Binance Futures API URL
	FuturesBaseURL = "https://fapi.binance.com"
	// FuturesTestnetURL is the testnet Binance Futures API URL
	FuturesTestnetURL = "https://testnet.binancefuture.com"

	// FuturesWSBaseURL is the production Binance Futures WebSocket URL
	FuturesWSBaseURL = "wss://fstream.binance.com"
	// FuturesWSTestnetURL is the testnet Binance Futures WebSocket URL
	FuturesWSTestnetURL = "wss://stream.binancefuture.com"
)

func (m MarketType) String() string {
	if m == MarketTest {
		return "test"
	}
	return "live"
}

func (m MarketType) restBase() string {
	if m == MarketTest {
		return FuturesTestnetURL
	}
	return FuturesBaseURL
}

func (m MarketType) wsBase() string {
	if m == MarketTest {
		return FuturesWSTestnetURL
	}
	return FuturesWSBaseURL
}

// testnetDenied lists the calls the testnet does not support. Checked before
// any network attempt.
var testnetDenied = map[RestCall]bool{
	CallTakerBuySellVolume: true,
}

// allows reports whether the call may be dispatched on this market.
func (m MarketType) allows(call RestCall) bool {
	if m == MarketTest {
		return !testnetDenied[call]
	}
	return true
}

// callMethods maps each logical call to its HTTP method for the primary
// operation. Listen key management uses all three of POST/PUT/DELETE and is
// handled where those requests are issued.
var callMethods = map[RestCall]string{
	CallNewOrder:           http.MethodPost,
	CallCancelOrder:        http.MethodDelete,
	CallAllOrders:          http.MethodGet,
	CallAccountInfo:        http.MethodGet,
	CallAccountBalance:     http.MethodGet,
	CallListenKey:          http.MethodPost,
	CallKlines:             http.MethodGet,
	CallTakerBuySellVolume: http.MethodGet,
	CallExchangeInfo:       http.MethodGet,
	CallPing:               http.MethodGet,
}
