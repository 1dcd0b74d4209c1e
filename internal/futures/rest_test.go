package futures

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestDecodedServerErrorIsResultNotFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1102,"msg":"Mandatory parameter 'symbol' was not sent."}`))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	result, err := c.NewOrder(context.Background(), Params{P("side", "BUY")})
	if err != nil {
		t.Fatalf("decoded rejection must not be a fault: %v", err)
	}
	if result.Ok() {
		t.Fatal("result should be failed")
	}
	if result.ErrCode != -1102 {
		t.Errorf("ErrCode = %d, want -1102", result.ErrCode)
	}
	if !strings.Contains(result.ErrMsg, "Mandatory parameter") {
		t.Errorf("ErrMsg = %q, want server message", result.ErrMsg)
	}
}

func TestTransportFaultIsDisconnect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t)
	c.restBase = server.URL
	server.Close() // connection refused from here on

	_, err := c.AccountBalance(context.Background())
	if !errors.Is(err, ErrDisconnect) {
		t.Errorf("err = %v, want ErrDisconnect", err)
	}
}

func TestSignedCallWithoutSecretFailsFast(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c := New(MarketLive, ApiAccess{APIKey: "key"}, testLogger())
	c.restBase = server.URL

	_, err := c.NewOrder(context.Background(), Params{P("symbol", "BTCUSDT")})
	if !errors.Is(err, ErrAuthConfig) {
		t.Errorf("err = %v, want ErrAuthConfig", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server was hit %d times, want no network attempt", hits.Load())
	}
}

func TestTestnetDeniedCallFailsFast(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c := newTestClient(t) // MarketTest
	c.restBase = server.URL

	_, err := c.TakerBuySellVolume(context.Background(), Params{P("symbol", "BTCUSDT")})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server was hit %d times, want no network attempt", hits.Load())
	}
}

func TestNewOrderRequestShape(t *testing.T) {
	var gotQuery, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("X-MBX-APIKEY")
		w.Write([]byte(`{"orderId":42,"symbol":"BTCUSDT","status":"NEW","clientOrderId":"abc","price":"0","avgPrice":"0","origQty":"0.01","executedQty":"0","side":"BUY","positionSide":"BOTH","type":"MARKET","timeInForce":"GTC","updateTime":1}`))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	result, err := c.NewOrder(context.Background(), Params{
		P("symbol", "BTCUSDT"), P("side", "BUY"), P("type", "MARKET"), P("quantity", "0.01"),
	})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if !result.Ok() {
		t.Fatalf("result failed: %+v", result.CallStatus)
	}
	if result.Order.OrderID != 42 || result.Order.OrigQty != 0.01 {
		t.Errorf("decoded order = %+v", result.Order)
	}

	if gotAPIKey != "key" {
		t.Errorf("X-MBX-APIKEY = %q", gotAPIKey)
	}
	if !strings.HasPrefix(gotQuery, "symbol=BTCUSDT&side=BUY&type=MARKET&quantity=0.01&newClientOrderId=") {
		t.Errorf("query order wrong: %s", gotQuery)
	}
	idx := strings.LastIndex(gotQuery, "&signature=")
	if idx < 0 || strings.Count(gotQuery, "signature=") != 1 {
		t.Fatalf("signature not present exactly once, last: %s", gotQuery)
	}
	if want := sign(docSecret, gotQuery[:idx]); gotQuery[idx+len("&signature="):] != want {
		t.Error("wire signature does not cover the preceding bytes")
	}
}

func TestDispatchMethodFollowsCallTable(t *testing.T) {
	var mu sync.Mutex
	got := make(map[string]string)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got[r.URL.Path] = r.Method
		mu.Unlock()
		if r.URL.Path == callPaths[CallAccountBalance] {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	if _, err := c.CancelOrder(context.Background(), Params{P("symbol", "BTCUSDT"), P("orderId", "1")}); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if _, err := c.AccountBalance(context.Background()); err != nil {
		t.Fatalf("AccountBalance: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, call := range []RestCall{CallCancelOrder, CallAccountBalance} {
		if got[callPaths[call]] != callMethods[call] {
			t.Errorf("%s sent as %s, want %s", call, got[callPaths[call]], callMethods[call])
		}
	}
}

func TestPingMeasuresLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v1/ping" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	latency, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if latency <= 0 {
		t.Errorf("latency = %v, want > 0", latency)
	}
}

func TestKlinesDecodesPositionalRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1600000000000,"100.0","110.0","90.0","105.0","12.5",1600000059999,"1300.0",42,"6.0","630.0","0"]]`))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	result, err := c.Klines(context.Background(), Params{P("symbol", "BTCUSDT"), P("interval", "1m")})
	if err != nil {
		t.Fatalf("Klines: %v", err)
	}
	if len(result.Klines) != 1 {
		t.Fatalf("got %d klines, want 1", len(result.Klines))
	}

	k := result.Klines[0]
	if k.OpenTime != 1600000000000 || k.High != 110 || k.NumberOfTrades != 42 {
		t.Errorf("kline = %+v", k)
	}
}

func TestUndecodableErrorBodyKeptRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream choked"))
	}))
	defer server.Close()

	c := newTestClient(t)
	c.restBase = server.URL

	result, err := c.AccountInformation(context.Background())
	if err != nil {
		t.Fatalf("AccountInformation: %v", err)
	}
	if result.Ok() {
		t.Fatal("result should be failed")
	}
	if result.ErrMsg != "upstream choked" {
		t.Errorf("ErrMsg = %q, want raw body", result.ErrMsg)
	}
}
