package futures

import (
	"testing"
)

func TestExtractWithArrayKey(t *testing.T) {
	msg := []byte(`{"a":1,"data":[{"a":2,"b":3},{"a":4}]}`)
	schema := Schema{Keys: []string{"a", "b"}, ArrayKey: "data"}

	records, err := extractRecords(msg, schema)
	if err != nil {
		t.Fatalf("extractRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if v, ok := records[0].Get("a"); !ok || v != "2" {
		t.Errorf("record 0 a = %q (%v), want 2", v, ok)
	}
	if v, ok := records[0].Get("b"); !ok || v != "3" {
		t.Errorf("record 0 b = %q (%v), want 3", v, ok)
	}

	if v, ok := records[1].Get("a"); !ok || v != "4" {
		t.Errorf("record 1 a = %q (%v), want 4", v, ok)
	}
	// Missing key is omitted, not defaulted.
	if _, ok := records[1].Get("b"); ok {
		t.Error("record 1 should not carry b")
	}
}

func TestExtractTopLevelArray(t *testing.T) {
	msg := []byte(`[{"s":"BTCUSDT","p":"100"},{"s":"ETHUSDT","p":"10"}]`)
	schema := Schema{Keys: []string{"s", "p"}}

	records, err := extractRecords(msg, schema)
	if err != nil {
		t.Fatalf("extractRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if v, _ := records[1].Get("s"); v != "ETHUSDT" {
		t.Errorf("record 1 s = %q, want ETHUSDT", v)
	}
}

func TestExtractSingleObject(t *testing.T) {
	msg := []byte(`{"e":"markPriceUpdate","s":"BTCUSDT","p":"42000.10"}`)
	schema := Schema{Keys: []string{"e", "s", "p", "r"}}

	records, err := extractRecords(msg, schema)
	if err != nil {
		t.Fatalf("extractRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if v, _ := rec.Get("p"); v != "42000.10" {
		t.Errorf("p = %q, want 42000.10", v)
	}
	if _, ok := rec.Get("r"); ok {
		t.Error("absent key r should be omitted")
	}
	// Field order follows schema key order.
	if rec[0].Name != "e" || rec[1].Name != "s" || rec[2].Name != "p" {
		t.Errorf("field order %v does not follow schema", rec)
	}
}

func TestExtractNestedPaths(t *testing.T) {
	msg := []byte(`{"e":"kline","s":"BTCUSDT","k":{"i":"1m","o":"100","c":"101","x":false}}`)
	schema := Schema{Keys: []string{"e", "s", "k.i", "k.c", "k.x"}}

	records, err := extractRecords(msg, schema)
	if err != nil {
		t.Fatalf("extractRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if v, _ := records[0].Get("k.c"); v != "101" {
		t.Errorf("k.c = %q, want 101", v)
	}
	if v, _ := records[0].Get("k.x"); v != "false" {
		t.Errorf("k.x = %q, want false", v)
	}
}

func TestExtractMalformedFrame(t *testing.T) {
	if _, err := extractRecords([]byte(`{"a":`), Schema{Keys: []string{"a"}}); err == nil {
		t.Error("malformed frame should error")
	}
}

func TestExtractUserDataOrderUpdate(t *testing.T) {
	msg := []byte(`{"e":"ORDER_TRADE_UPDATE","E":1600000000000,"o":{"s":"BTCUSDT","S":"BUY","i":123,"X":"FILLED","z":"0.5"}}`)

	event, err := extractUserData(msg)
	if err != nil {
		t.Fatalf("extractUserData: %v", err)
	}
	if event.Type != "ORDER_TRADE_UPDATE" {
		t.Errorf("Type = %q", event.Type)
	}
	if event.EventTime != 1600000000000 {
		t.Errorf("EventTime = %d", event.EventTime)
	}
	if v, _ := event.Order.Get("o.X"); v != "FILLED" {
		t.Errorf("order status = %q, want FILLED", v)
	}
	if v, _ := event.Order.Get("o.i"); v != "123" {
		t.Errorf("order id = %q, want 123", v)
	}
}

func TestExtractUserDataAccountUpdate(t *testing.T) {
	msg := []byte(`{"e":"ACCOUNT_UPDATE","E":1,"a":{"m":"ORDER","B":[{"a":"USDT","wb":"100.0"}],"P":[{"s":"BTCUSDT","pa":"0.1","ep":"42000"},{"s":"ETHUSDT","pa":"-1"}]}}`)

	event, err := extractUserData(msg)
	if err != nil {
		t.Fatalf("extractUserData: %v", err)
	}
	if len(event.Balances) != 1 || len(event.Positions) != 2 {
		t.Fatalf("got %d balances, %d positions", len(event.Balances), len(event.Positions))
	}
	if v, _ := event.Balances[0].Get("wb"); v != "100.0" {
		t.Errorf("wallet balance = %q", v)
	}
	if v, _ := event.Positions[1].Get("pa"); v != "-1" {
		t.Errorf("position amount = %q", v)
	}
}

func TestExtractUserDataMalformed(t *testing.T) {
	if _, err := extractUserData([]byte("not json")); err == nil {
		t.Error("malformed user data frame should error")
	}
}
