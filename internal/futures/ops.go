package futures

import (
	"context"

	"github.com/google/uuid"
)

// Trading and account operations. Parameter names and values follow the
// exchange's documented query parameters; the order supplied by the caller
// is the order sent and signed.

// NewOrder places an order. If the caller did not set newClientOrderId one
// is generated so fills on the user-data stream can be correlated.
func (c *Client) NewOrder(ctx context.Context, params Params) (*NewOrderResult, error) {
	if _, ok := params.Get("newClientOrderId"); !ok {
		params = append(params, P("newClientOrderId", uuid.NewString()))
	}

	status, body, err := c.sendRest(ctx, CallNewOrder, true, params)
	if err != nil {
		return nil, err
	}

	result := &NewOrderResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallNewOrder, body, &result.Order); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// CancelOrder cancels an order by orderId or origClientOrderId.
func (c *Client) CancelOrder(ctx context.Context, params Params) (*CancelOrderResult, error) {
	status, body, err := c.sendRest(ctx, CallCancelOrder, true, params)
	if err != nil {
		return nil, err
	}

	result := &CancelOrderResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallCancelOrder, body, &result.Order); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AllOrders returns order history; what is included depends on the query's
// status and time filters.
func (c *Client) AllOrders(ctx context.Context, params Params) (*AllOrdersResult, error) {
	status, body, err := c.sendRest(ctx, CallAllOrders, true, params)
	if err != nil {
		return nil, err
	}

	result := &AllOrdersResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallAllOrders, body, &result.Orders); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AccountInformation returns current account state: assets and positions.
func (c *Client) AccountInformation(ctx context.Context) (*AccountInformation, error) {
	status, body, err := c.sendRest(ctx, CallAccountInfo, true, nil)
	if err != nil {
		return nil, err
	}

	result := &AccountInformation{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallAccountInfo, body, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AccountBalance returns the per-asset futures balances.
func (c *Client) AccountBalance(ctx context.Context) (*AccountBalanceResult, error) {
	status, body, err := c.sendRest(ctx, CallAccountBalance, true, nil)
	if err != nil {
		return nil, err
	}

	result := &AccountBalanceResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallAccountBalance, body, &result.Balances); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// TakerBuySellVolume returns taker volume statistics. Live market only; the
// testnet rejects this call before any network attempt.
func (c *Client) TakerBuySellVolume(ctx context.Context, params Params) (*TakerBuySellVolumeResult, error) {
	status, body, err := c.sendRest(ctx, CallTakerBuySellVolume, false, params)
	if err != nil {
		return nil, err
	}

	result := &TakerBuySellVolumeResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallTakerBuySellVolume, body, &result.Rows); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Klines returns candlestick data. Mind the limit parameter: it determines
// the request weight.
func (c *Client) Klines(ctx context.Context, params Params) (*KlinesResult, error) {
	status, body, err := c.sendRest(ctx, CallKlines, false, params)
	if err != nil {
		return nil, err
	}

	result := &KlinesResult{CallStatus: status}
	if !status.Ok() {
		return result, nil
	}

	// Klines arrive as positional arrays, not objects.
	var raw [][]any
	if err := decodeInto(CallKlines, body, &raw); err != nil {
		return nil, err
	}

	result.Klines = make([]Kline, 0, len(raw))
	for _, row := range raw {
		if len(row) < 11 {
			continue
		}
		result.Klines = append(result.Klines, Kline{
			OpenTime:                 asInt64(row[0]),
			Open:                     asFloat(row[1]),
			High:                     asFloat(row[2]),
			Low:                      asFloat(row[3]),
			Close:                    asFloat(row[4]),
			Volume:                   asFloat(row[5]),
			CloseTime:                asInt64(row[6]),
			QuoteAssetVolume:         asFloat(row[7]),
			NumberOfTrades:           int(asInt64(row[8])),
			TakerBuyBaseAssetVolume:  asFloat(row[9]),
			TakerBuyQuoteAssetVolume: asFloat(row[10]),
		})
	}
	return result, nil
}

// ExchangeInfo returns trading rules and the symbol list.
func (c *Client) ExchangeInfo(ctx context.Context) (*ExchangeInfoResult, error) {
	status, body, err := c.sendRest(ctx, CallExchangeInfo, false, nil)
	if err != nil {
		return nil, err
	}

	result := &ExchangeInfoResult{CallStatus: status}
	if status.Ok() {
		if err := decodeInto(CallExchangeInfo, body, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}
