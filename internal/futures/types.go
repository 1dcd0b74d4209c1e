package futures

// Result types for the trading and account operations. Each embeds
// CallStatus; the payload fields are only populated when Ok() reports true.
// Numeric fields the exchange sends as strings are decoded with ",string".

// OrderAck is the exchange's acknowledgement of a new or canceled order.
type OrderAck struct {
	OrderID       int64   `json:"orderId"`
	Symbol        string  `json:"symbol"`
	Status        string  `json:"status"`
	ClientOrderID string  `json:"clientOrderId"`
	Price         float64 `json:"price,string"`
	AvgPrice      float64 `json:"avgPrice,string"`
	OrigQty       float64 `json:"origQty,string"`
	ExecutedQty   float64 `json:"executedQty,string"`
	Side          string  `json:"side"`
	PositionSide  string  `json:"positionSide"`
	Type          string  `json:"type"`
	TimeInForce   string  `json:"timeInForce"`
	ReduceOnly    bool    `json:"reduceOnly"`
	ClosePosition bool    `json:"closePosition"`
	UpdateTime    int64   `json:"updateTime"`
}

// NewOrderResult is the outcome of NewOrder.
type NewOrderResult struct {
	CallStatus
	Order OrderAck
}

// CancelOrderResult is the outcome of CancelOrder.
type CancelOrderResult struct {
	CallStatus
	Order OrderAck
}

// Order is one entry of an AllOrders listing.
type Order struct {
	OrderID       int64   `json:"orderId"`
	Symbol        string  `json:"symbol"`
	Status        string  `json:"status"`
	ClientOrderID string  `json:"clientOrderId"`
	Price         float64 `json:"price,string"`
	AvgPrice      float64 `json:"avgPrice,string"`
	OrigQty       float64 `json:"origQty,string"`
	ExecutedQty   float64 `json:"executedQty,string"`
	Side          string  `json:"side"`
	PositionSide  string  `json:"positionSide"`
	Type          string  `json:"type"`
	Time          int64   `json:"time"`
	UpdateTime    int64   `json:"updateTime"`
}

// AllOrdersResult is the outcome of AllOrders.
type AllOrdersResult struct {
	CallStatus
	Orders []Order
}

// AccountAsset is one asset row of the account information response.
type AccountAsset struct {
	Asset                  string  `json:"asset"`
	WalletBalance          float64 `json:"walletBalance,string"`
	UnrealizedProfit       float64 `json:"unrealizedProfit,string"`
	MarginBalance          float64 `json:"marginBalance,string"`
	AvailableBalance       float64 `json:"availableBalance,string"`
	MaxWithdrawAmount      float64 `json:"maxWithdrawAmount,string"`
	CrossWalletBalance     float64 `json:"crossWalletBalance,string"`
	CrossUnrealizedProfit  float64 `json:"crossUnPnl,string"`
	InitialMargin          float64 `json:"initialMargin,string"`
	MaintenanceMargin      float64 `json:"maintMargin,string"`
	PositionInitialMargin  float64 `json:"positionInitialMargin,string"`
	OpenOrderInitialMargin float64 `json:"openOrderInitialMargin,string"`
}

// AccountPosition is one position row of the account information response.
type AccountPosition struct {
	Symbol           string  `json:"symbol"`
	PositionAmt      float64 `json:"positionAmt,string"`
	EntryPrice       float64 `json:"entryPrice,string"`
	UnrealizedProfit float64 `json:"unrealizedProfit,string"`
	Leverage         float64 `json:"leverage,string"`
	Isolated         bool    `json:"isolated"`
	PositionSide     string  `json:"positionSide"`
	UpdateTime       int64   `json:"updateTime"`
}

// AccountInformation is the outcome of AccountInformation.
type AccountInformation struct {
	CallStatus
	CanTrade    bool              `json:"canTrade"`
	CanDeposit  bool              `json:"canDeposit"`
	CanWithdraw bool              `json:"canWithdraw"`
	FeeTier     int               `json:"feeTier"`
	UpdateTime  int64             `json:"updateTime"`
	Assets      []AccountAsset    `json:"assets"`
	Positions   []AccountPosition `json:"positions"`
}

// AssetBalance is one row of the account balance response.
type AssetBalance struct {
	AccountAlias       string  `json:"accountAlias"`
	Asset              string  `json:"asset"`
	Balance            float64 `json:"balance,string"`
	CrossWalletBalance float64 `json:"crossWalletBalance,string"`
	CrossUnrealized    float64 `json:"crossUnPnl,string"`
	AvailableBalance   float64 `json:"availableBalance,string"`
	MaxWithdrawAmount  float64 `json:"maxWithdrawAmount,string"`
	UpdateTime         int64   `json:"updateTime"`
}

// AccountBalanceResult is the outcome of AccountBalance.
type AccountBalanceResult struct {
	CallStatus
	Balances []AssetBalance
}

// TakerVolumeRow is one period of the taker buy/sell volume listing.
type TakerVolumeRow struct {
	BuySellRatio float64 `json:"buySellRatio,string"`
	BuyVol       float64 `json:"buyVol,string"`
	SellVol      float64 `json:"sellVol,string"`
	Timestamp    int64   `json:"timestamp"`
}

// TakerBuySellVolumeResult is the outcome of TakerBuySellVolume.
type TakerBuySellVolumeResult struct {
	CallStatus
	Rows []TakerVolumeRow
}

// Kline is one candlestick.
type Kline struct {
	OpenTime                 int64
	Open                     float64
	High                     float64
	Low                      float64
	Close                    float64
	Volume                   float64
	CloseTime                int64
	QuoteAssetVolume         float64
	NumberOfTrades           int
	TakerBuyBaseAssetVolume  float64
	TakerBuyQuoteAssetVolume float64
}

// KlinesResult is the outcome of Klines.
type KlinesResult struct {
	CallStatus
	Klines []Kline
}

// ExchangeSymbol is one symbol of the exchange information response.
type ExchangeSymbol struct {
	Symbol       string `json:"symbol"`
	Status       string `json:"status"`
	BaseAsset    string `json:"baseAsset"`
	QuoteAsset   string `json:"quoteAsset"`
	ContractType string `json:"contractType"`
	PricePrec    int    `json:"pricePrecision"`
	QtyPrec      int    `json:"quantityPrecision"`
}

// ExchangeInfoResult is the outcome of ExchangeInfo.
type ExchangeInfoResult struct {
	CallStatus
	ServerTime int64            `json:"serverTime"`
	Symbols    []ExchangeSymbol `json:"symbols"`
}

// listenKeyResponse is the payload of the listen key creation call.
type listenKeyResponse struct {
	ListenKey string `json:"listenKey"`
}
