package interfaces

import (
	"time"

	marketdata "supersimplestocks/internal/domain/entity/marketdata"
)

// TradeHistory is the append-only trade log an instrument owns. Implementations
// must serialise appends and never expose a partially appended trade to readers.
type TradeHistory interface {
	AddTrade(trade *marketdata.Trade) error
	// GetLastTrade returns the trade with the greatest timestamp. On equal
	// timestamps the earliest appended trade wins.
	GetLastTrade() (*marketdata.Trade, bool)
	// GetTradesSince returns trades with timestamp >= from, in append order.
	GetTradesSince(from time.Time) []*marketdata.Trade
	Trades() []*marketdata.Trade
	Len() int
}

// TradeRecorder accepts trades routed by ticker symbol.
type TradeRecorder interface {
	RecordTrades(trades []*marketdata.Trade) error
}
