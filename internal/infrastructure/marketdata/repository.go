package marketdata

import (
	"sync"
	"time"

	domain "supersimplestocks/internal/domain/entity/marketdata"
	interfaces "supersimplestocks/internal/domain/interfaces"
)

// Repository is an in-memory, append-only trade log for a single instrument.
// Appends take the write lock; reads share the read lock and get copies.
type Repository struct {
	mu     sync.RWMutex
	trades []*domain.Trade
}

var _ interfaces.TradeHistory = (*Repository)(nil)

// NewRepository returns an empty trade history.
func NewRepository() *Repository {
	return &Repository{}
}

// Trades

func (r *Repository) AddTrade(trade *domain.Trade) error {
	if err := domain.CheckConstructed(trade); err != nil {
		return err
	}
	r.mu.Lock()
	r.trades = append(r.trades, trade)
	r.mu.Unlock()
	return nil
}

func (r *Repository) GetLastTrade() (*domain.Trade, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *domain.Trade
	for _, trade := range r.trades {
		if last == nil || trade.Timestamp().After(last.Timestamp()) {
			last = trade
		}
	}
	return last, last != nil
}

func (r *Repository) GetTradesSince(from time.Time) []*domain.Trade {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trades []*domain.Trade
	for _, trade := range r.trades {
		if !trade.Timestamp().Before(from) {
			trades = append(trades, trade)
		}
	}
	return trades
}

func (r *Repository) Trades() []*domain.Trade {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trades := make([]*domain.Trade, len(r.trades))
	copy(trades, r.trades)
	return trades
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trades)
}
