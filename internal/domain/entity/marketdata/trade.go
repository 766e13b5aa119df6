package marketdata

import (
	"fmt"
	"math"
	"time"

	"supersimplestocks/internal/domain/errs"

	"github.com/google/uuid"
)

// Trade models a single change of ownership of shares at a definite price.
// It is immutable once built by NewTrade.
type Trade struct {
	id       uuid.UUID
	symbol   TickerSymbol
	side     Side
	price    float64
	quantity int64
	tradedAt time.Time
}

// NewTrade validates its arguments and returns a trade with a fresh ID.
func NewTrade(symbol TickerSymbol, tradedAt time.Time, quantity int64, price float64, side Side) (*Trade, error) {
	if !symbol.IsValid() {
		return nil, fmt.Errorf("%w: unknown ticker symbol %q", errs.ErrValidation, symbol)
	}
	if tradedAt.IsZero() {
		return nil, fmt.Errorf("%w: timestamp is required", errs.ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", errs.ErrValidation, quantity)
	}
	// written so that NaN fails as well
	if !(price >= 0) {
		return nil, fmt.Errorf("%w: price must be non-negative, got %v", errs.ErrValidation, price)
	}
	if math.IsInf(price, 1) {
		return nil, fmt.Errorf("%w: price must be finite", errs.ErrValidation)
	}
	if !side.IsValid() {
		return nil, fmt.Errorf("%w: unknown buy/sell indicator %q", errs.ErrValidation, side)
	}
	return &Trade{
		id:       uuid.New(),
		symbol:   symbol,
		side:     side,
		price:    price,
		quantity: quantity,
		tradedAt: tradedAt,
	}, nil
}

func (t *Trade) ID() uuid.UUID          { return t.id }
func (t *Trade) Symbol() TickerSymbol   { return t.symbol }
func (t *Trade) Side() Side             { return t.side }
func (t *Trade) PricePerShare() float64 { return t.price }
func (t *Trade) Quantity() int64        { return t.quantity }
func (t *Trade) Timestamp() time.Time   { return t.tradedAt }
func (t *Trade) TotalPrice() float64    { return float64(t.quantity) * t.price }

// CheckConstructed reports ErrTypeMismatch for a nil trade or one that did not
// come from NewTrade.
func CheckConstructed(t *Trade) error {
	if t == nil {
		return fmt.Errorf("%w: trade is nil", errs.ErrTypeMismatch)
	}
	if t.id == uuid.Nil {
		return fmt.Errorf("%w: trade was not built with NewTrade", errs.ErrTypeMismatch)
	}
	return nil
}

func (t *Trade) String() string {
	return fmt.Sprintf("%s %s %d@%.2f %s", t.symbol, t.side, t.quantity, t.price, t.tradedAt.Format(time.RFC3339Nano))
}
