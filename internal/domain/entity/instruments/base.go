package instruments

import (
	"fmt"
	"math"
	"time"

	marketdata "supersimplestocks/internal/domain/entity/marketdata"
	"supersimplestocks/internal/domain/errs"
	interfaces "supersimplestocks/internal/domain/interfaces"
)

// DefaultPriceWindow is how far back trades count towards the volume-weighted price.
const DefaultPriceWindow = 15 * time.Minute

// Kind selects the dividend formulas an instrument uses.
type Kind string

const (
	CommonKind    Kind = "common"
	PreferredKind Kind = "preferred"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known instrument kinds.
func (k Kind) IsValid() bool {
	switch k {
	case CommonKind, PreferredKind:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown instrument kind %q", errs.ErrValidation, s)
	}
	return k, nil
}

// Definition is the construction tuple of an instrument. LastDividend is read
// for common stock, FixedDividend (a ratio of par value) for preferred stock.
type Definition struct {
	Symbol        marketdata.TickerSymbol
	Kind          Kind
	LastDividend  float64
	FixedDividend float64
	ParValue      float64
}

func (d Definition) Validate() error {
	if !d.Symbol.IsValid() {
		return fmt.Errorf("%w: unknown ticker symbol %q", errs.ErrValidation, d.Symbol)
	}
	if !d.Kind.IsValid() {
		return fmt.Errorf("%w: unknown instrument kind %q", errs.ErrValidation, d.Kind)
	}
	if err := nonNegative("par value", d.ParValue); err != nil {
		return err
	}
	if err := nonNegative("last dividend", d.LastDividend); err != nil {
		return err
	}
	return nonNegative("fixed dividend", d.FixedDividend)
}

func nonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s must be a non-negative number, got %v", errs.ErrValidation, name, v)
	}
	return nil
}

// Instrument is a publicly traded stock: its definition plus the trades
// recorded against it. Metrics are computed on every read.
type Instrument struct {
	def    Definition
	trades interfaces.TradeHistory
	clock  interfaces.Clock
	window time.Duration
}

type Option func(*Instrument)

// WithClock sets the source of "now" used by Price.
func WithClock(c interfaces.Clock) Option {
	return func(i *Instrument) {
		if c != nil {
			i.clock = c
		}
	}
}

// WithPriceWindow overrides DefaultPriceWindow. Non-positive values are ignored.
func WithPriceWindow(d time.Duration) Option {
	return func(i *Instrument) {
		if d > 0 {
			i.window = d
		}
	}
}

// New builds an instrument from def, recording trades into the given history.
func New(def Definition, trades interfaces.TradeHistory, opts ...Option) (*Instrument, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if trades == nil {
		return nil, fmt.Errorf("%w: trade history is nil", errs.ErrTypeMismatch)
	}
	i := &Instrument{
		def:    def,
		trades: trades,
		clock:  interfaces.SystemClock,
		window: DefaultPriceWindow,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// NewCommon builds a common stock instrument.
func NewCommon(symbol marketdata.TickerSymbol, parValue, lastDividend float64, trades interfaces.TradeHistory, opts ...Option) (*Instrument, error) {
	return New(Definition{
		Symbol:       symbol,
		Kind:         CommonKind,
		LastDividend: lastDividend,
		ParValue:     parValue,
	}, trades, opts...)
}

// NewPreferred builds a preferred stock instrument; fixedDividend is a ratio of par value.
func NewPreferred(symbol marketdata.TickerSymbol, parValue, fixedDividend float64, trades interfaces.TradeHistory, opts ...Option) (*Instrument, error) {
	return New(Definition{
		Symbol:        symbol,
		Kind:          PreferredKind,
		FixedDividend: fixedDividend,
		ParValue:      parValue,
	}, trades, opts...)
}

// CheckConstructed reports ErrTypeMismatch for a nil instrument or one that did
// not come from New.
func CheckConstructed(i *Instrument) error {
	if i == nil {
		return fmt.Errorf("%w: instrument is nil", errs.ErrTypeMismatch)
	}
	if i.trades == nil || i.clock == nil || !i.def.Symbol.IsValid() {
		return fmt.Errorf("%w: instrument was not built with New", errs.ErrTypeMismatch)
	}
	return nil
}

func (i *Instrument) Symbol() marketdata.TickerSymbol { return i.def.Symbol }
func (i *Instrument) Kind() Kind                      { return i.def.Kind }
func (i *Instrument) ParValue() float64               { return i.def.ParValue }
func (i *Instrument) LastDividend() float64           { return i.def.LastDividend }
func (i *Instrument) FixedDividend() float64          { return i.def.FixedDividend }
func (i *Instrument) Definition() Definition          { return i.def }
func (i *Instrument) PriceWindow() time.Duration      { return i.window }

// RecordTrade appends trade to the history after checking it belongs here.
func (i *Instrument) RecordTrade(trade *marketdata.Trade) error {
	if err := marketdata.CheckConstructed(trade); err != nil {
		return err
	}
	if trade.Symbol() != i.def.Symbol {
		return fmt.Errorf("%w: trade for %s recorded against %s", errs.ErrValidation, trade.Symbol(), i.def.Symbol)
	}
	return i.trades.AddTrade(trade)
}

// Trades returns a snapshot of the recorded trades in recording order.
func (i *Instrument) Trades() []*marketdata.Trade {
	return i.trades.Trades()
}

func (i *Instrument) TradeCount() int {
	return i.trades.Len()
}
