package exchange

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"supersimplestocks/internal/domain/entity/instruments"
	marketdata "supersimplestocks/internal/domain/entity/marketdata"
	"supersimplestocks/internal/domain/errs"
	interfaces "supersimplestocks/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Exchange routes trades to the instrument with the matching ticker symbol
// and derives the exchange-wide all-share index.
type Exchange struct {
	mu          sync.RWMutex
	instruments map[marketdata.TickerSymbol]*instruments.Instrument

	clock  interfaces.Clock
	logger *logrus.Entry
}

var _ interfaces.TradeRecorder = (*Exchange)(nil)

type Option func(*Exchange)

// WithClock sets the source of "now" for AllShareIndex.
func WithClock(c interfaces.Clock) Option {
	return func(e *Exchange) {
		if c != nil {
			e.clock = c
		}
	}
}

// New returns an empty exchange. A nil logger falls back to the logrus standard logger.
func New(logger *logrus.Logger, opts ...Option) *Exchange {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	e := &Exchange{
		instruments: make(map[marketdata.TickerSymbol]*instruments.Instrument),
		clock:       interfaces.SystemClock,
		logger:      logger.WithField("component", "exchange"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWithInstruments builds an exchange that owns the given instruments.
func NewWithInstruments(logger *logrus.Logger, list []*instruments.Instrument, opts ...Option) (*Exchange, error) {
	e := New(logger, opts...)
	for _, instrument := range list {
		if err := e.AddInstrument(instrument); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddInstrument registers instrument under its ticker symbol.
func (e *Exchange) AddInstrument(instrument *instruments.Instrument) error {
	if err := instruments.CheckConstructed(instrument); err != nil {
		return err
	}
	symbol := instrument.Symbol()

	e.mu.Lock()
	if _, exists := e.instruments[symbol]; exists {
		e.mu.Unlock()
		return fmt.Errorf("%w: instrument %s is already registered", errs.ErrConflict, symbol)
	}
	e.instruments[symbol] = instrument
	e.mu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"symbol":    symbol,
		"kind":      instrument.Kind(),
		"par_value": instrument.ParValue(),
	}).Info("instrument registered")
	return nil
}

// Instrument looks up the instrument registered for symbol.
func (e *Exchange) Instrument(symbol marketdata.TickerSymbol) (*instruments.Instrument, error) {
	e.mu.RLock()
	instrument, ok := e.instruments[symbol]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no instrument registered for %s", errs.ErrNotFound, symbol)
	}
	return instrument, nil
}

// Instruments returns the registered instruments ordered by ticker symbol.
func (e *Exchange) Instruments() []*instruments.Instrument {
	e.mu.RLock()
	list := make([]*instruments.Instrument, 0, len(e.instruments))
	for _, instrument := range e.instruments {
		list = append(list, instrument)
	}
	e.mu.RUnlock()

	sort.Slice(list, func(a, b int) bool {
		return list[a].Symbol() < list[b].Symbol()
	})
	return list
}

// RecordTrade records trade against the instrument named by its ticker symbol.
func (e *Exchange) RecordTrade(trade *marketdata.Trade) error {
	if err := marketdata.CheckConstructed(trade); err != nil {
		return err
	}
	instrument, err := e.Instrument(trade.Symbol())
	if err != nil {
		return err
	}
	if err := instrument.RecordTrade(trade); err != nil {
		return err
	}
	e.logger.WithFields(logrus.Fields{
		"trade_id": trade.ID(),
		"symbol":   trade.Symbol(),
		"side":     trade.Side(),
		"quantity": trade.Quantity(),
		"price":    trade.PricePerShare(),
	}).Debug("trade recorded")
	return nil
}

// RecordTrades records every trade in order. Trades that fail do not stop the
// rest; all failures are returned joined.
func (e *Exchange) RecordTrades(trades []*marketdata.Trade) error {
	var errList []error
	for idx, trade := range trades {
		if err := e.RecordTrade(trade); err != nil {
			errList = append(errList, fmt.Errorf("trade %d: %w", idx, err))
		}
	}
	return errors.Join(errList...)
}

// AllShareIndex is the geometric mean of every instrument's price, with "now"
// sampled once from the exchange clock.
func (e *Exchange) AllShareIndex() (float64, error) {
	return e.AllShareIndexAt(e.clock.Now())
}

// AllShareIndexAt is AllShareIndex evaluated at now.
func (e *Exchange) AllShareIndexAt(now time.Time) (float64, error) {
	list := e.Instruments()
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: no instruments registered", errs.ErrNotAvailable)
	}
	prices := make([]float64, 0, len(list))
	for _, instrument := range list {
		price, err := instrument.PriceAt(now)
		if err != nil {
			return 0, fmt.Errorf("all share index: %w", err)
		}
		prices = append(prices, price)
	}
	return stat.GeometricMean(prices, nil), nil
}
