package instruments

import (
	"fmt"
	"time"

	"supersimplestocks/internal/domain/errs"

	"gonum.org/v1/gonum/stat"
)

// TickerPrice is the price per share of the most recent trade by timestamp.
func (i *Instrument) TickerPrice() (float64, error) {
	last, ok := i.trades.GetLastTrade()
	if !ok {
		return 0, fmt.Errorf("%w: no trades recorded for %s", errs.ErrNotAvailable, i.def.Symbol)
	}
	return last.PricePerShare(), nil
}

func (i *Instrument) Dividend() float64 {
	switch i.def.Kind {
	case PreferredKind:
		return PreferredDividend(i.def.FixedDividend, i.def.ParValue)
	default:
		return CommonDividend(i.def.LastDividend)
	}
}

func (i *Instrument) DividendYield() (float64, error) {
	price, err := i.TickerPrice()
	if err != nil {
		return 0, err
	}
	if price == 0 {
		return 0, fmt.Errorf("%w: ticker price of %s is zero", errs.ErrDivisionUndefined, i.def.Symbol)
	}
	switch i.def.Kind {
	case PreferredKind:
		return PreferredDividendYield(i.Dividend(), i.def.ParValue, price), nil
	default:
		return CommonDividendYield(i.Dividend(), price), nil
	}
}

// PriceEarningsRatio returns ticker price / dividend. A nil ratio with a nil
// error means the ratio is undefined because the dividend is zero.
func (i *Instrument) PriceEarningsRatio() (*float64, error) {
	dividend := i.Dividend()
	if dividend == 0 {
		return nil, nil
	}
	price, err := i.TickerPrice()
	if err != nil {
		return nil, err
	}
	ratio := price / dividend
	return &ratio, nil
}

// Price is the volume-weighted price of the trades inside the price window,
// with "now" read once from the instrument's clock.
func (i *Instrument) Price() (float64, error) {
	return i.PriceAt(i.clock.Now())
}

// PriceAt is Price evaluated at now. The lower bound now-window is inclusive.
// Quantities are weighted as float64 so large volumes cannot wrap the sum.
func (i *Instrument) PriceAt(now time.Time) (float64, error) {
	window := i.trades.GetTradesSince(now.Add(-i.window))
	if len(window) == 0 {
		return 0, fmt.Errorf("%w: no trades for %s in the last %s", errs.ErrNotAvailable, i.def.Symbol, i.window)
	}
	prices := make([]float64, len(window))
	quantities := make([]float64, len(window))
	for idx, trade := range window {
		prices[idx] = trade.PricePerShare()
		quantities[idx] = float64(trade.Quantity())
	}
	return stat.Mean(prices, quantities), nil
}
