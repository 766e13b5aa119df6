package exchange

import (
	"errors"
	"time"

	"supersimplestocks/internal/domain/entity/instruments"
	marketdata "supersimplestocks/internal/domain/entity/marketdata"
	"supersimplestocks/internal/domain/errs"
)

// Quote holds the metrics of one instrument at a point in time. Pointer fields
// are nil when the value is not available or undefined.
type Quote struct {
	Symbol             marketdata.TickerSymbol
	Kind               instruments.Kind
	ParValue           float64
	Dividend           float64
	TickerPrice        *float64
	DividendYield      *float64
	PriceEarningsRatio *float64
	Price              *float64
	Trades             int
}

// Summary is a snapshot of every instrument plus the all-share index.
type Summary struct {
	At            time.Time
	Quotes        []Quote
	AllShareIndex *float64
}

// Summary evaluates every metric at now. Metrics that are not available are
// left nil; any other failure is returned.
func (e *Exchange) Summary(now time.Time) (Summary, error) {
	summary := Summary{At: now}
	for _, instrument := range e.Instruments() {
		q := Quote{
			Symbol:   instrument.Symbol(),
			Kind:     instrument.Kind(),
			ParValue: instrument.ParValue(),
			Dividend: instrument.Dividend(),
			Trades:   instrument.TradeCount(),
		}

		var err error
		if q.TickerPrice, err = optional(instrument.TickerPrice()); err != nil {
			return Summary{}, err
		}
		if q.DividendYield, err = optional(instrument.DividendYield()); err != nil {
			return Summary{}, err
		}
		if q.PriceEarningsRatio, err = instrument.PriceEarningsRatio(); err != nil && !isUnavailable(err) {
			return Summary{}, err
		}
		if q.Price, err = optional(instrument.PriceAt(now)); err != nil {
			return Summary{}, err
		}
		summary.Quotes = append(summary.Quotes, q)
	}

	index, err := optional(e.AllShareIndexAt(now))
	if err != nil {
		return Summary{}, err
	}
	summary.AllShareIndex = index
	return summary, nil
}

func optional(v float64, err error) (*float64, error) {
	if err != nil {
		if isUnavailable(err) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func isUnavailable(err error) bool {
	return errors.Is(err, errs.ErrNotAvailable) || errors.Is(err, errs.ErrDivisionUndefined)
}
