package instruments_test

import (
	"math"
	"testing"
	"time"

	"supersimplestocks/internal/domain/entity/instruments"
	marketdata "supersimplestocks/internal/domain/entity/marketdata"
	"supersimplestocks/internal/domain/errs"
	inframarketdata "supersimplestocks/internal/infrastructure/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var t0 = time.Date(1929, time.October, 24, 9, 30, 0, 0, time.UTC)

func newCommon(t *testing.T, symbol marketdata.TickerSymbol, par, lastDividend float64, opts ...instruments.Option) *instruments.Instrument {
	t.Helper()
	instrument, err := instruments.NewCommon(symbol, par, lastDividend, inframarketdata.NewRepository(), opts...)
	require.NoError(t, err)
	return instrument
}

func newPreferred(t *testing.T, symbol marketdata.TickerSymbol, par, fixedDividend float64, opts ...instruments.Option) *instruments.Instrument {
	t.Helper()
	instrument, err := instruments.NewPreferred(symbol, par, fixedDividend, inframarketdata.NewRepository(), opts...)
	require.NoError(t, err)
	return instrument
}

func record(t *testing.T, instrument *instruments.Instrument, at time.Time, quantity int64, price float64) *marketdata.Trade {
	t.Helper()
	trade, err := marketdata.NewTrade(instrument.Symbol(), at, quantity, price, marketdata.SideBuy)
	require.NoError(t, err)
	require.NoError(t, instrument.RecordTrade(trade))
	return trade
}

func TestNew_RejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  instruments.Definition
	}{
		{name: "unknown symbol", def: instruments.Definition{Symbol: "XYZ", Kind: instruments.CommonKind, ParValue: 100}},
		{name: "unknown kind", def: instruments.Definition{Symbol: marketdata.TickerTEA, Kind: "convertible", ParValue: 100}},
		{name: "negative par", def: instruments.Definition{Symbol: marketdata.TickerTEA, Kind: instruments.CommonKind, ParValue: -1}},
		{name: "NaN par", def: instruments.Definition{Symbol: marketdata.TickerTEA, Kind: instruments.CommonKind, ParValue: math.NaN()}},
		{name: "negative dividend", def: instruments.Definition{Symbol: marketdata.TickerTEA, Kind: instruments.CommonKind, ParValue: 100, LastDividend: -8}},
		{name: "negative fixed dividend", def: instruments.Definition{Symbol: marketdata.TickerGIN, Kind: instruments.PreferredKind, ParValue: 100, FixedDividend: -0.02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := instruments.New(tt.def, inframarketdata.NewRepository())
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestNew_RequiresTradeHistory(t *testing.T) {
	_, err := instruments.NewCommon(marketdata.TickerTEA, 100, 0, nil)
	assert.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestCheckConstructed(t *testing.T) {
	assert.NoError(t, instruments.CheckConstructed(newCommon(t, marketdata.TickerTEA, 100, 0)))
	assert.ErrorIs(t, instruments.CheckConstructed(nil), errs.ErrTypeMismatch)
	assert.ErrorIs(t, instruments.CheckConstructed(&instruments.Instrument{}), errs.ErrTypeMismatch)
}

func TestNewKind(t *testing.T) {
	kind, err := instruments.NewKind("preferred")
	require.NoError(t, err)
	assert.Equal(t, instruments.PreferredKind, kind)

	_, err = instruments.NewKind("bond")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestRecordTrade(t *testing.T) {
	ale := newCommon(t, marketdata.TickerALE, 60, 23)

	trade := record(t, ale, t0, 100, 61.5)
	assert.Equal(t, []*marketdata.Trade{trade}, ale.Trades())
	assert.Equal(t, 1, ale.TradeCount())
}

func TestRecordTrade_ChecksType(t *testing.T) {
	ale := newCommon(t, marketdata.TickerALE, 60, 23)

	assert.ErrorIs(t, ale.RecordTrade(nil), errs.ErrTypeMismatch)
	assert.ErrorIs(t, ale.RecordTrade(&marketdata.Trade{}), errs.ErrTypeMismatch)
	assert.Zero(t, ale.TradeCount())
}

func TestRecordTrade_ChecksTickerSymbol(t *testing.T) {
	ale := newCommon(t, marketdata.TickerALE, 60, 23)
	teaTrade, err := marketdata.NewTrade(marketdata.TickerTEA, t0, 10, 1, marketdata.SideSell)
	require.NoError(t, err)

	err = ale.RecordTrade(teaTrade)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Zero(t, ale.TradeCount())
}

func TestTickerPrice_NoTrades(t *testing.T) {
	tea := newCommon(t, marketdata.TickerTEA, 100, 0)

	_, err := tea.TickerPrice()
	assert.ErrorIs(t, err, errs.ErrNotAvailable)
}

func TestTickerPrice_UsesLatestTimestampNotInsertionOrder(t *testing.T) {
	pop := newCommon(t, marketdata.TickerPOP, 100, 8)
	record(t, pop, t0.Add(2*time.Minute), 10, 92)
	record(t, pop, t0, 10, 90)
	record(t, pop, t0.Add(time.Minute), 10, 91)

	price, err := pop.TickerPrice()
	require.NoError(t, err)
	assert.Equal(t, 92.0, price)
}

func TestTickerPrice_TieKeepsFirstRecorded(t *testing.T) {
	pop := newCommon(t, marketdata.TickerPOP, 100, 8)
	record(t, pop, t0, 10, 90)
	record(t, pop, t0, 10, 95)

	price, err := pop.TickerPrice()
	require.NoError(t, err)
	assert.Equal(t, 90.0, price)
}

func TestProperty_TickerPriceIsPriceOfLatestTrade(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		joe, err := instruments.NewCommon(marketdata.TickerJOE, 250, 13, inframarketdata.NewRepository())
		if err != nil {
			rt.Fatalf("new instrument: %v", err)
		}
		n := rapid.IntRange(1, 30).Draw(rt, "n")

		var latest *marketdata.Trade
		for i := 0; i < n; i++ {
			offset := rapid.IntRange(0, 3600).Draw(rt, "offset")
			price := rapid.Float64Range(0, 1000).Draw(rt, "price")
			trade, err := marketdata.NewTrade(marketdata.TickerJOE, t0.Add(time.Duration(offset)*time.Second), 1, price, marketdata.SideBuy)
			if err != nil {
				rt.Fatalf("new trade: %v", err)
			}
			if err := joe.RecordTrade(trade); err != nil {
				rt.Fatalf("record trade: %v", err)
			}
			if latest == nil || trade.Timestamp().After(latest.Timestamp()) {
				latest = trade
			}
		}

		got, err := joe.TickerPrice()
		if err != nil {
			rt.Fatalf("ticker price: %v", err)
		}
		if got != latest.PricePerShare() {
			rt.Fatalf("ticker price = %v, want %v", got, latest.PricePerShare())
		}
	})
}
