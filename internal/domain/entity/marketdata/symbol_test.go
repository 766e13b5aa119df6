package marketdata

import (
	"testing"

	"supersimplestocks/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickerSymbol(t *testing.T) {
	for _, symbol := range TickerSymbols() {
		parsed, err := ParseTickerSymbol(symbol.String())
		require.NoError(t, err)
		assert.Equal(t, symbol, parsed)
	}

	parsed, err := ParseTickerSymbol(" tea ")
	require.NoError(t, err)
	assert.Equal(t, TickerTEA, parsed)

	_, err = ParseTickerSymbol("COLA")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestTickerSymbols_ClosedSet(t *testing.T) {
	symbols := TickerSymbols()
	assert.Len(t, symbols, 5)
	for _, s := range symbols {
		assert.True(t, s.IsValid())
	}
	assert.False(t, TickerSymbol("").IsValid())
	assert.False(t, TickerSymbol("tea").IsValid())
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("buy")
	require.NoError(t, err)
	assert.Equal(t, SideBuy, side)

	side, err = ParseSide("SELL")
	require.NoError(t, err)
	assert.Equal(t, SideSell, side)

	_, err = ParseSide("NA")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
