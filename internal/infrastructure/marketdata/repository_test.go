package marketdata

import (
	"testing"
	"time"

	domain "supersimplestocks/internal/domain/entity/marketdata"
	"supersimplestocks/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var t0 = time.Date(1929, time.October, 24, 9, 30, 0, 0, time.UTC)

func newTrade(t *testing.T, at time.Time, price float64) *domain.Trade {
	t.Helper()
	trade, err := domain.NewTrade(domain.TickerTEA, at, 10, price, domain.SideBuy)
	require.NoError(t, err)
	return trade
}

func TestRepository_AddTrade(t *testing.T) {
	repo := NewRepository()
	trade := newTrade(t, t0, 1)

	require.NoError(t, repo.AddTrade(trade))
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, []*domain.Trade{trade}, repo.Trades())
}

func TestRepository_AddTrade_RejectsMalformed(t *testing.T) {
	repo := NewRepository()

	assert.ErrorIs(t, repo.AddTrade(nil), errs.ErrTypeMismatch)
	assert.ErrorIs(t, repo.AddTrade(&domain.Trade{}), errs.ErrTypeMismatch)
	assert.Zero(t, repo.Len())
}

func TestRepository_TradesReturnsCopy(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.AddTrade(newTrade(t, t0, 1)))

	snapshot := repo.Trades()
	snapshot[0] = nil
	assert.NotNil(t, repo.Trades()[0])
}

func TestRepository_GetLastTrade(t *testing.T) {
	repo := NewRepository()
	_, ok := repo.GetLastTrade()
	assert.False(t, ok)

	require.NoError(t, repo.AddTrade(newTrade(t, t0.Add(time.Minute), 2)))
	require.NoError(t, repo.AddTrade(newTrade(t, t0, 1)))
	require.NoError(t, repo.AddTrade(newTrade(t, t0.Add(time.Minute), 3)))

	last, ok := repo.GetLastTrade()
	require.True(t, ok)
	assert.Equal(t, 2.0, last.PricePerShare())
}

func TestRepository_GetTradesSince(t *testing.T) {
	repo := NewRepository()
	before := newTrade(t, t0.Add(-time.Second), 1)
	boundary := newTrade(t, t0, 2)
	after := newTrade(t, t0.Add(time.Hour), 3)
	for _, trade := range []*domain.Trade{after, before, boundary} {
		require.NoError(t, repo.AddTrade(trade))
	}

	assert.Equal(t, []*domain.Trade{after, boundary}, repo.GetTradesSince(t0))
	assert.Empty(t, repo.GetTradesSince(t0.Add(2*time.Hour)))
}

func TestRepository_ConcurrentAppendsAreNotLost(t *testing.T) {
	repo := NewRepository()
	const writers, perWriter = 8, 250

	var g errgroup.Group
	for w := 0; w < writers; w++ {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				trade, err := domain.NewTrade(domain.TickerTEA, t0.Add(time.Duration(i)*time.Second), 1, 1, domain.SideSell)
				if err != nil {
					return err
				}
				if err := repo.AddTrade(trade); err != nil {
					return err
				}
				repo.GetTradesSince(t0)
				repo.GetLastTrade()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, writers*perWriter, repo.Len())
}
