package simulator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"supersimplestocks/internal/domain/entity/instruments"
	marketdata "supersimplestocks/internal/domain/entity/marketdata"
)

const (
	DefaultSeed = 1984

	minTickMs   = 10
	maxTickMs   = 2000
	minQuantity = 25
	maxQuantity = 5000
	// prices are drawn within ±priceSpread of par value
	priceSpread = 0.10
)

// DefaultStart is the opening of the first simulated session.
var DefaultStart = time.Date(1929, time.October, 24, 9, 30, 0, 0, time.UTC)

// Generator produces a reproducible stream of trades for a set of instruments.
type Generator struct {
	rng  *rand.Rand
	defs []instruments.Definition
	now  time.Time
}

func NewGenerator(seed int64, start time.Time, defs []instruments.Definition) (*Generator, error) {
	if len(defs) == 0 {
		return nil, errors.New("generator needs at least one instrument definition")
	}
	if start.IsZero() {
		start = DefaultStart
	}
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		defs: append([]instruments.Definition(nil), defs...),
		now:  start,
	}, nil
}

// Next returns the next trade. Timestamps strictly increase.
func (g *Generator) Next() (*marketdata.Trade, error) {
	def := g.defs[g.rng.Intn(len(g.defs))]
	g.now = g.now.Add(time.Duration(minTickMs+g.rng.Intn(maxTickMs-minTickMs)) * time.Millisecond)

	quantity := int64(minQuantity + g.rng.Intn(maxQuantity-minQuantity))
	base := def.ParValue
	if base == 0 {
		base = 1
	}
	price := round(base*(1+(g.rng.Float64()*2-1)*priceSpread), 2)

	side := marketdata.SideBuy
	if g.rng.Intn(2) == 0 {
		side = marketdata.SideSell
	}

	trade, err := marketdata.NewTrade(def.Symbol, g.now, quantity, price, side)
	if err != nil {
		return nil, fmt.Errorf("generate trade for %s: %w", def.Symbol, err)
	}
	return trade, nil
}

// Generate returns n trades.
func (g *Generator) Generate(n int) ([]*marketdata.Trade, error) {
	trades := make([]*marketdata.Trade, 0, n)
	for i := 0; i < n; i++ {
		trade, err := g.Next()
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// Now is the timestamp of the last generated trade, or the start time.
func (g *Generator) Now() time.Time {
	return g.now
}

func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
