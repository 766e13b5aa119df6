package instruments

import (
	"fmt"
	"time"

	domain "supersimplestocks/internal/domain/entity/instruments"
	marketdata "supersimplestocks/internal/domain/entity/marketdata"
	interfaces "supersimplestocks/internal/domain/interfaces"
	inframarketdata "supersimplestocks/internal/infrastructure/marketdata"
)

// GBCEDefinitions is the sample data of the Global Beverage Corporation
// Exchange. GIN carries a last dividend too but, being preferred, is priced off
// its fixed dividend.
func GBCEDefinitions() []domain.Definition {
	return []domain.Definition{
		{Symbol: marketdata.TickerTEA, Kind: domain.CommonKind, LastDividend: 0, ParValue: 100},
		{Symbol: marketdata.TickerPOP, Kind: domain.CommonKind, LastDividend: 8, ParValue: 100},
		{Symbol: marketdata.TickerALE, Kind: domain.CommonKind, LastDividend: 23, ParValue: 60},
		{Symbol: marketdata.TickerGIN, Kind: domain.PreferredKind, LastDividend: 8, FixedDividend: 0.02, ParValue: 100},
		{Symbol: marketdata.TickerJOE, Kind: domain.CommonKind, LastDividend: 13, ParValue: 250},
	}
}

// BuildConfig controls how instruments are built from definitions.
type BuildConfig struct {
	Clock       interfaces.Clock
	PriceWindow time.Duration
}

// BuildInstruments creates one instrument per definition, each backed by its
// own in-memory trade history.
func BuildInstruments(defs []domain.Definition, cfg BuildConfig) ([]*domain.Instrument, error) {
	opts := []domain.Option{domain.WithClock(cfg.Clock), domain.WithPriceWindow(cfg.PriceWindow)}
	list := make([]*domain.Instrument, 0, len(defs))
	for idx, def := range defs {
		instrument, err := domain.New(def, inframarketdata.NewRepository(), opts...)
		if err != nil {
			return nil, fmt.Errorf("definition %d (%s): %w", idx, def.Symbol, err)
		}
		list = append(list, instrument)
	}
	return list, nil
}
