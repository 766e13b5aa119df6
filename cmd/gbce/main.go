package main

import (
	"os"

	"supersimplestocks/internal/application/service/exchange"
	"supersimplestocks/internal/config"
	"supersimplestocks/internal/infrastructure/clock"
	"supersimplestocks/internal/infrastructure/feed"
	infrainstruments "supersimplestocks/internal/infrastructure/instruments"
	"supersimplestocks/internal/infrastructure/simulator"
	"supersimplestocks/internal/interfaces/report"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if err := configureLogger(logger, cfg.Log); err != nil {
		logger.Fatalf("failed to configure logger: %v", err)
	}

	marketClock := clock.NewManual(cfg.Sim.Start)
	defs := infrainstruments.GBCEDefinitions()

	list, err := infrainstruments.BuildInstruments(defs, infrainstruments.BuildConfig{
		Clock:       marketClock,
		PriceWindow: cfg.Market.PriceWindow,
	})
	if err != nil {
		logger.Fatalf("failed to build instruments: %v", err)
	}

	gbce, err := exchange.NewWithInstruments(logger, list, exchange.WithClock(marketClock))
	if err != nil {
		logger.Fatalf("failed to init exchange: %v", err)
	}

	generator, err := simulator.NewGenerator(cfg.Sim.Seed, cfg.Sim.Start, defs)
	if err != nil {
		logger.Fatalf("failed to init generator: %v", err)
	}

	writer := feed.NewBatchWriter(feed.BatchConfig{Size: cfg.Feed.BatchSize}, gbce, logger)
	for i := 0; i < cfg.Sim.Trades; i++ {
		trade, err := generator.Next()
		if err != nil {
			logger.Fatalf("failed to generate trade: %v", err)
		}
		marketClock.Set(trade.Timestamp())
		if err := writer.AddTrade(trade); err != nil {
			logger.WithError(err).Warn("trade batch rejected")
		}
	}
	if err := writer.Stop(); err != nil {
		logger.WithError(err).Warn("final trade batch rejected")
	}

	stats := writer.Stats()
	logger.WithFields(logrus.Fields{
		"env":      cfg.Env,
		"batches":  stats.Batches,
		"recorded": stats.Recorded,
		"rejected": stats.Rejected,
	}).Info("simulation finished")

	summary, err := gbce.Summary(marketClock.Now())
	if err != nil {
		logger.Fatalf("failed to compute summary: %v", err)
	}
	if err := report.Render(os.Stdout, summary, cfg.Report.Format); err != nil {
		logger.Fatalf("failed to render report: %v", err)
	}
}

func configureLogger(logger *logrus.Logger, cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
