package feed

import (
	"errors"
	"sync"
	"time"

	domain "supersimplestocks/internal/domain/entity/marketdata"
	interfaces "supersimplestocks/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const defaultBatchSize = 50

// BatchConfig controls batching thresholds for trade ingestion.
type BatchConfig struct {
	Size int
}

// BatchWriter buffers trades and flushes them to a recorder in batches.
type BatchWriter struct {
	trades *batchBuffer[*domain.Trade]

	statsMu sync.Mutex
	stats   Stats
}

// Stats counts what the writer has flushed so far.
type Stats struct {
	Batches  int
	Recorded int
	Rejected int
}

func NewBatchWriter(cfg BatchConfig, recorder interfaces.TradeRecorder, logger *logrus.Logger) *BatchWriter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	w := &BatchWriter{}
	w.trades = newBatchBuffer(cfg, func(batch []*domain.Trade) error {
		err := recorder.RecordTrades(batch)
		w.count(len(batch), err)
		return err
	}, logger.WithField("component", "batch_writer").WithField("entity", "trade"))
	return w
}

// AddTrade buffers trade and flushes the buffer once it is full.
func (w *BatchWriter) AddTrade(trade *domain.Trade) error {
	if err := domain.CheckConstructed(trade); err != nil {
		return err
	}
	return w.trades.enqueue(trade)
}

// Flush sends whatever is buffered.
func (w *BatchWriter) Flush() error {
	return w.trades.drain()
}

// Stop flushes the remaining trades; later AddTrade calls fail.
func (w *BatchWriter) Stop() error {
	err := w.trades.drain()
	w.trades.close()
	return err
}

func (w *BatchWriter) Stats() Stats {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return w.stats
}

func (w *BatchWriter) count(size int, err error) {
	rejected := countJoined(err)
	w.statsMu.Lock()
	w.stats.Batches++
	w.stats.Recorded += size - rejected
	w.stats.Rejected += rejected
	w.statsMu.Unlock()
}

func countJoined(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

var errBufferClosed = errors.New("batch buffer is closed")

type batchBuffer[T any] struct {
	cfg     BatchConfig
	mu      sync.Mutex
	items   []T
	closed  bool
	flushFn func([]T) error
	logger  *logrus.Entry
}

func newBatchBuffer[T any](cfg BatchConfig, flushFn func([]T) error, logger *logrus.Entry) *batchBuffer[T] {
	if cfg.Size <= 0 {
		cfg.Size = defaultBatchSize
	}
	return &batchBuffer[T]{
		cfg:     cfg,
		flushFn: flushFn,
		logger:  logger,
	}
}

func (bb *batchBuffer[T]) enqueue(item T) error {
	bb.mu.Lock()
	if bb.closed {
		bb.mu.Unlock()
		return errBufferClosed
	}
	bb.items = append(bb.items, item)
	var batch []T
	if len(bb.items) >= bb.cfg.Size {
		batch = bb.takeBatchLocked()
	}
	bb.mu.Unlock()

	return bb.flush(batch)
}

func (bb *batchBuffer[T]) takeBatchLocked() []T {
	if len(bb.items) == 0 {
		return nil
	}
	batch := make([]T, len(bb.items))
	copy(batch, bb.items)
	bb.items = bb.items[:0]
	return batch
}

func (bb *batchBuffer[T]) flush(batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	start := time.Now()
	err := bb.flushFn(batch)
	fields := logrus.Fields{
		"size":    len(batch),
		"took_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		bb.logger.WithFields(fields).WithError(err).Warn("batch flushed with rejected trades")
		return err
	}
	bb.logger.WithFields(fields).Debug("flushed batch")
	return nil
}

func (bb *batchBuffer[T]) drain() error {
	bb.mu.Lock()
	batch := bb.takeBatchLocked()
	bb.mu.Unlock()
	return bb.flush(batch)
}

func (bb *batchBuffer[T]) close() {
	bb.mu.Lock()
	bb.closed = true
	bb.mu.Unlock()
}
