package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/logger"
	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the number of entries that can wait for a worker.
	BufferSize int
	// NumWorkers is the number of goroutines writing entries.
	NumWorkers int
	// WriteTimeout bounds a single CreateLog call.
	WriteTimeout time.Duration
	// AuditWait is how long an audit entry waits for buffer space before it is
	// dropped. Plain request entries never wait.
	AuditWait time.Duration
	// MaxBatch caps how many buffered entries a worker writes in one call.
	// Values below 2 write entries one at a time.
	MaxBatch int
}

// DefaultAsyncLoggerConfig returns the async logger defaults.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
		AuditWait:    100 * time.Millisecond,
		MaxBatch:     50,
	}
}

// AsyncLoggerStats counts what happened to the entries handed to Log.
type AsyncLoggerStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Errors   int64
}

// AsyncLogger writes request and audit entries through a fixed worker pool.
// Entries are dropped, not queued without bound, when the buffer is full.
type AsyncLogger struct {
	loggingService service.LoggingService
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	writeTimeout   time.Duration
	auditWait      time.Duration
	maxBatch       int

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger starts the worker pool. It returns nil for a nil loggingService.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}
	if cfg.MaxBatch < 1 {
		cfg.MaxBatch = 1
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		writeTimeout:   cfg.WriteTimeout,
		auditWait:      cfg.AuditWait,
		maxBatch:       cfg.MaxBatch,
	}

	al.wg.Add(cfg.NumWorkers)
	for i := 0; i < cfg.NumWorkers; i++ {
		go al.worker()
	}
	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	batch := make([]*model.LogEntry, 0, al.maxBatch)
	for {
		select {
		case entry := <-al.entryCh:
			batch = al.fill(append(batch[:0], entry))
			al.write(batch)
		case <-al.stopCh:
			for {
				batch = al.fill(batch[:0])
				if len(batch) == 0 {
					return
				}
				al.write(batch)
			}
		}
	}
}

// fill tops batch up from the buffer without blocking.
func (al *AsyncLogger) fill(batch []*model.LogEntry) []*model.LogEntry {
	for len(batch) < al.maxBatch {
		select {
		case entry := <-al.entryCh:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
	return batch
}

func (al *AsyncLogger) write(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = al.loggingService.CreateLog(ctx, batch[0])
	} else {
		err = al.loggingService.CreateLogs(ctx, batch)
	}

	n := int64(len(batch))
	if err != nil {
		al.errors.Add(n)
		metrics.RecordAuditLogEntries("error", len(batch))
		first := batch[0]
		reqLog := logger.ForRequest(first.RequestID, first.SessionID)
		reqLog.Warn().Err(err).
			Int("entries", len(batch)).
			Str("action_type", first.ActionType).
			Msg("Failed to write async log entries")
		return
	}
	al.written.Add(n)
	metrics.RecordAuditLogEntries("written", len(batch))
}

// Log enqueues entry and reports whether it was accepted. Audit entries
// (ActionType set) wait up to AuditWait for space; other entries are dropped
// at once when the buffer is full. Entries logged after Stop are dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case <-al.stopCh:
		return al.drop()
	default:
	}

	select {
	case al.entryCh <- entry:
		return al.accept()
	default:
	}

	if !entry.IsAudit() || al.auditWait <= 0 {
		return al.drop()
	}

	timer := time.NewTimer(al.auditWait)
	defer timer.Stop()
	select {
	case al.entryCh <- entry:
		return al.accept()
	case <-timer.C:
	case <-al.stopCh:
	}
	return al.drop()
}

func (al *AsyncLogger) accept() bool {
	al.enqueued.Add(1)
	metrics.RecordAuditLogEntry("enqueued")
	return true
}

func (al *AsyncLogger) drop() bool {
	al.dropped.Add(1)
	metrics.RecordAuditLogEntry("dropped")
	return false
}

// Stop writes the buffered entries and waits for the workers. It is safe to call more than once.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() { close(al.stopCh) })
	al.wg.Wait()
}

// Stats returns the entry counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Errors:   al.errors.Load(),
	}
}

var globalAsyncLogger atomic.Pointer[AsyncLogger]

// InitAsyncLogger starts the global async logger, stopping a previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	if prev := globalAsyncLogger.Swap(NewAsyncLogger(loggingService, cfg)); prev != nil {
		prev.Stop()
	}
}

// GetAsyncLogger returns the global async logger, or nil when none runs.
func GetAsyncLogger() *AsyncLogger {
	return globalAsyncLogger.Load()
}

// StopAsyncLogger stops and clears the global async logger.
func StopAsyncLogger() {
	if prev := globalAsyncLogger.Swap(nil); prev != nil {
		prev.Stop()
	}
}
