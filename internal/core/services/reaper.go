package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
)

// Reaper periodically finds documents left unprocessed by a failed
// classification and enqueues reprocess tasks for them, so a transient
// model outage does not strand records forever.
//
// For multi-worker deployments, configure a DistributedLock so only one
// instance reaps at a time.
type Reaper struct {
	documentStore driven.DocumentStore
	taskQueue     driven.TaskQueue
	lock          driven.DistributedLock
	logger        *slog.Logger

	// Internal state
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	interval     time.Duration
	minAge       time.Duration
	lockTTL      time.Duration
	lockRequired bool
}

// ReaperConfig holds configuration for the reaper.
type ReaperConfig struct {
	DocumentStore driven.DocumentStore
	TaskQueue     driven.TaskQueue
	Lock          driven.DistributedLock // Optional: multi-instance coordination
	Logger        *slog.Logger
	PollInterval  time.Duration // How often to scan (default: 5m)
	MinAge        time.Duration // Only documents older than this (default: 10m)
	LockTTL       time.Duration // TTL for the distributed lock (default: 2x poll)
	LockRequired  bool          // Skip the scan when the lock cannot be acquired
}

// lockName is the distributed lock key for the reaper singleton.
const lockName = "reprocess-reaper"

// NewReaper creates a new reaper.
func NewReaper(cfg ReaperConfig) *Reaper {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.PollInterval
	if interval == 0 {
		interval = 5 * time.Minute
	}
	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = 10 * time.Minute
	}
	lockTTL := cfg.LockTTL
	if lockTTL == 0 {
		lockTTL = 2 * interval
	}

	return &Reaper{
		documentStore: cfg.DocumentStore,
		taskQueue:     cfg.TaskQueue,
		lock:          cfg.Lock,
		logger:        logger,
		interval:      interval,
		minAge:        minAge,
		lockTTL:       lockTTL,
		lockRequired:  cfg.LockRequired,
	}
}

// Start begins the reaper loop. It runs until Stop is called or the
// context is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.mu.Unlock()

	r.logger.Info("reaper starting", "poll_interval", r.interval, "min_age", r.minAge)

	go r.run(ctx)
}

// Stop gracefully stops the reaper.
func (r *Reaper) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	close(r.stopCh)
	r.mu.Unlock()

	<-r.doneCh

	r.mu.Lock()
	r.running = false
	r.mu.Unlock()

	r.logger.Info("reaper stopped")
}

func (r *Reaper) run(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper context cancelled")
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep scans for stuck documents once and enqueues reprocess tasks.
func (r *Reaper) Sweep(ctx context.Context) {
	if r.lock != nil {
		acquired, err := r.lock.Acquire(ctx, lockName, r.lockTTL)
		if err != nil {
			r.logger.Warn("failed to acquire reaper lock", "error", err)
			if r.lockRequired {
				return
			}
		} else if !acquired {
			return
		} else {
			defer func() {
				_ = r.lock.Release(ctx, lockName)
			}()
		}
	}

	docs, err := r.documentStore.ListUnprocessed(ctx, int(r.minAge.Seconds()))
	if err != nil {
		r.logger.Error("failed to list unprocessed documents", "error", err)
		return
	}

	for _, doc := range docs {
		task := domain.NewReprocessTask(doc.UserID, doc.ID)
		if err := r.taskQueue.Enqueue(ctx, task); err != nil {
			r.logger.Warn("failed to enqueue reprocess task",
				"document_id", doc.ID,
				"error", err,
			)
			continue
		}
		r.logger.Info("queued reprocess for stuck document", "document_id", doc.ID)
	}
}
