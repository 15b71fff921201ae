package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultSnapshotInterval = 100

// Status is a point-in-time view of the worker, safe to read from any goroutine.
type Status struct {
	RunID  string `json:"run_id"`
	Cycle  uint64 `json:"cycle"`
	Paused bool   `json:"paused"`
}

// Runner drives a Reasoner on a single background worker. Pausing takes
// effect at the next cycle boundary; the cycle in flight always completes.
type Runner struct {
	reasoner *Reasoner
	out      Publisher
	logger   *zap.Logger

	limiter          *rate.Limiter
	snapshotInterval uint64

	paused atomic.Bool
	wake   chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(r *Reasoner, out Publisher, logger *zap.Logger) *Runner {
	return &Runner{
		reasoner:         r,
		out:              out,
		logger:           logger,
		snapshotInterval: defaultSnapshotInterval,
		wake:             make(chan struct{}, 1),
	}
}

// SetCycleDelay spaces cycles at least d apart. Zero runs them back to back.
func (w *Runner) SetCycleDelay(d time.Duration) {
	if d <= 0 {
		w.limiter = nil
		return
	}
	w.limiter = rate.NewLimiter(rate.Every(d), 1)
}

// SetSnapshotInterval publishes a snapshot every n cycles.
func (w *Runner) SetSnapshotInterval(n uint64) {
	if n == 0 {
		n = defaultSnapshotInterval
	}
	w.snapshotInterval = n
}

func (w *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("reasoner worker started",
			zap.String("run_id", w.reasoner.RunID()),
			zap.Uint64("snapshot_interval", w.snapshotInterval))
		w.loop(ctx)
		w.logger.Info("reasoner worker stopped", zap.Uint64("cycle", w.reasoner.Cycle()))
	}()
}

// Stop finishes the current cycle and waits for the worker to exit.
func (w *Runner) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
}

func (w *Runner) Pause() {
	w.paused.Store(true)
}

func (w *Runner) Resume() {
	w.paused.Store(false)
	w.signal()
}

func (w *Runner) Paused() bool { return w.paused.Load() }

func (w *Runner) Status() Status {
	return Status{
		RunID:  w.reasoner.RunID(),
		Cycle:  w.reasoner.Cycle(),
		Paused: w.paused.Load(),
	}
}

func (w *Runner) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Runner) loop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if w.paused.Load() {
			w.publishSnapshot()
			select {
			case <-w.wake:
			case <-ctx.Done():
				return
			}
			continue
		}

		if w.reasoner.Idle() {
			select {
			case <-w.reasoner.inputReady:
			case <-w.wake:
			case <-ctx.Done():
				return
			}
			continue
		}

		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
		}

		w.reasoner.DoCycle()
		if w.reasoner.Cycle()%w.snapshotInterval == 0 {
			w.publishSnapshot()
		}
	}
}

func (w *Runner) publishSnapshot() {
	if w.out == nil {
		return
	}
	w.out.PublishSnapshot(w.reasoner.Snapshot())
}
