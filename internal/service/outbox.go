package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/nars/internal/domain"
)

const (
	defaultOutboxBuffer = 1024
	defaultRingSize     = 500
	journalTimeout      = 5 * time.Second
)

// Outbox carries output events and snapshots away from the cycle worker.
// Publishing never blocks the worker: events are dropped when the buffer is
// full and only the newest snapshot is kept.
type Outbox struct {
	store  domain.OutputStore
	logger *zap.Logger

	events    chan domain.OutputEvent
	snapshots chan domain.Snapshot
	latest    atomic.Pointer[domain.Snapshot]

	mu       sync.RWMutex
	ring     []domain.OutputEvent
	ringSize int
	next     int
	full     bool

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewOutbox creates an outbox. store may be nil.
func NewOutbox(store domain.OutputStore, logger *zap.Logger) *Outbox {
	return &Outbox{
		store:     store,
		logger:    logger,
		events:    make(chan domain.OutputEvent, defaultOutboxBuffer),
		snapshots: make(chan domain.Snapshot, 1),
		ring:      make([]domain.OutputEvent, defaultRingSize),
		ringSize:  defaultRingSize,
		stopCh:    make(chan struct{}),
	}
}

func (o *Outbox) Publish(ev domain.OutputEvent) {
	select {
	case o.events <- ev:
	default:
		outputsDroppedTotal.Inc()
		o.logger.Warn("outbox full, dropping event", zap.String("kind", string(ev.Kind)), zap.String("text", ev.Text))
	}
}

// PublishSnapshot replaces any snapshot not yet picked up.
func (o *Outbox) PublishSnapshot(s domain.Snapshot) {
	for {
		select {
		case o.snapshots <- s:
			return
		default:
		}
		select {
		case <-o.snapshots:
		default:
		}
	}
}

func (o *Outbox) Start() {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.logger.Info("outbox started")

		for {
			select {
			case ev := <-o.events:
				o.deliver(ev)
			case s := <-o.snapshots:
				o.latest.Store(&s)
			case <-o.stopCh:
				o.drain()
				o.logger.Info("outbox stopped")
				return
			}
		}
	}()
}

// Stop delivers what is already queued, then returns. Repeated calls are no-ops.
func (o *Outbox) Stop() {
	o.stopOnce.Do(func() { close(o.stopCh) })
	o.wg.Wait()
}

func (o *Outbox) drain() {
	for {
		select {
		case ev := <-o.events:
			o.deliver(ev)
		case s := <-o.snapshots:
			o.latest.Store(&s)
		default:
			return
		}
	}
}

func (o *Outbox) deliver(ev domain.OutputEvent) {
	o.mu.Lock()
	o.ring[o.next] = ev
	o.next = (o.next + 1) % o.ringSize
	if o.next == 0 {
		o.full = true
	}
	o.mu.Unlock()

	if ev.Kind != domain.OutputAnswer {
		o.logger.Debug("output", zap.String("kind", string(ev.Kind)), zap.Uint64("cycle", ev.Cycle), zap.String("text", ev.Text))
	}

	if o.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := o.store.Append(ctx, &ev); err != nil {
		journalErrorsTotal.Inc()
		o.logger.Error("failed to journal output", zap.String("id", ev.ID), zap.Error(err))
	}
}

// Recent returns up to limit delivered events, oldest first.
func (o *Outbox) Recent(limit int) []domain.OutputEvent {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := o.next
	if o.full {
		n = o.ringSize
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.OutputEvent, 0, limit)
	for i := n - limit; i < n; i++ {
		idx := i
		if o.full {
			idx = (o.next + i) % o.ringSize
		}
		out = append(out, o.ring[idx])
	}
	return out
}

// LatestSnapshot returns the most recent snapshot delivered by the worker.
func (o *Outbox) LatestSnapshot() (domain.Snapshot, bool) {
	s := o.latest.Load()
	if s == nil {
		return domain.Snapshot{}, false
	}
	return *s, true
}
