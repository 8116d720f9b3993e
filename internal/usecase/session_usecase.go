package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"repairshop/internal/domain/entities"
	"repairshop/internal/infrastructure/clock"
	"repairshop/internal/usecase/interfaces"
)

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrRecordNotFound = errors.New("job record not in session view")
)

const (
	persistTimeout     = 10 * time.Second
	resubscribeBaseOff = time.Second
	resubscribeMaxOff  = 30 * time.Second
)

// FeedOutcome is the observable result of handing a feed event to a session.

type FeedOutcome string

const (
	FeedApplied    FeedOutcome = "applied"
	FeedSuppressed FeedOutcome = "suppressed"
)

// SessionConfig wires one staff session. Repo and Feed are required; the
// rest defaults to production values.
type SessionConfig struct {
	Repo  interfaces.IJobRecordRepository
	Feed  interfaces.IChangeFeed
	Clock clock.Clock
	Log   *zap.Logger

	SuppressionWindow time.Duration
	FlushDelay        time.Duration

	// OnInsertNotify fires when a remote insert lands (visual/audible cue).
	OnInsertNotify func(entities.JobRecord)
	// OnFlushError surfaces a failed persistence write without blocking the
	// editing flow; local optimistic state is kept as-is.
	OnFlushError func(recordID string, err error)
}

// Session is one client session's authoritative, in-memory view of the
// visible job records (the local edit buffer).
//
// Mutations apply to the buffer instantly and never wait on the persistence
// round trip. Writes reach the store through the debouncer; incoming feed
// events pass the reconciliation guard before they may replace local state
// (record-granularity last-writer-wins, no field merging).
//
// A failed write is deliberately NOT rolled back: reverting the buffer would
// make text the user is still typing flicker. The next successful flush
// reconciles.
type Session struct {
	repo  interfaces.IJobRecordRepository
	feed  interfaces.IChangeFeed
	clk   clock.Clock
	log   *zap.Logger
	guard *ReconcileGuard
	deb   *FlushDebouncer

	onInsertNotify func(entities.JobRecord)
	onFlushError   func(recordID string, err error)

	mu      sync.RWMutex
	records map[string]entities.JobRecord

	searchMu     sync.Mutex
	searchCancel context.CancelFunc

	subMu       sync.Mutex
	unsubscribe func()

	closeOnce sync.Once
	closed    chan struct{}
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Repo == nil {
		return nil, errors.New("session: repository is required")
	}
	if cfg.Feed == nil {
		return nil, errors.New("session: change feed is required")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		repo:           cfg.Repo,
		feed:           cfg.Feed,
		clk:            clk,
		log:            log.Named("session"),
		guard:          NewReconcileGuard(clk, cfg.SuppressionWindow),
		deb:            NewFlushDebouncer(cfg.FlushDelay),
		onInsertNotify: cfg.OnInsertNotify,
		onFlushError:   cfg.OnFlushError,
		records:        make(map[string]entities.JobRecord),
		closed:         make(chan struct{}),
	}, nil
}

// Start loads the visible records and opens the change-feed subscription.
func (s *Session) Start(ctx context.Context) error {
	recs, err := s.repo.Query(ctx, interfaces.RecordFilter{})
	if err != nil {
		return err
	}
	s.mu.Lock()
	for _, r := range recs {
		s.records[r.ID] = r
	}
	s.mu.Unlock()

	return s.subscribe(ctx)
}

func (s *Session) subscribe(ctx context.Context) error {
	unsub, err := s.feed.Subscribe(ctx, interfaces.FeedHandlers{
		OnInsert: func(r entities.JobRecord) {
			s.OnFeedEvent(interfaces.FeedEvent{Type: interfaces.FeedEventInsert, RecordID: r.ID, Record: r})
		},
		OnUpdate: func(r entities.JobRecord) {
			s.OnFeedEvent(interfaces.FeedEvent{Type: interfaces.FeedEventUpdate, RecordID: r.ID, Record: r})
		},
		OnDelete: func(recordID string) {
			s.OnFeedEvent(interfaces.FeedEvent{Type: interfaces.FeedEventDelete, RecordID: recordID})
		},
		OnError: s.handleFeedError,
	})
	if err != nil {
		return err
	}

	s.subMu.Lock()
	s.unsubscribe = unsub
	s.subMu.Unlock()
	return nil
}

// handleFeedError runs the resubscription loop. Until it succeeds, local
// edits keep working but cross-session consistency is paused.
func (s *Session) handleFeedError(err error) {
	s.log.Warn("change feed dropped; entering degraded mode", zap.Error(err))
	go func() {
		backoff := resubscribeBaseOff
		for {
			select {
			case <-s.closed:
				return
			case <-time.After(backoff):
			}
			if err := s.subscribe(context.Background()); err == nil {
				s.log.Info("change feed resubscribed")
				return
			}
			if backoff *= 2; backoff > resubscribeMaxOff {
				backoff = resubscribeMaxOff
			}
		}
	}()
}

// Get returns the session's copy of a record.
func (s *Session) Get(recordID string) (entities.JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordID]
	return rec, ok
}

// Records returns a snapshot of every record in the buffer.
func (s *Session) Records() []entities.JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.JobRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// MutateLedger applies op to the record's ledger: validate, recompute
// aggregates, update the buffer, stamp the guard, and schedule the write.
// Structural ops (add/remove item, discount-kind change, tax toggle) flush
// immediately; value edits are debounced per (record, field-group).
//
// The returned record is the post-mutation optimistic copy. The caller never
// waits on persistence.
func (s *Session) MutateLedger(recordID string, op LedgerOp) (entities.JobRecord, error) {
	select {
	case <-s.closed:
		return entities.JobRecord{}, ErrSessionClosed
	default:
	}

	s.mu.Lock()
	rec, ok := s.records[recordID]
	if !ok {
		s.mu.Unlock()
		return entities.JobRecord{}, ErrRecordNotFound
	}

	prior := rec.Ledger
	ledger, err := applyLedgerOp(prior, op)
	if err != nil {
		s.mu.Unlock()
		return entities.JobRecord{}, err
	}

	rec.Ledger = ledger
	rec.UpdatedAt = s.clk.Now()
	s.records[recordID] = rec
	s.mu.Unlock()

	s.guard.MarkLocalEdit(recordID)

	if flushesImmediately(prior, op) {
		go s.flushLedger(recordID)
	} else {
		s.deb.Schedule(recordID, debounceGroup(op), func() { s.flushLedger(recordID) })
	}
	return rec, nil
}

// flushLedger writes the record's current full ledger snapshot. Runs off the
// mutation path (timer or goroutine).
func (s *Session) flushLedger(recordID string) {
	s.mu.RLock()
	rec, ok := s.records[recordID]
	s.mu.RUnlock()
	if !ok {
		return
	}
	ledger := rec.Ledger

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if _, err := s.repo.Persist(ctx, recordID, interfaces.PartialUpdate{Ledger: &ledger}); err != nil {
		// Keep the optimistic buffer; the next successful flush reconciles.
		s.log.Warn("ledger flush failed",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		if s.onFlushError != nil {
			s.onFlushError(recordID, err)
		}
	}
}

// OnFeedEvent folds one remote event into the buffer and reports whether it
// was applied or suppressed. Inserts are always applied (with notification);
// deletes always remove; updates replace the record wholesale unless the
// suppression window says the event is our own echo.
func (s *Session) OnFeedEvent(ev interfaces.FeedEvent) FeedOutcome {
	switch ev.Type {
	case interfaces.FeedEventInsert:
		s.mu.Lock()
		s.records[ev.Record.ID] = ev.Record
		s.mu.Unlock()
		if s.onInsertNotify != nil {
			s.onInsertNotify(ev.Record)
		}
		return FeedApplied

	case interfaces.FeedEventUpdate:
		if s.guard.ShouldSuppress(ev.Record.ID) {
			s.log.Debug("suppressed feed echo", zap.String("record_id", ev.Record.ID))
			return FeedSuppressed
		}
		s.mu.Lock()
		if ev.Record.Visible() {
			s.records[ev.Record.ID] = ev.Record
		} else {
			delete(s.records, ev.Record.ID)
		}
		s.mu.Unlock()
		return FeedApplied

	case interfaces.FeedEventDelete:
		s.deb.CancelRecord(ev.RecordID)
		s.guard.Forget(ev.RecordID)
		s.mu.Lock()
		delete(s.records, ev.RecordID)
		s.mu.Unlock()
		return FeedApplied

	default:
		return FeedSuppressed
	}
}

// Search runs a store query, aborting any search still in flight so a stale
// first result cannot land after a newer one.
func (s *Session) Search(ctx context.Context, f interfaces.RecordFilter) ([]entities.JobRecord, error) {
	s.searchMu.Lock()
	if s.searchCancel != nil {
		s.searchCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.searchCancel = cancel
	s.searchMu.Unlock()

	recs, err := s.repo.Query(ctx, f)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return recs, err
}

// Close tears the session down: cancels pending flush timers and in-flight
// searches and drops the feed subscription. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.deb.Close()

		s.searchMu.Lock()
		if s.searchCancel != nil {
			s.searchCancel()
		}
		s.searchMu.Unlock()

		s.subMu.Lock()
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.subMu.Unlock()
	})
}
