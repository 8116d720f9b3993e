package usecase

import (
	"sync"
	"time"

	"repairshop/internal/infrastructure/clock"
)

// DefaultSuppressionWindow is how long a record stays protected from remote
// overwrites after a local edit.
const DefaultSuppressionWindow = 3 * time.Second

// ReconcileGuard decides whether an incoming change-feed event may overwrite
// local state. Each local mutation stamps the record; an update event
// arriving within the suppression window is presumed to be the echo of this
// session's own just-persisted write (or superseded by a newer local edit)
// and is discarded.
//
// Known gap: another session's edit landing inside the window is dropped
// from this session's view until the window elapses or a manual refresh.
//
// The guard is per-session state passed around by handle; it keeps no
// package-level globals. Safe for concurrent use.
type ReconcileGuard struct {
	mu            sync.Mutex
	clk           clock.Clock
	window        time.Duration
	lastLocalEdit map[string]time.Time
}

func NewReconcileGuard(clk clock.Clock, window time.Duration) *ReconcileGuard {
	if clk == nil {
		clk = clock.System()
	}
	if window <= 0 {
		window = DefaultSuppressionWindow
	}
	return &ReconcileGuard{
		clk:           clk,
		window:        window,
		lastLocalEdit: make(map[string]time.Time),
	}
}

// MarkLocalEdit stamps recordID with the current time. Called on every local
// mutation, before the write is even scheduled.
func (g *ReconcileGuard) MarkLocalEdit(recordID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastLocalEdit[recordID] = g.clk.Now()
}

// ShouldSuppress reports whether an update event for recordID must be
// discarded because the record was edited locally inside the window.
func (g *ReconcileGuard) ShouldSuppress(recordID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	last, ok := g.lastLocalEdit[recordID]
	if !ok {
		return false
	}
	return g.clk.Now().Sub(last) < g.window
}

// Forget drops the stamp for recordID (record deleted or evicted).
func (g *ReconcileGuard) Forget(recordID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.lastLocalEdit, recordID)
}
