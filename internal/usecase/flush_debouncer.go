package usecase

import (
	"sync"
	"time"
)

// DefaultFlushDelay is the debounce interval for coalesced ledger writes.
const DefaultFlushDelay = 1000 * time.Millisecond

type flushKey struct {
	recordID   string
	fieldGroup string
}

// FlushDebouncer coalesces rapid local mutations into one delayed write per
// (record id, field-group) key. A new mutation on the same key cancels and
// restarts the pending timer; unrelated field groups on the same record keep
// independent timers and do not cancel each other.
//
// Close cancels every pending timer so no write fires after the session's
// viewing context has gone away.
type FlushDebouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[flushKey]*time.Timer
	closed bool
}

func NewFlushDebouncer(delay time.Duration) *FlushDebouncer {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &FlushDebouncer{
		delay:  delay,
		timers: make(map[flushKey]*time.Timer),
	}
}

// Schedule queues flush to run after the debounce delay, replacing any timer
// already pending for the same key.
func (d *FlushDebouncer) Schedule(recordID, fieldGroup string, flush func()) {
	key := flushKey{recordID: recordID, fieldGroup: fieldGroup}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		flush()
	})
}

// CancelRecord stops every pending timer for recordID, across all field
// groups. Used when a delete event removes the record.
func (d *FlushDebouncer) CancelRecord(recordID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		if key.recordID == recordID {
			t.Stop()
			delete(d.timers, key)
		}
	}
}

// Close cancels all pending timers. Schedule becomes a no-op afterwards.
func (d *FlushDebouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
