package sources

import (
	"sync"
	"time"
)

const (
	// A source with this many consecutive failures is skipped until the
	// cooldown elapses.
	breakerThreshold = 3
	breakerCooldown  = 5 * time.Minute
)

// FailureRecord tracks consecutive fetch failures for one source.
type FailureRecord struct {
	SourceName          string
	ConsecutiveFailures int
	LastAttempt         time.Time
}

// FailureTracker is the process-wide circuit breaker over feed fetches.
// A record exists only while a source is failing; any success clears it.
// Last-write-wins per source name is sufficient: a source is never fetched
// concurrently with itself within one aggregation run.
type FailureTracker struct {
	mu       sync.Mutex
	failures map[string]*FailureRecord
	now      func() time.Time
}

func NewFailureTracker() *FailureTracker {
	return &FailureTracker{
		failures: make(map[string]*FailureRecord),
		now:      time.Now,
	}
}

// IsOpen reports whether the breaker is open for a source, i.e. the source
// has failed at least breakerThreshold times in a row and the cooldown since
// the last attempt has not yet elapsed.
func (t *FailureTracker) IsOpen(sourceName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.failures[sourceName]
	if !ok {
		return false
	}
	if rec.ConsecutiveFailures < breakerThreshold {
		return false
	}
	return t.now().Sub(rec.LastAttempt) < breakerCooldown
}

// RecordFailure increments the consecutive failure count for a source and
// stamps the attempt time.
func (t *FailureTracker) RecordFailure(sourceName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.failures[sourceName]
	if !ok {
		rec = &FailureRecord{SourceName: sourceName}
		t.failures[sourceName] = rec
	}
	rec.ConsecutiveFailures++
	rec.LastAttempt = t.now()
}

// RecordSuccess clears the failure record for a source.
func (t *FailureTracker) RecordSuccess(sourceName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, sourceName)
}

// Get returns a copy of the failure record for a source, or nil when the
// source is healthy.
func (t *FailureTracker) Get(sourceName string) *FailureRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.failures[sourceName]
	if !ok {
		return nil
	}
	copied := *rec
	return &copied
}

// HealthyCount returns how many of the given sources currently have a closed
// breaker.
func (t *FailureTracker) HealthyCount(names []string) int {
	count := 0
	for _, name := range names {
		if !t.IsOpen(name) {
			count++
		}
	}
	return count
}
