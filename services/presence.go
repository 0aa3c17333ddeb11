package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"
)

// Presence windows. A session is "active" while it was seen within the last
// five minutes, "idle" until fifteen, and dropped from view after that.
const (
	ActiveWindow  = 5 * time.Minute
	DisplayWindow = 15 * time.Minute
)

const (
	StateActive = "active"
	StateIdle   = "idle"
)

// VisitorStore is the data source behind the presence tracker. Upsert must be
// keyed on session id: inserting when unknown, otherwise updating only page
// and last_active (last write wins).
type VisitorStore interface {
	Upsert(ctx context.Context, v models.Visitor) error
	ListSince(ctx context.Context, cutoff time.Time) ([]models.Visitor, error)
}

// ActiveVisitor is a visitor record annotated with its presence state.
type ActiveVisitor struct {
	models.Visitor
	State string `json:"state"`
}

// PresenceStats are the aggregates shown on the admin dashboard.
type PresenceStats struct {
	Active    int `json:"active"`
	Total     int `json:"total"`
	Countries int `json:"countries"`
}

// Tracker maintains a continuously refreshed view of who is browsing right
// now. Reads are served from a cached snapshot that a background loop
// refreshes from the store; if a refresh fails the previous snapshot is kept
// and the loop backs off, so a flaky store degrades the view instead of
// breaking it.
type Tracker struct {
	store        VisitorStore
	refreshEvery time.Duration

	// Now is the clock used for windowing. Overridable in tests.
	Now func() time.Time

	mu       sync.RWMutex
	snapshot []models.Visitor

	stop     chan struct{}
	done     chan struct{}
	degraded bool
}

func NewTracker(store VisitorStore, refreshEvery time.Duration) *Tracker {
	if refreshEvery <= 0 {
		refreshEvery = 30 * time.Second
	}
	return &Tracker{
		store:        store,
		refreshEvery: refreshEvery,
		Now:          time.Now,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the background refresh loop. Call Stop to tear it down.
func (t *Tracker) Start() {
	go t.loop()
}

// Stop tears down the refresh loop and waits for it to exit.
func (t *Tracker) Stop() {
	close(t.stop)
	<-t.done
}

func (t *Tracker) loop() {
	defer close(t.done)

	interval := t.refreshEvery
	maxInterval := 8 * t.refreshEvery

	timer := time.NewTimer(interval)
	defer timer.Stop()

	// Prime the snapshot before the first tick
	t.refreshOnce(&interval, maxInterval)

	for {
		select {
		case <-t.stop:
			return
		case <-timer.C:
			t.refreshOnce(&interval, maxInterval)
			timer.Reset(interval)
		}
	}
}

func (t *Tracker) refreshOnce(interval *time.Duration, maxInterval time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.Refresh(ctx); err != nil {
		// Log the failure once, then stay quiet until the store recovers.
		if !t.degraded {
			log.Printf("visitor refresh failed, serving last known set: %v", err)
			t.degraded = true
		}
		if *interval < maxInterval {
			*interval *= 2
		}
		return
	}

	if t.degraded {
		log.Printf("visitor refresh recovered")
		t.degraded = false
	}
	*interval = t.refreshEvery
}

// Refresh reloads the snapshot from the store once.
func (t *Tracker) Refresh(ctx context.Context) error {
	cutoff := t.Now().Add(-DisplayWindow)
	visitors, err := t.store.ListSince(ctx, cutoff)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.snapshot = visitors
	t.mu.Unlock()
	return nil
}

// RecordVisit upserts a visitor record: a new session id creates a record
// with session_start = last_active = now, a known one gets page and
// last_active updated. Repeated identical calls within the same instant
// leave exactly one record.
func (t *Tracker) RecordVisit(ctx context.Context, v models.Visitor) error {
	now := t.Now()
	v.SessionStart = now
	v.LastActive = now

	if err := t.store.Upsert(ctx, v); err != nil {
		return err
	}
	t.applyLocal(v)
	return nil
}

// Heartbeat has the same upsert semantics as RecordVisit and is invoked on a
// fixed interval while a page stays open. Only the session id and page are
// carried; an aged-out session is recreated with fresh timestamps.
func (t *Tracker) Heartbeat(ctx context.Context, sessionID, page string) error {
	return t.RecordVisit(ctx, models.Visitor{SessionID: sessionID, Page: page})
}

// applyLocal folds an upsert into the cached snapshot so reads reflect the
// write without waiting for the next refresh.
func (t *Tracker) applyLocal(v models.Visitor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, existing := range t.snapshot {
		if existing.SessionID == v.SessionID {
			t.snapshot[i].Page = v.Page
			t.snapshot[i].LastActive = v.LastActive
			return
		}
	}
	t.snapshot = append(t.snapshot, v)
}

// ListActive returns every visitor seen within the display window, most
// recent first, annotated active or idle. The result is a copy; callers may
// not reach the shared snapshot through it.
func (t *Tracker) ListActive() []ActiveVisitor {
	now := t.Now()

	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]ActiveVisitor, 0, len(t.snapshot))
	for _, v := range t.snapshot {
		age := now.Sub(v.LastActive)
		if age >= DisplayWindow {
			continue
		}
		state := StateActive
		if age >= ActiveWindow {
			state = StateIdle
		}
		result = append(result, ActiveVisitor{Visitor: v, State: state})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastActive.After(result[j].LastActive)
	})
	return result
}

// Stats derives the dashboard aggregates from the visible set.
func (t *Tracker) Stats() PresenceStats {
	visitors := t.ListActive()

	stats := PresenceStats{Total: len(visitors)}
	countries := make(map[string]struct{})
	for _, v := range visitors {
		if v.State == StateActive {
			stats.Active++
		}
		if v.CountryCode != "" {
			countries[v.CountryCode] = struct{}{}
		}
	}
	stats.Countries = len(countries)
	return stats
}
