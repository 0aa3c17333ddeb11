package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *MemoryVisitorStore) {
	t.Helper()
	store := NewMemoryVisitorStore()
	tracker := NewTracker(store, 30*time.Second)
	tracker.Now = func() time.Time { return baseTime }
	return tracker, store
}

func seedVisitor(t *testing.T, store *MemoryVisitorStore, sessionID string, lastActive time.Time) {
	t.Helper()
	err := store.Upsert(context.Background(), models.Visitor{
		SessionID:    sessionID,
		Page:         "/",
		CountryCode:  "US",
		SessionStart: lastActive.Add(-time.Minute),
		LastActive:   lastActive,
	})
	require.NoError(t, err)
}

func TestPresenceWindowing(t *testing.T) {
	tracker, store := newTestTracker(t)

	seedVisitor(t, store, "fresh", baseTime.Add(-(4*time.Minute + 59*time.Second)))
	seedVisitor(t, store, "stale", baseTime.Add(-(5*time.Minute + time.Second)))
	seedVisitor(t, store, "gone", baseTime.Add(-(15*time.Minute + time.Second)))

	require.NoError(t, tracker.Refresh(context.Background()))
	visitors := tracker.ListActive()

	require.Len(t, visitors, 2)
	states := map[string]string{}
	for _, v := range visitors {
		states[v.SessionID] = v.State
	}
	assert.Equal(t, StateActive, states["fresh"])
	assert.Equal(t, StateIdle, states["stale"])
	assert.NotContains(t, states, "gone")
}

func TestListActiveOrderedByRecency(t *testing.T) {
	tracker, store := newTestTracker(t)

	seedVisitor(t, store, "oldest", baseTime.Add(-10*time.Minute))
	seedVisitor(t, store, "newest", baseTime.Add(-time.Minute))
	seedVisitor(t, store, "middle", baseTime.Add(-5*time.Minute))

	require.NoError(t, tracker.Refresh(context.Background()))
	visitors := tracker.ListActive()

	require.Len(t, visitors, 3)
	assert.Equal(t, "newest", visitors[0].SessionID)
	assert.Equal(t, "middle", visitors[1].SessionID)
	assert.Equal(t, "oldest", visitors[2].SessionID)
}

func TestRecordVisitUpsertIdempotence(t *testing.T) {
	tracker, store := newTestTracker(t)

	visit := models.Visitor{SessionID: "s1", Page: "/x", CountryCode: "GB"}
	require.NoError(t, tracker.RecordVisit(context.Background(), visit))
	require.NoError(t, tracker.RecordVisit(context.Background(), visit))

	visitors, err := store.ListSince(context.Background(), baseTime.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "/x", visitors[0].Page)

	listed := tracker.ListActive()
	require.Len(t, listed, 1)
	assert.Equal(t, "s1", listed[0].SessionID)
}

func TestRecordVisitSetsTimestamps(t *testing.T) {
	tracker, store := newTestTracker(t)

	require.NoError(t, tracker.RecordVisit(context.Background(), models.Visitor{SessionID: "s1", Page: "/"}))

	visitors, err := store.ListSince(context.Background(), baseTime.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, baseTime, visitors[0].SessionStart)
	assert.Equal(t, baseTime, visitors[0].LastActive)
	assert.False(t, visitors[0].LastActive.Before(visitors[0].SessionStart))
}

func TestHeartbeatReopensExpiredSession(t *testing.T) {
	tracker, store := newTestTracker(t)

	seedVisitor(t, store, "s1", baseTime.Add(-20*time.Minute))
	require.NoError(t, tracker.Refresh(context.Background()))
	assert.Empty(t, tracker.ListActive())

	require.NoError(t, tracker.Heartbeat(context.Background(), "s1", "/products"))

	visitors := tracker.ListActive()
	require.Len(t, visitors, 1)
	assert.Equal(t, StateActive, visitors[0].State)
	assert.Equal(t, "/products", visitors[0].Page)
}

func TestVisitorExpiryTimeline(t *testing.T) {
	tracker, store := newTestTracker(t)

	start := baseTime
	seedVisitor(t, store, "s1", start)
	require.NoError(t, tracker.Refresh(context.Background()))

	// At T+14min the record is still shown, marked idle
	tracker.Now = func() time.Time { return start.Add(14 * time.Minute) }
	visitors := tracker.ListActive()
	require.Len(t, visitors, 1)
	assert.Equal(t, StateIdle, visitors[0].State)

	// At T+16min it is gone
	tracker.Now = func() time.Time { return start.Add(16 * time.Minute) }
	assert.Empty(t, tracker.ListActive())
}

func TestStats(t *testing.T) {
	tracker, store := newTestTracker(t)

	require.NoError(t, store.Upsert(context.Background(), models.Visitor{
		SessionID: "a", CountryCode: "US", SessionStart: baseTime, LastActive: baseTime.Add(-time.Minute),
	}))
	require.NoError(t, store.Upsert(context.Background(), models.Visitor{
		SessionID: "b", CountryCode: "US", SessionStart: baseTime, LastActive: baseTime.Add(-2*time.Minute),
	}))
	require.NoError(t, store.Upsert(context.Background(), models.Visitor{
		SessionID: "c", CountryCode: "FR", SessionStart: baseTime, LastActive: baseTime.Add(-8*time.Minute),
	}))

	require.NoError(t, tracker.Refresh(context.Background()))
	stats := tracker.Stats()

	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Countries)
}

type failingStore struct {
	listErr error
}

func (f *failingStore) Upsert(context.Context, models.Visitor) error { return f.listErr }
func (f *failingStore) ListSince(context.Context, time.Time) ([]models.Visitor, error) {
	return nil, f.listErr
}

func TestRefreshFailureKeepsLastKnownSet(t *testing.T) {
	store := NewMemoryVisitorStore()
	tracker := NewTracker(store, 30*time.Second)
	tracker.Now = func() time.Time { return baseTime }

	seedVisitor(t, store, "s1", baseTime.Add(-time.Minute))
	require.NoError(t, tracker.Refresh(context.Background()))
	require.Len(t, tracker.ListActive(), 1)

	// Swap in a broken source; the view must degrade, not clear
	tracker.store = &failingStore{listErr: errors.New("permission denied")}
	assert.Error(t, tracker.Refresh(context.Background()))
	assert.Len(t, tracker.ListActive(), 1)
}

func TestRefreshBackoffAndRecovery(t *testing.T) {
	broken := &failingStore{listErr: errors.New("connection refused")}
	tracker := NewTracker(broken, 30*time.Second)
	tracker.Now = func() time.Time { return baseTime }

	interval := tracker.refreshEvery
	maxInterval := 8 * tracker.refreshEvery

	tracker.refreshOnce(&interval, maxInterval)
	assert.True(t, tracker.degraded)
	assert.Equal(t, 60*time.Second, interval)

	tracker.refreshOnce(&interval, maxInterval)
	assert.Equal(t, 120*time.Second, interval)

	// The retry interval doubles only up to the cap
	for i := 0; i < 5; i++ {
		tracker.refreshOnce(&interval, maxInterval)
	}
	assert.Equal(t, maxInterval, interval)
	assert.True(t, tracker.degraded)

	// First success clears the degraded flag and restores the base interval
	broken.listErr = nil
	tracker.refreshOnce(&interval, maxInterval)
	assert.False(t, tracker.degraded)
	assert.Equal(t, 30*time.Second, interval)

	// A later failure degrades again from the base interval
	broken.listErr = errors.New("connection refused")
	tracker.refreshOnce(&interval, maxInterval)
	assert.True(t, tracker.degraded)
	assert.Equal(t, 60*time.Second, interval)
}

func TestTrackerStartStop(t *testing.T) {
	store := NewMemoryVisitorStore()
	tracker := NewTracker(store, 10*time.Millisecond)
	tracker.Start()

	done := make(chan struct{})
	go func() {
		tracker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not stop")
	}
}

func TestSeedSampleVisitors(t *testing.T) {
	store := NewMemoryVisitorStore()
	store.SeedSampleVisitors(10, baseTime)

	visitors, err := store.ListSince(context.Background(), baseTime.Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Len(t, visitors, 10)
	for _, v := range visitors {
		assert.False(t, v.LastActive.Before(v.SessionStart))
		assert.NotEmpty(t, v.CountryCode)
	}
}
