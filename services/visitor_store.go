package services

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Adnanwebguy1996/nex-goods-emporium/models"

	"github.com/google/uuid"
)

// PostgresVisitorStore persists visitor sessions in the visitors table.
type PostgresVisitorStore struct {
	db *sql.DB
}

func NewPostgresVisitorStore(db *sql.DB) *PostgresVisitorStore {
	return &PostgresVisitorStore{db: db}
}

func (s *PostgresVisitorStore) Upsert(ctx context.Context, v models.Visitor) error {
	query := `
		INSERT INTO visitors (id, session_id, location, country_code, page, browser, device, ip_address, user_agent, session_start, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (session_id) DO UPDATE
		SET page = EXCLUDED.page, last_active = EXCLUDED.last_active
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(), v.SessionID, v.Location, v.CountryCode, v.Page,
		v.Browser, v.Device, v.IPAddress, v.UserAgent, v.SessionStart, v.LastActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert visitor: %w", err)
	}
	return nil
}

func (s *PostgresVisitorStore) ListSince(ctx context.Context, cutoff time.Time) ([]models.Visitor, error) {
	query := `
		SELECT id, session_id, location, country_code, page, browser, device, ip_address, user_agent, session_start, last_active
		FROM visitors
		WHERE last_active >= $1
		ORDER BY last_active DESC
	`
	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []models.Visitor
	for rows.Next() {
		var v models.Visitor
		if err := rows.Scan(
			&v.ID, &v.SessionID, &v.Location, &v.CountryCode, &v.Page,
			&v.Browser, &v.Device, &v.IPAddress, &v.UserAgent, &v.SessionStart, &v.LastActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// MemoryVisitorStore keeps visitor sessions in a mutex-guarded map. It backs
// tests and demo deployments running without a database.
type MemoryVisitorStore struct {
	mu sync.RWMutex
	m  map[string]models.Visitor
}

func NewMemoryVisitorStore() *MemoryVisitorStore {
	return &MemoryVisitorStore{m: make(map[string]models.Visitor)}
}

func (s *MemoryVisitorStore) Upsert(_ context.Context, v models.Visitor) error {
	if v.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.m[v.SessionID]; ok {
		existing.Page = v.Page
		existing.LastActive = v.LastActive
		s.m[v.SessionID] = existing
		return nil
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.m[v.SessionID] = v
	return nil
}

func (s *MemoryVisitorStore) ListSince(_ context.Context, cutoff time.Time) ([]models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var visitors []models.Visitor
	for _, v := range s.m {
		if !v.LastActive.Before(cutoff) {
			visitors = append(visitors, v)
		}
	}
	return visitors, nil
}

var sampleLocations = []struct {
	Location    string
	CountryCode string
}{
	{"New York, USA", "US"},
	{"London, UK", "GB"},
	{"Toronto, Canada", "CA"},
	{"Berlin, Germany", "DE"},
	{"Paris, France", "FR"},
	{"Mumbai, India", "IN"},
	{"Tokyo, Japan", "JP"},
	{"Sydney, Australia", "AU"},
	{"Singapore", "SG"},
	{"Dubai, UAE", "AE"},
}

var samplePages = []string{"/", "/products", "/products?category=Templates", "/cart", "/checkout", "/about"}

// SeedSampleVisitors populates the store with plausible-looking sessions.
// Demo/test fixture only; production presence data always comes from real
// track and heartbeat calls.
func (s *MemoryVisitorStore) SeedSampleVisitors(n int, now time.Time) {
	browsers := []string{"Chrome", "Firefox", "Safari", "Edge"}
	devices := []string{"Desktop", "Desktop", "Mobile", "Tablet"}

	for i := 0; i < n; i++ {
		loc := sampleLocations[rand.Intn(len(sampleLocations))]
		lastActive := now.Add(-time.Duration(rand.Intn(14)) * time.Minute)
		s.Upsert(context.Background(), models.Visitor{
			ID:           uuid.New(),
			SessionID:    fmt.Sprintf("seed_%d_%d", now.UnixNano(), i),
			Location:     loc.Location,
			CountryCode:  loc.CountryCode,
			Page:         samplePages[rand.Intn(len(samplePages))],
			Browser:      browsers[rand.Intn(len(browsers))],
			Device:       devices[rand.Intn(len(devices))],
			SessionStart: lastActive.Add(-time.Duration(rand.Intn(30)) * time.Minute),
			LastActive:   lastActive,
		})
	}
}
