package models

import (
	"time"

	"github.com/google/uuid"
)

// Visitor represents one browsing session observed by the presence tracker.
// A session id is stable for the lifetime of a browser session; repeated
// visits update page and last_active in place.
type Visitor struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SessionID    string    `json:"session_id" db:"session_id"`
	Location     string    `json:"location" db:"location"`
	CountryCode  string    `json:"country_code" db:"country_code"`
	Page         string    `json:"page" db:"page"`
	Browser      string    `json:"browser" db:"browser"`
	Device       string    `json:"device" db:"device"`
	IPAddress    string    `json:"ip_address" db:"ip_address"`
	UserAgent    string    `json:"user_agent" db:"user_agent"`
	SessionStart time.Time `json:"session_start" db:"session_start"`
	LastActive   time.Time `json:"last_active" db:"last_active"`
}

func (Visitor) TableName() string {
	return "visitors"
}

func (Visitor) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS visitors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id VARCHAR(255) NOT NULL UNIQUE,
		location TEXT NOT NULL DEFAULT '',
		country_code VARCHAR(2) NOT NULL DEFAULT 'XX',
		page TEXT NOT NULL DEFAULT '/',
		browser TEXT NOT NULL DEFAULT '',
		device TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		session_start TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		last_active TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_visitors_last_active ON visitors(last_active);
	CREATE INDEX IF NOT EXISTS idx_visitors_session_id ON visitors(session_id);`
}
