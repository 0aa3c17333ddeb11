package handlers

import (
	"github.com/Adnanwebguy1996/nex-goods-emporium/database"
	"github.com/Adnanwebguy1996/nex-goods-emporium/services"
)

// Package-level collaborators, set once at startup.
var (
	DB       *database.DB
	Carts    *services.CartStore
	Presence *services.Tracker
)

// InitializeHandlers wires the handlers to their backing services.
func InitializeHandlers(db *database.DB, carts *services.CartStore, presence *services.Tracker) {
	DB = db
	Carts = carts
	Presence = presence
}
