package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is one append-only record of an administrative action.
// Entries are written once and never updated or deleted.
type AuditLogEntry struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
