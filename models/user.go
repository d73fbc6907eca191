package models

import "time"

// User is a registered participant in the like exchange.
// ExternalID is the numeric account handle callers identify themselves
// with; the internal UUID primary key never leaves this service.
// Points are only ever mutated through the ledger service.
type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalID  int64     `gorm:"uniqueIndex;not null" json:"external_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Points      int64     `gorm:"not null;default:0" json:"points"`
	IsVIP       bool      `gorm:"default:false" json:"is_vip"` // persisted for future perks, unused by core logic
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
