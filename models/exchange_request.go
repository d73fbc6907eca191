package models

import "time"

// RequestStatus is the lifecycle state of an exchange request.
// Transitions are strictly forward: open → claimed → completed.
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusClaimed   RequestStatus = "claimed"
	RequestStatusCompleted RequestStatus = "completed"
)

// ExchangeRequest = owner stakes points for likes on a game profile.
// PointsRequested is debited from the owner at creation and held by
// the request itself until a claimant confirms and gets credited.
// ClaimedBy/ClaimProofURL/CompletedAt stay nil until the matching
// transition happens; none of them is ever cleared afterwards.
type ExchangeRequest struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OwnerID         int64         `gorm:"index;not null" json:"owner_id"`
	TargetUID       string        `gorm:"not null" json:"target_uid"`
	Region          string        `gorm:"size:16;not null" json:"region"`
	ProofURL        string        `gorm:"type:text;not null" json:"proof_url"`
	PointsRequested int64         `gorm:"not null" json:"points_requested"`
	Status          RequestStatus `gorm:"not null;index;default:'open'" json:"status"`
	ClaimedBy       *int64        `json:"claimed_by,omitempty"`
	ClaimProofURL   *string       `gorm:"type:text" json:"claim_proof_url,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;index" json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}
