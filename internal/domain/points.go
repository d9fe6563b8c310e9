package domain

import "time"

// PointRecord is one entry of the append-only points ledger. Records are
// never mutated or deleted; User.Points is the running sum of all records
// for that user.
type PointRecord struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"userId"`
	Points            int       `json:"points"` // signed delta, never zero
	Description       string    `json:"description"`
	RelatedEntityType *string   `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *uint     `json:"relatedEntityId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
