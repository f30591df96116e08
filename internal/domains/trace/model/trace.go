package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 300
	MaxDescriptionLength = 2000
)

// Trace is an external article pinned to a place.
type Trace struct {
	ID          uuid.UUID  `json:"id"`
	PlaceID     uuid.UUID  `json:"place_id"`
	URL         string     `json:"url"`
	Host        string     `json:"host"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
	EnrichedAt  *time.Time `json:"enriched_at,omitempty"`
}

// Metadata is what enrichment may fill in. Empty fields are ignored.
type Metadata struct {
	Title       string
	Description string
	Image       string
}
