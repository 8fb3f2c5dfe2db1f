package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventRecord is one stored webhook delivery. The (provider,
// provider_event_id) pair is unique so redeliveries collapse into a single
// row.
type EventRecord struct {
	ID              snowflake.ID   `gorm:"primaryKey" json:"id,string"`
	Provider        string         `gorm:"size:64;uniqueIndex:idx_provider_event" json:"provider"`
	ProviderEventID string         `gorm:"size:255;uniqueIndex:idx_provider_event" json:"provider_event_id"`
	EventType       string         `gorm:"size:64" json:"event_type"`
	ResourceID      string         `gorm:"size:255" json:"resource_id,omitempty"`
	Payload         datatypes.JSON `json:"-"`
	ReceivedAt      time.Time      `json:"received_at"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
}

func (EventRecord) TableName() string {
	return "webhook_events"
}
