package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
)

// ProviderConfig is the stored installation state for one provider. Config
// and WebhookSecret hold AES-GCM envelopes, never plaintext.
type ProviderConfig struct {
	ID                snowflake.ID   `gorm:"primaryKey" json:"id,string"`
	Provider          string         `gorm:"size:64;uniqueIndex" json:"provider"`
	Config            datatypes.JSON `json:"-"`
	WebhookEndpointID string         `gorm:"size:255" json:"webhook_endpoint_id,omitempty"`
	WebhookSecret     datatypes.JSON `json:"-"`
	WebhookRegistered bool           `json:"webhook_registered"`
	IsActive          bool           `json:"is_active"`
	TestMode          bool           `json:"test_mode"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (ProviderConfig) TableName() string {
	return "provider_configs"
}

// CatalogEntry pairs a provider manifest with its installation state.
type CatalogEntry struct {
	Manifest   providerdomain.Manifest `json:"manifest"`
	Configured bool                    `json:"configured"`
	Active     bool                    `json:"active"`
}
