package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByProvider(ctx context.Context, db *gorm.DB, provider string) (*ProviderConfig, error)
	Save(ctx context.Context, db *gorm.DB, config *ProviderConfig) error
	List(ctx context.Context, db *gorm.DB) ([]ProviderConfig, error)
}
