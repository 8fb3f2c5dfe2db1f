package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) FindByProvider(ctx context.Context, db *gorm.DB, provider string) (*domain.ProviderConfig, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	var row domain.ProviderConfig
	err := db.WithContext(ctx).
		Where("provider = ?", provider).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) Save(ctx context.Context, db *gorm.DB, config *domain.ProviderConfig) error {
	config.Provider = strings.ToLower(strings.TrimSpace(config.Provider))
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}},
			UpdateAll: true,
		}).
		Create(config).Error
}

func (r *repository) List(ctx context.Context, db *gorm.DB) ([]domain.ProviderConfig, error) {
	var rows []domain.ProviderConfig
	if err := db.WithContext(ctx).Order("provider").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
