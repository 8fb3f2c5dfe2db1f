// Package migration applies the gateway schema at startup.
package migration

import (
	"gorm.io/gorm"

	paymentdomain "github.com/revstack-dev/revstack/internal/payment/domain"
	providerconfigdomain "github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

func RunMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&providerconfigdomain.ProviderConfig{},
		&paymentdomain.EventRecord{},
	)
}
