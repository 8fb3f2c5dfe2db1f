package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/revstack-dev/revstack/internal/clock"
	"github.com/revstack-dev/revstack/internal/config"
	"github.com/revstack-dev/revstack/internal/migration"
	"github.com/revstack-dev/revstack/internal/observability"
	"github.com/revstack-dev/revstack/internal/payment"
	"github.com/revstack-dev/revstack/internal/provider"
	"github.com/revstack-dev/revstack/internal/providerconfig"
	"github.com/revstack-dev/revstack/internal/server"
	"github.com/revstack-dev/revstack/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		provider.Module,
		providerconfig.Module,
		payment.Module,

		fx.Invoke(func(conn *gorm.DB) error {
			return migration.RunMigrations(conn)
		}),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
