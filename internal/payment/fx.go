package payment

import (
	"go.uber.org/fx"

	"github.com/revstack-dev/revstack/internal/payment/repository"
	"github.com/revstack-dev/revstack/internal/payment/service"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
