package providerconfig

import (
	"go.uber.org/fx"

	"github.com/revstack-dev/revstack/internal/providerconfig/repository"
	"github.com/revstack-dev/revstack/internal/providerconfig/service"
)

var Module = fx.Module("providerconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
