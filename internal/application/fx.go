package application

import (
	"github.com/agriwelfare/stockclaims/internal/application/repository"
	"github.com/agriwelfare/stockclaims/internal/application/service"
	"go.uber.org/fx"
)

var Module = fx.Module("application.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
