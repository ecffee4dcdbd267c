package herd

import (
	"github.com/agriwelfare/stockclaims/internal/herd/repository"
	"github.com/agriwelfare/stockclaims/internal/herd/service"
	"go.uber.org/fx"
)

var Module = fx.Module("herd.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
