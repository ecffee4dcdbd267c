package claim

import (
	"github.com/agriwelfare/stockclaims/internal/claim/repository"
	"github.com/agriwelfare/stockclaims/internal/claim/service"
	"go.uber.org/fx"
)

var Module = fx.Module("claim.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
