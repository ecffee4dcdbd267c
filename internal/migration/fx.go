package migration

import (
	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	claimdomain "github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/config"
	herddomain "github.com/agriwelfare/stockclaims/internal/herd/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite is only used in development; AutoMigrate keeps it in step
		// without postgres-specific DDL.
		return conn.AutoMigrate(
			&applicationdomain.Application{},
			&applicationdomain.Flag{},
			&herddomain.Herd{},
			&claimdomain.Claim{},
		)
	}),
)
