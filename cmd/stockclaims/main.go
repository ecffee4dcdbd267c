package main

import (
	"github.com/agriwelfare/stockclaims/internal/application"
	"github.com/agriwelfare/stockclaims/internal/claim"
	"github.com/agriwelfare/stockclaims/internal/config"
	"github.com/agriwelfare/stockclaims/internal/events"
	"github.com/agriwelfare/stockclaims/internal/herd"
	"github.com/agriwelfare/stockclaims/internal/migration"
	"github.com/agriwelfare/stockclaims/internal/pricing"
	"github.com/agriwelfare/stockclaims/internal/server"
	"github.com/agriwelfare/stockclaims/pkg/db"
	"github.com/agriwelfare/stockclaims/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		application.Module,
		herd.Module,
		pricing.Module,
		events.Module,
		claim.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
