package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pos/internal/catalog"
	"github.com/smallbiznis/pos/internal/clock"
	"github.com/smallbiznis/pos/internal/config"
	"github.com/smallbiznis/pos/internal/hqmetrics"
	"github.com/smallbiznis/pos/internal/inventory"
	"github.com/smallbiznis/pos/internal/migration"
	"github.com/smallbiznis/pos/internal/observability"
	"github.com/smallbiznis/pos/internal/order"
	"github.com/smallbiznis/pos/internal/providers"
	"github.com/smallbiznis/pos/internal/receipt"
	"github.com/smallbiznis/pos/internal/server"
	"github.com/smallbiznis/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional Domains
		providers.Module,
		catalog.Module,
		inventory.Module,
		order.Module,
		receipt.Module,
		hqmetrics.Module,

		server.Module,
	)
	app.Run()
}

// RegisterSnowflake builds the order number generator for this node.
func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
