package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dentalpay/internal/analytics"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/smallbiznis/dentalpay/internal/contact"
	"github.com/smallbiznis/dentalpay/internal/emailledger"
	"github.com/smallbiznis/dentalpay/internal/migration"
	"github.com/smallbiznis/dentalpay/internal/notification"
	"github.com/smallbiznis/dentalpay/internal/observability"
	"github.com/smallbiznis/dentalpay/internal/providers/email"
	"github.com/smallbiznis/dentalpay/internal/salary"
	"github.com/smallbiznis/dentalpay/internal/server"
	"github.com/smallbiznis/dentalpay/internal/specialty"
	"github.com/smallbiznis/dentalpay/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Survey domains
		emailledger.Module,
		salary.Module,
		analytics.Module,
		specialty.Module,
		contact.Module,

		// Submission notifications
		email.Module,
		notification.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
