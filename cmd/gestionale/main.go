package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/mrossi-dev/gestionale/internal/config"
	"github.com/mrossi-dev/gestionale/internal/document"
	"github.com/mrossi-dev/gestionale/internal/migration"
	"github.com/mrossi-dev/gestionale/internal/numbering"
	"github.com/mrossi-dev/gestionale/internal/observability"
	"github.com/mrossi-dev/gestionale/internal/server"
	"github.com/mrossi-dev/gestionale/internal/subject"
	"github.com/mrossi-dev/gestionale/internal/tax"
	"github.com/mrossi-dev/gestionale/pkg/db"
	"github.com/mrossi-dev/gestionale/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		observability.Module,
		migration.Module,

		// Functional domains
		tax.Module,
		subject.Module,
		numbering.Module,
		document.Module,

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
