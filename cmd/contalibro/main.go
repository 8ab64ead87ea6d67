package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/quisqueyalabs/contalibro/internal/clock"
	"github.com/quisqueyalabs/contalibro/internal/server"
	"github.com/quisqueyalabs/contalibro/pkg/log"
)

func main() {
	app := fx.New(
		log.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
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
