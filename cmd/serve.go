package cmd

import (
	"github.com/df07/photon/web/server"
	"github.com/urfave/cli"
)

// Serve progressive renders over HTTP.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	return server.NewServer(ctx.Int("port")).Start()
}
