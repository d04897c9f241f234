// Package cli wires the publisher command tree: init, login, publish, list,
// delete, logout.
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-press/internal/client/api"
	"github.com/goliatone/go-press/internal/client/config"
)

// Execute runs the press CLI with the given arguments.
func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "press",
		Usage: "publish local Markdown files to a go-press backend",
		Commands: []*cli.Command{
			initCommand(),
			loginCommand(),
			publishCommand(),
			listCommand(),
			deleteCommand(),
			logoutCommand(),
		},
	}

	return app.Run(ctx, args)
}

// authedClient loads the stored config and returns a client carrying the
// session token. Fails when init or login has not been run.
func authedClient() (*api.Client, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	cfg, err := store.Require(true)
	if err != nil {
		return nil, err
	}
	return api.New(cfg.APIURL, api.WithToken(cfg.AuthToken)), nil
}
