package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-press/internal/client/config"
)

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "drop the stored session token",
		Action: logoutAction,
	}
}

func logoutAction(_ context.Context, _ *cli.Command) error {
	store, err := config.NewStore()
	if err != nil {
		return err
	}
	if err := store.ClearToken(); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Logged out"))
	return nil
}
