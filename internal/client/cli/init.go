package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-press/internal/client/config"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "configure the backend API URL",
		ArgsUsage: "<api-url>",
		Action:    initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("usage: press init <api-url>")
	}

	parsed, err := url.Parse(args[0])
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid API URL %q", args[0])
	}

	store, err := config.NewStore()
	if err != nil {
		return err
	}
	if err := store.SetAPIURL(args[0]); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("API URL saved") + " " + mutedStyle.Render("("+store.Path()+")"))
	return nil
}
