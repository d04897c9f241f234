package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/goliatone/go-press/internal/client/api"
	"github.com/goliatone/go-press/internal/client/config"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "authenticate against the backend",
		Action: loginAction,
	}
}

func loginAction(ctx context.Context, _ *cli.Command) error {
	store, err := config.NewStore()
	if err != nil {
		return err
	}
	cfg, err := store.Require(false)
	if err != nil {
		return err
	}

	fmt.Print("Password: ")
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	client := api.New(cfg.APIURL)
	token, err := client.Login(ctx, string(password))
	if err != nil {
		return err
	}
	if err := store.SetToken(token); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Logged in"))
	return nil
}
