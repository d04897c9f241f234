package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// confirmInput is a test seam for the interactive confirmation prompt.
var confirmInput io.Reader = os.Stdin

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a remote document by slug",
		ArgsUsage: "<slug>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "skip the confirmation prompt",
			},
		},
		Action: deleteAction,
	}
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("usage: press delete <slug>")
	}
	slug := args[0]

	client, err := authedClient()
	if err != nil {
		return err
	}

	docs, err := client.AllDocuments(ctx)
	if err != nil {
		return err
	}

	var id, title string
	for _, doc := range docs {
		if doc.Slug == slug {
			id, title = doc.ID, doc.Title
			break
		}
	}
	if id == "" {
		return fmt.Errorf("no document with slug %q", slug)
	}

	if !cmd.Bool("yes") {
		fmt.Printf("will delete: %s (%s)\n", boldStyle.Render(title), mutedStyle.Render(slug))
		fmt.Print("confirm? (y/N): ")
		answer, _ := bufio.NewReader(confirmInput).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println(mutedStyle.Render("cancelled"))
			return nil
		}
	}

	if err := client.DeleteDocument(ctx, id); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("deleted %q", title)))
	return nil
}
