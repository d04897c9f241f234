package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "list remote documents",
		Action: listAction,
	}
}

func listAction(ctx context.Context, _ *cli.Command) error {
	client, err := authedClient()
	if err != nil {
		return err
	}

	docs, err := client.AllDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println(warnStyle.Render("no documents"))
		return nil
	}

	fmt.Println(boldStyle.Render(fmt.Sprintf("documents (%d)", len(docs))))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%-12s %-32s %-28s %-10s %s", "ID", "TITLE", "SLUG", "STATUS", "PUBLISHED")))

	for _, doc := range docs {
		status := successStyle.Render("published")
		if !doc.IsPublished {
			status = warnStyle.Render("draft")
		}
		if doc.IsPrivate {
			status += errorStyle.Render(" [private]")
		}
		date := "-"
		if doc.PublishedAt != nil {
			date = doc.PublishedAt.Format("2006-01-02")
		}
		fmt.Printf("%-12s %-32s %-28s %-10s %s\n",
			truncate(doc.ID, 10), truncate(doc.Title, 30), truncate(doc.Slug, 26), status, mutedStyle.Render(date))
	}
	return nil
}

// truncate shortens on rune boundaries so multi-byte titles never split
// mid-sequence.
func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
