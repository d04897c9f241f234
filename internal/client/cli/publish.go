package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-press/internal/client/publish"
)

func publishCommand() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "publish a Markdown file or directory tree",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report intended actions without mutating the backend",
			},
		},
		Action: publishAction,
	}
}

func publishAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("usage: press publish <path> [--dry-run]")
	}
	dryRun := cmd.Bool("dry-run")

	client, err := authedClient()
	if err != nil {
		return err
	}

	entries, isDir, err := publish.CollectEntries(args[0])
	if err != nil {
		return err
	}
	if isDir && len(entries) == 0 {
		fmt.Println(warnStyle.Render("no .md files found"))
		return nil
	}
	if isDir {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("found %d .md files", len(entries))))
	}

	docs, err := client.AllDocuments(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote documents: %w", err)
	}
	folders, err := client.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote folders: %w", err)
	}

	opts := []publish.PlannerOption{publish.WithReporter(printResult(dryRun))}
	if dryRun {
		opts = append(opts, publish.DryRun())
	}

	planner := publish.NewPlanner(client, docs, folders, opts...)
	results := planner.Run(ctx, entries)

	summary := publish.Summarize(results)
	fmt.Println()
	fmt.Println(boldStyle.Render(fmt.Sprintf("done: %s, %s, %s",
		successStyle.Render(fmt.Sprintf("%d created", summary.Created)),
		updateStyle.Render(fmt.Sprintf("%d updated", summary.Updated)),
		errorStyle.Render(fmt.Sprintf("%d skipped", summary.Skipped)),
	)))
	return nil
}

func printResult(dryRun bool) func(publish.Result) {
	prefix := ""
	if dryRun {
		prefix = mutedStyle.Render("[dry run] ")
	}
	return func(r publish.Result) {
		switch r.Action {
		case publish.ActionCreated:
			fmt.Printf("%s%s %q (%s)%s\n", prefix, successStyle.Render("create"), r.Title, r.Slug, folderSuffix(r))
		case publish.ActionUpdated:
			fmt.Printf("%s%s %q (%s)%s\n", prefix, updateStyle.Render("update"), r.Title, r.Slug, folderSuffix(r))
		case publish.ActionSkipped:
			fmt.Printf("%s%s %s: %s\n", prefix, errorStyle.Render("skip"), r.File, r.Error)
		}
	}
}

func folderSuffix(r publish.Result) string {
	if r.Folder == "" {
		return ""
	}
	return mutedStyle.Render(" -> " + r.Folder)
}
