package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-press/internal/client/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "press:", err)
		os.Exit(1)
	}
}
