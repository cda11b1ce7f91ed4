package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/karantnn/GitCode/internal/gitcli"
)

func main() {
	if err := gitcli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("[X]"), err)
		os.Exit(1)
	}
}
