package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazer-showdown/internal/laser/boards"
	"github.com/vovakirdan/lazer-showdown/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and built-in boards",
	Long:  `Shows the registered games and the boards compiled into the binary.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	all, err := boards.Embedded().LoadAll()
	if err != nil {
		fail("%v", err)
	}

	fmt.Println()
	fmt.Println("Built-in boards:")
	fmt.Println()

	maxIDLen = 2
	for _, b := range all {
		maxIDLen = max(maxIDLen, len(b.ID))
	}
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "----")
	for _, b := range all {
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, b.ID, fmt.Sprintf("%dx%d", b.Rows, b.Cols), b.Name)
	}

	fmt.Println()
	fmt.Println("Run 'lazer play <id>' to play, 'lazer trace <board>' to trace a board.")
}
