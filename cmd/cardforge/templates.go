package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available card templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := newCatalog()
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, d := range catalog.Available() {
			bold.Printf("%s (%s)\n", d.DisplayName, d.ID)
			fmt.Printf("    %s\n", d.Description)
		}
		return nil
	},
}
