package main

import (
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cardforge",
	Short: "Generate themed trading card games",
	Long: `Cardforge generates a complete themed trading card game: card data and
artwork from generative APIs, rendered card images, rules, and a packaged
zip archive ready to share.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
}
