// Package cmd provides the CLI commands for carport-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carport-quote/internal/config"
	"carport-quote/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "carport-quote",
	Short: "Price metal buildings from published price books",
	Long: `carport-quote is a deterministic pricing engine for carports,
garages and metal buildings.

It prices a building configuration against an immutable price book
revision and produces an itemized quote with full resolution traces.

Examples:
  carport-quote quote --style REGULAR --roof HORIZONTAL --width 12 --length 21 --height 6
  carport-quote quote --input building.json --format json
  carport-quote pricebook validate ./books/r29-nw.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.carport-quote.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(pricebookCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("carport-quote version 0.1.0")
	},
}
