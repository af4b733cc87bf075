// Package cmd provides the CLI commands for fieldquote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldquote/internal/catalog"
	"fieldquote/internal/logging"
)

var (
	catalogFile string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldquote",
	Short: "Price electrical service work and PV installations",
	Long: `fieldquote computes customer quotes from the company tariff catalog:
discrete service work (lighting, sockets, wallboxes, ...), travel and
call-out charges, PV installation proposals with incentive and payback
projections, and panel maintenance.

Examples:
  fieldquote quote request.json
  fieldquote pv --annual-kwh 14000 --heat-pump
  fieldquote catalog --catalog tariffs.yaml`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "tariff configuration file (yaml or json; builtin defaults when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(pvCmd)
	rootCmd.AddCommand(catalogCmd)
}

func initLogging() {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.Init(level, true)
}

// loadCatalog resolves the effective tariff catalog from --catalog, or the
// builtin defaults when the flag is absent.
func loadCatalog() (catalog.Catalog, error) {
	if catalogFile == "" {
		return catalog.Default(), nil
	}
	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	raw, err := catalog.ParseRaw(data)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return catalog.Resolve(raw), nil
}
