package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the resolved tariff catalog",
	Long: `Resolve the tariff configuration against the builtin defaults and print
the effective catalog as JSON. Useful to validate a --catalog file before
deploying it.`,
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
