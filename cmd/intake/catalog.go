package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webjhones/requirements-intake/internal/observability"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the service catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the services of the active catalog",
	Long:  `List the built-in catalog, or the file named by CATALOG_PATH when set.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}
		if catalogJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cat.Services())
		}
		observability.NewPrinter(os.Stdout).PrintCatalog(cat)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog document before deploying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cat, err := loadCatalog(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d services)\n", args[0], len(cat.Services()))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the services as JSON")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}
