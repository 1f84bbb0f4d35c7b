package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fixedops",
	Short: "Repair estimation engine",
	Long:  `Deterministic repair estimates from technician notes, VINs, and a parts catalog`,
}

var randomSeed int64

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "seed", 0,
		"Fix the VIN equipment sampler for reproducible decodes (0 samples freely)")

	// Register subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(serverCmd) // HTTP API server
}
