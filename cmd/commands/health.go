package commands

import (
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/config"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check catalog connectivity and system health",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Building the engine pings the catalog database when one is configured.
	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("engine initialization failed: %w", err)
	}
	defer eng.Close()

	if cfg.CatalogDSN != "" {
		fmt.Println("✓ Catalog database connection healthy")
	}
	fmt.Printf("✓ Catalog loaded: %s\n", eng.CatalogVersion())
	fmt.Printf("✓ Engine version: %s\n", engine.EngineVersion)
	return nil
}
