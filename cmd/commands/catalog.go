package commands

import (
	"fmt"
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/catalog"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/config"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/database"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var (
	catalogMake      string
	catalogOperation string
	catalogImportCSV string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the parts catalog",
}

var catalogVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the loaded catalog version",
	RunE:  runCatalogVersion,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog rows for a make and operation",
	Long: `List the catalog rows the resolver would price for one make and
operation code.

Example:
  fixedops catalog list --make HONDA --operation RR-BRAKE`,
	RunE: runCatalogList,
}

var catalogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply catalog database migrations",
	RunE:  runCatalogMigrate,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a catalog CSV into the database",
	Long: `Upsert the rows of a catalog CSV into the database-backed catalog.
Existing rows with the same make, operation, and part number are updated.

Example:
  fixedops catalog import --file data/parts_catalog.csv`,
	RunE: runCatalogImport,
}

func init() {
	catalogListCmd.Flags().StringVar(&catalogMake, "make", "", "Vehicle make")
	catalogListCmd.Flags().StringVar(&catalogOperation, "operation", "", "Operation code")
	catalogImportCmd.Flags().StringVar(&catalogImportCSV, "file", "", "Path to the catalog CSV")

	catalogCmd.AddCommand(catalogVersionCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogMigrateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}

func runCatalogVersion(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	version := eng.Store().Version()
	fmt.Printf("Catalog:   %s\n", eng.CatalogVersion())
	fmt.Printf("Rows:      %d\n", version.Rows)
	fmt.Printf("Loaded at: %s\n", version.LoadedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	return nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	if catalogMake == "" || catalogOperation == "" {
		return fmt.Errorf("both --make and --operation must be specified")
	}

	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	entries := eng.Store().Lookup(catalogMake, catalogOperation)
	if len(entries) == 0 {
		fmt.Printf("No catalog rows for %s / %s\n", catalogMake, catalogOperation)
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%-16s $%8.2f  %-28s %s (%s)\n",
			entry.PartNumber, entry.UnitPrice, entry.Description,
			entry.StockSource, entry.Availability)
	}
	return nil
}

func runCatalogMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.CatalogDSN == "" {
		return fmt.Errorf("CATALOG_DSN must be set for migrations")
	}

	ctx := cmd.Context()
	db, err := database.Connect(ctx, cfg.CatalogDSN)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("✓ Catalog schema up to date")
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if catalogImportCSV == "" {
		return fmt.Errorf("--file must be specified")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.CatalogDSN == "" {
		return fmt.Errorf("CATALOG_DSN must be set for imports")
	}

	f, err := os.Open(catalogImportCSV)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	entries, err := catalog.ParseCSV(f, catalogImportCSV)
	if err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	ctx := cmd.Context()
	db, err := database.Connect(ctx, cfg.CatalogDSN)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := database.ImportEntries(ctx, db, entries); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	log.WithFields(log.Fields{
		"file": catalogImportCSV,
		"rows": len(entries),
	}).Info("Catalog import complete")
	fmt.Printf("✓ Imported %d parts from %s\n", len(entries), catalogImportCSV)
	return nil
}
