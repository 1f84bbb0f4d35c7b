package commands

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/api"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP API server",
	Long: `Start the estimation engine HTTP API server.

The server exposes REST endpoints for:
  - Estimate runs from technician notes and VINs
  - Diff calculation between estimates
  - VIN decoding, explainability, and audit history
  - Catalog inspection, reload, and import

Examples:
  # Start server on default port
  fixedops server

  # Start server on custom port
  fixedops server --port 9090

Environment variables:
  PORT             - HTTP server port (default: 8080)
  DATA_DIR         - Directory with the catalog and VIN reference data (default: data)
  CATALOG_DSN      - PostgreSQL connection string for a database-backed catalog
  AUDIT_DIR        - Directory for audit records (auditing off when empty)
  SHOP_POLICY_FILE - HCL file with shop rate and fee overrides
  CORS_ORIGINS     - Comma-separated CORS origins (default: *)
  LOG_LEVEL        - Logging level (debug/info/warn/error)`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverPort, "port", "", "HTTP server port (overrides PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	log.Info("Initializing estimation engine HTTP API server")

	eng, cfg, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	port := serverPort
	if port == "" {
		port = cfg.Port
	}

	log.WithFields(log.Fields{
		"port":    port,
		"catalog": eng.CatalogVersion(),
	}).Info("Server configuration loaded")

	// Create and start server
	server := api.New(cfg, eng)

	return server.Start(port)
}
