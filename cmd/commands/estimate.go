package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/config"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var (
	estimateNotes     string
	estimateNotesFile string
	estimateScenario  string
	estimateVIN       string
	estimateMake      string
	estimateVideo     bool
	estimateRate      float64
	estimateFeeMode   string
	estimateFeeValue  float64
	estimateTaxPct    float64
	outputFormat      string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate repair costs from technician notes",
	Long: `Classify technician notes into labor operations, price the parts, and
produce a validated estimate.

Examples:
  # Estimate from raw notes
  fixedops estimate --notes "Rear brakes 2mm, pulsation felt"

  # Estimate a canned demo scenario with a VIN
  fixedops estimate --scenario rear-brake-job --vin 1HGCM82633A123451

  # Override the shop's rate and fees
  fixedops estimate --scenario rear-brake-job --rate 185 --fee-mode flat --fee-value 24.99

  # Emit the integration payload
  fixedops estimate --scenario rear-brake-job --format export`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateNotes, "notes", "", "Technician notes to estimate")
	estimateCmd.Flags().StringVar(&estimateNotesFile, "notes-file", "", "Read technician notes from a file")
	estimateCmd.Flags().StringVar(&estimateScenario, "scenario", "", "Canned scenario name (see fixedops scenarios)")
	estimateCmd.Flags().StringVar(&estimateVIN, "vin", "", "Vehicle VIN (17 characters)")
	estimateCmd.Flags().StringVar(&estimateMake, "make", "", "Vehicle make when no VIN is available")
	estimateCmd.Flags().BoolVar(&estimateVideo, "video", false, "Technician attached a video walkaround")
	estimateCmd.Flags().Float64Var(&estimateRate, "rate", 0, "Labor rate in dollars per hour")
	estimateCmd.Flags().StringVar(&estimateFeeMode, "fee-mode", "", "Shop fee mode (percent, flat)")
	estimateCmd.Flags().Float64Var(&estimateFeeValue, "fee-value", 0, "Shop fee value (percent points or flat dollars)")
	estimateCmd.Flags().Float64Var(&estimateTaxPct, "tax-pct", 0, "Sales tax in percent points")
	estimateCmd.Flags().StringVar(&outputFormat, "format", "cli", "Output format (cli, json, export)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	req, err := buildRequest(cmd, eng)
	if err != nil {
		return err
	}

	log.Info("Starting estimate run")
	result := eng.Run(req)

	// Output results
	switch outputFormat {
	case "json":
		return result.OutputJSON()
	case "export":
		return result.OutputExportJSON()
	case "cli":
		return result.OutputCLI()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// newEngine loads configuration and builds the estimation engine. A non-zero
// --seed pins the VIN equipment sampler so repeat runs decode identically.
func newEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var eng *engine.Engine
	if randomSeed != 0 {
		eng, err = engine.NewSeeded(cfg, randomSeed)
	} else {
		eng, err = engine.New(cfg)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return eng, cfg, nil
}

// buildRequest assembles a run request from the shop defaults and whatever
// flags the caller set. Flags the caller did not touch keep the defaults, so
// an explicit --fee-value 0 still means zero fees.
func buildRequest(cmd *cobra.Command, eng *engine.Engine) (engine.RunRequest, error) {
	req := eng.NewRequest()
	req.Source = "cli"

	switch {
	case estimateScenario != "":
		notes, ok := engine.Scenario(estimateScenario)
		if !ok {
			return req, fmt.Errorf("unknown scenario %q (available: %s)",
				estimateScenario, strings.Join(engine.ScenarioNames(), ", "))
		}
		req.Notes = notes
	case estimateNotes != "":
		req.Notes = estimateNotes
	case estimateNotesFile != "":
		raw, err := os.ReadFile(estimateNotesFile)
		if err != nil {
			return req, fmt.Errorf("failed to read notes file: %w", err)
		}
		req.Notes = string(raw)
	default:
		return req, fmt.Errorf("either --notes, --notes-file, or --scenario must be specified")
	}

	req.HasVideo = estimateVideo
	req.VIN = estimateVIN
	if estimateMake != "" {
		req.Make = estimateMake
	}
	if cmd.Flags().Changed("rate") {
		req.LaborRate = estimateRate
	}
	if cmd.Flags().Changed("fee-mode") {
		req.FeeMode = estimateFeeMode
	}
	if cmd.Flags().Changed("fee-value") {
		req.FeeValue = estimateFeeValue
	}
	if cmd.Flags().Changed("tax-pct") {
		req.TaxPct = estimateTaxPct
	}

	return req, nil
}
