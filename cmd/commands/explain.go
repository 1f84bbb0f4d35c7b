package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/explainability"
	"github.com/spf13/cobra"
)

var (
	explainRunID string
	explainJSON  bool
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain every line of an estimate",
	Long: `Run an estimate and narrate what was quoted, why each line exists, and
how each charge was computed. A stored run can be explained by its run ID
instead.

Examples:
  fixedops explain --scenario rear-brake-job
  fixedops explain --notes "Alternator tested bad" --vin 1HGCM82633A123451
  fixedops explain --run 4f7c...`,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&estimateNotes, "notes", "", "Technician notes to estimate")
	explainCmd.Flags().StringVar(&estimateScenario, "scenario", "", "Canned scenario name")
	explainCmd.Flags().StringVar(&estimateVIN, "vin", "", "Vehicle VIN (17 characters)")
	explainCmd.Flags().StringVar(&estimateMake, "make", "", "Vehicle make when no VIN is available")
	explainCmd.Flags().BoolVar(&estimateVideo, "video", false, "Technician attached a video walkaround")
	explainCmd.Flags().StringVar(&explainRunID, "run", "", "Stored run ID to explain")
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "Output as JSON")
}

func runExplain(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	var run *types.PipelineRun
	if explainRunID != "" {
		trail := eng.AuditTrail()
		if trail == nil {
			return fmt.Errorf("audit trail not configured; set AUDIT_DIR")
		}
		run, err = trail.LoadRun(explainRunID)
		if err != nil {
			return err
		}
	} else {
		req, err := buildRequest(cmd, eng)
		if err != nil {
			return err
		}
		result := eng.Run(req)
		run = &result.Run
	}

	explanation := explainability.New().ExplainRun(run)

	if explainJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(explanation)
	}

	renderExplanation(explanation)
	return nil
}

func renderExplanation(explanation *explainability.RunExplanation) {
	fmt.Println("\n╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║           ESTIMATE EXPLANATION                             ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	fmt.Printf("\nRun ID:   %s\n", explanation.RunID)
	fmt.Printf("Catalog:  %s\n", explanation.CatalogVersion)
	fmt.Printf("Vehicle:  %s\n", explanation.Vehicle.Summary)

	for _, op := range explanation.LaborOps {
		fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
		fmt.Printf("│ %-59s │\n", op.OperationCode)
		fmt.Println("└─────────────────────────────────────────────────────────────┘")
		fmt.Printf("  What: %s\n", op.What)
		fmt.Printf("  Why:  %s\n", op.Why)
		fmt.Printf("  How:  %s\n", op.How)

		for _, part := range op.Parts {
			fmt.Printf("    %s  [%s]  %s\n", part.What, part.Source, part.How)
			if part.Generic {
				fmt.Printf("    ⚠  Generic placeholder; the catalog has no part for this operation\n")
			}
		}
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ TOTALS                                                      │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	for _, step := range explanation.Totals.Steps {
		fmt.Printf("  %s\n", step)
	}

	fmt.Printf("\n%s\n\n", explanation.Validation.Outcome)
}
