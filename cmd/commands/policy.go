package commands

import (
	"fmt"
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/output"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var (
	failOnReview   bool
	annotateFormat string
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Evaluate an estimate against the shop's business rules",
	Long: `Run an estimate and report which business rules passed or flagged it.

Rules checked:
- Shop supplies fee present when labor is billed
- Sales tax present when labor is billed
- Grand total under the manager approval ceiling
- High-value tire lines flagged for margin review

Exits with code 1 when the estimate needs review, so pricing changes can be
gated in CI.

Example:
  fixedops policy --scenario rear-brake-job --fail-on-review=false`,
	RunE: runPolicy,
}

func init() {
	policyCmd.Flags().StringVar(&estimateNotes, "notes", "", "Technician notes to estimate")
	policyCmd.Flags().StringVar(&estimateScenario, "scenario", "", "Canned scenario name")
	policyCmd.Flags().StringVar(&estimateVIN, "vin", "", "Vehicle VIN (17 characters)")
	policyCmd.Flags().StringVar(&estimateMake, "make", "", "Vehicle make when no VIN is available")
	policyCmd.Flags().BoolVar(&failOnReview, "fail-on-review", true, "Exit with error code 1 when the estimate needs review")
	policyCmd.Flags().StringVar(&annotateFormat, "annotate", "", "Emit CI annotations instead of the report (github, gitlab, markdown)")
}

func runPolicy(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	req, err := buildRequest(cmd, eng)
	if err != nil {
		return err
	}

	log.Info("Starting business rule evaluation")
	result := eng.Run(req)
	run := result.Run

	if annotateFormat != "" {
		fmt.Print(output.NewCIAnnotator(annotateFormat).AnnotateRun(&run))
		if failOnReview && run.Validation.Status == types.StatusReview {
			os.Exit(1)
		}
		return nil
	}

	fmt.Println("\n╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║           BUSINESS RULE EVALUATION                         ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	fmt.Printf("\nGrand Total:      $%.2f\n", run.Summary.GrandTotal)
	fmt.Printf("Approval Ceiling: $%.2f\n\n", eng.ApprovalCeiling())

	if len(run.Validation.Warnings) == 0 {
		fmt.Println("✓ All business rules passed")
	} else {
		for _, warning := range run.Validation.Warnings {
			fmt.Printf("⚠  %s\n", warning)
		}
	}

	fmt.Printf("\nStatus: %s\n\n", run.Validation.Status)

	if failOnReview && run.Validation.Status == types.StatusReview {
		log.Error("Estimate needs review - exiting with error code 1")
		os.Exit(1)
	}

	return nil
}
