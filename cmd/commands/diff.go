package commands

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/diff"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/output"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"
)

var (
	beforeScenario string
	afterScenario  string
	beforeRunID    string
	afterRunID     string
	diffJSON       bool
	diffAnnotate   string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two estimates",
	Long: `Calculate the money delta between two estimate runs, line by line.

Each side is either a canned scenario estimated fresh, or a stored run loaded
from the audit trail by its run ID.

Examples:
  # Diff two scenarios
  fixedops diff --before-scenario rear-brake-job --after-scenario alternator-brakes-tires

  # Diff two stored runs
  fixedops diff --before-run 4f7c... --after-run 9a1d...`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&beforeScenario, "before-scenario", "", "Scenario name for the before estimate")
	diffCmd.Flags().StringVar(&afterScenario, "after-scenario", "", "Scenario name for the after estimate")
	diffCmd.Flags().StringVar(&beforeRunID, "before-run", "", "Stored run ID for the before estimate")
	diffCmd.Flags().StringVar(&afterRunID, "after-run", "", "Stored run ID for the after estimate")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output as JSON")
	diffCmd.Flags().StringVar(&diffAnnotate, "annotate", "", "Emit CI annotations instead of the report (github, gitlab, markdown)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	if (beforeScenario == "" && beforeRunID == "") || (afterScenario == "" && afterRunID == "") {
		return fmt.Errorf("both before and after estimates must be specified")
	}

	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	before, err := resolveRun(eng, beforeScenario, beforeRunID)
	if err != nil {
		return fmt.Errorf("failed to resolve before estimate: %w", err)
	}

	after, err := resolveRun(eng, afterScenario, afterRunID)
	if err != nil {
		return fmt.Errorf("failed to resolve after estimate: %w", err)
	}

	log.Info("Calculating estimate diff")
	result := diff.New().Diff(before, after)

	if diffAnnotate != "" {
		fmt.Print(output.NewCIAnnotator(diffAnnotate).AnnotateDiff(result))
		return nil
	}
	if diffJSON {
		return result.OutputJSON()
	}
	return result.OutputCLI()
}

// resolveRun produces one side of the diff: a stored run when a run ID was
// given, otherwise a fresh estimate of the named scenario.
func resolveRun(eng *engine.Engine, scenario, runID string) (*types.PipelineRun, error) {
	if runID != "" {
		trail := eng.AuditTrail()
		if trail == nil {
			return nil, fmt.Errorf("audit trail not configured; set AUDIT_DIR")
		}
		return trail.LoadRun(runID)
	}

	notes, ok := engine.Scenario(scenario)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (available: %s)",
			scenario, strings.Join(engine.ScenarioNames(), ", "))
	}

	req := eng.NewRequest()
	req.Notes = notes
	req.Source = "cli"
	result := eng.Run(req)
	return &result.Run, nil
}
