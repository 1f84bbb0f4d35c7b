package commands

import (
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the canned demo scenarios",
	RunE:  runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	for _, name := range engine.ScenarioNames() {
		notes, _ := engine.Scenario(name)
		fmt.Printf("%-26s %s\n", name, notes)
	}
	return nil
}
