package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/spf13/cobra"
)

var decodeJSON bool

var decodeCmd = &cobra.Command{
	Use:   "decode [vin]",
	Short: "Decode a VIN into a vehicle profile",
	Long: `Decode a 17-character VIN into make, model year, and equipment.

Unrecognized manufacturer prefixes degrade to an UNKNOWN profile rather than
failing, matching how the estimate pipeline treats them.

Examples:
  fixedops decode 1HGCM82633A123451
  fixedops decode 1HGCM82633A123451 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "Output as JSON")
}

func runDecode(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	profile, events := eng.DecodeVIN(args[0])

	if decodeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Profile types.VehicleProfile `json:"profile"`
			Events  []types.Event        `json:"events"`
		}{profile, events})
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ VEHICLE PROFILE                                             │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	fmt.Printf("  VIN:         %s\n", profile.VIN)
	fmt.Printf("  Make:        %s\n", profile.Make)
	fmt.Printf("  Model:       %s\n", profile.Model)
	if profile.Year > 0 {
		fmt.Printf("  Year:        %d\n", profile.Year)
	}
	fmt.Printf("  Engine:      %s\n", profile.Engine)
	fmt.Printf("  Trim:        %s\n", profile.Trim)
	fmt.Printf("  Drivetrain:  %s\n", profile.Drivetrain)
	fmt.Printf("  Type:        %s\n", profile.VehicleType)
	fmt.Printf("  Confidence:  %.1f\n", profile.Confidence)

	for _, event := range events {
		if event.Severity == types.SeverityFlagged {
			fmt.Printf("\n  ⚠  %s\n", event.Message)
		}
	}

	fmt.Println()
	return nil
}
