package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// OutputJSON writes the full run as JSON.
func (r *Result) OutputJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Run)
}

// OutputExportJSON writes the integration payload as JSON.
func (r *Result) OutputExportJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Run.Export())
}

// OutputCLI writes a human-readable estimate to stdout.
func (r *Result) OutputCLI() error {
	run := r.Run

	fmt.Println("\n╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║           REPAIR ESTIMATE REPORT                           ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	fmt.Printf("\nRun ID:      %s\n", run.Metadata.RunID)
	fmt.Printf("Input Hash:  %s\n", run.Metadata.InputHash)
	fmt.Printf("Catalog:     %s\n", run.Metadata.CatalogVersion)
	fmt.Printf("Status:      %s\n", statusSymbol(run.Validation.Status))

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ VEHICLE                                                     │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")

	profile := run.Profile
	if profile.Year > 0 {
		fmt.Printf("  %d %s %s (%s)\n", profile.Year, profile.Make, profile.Model, profile.VehicleType)
	} else {
		fmt.Printf("  %s %s\n", profile.Make, profile.Model)
	}
	fmt.Printf("  Engine: %s   Trim: %s   Drivetrain: %s\n", profile.Engine, profile.Trim, profile.Drivetrain)
	if profile.VIN != "" {
		fmt.Printf("  VIN: %s   Decode confidence: %.1f\n", profile.VIN, profile.Confidence)
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ LABOR OPERATIONS                                            │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")

	for _, op := range run.LaborOps {
		fmt.Printf("\n  %-12s %s\n", op.OperationCode, op.Description)
		fmt.Printf("               %.1f hrs × $%.2f/hr = $%.2f\n", op.Hours, op.Rate, op.LineTotal)
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ PARTS                                                       │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")

	for _, part := range run.PartsLines {
		fmt.Printf("\n  %-14s %s\n", part.PartNumber, part.Description)
		fmt.Printf("                 %d × $%.2f = $%.2f   (%s, %s)\n",
			part.Quantity, part.UnitPrice, part.LineTotal, part.StockSource, part.Availability)
	}

	flagged := flaggedMessages(run.Trail)
	if len(flagged) > 0 {
		fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
		fmt.Println("│ FLAGGED DURING RUN                                          │")
		fmt.Println("└─────────────────────────────────────────────────────────────┘")
		for _, message := range flagged {
			fmt.Printf("  ⚠  %s\n", message)
		}
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ TOTALS                                                      │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")

	fmt.Printf("  Labor subtotal:   $%10.2f\n", run.Summary.LaborSubtotal)
	fmt.Printf("  Parts subtotal:   $%10.2f\n", run.Summary.PartsSubtotal)
	fmt.Printf("  Shop fees:        $%10.2f\n", run.Summary.ShopFees)
	fmt.Printf("  Tax:              $%10.2f\n", run.Summary.Tax)

	fmt.Println("\n╔════════════════════════════════════════════════════════════╗")
	fmt.Printf("║  GRAND TOTAL:  $%-10.2f  STATUS: %-8s              ║\n",
		run.Summary.GrandTotal, run.Validation.Status)
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	if len(run.Validation.Warnings) > 0 {
		fmt.Println("\n  Review reasons:")
		for _, warning := range run.Validation.Warnings {
			fmt.Printf("  ⚠  %s\n", warning)
		}
	}
	fmt.Println()

	return nil
}

func flaggedMessages(trail []types.Event) []string {
	var messages []string
	for _, event := range trail {
		if event.Severity == types.SeverityFlagged {
			messages = append(messages, event.Message)
		}
	}
	return messages
}

func statusSymbol(status types.ValidationStatus) string {
	switch status {
	case types.StatusPass:
		return "✓ PASS"
	case types.StatusReview:
		return "⚠ REVIEW"
	default:
		return "?"
	}
}
