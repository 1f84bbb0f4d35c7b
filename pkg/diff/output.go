package diff

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputJSON writes the diff as JSON
func (d *RunDiff) OutputJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

// OutputCLI writes a human-readable comparison to stdout
func (d *RunDiff) OutputCLI() error {
	fmt.Println("\n╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║           ESTIMATE DIFFERENCE REPORT                       ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	fmt.Printf("\nBefore:  $%.2f  (%s)\n", d.BeforeTotal, d.BeforeStatus)
	fmt.Printf("After:   $%.2f  (%s)\n", d.AfterTotal, d.AfterStatus)

	deltaSymbol := "↑"
	if d.TotalDelta < 0 {
		deltaSymbol = "↓"
	}
	fmt.Printf("Delta:   %s $%.2f (%.1f%%)\n", deltaSymbol, d.TotalDelta, d.PercentChange)

	if len(d.AddedOps) > 0 {
		fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
		fmt.Println("│ ADDED OPERATIONS                                            │")
		fmt.Println("└─────────────────────────────────────────────────────────────┘")
		for _, op := range d.AddedOps {
			fmt.Printf("  + %-12s %.1f hrs  $%8.2f  %s\n",
				op.OperationCode, op.Hours, op.Cost, op.Description)
		}
	}

	if len(d.RemovedOps) > 0 {
		fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
		fmt.Println("│ REMOVED OPERATIONS                                          │")
		fmt.Println("└─────────────────────────────────────────────────────────────┘")
		for _, op := range d.RemovedOps {
			fmt.Printf("  - %-12s %.1f hrs  $%8.2f  %s\n",
				op.OperationCode, op.Hours, op.Cost, op.Description)
		}
	}

	if len(d.ModifiedOps) > 0 {
		fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
		fmt.Println("│ MODIFIED OPERATIONS                                         │")
		fmt.Println("└─────────────────────────────────────────────────────────────┘")
		for _, op := range d.ModifiedOps {
			fmt.Printf("  ~ %-12s was $%.2f, now $%.2f (%+.2f)\n",
				op.OperationCode, op.OldCost, op.Cost, op.Delta)
		}
	}

	fmt.Println("\n┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│ BUCKET CHANGES                                              │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	for _, bucket := range []string{"labor", "parts", "fees", "tax"} {
		delta, ok := d.BucketDeltas[bucket]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s $%10.2f  $%10.2f  %+10.2f\n",
			bucket, delta.BeforeCost, delta.AfterCost, delta.Delta)
	}

	if d.StatusChanged {
		fmt.Printf("\n⚠  Validation status changed: %s is now %s\n", d.BeforeStatus, d.AfterStatus)
	}

	fmt.Println()
	return nil
}
