package cli

import (
	"fmt"
	"strings"

	"github.com/smsledger/sms-expense-backend/internal/application/scan"
)

// PrintHeader prints a banner for a command run.
func PrintHeader(title string) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("=", 50))
}

// PrintScanConfiguration prints the effective scan settings before a run.
func PrintScanConfiguration(backupPath string, senders []string, after string) {
	fmt.Println("\nConfiguration:")
	fmt.Printf("  Backup file: %s\n", backupPath)
	if len(senders) > 0 {
		fmt.Printf("  Senders:     %s\n", strings.Join(senders, ", "))
	} else {
		fmt.Println("  Senders:     (all)")
	}
	if after != "" {
		fmt.Printf("  After:       %s\n", after)
	}
	fmt.Println()
}

// PrintScanReport prints the result counters after a scan run.
func PrintScanReport(report *scan.Report) {
	fmt.Println("\nScan complete:")
	fmt.Printf("  Scanned:    %d\n", report.Scanned)
	fmt.Printf("  Created:    %d\n", report.Created)
	fmt.Printf("  Duplicates: %d\n", report.Duplicates)
	fmt.Printf("  No match:   %d\n", report.NoMatch)
	if report.Errored > 0 {
		fmt.Printf("  Errors:     %d\n", report.Errored)
		for _, msg := range report.Errors {
			fmt.Printf("    - %s\n", msg)
		}
	}
}
