package importapp

import (
	"fmt"
	"strings"
)

// Summarize renders the outcome sequence of one run as a human-readable
// report: counts first, then one labeled block per non-empty outcome
// class in encounter order, then a remediation hint when any line was
// skipped. Pure formatting; summarizing the same sequence twice yields
// identical text.
func Summarize(outcomes []ImportOutcome) string {
	var success, partial, skipped, failed int
	for _, o := range outcomes {
		switch o.Status {
		case OutcomeSuccess:
			success++
		case OutcomePartial:
			partial++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}

	var b strings.Builder
	b.WriteString("Import finished!\n\n")
	fmt.Fprintf(&b, "Total: %d orders\n", len(outcomes))
	fmt.Fprintf(&b, "Fully successful: %d\n", success)
	fmt.Fprintf(&b, "Partially successful: %d (some product lines skipped)\n", partial)
	fmt.Fprintf(&b, "Skipped: %d\n", skipped)
	fmt.Fprintf(&b, "Failed: %d\n", failed)

	rule := strings.Repeat("-", 80)

	if success > 0 {
		b.WriteString("\nFully imported orders:\n" + rule + "\n")
		for _, o := range outcomes {
			if o.Status != OutcomeSuccess {
				continue
			}
			fmt.Fprintf(&b, "  * %s - %s - ¥%s\n", o.PurchaseName, o.SupplierName, o.AmountTotal.StringFixed(2))
			fmt.Fprintf(&b, "    (1688 order no: %s)\n", o.OrderNo)
		}
	}

	if partial > 0 {
		b.WriteString("\nPartially imported orders (with skipped product lines):\n" + rule + "\n")
		for _, o := range outcomes {
			if o.Status != OutcomePartial {
				continue
			}
			fmt.Fprintf(&b, "  * %s - %s - ¥%s\n", o.PurchaseName, o.SupplierName, o.AmountTotal.StringFixed(2))
			fmt.Fprintf(&b, "    (1688 order no: %s)\n", o.OrderNo)
			if len(o.SkippedLines) > 0 {
				fmt.Fprintf(&b, "    skipped %d product lines:\n", len(o.SkippedLines))
				writeSkippedLines(&b, o.SkippedLines)
			}
		}
	}

	if failed > 0 {
		b.WriteString("\nFailed orders:\n" + rule + "\n")
		for _, o := range outcomes {
			if o.Status != OutcomeFailed {
				continue
			}
			fmt.Fprintf(&b, "  * 1688 order no: %s\n", o.OrderNo)
			fmt.Fprintf(&b, "    error: %s\n", o.Reason)
		}
	}

	if skipped > 0 {
		b.WriteString("\nSkipped orders:\n" + rule + "\n")
		for _, o := range outcomes {
			if o.Status != OutcomeSkipped {
				continue
			}
			fmt.Fprintf(&b, "  * 1688 order no: %s\n", o.OrderNo)
			fmt.Fprintf(&b, "    reason: %s\n", o.Reason)
			if len(o.SkippedLines) > 0 {
				b.WriteString("    skipped product lines:\n")
				writeSkippedLines(&b, o.SkippedLines)
			}
		}
	}

	if partial > 0 || skipped > 0 {
		b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
		b.WriteString("Note:\n")
		b.WriteString("Some product lines were skipped because their product reference is missing or unknown.\n")
		b.WriteString("Fill the reference column with the product's internal reference, or create the\n")
		b.WriteString("matching product first, then import the file again.\n")
	}

	return b.String()
}

func writeSkippedLines(b *strings.Builder, lines []SkippedLine) {
	for _, line := range lines {
		fmt.Fprintf(b, "       - %s\n", line.ProductName)
		fmt.Fprintf(b, "         reason: %s\n", line.Reason)
	}
}
