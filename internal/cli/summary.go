package cli

import (
	"fmt"
	"io"

	"github.com/datallboy/otmget/internal/domain"
)

// printSummary reports every outcome in target order, then the totals.
func printSummary(out io.Writer, outcomes []domain.Outcome) {
	for _, o := range outcomes {
		if o.Failed() {
			fmt.Fprintf(out, "Failed: %s: %s\n", o.Target, o.Error)
			continue
		}
		fmt.Fprintf(out, "Downloaded: %s\n", o.LocalPath)
	}
	fmt.Fprintf(out, "Completed %d of %d downloads\n", domain.CountSucceeded(outcomes), len(outcomes))
}
