package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pricemachine/pricelist"
)

// WriteTable prints records as a left-aligned console table with the ordinal
// as the first column.
func WriteTable(w io.Writer, records []pricelist.Record, labels pricelist.Labels) error {
	if labels == nil {
		labels = pricelist.DefaultLabels()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(labels.Headers(true), "\t")); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, record := range records {
		if _, err := fmt.Fprintln(tw, strings.Join(record.Cells(true), "\t")); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
