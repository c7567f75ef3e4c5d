package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"pricemachine/pricelist"
)

type CSVWriter struct {
	Options Options
}

func (w *CSVWriter) Write(path string, records []pricelist.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(w.Options.labels().Headers(true)); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record.Cells(true)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
