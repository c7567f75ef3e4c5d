package output

import (
	"fmt"

	"pricemachine/pricelist"
	"pricemachine/storage"
)

// SQLiteWriter stores the table as price_records in a SQLite file, replacing
// any previous export in that file.
type SQLiteWriter struct{}

func (w *SQLiteWriter) Write(path string, records []pricelist.Record) error {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("open sqlite output %s: %w", path, err)
	}
	defer store.Close()

	if _, err := store.ReplaceRecords(records); err != nil {
		return fmt.Errorf("write sqlite output %s: %w", path, err)
	}
	return nil
}
