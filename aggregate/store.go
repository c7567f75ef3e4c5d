// Package aggregate holds the canonical in-memory price table. A Store is owned
// by one goroutine: Ingest, DerivePricePerWeight, Sort and Finalize must not run
// concurrently. Readers work on Snapshot values, which never change.
package aggregate

import (
	"database/sql"
	"log/slog"
	"strings"

	"pricemachine/importer"
	"pricemachine/pricelist"
)

type Store struct {
	mapper  *importer.HeaderMapper
	logger  *slog.Logger
	records []pricelist.Record
	// present tracks canonical fields supplied by at least one ingested file.
	present map[pricelist.Field]bool
	derived bool
}

func NewStore(mapper *importer.HeaderMapper, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{mapper: mapper, logger: logger}
	store.Reset()
	return store
}

// Reset drops every record so the table can be rebuilt from scratch.
func (s *Store) Reset() {
	s.records = make([]pricelist.Record, 0, 256)
	s.present = map[pricelist.Field]bool{pricelist.FieldSourceFile: true}
	s.derived = false
}

func (s *Store) Len() int {
	return len(s.records)
}

// Ingest appends one record per raw row, tagged with sourceFile. Only mapped
// columns are copied; a row without any mapped column still becomes an
// all-null record. When two headers of the same row map to one field the
// later column wins; this is logged once per file and field.
func (s *Store) Ingest(rows []importer.Record, sourceFile string) int {
	warned := make(map[pricelist.Field]bool)

	for _, row := range rows {
		record := pricelist.Record{SourceFile: sourceFile}
		assigned := make(map[pricelist.Field]string, len(pricelist.InputFields))

		for _, cell := range row.Cells {
			field, ok := s.mapper.Map(cell.Header)
			if !ok {
				continue
			}
			if previous, duplicate := assigned[field]; duplicate && !warned[field] {
				warned[field] = true
				s.logger.Warn("several headers map to one field, last column wins",
					"file", sourceFile,
					"field", field,
					"first", previous,
					"last", cell.Header,
				)
			}
			assigned[field] = cell.Header
			s.present[field] = true
			s.assign(&record, field, cell.Value, sourceFile, row.RowNumber)
		}

		s.records = append(s.records, record)
	}

	if len(rows) > 0 {
		s.derived = false
	}
	return len(rows)
}

func (s *Store) assign(record *pricelist.Record, field pricelist.Field, raw, sourceFile string, rowNumber int) {
	switch field {
	case pricelist.FieldName:
		value := strings.TrimSpace(raw)
		record.Name = sql.NullString{String: value, Valid: value != ""}
	case pricelist.FieldPrice, pricelist.FieldWeight:
		value, err := importer.ParseNumber(raw)
		if err != nil {
			s.logger.Warn("non-numeric value stored as null",
				"file", sourceFile,
				"row", rowNumber,
				"field", field,
				"error", err,
			)
		}
		if field == pricelist.FieldPrice {
			record.Price = value
		} else {
			record.Weight = value
		}
	}
}

// Snapshot returns a read-only copy of the current table.
func (s *Store) Snapshot() Snapshot {
	fields := make([]pricelist.Field, 0, len(s.present)+1)
	for _, field := range pricelist.CanonicalSchema {
		if s.present[field] || (field == pricelist.FieldPricePerWeight && s.derived) {
			fields = append(fields, field)
		}
	}
	return NewSnapshot(s.records, fields...)
}
