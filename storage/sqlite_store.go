package storage

import (
	"database/sql"
	"fmt"

	"pricemachine/pricelist"

	_ "modernc.org/sqlite"
)

// SQLiteStore writes a finalized price table into a standalone SQLite file.
// It is an export artifact; the application never reads its state back at
// startup.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS price_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ordinal INTEGER NOT NULL,
	name TEXT,
	price REAL,
	weight REAL,
	source_file TEXT NOT NULL,
	price_per_weight REAL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceRecords swaps the stored table for records in one transaction.
func (s *SQLiteStore) ReplaceRecords(records []pricelist.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM price_records;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clear price records: %w", err)
	}

	const insertStmt = `
INSERT INTO price_records (
	ordinal,
	name,
	price,
	weight,
	source_file,
	price_per_weight
) VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range records {
		if _, err := stmt.Exec(
			record.Ordinal,
			record.Name,
			record.Price,
			record.Weight,
			record.SourceFile,
			record.PricePerWeight,
		); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert price record: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

func (s *SQLiteStore) ListRecords() ([]pricelist.Record, error) {
	const query = `
SELECT
	ordinal,
	name,
	price,
	weight,
	source_file,
	price_per_weight
FROM price_records
ORDER BY ordinal, id;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query price records: %w", err)
	}
	defer rows.Close()

	records := make([]pricelist.Record, 0, 256)
	for rows.Next() {
		var record pricelist.Record
		if err := rows.Scan(
			&record.Ordinal,
			&record.Name,
			&record.Price,
			&record.Weight,
			&record.SourceFile,
			&record.PricePerWeight,
		); err != nil {
			return nil, fmt.Errorf("scan price record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price records: %w", err)
	}

	return records, nil
}
