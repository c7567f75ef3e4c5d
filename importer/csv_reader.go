package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"pricemachine/pricelist"
)

// CSVReader reads delimited UTF-8 text with a header row. A UTF-8 BOM is
// dropped and UTF-16 input with a BOM is decoded; anything else that is not
// valid UTF-8 is rejected with ErrMalformedEncoding.
type CSVReader struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (r *CSVReader) Read(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open csv file %s: %w", pricelist.ErrSourceUnavailable, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.UTF8Validator), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEncoding, path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	if r.Comma != 0 {
		reader.Comma = r.Comma
	}

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header %s: %w", pricelist.ErrSourceUnavailable, path, err)
	}

	records := make([]Record, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv row %d of %s: %w", pricelist.ErrSourceUnavailable, rowNumber+1, path, err)
		}
		rowNumber++

		records = append(records, buildRecord(rowNumber, headers, row))
	}

	return records, nil
}
