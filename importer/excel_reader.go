package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pricemachine/pricelist"
)

// ExcelReader reads the first sheet of a workbook; the first row is the header.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open excel file %s: %w", pricelist.ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: excel file has no sheets: %s", ErrEmptyFile, path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows from sheet %s: %w", pricelist.ErrSourceUnavailable, sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s of %s", ErrEmptyFile, sheetName, path)
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, buildRecord(i+2, headers, row))
	}

	return records, nil
}
