package output

import (
	"database/sql"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pricemachine/pricelist"
)

// ExcelWriter stores numbers as numeric cells; null values leave the cell blank.
type ExcelWriter struct {
	Options Options
}

func (w *ExcelWriter) Write(path string, records []pricelist.Record) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if w.Options.Title != "" {
		if err := file.SetSheetName(sheet, excelSheetName(w.Options.Title)); err != nil {
			return fmt.Errorf("rename excel sheet: %w", err)
		}
		sheet = file.GetSheetName(0)
	}

	for col, header := range w.Options.labels().Headers(true) {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range records {
		row := i + 2
		values := []any{
			record.Ordinal,
			nullableText(record.Name),
			nullableNumber(record.Price),
			nullableNumber(record.Weight),
			record.SourceFile,
			nullableNumber(record.PricePerWeight),
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func nullableText(value sql.NullString) any {
	if !value.Valid {
		return nil
	}
	return value.String
}

func nullableNumber(value sql.NullFloat64) any {
	if !value.Valid {
		return nil
	}
	return value.Float64
}

// excelSheetName trims a title to the 31 characters Excel allows and drops
// the characters it forbids in sheet names.
func excelSheetName(title string) string {
	cleaned := make([]rune, 0, 31)
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		cleaned = append(cleaned, r)
		if len(cleaned) == 31 {
			break
		}
	}
	if len(cleaned) == 0 {
		return "Sheet1"
	}
	return string(cleaned)
}
