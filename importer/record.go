package importer

import (
	"strings"

	"golang.org/x/text/cases"
)

// Cell is one raw value together with the header of its column.
type Cell struct {
	Header string
	Value  string
}

// Record is one raw data row. Cells keep the column order of the source file.
type Record struct {
	RowNumber int
	Cells     []Cell
}

// NormalizeHeader is the comparison key of a raw header: case folded
// (Unicode aware, so Cyrillic headers match too) without a leading BOM,
// surrounding space or the separators "_", "-", " ".
func NormalizeHeader(input string) string {
	trimmed := strings.TrimPrefix(input, "\ufeff")
	trimmed = cases.Fold().String(strings.TrimSpace(trimmed))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}

func buildRecord(rowNumber int, headers, row []string) Record {
	cells := make([]Cell, len(headers))
	for i, header := range headers {
		cells[i] = Cell{Header: header}
		if i < len(row) {
			cells[i].Value = row[i]
		}
	}
	return Record{RowNumber: rowNumber, Cells: cells}
}
