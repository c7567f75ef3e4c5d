package pricelist

import (
	"database/sql"
	"strconv"
)

// FormatNumber renders a numeric cell with two decimals; null renders empty.
func FormatNumber(value sql.NullFloat64) string {
	if !value.Valid {
		return ""
	}
	return strconv.FormatFloat(value.Float64, 'f', 2, 64)
}

func FormatText(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

// Cells renders the record in canonical schema order, optionally prefixed by
// its ordinal.
func (r Record) Cells(withOrdinal bool) []string {
	cells := make([]string, 0, len(CanonicalSchema)+1)
	if withOrdinal {
		cells = append(cells, strconv.Itoa(r.Ordinal))
	}
	return append(cells,
		FormatText(r.Name),
		FormatNumber(r.Price),
		FormatNumber(r.Weight),
		r.SourceFile,
		FormatNumber(r.PricePerWeight),
	)
}
