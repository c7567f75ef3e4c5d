package importer

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"pricemachine/pricelist"
)

// ParseNumber reads a price or weight cell. Both "0.5" and "0,5" are accepted;
// when a value carries both separators the last one is the decimal point, so
// "1.234,50" and "1,234.50" both read as 1234.5. Spaces (including non-breaking
// ones) are treated as digit grouping. An empty cell is null without error.
func ParseNumber(raw string) (sql.NullFloat64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return sql.NullFloat64{}, nil
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case lastComma >= 0 && lastDot >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("%w: parse number %q: %w", pricelist.ErrNumericDegenerate, raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sql.NullFloat64{}, fmt.Errorf("%w: parse number %q: not a finite value", pricelist.ErrNumericDegenerate, raw)
	}
	return sql.NullFloat64{Float64: value, Valid: true}, nil
}
