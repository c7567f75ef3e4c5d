package aggregate

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"pricemachine/pricelist"
)

type DeriveStats struct {
	Computed int
	Nulled   int
}

// DerivePricePerWeight sets price_per_weight = price / weight rounded to two
// decimals on every record. A record with a missing or zero weight, or a
// missing price, gets a null value and a log line; processing continues.
func (s *Store) DerivePricePerWeight() DeriveStats {
	var stats DeriveStats

	missing := make([]string, 0, 2)
	for _, field := range []pricelist.Field{pricelist.FieldPrice, pricelist.FieldWeight} {
		if !s.present[field] {
			missing = append(missing, string(field))
		}
	}
	if len(s.records) > 0 && len(missing) > 0 {
		s.logger.Error("cannot derive price per weight",
			"missing", missing,
			"error", pricelist.ErrSchemaMismatch,
		)
	}

	for i := range s.records {
		record := &s.records[i]
		value, err := pricePerWeight(record.Price, record.Weight)
		record.PricePerWeight = value
		if err != nil {
			stats.Nulled++
			if len(missing) == 0 {
				s.logger.Warn("price per weight left empty",
					"file", record.SourceFile,
					"name", pricelist.FormatText(record.Name),
					"error", err,
				)
			}
			continue
		}
		stats.Computed++
	}

	s.derived = true
	return stats
}

func pricePerWeight(price, weight sql.NullFloat64) (sql.NullFloat64, error) {
	switch {
	case !price.Valid:
		return sql.NullFloat64{}, fmt.Errorf("%w: price is missing or not a number", pricelist.ErrNumericDegenerate)
	case !weight.Valid:
		return sql.NullFloat64{}, fmt.Errorf("%w: weight is missing or not a number", pricelist.ErrNumericDegenerate)
	case weight.Float64 == 0:
		return sql.NullFloat64{}, fmt.Errorf("%w: weight is zero", pricelist.ErrNumericDegenerate)
	}

	ratio := decimal.NewFromFloat(price.Float64).
		Div(decimal.NewFromFloat(weight.Float64)).
		Round(2)
	return sql.NullFloat64{Float64: ratio.InexactFloat64(), Valid: true}, nil
}
