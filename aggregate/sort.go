package aggregate

import (
	"cmp"
	"fmt"
	"slices"

	"pricemachine/pricelist"
)

// Sort orders the table by field, keeping the relative order of equal values.
// Null values always go last, whichever direction is requested.
func (s *Store) Sort(field pricelist.Field, ascending bool) error {
	normalized, ok := pricelist.ParseField(string(field))
	if !ok {
		s.logger.Error("cannot sort by unknown field", "field", field, "error", pricelist.ErrSchemaMismatch)
		return fmt.Errorf("%w: unknown sort field %q", pricelist.ErrSchemaMismatch, field)
	}

	slices.SortStableFunc(s.records, func(a, b pricelist.Record) int {
		return compareRecords(a, b, normalized, ascending)
	})
	return nil
}

// Finalize derives price per weight, sorts ascending by it and numbers the
// records 1..N in that order. Calling it again on an unchanged table
// reproduces the same ordinals.
func (s *Store) Finalize() DeriveStats {
	stats := s.DerivePricePerWeight()
	_ = s.Sort(pricelist.FieldPricePerWeight, true)
	for i := range s.records {
		s.records[i].Ordinal = i + 1
	}

	s.logger.Debug("price table finalized",
		"records", len(s.records),
		"computed", stats.Computed,
		"nulled", stats.Nulled,
	)
	return stats
}

func compareRecords(a, b pricelist.Record, field pricelist.Field, ascending bool) int {
	var (
		aNull, bNull bool
		order        int
	)

	if left, ok := a.Number(field); ok {
		right, _ := b.Number(field)
		aNull, bNull = !left.Valid, !right.Valid
		order = cmp.Compare(left.Float64, right.Float64)
	} else {
		left, _ := a.Text(field)
		right, _ := b.Text(field)
		aNull, bNull = !left.Valid, !right.Valid
		order = cmp.Compare(left.String, right.String)
	}

	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	case ascending:
		return order
	default:
		return -order
	}
}
