package importer

import (
	"fmt"
	"sort"

	"pricemachine/pricelist"
)

// HeaderMapper translates raw source headers into canonical fields using a
// fixed lookup table. Keys are compared after NormalizeHeader, so "Цена",
// " цена " and "ЦЕНА" are the same header.
type HeaderMapper struct {
	table map[string]pricelist.Field
}

// NewHeaderMapper validates table (raw header -> canonical field name). Only
// input fields (name, price, weight) are valid targets. Two spellings that
// normalize to the same key must agree on the target.
func NewHeaderMapper(table map[string]string) (*HeaderMapper, error) {
	mapper := &HeaderMapper{table: make(map[string]pricelist.Field, len(table))}

	raws := make([]string, 0, len(table))
	for raw := range table {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	for _, raw := range raws {
		key := NormalizeHeader(raw)
		if key == "" {
			return nil, fmt.Errorf("header mapping contains an empty raw header")
		}
		field, ok := pricelist.ParseField(table[raw])
		if !ok || !pricelist.IsInputField(field) {
			return nil, fmt.Errorf("header %q maps to %q (valid: name, price, weight)", raw, table[raw])
		}
		if existing, exists := mapper.table[key]; exists && existing != field {
			return nil, fmt.Errorf("header %q maps to both %q and %q", raw, existing, field)
		}
		mapper.table[key] = field
	}

	return mapper, nil
}

// Map returns the canonical field for raw, or false when the header is unmapped.
func (m *HeaderMapper) Map(raw string) (pricelist.Field, bool) {
	if m == nil {
		return "", false
	}
	field, ok := m.table[NormalizeHeader(raw)]
	return field, ok
}

// Len reports the number of distinct normalized raw headers.
func (m *HeaderMapper) Len() int {
	return len(m.table)
}
