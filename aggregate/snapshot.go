package aggregate

import (
	"slices"

	"pricemachine/pricelist"
)

// Snapshot is an immutable point-in-time view of the table.
type Snapshot struct {
	records []pricelist.Record
	fields  map[pricelist.Field]bool
}

// NewSnapshot copies records into a snapshot. fields lists the canonical
// columns that exist in the data; when empty the full schema is assumed.
func NewSnapshot(records []pricelist.Record, fields ...pricelist.Field) Snapshot {
	if len(fields) == 0 {
		fields = pricelist.CanonicalSchema
	}
	present := make(map[pricelist.Field]bool, len(fields))
	for _, field := range fields {
		present[field] = true
	}
	return Snapshot{records: slices.Clone(records), fields: present}
}

// Records returns a copy of the rows in table order.
func (s Snapshot) Records() []pricelist.Record {
	if s.records == nil {
		return []pricelist.Record{}
	}
	return slices.Clone(s.records)
}

func (s Snapshot) Len() int {
	return len(s.records)
}

// HasField reports whether any loaded file supplied field.
func (s Snapshot) HasField(field pricelist.Field) bool {
	return s.fields[field]
}
