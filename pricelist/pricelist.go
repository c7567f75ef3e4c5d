package pricelist

import (
	"database/sql"
	"strings"
)

// Field names one column of the canonical schema.
type Field string

const (
	FieldName           Field = "name"
	FieldPrice          Field = "price"
	FieldWeight         Field = "weight"
	FieldSourceFile     Field = "source_file"
	FieldPricePerWeight Field = "price_per_weight"
)

// CanonicalSchema is the fixed, ordered set of fields every aggregated record carries.
var CanonicalSchema = []Field{FieldName, FieldPrice, FieldWeight, FieldSourceFile, FieldPricePerWeight}

// InputFields are the fields a raw source header may be mapped to. The
// remaining canonical fields are populated by the aggregate store itself.
var InputFields = []Field{FieldName, FieldPrice, FieldWeight}

func ParseField(value string) (Field, bool) {
	candidate := Field(strings.ToLower(strings.TrimSpace(value)))
	for _, field := range CanonicalSchema {
		if field == candidate {
			return field, true
		}
	}
	return "", false
}

func IsInputField(field Field) bool {
	for _, candidate := range InputFields {
		if candidate == field {
			return true
		}
	}
	return false
}

// Record is one normalized price list row. Optional values use the sql.Null
// types so a missing cell is explicit and the record stays a plain value.
type Record struct {
	Ordinal        int
	Name           sql.NullString
	Price          sql.NullFloat64
	Weight         sql.NullFloat64
	SourceFile     string
	PricePerWeight sql.NullFloat64
}

// Number returns the numeric value of field, if the field is numeric.
func (r Record) Number(field Field) (sql.NullFloat64, bool) {
	switch field {
	case FieldPrice:
		return r.Price, true
	case FieldWeight:
		return r.Weight, true
	case FieldPricePerWeight:
		return r.PricePerWeight, true
	default:
		return sql.NullFloat64{}, false
	}
}

// Text returns the string value of field, if the field is textual.
func (r Record) Text(field Field) (sql.NullString, bool) {
	switch field {
	case FieldName:
		return r.Name, true
	case FieldSourceFile:
		return sql.NullString{String: r.SourceFile, Valid: true}, true
	default:
		return sql.NullString{}, false
	}
}
