package pricelist

// OrdinalKey is the Labels key for the display ordinal column.
const OrdinalKey Field = "ordinal"

// Labels maps canonical fields (and OrdinalKey) to the column captions shown
// in the console, the web view and exported reports.
type Labels map[Field]string

func DefaultLabels() Labels {
	return Labels{
		OrdinalKey:          "№",
		FieldName:           "название",
		FieldPrice:          "цена",
		FieldWeight:         "вес",
		FieldSourceFile:     "файл",
		FieldPricePerWeight: "цена за кг.",
	}
}

func (l Labels) Label(field Field) string {
	if label, ok := l[field]; ok && label != "" {
		return label
	}
	return string(field)
}

// Headers returns the captions for the ordinal column followed by the
// canonical schema, or only the schema when withOrdinal is false.
func (l Labels) Headers(withOrdinal bool) []string {
	headers := make([]string, 0, len(CanonicalSchema)+1)
	if withOrdinal {
		headers = append(headers, l.Label(OrdinalKey))
	}
	for _, field := range CanonicalSchema {
		headers = append(headers, l.Label(field))
	}
	return headers
}
