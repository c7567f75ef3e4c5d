package query

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"pricemachine/aggregate"
	"pricemachine/pricelist"
)

// Result holds the rows matched by one search, in table order.
type Result struct {
	Query   string
	Records []pricelist.Record
	Count   int
}

// Search returns the records whose name contains text, ignoring case. The text
// is matched literally. Records without a name never match, and an empty text
// matches every named record. When no loaded file supplied a name column the
// result is empty and the condition is logged.
func Search(snapshot aggregate.Snapshot, text string, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	result := Result{Query: text, Records: []pricelist.Record{}}

	if !snapshot.HasField(pricelist.FieldName) {
		logger.Warn("search skipped: name column absent from data",
			"query", text,
			"error", pricelist.ErrSchemaMismatch,
		)
		return result
	}

	folder := cases.Fold()
	needle := folder.String(text)
	for _, record := range snapshot.Records() {
		if !record.Name.Valid {
			continue
		}
		if strings.Contains(folder.String(record.Name.String), needle) {
			result.Records = append(result.Records, record)
		}
	}

	result.Count = len(result.Records)
	logger.Debug("search completed", "query", text, "matches", result.Count)
	return result
}
