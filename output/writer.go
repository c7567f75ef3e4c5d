package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"pricemachine/pricelist"
)

// Writer renders finalized records into a file at path.
type Writer interface {
	Write(path string, records []pricelist.Record) error
}

// Options carry the presentation settings shared by every writer.
type Options struct {
	Title  string
	Labels pricelist.Labels
}

func (o Options) labels() pricelist.Labels {
	if o.Labels == nil {
		return pricelist.DefaultLabels()
	}
	return o.Labels
}

func WriterForFormat(format string, options Options) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "html", "htm":
		return &HTMLWriter{Options: options}, nil
	case "csv":
		return &CSVWriter{Options: options}, nil
	case "excel", "xlsx":
		return &ExcelWriter{Options: options}, nil
	case "sqlite", "db":
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat infers the output format from the file extension, falling
// back to html.
func DetectFormat(path string) string {
	switch normalizeFormat(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "csv":
		return "csv"
	case "xlsx", "xlsm":
		return "excel"
	case "db", "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "html"
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
