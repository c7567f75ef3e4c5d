package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"pricemachine/pricelist"
)

var (
	ErrEmptyFile         = fmt.Errorf("%w: file is empty", pricelist.ErrSourceUnavailable)
	ErrMalformedEncoding = fmt.Errorf("%w: file is not valid UTF-8", pricelist.ErrSourceUnavailable)
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

type Reader interface {
	Read(path string) ([]Record, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch NormalizeHeader(strings.TrimPrefix(format, ".")) {
	case "csv":
		return &CSVReader{}, nil
	case "tsv":
		return &CSVReader{Comma: '\t'}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ReaderForPath selects the reader from the file extension.
func ReaderForPath(path string) (Reader, error) {
	return ReaderForFormat(filepath.Ext(path))
}
