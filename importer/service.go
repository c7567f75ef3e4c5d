package importer

import (
	"log/slog"
	"path/filepath"
)

// Sink receives the raw rows of one source file. The aggregate store
// implements it.
type Sink interface {
	Ingest(records []Record, sourceFile string) int
}

// Loader enumerates and parses price list files.
type Loader struct {
	Extensions []string
	Marker     string
	Logger     *slog.Logger
}

type FileFailure struct {
	Path string
	Err  error
}

type Result struct {
	FilesDiscovered int
	FilesLoaded     int
	FilesSkipped    int
	RowsRead        int
	RowsIngested    int
	Failures        []FileFailure
}

func NewLoader(extensions []string, marker string, logger *slog.Logger) *Loader {
	return &Loader{Extensions: extensions, Marker: marker, Logger: logger}
}

// Parse reads one file into raw rows. A file that is missing, empty,
// mis-encoded or otherwise unreadable is logged and yields no rows.
func (l *Loader) Parse(path string) []Record {
	records, err := l.read(path)
	if err != nil {
		l.logger().Error("skip price file", "file", path, "error", err)
		return []Record{}
	}
	return records
}

// Load discovers the files in dir and feeds each one to sink in discovery
// order. A failing file is skipped and recorded in the result; it never
// stops the remaining files.
func (l *Loader) Load(dir string, sink Sink) *Result {
	paths := l.Discover(dir)
	result := &Result{FilesDiscovered: len(paths), Failures: make([]FileFailure, 0)}

	for _, path := range paths {
		records, err := l.read(path)
		if err != nil {
			l.logger().Error("skip price file", "file", path, "error", err)
			result.FilesSkipped++
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
			continue
		}

		result.FilesLoaded++
		result.RowsRead += len(records)
		result.RowsIngested += sink.Ingest(records, filepath.Base(path))
		l.logger().Debug("loaded price file", "file", path, "rows", len(records))
	}

	l.logger().Info("price files loaded",
		"dir", dir,
		"discovered", result.FilesDiscovered,
		"loaded", result.FilesLoaded,
		"skipped", result.FilesSkipped,
		"rows", result.RowsRead,
	)
	return result
}

func (l *Loader) read(path string) ([]Record, error) {
	reader, err := ReaderForPath(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
