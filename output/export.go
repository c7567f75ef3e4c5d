package output

import (
	"fmt"
	"log/slog"
	"strings"

	"pricemachine/aggregate"
	"pricemachine/pricelist"
)

// Export writes the snapshot to path. An empty format is inferred from the
// path. Failures are logged and returned wrapped in pricelist.ErrExportFailure;
// the snapshot itself is never touched.
func Export(snapshot aggregate.Snapshot, path, format string, options Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(format) == "" {
		format = DetectFormat(path)
	}

	writer, err := WriterForFormat(format, options)
	if err != nil {
		logger.Error("export failed", "path", path, "format", format, "error", err)
		return fmt.Errorf("%w: %w", pricelist.ErrExportFailure, err)
	}

	if err := writer.Write(path, snapshot.Records()); err != nil {
		logger.Error("export failed", "path", path, "format", format, "error", err)
		return fmt.Errorf("%w: %w", pricelist.ErrExportFailure, err)
	}

	logger.Info("export completed", "path", path, "format", format, "records", snapshot.Len())
	return nil
}
