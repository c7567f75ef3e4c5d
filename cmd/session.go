package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"pricemachine/aggregate"
	"pricemachine/config"
	"pricemachine/importer"
	"pricemachine/internal/logging"
	"pricemachine/output"
	"pricemachine/pricelist"
)

// session is one loaded and finalized price table plus the settings the
// commands need to present it.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	labels   pricelist.Labels
	snapshot aggregate.Snapshot
	load     *importer.Result
	derived  aggregate.DeriveStats
}

// openSession validates the active config, sets up logging on stderr, loads
// the price directory and prints the load summary to out.
func openSession(out io.Writer) (*session, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	s, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	printLoadSummary(out, s)
	return s, nil
}

func newSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	mapper, err := importer.NewHeaderMapper(cfg.Headers)
	if err != nil {
		return nil, fmt.Errorf("build header mapping: %w", err)
	}

	store := aggregate.NewStore(mapper, logger)
	loader := importer.NewLoader(cfg.Prices.Extensions, cfg.Prices.Marker, logger)
	result := loader.Load(cfg.Prices.Directory, store)
	derived := store.Finalize()

	return &session{
		cfg:      cfg,
		logger:   logger,
		labels:   cfg.Labels(),
		snapshot: store.Snapshot(),
		load:     result,
		derived:  derived,
	}, nil
}

func (s *session) exportOptions() output.Options {
	return output.Options{Title: s.cfg.Export.Title, Labels: s.labels}
}

func printLoadSummary(out io.Writer, s *session) {
	fmt.Fprintf(out, "Price files: %d found, %d loaded, %d skipped. Rows: %d read, %d in table.\n",
		s.load.FilesDiscovered,
		s.load.FilesLoaded,
		s.load.FilesSkipped,
		s.load.RowsRead,
		s.snapshot.Len(),
	)
	if s.derived.Nulled > 0 {
		fmt.Fprintf(out, "Price per kg missing for %d row(s).\n", s.derived.Nulled)
	}
}
