package importer

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type recordingSink struct {
	files []string
	rows  int
}

func (s *recordingSink) Ingest(records []Record, sourceFile string) int {
	s.files = append(s.files, sourceFile)
	s.rows += len(records)
	return len(records)
}

func TestLoader_DiscoverFiltersByExtensionAndMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "price_1.csv", []byte("a\n1\n"))
	writeFile(t, dir, "PRICE_2.CSV", []byte("a\n1\n"))
	writeFile(t, dir, "Price-list.csv", []byte("a\n1\n"))
	writeFile(t, dir, "stock.csv", []byte("a\n1\n"))
	writeFile(t, dir, "price_notes.txt", []byte("a\n1\n"))
	if err := os.Mkdir(filepath.Join(dir, "price_dir.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	loader := NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	got := loader.Discover(dir)
	want := []string{
		filepath.Join(dir, "PRICE_2.CSV"),
		filepath.Join(dir, "Price-list.csv"),
		filepath.Join(dir, "price_1.csv"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected discovered files:\nwant %q\ngot  %q", want, got)
	}
}

func TestLoader_DiscoverMissingDirectoryIsEmpty(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	loader := NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&logs, nil)))
	got := loader.Discover(filepath.Join(t.TempDir(), "nope"))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if !strings.Contains(logs.String(), "does not exist") {
		t.Fatalf("expected missing directory to be logged, got %q", logs.String())
	}
}

func TestLoader_LoadIsolatesBrokenFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a_price.csv", []byte("товар,цена,вес\nBread,100,0.5\n"))
	writeFile(t, dir, "b_price.csv", nil)
	writeFile(t, dir, "c_price.csv", []byte("name\n\xc3\x28\n"))
	writeFile(t, dir, "d_price.csv", []byte("наименование,розница,масса\nMilk,150,1.0\nCheese,300,0.25\n"))

	var logs bytes.Buffer
	loader := NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&logs, nil)))
	sink := &recordingSink{}
	result := loader.Load(dir, sink)

	if result.FilesDiscovered != 4 || result.FilesLoaded != 2 || result.FilesSkipped != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.RowsRead != 3 || result.RowsIngested != 3 {
		t.Fatalf("unexpected row counts: %+v", result)
	}
	if !reflect.DeepEqual(sink.files, []string{"a_price.csv", "d_price.csv"}) {
		t.Fatalf("unexpected ingested files: %q", sink.files)
	}
	if len(result.Failures) != 2 || filepath.Base(result.Failures[0].Path) != "b_price.csv" {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if !strings.Contains(logs.String(), "b_price.csv") || !strings.Contains(logs.String(), "c_price.csv") {
		t.Fatalf("expected skipped files to be logged, got %q", logs.String())
	}
}

func TestLoader_ParseReturnsEmptyOnFailure(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	loader := NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&logs, nil)))
	records := loader.Parse(filepath.Join(t.TempDir(), "missing_price.csv"))
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty records, got %#v", records)
	}
	if !strings.Contains(logs.String(), "skip price file") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}
