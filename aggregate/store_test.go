package aggregate

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pricemachine/importer"
	"pricemachine/pricelist"
)

func testMapper(t *testing.T) *importer.HeaderMapper {
	t.Helper()
	mapper, err := importer.NewHeaderMapper(map[string]string{
		"название":     "name",
		"продукт":      "name",
		"товар":        "name",
		"наименование": "name",
		"цена":         "price",
		"розница":      "price",
		"фасовка":      "weight",
		"масса":        "weight",
		"вес":          "weight",
	})
	require.NoError(t, err)
	return mapper
}

func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewStore(testMapper(t), slog.New(slog.NewTextHandler(&logs, nil))), &logs
}

func row(number int, pairs ...string) importer.Record {
	record := importer.Record{RowNumber: number}
	for i := 0; i+1 < len(pairs); i += 2 {
		record.Cells = append(record.Cells, importer.Cell{Header: pairs[i], Value: pairs[i+1]})
	}
	return record
}

func name(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

func num(value float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: value, Valid: true}
}

func writePriceFile(t *testing.T, dir, fileName, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))
}

func TestStore_LoadAndFinalizeAcrossHeterogeneousFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePriceFile(t, dir, "price_a.csv", "товар,цена,вес\nBread,100,0.5\n")
	writePriceFile(t, dir, "price_b.csv", "наименование,розница,масса\nMilk,150,1.0\n")

	store, _ := newTestStore(t)
	loader := importer.NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	result := loader.Load(dir, store)
	require.Equal(t, 2, result.FilesLoaded)

	stats := store.Finalize()
	require.Equal(t, DeriveStats{Computed: 2}, stats)

	records := store.Snapshot().Records()
	require.Len(t, records, 2)

	require.Equal(t, pricelist.Record{
		Ordinal:        1,
		Name:           name("Milk"),
		Price:          num(150),
		Weight:         num(1),
		SourceFile:     "price_b.csv",
		PricePerWeight: num(150),
	}, records[0])
	require.Equal(t, pricelist.Record{
		Ordinal:        2,
		Name:           name("Bread"),
		Price:          num(100),
		Weight:         num(0.5),
		SourceFile:     "price_a.csv",
		PricePerWeight: num(200),
	}, records[1])
}

func TestStore_OneBrokenFileDoesNotAbortTheBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePriceFile(t, dir, "1_price.csv", "товар,цена,вес\nBread,100,0.5\n")
	writePriceFile(t, dir, "2_price.csv", "")
	writePriceFile(t, dir, "3_price.csv", "продукт,цена,фасовка\nTea,90,0.1\nSugar,70,1\n")

	var logs bytes.Buffer
	store := NewStore(testMapper(t), slog.New(slog.NewTextHandler(&logs, nil)))
	loader := importer.NewLoader([]string{".csv"}, "price", slog.New(slog.NewTextHandler(&logs, nil)))
	result := loader.Load(dir, store)
	store.Finalize()

	require.Equal(t, 1, result.FilesSkipped)
	require.Equal(t, 3, store.Len())
	for _, record := range store.Snapshot().Records() {
		require.NotEqual(t, "2_price.csv", record.SourceFile)
	}
	require.Contains(t, logs.String(), "2_price.csv")
}

func TestStore_IngestDropsUnmappedColumnsAndKeepsEmptyRows(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ingested := store.Ingest([]importer.Record{
		row(2, "Артикул", "A-1", "Товар", "Salt", "Цена", "15"),
		row(3, "Артикул", "A-2", "Склад", "north"),
	}, "price_c.csv")

	require.Equal(t, 2, ingested)
	records := store.Snapshot().Records()
	require.Equal(t, pricelist.Record{Name: name("Salt"), Price: num(15), SourceFile: "price_c.csv"}, records[0])
	require.Equal(t, pricelist.Record{SourceFile: "price_c.csv"}, records[1])
}

func TestStore_DuplicateHeadersLastColumnWins(t *testing.T) {
	t.Parallel()

	store, logs := newTestStore(t)
	store.Ingest([]importer.Record{
		row(2, "товар", "Bread", "наименование", "Rye bread", "цена", "40"),
		row(3, "товар", "Milk", "наименование", "Whole milk", "цена", "80"),
	}, "price_dup.csv")

	records := store.Snapshot().Records()
	require.Equal(t, "Rye bread", records[0].Name.String)
	require.Equal(t, "Whole milk", records[1].Name.String)
	require.Equal(t, 1, strings.Count(logs.String(), "last column wins"))
}

func TestStore_NonNumericCellsBecomeNull(t *testing.T) {
	t.Parallel()

	store, logs := newTestStore(t)
	store.Ingest([]importer.Record{row(2, "товар", "Eggs", "цена", "n/a", "вес", "0,6")}, "price_e.csv")

	record := store.Snapshot().Records()[0]
	require.False(t, record.Price.Valid)
	require.Equal(t, num(0.6), record.Weight)
	require.Contains(t, logs.String(), "non-numeric value stored as null")
}

func TestStore_DeriveLeavesDegenerateValuesNull(t *testing.T) {
	t.Parallel()

	store, logs := newTestStore(t)
	store.Ingest([]importer.Record{
		row(2, "товар", "Zero", "цена", "10", "вес", "0"),
		row(3, "товар", "NoWeight", "цена", "10", "вес", ""),
		row(4, "товар", "NoPrice", "цена", "", "вес", "2"),
		row(5, "товар", "Third", "цена", "100", "вес", "3"),
		row(6, "товар", "Twothirds", "цена", "2", "вес", "3"),
	}, "price_d.csv")

	stats := store.DerivePricePerWeight()
	require.Equal(t, DeriveStats{Computed: 2, Nulled: 3}, stats)

	records := store.Snapshot().Records()
	for _, record := range records[:3] {
		require.False(t, record.PricePerWeight.Valid, "record %s", record.Name.String)
	}
	require.Equal(t, num(33.33), records[3].PricePerWeight)
	require.Equal(t, num(0.67), records[4].PricePerWeight)

	output := logs.String()
	require.Contains(t, output, "weight is zero")
	require.Contains(t, output, "weight is missing")
	require.Contains(t, output, "price is missing")
}

func TestStore_DeriveLogsSchemaMismatchWhenWeightColumnAbsent(t *testing.T) {
	t.Parallel()

	store, logs := newTestStore(t)
	store.Ingest([]importer.Record{row(2, "товар", "Bread", "цена", "10")}, "price_f.csv")

	stats := store.DerivePricePerWeight()
	require.Equal(t, DeriveStats{Nulled: 1}, stats)
	require.Contains(t, logs.String(), "cannot derive price per weight")
	require.Contains(t, logs.String(), pricelist.ErrSchemaMismatch.Error())
	require.False(t, store.Snapshot().HasField(pricelist.FieldWeight))
}

func TestStore_SortPutsNullsLastInBothDirections(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	store.Ingest([]importer.Record{
		row(2, "товар", "b", "цена", "20"),
		row(3, "товар", "", "цена", ""),
		row(4, "товар", "a", "цена", "10"),
		row(5, "товар", "c", "цена", "20"),
	}, "price_s.csv")

	require.NoError(t, store.Sort(pricelist.FieldPrice, true))
	require.Equal(t, []string{"a", "b", "c", ""}, names(store))

	require.NoError(t, store.Sort(pricelist.FieldPrice, false))
	require.Equal(t, []string{"b", "c", "a", ""}, names(store))

	require.NoError(t, store.Sort(pricelist.FieldName, false))
	require.Equal(t, []string{"c", "b", "a", ""}, names(store))
}

func TestStore_SortAcceptsFieldNameInAnyCase(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	store.Ingest([]importer.Record{
		row(2, "товар", "b", "цена", "20"),
		row(3, "товар", "a", "цена", "10"),
	}, "price_s.csv")

	require.NoError(t, store.Sort("PRICE", true))
	require.Equal(t, []string{"a", "b"}, names(store))

	require.NoError(t, store.Sort(" Name ", false))
	require.Equal(t, []string{"b", "a"}, names(store))
}

func TestStore_SortRejectsUnknownField(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	err := store.Sort("cost", true)
	require.True(t, errors.Is(err, pricelist.ErrSchemaMismatch))
}

func TestStore_FinalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	store.Ingest([]importer.Record{
		row(2, "товар", "x", "цена", "30", "вес", "1"),
		row(3, "товар", "y", "цена", "10", "вес", "0"),
		row(4, "товар", "z", "цена", "10", "вес", "1"),
		row(5, "товар", "w", "цена", "30", "вес", "1"),
	}, "price_i.csv")

	store.Finalize()
	first := store.Snapshot().Records()
	store.Finalize()
	second := store.Snapshot().Records()

	require.Equal(t, first, second)
	require.Equal(t, []string{"z", "x", "w", "y"}, names(store))
	for i, record := range second {
		require.Equal(t, i+1, record.Ordinal)
	}
}

func TestStore_SnapshotIsIsolatedFromLaterChanges(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	store.Ingest([]importer.Record{row(2, "товар", "Bread", "цена", "10", "вес", "1")}, "price_g.csv")
	snapshot := store.Snapshot()

	records := snapshot.Records()
	records[0].Name = name("changed")
	store.Ingest([]importer.Record{row(2, "товар", "Milk")}, "price_h.csv")
	store.Finalize()

	require.Equal(t, 1, snapshot.Len())
	require.Equal(t, "Bread", snapshot.Records()[0].Name.String)
	require.Equal(t, 0, snapshot.Records()[0].Ordinal)
	require.False(t, snapshot.HasField(pricelist.FieldPricePerWeight))
	require.True(t, store.Snapshot().HasField(pricelist.FieldPricePerWeight))
}

func TestStore_ResetDropsRecords(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	store.Ingest([]importer.Record{row(2, "товар", "Bread")}, "price_r.csv")
	store.Reset()

	require.Equal(t, 0, store.Len())
	require.False(t, store.Snapshot().HasField(pricelist.FieldName))
	require.Empty(t, store.Snapshot().Records())
}

func names(store *Store) []string {
	records := store.Snapshot().Records()
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Name.String)
	}
	return out
}
