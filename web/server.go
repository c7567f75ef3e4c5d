// Package web serves a localhost-only, read-only view of the aggregated price
// records; it has no auth in this mode.
package web

import (
	"bytes"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"pricemachine/aggregate"
	"pricemachine/pricelist"
	"pricemachine/query"
)

//go:embed templates/*.html
var templateFS embed.FS

type Options struct {
	Title  string
	Labels pricelist.Labels
}

// Server renders a fixed snapshot, so concurrent requests never share
// mutable state.
type Server struct {
	snapshot aggregate.Snapshot
	options  Options
	logger   *slog.Logger
	mux      *http.ServeMux
}

type recordsPageView struct {
	Title    string
	Query    string
	Searched bool
	Count    int
	Headers  []string
	Rows     [][]string
}

type recordView struct {
	Ordinal        int      `json:"ordinal"`
	Name           *string  `json:"name"`
	Price          *float64 `json:"price"`
	Weight         *float64 `json:"weight"`
	SourceFile     string   `json:"sourceFile"`
	PricePerWeight *float64 `json:"pricePerWeight"`
}

type recordsResponse struct {
	Query   string       `json:"query,omitempty"`
	Count   int          `json:"count"`
	Records []recordView `json:"records"`
}

func NewServer(snapshot aggregate.Snapshot, options Options, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Labels == nil {
		options.Labels = pricelist.DefaultLabels()
	}
	server := &Server{
		snapshot: snapshot,
		options:  options,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleRecords)
	mux.HandleFunc("GET /search", server.handleSearch)
	mux.HandleFunc("GET /api/records", server.handleAPIRecords)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records := s.snapshot.Records()
	s.render(w, recordsPageView{
		Title:   s.options.Title,
		Count:   len(records),
		Headers: s.options.Labels.Headers(true),
		Rows:    rows(records),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	result := query.Search(s.snapshot, text, s.logger)
	s.render(w, recordsPageView{
		Title:    s.options.Title,
		Query:    text,
		Searched: true,
		Count:    result.Count,
		Headers:  s.options.Labels.Headers(true),
		Rows:     rows(result.Records),
	})
}

func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	records := s.snapshot.Records()
	response := recordsResponse{}
	if r.URL.Query().Has("q") {
		result := query.Search(s.snapshot, r.URL.Query().Get("q"), s.logger)
		records = result.Records
		response.Query = result.Query
	}

	response.Count = len(records)
	response.Records = make([]recordView, 0, len(records))
	for _, record := range records {
		response.Records = append(response.Records, toRecordView(record))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) render(w http.ResponseWriter, view recordsPageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderTemplate(w, "records.html", view); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func rows(records []pricelist.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Cells(true))
	}
	return out
}

func toRecordView(record pricelist.Record) recordView {
	return recordView{
		Ordinal:        record.Ordinal,
		Name:           nullableString(record.Name),
		Price:          nullableFloat(record.Price),
		Weight:         nullableFloat(record.Weight),
		SourceFile:     record.SourceFile,
		PricePerWeight: nullableFloat(record.PricePerWeight),
	}
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullableFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	return &value.Float64
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
