package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"

	"pricemachine/pricelist"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// HTMLWriter renders a static page: a title and one table, no scripts.
type HTMLWriter struct {
	Options Options
}

type reportView struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (w *HTMLWriter) Write(path string, records []pricelist.Record) error {
	var buf bytes.Buffer
	if err := w.Render(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write html output %s: %w", path, err)
	}
	return nil
}

func (w *HTMLWriter) Render(out io.Writer, records []pricelist.Record) error {
	view := reportView{
		Title:   w.Options.Title,
		Headers: w.Options.labels().Headers(true),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, record := range records {
		view.Rows = append(view.Rows, record.Cells(true))
	}

	if err := reportTemplate.ExecuteTemplate(out, "report.html", view); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
