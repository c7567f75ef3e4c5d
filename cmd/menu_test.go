package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMenuShowSearchAndExit(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	in := strings.NewReader("1\n3\nmilk\nBR\ncheese\nexit\n9\nexit\n1\n")
	var out bytes.Buffer

	if err := runMenu(in, &out, s); err != nil {
		t.Fatalf("run menu: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"1. Show data",
		"цена за кг.",
		"Found: 1",
		"Not found",
		`Unknown choice "9", try again.`,
		"Bye.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Count(text, "Choose an action: ") != 4 {
		t.Fatalf("expected the loop to stop at exit, got:\n%s", text)
	}
}

func TestRunMenuExportAndFailureKeepsLooping(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	var out bytes.Buffer
	if err := runMenu(strings.NewReader("2\n"), &out, s); err != nil {
		t.Fatalf("run menu: %v", err)
	}
	if !strings.Contains(out.String(), "Data exported to "+s.cfg.Export.Path) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	content, err := os.ReadFile(s.cfg.Export.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(content), "<td>Milk</td>") {
		t.Fatalf("unexpected export content:\n%s", content)
	}

	s.cfg.Export.Path = filepath.Join(t.TempDir(), "missing", "output.html")
	out.Reset()
	if err := runMenu(strings.NewReader("2\n1\nexit\n"), &out, s); err != nil {
		t.Fatalf("run menu: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Export failed:") {
		t.Fatalf("expected export failure message, got:\n%s", text)
	}
	if !strings.Contains(text, "Milk") || !strings.Contains(text, "Bye.") {
		t.Fatalf("expected menu to continue after failed export, got:\n%s", text)
	}
}

func TestRunMenuStopsAtEndOfInput(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	var out bytes.Buffer
	if err := runMenu(strings.NewReader("3\nsalt\n"), &out, s); err != nil {
		t.Fatalf("run menu: %v", err)
	}
	if !strings.Contains(out.String(), "Found: 1") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
