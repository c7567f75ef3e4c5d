package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pricemachine/output"
	"pricemachine/query"
)

const menuText = `
Menu:
  1. Show data
  2. Export
  3. Search

  exit. Quit
`

const exitCommand = "exit"

// runMenu drives the interactive loop until "exit" or end of input.
func runMenu(in io.Reader, out io.Writer, s *session) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, menuText)
		fmt.Fprint(out, "Choose an action: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		switch choice := strings.TrimSpace(scanner.Text()); choice {
		case exitCommand:
			fmt.Fprintln(out, "Bye.")
			return nil
		case "1":
			if err := output.WriteTable(out, s.snapshot.Records(), s.labels); err != nil {
				return err
			}
		case "2":
			exportFromMenu(out, s)
		case "3":
			if err := searchLoop(scanner, out, s); err != nil {
				return err
			}
		default:
			fmt.Fprintf(out, "Unknown choice %q, try again.\n", choice)
		}
	}
}

func exportFromMenu(out io.Writer, s *session) {
	path := s.cfg.Export.Path
	if err := output.Export(s.snapshot, path, s.cfg.Export.Format, s.exportOptions(), s.logger); err != nil {
		fmt.Fprintf(out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Data exported to %s\n", path)
}

func searchLoop(scanner *bufio.Scanner, out io.Writer, s *session) error {
	for {
		fmt.Fprintf(out, "\nSearch text (or '%s' to go back): ", exitCommand)
		if !scanner.Scan() {
			return scanner.Err()
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == exitCommand {
			return nil
		}
		if err := printSearchResult(out, query.Search(s.snapshot, text, s.logger), s); err != nil {
			return err
		}
	}
}

func printSearchResult(out io.Writer, result query.Result, s *session) error {
	if result.Count == 0 {
		fmt.Fprintln(out, "Not found")
		return nil
	}
	fmt.Fprintf(out, "Found: %d\n", result.Count)
	return output.WriteTable(out, result.Records, s.labels)
}
