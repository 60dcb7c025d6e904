package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/renderer"
	"github.com/etnz/stockgrid/source"
	"golang.org/x/term"
)

// Output formats of tables.
const (
	FormatTable    = "table"   // markdown rendered for the terminal
	FormatMarkdown = "md"      // raw markdown
	FormatCSV      = "csv"     // comma separated values
	FormatJSON     = "json"    // ordered json object
	FormatHTML     = "html"    // standalone html page
	FormatParquet  = "parquet" // one record per (year, month), needs -o
)

var gridFormats = []string{FormatTable, FormatMarkdown, FormatCSV, FormatJSON, FormatHTML, FormatParquet}

// terminalWidth returns the width of stdout, 0 if it is not a terminal.
func terminalWidth() int {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// printMarkdown prints md to stdout, rendered when stdout is a terminal.
func printMarkdown(md string) {
	width := terminalWidth()
	if width == 0 {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := renderer.Terminal(md, "", width)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// openOutput returns the writer for path, stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeGrid writes the report grid in format to path (stdout if empty).
func writeGrid(path, format, title string, r *stockgrid.Report, decimals int) error {
	switch format {
	case FormatParquet:
		if path == "" || path == "-" {
			return fmt.Errorf("format %q needs an output file", format)
		}
		return source.WriteGridParquet(path, r.Grid)
	case FormatTable:
		if path == "" || path == "-" {
			printMarkdown(renderer.GridMarkdown(renderer.NewGridView(title, r.Grid, r.Tags, decimals)))
			return nil
		}
		format = FormatMarkdown
	}

	w, err := openOutput(path)
	if err != nil {
		return err
	}
	if err := encodeGrid(w, format, title, r, decimals); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// encodeGrid writes the report grid in a text format.
func encodeGrid(w io.Writer, format, title string, r *stockgrid.Report, decimals int) error {
	switch format {
	case FormatCSV:
		return r.Grid.WriteCSV(w, decimals)
	case FormatJSON:
		data, err := r.Grid.JSON(decimals)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, renderer.GridMarkdown(renderer.NewGridView(title, r.Grid, r.Tags, decimals)))
		return err
	case FormatHTML:
		body, err := renderer.HTML(renderer.GridMarkdown(renderer.NewGridView(title, r.Grid, r.Tags, decimals)))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, renderer.HTMLPage(title, body))
		return err
	default:
		return fmt.Errorf("unknown format %q want one of %s", format, strings.Join(gridFormats, ", "))
	}
}
