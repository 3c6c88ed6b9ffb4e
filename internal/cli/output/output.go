// Package output formats command results for the terminal.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
)

// DefaultFormat picks table output on a terminal and JSON when piped.
func DefaultFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return "table"
	}
	return "json"
}

// Table is a rendered listing: a header row plus data rows, with an
// optional footer line (pagination summary).
type Table struct {
	Header []string
	Rows   [][]string
	Footer string
}

// Print renders v in the requested format. Tables print through a
// tabwriter; any other value falls back to JSON.
func Print(v any, format string) error {
	format = strings.TrimSpace(strings.ToLower(format))
	if format == "" {
		format = DefaultFormat()
	}
	switch format {
	case "json":
		return printJSON(v)
	case "table":
		if t, ok := v.(Table); ok {
			return printTable(t)
		}
		return printJSON(v)
	default:
		return errors.New("invalid --format value")
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printTable(t Table) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if t.Footer != "" {
		fmt.Println(t.Footer)
	}
	return nil
}

// Errorf prints a non-blocking inline error message to stderr. Every failed
// action surfaces this way; nothing ever escalates to a panic or a modal.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
