package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a bordered table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML converted from JSON
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
// Returns nil if valid, or an error with a helpful message listing valid formats.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return &UsageError{Err: fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)}
	}
}

// Printer writes command results to out in a fixed format.
type Printer struct {
	out       io.Writer
	format    OutputFormat
	noHeaders bool
}

// NewPrinter creates a printer. An unknown format falls back to table.
func NewPrinter(out io.Writer, format OutputFormat, noHeaders bool) *Printer {
	if ValidateOutputFormat(string(format)) != nil {
		format = OutputFormatTable
	}
	return &Printer{out: out, format: format, noHeaders: noHeaders}
}

// Format returns the printer's output format.
func (p *Printer) Format() OutputFormat {
	return p.format
}

// Structured reports whether results are printed as JSON or YAML.
func (p *Printer) Structured() bool {
	return p.format != OutputFormatTable
}

// Print writes data as JSON or YAML. For table output render is called
// with a fresh table, which is then rendered.
func (p *Printer) Print(data interface{}, render func(t table.Writer)) error {
	switch p.format {
	case OutputFormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case OutputFormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		_, err = p.out.Write(out)
		return err
	default:
		t := p.newTable()
		render(t)
		t.Render()
		return nil
	}
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	return t
}

// header appends a highlighted header row unless headers are suppressed.
func (p *Printer) header(t table.Writer, columns ...string) {
	if p.noHeaders {
		return
	}
	row := make(table.Row, 0, len(columns))
	for _, c := range columns {
		row = append(row, text.FgHiCyan.Sprint(c))
	}
	t.AppendHeader(row)
}

// Empty prints a placeholder message instead of an empty table.
func (p *Printer) Empty(msg string) {
	fmt.Fprintln(p.out, text.FgYellow.Sprint(msg))
}
