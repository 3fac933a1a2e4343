// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"io"

	"carport-quote/core/types"
	"carport-quote/core/ui"
	"carport-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *types.QuoteResult) error
}

// New returns the formatter for a format name
func New(format Format, noColor bool) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{NoColor: noColor}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
	}
}

// CLIFormatter renders a quote as a terminal table
type CLIFormatter struct {
	// NoColor disables ANSI colors
	NoColor bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the quote summary to w
func (f *CLIFormatter) Render(w io.Writer, result *types.QuoteResult) error {
	writer := ui.NewWriter(w, f.NoColor)
	writer.NewQuoteSummary(result).Render()
	return nil
}

// JSONFormatter renders a quote as JSON
type JSONFormatter struct {
	// Indent pretty-prints the output
	Indent bool
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the quote as JSON to w
func (f *JSONFormatter) Render(w io.Writer, result *types.QuoteResult) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
