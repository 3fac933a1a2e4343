// Package ui - Terminal user interface
// Rich CLI output with tables and colors.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"carport-quote/core/compare"
	"carport-quote/core/types"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes a line
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println(w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Green, "✓ ") + msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Yellow, "⚠ ") + msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Red, "✗ ") + msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Blue, "ℹ ") + msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Dim, "  "+msg))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	// Build format string
	format := ""
	for i, w := range t.widths {
		if i > 0 {
			format += " │ "
		}
		format += fmt.Sprintf("%%-%ds", w)
	}
	format += "\n"

	// Header
	headerArgs := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		headerArgs[i] = h
	}
	t.w.Print("%s", t.w.color(Bold, fmt.Sprintf(format, headerArgs...)))

	// Separator
	sep := ""
	for i, w := range t.widths {
		if i > 0 {
			sep += "─┼─"
		}
		sep += strings.Repeat("─", w)
	}
	t.w.Println(sep)

	// Rows
	for _, row := range t.rows {
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		t.w.Print(format, args...)
	}
}

// QuoteSummary renders a quote summary
type QuoteSummary struct {
	w      *Writer
	Result *types.QuoteResult
}

// NewQuoteSummary creates a quote summary view
func (w *Writer) NewQuoteSummary(result *types.QuoteResult) *QuoteSummary {
	return &QuoteSummary{w: w, Result: result}
}

// Render prints the quote summary
func (s *QuoteSummary) Render() {
	r := s.Result
	s.w.Header("Quote Summary")

	s.w.Println(s.w.color(Dim, "  Quote ID:   %s"), r.QuoteID)
	s.w.Println(s.w.color(Dim, "  Price Book: %s"), r.PriceBookRevision)
	s.w.Println(s.w.color(Dim, "  Priced As:  %dx%d"), r.NormalizedWidthFt, r.NormalizedLengthFt)
	s.w.Println("")

	table := s.w.NewTable("Code", "Description", "Qty", "Unit", "Extended")
	for _, item := range r.LineItems {
		desc := item.Description
		if item.Wall != types.WallNone && item.Wall != "" {
			desc = fmt.Sprintf("%s [%s]", desc, item.Wall)
		}
		table.AddRow(
			item.Code,
			desc,
			fmt.Sprintf("%d", item.Quantity),
			"$"+item.UnitPrice.StringFixed(2),
			"$"+item.ExtendedPrice.StringFixed(2),
		)
	}
	table.Render()

	s.w.Println("")
	s.w.Println(s.w.color(Bold, "  Subtotal:     ")+"$%s", r.Subtotal.StringFixed(2))
	if r.Discount.IsPositive() {
		s.w.Println(s.w.color(Green, "  Discount:     ")+"-$%s", r.Discount.StringFixed(2))
	}
	s.w.Println(s.w.color(Bold+Green, "  Total:        ")+"$%s", r.Total.StringFixed(2))
	if r.DownPayment.IsPositive() {
		s.w.Println(s.w.color(Dim, "  Down Payment: ")+"$%s", r.DownPayment.StringFixed(2))
		s.w.Println(s.w.color(Dim, "  Balance Due:  ")+"$%s", r.BalanceDue.StringFixed(2))
	}

	if len(r.Warnings) > 0 {
		s.w.Println("")
		s.w.SubHeader(fmt.Sprintf("Warnings (%d)", len(r.Warnings)))
		for _, warning := range r.Warnings {
			s.w.Warning("%s", warning)
		}
	}
}

// ComparisonView renders a vendor comparison report
type ComparisonView struct {
	w      *Writer
	Report *compare.Report
}

// NewComparisonView creates a comparison view
func (w *Writer) NewComparisonView(report *compare.Report) *ComparisonView {
	return &ComparisonView{w: w, Report: report}
}

// Render prints the comparison
func (v *ComparisonView) Render() {
	rep := v.Report
	v.w.Header("Vendor Comparison")

	v.w.Println(v.w.color(Dim, "  Fixture:    %s"), rep.Source)
	v.w.Println(v.w.color(Dim, "  Price Book: %s"), rep.PriceBookRevision)
	v.w.Println("")

	table := v.w.NewTable("Code", "Vendor", "Engine", "Delta", "Status")
	for _, line := range rep.Lines {
		delta := line.Delta.StringFixed(2)
		if line.Delta.IsPositive() {
			delta = v.w.color(Red, "+"+delta)
		} else if line.Delta.IsNegative() {
			delta = v.w.color(Green, delta)
		}
		table.AddRow(
			line.Code,
			"$"+line.VendorAmount.StringFixed(2),
			"$"+line.EngineAmount.StringFixed(2),
			delta,
			string(line.Status),
		)
	}
	table.Render()

	v.w.Println("")
	v.w.Println(v.w.color(Dim, "  Matched: %d  Engine-only: %d  Vendor-only: %d"),
		rep.MatchedCount, rep.EngineOnlyCount, rep.VendorOnlyCount)

	v.w.Println(strings.Repeat("─", 40))
	deltaColor := Green
	deltaPrefix := ""
	if rep.TotalDelta.IsPositive() {
		deltaColor = Red
		deltaPrefix = "+"
	}
	v.w.Println(v.w.color(Bold, "Total Delta: ") + v.w.color(deltaColor, deltaPrefix+"$"+rep.TotalDelta.StringFixed(2)))
	if rep.TotalDelta.IsZero() {
		v.w.Success("Engine total matches vendor total exactly")
	}
}
