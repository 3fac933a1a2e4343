// Package cmd - price book management commands
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"carport-quote/core/pricebook"
	"carport-quote/core/ui"
)

var pricebookCmd = &cobra.Command{
	Use:   "pricebook",
	Short: "Inspect and validate price books",
	Long: `Price book management commands.

Price books are immutable revisions. A new revision is a new file;
existing files are never edited in place.`,
}

var pricebookValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a price book file",
	Long: `Load a price book file and report whether it is well formed.

Checks structural integrity: duplicate cells, undeclared options,
missing tables and malformed dates all reject the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPriceBookValidate,
}

var pricebookShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the contents of a price book",
	Args:  cobra.ExactArgs(1),
	RunE:  runPriceBookShow,
}

var pricebookListCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List price book revisions in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runPriceBookList,
}

var pricebookNoColor bool

func init() {
	pricebookCmd.AddCommand(pricebookValidateCmd)
	pricebookCmd.AddCommand(pricebookShowCmd)
	pricebookCmd.AddCommand(pricebookListCmd)

	pricebookCmd.PersistentFlags().BoolVar(&pricebookNoColor, "no-color", false, "disable colored output")
}

func runPriceBookValidate(cmd *cobra.Command, args []string) error {
	writer := ui.NewWriter(os.Stdout, pricebookNoColor)

	book, err := pricebook.LoadFile(args[0])
	if err != nil {
		writer.Error("%s: %v", args[0], err)
		os.Exit(1)
	}

	writer.Success("%s is a valid price book (revision %s, region %s)",
		args[0], book.Revision(), book.Region())
	return nil
}

func runPriceBookShow(cmd *cobra.Command, args []string) error {
	writer := ui.NewWriter(os.Stdout, pricebookNoColor)

	book, err := pricebook.LoadFile(args[0])
	if err != nil {
		return err
	}

	writer.Header(fmt.Sprintf("Price Book %s", book.Revision()))
	writer.Println("  Region:         %s", book.Region())
	writer.Println("  Effective:      %s", book.EffectiveDate().Format("2006-01-02"))
	writer.Println("  Attachment fee: $%s", book.AttachmentFee().StringFixed(2))
	writer.Println("  Max span:       %d ft", book.MaxSingleSpanFt())
	if book.Notes() != "" {
		writer.Println("  Notes:          %s", book.Notes())
	}
	writer.Println("")

	writer.SubHeader("Base matrices")
	for _, style := range book.Styles() {
		for _, roof := range book.Roofs(style) {
			entries := book.BaseEntries(style, roof)
			writer.Println("  %s %s: %d cells", style, roof, len(entries))
		}
	}
	writer.Println("")

	writer.SubHeader("Options")
	for _, code := range book.OptionCodes() {
		entries := book.OptionEntries(code)
		kind := "length-indexed"
		if len(entries) > 0 && entries[0].Flat {
			kind = "flat"
		}
		writer.Println("  %s: %d rows (%s)", code, len(entries), kind)
	}
	writer.Println("")

	writer.SubHeader("Leg heights")
	writer.Println("  %s ft", joinInts(book.LegHeights()))

	return nil
}

func runPriceBookList(cmd *cobra.Command, args []string) error {
	writer := ui.NewWriter(os.Stdout, pricebookNoColor)

	books, err := pricebook.LoadDir(args[0])
	if err != nil {
		return err
	}
	if len(books) == 0 {
		writer.Info("No price books found in %s", args[0])
		return nil
	}

	table := writer.NewTable("Revision", "Region", "Effective", "Styles", "Options")
	for _, book := range pricebook.SortedByRevision(books) {
		styles := make([]string, 0, len(book.Styles()))
		for _, style := range book.Styles() {
			styles = append(styles, string(style))
		}
		table.AddRow(
			book.Revision(),
			book.Region(),
			book.EffectiveDate().Format("2006-01-02"),
			strings.Join(styles, ", "),
			fmt.Sprintf("%d", len(book.OptionCodes())),
		)
	}
	table.Render()
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
