// Package cmd - compare command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"carport-quote/core/compare"
	"carport-quote/core/quote"
	"carport-quote/core/types"
	"carport-quote/core/ui"
)

var (
	compareBookPath string
	compareBooksDir string
	compareRevision string
	compareDiscount float64
	compareDownPay  float64
	compareJSON     bool
	compareNoColor  bool
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <input.json> <vendor.json>",
	Short: "Compare an engine quote against a vendor quote fixture",
	Long: `Price a building configuration and compare the result against a
captured vendor quote, line by line.

The first argument is a building configuration JSON file, the second a
vendor fixture JSON file with per-code amounts and a grand total.

Examples:
  carport-quote compare building.json vendor.json
  carport-quote compare building.json vendor.json --book ./books/r29-nw.json --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareBookPath, "book", "", "price book file (.json or .hcl)")
	compareCmd.Flags().StringVar(&compareBooksDir, "books", "", "directory of price book files")
	compareCmd.Flags().StringVar(&compareRevision, "revision", "", "price book revision to use")
	compareCmd.Flags().Float64Var(&compareDiscount, "discount", 0, "discount rate, e.g. 0.10")
	compareCmd.Flags().Float64Var(&compareDownPay, "down-payment", 0, "down payment rate, e.g. 0.25")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "emit the report as JSON")
	compareCmd.Flags().BoolVar(&compareNoColor, "no-color", false, "disable colored output")
}

func runCompare(cmd *cobra.Command, args []string) error {
	var in types.QuoteInput
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parsing input file: %w", err)
	}

	var fixture compare.VendorFixture
	data, err = os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading vendor fixture: %w", err)
	}
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parsing vendor fixture: %w", err)
	}
	if fixture.Source == "" {
		fixture.Source = args[1]
	}

	book, err := loadBook(compareBookPath, compareBooksDir, compareRevision)
	if err != nil {
		return err
	}

	terms := types.Terms{
		DiscountRate:    decimal.NewFromFloat(compareDiscount),
		DownPaymentRate: decimal.NewFromFloat(compareDownPay),
	}

	result, err := quote.Compute(&in, book, terms)
	if err != nil {
		return err
	}

	report := compare.Compare(&fixture, result)

	if compareJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	writer := ui.NewWriter(os.Stdout, compareNoColor)
	writer.NewComparisonView(report).Render()
	return nil
}
