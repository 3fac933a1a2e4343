// Package cmd - quote command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carport-quote/core/output"
	"carport-quote/core/pricebook"
	"carport-quote/core/quote"
	"carport-quote/core/types"
	"carport-quote/internal/config"
	"carport-quote/internal/logging"
)

var (
	quoteBookPath  string
	quoteBooksDir  string
	quoteRevision  string
	quoteInputFile string

	quoteStyle    string
	quoteRoof     string
	quoteWidth    int
	quoteLength   int
	quoteHeight   int
	quoteOptions  []string
	quoteLeanTo   string
	quoteEnds     int
	quoteSides    int
	quoteDiscount float64
	quoteDownPay  float64

	quoteFormat  string
	quoteNoColor bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a building configuration",
	Long: `Price a building configuration against a price book revision.

The configuration comes from flags or from a JSON input file. Options
take the form CODE, CODE:WALL or CODE:WALL:OFFSET, e.g.
GARAGE_DOOR_9X8:FRONT:3. A lean-to takes the form WxL:WALL.

With no price book the built-in sample book is used.

Examples:
  carport-quote quote --style REGULAR --roof HORIZONTAL --width 12 --length 21 --height 6
  carport-quote quote --width 24 --length 55 --height 12 --option GROUND_CERTIFICATION
  carport-quote quote --input building.json --book ./books/r29-nw.json --format json`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteBookPath, "book", "", "price book file (.json or .hcl)")
	quoteCmd.Flags().StringVar(&quoteBooksDir, "books", "", "directory of price book files")
	quoteCmd.Flags().StringVar(&quoteRevision, "revision", "", "price book revision to use")
	quoteCmd.Flags().StringVarP(&quoteInputFile, "input", "i", "", "building configuration JSON file")

	quoteCmd.Flags().StringVar(&quoteStyle, "style", string(types.StyleRegular), "building style")
	quoteCmd.Flags().StringVar(&quoteRoof, "roof", string(types.RoofHorizontal), "roof orientation (HORIZONTAL, VERTICAL)")
	quoteCmd.Flags().IntVar(&quoteWidth, "width", 0, "width in feet")
	quoteCmd.Flags().IntVar(&quoteLength, "length", 0, "length in feet")
	quoteCmd.Flags().IntVar(&quoteHeight, "height", 0, "leg height in feet")
	quoteCmd.Flags().StringArrayVar(&quoteOptions, "option", nil, "option selection CODE[:WALL[:OFFSET]] (repeatable)")
	quoteCmd.Flags().StringVar(&quoteLeanTo, "lean-to", "", "attached lean-to WxL:WALL, e.g. 12x21:LEFT")
	quoteCmd.Flags().IntVar(&quoteEnds, "closed-ends", 0, "number of fully enclosed ends (0-2)")
	quoteCmd.Flags().IntVar(&quoteSides, "closed-sides", 0, "number of fully enclosed sides (0-2)")
	quoteCmd.Flags().Float64Var(&quoteDiscount, "discount", 0, "discount rate, e.g. 0.10")
	quoteCmd.Flags().Float64Var(&quoteDownPay, "down-payment", 0, "down payment rate, e.g. 0.25")

	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json)")
	quoteCmd.Flags().BoolVar(&quoteNoColor, "no-color", false, "disable colored output")
}

func runQuote(cmd *cobra.Command, args []string) error {
	in, err := buildQuoteInput()
	if err != nil {
		return err
	}

	book, err := loadBook(quoteBookPath, quoteBooksDir, quoteRevision)
	if err != nil {
		return err
	}

	terms := types.Terms{
		DiscountRate:    decimal.NewFromFloat(quoteDiscount),
		DownPaymentRate: decimal.NewFromFloat(quoteDownPay),
	}
	if terms.DiscountRate.IsZero() {
		terms.DiscountRate = config.Get().Terms.DiscountRate
	}
	if terms.DownPaymentRate.IsZero() {
		terms.DownPaymentRate = config.Get().Terms.DownPaymentRate
	}

	logging.Info("Pricing configuration",
		zap.String("revision", book.Revision()),
		zap.Int("width_ft", in.WidthFt),
		zap.Int("length_ft", in.LengthFt))

	result, err := quote.Compute(&in, book, terms)
	if err != nil {
		return err
	}

	format := output.Format(quoteFormat)
	if quoteFormat == "" {
		format = output.Format(config.Get().Output.DefaultFormat)
	}
	formatter, err := output.New(format, quoteNoColor)
	if err != nil {
		return err
	}

	return formatter.Render(os.Stdout, result)
}

// buildQuoteInput assembles the input from --input or flags
func buildQuoteInput() (types.QuoteInput, error) {
	var in types.QuoteInput

	if quoteInputFile != "" {
		data, err := os.ReadFile(quoteInputFile)
		if err != nil {
			return in, fmt.Errorf("reading input file: %w", err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("parsing input file: %w", err)
		}
		return in, nil
	}

	in.Style = types.Style(strings.ToUpper(quoteStyle))
	in.Roof = types.RoofOrientation(strings.ToUpper(quoteRoof))
	in.WidthFt = quoteWidth
	in.LengthFt = quoteLength
	in.HeightFt = quoteHeight
	in.ClosedEndCount = quoteEnds
	in.ClosedSideCount = quoteSides

	for _, spec := range quoteOptions {
		sel, err := parseOptionSpec(spec)
		if err != nil {
			return in, err
		}
		in.Options = append(in.Options, sel)
	}

	if quoteLeanTo != "" {
		lean, err := parseLeanToSpec(quoteLeanTo)
		if err != nil {
			return in, err
		}
		in.LeanTo = lean
	}

	return in, nil
}

// parseOptionSpec parses CODE, CODE:WALL or CODE:WALL:OFFSET
func parseOptionSpec(spec string) (types.OptionSelection, error) {
	parts := strings.Split(spec, ":")
	sel := types.OptionSelection{Code: strings.ToUpper(strings.TrimSpace(parts[0]))}
	if sel.Code == "" {
		return sel, fmt.Errorf("empty option code in %q", spec)
	}
	if len(parts) > 1 {
		sel.Wall = types.Wall(strings.ToUpper(strings.TrimSpace(parts[1])))
	}
	if len(parts) > 2 {
		offset, err := strconv.Atoi(parts[2])
		if err != nil {
			return sel, fmt.Errorf("invalid offset in option %q: %w", spec, err)
		}
		sel.OffsetFt = offset
	}
	if len(parts) > 3 {
		return sel, fmt.Errorf("malformed option spec %q", spec)
	}
	return sel, nil
}

// parseLeanToSpec parses WxL:WALL
func parseLeanToSpec(spec string) (*types.LeanTo, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed lean-to spec %q, expected WxL:WALL", spec)
	}

	dims := strings.Split(strings.ToLower(parts[0]), "x")
	if len(dims) != 2 {
		return nil, fmt.Errorf("malformed lean-to dimensions %q", parts[0])
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("invalid lean-to width %q: %w", dims[0], err)
	}
	length, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("invalid lean-to length %q: %w", dims[1], err)
	}

	return &types.LeanTo{
		WidthFt:   width,
		LengthFt:  length,
		Placement: types.Wall(strings.ToUpper(strings.TrimSpace(parts[1]))),
	}, nil
}

// loadBook resolves the price book from a file, a directory or the sample
func loadBook(bookPath, booksDir, revision string) (*pricebook.PriceBook, error) {
	if bookPath != "" {
		return pricebook.LoadFile(bookPath)
	}

	if booksDir == "" {
		booksDir = config.Get().PriceBooks.Directory
	}
	if revision == "" {
		revision = config.Get().PriceBooks.DefaultRevision
	}

	if booksDir != "" {
		if _, err := os.Stat(booksDir); err == nil {
			books, err := pricebook.LoadDir(booksDir)
			if err != nil {
				return nil, err
			}
			if len(books) > 0 {
				if revision != "" {
					book, ok := books[revision]
					if !ok {
						return nil, fmt.Errorf("revision %q not found in %s", revision, booksDir)
					}
					return book, nil
				}
				if len(books) == 1 {
					for _, book := range books {
						return book, nil
					}
				}
				return nil, fmt.Errorf("multiple price books in %s, choose one with --revision", booksDir)
			}
		}
	}

	logging.Debug("No price book given, using built-in sample")
	return pricebook.Sample(), nil
}
