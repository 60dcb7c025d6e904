package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/listing"
	"github.com/etnz/stockgrid/quote"
	"github.com/etnz/stockgrid/renderer"
	"github.com/etnz/stockgrid/source"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// reportCmd prints the whole dashboard of a company.
type reportCmd struct {
	companyFlags
	years     yearFlags
	prices    string
	dividends string
	snapshot  string
	format    string
	output    string
	csvDir    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the price and dividend report of a company" }
func (*reportCmd) Usage() string {
	return `sgrid report -prices <file> (-company <name> | -code <code>) [-dividends <file>] [-snapshot <file>] [-year-min <year>] [-year-max <year>] [-format table|md|html] [-o <file>] [-csv-dir <dir>]

  Prints the company header (name, symbol, sector, last price), the average
  monthly stock price table and the dividend table for the year range.
  Dividends are read from -dividends, or from the Dividends column of -prices.

  With -csv-dir, both tables are also exported as <company>.csv and
  <company>_dividend_table.csv.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.companyFlags.SetFlags(f)
	c.years.SetFlags(f)
	f.StringVar(&c.prices, "prices", "", "Price history file (.csv, .json or .parquet)")
	f.StringVar(&c.dividends, "dividends", "", "Dividend history file (default: the price history)")
	f.StringVar(&c.snapshot, "snapshot", "", "Quote snapshot file (JSON)")
	f.StringVar(&c.format, "format", FormatTable, "Output format: table, md or html")
	f.StringVar(&c.output, "o", "", "Output file (default stdout)")
	f.StringVar(&c.csvDir, "csv-dir", "", "Directory to export both tables as CSV")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, err := setup()
	if err != nil {
		return fail("loading configuration", err)
	}
	if c.prices == "" || !c.selected() {
		fmt.Fprintln(stderr, "Error: -prices and one of -company or -code are required")
		return subcommands.ExitUsageError
	}
	switch c.format {
	case FormatTable, FormatMarkdown, FormatHTML:
	default:
		fmt.Fprintf(stderr, "Error: unknown report format %q want table, md or html\n", c.format)
		return subcommands.ExitUsageError
	}

	// inputs are independent files
	var (
		l         *listing.Listing
		prices    []stockgrid.Observation
		dividends []stockgrid.Observation
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l, err = c.load(cfg)
		return err
	})
	g.Go(func() (err error) {
		prices, err = source.Open(c.prices)
		return err
	})
	if c.dividends != "" {
		g.Go(func() (err error) {
			dividends, err = source.Open(c.dividends)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fail("reading inputs", err)
	}
	if c.dividends == "" {
		dividends = prices
	}
	logger.Debug().Int("prices", len(prices)).Int("dividends", len(dividends)).Msg("inputs decoded")

	company, err := c.resolve(l)
	if err != nil {
		return fail("resolving company", err)
	}
	symbol := company.Symbol(cfg.Listing.ExchangeSuffix)

	years := c.years.Range(prices)
	if years == nil {
		if r, ok := stockgrid.Years(prices); ok {
			years = &r
		}
	}
	priceReport, err := stockgrid.Run(stockgrid.WithAverage(prices), stockgrid.PriceSpec(years))
	if err != nil {
		return fail("aggregating prices", err)
	}
	logWarnings(logger, priceReport)
	dividendReport, err := stockgrid.Run(dividends, stockgrid.DividendSpec(years))
	if err != nil {
		return fail("aggregating dividends", err)
	}
	logWarnings(logger, dividendReport)

	decimals := cfg.Display.Decimals
	view := &renderer.ReportView{
		Name:      company.Name,
		Symbol:    symbol,
		Sector:    company.Sector,
		Prices:    renderer.NewGridView("", priceReport.Grid, priceReport.Tags, decimals),
		Dividends: renderer.NewGridView("", dividendReport.Grid, dividendReport.Tags, decimals),
	}
	if years != nil {
		view.Years = years.String()
	}
	if c.snapshot != "" {
		c.setQuote(view, quote.LoadFile(c.snapshot, symbol), formatter(cfg))
	}

	md := renderer.ReportMarkdown(view)
	if err := c.write(md, company.Name); err != nil {
		return fail("writing report", err)
	}

	if c.csvDir != "" {
		if err := exportCSV(c.csvDir, company.Name, priceReport.Grid, dividendReport.Grid, decimals); err != nil {
			return fail("exporting csv", err)
		}
		logger.Info().Str("dir", c.csvDir).Msg("csv tables written")
	}
	return subcommands.ExitSuccess
}

// setQuote fills the header price of view from a quote lookup.
func (c *reportCmd) setQuote(view *renderer.ReportView, res quote.Result, fm quote.Formatter) {
	switch res.Status {
	case quote.Found:
		if res.Quote.Name != "" {
			view.Name = res.Quote.Name
		}
		view.LastPrice = fm.Money(res.Quote.Price)
		view.Change = fm.Change(res.Quote)
		view.Up = res.Quote.Up()
	case quote.NotFound:
		view.QuoteNote = "No quote for " + view.Symbol + "."
	default:
		view.QuoteNote = "Quote unavailable, retry later."
	}
}

// write prints the report markdown in the selected format.
func (c *reportCmd) write(md, title string) error {
	if c.format == FormatTable && (c.output == "" || c.output == "-") {
		printMarkdown(md)
		return nil
	}
	if c.format == FormatHTML {
		body, err := renderer.HTML(md)
		if err != nil {
			return err
		}
		md = renderer.HTMLPage(title, body)
	}
	w, err := openOutput(c.output)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, md); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// fileSafe replaces the path separators of a company name.
var fileSafe = strings.NewReplacer("/", "_", "\\", "_")

// exportCSV writes <company>.csv and <company>_dividend_table.csv in dir.
func exportCSV(dir, company string, prices, dividends *stockgrid.Grid, decimals int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	company = fileSafe.Replace(company)
	for name, g := range map[string]*stockgrid.Grid{
		company + ".csv":                prices,
		company + "_dividend_table.csv": dividends,
	} {
		data, err := stockgrid.ToDelimitedText(g, decimals)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
