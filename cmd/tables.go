package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/source"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// yearFlags selects a year range. Zero bounds default to the years of the data.
type yearFlags struct {
	min, max int
}

func (y *yearFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&y.min, "year-min", 0, "First year of the table (default: first year of the data)")
	f.IntVar(&y.max, "year-max", 0, "Last year of the table (default: last year of the data)")
}

// Range returns the selected range, nil when no bound is set.
// A single bound is kept as is, the other one extends to the data.
func (y *yearFlags) Range(observations []stockgrid.Observation) *stockgrid.YearRange {
	lo, hi := y.min, y.max
	data, ok := stockgrid.Years(observations)
	switch {
	case lo == 0 && hi == 0:
		return nil
	case hi == 0:
		hi = lo
		if ok {
			hi = max(data.Max, lo)
		}
	case lo == 0:
		lo = hi
		if ok {
			lo = min(data.Min, hi)
		}
	}
	r := stockgrid.NewYearRange(lo, hi)
	return &r
}

// gridFlags are the flags shared by table commands.
type gridFlags struct {
	years    yearFlags
	in       string
	format   string
	decimals int
	output   string
	strict   bool
}

func (g *gridFlags) SetFlags(f *flag.FlagSet) {
	g.years.SetFlags(f)
	f.StringVar(&g.in, "in", "", "Observation file (.csv, .json or .parquet)")
	f.StringVar(&g.format, "format", FormatTable, "Output format: "+strings.Join(gridFormats, ", "))
	f.IntVar(&g.decimals, "decimals", -1, "Digits after the decimal point (default from configuration)")
	f.StringVar(&g.output, "o", "", "Output file (default stdout)")
	f.BoolVar(&g.strict, "strict", false, "Fail when no observation is left to aggregate")
}

// run decodes the input, aggregates it with spec and writes the grid.
// prepare, if not nil, transforms observations before the aggregation.
func (g *gridFlags) run(title string, spec func(*stockgrid.YearRange) stockgrid.AggregationSpec, prepare func([]stockgrid.Observation) []stockgrid.Observation) subcommands.ExitStatus {
	cfg, logger, err := setup()
	if err != nil {
		return fail("loading configuration", err)
	}
	if g.in == "" {
		fmt.Fprintln(stderr, "Error: -in is required")
		return subcommands.ExitUsageError
	}
	if !slices.Contains(gridFormats, g.format) {
		fmt.Fprintf(stderr, "Error: unknown format %q want one of %s\n", g.format, strings.Join(gridFormats, ", "))
		return subcommands.ExitUsageError
	}
	decimals := g.decimals
	if decimals < 0 {
		decimals = cfg.Display.Decimals
	}

	observations, err := source.Open(g.in)
	if err != nil {
		return fail("reading observations", err)
	}
	logger.Debug().Str("file", g.in).Int("observations", len(observations)).Msg("decoded")
	if prepare != nil {
		observations = prepare(observations)
	}

	s := spec(g.years.Range(observations))
	report, err := stockgrid.Run(observations, s)
	if err != nil {
		return fail("aggregating observations", err)
	}
	logWarnings(logger, report)
	if report.Grid.Empty() && g.strict {
		return fail("aggregating observations", stockgrid.ErrEmptyResult)
	}

	if err := writeGrid(g.output, g.format, title, report, decimals); err != nil {
		return fail("writing table", err)
	}
	if g.output != "" && g.output != "-" {
		logger.Info().Str("file", g.output).Str("format", g.format).Msg("table written")
	}
	return subcommands.ExitSuccess
}

// logWarnings logs the observations skipped for lack of the aggregated field.
func logWarnings(logger zerolog.Logger, r *stockgrid.Report) {
	if len(r.Warnings) == 0 {
		return
	}
	logger.Warn().Int("skipped", len(r.Warnings)).Str("field", r.Spec.Field).Msg("observations without value")
	for _, w := range r.Warnings {
		logger.Debug().Int("position", w.Position).Msg(w.String())
	}
}

// aggregateCmd aggregates any field with any reducer.
type aggregateCmd struct {
	gridFlags
	field   string
	reducer string
}

func (*aggregateCmd) Name() string     { return "aggregate" }
func (*aggregateCmd) Synopsis() string { return "pivot a field of dated observations into a year x month table" }
func (*aggregateCmd) Usage() string {
	return `sgrid aggregate -in <file> -field <name> [-reducer mean|sum] [-year-min <year>] [-year-max <year>] [-format <format>] [-decimals <n>] [-strict] [-o <file>]

  Groups the values of a field by (year, month), reduces each group with the
  mean or the sum, and prints one row per year, most recent first.
  Sum tables have a Total column.

  Exits with 2 on malformed input, and with 1 on an empty table when -strict is set.
`
}

func (c *aggregateCmd) SetFlags(f *flag.FlagSet) {
	c.gridFlags.SetFlags(f)
	f.StringVar(&c.field, "field", stockgrid.FieldClose, "Field to aggregate, as named in the input")
	f.StringVar(&c.reducer, "reducer", stockgrid.Mean.String(), "Reducer: mean or sum")
}

func (c *aggregateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reducer, err := stockgrid.ParseReducer(c.reducer)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.field == "" {
		fmt.Fprintln(stderr, "Error: -field must not be empty")
		return subcommands.ExitUsageError
	}
	title := fmt.Sprintf("%s (%s)", c.field, reducer)
	spec := func(years *stockgrid.YearRange) stockgrid.AggregationSpec {
		return stockgrid.AggregationSpec{Field: c.field, Reducer: reducer, Years: years}
	}
	var prepare func([]stockgrid.Observation) []stockgrid.Observation
	if c.field == stockgrid.FieldAverage {
		prepare = stockgrid.WithAverage
	}
	return c.run(title, spec, prepare)
}

// pricesCmd prints the average monthly price table.
type pricesCmd struct{ gridFlags }

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "print the average monthly stock price table" }
func (*pricesCmd) Usage() string {
	return `sgrid prices -in <file> [-year-min <year>] [-year-max <year>] [-format <format>] [-o <file>]

  Prints the mean of (High + Low) / 2 per month. In every year the highest
  month is bold and the lowest month is italic.
`
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run("Average Monthly Stock Price", stockgrid.PriceSpec, stockgrid.WithAverage)
}

// dividendsCmd prints the monthly dividend table.
type dividendsCmd struct{ gridFlags }

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "print the monthly dividend table" }
func (*dividendsCmd) Usage() string {
	return `sgrid dividends -in <file> [-year-min <year>] [-year-max <year>] [-format <format>] [-o <file>]

  Prints the sum of dividends per month, with a yearly Total. Months with a
  payment are bold. A month paying 0 shows 0.0000, a month without record is empty.
`
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run("Dividend Table", stockgrid.DividendSpec, nil)
}
