package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/chart"
	"github.com/etnz/stockgrid/date"
	"github.com/etnz/stockgrid/source"
	"github.com/google/subcommands"
)

// chartCmd draws the close price chart.
type chartCmd struct {
	years  yearFlags
	in     string
	field  string
	title  string
	output string
	period string
	width  int
	height int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the stock price chart as a PNG image" }
func (*chartCmd) Usage() string {
	return `sgrid chart -in <file> -o <file.png> [-field Close] [-period daily|monthly|yearly] [-year-min <year>] [-year-max <year>] [-title <title>]

  Draws the field over time, green when the last value is above or equal to
  the first one, red otherwise. With -period, only the last value of each
  month or year is drawn.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.years.SetFlags(f)
	f.StringVar(&c.in, "in", "", "Observation file (.csv, .json or .parquet)")
	f.StringVar(&c.field, "field", stockgrid.FieldClose, "Field to draw")
	f.StringVar(&c.title, "title", "", "Chart title")
	f.StringVar(&c.period, "period", date.Daily.String(), "Resampling period: daily, monthly or yearly")
	f.StringVar(&c.output, "o", "chart.png", "Output PNG file")
	f.IntVar(&c.width, "width", 800, "Image width in pixels")
	f.IntVar(&c.height, "height", 400, "Image height in pixels")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, logger, err := setup()
	if err != nil {
		return fail("loading configuration", err)
	}
	if c.in == "" {
		fmt.Fprintln(stderr, "Error: -in is required")
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	observations, err := source.Open(c.in)
	if err != nil {
		return fail("reading observations", err)
	}
	if err := stockgrid.Validate(observations); err != nil {
		return fail("reading observations", err)
	}
	observations = stockgrid.FilterByYearRange(observations, c.years.Range(observations))
	series := chart.Resample(chart.Series(observations, c.field), period)
	if series.Len() == 0 {
		return fail("drawing chart", chart.ErrNoData)
	}

	w, err := openOutput(c.output)
	if err != nil {
		return fail("creating chart", err)
	}
	err = chart.Render(w, series, chart.Options{Title: c.title, Width: c.width, Height: c.height})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fail("drawing chart", err)
	}
	logger.Info().Str("file", c.output).Int("points", series.Len()).Stringer("period", period).Stringer("trend", chart.Trend(series)).Msg("chart written")
	return subcommands.ExitSuccess
}
