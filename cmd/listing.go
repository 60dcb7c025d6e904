package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/stockgrid/config"
	"github.com/etnz/stockgrid/listing"
	"github.com/google/subcommands"
)

// companyFlags select a company of the listing, by name or by code.
type companyFlags struct {
	file    string
	company string
	code    string
}

func (c *companyFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "listing", "", "Listing file (default from configuration, $"+config.EnvListingFile+")")
	f.StringVar(&c.company, "company", "", "Company name, as in the listing")
	f.StringVar(&c.code, "code", "", "Security code, as in the listing")
}

// load reads the listing file.
func (c *companyFlags) load(cfg *config.Config) (*listing.Listing, error) {
	file := c.file
	if file == "" {
		file = cfg.Listing.File
	}
	return listing.Load(file)
}

// selected reports whether a company was asked for.
func (c *companyFlags) selected() bool { return c.company != "" || c.code != "" }

// resolve returns the selected company.
func (c *companyFlags) resolve(l *listing.Listing) (listing.Company, error) {
	if c.code != "" {
		if co, ok := l.ByCode(c.code); ok {
			return co, nil
		}
		return listing.Company{}, fmt.Errorf("no company with security code %q", c.code)
	}
	if co, ok := l.ByName(c.company); ok {
		return co, nil
	}
	return listing.Company{}, fmt.Errorf("no company named %q", c.company)
}

// listingCmd browses the listing.
type listingCmd struct {
	companyFlags
	market string
	sector string
	list   string
}

func (*listingCmd) Name() string     { return "listing" }
func (*listingCmd) Synopsis() string { return "browse listed companies and resolve their symbol" }
func (*listingCmd) Usage() string {
	return `sgrid listing [-listing <file>] [-market <type>] [-sector <sector>] [-list markets|sectors] [-company <name> | -code <code>]

  Without -company or -code, prints the companies of the market type and
  sector ("All" selects everything). With -list, prints the distinct market
  types or sectors instead. With -company or -code, prints the company and
  its provider symbol.
`
}

func (c *listingCmd) SetFlags(f *flag.FlagSet) {
	c.companyFlags.SetFlags(f)
	f.StringVar(&c.market, "market", listing.All, "Market type filter")
	f.StringVar(&c.sector, "sector", listing.All, "Sector filter")
	f.StringVar(&c.list, "list", "", "Print distinct values instead: markets or sectors")
}

func (c *listingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, err := setup()
	if err != nil {
		return fail("loading configuration", err)
	}
	l, err := c.load(cfg)
	if err != nil {
		return fail("reading listing", err)
	}
	logger.Debug().Int("companies", l.Len()).Msg("listing loaded")

	if c.selected() {
		co, err := c.resolve(l)
		if err != nil {
			return fail("resolving company", err)
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", co.Name, co.Symbol(cfg.Listing.ExchangeSuffix), co.Sector, co.MarketType)
		return subcommands.ExitSuccess
	}

	switch c.list {
	case "":
	case "markets":
		fmt.Fprintln(stdout, strings.Join(l.MarketTypes(), "\n"))
		return subcommands.ExitSuccess
	case "sectors":
		fmt.Fprintln(stdout, strings.Join(l.Sectors(c.market), "\n"))
		return subcommands.ExitSuccess
	default:
		fmt.Fprintf(stderr, "Error: unknown list %q want markets or sectors\n", c.list)
		return subcommands.ExitUsageError
	}

	var b strings.Builder
	b.WriteString("| Company | Code | Sector | Market |\n|:---|:---|:---|:---|\n")
	for _, co := range l.Filter(c.market, c.sector).Companies() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", co.Name, co.Code, co.Sector, co.MarketType)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
